package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildy/tablemaker/internal/grid"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	base := func() BuilderConfig {
		return BuilderConfig{
			TableName: "users",
			Columns: []BuilderColumn{
				{Key: "name", Name: "Name", Kind: KindText},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*BuilderConfig)
		wantErr string
	}{
		{"valid", func(c *BuilderConfig) {}, ""},
		{"empty table name", func(c *BuilderConfig) { c.TableName = "" }, "table name is empty"},
		{"zero columns", func(c *BuilderConfig) { c.Columns = nil }, "no columns"},
		{"duplicate key", func(c *BuilderConfig) {
			c.Columns = append(c.Columns, BuilderColumn{Key: "name", Name: "Name 2", Kind: KindText})
		}, "duplicate column key"},
		{"invalid identifier", func(c *BuilderConfig) { c.Columns[0].Key = "first name" }, "not a valid identifier"},
		{"leading digit", func(c *BuilderConfig) { c.Columns[0].Key = "1name" }, "not a valid identifier"},
		{"unknown kind", func(c *BuilderConfig) { c.Columns[0].Kind = "sheet" }, "unknown column kind"},
		{"bad object meta", func(c *BuilderConfig) {
			c.Columns[0].Kind = KindObject
			c.Columns[0].Meta = map[string]any{"schema": "not-a-map"}
		}, "meta.schema must be a map"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			var validation *grid.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestWidgetFor(t *testing.T) {
	for _, kind := range []ColumnKind{KindSelect, KindTags, KindObject} {
		w, ok := WidgetFor(kind)
		require.True(t, ok, "widget kind %s has no definition", kind)
		assert.Equal(t, kind, w.Kind)
		assert.NotEmpty(t, w.Label)
	}
	for _, kind := range []ColumnKind{KindText, KindNumber, KindBoolean, KindDate} {
		_, ok := WidgetFor(kind)
		assert.False(t, ok, "primitive kind %s should have no widget", kind)
	}
}

func TestWidgetSerialize(t *testing.T) {
	tags, _ := WidgetFor(KindTags)
	got, err := tags.Serialize([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = tags.Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	object, _ := WidgetFor(KindObject)
	_, err = object.Serialize("scalar")
	assert.Error(t, err)
}
