// Package builder holds the in-memory table schema the builder UI edits:
// a named table, its ordered column definitions and a feature flag set.
// The config is the single source of truth for every code generator.
package builder

import (
	"regexp"

	"github.com/buildy/tablemaker/internal/grid"
)

// ColumnKind is the closed set of column data types.
type ColumnKind string

const (
	KindText    ColumnKind = "text"
	KindNumber  ColumnKind = "number"
	KindBoolean ColumnKind = "boolean"
	KindDate    ColumnKind = "date"
	KindSelect  ColumnKind = "select"
	KindTags    ColumnKind = "tags"
	KindObject  ColumnKind = "object"
)

// Kinds lists all valid column kinds in a stable order.
var Kinds = []ColumnKind{
	KindText, KindNumber, KindBoolean, KindDate,
	KindSelect, KindTags, KindObject,
}

// ParseKind validates a kind name. Unknown kinds are rejected here, at
// config-validation time, never silently coerced to text.
func ParseKind(s string) (ColumnKind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", grid.Validationf("unknown column kind %q", s)
}

// Option is one choice of a select or tags column.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// BuilderColumn defines one column of the table being built. Key doubles
// as the generated field name and the grid lookup key, so it must be a
// valid identifier in every generated target — Validate enforces that on
// behalf of the generators.
type BuilderColumn struct {
	Key      string         `json:"key"`
	Name     string         `json:"name"`
	Kind     ColumnKind     `json:"kind"`
	Required bool           `json:"required,omitempty"`
	Options  []Option       `json:"options,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// BuilderFeatures gates which capability wiring appears in the generated
// UI artifact and which interactive behaviors the preview offers. Any
// combination of flags is legal.
type BuilderFeatures struct {
	Search       bool `json:"search"`
	Sorting      bool `json:"sorting"`
	Pagination   bool `json:"pagination"`
	Create       bool `json:"create"`
	Edit         bool `json:"edit"`
	Delete       bool `json:"delete"`
	MultiDelete  bool `json:"multiDelete"`
	ColumnsPanel bool `json:"columnsPanel"`
}

// BuilderConfig is the full schema consumed by the generators.
type BuilderConfig struct {
	TableName string          `json:"tableName"`
	Columns   []BuilderColumn `json:"columns"`
	Features  BuilderFeatures `json:"features"`
}

// DefaultConfig returns the seed schema the builder starts from.
func DefaultConfig() BuilderConfig {
	return BuilderConfig{
		TableName: "users",
		Columns: []BuilderColumn{
			{Key: "name", Name: "Name", Kind: KindText, Required: true},
			{Key: "email", Name: "Email", Kind: KindText},
			{Key: "age", Name: "Age", Kind: KindNumber},
		},
		Features: BuilderFeatures{
			Search:     true,
			Sorting:    true,
			Pagination: true,
			Create:     true,
			Edit:       true,
			Delete:     true,
		},
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the config against its model invariants: non-empty
// table name, at least one column, unique identifier keys, known kinds,
// and widget metadata accepted by the kind's widget definition.
func (c BuilderConfig) Validate() error {
	if c.TableName == "" {
		return grid.Validationf("table name is empty")
	}
	if len(c.Columns) == 0 {
		return grid.Validationf("table %q has no columns", c.TableName)
	}
	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if !identRe.MatchString(col.Key) {
			return grid.Validationf("column key %q is not a valid identifier", col.Key)
		}
		if seen[col.Key] {
			return grid.Validationf("duplicate column key %q", col.Key)
		}
		seen[col.Key] = true
		if _, err := ParseKind(string(col.Kind)); err != nil {
			return err
		}
		if w, ok := WidgetFor(col.Kind); ok && w.ValidateMeta != nil {
			if err := w.ValidateMeta(col.Meta); err != nil {
				return grid.Validationf("column %q: %v", col.Key, err)
			}
		}
	}
	return nil
}
