package jsonio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/store"
)

// seedPeople builds a table with two columns and two rows of cells.
func seedPeople(t *testing.T, s *store.MemoryStore, name string) string {
	t.Helper()
	ctx := context.Background()
	table, err := s.CreateTable(ctx, name)
	require.NoError(t, err)
	nameCol, err := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "name", Name: "Name", Type: "text", Position: 0})
	require.NoError(t, err)
	ageCol, err := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "age", Name: "Age", Type: "number", Position: 1})
	require.NoError(t, err)

	rows := []map[string]any{
		{"name": "Jane", "age": float64(30)},
		{"name": "Bob", "age": float64(25)},
	}
	for i, values := range rows {
		row, err := s.AddRow(ctx, table.ID, i)
		require.NoError(t, err)
		require.NoError(t, s.UpsertCells(ctx, []grid.Cell{
			{RowID: row.ID, ColumnID: nameCol.ID, Value: values["name"]},
			{RowID: row.ID, ColumnID: ageCol.ID, Value: values["age"]},
		}))
	}
	return table.ID
}

func TestExportNormalized_FullSnapshot(t *testing.T) {
	s := store.NewMemoryStore()
	tableID := seedPeople(t, s, "people")

	bundle, err := New(s).ExportNormalized(context.Background(), tableID)
	require.NoError(t, err)
	assert.Equal(t, "people", bundle.Table.Name)
	assert.Len(t, bundle.Columns, 2)
	assert.Len(t, bundle.Rows, 2)
	assert.Len(t, bundle.Cells, 4)
}

func TestImportNormalized_CarriesCellsByRowOrdinalAndColumnKey(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	svc := New(s)
	tableID := seedPeople(t, s, "people")

	bundle, err := svc.ExportNormalized(ctx, tableID)
	require.NoError(t, err)
	bundle.Table.Name = "people_copy"

	created, err := svc.ImportNormalized(ctx, bundle)
	require.NoError(t, err)
	assert.NotEqual(t, tableID, created.ID, "imported ids are never reused")

	src, err := svc.ExportLegacyPayload(ctx, tableID)
	require.NoError(t, err)
	dst, err := svc.ExportLegacyPayload(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, src.Columns, dst.Columns)
	require.Len(t, dst.Rows, len(src.Rows))
	for i := range src.Rows {
		assert.Equal(t, src.Rows[i], dst.Rows[i], "row %d values must carry over", i)
	}
}

func TestImportNormalized_SkipsOrphanedSourceCells(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	svc := New(s)
	tableID := seedPeople(t, s, "people")

	bundle, err := svc.ExportNormalized(ctx, tableID)
	require.NoError(t, err)
	bundle.Table.Name = "people_copy"
	bundle.Cells = append(bundle.Cells, grid.Cell{RowID: "ghost-row", ColumnID: "ghost-col", Value: "x"})

	created, err := svc.ImportNormalized(ctx, bundle)
	require.NoError(t, err)

	out, err := svc.ExportNormalized(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, out.Cells, 4, "ghost cell must not be imported")
}

func TestLegacyRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	svc := New(s)
	tableID := seedPeople(t, s, "people")

	first, err := svc.ExportLegacyPayload(ctx, tableID)
	require.NoError(t, err)

	first.Name = "people_imported"
	imported, err := svc.ImportLegacyPayload(ctx, first)
	require.NoError(t, err)

	second, err := svc.ExportLegacyPayload(ctx, imported.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Columns, second.Columns, "column keys preserve order")
	require.Len(t, second.Rows, len(first.Rows))
	for i := range first.Rows {
		assert.Equal(t, first.Rows[i], second.Rows[i], "row %d", i)
	}
}

func TestImportLegacyPayload_SkipsUndeclaredFields(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	svc := New(s)

	payload := &LegacyPayload{
		Name:    "partial",
		Columns: []string{"name"},
		Rows: []map[string]any{
			{"name": "Jane", "stray": "dropped"},
		},
	}
	created, err := svc.ImportLegacyPayload(ctx, payload)
	require.NoError(t, err)

	out, err := svc.ExportLegacyPayload(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, out.Columns)
	assert.Equal(t, map[string]any{"name": "Jane"}, out.Rows[0])
}

func TestDecode_ParseErrors(t *testing.T) {
	var parse *grid.ParseError

	_, err := DecodeLegacyPayload([]byte("{not json"))
	require.Error(t, err)
	assert.ErrorAs(t, err, &parse)

	_, err = DecodeNormalizedBundle([]byte("[]"))
	require.Error(t, err)
	assert.ErrorAs(t, err, &parse)

	payload, err := DecodeLegacyPayload([]byte(`{"name":"t","columns":["a"],"rows":[{"a":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, "t", payload.Name)
}

func TestExportLegacyPayload_StampsUpdatedAt(t *testing.T) {
	s := store.NewMemoryStore()
	tableID := seedPeople(t, s, "people")
	payload, err := New(s).ExportLegacyPayload(context.Background(), tableID)
	require.NoError(t, err)
	assert.NotEmpty(t, payload.UpdatedAt)
}
