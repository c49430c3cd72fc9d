package grid

// GridColumn is the display projection of a Column.
type GridColumn struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Header string `json:"header"`
	Type   string `json:"type"`
}

// GridRow is one row's values keyed by column key. A missing cell is an
// absent key, never a nil placeholder.
type GridRow struct {
	RowID  string         `json:"row_id"`
	Values map[string]any `json:"values"`
}

// GridData is the read-side projection of one table's viewport, rebuilt
// per load. Columns are ordered by position, rows by their fetched order.
type GridData struct {
	Table         Table             `json:"table"`
	Columns       []GridColumn      `json:"columns"`
	Rows          []GridRow         `json:"rows"`
	ColumnKeyToID map[string]string `json:"column_key_to_id"`
	ColumnIDToKey map[string]string `json:"column_id_to_key"`
}

// ApplyCellPatch returns a copy of g with exactly the (rowID, columnKey)
// value replaced. Untouched rows share their Values maps with the input;
// only the patched row's map is rebuilt. Rows that don't match rowID are
// left byte-identical, which keeps a single-cell edit from invalidating
// the rest of an optimistically rendered grid.
func ApplyCellPatch(g *GridData, rowID, columnKey string, value any) *GridData {
	out := *g
	out.Rows = make([]GridRow, len(g.Rows))
	copy(out.Rows, g.Rows)
	for i, r := range out.Rows {
		if r.RowID != rowID {
			continue
		}
		values := make(map[string]any, len(r.Values)+1)
		for k, v := range r.Values {
			values[k] = v
		}
		values[columnKey] = value
		out.Rows[i] = GridRow{RowID: r.RowID, Values: values}
		break
	}
	return &out
}
