// Package grid holds the normalized table model — Table, Column, Row and
// Cell entities plus the denormalized GridData projection assembled for
// one table's viewport.
package grid

import "time"

// Table is one user-defined table. Name is unique across tables.
type Table struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// Column is one column of a table. Position is the zero-based display
// order, contiguous and unique per table. Type carries the column kind
// name as a string; the grid layer does not interpret it.
type Column struct {
	ID       string         `json:"id"`
	TableID  string         `json:"table_id"`
	Key      string         `json:"key"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Position int            `json:"position"`
	Width    *int           `json:"width,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// Row is one row of a table. Cells are stored separately.
type Row struct {
	ID        string    `json:"id"`
	TableID   string    `json:"table_id"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cell is one value at the intersection of a row and a column. The pair
// (RowID, ColumnID) is unique — upserts are keyed on it. A cell must only
// reference a column belonging to the same table as its row; the grid
// projection drops cells that don't resolve.
type Cell struct {
	ID        string    `json:"id,omitempty"`
	RowID     string    `json:"row_id"`
	ColumnID  string    `json:"column_id"`
	Value     any       `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
