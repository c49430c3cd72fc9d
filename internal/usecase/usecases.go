// Package usecase holds the thin orchestration layer between the HTTP
// surface and the store: each use case is one delegated call plus any
// client-side bookkeeping it owns (the optimistic cell merge).
package usecase

import (
	"context"

	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/gridquery"
	"github.com/buildy/tablemaker/internal/store"
)

// LoadGrid loads a table's viewport.
type LoadGrid struct {
	Grid *gridquery.Service
}

func (u LoadGrid) Execute(ctx context.Context, tableID string, page gridquery.Page) (*grid.GridData, error) {
	return u.Grid.LoadGrid(ctx, tableID, page)
}

// UpdateCell persists a single cell upsert keyed on (rowID, columnID),
// last write wins — no version check.
type UpdateCell struct {
	Cells store.Cells
}

func (u UpdateCell) Execute(ctx context.Context, rowID, columnID string, value any) error {
	return u.Cells.UpsertCell(ctx, grid.Cell{RowID: rowID, ColumnID: columnID, Value: value})
}

// ExecuteWithMerge persists the cell and patches the caller's grid
// snapshot in place of a full reload: exactly the (rowID, columnKey)
// entry changes, every other row is untouched.
func (u UpdateCell) ExecuteWithMerge(ctx context.Context, g *grid.GridData, rowID, columnID string, value any) (*grid.GridData, error) {
	if err := u.Execute(ctx, rowID, columnID, value); err != nil {
		return nil, err
	}
	key, ok := g.ColumnIDToKey[columnID]
	if !ok {
		// Column not in this snapshot; nothing to merge.
		return g, nil
	}
	return grid.ApplyCellPatch(g, rowID, key, value), nil
}

// AddRow appends a row at the given position.
type AddRow struct {
	Rows store.Rows
}

func (u AddRow) Execute(ctx context.Context, tableID string, position int) (grid.Row, error) {
	return u.Rows.AddRow(ctx, tableID, position)
}

// DeleteRow removes a row; its cells cascade away with it.
type DeleteRow struct {
	Rows store.Rows
}

func (u DeleteRow) Execute(ctx context.Context, rowID string) error {
	return u.Rows.DeleteRow(ctx, rowID)
}

// AddColumn appends a column. Type defaults to text, metadata to empty.
type AddColumn struct {
	Columns store.Columns
}

func (u AddColumn) Execute(ctx context.Context, tableID, key, name string, position int, colType string) (grid.Column, error) {
	if colType == "" {
		colType = "text"
	}
	return u.Columns.AddColumn(ctx, grid.Column{
		TableID:  tableID,
		Key:      key,
		Name:     name,
		Type:     colType,
		Position: position,
		Meta:     map[string]any{},
	})
}

// CreateTable creates an empty named table.
type CreateTable struct {
	Tables store.Tables
}

func (u CreateTable) Execute(ctx context.Context, name string) (grid.Table, error) {
	return u.Tables.CreateTable(ctx, name)
}
