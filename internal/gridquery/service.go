// Package gridquery assembles the GridData projection for one table's
// viewport from the normalized store.
package gridquery

import (
	"context"
	"sync"

	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/store"
)

// Page is a pagination window over a table's rows.
type Page struct {
	Limit  int
	Offset int
}

// Service loads grids. Repositories are injected at construction; there
// is no ambient client.
type Service struct {
	tables  store.Tables
	columns store.Columns
	rows    store.Rows
	cells   store.Cells
}

// New creates a grid query service over the given repositories.
func New(tables store.Tables, columns store.Columns, rows store.Rows, cells store.Cells) *Service {
	return &Service{tables: tables, columns: columns, rows: rows, cells: cells}
}

// NewFromStore creates a Service backed by a single aggregate store.
func NewFromStore(s store.Store) *Service {
	return New(s, s, s, s)
}

// LoadGrid builds the viewport for tableID. The table, column and row
// fetches are independent and issued concurrently; the cell fetch depends
// on the resolved row id set and runs after. Returns grid.ErrNotFound if
// the table id does not resolve.
//
// Cells whose column id no longer resolves (orphaned by a column
// deletion) are dropped from the projection. Row order follows the
// fetched row order; column order follows position.
func (s *Service) LoadGrid(ctx context.Context, tableID string, page Page) (*grid.GridData, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = store.DefaultRowLimit
	}

	var (
		wg      sync.WaitGroup
		table   grid.Table
		columns []grid.Column
		rows    []grid.Row
		errs    [3]error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		table, errs[0] = s.tables.TableByID(ctx, tableID)
	}()
	go func() {
		defer wg.Done()
		columns, errs[1] = s.columns.ListColumns(ctx, tableID)
	}()
	go func() {
		defer wg.Done()
		rows, errs[2] = s.rows.ListRows(ctx, tableID, store.ListRowsOptions{
			Limit:  limit,
			Offset: page.Offset,
			Order:  store.Asc,
		})
	}()
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	rowIDs := make([]string, len(rows))
	for i, r := range rows {
		rowIDs[i] = r.ID
	}
	cells, err := s.cells.CellsByRows(ctx, rowIDs)
	if err != nil {
		return nil, err
	}

	keyToID := make(map[string]string, len(columns))
	idToKey := make(map[string]string, len(columns))
	columnsVM := make([]grid.GridColumn, len(columns))
	for i, c := range columns {
		// Duplicate keys are a caller error; last write wins.
		keyToID[c.Key] = c.ID
		idToKey[c.ID] = c.Key
		columnsVM[i] = grid.GridColumn{ID: c.ID, Key: c.Key, Header: c.Name, Type: c.Type}
	}

	valuesByRow := make(map[string]map[string]any)
	for _, cell := range cells {
		key, ok := idToKey[cell.ColumnID]
		if !ok {
			continue
		}
		values := valuesByRow[cell.RowID]
		if values == nil {
			values = make(map[string]any)
			valuesByRow[cell.RowID] = values
		}
		values[key] = cell.Value
	}

	rowsVM := make([]grid.GridRow, len(rows))
	for i, r := range rows {
		values := valuesByRow[r.ID]
		if values == nil {
			values = map[string]any{}
		}
		rowsVM[i] = grid.GridRow{RowID: r.ID, Values: values}
	}

	return &grid.GridData{
		Table:         table,
		Columns:       columnsVM,
		Rows:          rowsVM,
		ColumnKeyToID: keyToID,
		ColumnIDToKey: idToKey,
	}, nil
}
