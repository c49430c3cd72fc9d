// Package jsonio converts between the normalized grid representation and
// its two interchange shapes: a full normalized bundle (ids meaningful)
// and the legacy denormalized payload that predates the normalized model.
package jsonio

import (
	"context"
	"encoding/json"
	"time"

	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/gridquery"
	"github.com/buildy/tablemaker/internal/store"
)

// exportRowLimit bounds a full-table snapshot. Exports are unpaginated.
const exportRowLimit = 100000

// NormalizedBundle is a table's complete normalized state.
type NormalizedBundle struct {
	Table   grid.Table    `json:"table"`
	Columns []grid.Column `json:"columns"`
	Rows    []grid.Row    `json:"rows"`
	Cells   []grid.Cell   `json:"cells"`
}

// LegacyPayload is the flattened pre-normalization shape. Column order in
// Columns defines field order in generated grids.
type LegacyPayload struct {
	Name      string           `json:"name"`
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	UpdatedAt string           `json:"updated_at,omitempty"`
}

// DecodeNormalizedBundle parses a normalized export. Malformed JSON is a
// ParseError.
func DecodeNormalizedBundle(data []byte) (*NormalizedBundle, error) {
	var b NormalizedBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &grid.ParseError{Err: err}
	}
	return &b, nil
}

// DecodeLegacyPayload parses a legacy payload. Malformed JSON is a
// ParseError.
func DecodeLegacyPayload(data []byte) (*LegacyPayload, error) {
	var p LegacyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &grid.ParseError{Err: err}
	}
	return &p, nil
}

// Service imports and exports tables.
type Service struct {
	store store.Store
	grid  *gridquery.Service
}

// New creates an import/export service over the given store.
func New(s store.Store) *Service {
	return &Service{store: s, grid: gridquery.NewFromStore(s)}
}

// ExportNormalized snapshots a table's full normalized state.
func (s *Service) ExportNormalized(ctx context.Context, tableID string) (*NormalizedBundle, error) {
	table, err := s.store.TableByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	columns, err := s.store.ListColumns(ctx, tableID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListRows(ctx, tableID, store.ListRowsOptions{Limit: exportRowLimit})
	if err != nil {
		return nil, err
	}
	rowIDs := make([]string, len(rows))
	for i, r := range rows {
		rowIDs[i] = r.ID
	}
	cells, err := s.store.CellsByRows(ctx, rowIDs)
	if err != nil {
		return nil, err
	}
	return &NormalizedBundle{Table: table, Columns: columns, Rows: rows, Cells: cells}, nil
}

// ImportNormalized creates a new table from a bundle. All ids are freshly
// assigned — imported ids are never reused. Cell values are carried over
// by re-keying each source cell to (row ordinal, column key) and writing
// it against the corresponding new row and column.
func (s *Service) ImportNormalized(ctx context.Context, bundle *NormalizedBundle) (grid.Table, error) {
	created, err := s.store.CreateTable(ctx, bundle.Table.Name)
	if err != nil {
		return grid.Table{}, err
	}

	newKeyToID := make(map[string]string, len(bundle.Columns))
	for i, col := range bundle.Columns {
		added, err := s.store.AddColumn(ctx, grid.Column{
			TableID:  created.ID,
			Key:      col.Key,
			Name:     col.Name,
			Type:     col.Type,
			Position: i,
			Width:    col.Width,
			Meta:     col.Meta,
		})
		if err != nil {
			return grid.Table{}, err
		}
		newKeyToID[added.Key] = added.ID
	}

	srcRowOrdinal := make(map[string]int, len(bundle.Rows)) // ordinal of each source row id
	newRowIDs := make([]string, len(bundle.Rows))
	for i, row := range bundle.Rows {
		added, err := s.store.AddRow(ctx, created.ID, i)
		if err != nil {
			return grid.Table{}, err
		}
		srcRowOrdinal[row.ID] = i
		newRowIDs[i] = added.ID
	}

	oldColKey := make(map[string]string, len(bundle.Columns))
	for _, col := range bundle.Columns {
		oldColKey[col.ID] = col.Key
	}

	carried := make([]grid.Cell, 0, len(bundle.Cells))
	for _, cell := range bundle.Cells {
		key, ok := oldColKey[cell.ColumnID]
		if !ok {
			continue // orphaned in the source bundle
		}
		ordinal, ok := srcRowOrdinal[cell.RowID]
		if !ok {
			continue
		}
		newColID, ok := newKeyToID[key]
		if !ok {
			continue
		}
		carried = append(carried, grid.Cell{
			RowID:    newRowIDs[ordinal],
			ColumnID: newColID,
			Value:    cell.Value,
		})
	}
	if err := s.store.UpsertCells(ctx, carried); err != nil {
		return grid.Table{}, err
	}
	return created, nil
}

// ExportLegacyPayload flattens a table into the legacy shape.
func (s *Service) ExportLegacyPayload(ctx context.Context, tableID string) (*LegacyPayload, error) {
	g, err := s.grid.LoadGrid(ctx, tableID, gridquery.Page{Limit: exportRowLimit})
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		columns[i] = c.Key
	}
	rows := make([]map[string]any, len(g.Rows))
	for i, r := range g.Rows {
		rows[i] = r.Values
	}
	return &LegacyPayload{
		Name:      g.Table.Name,
		Columns:   columns,
		Rows:      rows,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ImportLegacyPayload creates a table from the legacy shape: one text
// column per key (display name defaults to the key), one row per payload
// row, one cell per present field.
func (s *Service) ImportLegacyPayload(ctx context.Context, payload *LegacyPayload) (grid.Table, error) {
	created, err := s.store.CreateTable(ctx, payload.Name)
	if err != nil {
		return grid.Table{}, err
	}
	keyToID := make(map[string]string, len(payload.Columns))
	for i, key := range payload.Columns {
		added, err := s.store.AddColumn(ctx, grid.Column{
			TableID:  created.ID,
			Key:      key,
			Name:     key,
			Type:     "text",
			Position: i,
			Meta:     map[string]any{},
		})
		if err != nil {
			return grid.Table{}, err
		}
		keyToID[key] = added.ID
	}
	for i, row := range payload.Rows {
		added, err := s.store.AddRow(ctx, created.ID, i)
		if err != nil {
			return grid.Table{}, err
		}
		cells := make([]grid.Cell, 0, len(row))
		for key, value := range row {
			columnID, ok := keyToID[key]
			if !ok {
				continue // field without a declared column
			}
			cells = append(cells, grid.Cell{RowID: added.ID, ColumnID: columnID, Value: value})
		}
		if err := s.store.UpsertCells(ctx, cells); err != nil {
			return grid.Table{}, err
		}
	}
	return created, nil
}
