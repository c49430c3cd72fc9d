package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/buildy/tablemaker/internal/grid"
)

// MemoryStore implements Store with mutex-guarded maps. Intended for
// demos and testing — no database required. Deletes cascade to cells the
// same way the SQL schema does.
type MemoryStore struct {
	mu      sync.RWMutex
	tables  map[string]grid.Table
	columns map[string]grid.Column
	rows    map[string]grid.Row
	cells   map[string]grid.Cell // keyed rowID + "\x00" + columnID
	rowIDs  *rowIDGen
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables:  make(map[string]grid.Table),
		columns: make(map[string]grid.Column),
		rows:    make(map[string]grid.Row),
		cells:   make(map[string]grid.Cell),
		rowIDs:  newRowIDGen(),
	}
}

func cellKey(rowID, columnID string) string {
	return rowID + "\x00" + columnID
}

func (s *MemoryStore) CreateTable(_ context.Context, name string) (grid.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tables {
		if t.Name == name {
			return grid.Table{}, grid.Validationf("table %q already exists", name)
		}
	}
	now := time.Now().UTC()
	t := grid.Table{ID: newID(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.tables[t.ID] = t
	return t, nil
}

func (s *MemoryStore) TableByID(_ context.Context, id string) (grid.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	if !ok {
		return grid.Table{}, fmt.Errorf("table %s: %w", id, grid.ErrNotFound)
	}
	return t, nil
}

func (s *MemoryStore) TableByName(_ context.Context, name string) (grid.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tables {
		if t.Name == name {
			return t, nil
		}
	}
	return grid.Table{}, fmt.Errorf("table %q: %w", name, grid.ErrNotFound)
}

func (s *MemoryStore) ListTables(_ context.Context) ([]grid.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]grid.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	// Most recently touched first, matching the remote store's listing.
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *MemoryStore) ListColumns(_ context.Context, tableID string) ([]grid.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []grid.Column
	for _, c := range s.columns {
		if c.TableID == tableID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *MemoryStore) AddColumn(_ context.Context, col grid.Column) (grid.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[col.TableID]; !ok {
		return grid.Column{}, fmt.Errorf("table %s: %w", col.TableID, grid.ErrNotFound)
	}
	col.ID = newID()
	if col.Meta == nil {
		col.Meta = map[string]any{}
	}
	s.columns[col.ID] = col
	return col, nil
}

func (s *MemoryStore) UpdateColumn(_ context.Context, columnID string, patch ColumnPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.columns[columnID]
	if !ok {
		return fmt.Errorf("column %s: %w", columnID, grid.ErrNotFound)
	}
	if patch.Name != nil {
		col.Name = *patch.Name
	}
	if patch.Type != nil {
		col.Type = *patch.Type
	}
	if patch.Position != nil {
		col.Position = *patch.Position
	}
	if patch.Width != nil {
		col.Width = patch.Width
	}
	if patch.Meta != nil {
		col.Meta = patch.Meta
	}
	s.columns[columnID] = col
	return nil
}

func (s *MemoryStore) DeleteColumn(_ context.Context, columnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.columns[columnID]; !ok {
		return fmt.Errorf("column %s: %w", columnID, grid.ErrNotFound)
	}
	delete(s.columns, columnID)
	for k, c := range s.cells {
		if c.ColumnID == columnID {
			delete(s.cells, k)
		}
	}
	return nil
}

func (s *MemoryStore) ListRows(_ context.Context, tableID string, opts ListRowsOptions) ([]grid.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []grid.Row
	for _, r := range s.rows {
		if r.TableID == tableID {
			all = append(all, r)
		}
	}
	desc := opts.Order == Desc
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Position != b.Position {
			if desc {
				return a.Position > b.Position
			}
			return a.Position < b.Position
		}
		// ULIDs break position ties in creation order.
		if desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRowLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *MemoryStore) AddRow(_ context.Context, tableID string, position int) (grid.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[tableID]; !ok {
		return grid.Row{}, fmt.Errorf("table %s: %w", tableID, grid.ErrNotFound)
	}
	now := time.Now().UTC()
	r := grid.Row{ID: s.rowIDs.next(), TableID: tableID, Position: position, CreatedAt: now, UpdatedAt: now}
	s.rows[r.ID] = r
	return r, nil
}

func (s *MemoryStore) DeleteRow(_ context.Context, rowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[rowID]; !ok {
		return fmt.Errorf("row %s: %w", rowID, grid.ErrNotFound)
	}
	delete(s.rows, rowID)
	for k, c := range s.cells {
		if c.RowID == rowID {
			delete(s.cells, k)
		}
	}
	return nil
}

func (s *MemoryStore) CellsByRows(_ context.Context, rowIDs []string) ([]grid.Cell, error) {
	if len(rowIDs) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[string]bool, len(rowIDs))
	for _, id := range rowIDs {
		want[id] = true
	}
	var out []grid.Cell
	for _, c := range s.cells {
		if want[c.RowID] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RowID != out[j].RowID {
			return out[i].RowID < out[j].RowID
		}
		return out[i].ColumnID < out[j].ColumnID
	})
	return out, nil
}

func (s *MemoryStore) UpsertCell(ctx context.Context, cell grid.Cell) error {
	return s.UpsertCells(ctx, []grid.Cell{cell})
}

func (s *MemoryStore) UpsertCells(_ context.Context, cells []grid.Cell) error {
	if len(cells) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, c := range cells {
		key := cellKey(c.RowID, c.ColumnID)
		if existing, ok := s.cells[key]; ok {
			existing.Value = c.Value
			existing.UpdatedAt = now
			s.cells[key] = existing
			continue
		}
		c.ID = newID()
		c.UpdatedAt = now
		s.cells[key] = c
	}
	return nil
}
