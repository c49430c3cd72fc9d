package store

import (
	"context"
	"errors"
	"testing"

	"github.com/buildy/tablemaker/internal/grid"
)

func TestMemoryStore_CreateAndLookupTable(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.CreateTable(ctx, "users")
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	byID, err := s.TableByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("TableByID: %v", err)
	}
	if byID.Name != "users" {
		t.Errorf("name = %q", byID.Name)
	}
	byName, err := s.TableByName(ctx, "users")
	if err != nil {
		t.Fatalf("TableByName: %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("id mismatch: %s vs %s", byName.ID, created.ID)
	}

	if _, err := s.TableByID(ctx, "missing"); !errors.Is(err, grid.ErrNotFound) {
		t.Errorf("TableByID miss = %v, want ErrNotFound", err)
	}
	if _, err := s.CreateTable(ctx, "users"); err == nil {
		t.Error("duplicate table name accepted")
	}
}

func TestMemoryStore_RowOrderingAndPagination(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table, _ := s.CreateTable(ctx, "t")
	for i := 0; i < 4; i++ {
		if _, err := s.AddRow(ctx, table.ID, i); err != nil {
			t.Fatalf("AddRow: %v", err)
		}
	}

	asc, err := s.ListRows(ctx, table.ID, ListRowsOptions{})
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(asc) != 4 {
		t.Fatalf("rows = %d, want 4", len(asc))
	}
	for i := 1; i < len(asc); i++ {
		if asc[i-1].Position > asc[i].Position {
			t.Fatal("rows not in ascending position order")
		}
	}

	desc, _ := s.ListRows(ctx, table.ID, ListRowsOptions{Order: Desc})
	if desc[0].ID != asc[len(asc)-1].ID {
		t.Error("descending order does not mirror ascending")
	}

	window, _ := s.ListRows(ctx, table.ID, ListRowsOptions{Limit: 2, Offset: 1})
	if len(window) != 2 || window[0].ID != asc[1].ID {
		t.Error("pagination window wrong")
	}
}

func TestMemoryStore_UpsertCellLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table, _ := s.CreateTable(ctx, "t")
	col, _ := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "name", Name: "Name", Type: "text", Position: 0})
	row, _ := s.AddRow(ctx, table.ID, 0)

	s.UpsertCell(ctx, grid.Cell{RowID: row.ID, ColumnID: col.ID, Value: "first"})
	s.UpsertCell(ctx, grid.Cell{RowID: row.ID, ColumnID: col.ID, Value: "second"})

	cells, err := s.CellsByRows(ctx, []string{row.ID})
	if err != nil {
		t.Fatalf("CellsByRows: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("cells = %d, want 1 (upsert keyed on row+column)", len(cells))
	}
	if cells[0].Value != "second" {
		t.Errorf("value = %v, want second", cells[0].Value)
	}
}

func TestMemoryStore_DeleteRowCascadesCells(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table, _ := s.CreateTable(ctx, "t")
	col, _ := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "k", Name: "K", Type: "text", Position: 0})
	row, _ := s.AddRow(ctx, table.ID, 0)
	keep, _ := s.AddRow(ctx, table.ID, 1)
	s.UpsertCell(ctx, grid.Cell{RowID: row.ID, ColumnID: col.ID, Value: "x"})
	s.UpsertCell(ctx, grid.Cell{RowID: keep.ID, ColumnID: col.ID, Value: "y"})

	if err := s.DeleteRow(ctx, row.ID); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	cells, _ := s.CellsByRows(ctx, []string{row.ID, keep.ID})
	if len(cells) != 1 || cells[0].RowID != keep.ID {
		t.Errorf("cells after cascade = %v", cells)
	}
	if err := s.DeleteRow(ctx, row.ID); !errors.Is(err, grid.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_DeleteColumnCascadesCells(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table, _ := s.CreateTable(ctx, "t")
	col, _ := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "k", Name: "K", Type: "text", Position: 0})
	other, _ := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "o", Name: "O", Type: "text", Position: 1})
	row, _ := s.AddRow(ctx, table.ID, 0)
	s.UpsertCell(ctx, grid.Cell{RowID: row.ID, ColumnID: col.ID, Value: "x"})
	s.UpsertCell(ctx, grid.Cell{RowID: row.ID, ColumnID: other.ID, Value: "y"})

	if err := s.DeleteColumn(ctx, col.ID); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}
	cells, _ := s.CellsByRows(ctx, []string{row.ID})
	if len(cells) != 1 || cells[0].ColumnID != other.ID {
		t.Errorf("cells after cascade = %v", cells)
	}
	cols, _ := s.ListColumns(ctx, table.ID)
	if len(cols) != 1 || cols[0].Key != "o" {
		t.Errorf("columns after delete = %v", cols)
	}
}

func TestMemoryStore_UpdateColumn(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	table, _ := s.CreateTable(ctx, "t")
	col, _ := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "k", Name: "K", Type: "text", Position: 0})

	name := "Key"
	width := 120
	if err := s.UpdateColumn(ctx, col.ID, ColumnPatch{Name: &name, Width: &width}); err != nil {
		t.Fatalf("UpdateColumn: %v", err)
	}
	cols, _ := s.ListColumns(ctx, table.ID)
	if cols[0].Name != "Key" || cols[0].Width == nil || *cols[0].Width != 120 {
		t.Errorf("column after patch = %+v", cols[0])
	}
	if cols[0].Type != "text" {
		t.Error("unpatched field changed")
	}
}
