package seed

import (
	"context"
	"testing"

	"github.com/buildy/tablemaker/internal/store"
)

func TestDefaultTableSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	if err := DefaultTable(ctx, s); err != nil {
		t.Fatalf("DefaultTable: %v", err)
	}

	table, err := s.TableByName(ctx, "users")
	if err != nil {
		t.Fatalf("TableByName: %v", err)
	}
	cols, err := s.ListColumns(ctx, table.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 3 {
		t.Fatalf("got %d columns, want 3", len(cols))
	}
	rows, err := s.ListRows(ctx, table.ID, store.ListRowsOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(demoRows) {
		t.Fatalf("got %d rows, want %d", len(rows), len(demoRows))
	}
	for _, row := range rows {
		cells, err := s.CellsByRows(ctx, []string{row.ID})
		if err != nil {
			t.Fatal(err)
		}
		if len(cells) != 3 {
			t.Errorf("row %s has %d cells, want 3", row.ID, len(cells))
		}
	}
}

func TestDefaultTableSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if _, err := s.CreateTable(ctx, "existing"); err != nil {
		t.Fatal(err)
	}

	if err := DefaultTable(ctx, s); err != nil {
		t.Fatalf("DefaultTable: %v", err)
	}
	tables, err := s.ListTables(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want the pre-existing one only", len(tables))
	}
}
