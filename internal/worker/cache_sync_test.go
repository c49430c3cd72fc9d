package worker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/buildy/tablemaker/internal/cache"
	"github.com/buildy/tablemaker/internal/event"
	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/jsonio"
	"github.com/buildy/tablemaker/internal/store"
)

func TestCacheSyncRefreshesPayload(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	table, err := s.CreateTable(ctx, "people")
	if err != nil {
		t.Fatal(err)
	}
	col, err := s.AddColumn(ctx, grid.Column{TableID: table.ID, Key: "name", Name: "Name", Type: "text"})
	if err != nil {
		t.Fatal(err)
	}
	row, err := s.AddRow(ctx, table.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertCell(ctx, grid.Cell{RowID: row.ID, ColumnID: col.ID, Value: "Ada"}); err != nil {
		t.Fatal(err)
	}

	c := cache.NewFileCache(filepath.Join(t.TempDir(), "payload.json"))
	w := NewCacheSyncWorker(jsonio.New(s), c)

	evt := event.NewRowAdded(event.RowAddedPayload{TableID: table.ID, RowID: row.ID})
	if err := w.HandleEvent(ctx, evt); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	payload, ok, err := c.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("cache empty after sync")
	}
	if payload.Name != "people" || len(payload.Rows) != 1 {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Rows[0]["name"] != "Ada" {
		t.Errorf("row = %v", payload.Rows[0])
	}
}

func TestCacheSyncSkipsTablelessEvents(t *testing.T) {
	ctx := context.Background()
	c := cache.NewFileCache(filepath.Join(t.TempDir(), "payload.json"))
	w := NewCacheSyncWorker(jsonio.New(store.NewMemoryStore()), c)

	evt := event.NewCellUpdated(event.CellUpdatedPayload{RowID: "r1", ColumnID: "c1"})
	if err := w.HandleEvent(ctx, evt); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if _, ok, _ := c.Load(ctx); ok {
		t.Fatal("cache written for event without table id")
	}
}

func TestCacheSyncIgnoresVanishedTable(t *testing.T) {
	ctx := context.Background()
	c := cache.NewFileCache(filepath.Join(t.TempDir(), "payload.json"))
	w := NewCacheSyncWorker(jsonio.New(store.NewMemoryStore()), c)

	evt := event.NewRowAdded(event.RowAddedPayload{TableID: "missing", RowID: "r1"})
	if err := w.HandleEvent(ctx, evt); err != nil {
		t.Fatalf("HandleEvent on missing table: %v", err)
	}
}
