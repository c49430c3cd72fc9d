// Package seed provides demo data seeding for a fresh database.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/buildy/tablemaker/internal/builder"
	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/store"
)

// demoRows is the sample data seeded into the default table, one map per
// row keyed by column key.
var demoRows = []map[string]any{
	{"name": "Ada Lovelace", "email": "ada@example.com", "age": float64(36)},
	{"name": "Grace Hopper", "email": "grace@example.com", "age": float64(85)},
	{"name": "Alan Turing", "email": "alan@example.com", "age": float64(41)},
}

// DefaultTable creates the builder's default table with its columns and a
// few demo rows. Idempotent: if any table already exists it skips.
func DefaultTable(ctx context.Context, s store.Store) error {
	tables, err := s.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("checking tables: %w", err)
	}
	if len(tables) > 0 {
		log.Printf("seed: %d tables found, skipping", len(tables))
		return nil
	}

	cfg := builder.DefaultConfig()
	table, err := s.CreateTable(ctx, cfg.TableName)
	if err != nil {
		return fmt.Errorf("creating %s table: %w", cfg.TableName, err)
	}

	colID := make(map[string]string, len(cfg.Columns))
	for i, bc := range cfg.Columns {
		col, err := s.AddColumn(ctx, grid.Column{
			TableID:  table.ID,
			Key:      bc.Key,
			Name:     bc.Name,
			Type:     string(bc.Kind),
			Position: i,
		})
		if err != nil {
			return fmt.Errorf("creating column %s: %w", bc.Key, err)
		}
		colID[bc.Key] = col.ID
	}

	for i, values := range demoRows {
		row, err := s.AddRow(ctx, table.ID, i)
		if err != nil {
			return fmt.Errorf("creating demo row %d: %w", i, err)
		}
		cells := make([]grid.Cell, 0, len(values))
		for key, value := range values {
			id, ok := colID[key]
			if !ok {
				continue
			}
			cells = append(cells, grid.Cell{RowID: row.ID, ColumnID: id, Value: value})
		}
		if err := s.UpsertCells(ctx, cells); err != nil {
			return fmt.Errorf("writing demo row %d: %w", i, err)
		}
	}

	log.Printf("seed: created table %q with %d columns and %d rows",
		cfg.TableName, len(cfg.Columns), len(demoRows))
	return nil
}
