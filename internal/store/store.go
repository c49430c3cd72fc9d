// Package store persists the normalized grid entities. The four
// repository interfaces mirror the remote-store contract the CRUD app is
// built against; SQLStore backs them with sqlite or Postgres, MemoryStore
// keeps everything in process for demos and tests.
package store

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/buildy/tablemaker/internal/grid"
)

// Order is the row ordering direction for ListRows.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ListRowsOptions paginates and orders a row listing.
type ListRowsOptions struct {
	Limit  int
	Offset int
	Order  Order
}

// DefaultRowLimit caps unbounded row listings.
const DefaultRowLimit = 500

// Tables is the repository for Table entities.
type Tables interface {
	CreateTable(ctx context.Context, name string) (grid.Table, error)
	TableByID(ctx context.Context, id string) (grid.Table, error)
	TableByName(ctx context.Context, name string) (grid.Table, error)
	ListTables(ctx context.Context) ([]grid.Table, error)
}

// Columns is the repository for Column entities. Listings are ordered by
// position ascending.
type Columns interface {
	ListColumns(ctx context.Context, tableID string) ([]grid.Column, error)
	AddColumn(ctx context.Context, col grid.Column) (grid.Column, error)
	UpdateColumn(ctx context.Context, columnID string, patch ColumnPatch) error
	DeleteColumn(ctx context.Context, columnID string) error
}

// ColumnPatch is a partial column update; nil fields are left untouched.
type ColumnPatch struct {
	Name     *string
	Type     *string
	Position *int
	Width    *int
	Meta     map[string]any
}

// Rows is the repository for Row entities.
type Rows interface {
	ListRows(ctx context.Context, tableID string, opts ListRowsOptions) ([]grid.Row, error)
	AddRow(ctx context.Context, tableID string, position int) (grid.Row, error)
	DeleteRow(ctx context.Context, rowID string) error
}

// Cells is the repository for Cell entities. Upserts are keyed on the
// (row_id, column_id) pair, last write wins.
type Cells interface {
	CellsByRows(ctx context.Context, rowIDs []string) ([]grid.Cell, error)
	UpsertCell(ctx context.Context, cell grid.Cell) error
	UpsertCells(ctx context.Context, cells []grid.Cell) error
}

// Store aggregates the four repositories over one backend.
type Store interface {
	Tables
	Columns
	Rows
	Cells
}

// rowIDGen mints monotonic ULIDs for row ids so freshly appended rows
// sort by creation time even when positions collide.
type rowIDGen struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newRowIDGen() *rowIDGen {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &rowIDGen{entropy: ulid.Monotonic(src, 0)}
}

func (g *rowIDGen) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// newID mints ids for tables, columns and cells.
func newID() string {
	return uuid.NewString()
}
