package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/buildy/tablemaker/internal/grid"
)

// Dialect selects placeholder style and column affinities for SQLStore.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLStore implements Store over database/sql. The same statements run
// against sqlite (default, pure Go) and Postgres (the hosted backend the
// original system persisted to); only placeholders differ.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	rowIDs  *rowIDGen
}

// NewSQLStore wraps an opened database handle.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, rowIDs: newRowIDGen()}
}

// rebind converts ?-style placeholders to $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateSchema creates the four normalized tables. Run during startup,
// before serving; safe to re-run.
func (s *SQLStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tables (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			created_by TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS table_columns (
			id       TEXT PRIMARY KEY,
			table_id TEXT NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
			key      TEXT NOT NULL,
			name     TEXT NOT NULL,
			type     TEXT NOT NULL,
			position INTEGER NOT NULL,
			width    INTEGER,
			meta     TEXT NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS table_rows (
			id         TEXT PRIMARY KEY,
			table_id   TEXT NOT NULL REFERENCES tables(id) ON DELETE CASCADE,
			position   INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS table_cells (
			id         TEXT PRIMARY KEY,
			row_id     TEXT NOT NULL REFERENCES table_rows(id) ON DELETE CASCADE,
			column_id  TEXT NOT NULL REFERENCES table_columns(id) ON DELETE CASCADE,
			value      TEXT,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (row_id, column_id)
		);

		CREATE INDEX IF NOT EXISTS idx_table_columns_table
			ON table_columns (table_id, position);
		CREATE INDEX IF NOT EXISTS idx_table_rows_table
			ON table_rows (table_id, position);
		CREATE INDEX IF NOT EXISTS idx_table_cells_row
			ON table_cells (row_id);
	`)
	return grid.Backend("creating schema", err)
}

func (s *SQLStore) CreateTable(ctx context.Context, name string) (grid.Table, error) {
	now := time.Now().UTC()
	t := grid.Table{ID: newID(), Name: name, CreatedAt: now, UpdatedAt: now}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO tables (id, name, created_at, updated_at, created_by) VALUES (?, ?, ?, ?, ?)`),
		t.ID, t.Name, t.CreatedAt, t.UpdatedAt, t.CreatedBy)
	if err != nil {
		return grid.Table{}, grid.Backend("creating table", err)
	}
	return t, nil
}

func (s *SQLStore) TableByID(ctx context.Context, id string) (grid.Table, error) {
	return s.scanTable(ctx,
		`SELECT id, name, created_at, updated_at, created_by FROM tables WHERE id = ?`, id)
}

func (s *SQLStore) TableByName(ctx context.Context, name string) (grid.Table, error) {
	return s.scanTable(ctx,
		`SELECT id, name, created_at, updated_at, created_by FROM tables WHERE name = ?`, name)
}

func (s *SQLStore) scanTable(ctx context.Context, query string, arg any) (grid.Table, error) {
	var t grid.Table
	err := s.db.QueryRowContext(ctx, s.rebind(query), arg).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy)
	if err == sql.ErrNoRows {
		return grid.Table{}, fmt.Errorf("table %v: %w", arg, grid.ErrNotFound)
	}
	if err != nil {
		return grid.Table{}, grid.Backend("loading table", err)
	}
	return t, nil
}

func (s *SQLStore) ListTables(ctx context.Context) ([]grid.Table, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, name, created_at, updated_at, created_by FROM tables ORDER BY updated_at DESC`))
	if err != nil {
		return nil, grid.Backend("listing tables", err)
	}
	defer rows.Close()
	var out []grid.Table
	for rows.Next() {
		var t grid.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy); err != nil {
			return nil, grid.Backend("scanning table", err)
		}
		out = append(out, t)
	}
	return out, grid.Backend("listing tables", rows.Err())
}

func (s *SQLStore) ListColumns(ctx context.Context, tableID string) ([]grid.Column, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, table_id, key, name, type, position, width, meta
		 FROM table_columns WHERE table_id = ? ORDER BY position ASC`), tableID)
	if err != nil {
		return nil, grid.Backend("listing columns", err)
	}
	defer rows.Close()
	var out []grid.Column
	for rows.Next() {
		var c grid.Column
		var width sql.NullInt64
		var meta []byte
		if err := rows.Scan(&c.ID, &c.TableID, &c.Key, &c.Name, &c.Type, &c.Position, &width, &meta); err != nil {
			return nil, grid.Backend("scanning column", err)
		}
		if width.Valid {
			w := int(width.Int64)
			c.Width = &w
		}
		c.Meta = map[string]any{}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &c.Meta); err != nil {
				return nil, grid.Backend("decoding column meta", err)
			}
		}
		out = append(out, c)
	}
	return out, grid.Backend("listing columns", rows.Err())
}

func (s *SQLStore) AddColumn(ctx context.Context, col grid.Column) (grid.Column, error) {
	col.ID = newID()
	if col.Meta == nil {
		col.Meta = map[string]any{}
	}
	meta, err := json.Marshal(col.Meta)
	if err != nil {
		return grid.Column{}, grid.Backend("encoding column meta", err)
	}
	var width sql.NullInt64
	if col.Width != nil {
		width = sql.NullInt64{Int64: int64(*col.Width), Valid: true}
	}
	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO table_columns (id, table_id, key, name, type, position, width, meta)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		col.ID, col.TableID, col.Key, col.Name, col.Type, col.Position, width, meta)
	if err != nil {
		return grid.Column{}, grid.Backend("adding column", err)
	}
	return col, nil
}

func (s *SQLStore) UpdateColumn(ctx context.Context, columnID string, patch ColumnPatch) error {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets, args = append(sets, "name = ?"), append(args, *patch.Name)
	}
	if patch.Type != nil {
		sets, args = append(sets, "type = ?"), append(args, *patch.Type)
	}
	if patch.Position != nil {
		sets, args = append(sets, "position = ?"), append(args, *patch.Position)
	}
	if patch.Width != nil {
		sets, args = append(sets, "width = ?"), append(args, *patch.Width)
	}
	if patch.Meta != nil {
		meta, err := json.Marshal(patch.Meta)
		if err != nil {
			return grid.Backend("encoding column meta", err)
		}
		sets, args = append(sets, "meta = ?"), append(args, meta)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, columnID)
	res, err := s.db.ExecContext(ctx, s.rebind(
		"UPDATE table_columns SET "+strings.Join(sets, ", ")+" WHERE id = ?"), args...)
	if err != nil {
		return grid.Backend("updating column", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("column %s: %w", columnID, grid.ErrNotFound)
	}
	return nil
}

func (s *SQLStore) DeleteColumn(ctx context.Context, columnID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM table_columns WHERE id = ?`), columnID)
	if err != nil {
		return grid.Backend("deleting column", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("column %s: %w", columnID, grid.ErrNotFound)
	}
	return nil
}

func (s *SQLStore) ListRows(ctx context.Context, tableID string, opts ListRowsOptions) ([]grid.Row, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRowLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	dir := "ASC"
	if opts.Order == Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(
		`SELECT id, table_id, position, created_at, updated_at
		 FROM table_rows WHERE table_id = ?
		 ORDER BY position %s, id %s LIMIT ? OFFSET ?`, dir, dir)
	rows, err := s.db.QueryContext(ctx, s.rebind(query), tableID, limit, offset)
	if err != nil {
		return nil, grid.Backend("listing rows", err)
	}
	defer rows.Close()
	var out []grid.Row
	for rows.Next() {
		var r grid.Row
		if err := rows.Scan(&r.ID, &r.TableID, &r.Position, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, grid.Backend("scanning row", err)
		}
		out = append(out, r)
	}
	return out, grid.Backend("listing rows", rows.Err())
}

func (s *SQLStore) AddRow(ctx context.Context, tableID string, position int) (grid.Row, error) {
	now := time.Now().UTC()
	r := grid.Row{ID: s.rowIDs.next(), TableID: tableID, Position: position, CreatedAt: now, UpdatedAt: now}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO table_rows (id, table_id, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		r.ID, r.TableID, r.Position, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return grid.Row{}, grid.Backend("adding row", err)
	}
	return r, nil
}

func (s *SQLStore) DeleteRow(ctx context.Context, rowID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM table_rows WHERE id = ?`), rowID)
	if err != nil {
		return grid.Backend("deleting row", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("row %s: %w", rowID, grid.ErrNotFound)
	}
	return nil
}

func (s *SQLStore) CellsByRows(ctx context.Context, rowIDs []string) ([]grid.Cell, error) {
	if len(rowIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(rowIDs))
	args := make([]any, len(rowIDs))
	for i, id := range rowIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(
		`SELECT id, row_id, column_id, value, updated_at
		 FROM table_cells WHERE row_id IN (%s)
		 ORDER BY row_id, column_id`, strings.Join(placeholders, ", "))
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, grid.Backend("listing cells", err)
	}
	defer rows.Close()
	var out []grid.Cell
	for rows.Next() {
		var c grid.Cell
		var value []byte
		if err := rows.Scan(&c.ID, &c.RowID, &c.ColumnID, &value, &c.UpdatedAt); err != nil {
			return nil, grid.Backend("scanning cell", err)
		}
		if len(value) > 0 {
			if err := json.Unmarshal(value, &c.Value); err != nil {
				return nil, grid.Backend("decoding cell value", err)
			}
		}
		out = append(out, c)
	}
	return out, grid.Backend("listing cells", rows.Err())
}

func (s *SQLStore) UpsertCell(ctx context.Context, cell grid.Cell) error {
	return s.UpsertCells(ctx, []grid.Cell{cell})
}

func (s *SQLStore) UpsertCells(ctx context.Context, cells []grid.Cell) error {
	if len(cells) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, c := range cells {
		value, err := json.Marshal(c.Value)
		if err != nil {
			return grid.Backend("encoding cell value", err)
		}
		_, err = s.db.ExecContext(ctx, s.rebind(
			`INSERT INTO table_cells (id, row_id, column_id, value, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (row_id, column_id)
			 DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
			newID(), c.RowID, c.ColumnID, value, now)
		if err != nil {
			return grid.Backend("upserting cell", err)
		}
	}
	return nil
}
