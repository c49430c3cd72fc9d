package codegen

import (
	"fmt"
	"strings"

	"github.com/buildy/tablemaker/internal/builder"
)

// sqlQuote escapes a value for a single-quoted SQL string literal.
func sqlQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// GenerateSQL emits one statement that inserts the table and its columns
// into the normalized schema. Position is the column's zero-based index.
// The column type written here is the kind's string name as-is — mapping
// kinds to real SQL column types is left to downstream tooling.
func GenerateSQL(cfg builder.BuilderConfig) (string, error) {
	if err := guard(cfg); err != nil {
		return "", err
	}
	clauses := make([]string, 0, len(cfg.Columns))
	for i, c := range cfg.Columns {
		clauses = append(clauses, fmt.Sprintf(
			"select new_table.id, '%s', '%s', '%s', %d::int, null::int, '{}'::jsonb",
			sqlQuote(c.Key), sqlQuote(c.Name), sqlQuote(string(c.Kind)), i))
	}
	var b strings.Builder
	b.WriteString("-- Requires normalized schema (tables, table_columns, table_rows, table_cells)\n")
	b.WriteString("-- If not installed, bootstrap it first (cmd/server creates it on startup).\n")
	b.WriteString("with new_table as (\n")
	fmt.Fprintf(&b, "  insert into public.tables(name) values ('%s')\n", sqlQuote(cfg.TableName))
	b.WriteString("  returning id\n")
	b.WriteString(")\n")
	b.WriteString("insert into public.table_columns (table_id, key, name, type, position, width, meta)\n")
	b.WriteString(strings.Join(clauses, "\nunion all\n"))
	b.WriteString(";")
	return b.String(), nil
}
