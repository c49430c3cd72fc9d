// Package codegen turns a builder config into source artifacts: a
// TypeScript row type, a data-grid component, and a SQL migration against
// the normalized schema. All generators are pure and deterministic — the
// same config always produces byte-identical output.
package codegen

import (
	"fmt"
	"strings"

	"github.com/buildy/tablemaker/internal/builder"
	"github.com/buildy/tablemaker/internal/grid"
)

// guard rejects configs no generator can produce a meaningful artifact
// for. Deliberately weaker than BuilderConfig.Validate: duplicate keys
// pass through and yield duplicate (invalid) field declarations, which is
// the caller's contract to uphold.
func guard(cfg builder.BuilderConfig) error {
	if cfg.TableName == "" {
		return grid.Validationf("table name is empty")
	}
	if len(cfg.Columns) == 0 {
		return grid.Validationf("table %q has no columns", cfg.TableName)
	}
	return nil
}

// GenerateTypes emits the row type declaration: one interface named
// <Pascal(tableName)>Row with one field per column, in column order.
func GenerateTypes(cfg builder.BuilderConfig) (string, error) {
	if err := guard(cfg); err != nil {
		return "", err
	}
	fields := make([]string, 0, len(cfg.Columns))
	for _, c := range cfg.Columns {
		ts, err := builder.TSType(c.Kind)
		if err != nil {
			return "", err
		}
		fields = append(fields, fmt.Sprintf("  %s: %s;", c.Key, ts))
	}
	return fmt.Sprintf("export interface %s {\n%s\n}",
		RowTypeName(cfg.TableName), strings.Join(fields, "\n")), nil
}
