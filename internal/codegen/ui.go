package codegen

import (
	"fmt"
	"strings"

	"github.com/buildy/tablemaker/internal/builder"
)

// GenerateUI emits a self-contained tanstack-table component. The output
// varies only along the enabled feature flags: each of sorting, search
// and pagination contributes exactly one row-model import and one wiring
// line, so the artifact compiles for every flag combination.
func GenerateUI(cfg builder.BuilderConfig) (string, error) {
	if err := guard(cfg); err != nil {
		return "", err
	}
	rowType := RowTypeName(cfg.TableName)

	fieldDecls := make([]string, 0, len(cfg.Columns))
	columnDefs := make([]string, 0, len(cfg.Columns))
	for _, c := range cfg.Columns {
		ts, err := builder.TSType(c.Kind)
		if err != nil {
			return "", err
		}
		fieldDecls = append(fieldDecls, fmt.Sprintf("%s: %s", c.Key, ts))
		columnDefs = append(columnDefs, fmt.Sprintf("  { accessorKey: '%s', header: '%s' }", c.Key, c.Name))
	}

	var sortingImport, searchImport, paginationImport string
	var sortingWire, searchWire, paginationWire string
	if cfg.Features.Sorting {
		sortingImport = ", getSortedRowModel"
		sortingWire = "getSortedRowModel: getSortedRowModel(),"
	}
	if cfg.Features.Search {
		searchImport = ", getFilteredRowModel"
		searchWire = "getFilteredRowModel: getFilteredRowModel(),"
	}
	if cfg.Features.Pagination {
		paginationImport = ", getPaginationRowModel"
		paginationWire = "getPaginationRowModel: getPaginationRowModel(),"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "import { ColumnDef, useReactTable, getCoreRowModel%s%s%s } from '@tanstack/react-table'\n",
		sortingImport, searchImport, paginationImport)
	b.WriteString("import { Table, TableBody, TableCell, TableHead, TableHeader, TableRow } from '@ui8kit/form'\n\n")
	fmt.Fprintf(&b, "export type %s = { %s }\n\n", rowType, strings.Join(fieldDecls, "; "))
	fmt.Fprintf(&b, "const columns: ColumnDef<%s>[] = [\n%s\n]\n\n", rowType, strings.Join(columnDefs, ",\n"))
	fmt.Fprintf(&b, "export function GeneratedTable({ data }: { data: %s[] }) {\n", rowType)
	b.WriteString("  const table = useReactTable({\n")
	b.WriteString("    data,\n")
	b.WriteString("    columns,\n")
	b.WriteString("    getCoreRowModel: getCoreRowModel(),\n")
	for _, wire := range []string{sortingWire, searchWire, paginationWire} {
		if wire != "" {
			b.WriteString("    " + wire + "\n")
		}
	}
	b.WriteString("  })\n\n")
	b.WriteString(`  return (
    <div className="rounded-md border">
      <Table>
        <TableHeader>
          {table.getHeaderGroups().map((hg) => (
            <TableRow key={hg.id}>
              {hg.headers.map((h) => (
                <TableHead key={h.id}>
                  {h.isPlaceholder ? null : (h.column.columnDef.header as any)}
                </TableHead>
              ))}
            </TableRow>
          ))}
        </TableHeader>
        <TableBody>
          {table.getRowModel().rows.map((row) => (
            <TableRow key={row.id}>
              {row.getVisibleCells().map((cell) => (
                <TableCell key={cell.id}>{String(cell.getValue() ?? '')}</TableCell>
              ))}
            </TableRow>
          ))}
        </TableBody>
      </Table>
    </div>
  )
}
`)
	return b.String(), nil
}
