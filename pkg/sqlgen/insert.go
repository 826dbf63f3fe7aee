package sqlgen

import (
	"strings"

	"github.com/ccollicutt/pvefw2sql/pkg/catalog"
	"github.com/ccollicutt/pvefw2sql/pkg/parser"
)

// Insert renders one INSERT statement for rec. The raw column comes first
// and holds rawLine, trimmed; the record's columns follow in record order.
// Absent values are written as NULL.
func Insert(table string, c *catalog.Catalog, rawLine string, rec *parser.LogRecord) string {
	cols := rec.Columns()

	names := make([]string, 0, len(cols)+1)
	values := make([]string, 0, len(cols)+1)

	names = append(names, ColumnName(c.RawColumn().Name))
	values = append(values, Literal(strings.TrimSpace(rawLine)))

	for _, col := range cols {
		names = append(names, ColumnName(col.Name))
		if col.Null {
			values = append(values, "NULL")
		} else {
			values = append(values, Literal(col.Value))
		}
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(values, ", "))
	b.WriteString(");\n")
	return b.String()
}
