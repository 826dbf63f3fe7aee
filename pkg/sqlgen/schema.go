package sqlgen

import (
	"fmt"
	"strings"

	"github.com/ccollicutt/pvefw2sql/pkg/catalog"
)

// CreateTable renders the CREATE TABLE IF NOT EXISTS statement for table.
// Columns are the surrogate key, the three header columns, the rest of the
// catalog in catalog order, and finally the raw log column.
func CreateTable(table string, c *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("-- Auto-generated CREATE TABLE statement for PVE Firewall logs\n")
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", table)

	key := c.SurrogateKey()
	writeColumn(&b, key.Name, key.Type)

	fixed := []string{catalog.ColumnChain, catalog.ColumnTimestamp, catalog.ColumnAction}
	for _, name := range fixed {
		writeColumn(&b, name, c.TypeOf(name))
	}

	for _, col := range c.Columns() {
		if isFixed(col.Name, fixed) {
			continue
		}
		writeColumn(&b, col.Name, col.Type)
	}

	raw := c.RawColumn()
	fmt.Fprintf(&b, "    %s %s\n", ColumnName(raw.Name), raw.Type)
	b.WriteString(");\n\n")
	b.WriteString("-- DML to insert data\n")

	return b.String()
}

func writeColumn(b *strings.Builder, name, sqlType string) {
	fmt.Fprintf(b, "    %s %s,\n", ColumnName(name), sqlType)
}

func isFixed(name string, fixed []string) bool {
	for _, f := range fixed {
		if strings.EqualFold(name, f) {
			return true
		}
	}
	return false
}
