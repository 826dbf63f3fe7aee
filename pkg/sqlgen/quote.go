// Package sqlgen renders CREATE TABLE and INSERT statements for PVEFW records.
package sqlgen

import (
	"fmt"
	"regexp"
	"strings"
)

// reservedWords contains keywords that MySQL or SQLite reject as bare
// column names. Only words that can plausibly appear as log field names
// are listed.
var reservedWords = map[string]bool{
	"action": true, "add": true, "all": true, "and": true, "as": true,
	"by": true, "check": true, "column": true, "create": true,
	"default": true, "delete": true, "desc": true, "drop": true,
	"from": true, "group": true, "in": true, "index": true, "insert": true,
	"interval": true, "key": true, "limit": true, "match": true, "not": true,
	"null": true, "of": true, "on": true, "or": true, "order": true, "out": true,
	"over": true, "primary": true, "range": true, "references": true,
	"row": true, "rows": true, "select": true, "set": true, "table": true,
	"to": true, "union": true, "update": true, "values": true,
	"where": true, "window": true, "with": true,
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidateTableName checks that name can be used unquoted as a table
// name, optionally qualified by a schema ("logs.pve_firewall_logs").
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q (use letters, digits and underscores)", name)
	}
	return nil
}

// ColumnName returns the SQL column name for a field: lower-cased, and
// wrapped in backticks when it is a reserved word.
func ColumnName(field string) string {
	name := strings.ToLower(field)
	if reservedWords[name] {
		return "`" + name + "`"
	}
	return name
}

// Literal returns value as a single-quoted SQL string literal with embedded
// single quotes doubled.
func Literal(value string) string {
	return "'" + Escape(value) + "'"
}

// Escape doubles single quotes in value.
func Escape(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
