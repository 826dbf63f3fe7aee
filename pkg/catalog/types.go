// Package catalog provides the static column catalog for PVEFW log tables.
package catalog

// Fixed column names taken from the log line header.
const (
	ColumnChain     = "pvefw_chain"
	ColumnTimestamp = "log_timestamp"
	ColumnAction    = "action"
)

// Column is a single known SQL column.
type Column struct {
	// Name is the field name as it appears in the log line.
	Name string `yaml:"name"`

	// Type is the SQL type descriptor used in CREATE TABLE.
	Type string `yaml:"type"`
}

// Definition is the YAML document the catalog is loaded from.
type Definition struct {
	SurrogateKey Column   `yaml:"surrogate_key"`
	RawColumn    Column   `yaml:"raw_column"`
	DefaultType  string   `yaml:"default_type"`
	Columns      []Column `yaml:"columns"`
	Flags        []string `yaml:"flags"`
	ChainMarkers []string `yaml:"chain_markers"`
}

// Catalog is a read-only view over a validated Definition.
// It is never mutated after construction and is safe to share.
type Catalog struct {
	surrogateKey Column
	rawColumn    Column
	defaultType  string
	columns      []Column
	index        map[string]int  // upper-cased name -> position in columns
	flags        map[string]bool // upper-cased flag names
	flagOrder    []string
	chainMarkers []string
}
