package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultDefinition []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the embedded
// definition is invalid, which is a build defect rather than a runtime one.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultDefinition)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded definition: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse decodes and validates a YAML catalog definition.
func Parse(data []byte) (*Catalog, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(def)
}

// New validates a definition and builds an immutable Catalog from it.
func New(def Definition) (*Catalog, error) {
	if err := Validate(&def); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	c := &Catalog{
		surrogateKey: def.SurrogateKey,
		rawColumn:    def.RawColumn,
		defaultType:  def.DefaultType,
		columns:      append([]Column(nil), def.Columns...),
		index:        make(map[string]int, len(def.Columns)),
		flags:        make(map[string]bool, len(def.Flags)),
		flagOrder:    append([]string(nil), def.Flags...),
		chainMarkers: append([]string(nil), def.ChainMarkers...),
	}
	for i, col := range c.columns {
		c.index[strings.ToUpper(col.Name)] = i
	}
	for _, f := range def.Flags {
		c.flags[strings.ToUpper(f)] = true
	}
	return c, nil
}

// Validate checks a definition for errors.
func Validate(def *Definition) error {
	if def.SurrogateKey.Name == "" || def.SurrogateKey.Type == "" {
		return errors.New("surrogate_key: name and type are required")
	}
	if def.RawColumn.Name == "" || def.RawColumn.Type == "" {
		return errors.New("raw_column: name and type are required")
	}
	if def.DefaultType == "" {
		return errors.New("default_type is required")
	}
	if len(def.Columns) == 0 {
		return errors.New("columns: at least one column is required")
	}

	// Column names are compared the way they end up in SQL: lower-cased.
	seen := map[string]bool{
		strings.ToLower(def.SurrogateKey.Name): true,
		strings.ToLower(def.RawColumn.Name):    true,
	}
	for i, col := range def.Columns {
		if col.Name == "" {
			return fmt.Errorf("columns[%d]: name is required", i)
		}
		if col.Type == "" {
			return fmt.Errorf("columns[%d] (%s): type is required", i, col.Name)
		}
		key := strings.ToLower(col.Name)
		if seen[key] {
			return fmt.Errorf("columns[%d] (%s): duplicate column name", i, col.Name)
		}
		seen[key] = true
	}

	for _, fixed := range []string{ColumnChain, ColumnTimestamp, ColumnAction} {
		if !seen[fixed] {
			return fmt.Errorf("columns: fixed column %q is missing", fixed)
		}
	}

	for i, f := range def.Flags {
		if !seen[strings.ToLower(f)] {
			return fmt.Errorf("flags[%d] (%s): not a catalog column", i, f)
		}
	}

	for i, m := range def.ChainMarkers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("chain_markers[%d]: marker is empty", i)
		}
	}

	return nil
}

// SurrogateKey returns the auto-incrementing primary key column.
func (c *Catalog) SurrogateKey() Column { return c.surrogateKey }

// RawColumn returns the column holding the original log line.
func (c *Catalog) RawColumn() Column { return c.rawColumn }

// Columns returns a copy of the known columns in table order.
func (c *Catalog) Columns() []Column {
	return append([]Column(nil), c.columns...)
}

// Lookup finds a column by name, ignoring case.
func (c *Catalog) Lookup(name string) (Column, bool) {
	i, ok := c.index[strings.ToUpper(name)]
	if !ok {
		return Column{}, false
	}
	return c.columns[i], true
}

// TypeOf returns the SQL type for a column, falling back to the default type
// for fields the catalog does not know.
func (c *Catalog) TypeOf(name string) string {
	if col, ok := c.Lookup(name); ok {
		return col.Type
	}
	return c.defaultType
}

// IsFlag reports whether name is a boolean protocol flag such as SYN.
func (c *Catalog) IsFlag(name string) bool {
	return c.flags[strings.ToUpper(name)]
}

// Flags returns the boolean flag names.
func (c *Catalog) Flags() []string {
	return append([]string(nil), c.flagOrder...)
}

// ChainMarkers returns the chain names used to find the start of a log entry.
func (c *Catalog) ChainMarkers() []string {
	return append([]string(nil), c.chainMarkers...)
}
