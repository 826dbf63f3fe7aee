// Package parser turns raw PVEFW log lines into structured records.
package parser

import (
	"strings"

	"github.com/ccollicutt/pvefw2sql/pkg/catalog"
)

// LogLine is a raw log line as read from the input.
type LogLine struct {
	// Content is the raw line text without the trailing newline.
	Content string

	// LineNum is the 1-based line number in the input.
	LineNum int
}

// Field is a single key=value pair from the tail of a log line.
type Field struct {
	Key   string
	Value string
}

// LogRecord is one parsed log line. It lives only as long as it takes to
// serialize it.
type LogRecord struct {
	Chain string

	// Timestamp is the canonical "2006-01-02 15:04:05" form of the header
	// timestamp. It is empty when TimestampValid is false.
	Timestamp      string
	TimestampValid bool

	// RawTimestamp is the timestamp token exactly as it appeared in the line.
	RawTimestamp string

	Action string

	// Fields holds the key=value tail in first-seen order.
	Fields []Field
}

// Column is a named value ready for serialization. Null is set when the
// value is absent and must be written as SQL NULL.
type Column struct {
	Name  string
	Value string
	Null  bool
}

// Columns returns the record's values in output order: the three header
// columns followed by the tail fields.
func (r *LogRecord) Columns() []Column {
	cols := make([]Column, 0, 3+len(r.Fields))
	cols = append(cols,
		Column{Name: catalog.ColumnChain, Value: r.Chain},
		Column{Name: catalog.ColumnTimestamp, Value: r.Timestamp, Null: !r.TimestampValid},
		Column{Name: catalog.ColumnAction, Value: r.Action},
	)
	for _, f := range r.Fields {
		cols = append(cols, Column{Name: f.Key, Value: f.Value})
	}
	return cols
}

// set assigns a tail field. A repeated key (compared case-insensitively,
// since column names are lower-cased) keeps its original position and
// takes the new value.
func (r *LogRecord) set(key, value string) {
	for i := range r.Fields {
		if strings.EqualFold(r.Fields[i].Key, key) {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Key: key, Value: value})
}
