// Package converter drives the log-to-SQL conversion of a whole input.
package converter

import (
	"errors"
	"time"
)

// DefaultTable is the table name used when none is given.
const DefaultTable = "pve_firewall_logs"

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Result summarizes a conversion run.
type Result struct {
	// Input and Output are the paths used, when converting files.
	Input  string
	Output string

	// Table is the table name written into the statements.
	Table string

	// LinesRead is the total number of input lines, blank ones included.
	LinesRead int

	// BlankLines are empty or whitespace-only lines. They are ignored.
	BlankLines int

	// Converted is the number of INSERT statements written.
	Converted int

	// HeaderMismatches and FieldMismatches count skipped lines by reason.
	HeaderMismatches int
	FieldMismatches  int

	// InvalidTimestamps counts converted lines whose timestamp could not be
	// reparsed and was written as NULL.
	InvalidTimestamps int

	StartTime time.Time
	EndTime   time.Time
}

// Skipped returns the number of dropped lines.
func (r *Result) Skipped() int {
	return r.HeaderMismatches + r.FieldMismatches
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
