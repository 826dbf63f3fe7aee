// Package output provides formatting for conversion summaries.
package output

import (
	"time"

	"github.com/ccollicutt/pvefw2sql/pkg/converter"
)

// Report is the complete conversion summary.
type Report struct {
	Summary  Summary
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	LinesRead         int
	Converted         int
	Skipped           int
	HeaderMismatches  int
	FieldMismatches   int
	InvalidTimestamps int
}

// Metadata provides context about the run.
type Metadata struct {
	Input    string
	Output   string
	Table    string
	Duration time.Duration
}

// NewReport creates a Report from a conversion result.
func NewReport(result *converter.Result) *Report {
	return &Report{
		Summary: Summary{
			LinesRead:         result.LinesRead,
			Converted:         result.Converted,
			Skipped:           result.Skipped(),
			HeaderMismatches:  result.HeaderMismatches,
			FieldMismatches:   result.FieldMismatches,
			InvalidTimestamps: result.InvalidTimestamps,
		},
		Metadata: Metadata{
			Input:    result.Input,
			Output:   result.Output,
			Table:    result.Table,
			Duration: result.Duration(),
		},
	}
}

// HasSkipped returns true if any line was dropped.
func (r *Report) HasSkipped() bool {
	return r.Summary.Skipped > 0
}
