package output

import (
	"context"
	"io"
)

// Formatter renders a conversion report.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name.
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds per-reason skip counts and timing.
	Verbose bool

	// Quiet enables a one-line summary.
	Quiet bool
}
