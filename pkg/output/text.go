package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "pvefw2sql: %d converted, %d skipped\n",
		report.Summary.Converted,
		report.Summary.Skipped)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	ew := &errWriter{w: w}

	if report.Metadata.Input != "" {
		ew.printf("Read %s, wrote %s (table %s)\n",
			report.Metadata.Input,
			report.Metadata.Output,
			report.Metadata.Table)
	}

	ew.printf("Converted %d of %d line(s), skipped %d\n",
		report.Summary.Converted,
		report.Summary.LinesRead,
		report.Summary.Skipped)

	if f.opts.Verbose {
		ew.printf("  Malformed header:     %d\n", report.Summary.HeaderMismatches)
		ew.printf("  Malformed key=value:  %d\n", report.Summary.FieldMismatches)
		ew.printf("  Timestamp as NULL:    %d\n", report.Summary.InvalidTimestamps)
		ew.printf("Duration: %s\n", report.Metadata.Duration.Round(1e6))
	} else if report.Summary.InvalidTimestamps > 0 {
		ew.printf("%d timestamp(s) could not be parsed and were written as NULL\n",
			report.Summary.InvalidTimestamps)
	}

	return ew.err
}

// errWriter keeps the first write error so formatting code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
