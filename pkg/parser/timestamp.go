package parser

import (
	"fmt"
	"time"
)

// Timestamp layouts.
const (
	// LogTimestampLayout is the header timestamp format, e.g.
	// "25/Dec/2024:10:00:00 +0000".
	LogTimestampLayout = "02/Jan/2006:15:04:05 -0700"

	// SQLTimestampLayout is the DATETIME literal format written to SQL.
	SQLTimestampLayout = "2006-01-02 15:04:05"
)

// NormalizeTimestamp reparses a header timestamp into SQL DATETIME form.
// The UTC offset is consumed but not applied: the result is the wall time
// as logged, not converted to UTC.
func NormalizeTimestamp(raw string) (string, error) {
	ts, err := time.Parse(LogTimestampLayout, raw)
	if err != nil {
		return "", fmt.Errorf("parsing timestamp %q: %w", raw, err)
	}
	return ts.Format(SQLTimestampLayout), nil
}
