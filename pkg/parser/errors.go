package parser

import (
	"errors"
	"fmt"
)

// Skip reasons. Both are non-fatal: the line is dropped and the run continues.
var (
	// ErrHeaderMismatch means the line does not start with
	// "<chain> <timestamp> <action>:".
	ErrHeaderMismatch = errors.New("malformed header")

	// ErrFieldMismatch means the key=value tail contains a token that is
	// neither key=value nor a known flag.
	ErrFieldMismatch = errors.New("malformed key=value pairs")
)

// SkipError describes why a line was dropped.
type SkipError struct {
	// Reason is ErrHeaderMismatch or ErrFieldMismatch.
	Reason error

	// Line is the offending line, trimmed.
	Line string

	// Token is the offending tail token for field mismatches.
	Token string
}

func (e *SkipError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%v: unexpected token %q", e.Reason, e.Token)
	}
	return e.Reason.Error()
}

func (e *SkipError) Unwrap() error {
	return e.Reason
}
