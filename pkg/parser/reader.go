package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// MaxLineSize is the longest line the reader accepts.
const MaxLineSize = 1024 * 1024

// LineReader reads log lines sequentially. It is not safe for concurrent use.
type LineReader struct {
	scanner *bufio.Scanner
	lineNum int
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &LineReader{scanner: scanner}
}

// Next returns the next line.
// Returns io.EOF when the input is exhausted.
func (r *LineReader) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if r.scanner.Scan() {
		r.lineNum++
		return &LogLine{
			Content: r.scanner.Text(),
			LineNum: r.lineNum,
		}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", r.lineNum+1, err)
	}
	return nil, io.EOF
}
