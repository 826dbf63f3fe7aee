package converter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ccollicutt/pvefw2sql/pkg/catalog"
	"github.com/ccollicutt/pvefw2sql/pkg/parser"
	"github.com/ccollicutt/pvefw2sql/pkg/sqlgen"
)

// Converter turns PVEFW log input into SQL text.
type Converter struct {
	table    string
	catalog  *catalog.Catalog
	parser   *parser.Parser
	warnings io.Writer
}

// Option configures a Converter.
type Option func(*Converter)

// WithTable sets the target table name.
func WithTable(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.table = name
		}
	}
}

// WithWarnings sets where per-line warnings are written (default: discarded).
func WithWarnings(w io.Writer) Option {
	return func(c *Converter) {
		if w != nil {
			c.warnings = w
		}
	}
}

// WithCatalog replaces the built-in column catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Converter) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// New creates a Converter. It fails if the table name is not a plain
// SQL identifier.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		table:    DefaultTable,
		catalog:  catalog.Default(),
		warnings: io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := sqlgen.ValidateTableName(c.table); err != nil {
		return nil, err
	}
	c.parser = parser.New(c.catalog)

	return c, nil
}

// Table returns the target table name.
func (c *Converter) Table() string {
	return c.table
}

// ConvertFile converts the log file at input and writes SQL to output.
// The output file is only created once the input has been opened.
func (c *Converter) ConvertFile(ctx context.Context, input, output string) (*Result, error) {
	in, err := os.Open(input) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(output) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}

	result, err := c.Convert(ctx, in, out)
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing output: %w", closeErr)
	}
	if err != nil {
		return result, err
	}

	result.Input = input
	result.Output = output
	return result, nil
}

// Convert reads log lines from r and writes the schema followed by one
// INSERT per parseable line to w. Malformed lines are reported on the
// warnings writer and skipped.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (*Result, error) {
	result := &Result{
		Table:     c.table,
		StartTime: time.Now(),
	}

	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(sqlgen.CreateTable(c.table, c.catalog)); err != nil {
		return result, fmt.Errorf("writing schema: %w", err)
	}

	lines := parser.NewLineReader(r)
	for {
		line, err := lines.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			result.EndTime = time.Now()
			_ = bw.Flush()
			return result, err
		}
		result.LinesRead++

		if strings.TrimSpace(line.Content) == "" {
			result.BlankLines++
			continue
		}

		rec, err := c.parser.Parse(line.Content)
		var skipErr *parser.SkipError
		if errors.As(err, &skipErr) {
			c.skip(result, line, skipErr)
			continue
		}
		if err != nil {
			result.EndTime = time.Now()
			_ = bw.Flush()
			return result, fmt.Errorf("parsing line %d: %w", line.LineNum, err)
		}
		if !rec.TimestampValid {
			result.InvalidTimestamps++
		}

		stmt := sqlgen.Insert(c.table, c.catalog, line.Content, rec)
		if _, err := bw.WriteString(stmt); err != nil {
			return result, fmt.Errorf("writing line %d: %w", line.LineNum, err)
		}
		result.Converted++
	}

	if err := bw.Flush(); err != nil {
		return result, fmt.Errorf("writing output: %w", err)
	}
	result.EndTime = time.Now()

	return result, nil
}

func (c *Converter) skip(result *Result, line *parser.LogLine, err *parser.SkipError) {
	text := strings.TrimSpace(line.Content)

	switch {
	case errors.Is(err, parser.ErrHeaderMismatch):
		result.HeaderMismatches++
		fmt.Fprintf(c.warnings, "Warning: line %d: skipping malformed line: %s\n", line.LineNum, text)
	case errors.Is(err, parser.ErrFieldMismatch):
		result.FieldMismatches++
		fmt.Fprintf(c.warnings, "Warning: line %d: could not parse key-value pairs (%v): %s\n", line.LineNum, err, text)
	}
}
