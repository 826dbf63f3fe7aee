package parser

import (
	"regexp"
	"strings"

	"github.com/ccollicutt/pvefw2sql/pkg/catalog"
)

// headerPattern matches "<chain> <dd/Mon/yyyy:HH:MM:SS ±HHMM> <action>: <tail>".
var headerPattern = regexp.MustCompile(
	`^(\S+)\s+` +
		`(\d{2}/[A-Za-z]{3}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4})\s+` +
		`(\w+):` +
		`(?:\s+(.*))?$`)

// keyPattern is the set of tail keys that may become column names.
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parser parses PVEFW log lines using the chain markers and flags of a catalog.
type Parser struct {
	catalog *catalog.Catalog
	markers []string
}

// New creates a Parser backed by the given catalog.
func New(c *catalog.Catalog) *Parser {
	return &Parser{
		catalog: c,
		markers: c.ChainMarkers(),
	}
}

// Normalize trims the line and drops any prefix (such as a syslog header)
// before the earliest chain marker. Lines without a marker are only trimmed.
func (p *Parser) Normalize(line string) string {
	line = strings.TrimSpace(line)

	start := -1
	for _, m := range p.markers {
		if i := strings.Index(line, m); i >= 0 && (start < 0 || i < start) {
			start = i
		}
	}
	if start > 0 {
		return line[start:]
	}
	return line
}

// Parse turns one raw line into a LogRecord.
// Lines that cannot be parsed return a *SkipError wrapping
// ErrHeaderMismatch or ErrFieldMismatch; nothing is partially ingested.
func (p *Parser) Parse(line string) (*LogRecord, error) {
	trimmed := strings.TrimSpace(line)
	clean := p.Normalize(trimmed)

	m := headerPattern.FindStringSubmatch(clean)
	if m == nil {
		return nil, &SkipError{Reason: ErrHeaderMismatch, Line: trimmed}
	}

	rec := &LogRecord{
		Chain:        m[1],
		RawTimestamp: m[2],
		Action:       m[3],
	}

	if ts, err := NormalizeTimestamp(rec.RawTimestamp); err == nil {
		rec.Timestamp = ts
		rec.TimestampValid = true
	}

	for _, tok := range strings.Fields(m[4]) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			// Protocol flags such as SYN are logged as bare words.
			if !p.catalog.IsFlag(tok) {
				return nil, &SkipError{Reason: ErrFieldMismatch, Line: trimmed, Token: tok}
			}
			key = tok
		}
		if !keyPattern.MatchString(key) || p.reserved(key) {
			return nil, &SkipError{Reason: ErrFieldMismatch, Line: trimmed, Token: tok}
		}
		if p.catalog.IsFlag(key) {
			value = "1"
		}
		rec.set(key, value)
	}

	return rec, nil
}

// reserved reports whether key names a column the tail may not set: the
// header columns, the raw line column or the surrogate key.
func (p *Parser) reserved(key string) bool {
	for _, name := range []string{
		catalog.ColumnChain,
		catalog.ColumnTimestamp,
		catalog.ColumnAction,
		p.catalog.RawColumn().Name,
		p.catalog.SurrogateKey().Name,
	} {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}
