package parser

import (
	"errors"
	"testing"

	"github.com/ccollicutt/pvefw2sql/pkg/catalog"
)

const sampleLine = "PVEFW-HOST-IN 25/Dec/2024:10:00:00 +0000 DROP: IN=vmbr0 OUT= MAC=aa:bb:cc:dd:ee:ff:00:11:22:33:44:55:08:00 SRC=203.0.113.7 DST=192.0.2.10 LEN=60 TOS=0x00 PREC=0x00 TTL=52 ID=54321 PROTO=TCP SPT=40000 DPT=22 WINDOW=64240 RES=0x00 SYN URGP=0"

func newTestParser() *Parser {
	return New(catalog.Default())
}

func fieldValue(rec *LogRecord, key string) (string, bool) {
	for _, f := range rec.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func TestParser_Parse(t *testing.T) {
	p := newTestParser()

	rec, err := p.Parse(sampleLine)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if rec.Chain != "PVEFW-HOST-IN" {
		t.Errorf("Chain = %q, want PVEFW-HOST-IN", rec.Chain)
	}
	if rec.Action != "DROP" {
		t.Errorf("Action = %q, want DROP", rec.Action)
	}
	if !rec.TimestampValid || rec.Timestamp != "2024-12-25 10:00:00" {
		t.Errorf("Timestamp = %q (valid=%v), want 2024-12-25 10:00:00", rec.Timestamp, rec.TimestampValid)
	}
	if rec.RawTimestamp != "25/Dec/2024:10:00:00 +0000" {
		t.Errorf("RawTimestamp = %q", rec.RawTimestamp)
	}

	wantKeys := []string{"IN", "OUT", "MAC", "SRC", "DST", "LEN", "TOS", "PREC", "TTL", "ID",
		"PROTO", "SPT", "DPT", "WINDOW", "RES", "SYN", "URGP"}
	if len(rec.Fields) != len(wantKeys) {
		t.Fatalf("Got %d fields, want %d: %+v", len(rec.Fields), len(wantKeys), rec.Fields)
	}
	for i, key := range wantKeys {
		if rec.Fields[i].Key != key {
			t.Errorf("Fields[%d].Key = %q, want %q", i, rec.Fields[i].Key, key)
		}
	}

	if v, _ := fieldValue(rec, "OUT"); v != "" {
		t.Errorf("OUT = %q, want empty", v)
	}
	if v, _ := fieldValue(rec, "MAC"); v != "aa:bb:cc:dd:ee:ff:00:11:22:33:44:55:08:00" {
		t.Errorf("MAC = %q", v)
	}
	if v, _ := fieldValue(rec, "SYN"); v != "1" {
		t.Errorf("SYN = %q, want 1", v)
	}
}

func TestParser_Flags(t *testing.T) {
	p := newTestParser()
	header := "PVEFW-HOST-IN 25/Dec/2024:10:00:00 +0000 ACCEPT: "

	tests := []struct {
		name    string
		tail    string
		present []string
	}{
		{"all bare flags", "PROTO=TCP SYN ACK PSH RST FIN", []string{"SYN", "ACK", "PSH", "RST", "FIN"}},
		{"flag with value", "PROTO=TCP ACK=yes", []string{"ACK"}},
		{"flag with empty value", "PROTO=TCP FIN=", []string{"FIN"}},
		{"no flags", "PROTO=UDP SPT=53 DPT=53", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := p.Parse(header + tt.tail)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			present := make(map[string]bool)
			for _, f := range tt.present {
				present[f] = true
				if v, ok := fieldValue(rec, f); !ok || v != "1" {
					t.Errorf("%s = %q (present=%v), want 1", f, v, ok)
				}
			}
			for _, f := range catalog.Default().Flags() {
				if present[f] {
					continue
				}
				if _, ok := fieldValue(rec, f); ok {
					t.Errorf("%s should be absent", f)
				}
			}
		})
	}
}

func TestParser_StripsPrefix(t *testing.T) {
	p := newTestParser()

	line := "Dec 25 10:00:00 pve1 kernel: [12345.678] " + sampleLine
	rec, err := p.Parse(line)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Chain != "PVEFW-HOST-IN" {
		t.Errorf("Chain = %q, want PVEFW-HOST-IN", rec.Chain)
	}
}

func TestParser_Normalize(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name string
		line string
		want string
	}{
		{"no prefix", "PVEFW-HOST-IN rest", "PVEFW-HOST-IN rest"},
		{"syslog prefix", "pve kernel: PVEFW-HOST-OUT rest", "PVEFW-HOST-OUT rest"},
		{"earliest marker wins", "x PVEFW-FORWARD a PVEFW-HOST-IN b", "PVEFW-FORWARD a PVEFW-HOST-IN b"},
		{"no marker", "  tap100i0-IN rest  ", "tap100i0-IN rest"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Normalize(tt.line); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParser_NoMarkerStillParses(t *testing.T) {
	p := newTestParser()

	rec, err := p.Parse("tap100i0-IN 25/Dec/2024:10:00:00 -0500 ACCEPT: PROTO=ICMP TYPE=8 CODE=0")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Chain != "tap100i0-IN" {
		t.Errorf("Chain = %q, want tap100i0-IN", rec.Chain)
	}
	// The offset is dropped, not applied.
	if rec.Timestamp != "2024-12-25 10:00:00" {
		t.Errorf("Timestamp = %q, want 2024-12-25 10:00:00", rec.Timestamp)
	}
}

func TestParser_HeaderMismatch(t *testing.T) {
	p := newTestParser()

	lines := []string{
		"",
		"garbage",
		"PVEFW-HOST-IN DROP: IN=vmbr0",
		"PVEFW-HOST-IN 2024-12-25 10:00:00 DROP: IN=vmbr0",
		"PVEFW-HOST-IN 25/Dec/2024:10:00:00 DROP: IN=vmbr0",
		"PVEFW-HOST-IN 25/Dec/2024:10:00:00 +0000 DROP IN=vmbr0",
		"PVEFW-HOST-IN 25/Dec/2024:10:00:00 +0000 DROP:IN=vmbr0",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			rec, err := p.Parse(line)
			if rec != nil {
				t.Errorf("Parse() returned record %+v, want nil", rec)
			}
			if !errors.Is(err, ErrHeaderMismatch) {
				t.Errorf("Parse() error = %v, want ErrHeaderMismatch", err)
			}
			if errors.Is(err, ErrFieldMismatch) {
				t.Error("header mismatch must not match ErrFieldMismatch")
			}
		})
	}
}

func TestParser_FieldMismatch(t *testing.T) {
	p := newTestParser()
	header := "PVEFW-HOST-IN 25/Dec/2024:10:00:00 +0000 DROP: "

	tests := []struct {
		name  string
		tail  string
		token string
	}{
		{"bare non-flag token", "IN=vmbr0 DF SRC=10.0.0.1", "DF"},
		{"empty key", "IN=vmbr0 =x", "=x"},
		{"header column in tail", "IN=vmbr0 ACTION=ACCEPT", "ACTION=ACCEPT"},
		{"raw column in tail", "SRC=1.1.1.1 raw_log=x", "raw_log=x"},
		{"surrogate key in tail", "SRC=1.1.1.1 LOG_ID=7", "LOG_ID=7"},
		{
			"statement in key",
			"src)VALUES('a');DROP/**/TABLE/**/pve_firewall_logs;--=1",
			"src)VALUES('a');DROP/**/TABLE/**/pve_firewall_logs;--=1",
		},
		{"backtick in key", "IN`=vmbr0", "IN`=vmbr0"},
		{"hyphen in key", "X-Y=1", "X-Y=1"},
		{"key starting with digit", "1A=2", "1A=2"},
		{"quote in key", "SRC'=1", "SRC'=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := p.Parse(header + tt.tail)
			if rec != nil {
				t.Errorf("Parse() returned record, want nil")
			}
			if !errors.Is(err, ErrFieldMismatch) {
				t.Fatalf("Parse() error = %v, want ErrFieldMismatch", err)
			}

			var skipErr *SkipError
			if !errors.As(err, &skipErr) {
				t.Fatalf("error is %T, want *SkipError", err)
			}
			if skipErr.Token != tt.token {
				t.Errorf("Token = %q, want %q", skipErr.Token, tt.token)
			}
			if skipErr.Line != header+tt.tail {
				t.Errorf("Line = %q", skipErr.Line)
			}
		})
	}
}

func TestParser_InvalidTimestampKeepsRecord(t *testing.T) {
	p := newTestParser()

	rec, err := p.Parse("PVEFW-HOST-IN 31/Feb/2024:10:00:00 +0000 DROP: IN=vmbr0")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.TimestampValid {
		t.Error("TimestampValid = true, want false")
	}
	if rec.Timestamp != "" {
		t.Errorf("Timestamp = %q, want empty", rec.Timestamp)
	}

	cols := rec.Columns()
	if cols[1].Name != catalog.ColumnTimestamp || !cols[1].Null {
		t.Errorf("Columns()[1] = %+v, want null log_timestamp", cols[1])
	}
}

func TestParser_EmptyTail(t *testing.T) {
	p := newTestParser()

	rec, err := p.Parse("PVEFW-HOST-OUT 01/Jan/2025:00:00:01 +0100 ACCEPT:")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rec.Fields) != 0 {
		t.Errorf("Fields = %+v, want none", rec.Fields)
	}
}

func TestParser_RepeatedKey(t *testing.T) {
	p := newTestParser()

	rec, err := p.Parse("PVEFW-HOST-IN 25/Dec/2024:10:00:00 +0000 DROP: SRC=1.1.1.1 DST=2.2.2.2 src=3.3.3.3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("Got %d fields, want 2", len(rec.Fields))
	}
	if rec.Fields[0].Key != "SRC" || rec.Fields[0].Value != "3.3.3.3" {
		t.Errorf("Fields[0] = %+v, want SRC=3.3.3.3 in first position", rec.Fields[0])
	}
}

func TestLogRecord_Columns(t *testing.T) {
	rec := &LogRecord{
		Chain:          "PVEFW-HOST-IN",
		Timestamp:      "2024-12-25 10:00:00",
		TimestampValid: true,
		Action:         "DROP",
		Fields:         []Field{{Key: "SRC", Value: "10.0.0.1"}},
	}

	cols := rec.Columns()
	want := []Column{
		{Name: "pvefw_chain", Value: "PVEFW-HOST-IN"},
		{Name: "log_timestamp", Value: "2024-12-25 10:00:00"},
		{Name: "action", Value: "DROP"},
		{Name: "SRC", Value: "10.0.0.1"},
	}
	if len(cols) != len(want) {
		t.Fatalf("Got %d columns, want %d", len(cols), len(want))
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("Columns()[%d] = %+v, want %+v", i, cols[i], want[i])
		}
	}
}

func TestSkipError_Error(t *testing.T) {
	err := &SkipError{Reason: ErrFieldMismatch, Token: "DF"}
	if got := err.Error(); got != `malformed key=value pairs: unexpected token "DF"` {
		t.Errorf("Error() = %q", got)
	}

	err = &SkipError{Reason: ErrHeaderMismatch}
	if got := err.Error(); got != "malformed header" {
		t.Errorf("Error() = %q", got)
	}
}
