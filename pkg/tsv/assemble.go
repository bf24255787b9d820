// Package tsv reads localization files: one header line followed by
// records of the form "<16 hex id>\t<text>", where text may continue over
// several physical lines.
package tsv

import (
	"strings"
)

// IDLength is the number of hex characters in a record id.
const IDLength = 16

// Separator splits a record's id from its text.
const Separator = '\t'

// Record is one logical entry of a localization file.
type Record struct {
	ID        string
	StartLine int // 1-based; the header is line 1
	Text      string
}

// IsRecordStart reports whether line begins a new record: exactly 16 hex
// characters followed by a tab.
func IsRecordStart(line string) bool {
	if len(line) <= IDLength || line[IDLength] != Separator {
		return false
	}
	return IsID(line[:IDLength])
}

// IsID reports whether s is a well-formed record id.
func IsID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

// Assemble groups the physical lines of a file into records. lines holds
// the whole file, header first, each line keeping its terminator (see
// Lines). Lines that do not start a record are appended to the open record;
// blank lines are skipped. A record whose text has no separator is dropped.
func Assemble(lines []string) []Record {
	var (
		records   []Record
		buf       strings.Builder
		startLine int
		open      bool
	)

	flush := func() {
		if !open {
			return
		}
		if rec, ok := buildRecord(buf.String(), startLine); ok {
			records = append(records, rec)
		}
		buf.Reset()
		open = false
	}

	for idx, line := range lines {
		if idx == 0 {
			continue // header
		}
		trimmed := TrimEOL(line)
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		if IsRecordStart(trimmed) {
			flush()
			open = true
			startLine = idx + 1
			buf.WriteString(line)
			continue
		}

		if open {
			buf.WriteString(line)
		}
	}
	flush()

	return records
}

func buildRecord(raw string, startLine int) (Record, bool) {
	raw = TrimEOL(raw)
	id, text, ok := strings.Cut(raw, string(Separator))
	if !ok {
		return Record{}, false
	}
	return Record{ID: id, StartLine: startLine, Text: text}, true
}

// TrimEOL strips trailing carriage returns and newlines.
func TrimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
