package tsv

import (
	"fmt"
	"strings"
)

// Severity grades a format problem.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// ProblemKind classifies a structural defect in a localization file.
type ProblemKind string

const (
	ProblemBadHeader     ProblemKind = "bad-header"
	ProblemMissingTab    ProblemKind = "missing-tab"
	ProblemBlankInRecord ProblemKind = "blank-in-record"
	ProblemOrphanLine    ProblemKind = "orphan-line"
	ProblemExtraTabs     ProblemKind = "extra-tabs"
	ProblemEmptyText     ProblemKind = "empty-text"
)

// Problem is one structural finding of Validate.
type Problem struct {
	Line     int
	ID       string
	Kind     ProblemKind
	Severity Severity
	Message  string
}

func (p Problem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "line %d", p.Line)
	if p.ID != "" {
		fmt.Fprintf(&sb, ", ID %s", p.ID)
	}
	fmt.Fprintf(&sb, ": %s", p.Message)
	return sb.String()
}

// ValidateOptions tunes Validate.
type ValidateOptions struct {
	// Header is the required prefix of the first line. Empty means DefaultHeader.
	Header string
}

// Validate checks the file structure that Assemble takes for granted:
// the header, tab separators and record continuity. Unlike Assemble,
// a blank line inside a record is reported and closes the record.
func Validate(lines []string, opts ValidateOptions) []Problem {
	header := opts.Header
	if header == "" {
		header = DefaultHeader
	}

	var problems []Problem
	add := func(line int, id string, kind ProblemKind, sev Severity, format string, args ...any) {
		problems = append(problems, Problem{
			Line:     line,
			ID:       id,
			Kind:     kind,
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if len(lines) == 0 {
		add(1, "", ProblemBadHeader, SeverityError, "file is empty")
		return problems
	}
	if first := TrimEOL(lines[0]); !strings.HasPrefix(first, header) {
		add(1, "", ProblemBadHeader, SeverityError, "invalid header: expected %q, got %q", header, excerpt(first, 50))
	}

	var (
		buf       strings.Builder
		startLine int
		currentID string
		open      bool
	)

	closeRecord := func() {
		if open {
			problems = append(problems, validateRecord(buf.String(), startLine, currentID)...)
		}
		buf.Reset()
		open = false
		currentID = ""
	}

	for idx := 1; idx < len(lines); idx++ {
		lineNum := idx + 1
		line := TrimEOL(lines[idx])

		if strings.TrimSpace(line) == "" {
			if open {
				add(lineNum, currentID, ProblemBlankInRecord, SeverityError,
					"blank line inside record started on line %d; the record may be broken", startLine)
				buf.Reset()
				open = false
				currentID = ""
			}
			continue
		}

		if IsRecordStart(line) {
			closeRecord()
			open = true
			startLine = lineNum
			currentID = line[:IDLength]
			buf.WriteString(lines[idx])
			continue
		}

		if !open {
			if len(line) >= IDLength && IsID(line[:IDLength]) {
				add(lineNum, line[:IDLength], ProblemMissingTab, SeverityError,
					"missing tab separator after ID; line starts with %q", excerpt(line, 100))
				continue
			}
			add(lineNum, "", ProblemOrphanLine, SeverityError,
				"line does not start with a valid ID (%d hex characters + tab); it may be broken off a previous record: %q",
				IDLength, excerpt(line, 100))
			continue
		}
		if IsID(strings.TrimSpace(line)) {
			add(lineNum, currentID, ProblemMissingTab, SeverityWarning,
				"line %q looks like an ID without a tab separator; treated as part of record started on line %d",
				strings.TrimSpace(line), startLine)
		}
		buf.WriteString(lines[idx])
	}
	closeRecord()

	return problems
}

func validateRecord(raw string, startLine int, id string) []Problem {
	_, text, _ := strings.Cut(TrimEOL(raw), string(Separator))

	var problems []Problem
	if n := strings.Count(text, string(Separator)); n > 0 {
		problems = append(problems, Problem{
			Line:     startLine,
			ID:       id,
			Kind:     ProblemExtraTabs,
			Severity: SeverityError,
			Message:  fmt.Sprintf("text contains %d extra tab(s); tab is only allowed between ID and text: %q", n, excerpt(text, 100)),
		})
	}
	if strings.TrimSpace(text) == "" {
		problems = append(problems, Problem{
			Line:     startLine,
			ID:       id,
			Kind:     ProblemEmptyText,
			Severity: SeverityWarning,
			Message:  "empty text",
		})
	}
	return problems
}

// HasErrors reports whether any problem is an error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
