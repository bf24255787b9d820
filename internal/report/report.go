// Package report renders markup findings for the check and scan commands.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/open-cli-collective/loctag/internal/view"
	"github.com/open-cli-collective/loctag/pkg/compare"
	"github.com/open-cli-collective/loctag/pkg/markup"
)

// ErrBlocking is returned when findings must fail the run.
var ErrBlocking = errors.New("blocking markup errors found")

// DefaultContextWidth bounds the context excerpt shown per finding.
const DefaultContextWidth = 100

// Options controls report rendering.
type Options struct {
	PrimaryLabel   string
	ReferenceLabel string
	ContextWidth   int
	// FailOnAdvisory treats Both and ReferenceOnly findings as blocking.
	FailOnAdvisory bool
}

// Entry is one id's findings, ready for display.
type Entry struct {
	ID             string        `json:"id"`
	Class          string        `json:"class"`
	Label          string        `json:"label"`
	Blocking       bool          `json:"blocking"`
	Line           int           `json:"line,omitempty"`
	Codes          []markup.Code `json:"codes"`
	PrimaryCodes   []markup.Code `json:"primary_codes,omitempty"`
	ReferenceCodes []markup.Code `json:"reference_codes,omitempty"`
	Context        string        `json:"context,omitempty"`
}

// Summary is the JSON form of compare.Summary.
type Summary struct {
	Entries        int  `json:"entries"`
	Blocking       int  `json:"blocking"`
	Advisory       int  `json:"advisory"`
	PrimaryOnly    int  `json:"primary_only"`
	Both           int  `json:"both"`
	ReferenceOnly  int  `json:"reference_only"`
	PrimaryCodes   int  `json:"primary_codes"`
	ReferenceCodes int  `json:"reference_codes"`
	Failed         bool `json:"failed"`
}

// Report is the full rendered document.
type Report struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
	opts    Options
}

// Build turns comparison results into a report. Context text and line
// numbers come from the primary corpus, falling back to the reference.
func Build(results []compare.Result, primary, reference *compare.Corpus, opts Options) *Report {
	if opts.ContextWidth <= 0 {
		opts.ContextWidth = DefaultContextWidth
	}

	rep := &Report{
		Entries: make([]Entry, 0, len(results)),
		opts:    opts,
	}
	for _, res := range results {
		e := Entry{
			ID:             res.ID,
			Class:          res.Class.String(),
			Label:          opts.label(res.Class),
			Blocking:       res.Class.Blocking() || opts.FailOnAdvisory,
			Codes:          res.Codes.Codes(),
			PrimaryCodes:   res.Primary.Codes(),
			ReferenceCodes: res.Reference.Codes(),
		}
		rec, ok := primary.Record(res.ID)
		if !ok {
			rec, ok = reference.Record(res.ID)
		}
		if ok {
			e.Line = rec.StartLine
			e.Context = view.Truncate(view.Escape(rec.Text), opts.ContextWidth)
		}
		rep.Entries = append(rep.Entries, e)
	}

	s := compare.Summarize(results)
	rep.Summary = Summary{
		Entries:        s.Entries,
		PrimaryOnly:    s.PrimaryOnly,
		Both:           s.Both,
		ReferenceOnly:  s.ReferenceOnly,
		PrimaryCodes:   s.PrimaryCodes,
		ReferenceCodes: s.ReferenceCodes,
	}
	rep.Summary.Blocking, rep.Summary.Advisory = s.Blocking(), s.Advisory()
	if opts.FailOnAdvisory {
		rep.Summary.Blocking += rep.Summary.Advisory
		rep.Summary.Advisory = 0
	}
	rep.Summary.Failed = rep.Summary.Blocking > 0
	return rep
}

func (o Options) labels() (primary, reference string) {
	primary, reference = o.PrimaryLabel, o.ReferenceLabel
	if primary == "" {
		primary = "PRIMARY"
	}
	if reference == "" {
		reference = "REFERENCE"
	}
	return primary, reference
}

func (o Options) label(c compare.Classification) string {
	p, r := o.labels()
	switch c {
	case compare.Both:
		return "[" + p + `\` + r + "]"
	case compare.ReferenceOnly:
		return "[" + r + "]"
	default:
		return "[" + p + "]"
	}
}

// Err returns ErrBlocking when the report must fail the run.
func (rep *Report) Err() error {
	if rep.Summary.Failed {
		return ErrBlocking
	}
	return nil
}

// Render writes the report in the renderer's format.
func (rep *Report) Render(r *view.Renderer) error {
	switch r.Format() {
	case view.FormatJSON:
		return r.RenderJSON(rep)
	case view.FormatPlain:
		rep.renderPlain(r)
		return nil
	case view.FormatMarkdown, view.FormatHTML:
		return r.RenderMarkdown(rep.Markdown())
	default:
		rep.renderTable(r)
		return nil
	}
}

// Message formats one finding line in the console style:
//
//	Line 12, ID: 0123456789abcdef [Code 03]: opening tag has no closing tag #E. Context: '...'
func Message(e Entry, code markup.Code) string {
	return fmt.Sprintf("Line %d, ID: %s [Code %s]: %s. Context: '%s'",
		e.Line, e.ID, code.Number(), code.Description(), e.Context)
}

func (rep *Report) renderTable(r *view.Renderer) {
	if len(rep.Entries) == 0 {
		r.Success("All tags are valid")
		return
	}

	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	w := r.Writer()

	for _, e := range rep.Entries {
		prefix, c := "⚠", yellow
		if e.Blocking {
			prefix, c = "✗", red
		}
		for _, code := range e.Codes {
			_, _ = c.Fprintf(w, "%s %s ", prefix, e.Label)
			fmt.Fprintln(w, Message(e, code))
		}
	}
	fmt.Fprintln(w)
	rep.renderSummary(r)
}

func (rep *Report) renderSummary(r *view.Renderer) {
	s := rep.Summary
	p, ref := rep.opts.labels()

	// With FailOnAdvisory every entry counts as blocking, so the split by
	// class goes on the blocking line.
	switch {
	case s.Blocking > 0 && rep.opts.FailOnAdvisory:
		r.Error(fmt.Sprintf("Blocking errors: %d entries (%s: %d, %s\\%s: %d, %s: %d)",
			s.Blocking, p, s.PrimaryOnly, p, ref, s.Both, ref, s.ReferenceOnly))
	case s.Blocking > 0:
		r.Error(fmt.Sprintf("Blocking errors: %d entries", s.Blocking))
	}
	if s.Advisory > 0 {
		r.RenderText(fmt.Sprintf("⚠ Warnings: %d entries (%s\\%s: %d, %s: %d)",
			s.Advisory, p, ref, s.Both, ref, s.ReferenceOnly))
	}
	switch {
	case s.Blocking == 0:
		r.RenderText("These are warnings, not blocking errors.")
	case rep.opts.FailOnAdvisory && s.PrimaryOnly == 0:
		r.Error(fmt.Sprintf("Errors inherited from the %s file fail this run (--fail-on-advisory).", ref))
	case rep.opts.FailOnAdvisory:
		r.Error("All errors must be fixed (--fail-on-advisory).")
	default:
		r.Error(fmt.Sprintf("Errors present only in the %s file must be fixed.", p))
	}
}

func (rep *Report) renderPlain(r *view.Renderer) {
	var rows [][]string
	for _, e := range rep.Entries {
		for _, code := range e.Codes {
			rows = append(rows, []string{
				e.Class,
				e.ID,
				fmt.Sprintf("%d", e.Line),
				code.Number(),
				code.String(),
			})
		}
	}
	r.RenderTable(nil, rows)
}

// Markdown renders the report as a markdown document.
func (rep *Report) Markdown() string {
	var sb strings.Builder
	s := rep.Summary

	sb.WriteString("# Markup validation report\n\n")
	if len(rep.Entries) == 0 {
		sb.WriteString("All tags are valid.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "- Entries with errors: %d\n", s.Entries)
	fmt.Fprintf(&sb, "- Blocking: %d\n", s.Blocking)
	fmt.Fprintf(&sb, "- Advisory: %d\n\n", s.Advisory)

	headers := []string{"Status", "Label", "Line", "ID", "Code", "Message", "Context"}
	var rows [][]string
	for _, e := range rep.Entries {
		status := "warning"
		if e.Blocking {
			status = "**error**"
		}
		for _, code := range e.Codes {
			rows = append(rows, []string{
				status,
				e.Label,
				fmt.Sprintf("%d", e.Line),
				"`" + e.ID + "`",
				code.Number(),
				code.Description(),
				e.Context,
			})
		}
	}
	sb.WriteString(view.MarkdownTable(headers, rows))
	return sb.String()
}
