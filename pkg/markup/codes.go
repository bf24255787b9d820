// Package markup scans localized text for broken inline markup: color
// tags closed by #E, pipe-separated link tags and brace variables.
package markup

import (
	"fmt"
	"strings"
)

// Code identifies one kind of markup defect.
type Code uint8

const (
	RussianAfterHash           Code = iota + 1 // 01: Cyrillic letter right after '#'
	ClosingTagWithoutOpening                   // 02: '#E' with no open tag
	OpeningTagWithoutClosing                   // 03: tag never closed by '#E'
	LinkTagInvalid                             // 04: link tag with wrong part count
	UnbalancedBraces                           // 05: '{' and '}' counts differ
	ClosingBraceWithoutOpening                 // 06: '}' with no open brace
	OpeningBraceWithoutClosing                 // 07: '{' never closed
)

// AllCodes lists every code in display order.
var AllCodes = []Code{
	RussianAfterHash,
	ClosingTagWithoutOpening,
	OpeningTagWithoutClosing,
	LinkTagInvalid,
	UnbalancedBraces,
	ClosingBraceWithoutOpening,
	OpeningBraceWithoutClosing,
}

var codeNames = map[Code]string{
	RussianAfterHash:           "RUSSIAN_AFTER_HASH",
	ClosingTagWithoutOpening:   "CLOSING_TAG_WITHOUT_OPENING",
	OpeningTagWithoutClosing:   "OPENING_TAG_WITHOUT_CLOSING",
	LinkTagInvalid:             "LINK_TAG_INVALID",
	UnbalancedBraces:           "UNBALANCED_BRACES",
	ClosingBraceWithoutOpening: "CLOSING_BRACE_WITHOUT_OPENING",
	OpeningBraceWithoutClosing: "OPENING_BRACE_WITHOUT_CLOSING",
}

var codeDescriptions = map[Code]string{
	RussianAfterHash:           "Cyrillic letter after '#'; tags must use Latin letters or hex digits (0-9, A-F)",
	ClosingTagWithoutOpening:   "closing tag #E has no matching opening tag",
	OpeningTagWithoutClosing:   "opening tag has no closing tag #E",
	LinkTagInvalid:             "link tag must have 4 or 5 parts separated by '|'",
	UnbalancedBraces:           "unbalanced curly braces in variables",
	ClosingBraceWithoutOpening: "closing brace } has no matching opening {",
	OpeningBraceWithoutClosing: "opening brace { has no matching closing }",
}

// Valid reports whether c is one of the seven known codes.
func (c Code) Valid() bool {
	return c >= RussianAfterHash && c <= OpeningBraceWithoutClosing
}

// Number returns the two-digit display number, e.g. "03".
func (c Code) Number() string {
	return fmt.Sprintf("%02d", uint8(c))
}

// String returns the symbolic name, e.g. "OPENING_TAG_WITHOUT_CLOSING".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// Description returns a human-readable explanation of the defect.
func (c Code) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// MarshalText encodes the code by its symbolic name.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid code %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// ParseCode accepts either a symbolic name or a two-digit number.
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllCodes {
		if strings.EqualFold(s, c.String()) || s == c.Number() {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown error code %q", s)
}

// CodeSet is a set of codes. The zero value is the empty set.
type CodeSet uint8

// NewCodeSet builds a set from the given codes.
func NewCodeSet(codes ...Code) CodeSet {
	var s CodeSet
	for _, c := range codes {
		s = s.With(c)
	}
	return s
}

// With returns s plus c. Invalid codes are ignored.
func (s CodeSet) With(c Code) CodeSet {
	if !c.Valid() {
		return s
	}
	return s | 1<<(c-1)
}

// Has reports whether c is in s.
func (s CodeSet) Has(c Code) bool {
	return c.Valid() && s&(1<<(c-1)) != 0
}

// Union returns the codes present in either set.
func (s CodeSet) Union(o CodeSet) CodeSet {
	return s | o
}

// Empty reports whether s holds no codes.
func (s CodeSet) Empty() bool {
	return s == 0
}

// Len returns the number of codes in s.
func (s CodeSet) Len() int {
	n := 0
	for _, c := range AllCodes {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Codes returns the members of s in ascending order.
func (s CodeSet) Codes() []Code {
	var out []Code
	for _, c := range AllCodes {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String renders the set as "{01,03}".
func (s CodeSet) String() string {
	codes := s.Codes()
	nums := make([]string, len(codes))
	for i, c := range codes {
		nums[i] = c.Number()
	}
	return "{" + strings.Join(nums, ",") + "}"
}
