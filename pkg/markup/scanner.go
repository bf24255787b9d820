package markup

import (
	"strings"
)

// linkRange is a half-open rune range [start, end) covering a <...> span.
type linkRange struct {
	start int
	end   int
}

// tagFrame is an opening tag waiting for its '#E'.
type tagFrame struct {
	offset int
	tag    string
}

// Scan checks the markup in one record's text and returns every defect found.
//
// Three independent checks run over the text:
//   - color tags: '#G', '#ffc89c10' and friends must be closed by '#E'
//   - link tags: '<a|b|c|d>' spans must have 4 or 5 parts
//   - brace variables: '{' and '}' must pair up
//
// Tag interpretation is suppressed inside <...> spans. Scan never fails
// and keeps no state between calls.
func Scan(text string) CodeSet {
	runes := []rune(text)
	links := findLinkRanges(runes)

	var codes CodeSet
	codes = codes.Union(scanTags(runes, links))
	codes = codes.Union(scanLinks(runes, links))
	codes = codes.Union(scanBraces(runes))
	return codes
}

// findLinkRanges locates every <...> span. A span starts at a '<' and ends
// at the first following '>'; a '<' with no later '>' starts nothing.
func findLinkRanges(runes []rune) []linkRange {
	var ranges []linkRange
	pos := 0
	for pos < len(runes) {
		if runes[pos] != '<' {
			pos++
			continue
		}
		end := indexRune(runes, pos+1, '>')
		if end < 0 {
			break
		}
		ranges = append(ranges, linkRange{start: pos, end: end + 1})
		pos = end + 1
	}
	return ranges
}

func scanTags(runes []rune, links []linkRange) CodeSet {
	var codes CodeSet
	var stack []tagFrame
	li := 0 // links are ordered and disjoint, so one cursor suffices

	i := 0
	for i < len(runes) {
		for li < len(links) && links[li].end <= i {
			li++
		}
		if li < len(links) && links[li].start <= i {
			i++
			continue
		}

		if runes[i] != '#' || i+1 >= len(runes) {
			i++
			continue
		}

		next := runes[i+1]
		switch {
		case next == 'E':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			} else {
				codes = codes.With(ClosingTagWithoutOpening)
			}
			i += 2

		case hexRunLen(runes, i+1) >= 3:
			n := hexRunLen(runes, i+1)
			stack = append(stack, tagFrame{offset: i, tag: string(runes[i : i+1+n])})
			i += 1 + n

		case isASCIILetter(next):
			n := 1
			for i+1+n < len(runes) && isASCIIAlnum(runes[i+1+n]) {
				n++
			}
			tag := string(runes[i : i+1+n])
			if tag != "#E" {
				stack = append(stack, tagFrame{offset: i, tag: tag})
			}
			i += 1 + n

		case isCyrillic(next):
			// A Cyrillic-named tag is still an opener; its '#E' must not
			// also count as a stray closer. Left unclosed it also yields
			// OpeningTagWithoutClosing: "#Г текст" gives {01, 03}.
			codes = codes.With(RussianAfterHash)
			stack = append(stack, tagFrame{offset: i, tag: string(runes[i : i+2])})
			i++

		default:
			i++
		}
	}

	if len(stack) > 0 {
		codes = codes.With(OpeningTagWithoutClosing)
	}
	return codes
}

func scanLinks(runes []rune, links []linkRange) CodeSet {
	var codes CodeSet
	for _, lr := range links {
		content := string(runes[lr.start+1 : lr.end-1])
		if isMarkupElement(strings.TrimSpace(content)) {
			continue
		}
		if !strings.Contains(content, "|") {
			// Plain bracketed text such as <Water Loong Army>.
			continue
		}
		parts := strings.Count(content, "|") + 1
		if parts != 4 && parts != 5 {
			codes = codes.With(LinkTagInvalid)
		}
	}
	return codes
}

// isMarkupElement reports whether bracket content looks like an HTML-style
// marker (<TEXT>, </TEXT>, <IMAGE src=...>) rather than a link tag. An
// uppercase-led name running straight into '|' is a link tag's first part.
func isMarkupElement(content string) bool {
	if content == "" {
		return false
	}
	if content[0] == '/' {
		return true
	}
	if content[0] < 'A' || content[0] > 'Z' {
		return false
	}
	n := 1
	for n < len(content) && (isASCIIAlnum(rune(content[n])) || content[n] == '_' || content[n] == '-') {
		n++
	}
	return n == len(content) || content[n] != '|'
}

func scanBraces(runes []rune) CodeSet {
	var codes CodeSet
	var stack []int
	opens, closes := 0, 0

	for i, r := range runes {
		switch r {
		case '{':
			opens++
			stack = append(stack, i)
		case '}':
			closes++
			if len(stack) == 0 {
				codes = codes.With(ClosingBraceWithoutOpening)
			} else {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if opens != closes {
		codes = codes.With(UnbalancedBraces)
	}
	if len(stack) > 0 {
		codes = codes.With(OpeningBraceWithoutClosing)
	}
	return codes
}

// hexRunLen returns the length of the run of hex digits starting at pos.
func hexRunLen(runes []rune, pos int) int {
	n := 0
	for pos+n < len(runes) && isHexDigit(runes[pos+n]) {
		n++
	}
	return n
}

func indexRune(runes []rune, from int, r rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isASCIIAlnum(r rune) bool {
	return isASCIILetter(r) || ('0' <= r && r <= '9')
}

// isCyrillic matches the basic Cyrillic block U+0400–U+04FF.
func isCyrillic(r rune) bool {
	return 0x0400 <= r && r <= 0x04FF
}
