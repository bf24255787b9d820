package tsv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultHeader is the expected first line of a localization file.
const DefaultHeader = "ID\tOriginalText"

// ErrEmptyFile is returned when the input holds no lines at all.
var ErrEmptyFile = errors.New("file is empty")

// File is a decoded localization file.
type File struct {
	Path    string
	Lines   []string // physical lines, each ending in "\n" except possibly the last
	Records []Record
}

// Header returns the first line without its terminator.
func (f *File) Header() string {
	if len(f.Lines) == 0 {
		return ""
	}
	return TrimEOL(f.Lines[0])
}

// ReadFile opens and decodes the file at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = fh.Close() }()

	f, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Read decodes UTF-8 input (a leading byte order mark is dropped, invalid
// sequences become U+FFFD) and assembles its records.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	lines := Lines(string(data))
	return &File{
		Lines:   lines,
		Records: Assemble(lines),
	}, nil
}

// Lines splits s into physical lines. "\r\n" and lone "\r" are treated as
// line breaks and normalized to "\n"; each returned line keeps its "\n".
func Lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
