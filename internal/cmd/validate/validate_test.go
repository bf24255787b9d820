package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/loctag/internal/config"
)

func setup(t *testing.T) string {
	t.Helper()
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunValidate(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		strict   bool
		wantErr  bool
		contains string
	}{
		{
			name:     "valid file",
			content:  "ID\tOriginalText\n0000000000000001\tHello\n0000000000000002\tTwo\nlines\n",
			contains: "format is valid (2 records)",
		},
		{
			name:     "bad header",
			content:  "Key\tValue\n0000000000000001\tHello\n",
			wantErr:  true,
			contains: "invalid header",
		},
		{
			name:     "blank line inside record",
			content:  "ID\tOriginalText\n0000000000000001\tHello\n\nworld\n",
			wantErr:  true,
			contains: "blank line inside record",
		},
		{
			name:     "missing tab",
			content:  "ID\tOriginalText\n0000000000000001 Hello\n",
			wantErr:  true,
			contains: "missing tab separator",
		},
		{
			name:     "empty text is a warning",
			content:  "ID\tOriginalText\n0000000000000001\t\n",
			contains: "empty text",
		},
		{
			name:     "id-only line inside record is a warning",
			content:  "ID\tOriginalText\n0000000000000001\tHello\n0000000000000002\n",
			contains: "looks like an ID without a tab separator",
		},
		{
			name:     "strict fails on warnings",
			content:  "ID\tOriginalText\n0000000000000001\t\n",
			strict:   true,
			wantErr:  true,
			contains: "empty text",
		},
		{
			name:     "empty file",
			content:  "",
			wantErr:  true,
			contains: "file is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setup(t)
			path := write(t, dir, "translation.tsv", tt.content)
			var stdout, stderr bytes.Buffer

			err := runValidate(&validateOptions{
				files:   []string{path},
				output:  "table",
				noColor: true,
				strict:  tt.strict,
				stdout:  &stdout,
				stderr:  &stderr,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidFormat))
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, stdout.String(), tt.contains)
		})
	}
}

func TestRunValidate_JSON(t *testing.T) {
	dir := setup(t)
	ok := write(t, dir, "ru.tsv", "ID\tOriginalText\n0000000000000001\tПривет\n")
	bad := write(t, dir, "en.tsv", "ID\tOriginalText\norphan\n0000000000000001\ta\tb\n")
	var stdout bytes.Buffer

	err := runValidate(&validateOptions{files: []string{ok, bad}, output: "json", noColor: true, stdout: &stdout})
	require.Error(t, err)

	var decoded []fileResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Empty(t, decoded[0].Problems)
	assert.Equal(t, 1, decoded[0].Records)
	require.Len(t, decoded[1].Problems, 2)
	assert.Equal(t, "orphan-line", decoded[1].Problems[0].Kind)
	assert.Equal(t, "extra-tabs", decoded[1].Problems[1].Kind)
	assert.Equal(t, 3, decoded[1].Problems[1].Line)
}

func TestRunValidate_Plain(t *testing.T) {
	dir := setup(t)
	path := write(t, dir, "ru.tsv", "ID\tOriginalText\n0000000000000001\t\n")
	var stdout bytes.Buffer

	require.NoError(t, runValidate(&validateOptions{files: []string{path}, output: "plain", noColor: true, stdout: &stdout}))
	assert.Equal(t, path+"\t2\twarning\tempty-text\t0000000000000001\n", stdout.String())
}

func TestRunValidate_Markdown(t *testing.T) {
	dir := setup(t)
	path := write(t, dir, "ru.tsv", "ID\tOriginalText\norphan\n")
	var stdout bytes.Buffer

	err := runValidate(&validateOptions{files: []string{path}, output: "markdown", noColor: true, stdout: &stdout})
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "# Format validation report")
	assert.Contains(t, stdout.String(), "| Line | Severity | Kind | ID | Message |")
}

func TestRunValidate_FilesFromConfig(t *testing.T) {
	dir := setup(t)
	ru := write(t, dir, "ru.tsv", "ID\tOriginalText\n0000000000000001\ta\n")
	en := write(t, dir, "en.tsv", "ID\tOriginalText\n0000000000000001\tb\n")
	t.Setenv("LOCTAG_PRIMARY", ru)
	t.Setenv("LOCTAG_REFERENCE", en)
	var stdout bytes.Buffer

	require.NoError(t, runValidate(&validateOptions{output: "table", noColor: true, stdout: &stdout}))
	assert.Contains(t, stdout.String(), ru)
	assert.Contains(t, stdout.String(), en)
}

func TestRunValidate_NoFiles(t *testing.T) {
	setup(t)

	err := runValidate(&validateOptions{output: "table", noColor: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files given")
}

func TestRunValidate_MissingFile(t *testing.T) {
	dir := setup(t)

	err := runValidate(&validateOptions{files: []string{filepath.Join(dir, "nope.tsv")}, output: "table", noColor: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}
