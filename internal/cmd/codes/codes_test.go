package codes

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCodes_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCodes(&codesOptions{output: "table", noColor: true, stdout: &buf}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "Code")
	assert.Equal(t, []string{"01", "RUSSIAN_AFTER_HASH"}, strings.Fields(lines[1])[:2])
	assert.Equal(t, []string{"07", "OPENING_BRACE_WITHOUT_CLOSING"}, strings.Fields(lines[7])[:2])
}

func TestRunCodes_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCodes(&codesOptions{output: "json", stdout: &buf}))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 7)
	assert.Equal(t, "04", decoded[3]["code"])
	assert.Equal(t, "LINK_TAG_INVALID", decoded[3]["name"])
}

func TestRunCodes_InvalidFormat(t *testing.T) {
	err := runCodes(&codesOptions{output: "yaml"})
	require.Error(t, err)
}

func TestRunCodes_Selected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCodes(&codesOptions{codes: []string{"03", "link_tag_invalid"}, output: "plain", stdout: &buf}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "03\tOPENING_TAG_WITHOUT_CLOSING\t"))
	assert.True(t, strings.HasPrefix(lines[1], "04\tLINK_TAG_INVALID\t"))
}

func TestRunCodes_UnknownCode(t *testing.T) {
	var buf bytes.Buffer
	err := runCodes(&codesOptions{codes: []string{"99"}, output: "table", stdout: &buf})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown error code")
	assert.Contains(t, err.Error(), "01, 02")
	assert.Empty(t, buf.String())
}
