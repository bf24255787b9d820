package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/loctag/pkg/markup"
	"github.com/open-cli-collective/loctag/pkg/tsv"
)

var unclosed = markup.NewCodeSet(markup.OpeningTagWithoutClosing)

func TestCompare_Classification(t *testing.T) {
	tests := []struct {
		name      string
		primary   map[string]markup.CodeSet
		reference map[string]markup.CodeSet
		want      Classification
	}{
		{"both", map[string]markup.CodeSet{"A": unclosed}, map[string]markup.CodeSet{"A": unclosed}, Both},
		{"primary only", map[string]markup.CodeSet{"A": unclosed}, map[string]markup.CodeSet{}, PrimaryOnly},
		{"primary only nil reference", map[string]markup.CodeSet{"A": unclosed}, nil, PrimaryOnly},
		{"reference only", nil, map[string]markup.CodeSet{"A": unclosed}, ReferenceOnly},
		{"empty primary set counts as absent", map[string]markup.CodeSet{"A": 0}, map[string]markup.CodeSet{"A": unclosed}, ReferenceOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Compare(tt.primary, tt.reference)
			require.Len(t, results, 1)
			assert.Equal(t, "A", results[0].ID)
			assert.Equal(t, tt.want, results[0].Class)
		})
	}
}

func TestCompare_UnionOfCodes(t *testing.T) {
	braces := markup.NewCodeSet(markup.UnbalancedBraces)
	results := Compare(
		map[string]markup.CodeSet{"A": unclosed},
		map[string]markup.CodeSet{"A": braces},
	)

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, unclosed, r.Primary)
	assert.Equal(t, braces, r.Reference)
	assert.Equal(t, []markup.Code{markup.OpeningTagWithoutClosing, markup.UnbalancedBraces}, r.Codes.Codes())
}

func TestCompare_SortedAndEmpty(t *testing.T) {
	results := Compare(
		map[string]markup.CodeSet{"c": unclosed, "a": unclosed, "skip": 0},
		map[string]markup.CodeSet{"b": unclosed},
	)

	var ids []string
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	assert.Empty(t, Compare(nil, nil))
}

func TestClassification(t *testing.T) {
	assert.True(t, PrimaryOnly.Blocking())
	assert.False(t, Both.Blocking())
	assert.False(t, ReferenceOnly.Blocking())

	assert.Equal(t, "primary", PrimaryOnly.String())
	assert.Equal(t, "both", Both.String())
	assert.Equal(t, "reference", ReferenceOnly.String())
	assert.Equal(t, "unknown", Classification(42).String())
}

func TestSummarize(t *testing.T) {
	braces := markup.NewCodeSet(markup.UnbalancedBraces, markup.OpeningBraceWithoutClosing)
	results := Compare(
		map[string]markup.CodeSet{"a": unclosed, "b": braces},
		map[string]markup.CodeSet{"b": unclosed, "c": unclosed},
	)

	s := Summarize(results)
	assert.Equal(t, 3, s.Entries)
	assert.Equal(t, 1, s.PrimaryOnly)
	assert.Equal(t, 1, s.Both)
	assert.Equal(t, 1, s.ReferenceOnly)
	assert.Equal(t, 3, s.PrimaryCodes)
	assert.Equal(t, 2, s.ReferenceCodes)
	assert.Equal(t, 2, s.Advisory())
	assert.Equal(t, 1, s.Blocking())

	assert.Zero(t, Summarize(nil).Blocking())
}

func TestScanRecords(t *testing.T) {
	records := []tsv.Record{
		{ID: "a", StartLine: 2, Text: "#G ok #E"},
		{ID: "b", StartLine: 3, Text: "#G broken"},
		{ID: "c", StartLine: 4, Text: "{x"},
		{ID: "c", StartLine: 5, Text: "#E"},
	}

	c := ScanRecords(records)
	assert.Equal(t, 3, c.Len())

	_, hasA := c.Codes["a"]
	assert.False(t, hasA)
	assert.Equal(t, unclosed, c.Codes["b"])
	assert.Equal(t, []markup.Code{
		markup.ClosingTagWithoutOpening,
		markup.UnbalancedBraces,
		markup.OpeningBraceWithoutClosing,
	}, c.Codes["c"].Codes())

	rec, ok := c.Record("c")
	require.True(t, ok)
	assert.Equal(t, 4, rec.StartLine)
}

func TestCorpus_Nil(t *testing.T) {
	var c *Corpus
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.CodeMap())
	_, ok := c.Record("a")
	assert.False(t, ok)
}
