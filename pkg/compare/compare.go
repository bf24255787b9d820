// Package compare classifies markup defects found in a primary-language
// file against those found in a reference-language file.
package compare

import (
	"sort"

	"github.com/open-cli-collective/loctag/pkg/markup"
)

// Classification says where a defect appears.
type Classification int

const (
	// PrimaryOnly defects were introduced in the primary file.
	PrimaryOnly Classification = iota
	// Both files carry defects for the id.
	Both
	// ReferenceOnly defects are inherited from the reference file.
	ReferenceOnly
)

func (c Classification) String() string {
	switch c {
	case PrimaryOnly:
		return "primary"
	case Both:
		return "both"
	case ReferenceOnly:
		return "reference"
	default:
		return "unknown"
	}
}

// MarshalText encodes the classification by name.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Blocking reports whether the classification is a regression.
func (c Classification) Blocking() bool {
	return c == PrimaryOnly
}

// Result is the comparison outcome for one id.
type Result struct {
	ID        string
	Primary   markup.CodeSet
	Reference markup.CodeSet
	Codes     markup.CodeSet // union of Primary and Reference
	Class     Classification
}

// Compare classifies every id with defects in either map. Ids mapped to an
// empty set count as absent. Results are sorted by id.
func Compare(primary, reference map[string]markup.CodeSet) []Result {
	ids := make(map[string]struct{}, len(primary)+len(reference))
	for id, codes := range primary {
		if !codes.Empty() {
			ids[id] = struct{}{}
		}
	}
	for id, codes := range reference {
		if !codes.Empty() {
			ids[id] = struct{}{}
		}
	}

	results := make([]Result, 0, len(ids))
	for id := range ids {
		p, r := primary[id], reference[id]
		res := Result{
			ID:        id,
			Primary:   p,
			Reference: r,
			Codes:     p.Union(r),
		}
		switch {
		case !p.Empty() && !r.Empty():
			res.Class = Both
		case !r.Empty():
			res.Class = ReferenceOnly
		default:
			res.Class = PrimaryOnly
		}
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

// Summary counts comparison results.
type Summary struct {
	Entries        int // ids with any defect
	PrimaryOnly    int
	Both           int
	ReferenceOnly  int
	PrimaryCodes   int // codes found in the primary file, all ids
	ReferenceCodes int // codes found in the reference file, all ids
}

// Blocking returns the number of regressions.
func (s Summary) Blocking() int {
	return s.PrimaryOnly
}

// Advisory returns the number of non-blocking entries.
func (s Summary) Advisory() int {
	return s.Both + s.ReferenceOnly
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Entries++
		s.PrimaryCodes += r.Primary.Len()
		s.ReferenceCodes += r.Reference.Len()
		switch r.Class {
		case PrimaryOnly:
			s.PrimaryOnly++
		case Both:
			s.Both++
		case ReferenceOnly:
			s.ReferenceOnly++
		}
	}
	return s
}
