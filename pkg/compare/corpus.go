package compare

import (
	"github.com/open-cli-collective/loctag/pkg/markup"
	"github.com/open-cli-collective/loctag/pkg/tsv"
)

// Corpus holds the scan results for one file.
type Corpus struct {
	// Codes maps ids to their defects. Ids without defects are absent.
	Codes   map[string]markup.CodeSet
	records map[string]tsv.Record
}

// ScanRecords runs the markup scanner over every record. When an id occurs
// more than once, the defects of all its records are merged and the first
// record is kept for context.
func ScanRecords(records []tsv.Record) *Corpus {
	c := &Corpus{
		Codes:   make(map[string]markup.CodeSet),
		records: make(map[string]tsv.Record, len(records)),
	}
	for _, rec := range records {
		if _, seen := c.records[rec.ID]; !seen {
			c.records[rec.ID] = rec
		}
		if codes := markup.Scan(rec.Text); !codes.Empty() {
			c.Codes[rec.ID] = c.Codes[rec.ID].Union(codes)
		}
	}
	return c
}

// Record returns the record scanned for id.
func (c *Corpus) Record(id string) (tsv.Record, bool) {
	if c == nil {
		return tsv.Record{}, false
	}
	rec, ok := c.records[id]
	return rec, ok
}

// Len returns the number of distinct ids scanned.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// CodeMap returns the id→defects map, or nil for a nil corpus.
func (c *Corpus) CodeMap() map[string]markup.CodeSet {
	if c == nil {
		return nil
	}
	return c.Codes
}
