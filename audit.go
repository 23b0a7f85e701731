package seoaudit

import (
	"bytes"
	"encoding/json"
	"sort"
)

// DefaultTopTitles is the number of duplicated titles listed in a summary.
const DefaultTopTitles = 10

// AuditIndex accumulates page records for a single scan. It is not safe for
// concurrent use; callers serialize Add.
type AuditIndex struct {
	Records          []*PageMetadata
	Titles           *GroupIndex
	Descriptions     *GroupIndex
	MissingCanonical []string

	paths map[string]struct{}
}

// NewAuditIndex returns an empty index.
func NewAuditIndex() *AuditIndex {
	return &AuditIndex{
		Titles:       NewGroupIndex(),
		Descriptions: NewGroupIndex(),
		paths:        make(map[string]struct{}),
	}
}

// Add appends a record and updates the title, description and canonical
// indices. Returns ECONFLICT if the path was already added.
func (idx *AuditIndex) Add(rec *PageMetadata) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, ok := idx.paths[rec.Path]; ok {
		return Errorf(ECONFLICT, "page %q already audited", rec.Path)
	}
	idx.paths[rec.Path] = struct{}{}

	idx.Records = append(idx.Records, rec)
	idx.Titles.Add(rec.Title, rec.Path)
	idx.Descriptions.Add(rec.MetaDescription, rec.Path)
	if rec.Canonical == "" {
		idx.MissingCanonical = append(idx.MissingCanonical, rec.Path)
	}
	return nil
}

// StructuredDataCount returns the number of structured-data blocks across
// all records.
func (idx *AuditIndex) StructuredDataCount() int {
	var n int
	for _, rec := range idx.Records {
		n += len(rec.StructuredData)
	}
	return n
}

// Duplicates returns the title and description groups shared by more than
// one page.
func (idx *AuditIndex) Duplicates() *Duplicates {
	return &Duplicates{
		Titles:       idx.Titles.Duplicates(),
		Descriptions: idx.Descriptions.Duplicates(),
	}
}

// Summary returns the totals reported to the operator, listing at most
// topN duplicated titles.
func (idx *AuditIndex) Summary(topN int) *Summary {
	groups := idx.Titles.Duplicates()
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Paths) > len(groups[j].Paths)
	})
	if len(groups) > topN {
		groups = groups[:topN]
	}

	return &Summary{
		TotalPages:           len(idx.Records),
		MissingCanonical:     len(idx.MissingCanonical),
		StructuredDataBlocks: idx.StructuredDataCount(),
		TopDuplicateTitles:   groups,
	}
}

// GroupIndex maps exact string values to the ordered paths that carry them.
// Keys keep their first-insertion order.
type GroupIndex struct {
	keys   []string
	groups map[string][]string
}

// NewGroupIndex returns an empty GroupIndex.
func NewGroupIndex() *GroupIndex {
	return &GroupIndex{groups: make(map[string][]string)}
}

// Add records path under value. Empty values are ignored.
func (g *GroupIndex) Add(value, path string) {
	if value == "" {
		return
	}
	if _, ok := g.groups[value]; !ok {
		g.keys = append(g.keys, value)
	}
	g.groups[value] = append(g.groups[value], path)
}

// Groups returns every indexed value with its paths, in insertion order.
func (g *GroupIndex) Groups() DuplicateGroups {
	out := make(DuplicateGroups, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, DuplicateGroup{Value: k, Paths: append([]string(nil), g.groups[k]...)})
	}
	return out
}

// Duplicates returns groups with more than one path, in insertion order.
func (g *GroupIndex) Duplicates() DuplicateGroups {
	var out DuplicateGroups
	for _, grp := range g.Groups() {
		if len(grp.Paths) > 1 {
			out = append(out, grp)
		}
	}
	return out
}

// DuplicateGroup is a value shared by several pages.
type DuplicateGroup struct {
	Value string
	Paths []string
}

// DuplicateGroups is an ordered list of groups. It marshals to a JSON object
// keyed by value.
type DuplicateGroups []DuplicateGroup

// MarshalJSON renders the groups as {"value": ["path", ...]}, keeping
// group order.
func (d DuplicateGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(g.Value)
		if err != nil {
			return nil, err
		}
		paths := g.Paths
		if paths == nil {
			paths = []string{}
		}
		value, err := marshalJSON(paths)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalJSON encodes v without HTML escaping; the outer encoder applies its
// own escaping setting when it compacts the result.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Duplicates holds the exact-match duplicate groups of a scan.
type Duplicates struct {
	Titles       DuplicateGroups `json:"titles"`
	Descriptions DuplicateGroups `json:"descriptions"`
}

// Summary holds the totals printed at the end of a scan.
type Summary struct {
	TotalPages           int
	MissingCanonical     int
	StructuredDataBlocks int
	TopDuplicateTitles   []DuplicateGroup
}

// Report bundles everything handed to report emitters.
type Report struct {
	Records    []*PageMetadata
	Duplicates *Duplicates
}

// NewReport builds a Report from a completed index.
func NewReport(idx *AuditIndex) *Report {
	return &Report{
		Records:    idx.Records,
		Duplicates: idx.Duplicates(),
	}
}
