package report

import (
	"context"
	"io"

	"github.com/fwojciec/seoaudit"
)

// Ensure emitters implement seoaudit.ReportEmitter at compile time.
var (
	_ seoaudit.ReportEmitter = (*JSONEmitter)(nil)
	_ seoaudit.ReportEmitter = (*DuplicatesEmitter)(nil)
)

// page is the nested JSON form of one record: the flattened fields plus
// every structured-data block with its raw text.
type page struct {
	Meta   meta                           `json:"meta"`
	Blocks []seoaudit.StructuredDataBlock `json:"json_ld_blocks"`
}

type meta struct {
	Path            string `json:"path"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	MetaAISummary   string `json:"meta_ai_summary"`
	Canonical       string `json:"canonical"`
	Hreflangs       string `json:"hreflangs"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
	OGImage         string `json:"og_image"`
	TwitterCard     string `json:"twitter_card"`
	JSONLDCount     int    `json:"json_ld_count"`
	JSONLDSummaries string `json:"json_ld_summaries"`
}

func newPage(rec *seoaudit.PageMetadata) page {
	blocks := rec.StructuredData
	if blocks == nil {
		blocks = []seoaudit.StructuredDataBlock{}
	}
	return page{
		Meta: meta{
			Path:            rec.Path,
			Title:           rec.Title,
			MetaDescription: rec.MetaDescription,
			MetaKeywords:    rec.MetaKeywords,
			MetaAISummary:   rec.MetaAISummary,
			Canonical:       rec.Canonical,
			Hreflangs:       rec.HreflangString(),
			OGTitle:         rec.OGTitle,
			OGDescription:   rec.OGDescription,
			OGImage:         rec.OGImage,
			TwitterCard:     rec.TwitterCard,
			JSONLDCount:     len(rec.StructuredData),
			JSONLDSummaries: rec.StructuredDataSummary(),
		},
		Blocks: blocks,
	}
}

// JSONEmitter writes {"pages": [...]} with one nested entry per page.
type JSONEmitter struct{}

// NewJSONEmitter creates a new JSONEmitter.
func NewJSONEmitter() *JSONEmitter {
	return &JSONEmitter{}
}

// Emit writes the report to path.
func (e *JSONEmitter) Emit(ctx context.Context, path string, report *seoaudit.Report) error {
	return writeFile(ctx, path, func(w io.Writer) error {
		return WriteJSON(w, report)
	})
}

// WriteJSON writes the nested form of report to w.
func WriteJSON(w io.Writer, report *seoaudit.Report) error {
	pages := make([]page, 0, len(report.Records))
	for _, rec := range report.Records {
		pages = append(pages, newPage(rec))
	}
	return encodeJSON(w, struct {
		Pages []page `json:"pages"`
	}{Pages: pages})
}

// DuplicatesEmitter writes the title and description duplicate groups.
type DuplicatesEmitter struct{}

// NewDuplicatesEmitter creates a new DuplicatesEmitter.
func NewDuplicatesEmitter() *DuplicatesEmitter {
	return &DuplicatesEmitter{}
}

// Emit writes the duplicate groups of report to path.
func (e *DuplicatesEmitter) Emit(ctx context.Context, path string, report *seoaudit.Report) error {
	return writeFile(ctx, path, func(w io.Writer) error {
		return WriteDuplicates(w, report)
	})
}

// WriteDuplicates writes {"titles": {...}, "descriptions": {...}} to w.
func WriteDuplicates(w io.Writer, report *seoaudit.Report) error {
	dups := report.Duplicates
	if dups == nil {
		dups = &seoaudit.Duplicates{}
	}
	return encodeJSON(w, dups)
}
