package seoaudit

import (
	"context"
	"strconv"
	"strings"
)

// PageMetadata holds the discoverability metadata extracted from one HTML
// document.
type PageMetadata struct {
	Path            string                `json:"path"`
	Title           string                `json:"title"`
	MetaDescription string                `json:"metaDescription"`
	MetaKeywords    string                `json:"metaKeywords"`
	MetaAISummary   string                `json:"metaAiSummary"`
	Canonical       string                `json:"canonical"`
	Hreflangs       []Hreflang            `json:"hreflangs"`
	OGTitle         string                `json:"ogTitle"`
	OGDescription   string                `json:"ogDescription"`
	OGImage         string                `json:"ogImage"`
	TwitterCard     string                `json:"twitterCard"`
	StructuredData  []StructuredDataBlock `json:"structuredData"`
}

// Hreflang pairs a language tag with the URL of a localized variant.
type Hreflang struct {
	Lang string `json:"hreflang"`
	URL  string `json:"href"`
}

// Validate returns an error if the record cannot be aggregated.
func (p *PageMetadata) Validate() error {
	if p.Path == "" {
		return Errorf(EINVALID, "page path required")
	}
	return nil
}

// HreflangString renders hreflang alternates as "lang|url" pairs joined by
// semicolons.
func (p *PageMetadata) HreflangString() string {
	parts := make([]string, 0, len(p.Hreflangs))
	for _, h := range p.Hreflangs {
		parts = append(parts, h.Lang+"|"+h.URL)
	}
	return strings.Join(parts, ";")
}

// StructuredDataSummary renders the type tag of every structured-data block
// joined by semicolons.
func (p *PageMetadata) StructuredDataSummary() string {
	tags := make([]string, 0, len(p.StructuredData))
	for i := range p.StructuredData {
		tags = append(tags, p.StructuredData[i].TypeTag())
	}
	return strings.Join(tags, ";")
}

// Columns lists the flattened field names in report order.
var Columns = []string{
	"path",
	"title",
	"meta_description",
	"meta_keywords",
	"meta_ai_summary",
	"canonical",
	"hreflangs",
	"og_title",
	"og_description",
	"og_image",
	"twitter_card",
	"json_ld_count",
	"json_ld_summaries",
}

// Row flattens the record into scalar values matching Columns.
func (p *PageMetadata) Row() []string {
	return []string{
		p.Path,
		p.Title,
		p.MetaDescription,
		p.MetaKeywords,
		p.MetaAISummary,
		p.Canonical,
		p.HreflangString(),
		p.OGTitle,
		p.OGDescription,
		p.OGImage,
		p.TwitterCard,
		strconv.Itoa(len(p.StructuredData)),
		p.StructuredDataSummary(),
	}
}

// PageSource discovers the HTML pages to audit.
type PageSource interface {
	// Discover walks root and returns the paths of all HTML pages under it.
	Discover(ctx context.Context, root string) ([]string, error)
}

// PageReader loads the raw bytes of a page.
type PageReader interface {
	ReadPage(ctx context.Context, path string) ([]byte, error)
}

// EncodingDetector guesses the character encoding of raw bytes.
type EncodingDetector interface {
	// DetectEncoding returns a best-guess encoding label.
	// Returns an empty string when no guess can be made.
	DetectEncoding(raw []byte) string
}

// Decoder turns raw page bytes into text.
type Decoder interface {
	// Decode always returns a string, replacing undecodable sequences
	// rather than failing.
	Decode(raw []byte) string
}

// MetadataExtractor parses HTML into a metadata record.
type MetadataExtractor interface {
	// Extract returns exactly one record for any input. Malformed markup
	// yields whatever fields could be recovered; the Path field is left
	// for the caller to set.
	Extract(html string) *PageMetadata
}
