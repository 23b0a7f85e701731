// Package goquery extracts discoverability metadata from HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/seoaudit"
	"golang.org/x/net/html"
)

// structuredDataType is the script type carrying JSON-LD.
const structuredDataType = "application/ld+json"

// Ensure Extractor implements seoaudit.MetadataExtractor at compile time.
var _ seoaudit.MetadataExtractor = (*Extractor)(nil)

// Extractor reads titles, meta tags, link relations and JSON-LD blocks
// from an HTML document.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML and returns its metadata. The HTML5 parser accepts
// any tag soup; if no document can be built the record is empty.
func (e *Extractor) Extract(rawHTML string) *seoaudit.PageMetadata {
	meta := &seoaudit.PageMetadata{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return meta
	}

	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())

	meta.MetaDescription = metaContent(doc, "name", "description")
	if meta.MetaDescription == "" {
		meta.MetaDescription = metaContent(doc, "property", "og:description")
	}
	meta.MetaKeywords = metaContent(doc, "name", "keywords")
	meta.MetaAISummary = metaContent(doc, "name", "ai-summary")

	meta.OGTitle = metaContent(doc, "property", "og:title")
	meta.OGDescription = metaContent(doc, "property", "og:description")
	meta.OGImage = metaContent(doc, "property", "og:image")
	meta.TwitterCard = metaContent(doc, "name", "twitter:card")

	meta.Canonical = strings.TrimSpace(links(doc, "canonical").First().AttrOr("href", ""))
	meta.Hreflangs = extractHreflangs(doc)
	meta.StructuredData = extractStructuredData(doc)

	return meta
}

// metaContent returns the trimmed content of the first meta element whose
// attr equals value exactly.
func metaContent(doc *goquery.Document, attr, value string) string {
	sel := doc.Find("meta").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && v == value
	}).First()
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

// links returns link elements whose rel attribute lists rel as one of its
// space-separated tokens.
func links(doc *goquery.Document, rel string) *goquery.Selection {
	return doc.Find("link[rel]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, tok := range strings.Fields(s.AttrOr("rel", "")) {
			if tok == rel {
				return true
			}
		}
		return false
	})
}

// extractHreflangs returns alternate links that carry both hreflang and
// href, with values kept verbatim.
func extractHreflangs(doc *goquery.Document) []seoaudit.Hreflang {
	var out []seoaudit.Hreflang
	links(doc, "alternate").Each(func(_ int, s *goquery.Selection) {
		lang := s.AttrOr("hreflang", "")
		href := s.AttrOr("href", "")
		if lang == "" || href == "" {
			return
		}
		out = append(out, seoaudit.Hreflang{Lang: lang, URL: href})
	})
	return out
}

// extractStructuredData parses every non-empty JSON-LD script in document
// order. Blocks that fail to parse are kept as unparsed.
func extractStructuredData(doc *goquery.Document) []seoaudit.StructuredDataBlock {
	var blocks []seoaudit.StructuredDataBlock
	doc.Find("script[type]").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.AttrOr("type", "")) != structuredDataType {
			return
		}
		raw := strings.TrimSpace(scriptText(s))
		if raw == "" {
			return
		}
		blocks = append(blocks, seoaudit.ParseStructuredData(raw))
	})
	return blocks
}

// scriptText returns the direct text children of the selection, falling
// back to all descendant text.
func scriptText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	if b.Len() == 0 {
		return s.Text()
	}
	return b.String()
}
