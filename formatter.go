package seoaudit

import (
	"fmt"
	"strings"
)

// FormatSummary renders the end-of-scan summary shown to the operator.
// Report paths, if any, are listed after the totals.
func FormatSummary(s *Summary, reports []string) string {
	var b strings.Builder
	b.WriteString("--- SEO AUDIT SUMMARY ---\n")
	fmt.Fprintf(&b, "Total HTML files scanned: %d\n", s.TotalPages)
	fmt.Fprintf(&b, "Pages without canonical: %d\n", s.MissingCanonical)
	fmt.Fprintf(&b, "Total JSON-LD blocks found: %d\n", s.StructuredDataBlocks)
	b.WriteString("Top duplicated titles (exact matches):\n")
	for _, g := range s.TopDuplicateTitles {
		fmt.Fprintf(&b, "  \"%s\" -> %d pages\n", g.Value, len(g.Paths))
	}

	if len(reports) > 0 {
		b.WriteString("\nReports generated:\n")
		for _, path := range reports {
			b.WriteString("  - ")
			b.WriteString(path)
			b.WriteString("\n")
		}
	}

	return b.String()
}
