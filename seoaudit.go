// Package seoaudit audits a tree of static HTML documents for search-engine
// and AI-agent discoverability metadata. It extracts titles, descriptions,
// canonical links, Open Graph and Twitter tags, hreflang alternates and
// JSON-LD blocks from every page, then groups pages that share a title or
// description.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, chardet/, sqlite/).
package seoaudit
