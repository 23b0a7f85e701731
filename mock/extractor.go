package mock

import "github.com/fwojciec/seoaudit"

var _ seoaudit.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of seoaudit.MetadataExtractor.
type MetadataExtractor struct {
	ExtractFn func(html string) *seoaudit.PageMetadata
}

func (e *MetadataExtractor) Extract(html string) *seoaudit.PageMetadata {
	return e.ExtractFn(html)
}
