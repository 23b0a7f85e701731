package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/seoaudit"
)

var (
	_ seoaudit.EncodingDetector  = (*LoggingEncodingDetector)(nil)
	_ seoaudit.MetadataExtractor = (*LoggingExtractor)(nil)
)

// LoggingEncodingDetector wraps an EncodingDetector with logging.
// The decoder only consults it for pages that are not valid UTF-8.
type LoggingEncodingDetector struct {
	next   seoaudit.EncodingDetector
	logger *slog.Logger
}

// NewLoggingEncodingDetector creates a new LoggingEncodingDetector.
func NewLoggingEncodingDetector(next seoaudit.EncodingDetector, logger *slog.Logger) *LoggingEncodingDetector {
	return &LoggingEncodingDetector{next: next, logger: logger}
}

// DetectEncoding delegates to the wrapped detector and logs the guess.
func (d *LoggingEncodingDetector) DetectEncoding(raw []byte) string {
	begin := time.Now()
	label := d.next.DetectEncoding(raw)
	name := label
	if name == "" {
		name = "(unknown)"
	}
	d.logger.Info("encoding detection",
		"encoding", name,
		"bytes", len(raw),
		"duration", time.Since(begin),
	)
	return label
}

// LoggingExtractor wraps a MetadataExtractor with logging.
type LoggingExtractor struct {
	next   seoaudit.MetadataExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next seoaudit.MetadataExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was found.
func (e *LoggingExtractor) Extract(html string) (rec *seoaudit.PageMetadata) {
	defer func(begin time.Time) {
		var title string
		var blocks int
		if rec != nil {
			title = rec.Title
			blocks = len(rec.StructuredData)
		}
		e.logger.Info("extract",
			"title", title,
			"json_ld", blocks,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(html)
}
