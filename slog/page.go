// Package slog provides logging decorators for the seoaudit interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/seoaudit"
)

// Ensure decorators implement their interfaces.
var (
	_ seoaudit.PageSource = (*LoggingPageSource)(nil)
	_ seoaudit.PageReader = (*LoggingPageReader)(nil)
)

// LoggingPageSource wraps a PageSource with logging.
type LoggingPageSource struct {
	next   seoaudit.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next seoaudit.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingPageSource) Discover(ctx context.Context, root string) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("discover",
			"root", root,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, root)
}

// LoggingPageReader wraps a PageReader with logging.
type LoggingPageReader struct {
	next   seoaudit.PageReader
	logger *slog.Logger
}

// NewLoggingPageReader creates a new LoggingPageReader.
func NewLoggingPageReader(next seoaudit.PageReader, logger *slog.Logger) *LoggingPageReader {
	return &LoggingPageReader{next: next, logger: logger}
}

// ReadPage delegates to the wrapped reader and logs the operation.
func (r *LoggingPageReader) ReadPage(ctx context.Context, path string) (data []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("read page",
			"path", path,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadPage(ctx, path)
}
