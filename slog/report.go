package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/seoaudit"
)

var _ seoaudit.ReportEmitter = (*LoggingReportEmitter)(nil)

// LoggingReportEmitter wraps a ReportEmitter with logging.
type LoggingReportEmitter struct {
	next   seoaudit.ReportEmitter
	logger *slog.Logger
}

// NewLoggingReportEmitter creates a new LoggingReportEmitter.
func NewLoggingReportEmitter(next seoaudit.ReportEmitter, logger *slog.Logger) *LoggingReportEmitter {
	return &LoggingReportEmitter{next: next, logger: logger}
}

// Emit delegates to the wrapped emitter and logs the operation.
func (e *LoggingReportEmitter) Emit(ctx context.Context, path string, report *seoaudit.Report) (err error) {
	defer func(begin time.Time) {
		e.logger.Info("emit report",
			"path", path,
			"pages", len(report.Records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Emit(ctx, path, report)
}
