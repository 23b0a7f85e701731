package mock

import (
	"context"

	"github.com/fwojciec/seoaudit"
)

var _ seoaudit.ReportEmitter = (*ReportEmitter)(nil)

// ReportEmitter is a mock implementation of seoaudit.ReportEmitter.
type ReportEmitter struct {
	EmitFn func(ctx context.Context, path string, report *seoaudit.Report) error
}

func (e *ReportEmitter) Emit(ctx context.Context, path string, report *seoaudit.Report) error {
	return e.EmitFn(ctx, path, report)
}

var _ seoaudit.ReportStore = (*ReportStore)(nil)

// ReportStore is a mock implementation of seoaudit.ReportStore.
type ReportStore struct {
	StageFn  func(ext string) (string, error)
	CommitFn func() ([]string, error)
	AbortFn  func() error
}

func (s *ReportStore) Stage(ext string) (string, error) {
	return s.StageFn(ext)
}

func (s *ReportStore) Commit() ([]string, error) {
	return s.CommitFn()
}

func (s *ReportStore) Abort() error {
	return s.AbortFn()
}
