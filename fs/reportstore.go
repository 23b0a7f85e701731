package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/seoaudit"
)

// Ensure ReportStore implements seoaudit.ReportStore at compile time.
var _ seoaudit.ReportStore = (*ReportStore)(nil)

// tmpSuffix marks staged report files.
const tmpSuffix = ".tmp"

// ReportStore implements seoaudit.ReportStore with atomic update semantics.
// Reports are written to <base><ext>.tmp and renamed to <base><ext> on
// Commit, so a failed run never leaves half-written reports behind.
type ReportStore struct {
	base   string
	staged []string
}

// NewReportStore creates a new ReportStore for the output base path
// (a path without extension, e.g. "reports/seo_report").
func NewReportStore(base string) *ReportStore {
	return &ReportStore{base: base}
}

// Stage creates the output directory if needed and returns the temporary
// path for the report with the given extension.
func (s *ReportStore) Stage(ext string) (string, error) {
	if s.base == "" {
		return "", seoaudit.Errorf(seoaudit.EINVALID, "output base path required")
	}

	final := s.base + ext
	for _, p := range s.staged {
		if p == final {
			return final + tmpSuffix, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(final), 0755); err != nil {
		return "", err
	}

	tmp := final + tmpSuffix
	if err := removeIfExists(tmp); err != nil {
		return "", err
	}

	s.staged = append(s.staged, final)
	return tmp, nil
}

// Commit moves every staged report into place and returns the final paths
// in staging order.
func (s *ReportStore) Commit() ([]string, error) {
	for _, final := range s.staged {
		if err := os.Rename(final+tmpSuffix, final); err != nil {
			return nil, err
		}
	}

	committed := s.staged
	s.staged = nil
	return committed, nil
}

// Abort removes staged reports, including SQLite side files.
func (s *ReportStore) Abort() error {
	var errs []error
	for _, final := range s.staged {
		tmp := final + tmpSuffix
		for _, p := range []string{tmp, tmp + "-wal", tmp + "-shm", tmp + "-journal"} {
			if err := removeIfExists(p); err != nil {
				errs = append(errs, err)
			}
		}
	}
	s.staged = nil
	return errors.Join(errs...)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	return nil
}
