package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/seoaudit"
	main "github.com/fwojciec/seoaudit/cmd/seoaudit"
	"github.com/fwojciec/seoaudit/mock"
	"github.com/fwojciec/seoaudit/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore tracks calls made against a mock ReportStore.
type recordingStore struct {
	staged    []string
	committed bool
	aborted   bool
}

func (r *recordingStore) mock() *mock.ReportStore {
	return &mock.ReportStore{
		StageFn: func(ext string) (string, error) {
			r.staged = append(r.staged, ext)
			return "out/r" + ext + ".tmp", nil
		},
		CommitFn: func() ([]string, error) {
			r.committed = true
			paths := make([]string, 0, len(r.staged))
			for _, ext := range r.staged {
				paths = append(paths, "out/r"+ext)
			}
			return paths, nil
		},
		AbortFn: func() error {
			r.aborted = true
			return nil
		},
	}
}

func newTestDeps(stdout, stderr *bytes.Buffer, store *mock.ReportStore, emitErr error) *main.Dependencies {
	emitter := &mock.ReportEmitter{
		EmitFn: func(_ context.Context, _ string, _ *seoaudit.Report) error { return nil },
	}
	failing := &mock.ReportEmitter{
		EmitFn: func(_ context.Context, _ string, _ *seoaudit.Report) error { return emitErr },
	}

	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Source: &mock.PageSource{
			DiscoverFn: func(_ context.Context, _ string) ([]string, error) {
				return []string{"site/a.html", "site/b.html", "site/broken.html"}, nil
			},
		},
		Auditor: &scan.Auditor{
			Reader: &mock.PageReader{
				ReadPageFn: func(_ context.Context, path string) ([]byte, error) {
					if path == "site/broken.html" {
						return nil, errors.New("permission denied")
					}
					return []byte("Home"), nil
				},
			},
			Decoder: &mock.Decoder{
				DecodeFn: func(raw []byte) string { return string(raw) },
			},
			Extractor: &mock.MetadataExtractor{
				ExtractFn: func(html string) *seoaudit.PageMetadata {
					return &seoaudit.PageMetadata{Title: html}
				},
			},
		},
		Emitters: map[seoaudit.Format]seoaudit.ReportEmitter{
			seoaudit.FormatCSV:  emitter,
			seoaudit.FormatJSON: failing,
		},
		Duplicates: emitter,
		Store:      store,
	}
}

func TestAuditCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("emits reports and prints summary", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		rec := &recordingStore{}
		deps := newTestDeps(&stdout, &stderr, rec.mock(), nil)
		cmd := &main.AuditCmd{Root: "site", Formats: []seoaudit.Format{seoaudit.FormatCSV, seoaudit.FormatJSON}}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{".csv", ".json", ".duplicates.json"}, rec.staged)
		assert.True(t, rec.committed)
		assert.False(t, rec.aborted)
		assert.Equal(t, "--- SEO AUDIT SUMMARY ---\n"+
			"Total HTML files scanned: 2\n"+
			"Pages without canonical: 2\n"+
			"Total JSON-LD blocks found: 0\n"+
			"Top duplicated titles (exact matches):\n"+
			"  \"Home\" -> 2 pages\n"+
			"\nReports generated:\n"+
			"  - out/r.csv\n"+
			"  - out/r.json\n"+
			"  - out/r.duplicates.json\n",
			stdout.String())
	})

	t.Run("reports page failures and continues", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		rec := &recordingStore{}
		deps := newTestDeps(&stdout, &stderr, rec.mock(), nil)
		cmd := &main.AuditCmd{Root: "site", Formats: []seoaudit.Format{seoaudit.FormatCSV}}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Error parsing site/broken.html: permission denied\n", stderr.String())
	})

	t.Run("aborts staged reports when an emitter fails", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		rec := &recordingStore{}
		deps := newTestDeps(&stdout, &stderr, rec.mock(), errors.New("disk full"))
		cmd := &main.AuditCmd{Root: "site", Formats: []seoaudit.Format{seoaudit.FormatCSV, seoaudit.FormatJSON}}

		err := cmd.Run(deps)

		require.EqualError(t, err, "disk full")
		assert.True(t, rec.aborted)
		assert.False(t, rec.committed)
		assert.Contains(t, stderr.String(), "error writing reports: disk full")
		assert.Empty(t, stdout.String())
	})

	t.Run("aborts when no emitter is registered for a format", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		rec := &recordingStore{}
		deps := newTestDeps(&stdout, &stderr, rec.mock(), nil)
		cmd := &main.AuditCmd{Root: "site", Formats: []seoaudit.Format{seoaudit.FormatSQLite}}

		err := cmd.Run(deps)

		assert.Equal(t, seoaudit.EINVALID, seoaudit.ErrorCode(err))
		assert.True(t, rec.aborted)
	})

	t.Run("returns discovery error", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		rec := &recordingStore{}
		deps := newTestDeps(&stdout, &stderr, rec.mock(), nil)
		deps.Source = &mock.PageSource{
			DiscoverFn: func(_ context.Context, root string) ([]string, error) {
				return nil, seoaudit.Errorf(seoaudit.ENOTFOUND, "root %q not found", root)
			},
		}
		cmd := &main.AuditCmd{Root: "missing"}

		err := cmd.Run(deps)

		assert.Equal(t, seoaudit.ENOTFOUND, seoaudit.ErrorCode(err))
		assert.Equal(t, "error: root \"missing\" not found\n", stderr.String())
		assert.Empty(t, rec.staged)
	})

	t.Run("writes only duplicates when no formats are selected", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		rec := &recordingStore{}
		deps := newTestDeps(&stdout, &stderr, rec.mock(), nil)
		cmd := &main.AuditCmd{Root: "site"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{".duplicates.json"}, rec.staged)
	})
}
