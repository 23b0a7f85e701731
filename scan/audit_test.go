package scan_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/seoaudit"
	"github.com/fwojciec/seoaudit/mock"
	"github.com/fwojciec/seoaudit/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pages serves page bodies from a map and fails for unknown paths.
func pages(bodies map[string]string) *mock.PageReader {
	return &mock.PageReader{
		ReadPageFn: func(_ context.Context, path string) ([]byte, error) {
			body, ok := bodies[path]
			if !ok {
				return nil, errors.New("permission denied")
			}
			return []byte(body), nil
		},
	}
}

func passthroughDecoder() *mock.Decoder {
	return &mock.Decoder{
		DecodeFn: func(raw []byte) string { return string(raw) },
	}
}

// titleExtractor treats the whole body as the page title.
func titleExtractor() *mock.MetadataExtractor {
	return &mock.MetadataExtractor{
		ExtractFn: func(html string) *seoaudit.PageMetadata {
			return &seoaudit.PageMetadata{Title: html}
		},
	}
}

func TestAuditor_Audit(t *testing.T) {
	t.Parallel()

	t.Run("returns empty index for no paths", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader:    pages(nil),
			Decoder:   passthroughDecoder(),
			Extractor: titleExtractor(),
		}

		result, err := a.Audit(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, result.Index.Records)
		assert.Equal(t, 0, result.Failed)
	})

	t.Run("groups pages sharing a title", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader:    pages(map[string]string{"site/a.html": "Home", "site/b.html": "Home"}),
			Decoder:   passthroughDecoder(),
			Extractor: titleExtractor(),
		}

		result, err := a.Audit(context.Background(), []string{"site/b.html", "site/a.html"}, nil)

		require.NoError(t, err)
		dups := result.Index.Duplicates()
		require.Len(t, dups.Titles, 1)
		assert.Equal(t, "Home", dups.Titles[0].Value)
		assert.Equal(t, []string{"site/a.html", "site/b.html"}, dups.Titles[0].Paths)
		assert.Empty(t, dups.Descriptions)
	})

	t.Run("skips unreadable page and continues", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader:    pages(map[string]string{"a.html": "A", "c.html": "C"}),
			Decoder:   passthroughDecoder(),
			Extractor: titleExtractor(),
		}

		var failed []scan.ProgressEvent
		result, err := a.Audit(context.Background(), []string{"a.html", "b.html", "c.html"}, func(e scan.ProgressEvent) {
			if e.Type == scan.ProgressFailed {
				failed = append(failed, e)
			}
		})

		require.NoError(t, err)
		require.Len(t, result.Index.Records, 2)
		assert.Equal(t, "a.html", result.Index.Records[0].Path)
		assert.Equal(t, "c.html", result.Index.Records[1].Path)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, failed, 1)
		assert.Equal(t, "b.html", failed[0].Path)
		assert.EqualError(t, failed[0].Error, "permission denied")
	})

	t.Run("counts a page the index rejects as failed", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader:    pages(map[string]string{"": "Empty", "a.html": "A"}),
			Decoder:   passthroughDecoder(),
			Extractor: titleExtractor(),
		}

		var failed []scan.ProgressEvent
		result, err := a.Audit(context.Background(), []string{"a.html", ""}, func(e scan.ProgressEvent) {
			if e.Type == scan.ProgressFailed {
				failed = append(failed, e)
			}
		})

		require.NoError(t, err)
		require.Len(t, result.Index.Records, 1)
		assert.Equal(t, "a.html", result.Index.Records[0].Path)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Bytes)
		require.Len(t, failed, 1)
		assert.Empty(t, failed[0].Path)
		assert.Equal(t, seoaudit.EINVALID, seoaudit.ErrorCode(failed[0].Error))
	})

	t.Run("records pages in sorted order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		delays := map[string]time.Duration{
			"a.html": 30 * time.Millisecond,
			"b.html": 0,
			"c.html": 15 * time.Millisecond,
		}
		a := &scan.Auditor{
			Reader: &mock.PageReader{
				ReadPageFn: func(_ context.Context, path string) ([]byte, error) {
					time.Sleep(delays[path])
					return []byte(path), nil
				},
			},
			Decoder:     passthroughDecoder(),
			Extractor:   titleExtractor(),
			Concurrency: 3,
		}

		result, err := a.Audit(context.Background(), []string{"c.html", "a.html", "b.html"}, nil)

		require.NoError(t, err)
		var got []string
		for _, rec := range result.Index.Records {
			got = append(got, rec.Path)
		}
		assert.Equal(t, []string{"a.html", "b.html", "c.html"}, got)
	})

	t.Run("removes repeated paths", func(t *testing.T) {
		t.Parallel()

		var reads atomic.Int64
		a := &scan.Auditor{
			Reader: &mock.PageReader{
				ReadPageFn: func(_ context.Context, _ string) ([]byte, error) {
					reads.Add(1)
					return []byte("x"), nil
				},
			},
			Decoder:   passthroughDecoder(),
			Extractor: titleExtractor(),
		}

		result, err := a.Audit(context.Background(), []string{"a.html", "a.html"}, nil)

		require.NoError(t, err)
		assert.Len(t, result.Index.Records, 1)
		assert.Equal(t, int64(1), reads.Load())
	})

	t.Run("produces identical indices for repeated runs", func(t *testing.T) {
		t.Parallel()

		bodies := map[string]string{"a.html": "Home", "b.html": "About", "c.html": "Home", "d.html": "About"}
		a := &scan.Auditor{
			Reader:      pages(bodies),
			Decoder:     passthroughDecoder(),
			Extractor:   titleExtractor(),
			Concurrency: 2,
		}

		first, err := a.Audit(context.Background(), []string{"d.html", "c.html", "b.html", "a.html"}, nil)
		require.NoError(t, err)
		second, err := a.Audit(context.Background(), []string{"a.html", "b.html", "c.html", "d.html"}, nil)
		require.NoError(t, err)

		assert.Equal(t, first.Index.Records, second.Index.Records)
		assert.Equal(t, first.Index.Duplicates(), second.Index.Duplicates())
		assert.Equal(t, first.Index.Summary(seoaudit.DefaultTopTitles), second.Index.Summary(seoaudit.DefaultTopTitles))
	})

	t.Run("sets path on extracted record", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader:  pages(map[string]string{"a.html": ""}),
			Decoder: passthroughDecoder(),
			Extractor: &mock.MetadataExtractor{
				ExtractFn: func(_ string) *seoaudit.PageMetadata { return nil },
			},
		}

		result, err := a.Audit(context.Background(), []string{"a.html"}, nil)

		require.NoError(t, err)
		require.Len(t, result.Index.Records, 1)
		assert.Equal(t, &seoaudit.PageMetadata{Path: "a.html"}, result.Index.Records[0])
		assert.Equal(t, []string{"a.html"}, result.Index.MissingCanonical)
	})

	t.Run("passes raw bytes through the decoder", func(t *testing.T) {
		t.Parallel()

		var decoded []byte
		var mu sync.Mutex
		a := &scan.Auditor{
			Reader: pages(map[string]string{"a.html": "\xff\xfe"}),
			Decoder: &mock.Decoder{
				DecodeFn: func(raw []byte) string {
					mu.Lock()
					defer mu.Unlock()
					decoded = raw
					return "decoded"
				},
			},
			Extractor: titleExtractor(),
		}

		result, err := a.Audit(context.Background(), []string{"a.html"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []byte("\xff\xfe"), decoded)
		assert.Equal(t, "decoded", result.Index.Records[0].Title)
		assert.Equal(t, 2, result.Bytes)
	})

	t.Run("turns extractor panic into page failure", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader:  pages(map[string]string{"a.html": "boom", "b.html": "ok"}),
			Decoder: passthroughDecoder(),
			Extractor: &mock.MetadataExtractor{
				ExtractFn: func(html string) *seoaudit.PageMetadata {
					if html == "boom" {
						panic("unexpected node")
					}
					return &seoaudit.PageMetadata{Title: html}
				},
			},
		}

		var failure error
		result, err := a.Audit(context.Background(), []string{"a.html", "b.html"}, func(e scan.ProgressEvent) {
			if e.Type == scan.ProgressFailed {
				failure = e.Error
			}
		})

		require.NoError(t, err)
		require.Len(t, result.Index.Records, 1)
		assert.Equal(t, "b.html", result.Index.Records[0].Path)
		require.Error(t, failure)
		assert.Contains(t, failure.Error(), "unexpected node")
	})

	t.Run("applies file timeout to reads", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader: &mock.PageReader{
				ReadPageFn: func(ctx context.Context, _ string) ([]byte, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				},
			},
			Decoder:     passthroughDecoder(),
			Extractor:   titleExtractor(),
			FileTimeout: 10 * time.Millisecond,
		}

		var failure error
		result, err := a.Audit(context.Background(), []string{"slow.html"}, func(e scan.ProgressEvent) {
			if e.Type == scan.ProgressFailed {
				failure = e.Error
			}
		})

		require.NoError(t, err)
		assert.Empty(t, result.Index.Records)
		assert.ErrorIs(t, failure, context.DeadlineExceeded)
	})

	t.Run("returns error when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := &scan.Auditor{
			Reader:    pages(map[string]string{"a.html": "A"}),
			Decoder:   passthroughDecoder(),
			Extractor: titleExtractor(),
		}

		result, err := a.Audit(ctx, []string{"a.html"}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})

	t.Run("reports progress events in order", func(t *testing.T) {
		t.Parallel()

		a := &scan.Auditor{
			Reader:      pages(map[string]string{"a.html": "A", "b.html": "B"}),
			Decoder:     passthroughDecoder(),
			Extractor:   titleExtractor(),
			Concurrency: 1,
		}

		var events []scan.ProgressEvent
		_, err := a.Audit(context.Background(), []string{"a.html", "b.html"}, func(e scan.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, scan.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, scan.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, 1, events[1].Bytes)
		assert.Equal(t, scan.ProgressCompleted, events[2].Type)
		assert.Equal(t, 2, events[2].Completed)
		assert.Equal(t, scan.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})
}
