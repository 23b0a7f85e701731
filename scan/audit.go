// Package scan orchestrates the audit of a set of HTML pages.
// It coordinates reading, decoding and extraction across a bounded worker
// pool and folds the results into a single audit index.
package scan

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/fwojciec/seoaudit"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed in parallel when
// Auditor.Concurrency is unset.
const DefaultConcurrency = 4

// Auditor processes pages and aggregates their metadata.
type Auditor struct {
	Reader    seoaudit.PageReader
	Decoder   seoaudit.Decoder
	Extractor seoaudit.MetadataExtractor

	// Concurrency bounds the number of pages in flight.
	Concurrency int

	// FileTimeout bounds the time spent reading a single page.
	// Zero means no limit.
	FileTimeout time.Duration
}

// Result holds the outcome of an audit.
type Result struct {
	Index  *seoaudit.AuditIndex
	Failed int
	Bytes  int
}

// ProgressEvent reports progress during an audit.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Bytes     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting audit progress.
// It is always invoked from the goroutine that called Audit.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position int
	path     string
	record   *seoaudit.PageMetadata
	bytes    int
	err      error
}

// Audit reads, decodes and extracts every page in paths and returns the
// aggregated index. Paths are processed in sorted order with repeats
// removed, so the index is the same for any permutation of the input.
//
// A page that cannot be read, parsed or indexed is reported through progress
// as ProgressFailed and left out of the index; the audit continues. Audit
// only returns an error when ctx is done.
func (a *Auditor) Audit(ctx context.Context, paths []string, progress ProgressFunc) (*Result, error) {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sorted)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan pageResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range sorted {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- a.processPage(gctx, i, path)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	var completed int
	for res := range resultCh {
		completed++
		results[res.position] = res

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Path:      res.path,
			Bytes:     res.bytes,
		}
		if res.err != nil {
			event.Type = ProgressFailed
			event.Error = res.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Index: seoaudit.NewAuditIndex()}
	for _, res := range results {
		if res.err != nil {
			result.Failed++
			continue
		}
		if err := result.Index.Add(res.record); err != nil {
			result.Failed++
			continue
		}
		result.Bytes += res.bytes
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

// processPage reads, decodes and extracts a single page. A panic inside the
// decoder or extractor is turned into a failure for that page only.
func (a *Auditor) processPage(ctx context.Context, position int, path string) (res pageResult) {
	res = pageResult{
		position: position,
		path:     path,
	}

	defer func() {
		if r := recover(); r != nil {
			res.record = nil
			res.err = fmt.Errorf("panic: %v", r)
		}
	}()

	if a.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.FileTimeout)
		defer cancel()
	}

	raw, err := a.Reader.ReadPage(ctx, path)
	if err != nil {
		res.err = err
		return res
	}

	rec := a.Extractor.Extract(a.Decoder.Decode(raw))
	if rec == nil {
		rec = &seoaudit.PageMetadata{}
	}
	rec.Path = path
	if err := rec.Validate(); err != nil {
		res.err = err
		return res
	}

	res.record = rec
	res.bytes = len(raw)
	return res
}
