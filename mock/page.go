package mock

import (
	"context"

	"github.com/fwojciec/seoaudit"
)

var _ seoaudit.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of seoaudit.PageSource.
type PageSource struct {
	DiscoverFn func(ctx context.Context, root string) ([]string, error)
}

func (s *PageSource) Discover(ctx context.Context, root string) ([]string, error) {
	return s.DiscoverFn(ctx, root)
}

var _ seoaudit.PageReader = (*PageReader)(nil)

// PageReader is a mock implementation of seoaudit.PageReader.
type PageReader struct {
	ReadPageFn func(ctx context.Context, path string) ([]byte, error)
}

func (r *PageReader) ReadPage(ctx context.Context, path string) ([]byte, error) {
	return r.ReadPageFn(ctx, path)
}
