package fs

import (
	"context"
	"os"

	"github.com/fwojciec/seoaudit"
)

// Ensure FileReader implements seoaudit.PageReader at compile time.
var _ seoaudit.PageReader = (*FileReader)(nil)

// FileReader reads pages from the local file system.
type FileReader struct{}

// NewFileReader creates a new FileReader.
func NewFileReader() *FileReader {
	return &FileReader{}
}

type readResult struct {
	data []byte
	err  error
}

// ReadPage returns the contents of the file at path. It gives up when ctx
// is done, so a stalled read on a slow mount does not block the caller.
func (r *FileReader) ReadPage(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(path)
		ch <- readResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.data, res.err
	}
}
