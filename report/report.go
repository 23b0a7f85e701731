// Package report writes audit reports as CSV and JSON files.
package report

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/seoaudit"
)

// Emitters returns the emitter for each supported file format.
func Emitters() map[seoaudit.Format]seoaudit.ReportEmitter {
	return map[seoaudit.Format]seoaudit.ReportEmitter{
		seoaudit.FormatCSV:  NewCSVEmitter(),
		seoaudit.FormatJSON: NewJSONEmitter(),
	}
}

// writeFile creates path and streams the output of write into it through a
// buffered writer.
func writeFile(ctx context.Context, path string, write func(w io.Writer) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// encodeJSON writes v as indented JSON, leaving HTML characters unescaped.
func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
