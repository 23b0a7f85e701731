package report

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/fwojciec/seoaudit"
)

// Ensure CSVEmitter implements seoaudit.ReportEmitter at compile time.
var _ seoaudit.ReportEmitter = (*CSVEmitter)(nil)

// CSVEmitter writes one flattened row per page under a header of
// seoaudit.Columns.
type CSVEmitter struct{}

// NewCSVEmitter creates a new CSVEmitter.
func NewCSVEmitter() *CSVEmitter {
	return &CSVEmitter{}
}

// Emit writes the report to path.
func (e *CSVEmitter) Emit(ctx context.Context, path string, report *seoaudit.Report) error {
	return writeFile(ctx, path, func(w io.Writer) error {
		return WriteCSV(w, report)
	})
}

// WriteCSV writes the tabular form of report to w with CRLF line endings.
func WriteCSV(w io.Writer, report *seoaudit.Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(seoaudit.Columns); err != nil {
		return err
	}
	for _, rec := range report.Records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
