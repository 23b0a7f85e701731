package seoaudit

import (
	"context"
	"strings"
)

// Format identifies a report output format.
type Format string

// Supported report formats.
const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Extension returns the file suffix appended to the output base path.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	case FormatSQLite:
		return ".db"
	default:
		return ""
	}
}

// ParseFormats normalizes a list of format names. Names are trimmed and
// lowercased, blanks and repeats are dropped. Returns EINVALID for an
// unknown format.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool)
	var formats []Format
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		if f == "" || seen[f] {
			continue
		}
		if f.Extension() == "" {
			return nil, Errorf(EINVALID, "unknown report format %q", name)
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// DuplicatesExtension is the suffix of the duplicates report, which is
// written for every run regardless of the selected formats.
const DuplicatesExtension = ".duplicates.json"

// ReportEmitter serializes a report to a file.
type ReportEmitter interface {
	Emit(ctx context.Context, path string, report *Report) error
}

// ReportStore stages report files with atomic semantics.
// Stage returns a temporary path for the given suffix; Commit moves every
// staged file to its final location and returns the final paths; Abort
// discards staged files.
type ReportStore interface {
	Stage(ext string) (string, error)
	Commit() ([]string, error)
	Abort() error
}
