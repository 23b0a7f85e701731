package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/seoaudit"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ seoaudit.ReportEmitter = (*ReportEmitter)(nil)

// Duplicate group kinds stored in the duplicates table.
const (
	KindTitle       = "title"
	KindDescription = "description"
)

// hashRaw returns the hex xxHash of a structured-data payload, so identical
// blocks shared across pages can be grouped in SQL.
func hashRaw(raw string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(raw))
}

// ReportEmitter writes an audit report into a new SQLite database file.
type ReportEmitter struct {
	// Now returns the audit timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewReportEmitter creates a new ReportEmitter.
func NewReportEmitter() *ReportEmitter {
	return &ReportEmitter{Now: time.Now}
}

// Emit creates the database at path and stores the report in it.
func (e *ReportEmitter) Emit(ctx context.Context, path string, report *seoaudit.Report) (err error) {
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	if _, err := SaveReport(ctx, db, report, now()); err != nil {
		return err
	}
	return db.Detach(ctx)
}

// SaveReport stores report as a new audit in db and returns the audit ID.
func SaveReport(ctx context.Context, db *DB, report *seoaudit.Report, createdAt time.Time) (string, error) {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.New().String()

	var missingCanonical, blocks int
	for _, rec := range report.Records {
		if rec.Canonical == "" {
			missingCanonical++
		}
		blocks += len(rec.StructuredData)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO audits (id, created_at, total_pages, missing_canonical, structured_data_blocks)
		VALUES (?, ?, ?, ?, ?)
	`, id, createdAt.UTC().Format(time.RFC3339), len(report.Records), missingCanonical, blocks); err != nil {
		return "", fmt.Errorf("insert audit: %w", err)
	}

	for i, rec := range report.Records {
		if err := insertPage(ctx, tx, id, i, rec); err != nil {
			return "", err
		}
	}

	if dups := report.Duplicates; dups != nil {
		if err := insertDuplicates(ctx, tx, id, KindTitle, dups.Titles); err != nil {
			return "", err
		}
		if err := insertDuplicates(ctx, tx, id, KindDescription, dups.Descriptions); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func insertPage(ctx context.Context, tx *sql.Tx, auditID string, position int, rec *seoaudit.PageMetadata) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (audit_id, position, path, title, meta_description, meta_keywords, meta_ai_summary,
			canonical, og_title, og_description, og_image, twitter_card, json_ld_count, json_ld_summaries)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, auditID, position, rec.Path, rec.Title, rec.MetaDescription, rec.MetaKeywords, rec.MetaAISummary,
		rec.Canonical, rec.OGTitle, rec.OGDescription, rec.OGImage, rec.TwitterCard,
		len(rec.StructuredData), rec.StructuredDataSummary()); err != nil {
		return fmt.Errorf("insert page %q: %w", rec.Path, err)
	}

	for i, h := range rec.Hreflangs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO hreflangs (audit_id, path, position, hreflang, href)
			VALUES (?, ?, ?, ?, ?)
		`, auditID, rec.Path, i, h.Lang, h.URL); err != nil {
			return fmt.Errorf("insert hreflang: %w", err)
		}
	}

	for i := range rec.StructuredData {
		block := &rec.StructuredData[i]

		var value sql.NullString
		if block.Parsed {
			b, err := json.Marshal(block.Value)
			if err != nil {
				return fmt.Errorf("encode structured data: %w", err)
			}
			value = sql.NullString{String: string(b), Valid: true}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO structured_data (audit_id, path, position, type_tag, parsed, raw, raw_hash, value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, auditID, rec.Path, i, block.TypeTag(), block.Parsed, block.Raw, hashRaw(block.Raw), value); err != nil {
			return fmt.Errorf("insert structured data: %w", err)
		}
	}

	return nil
}

func insertDuplicates(ctx context.Context, tx *sql.Tx, auditID, kind string, groups seoaudit.DuplicateGroups) error {
	for _, g := range groups {
		for i, path := range g.Paths {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO duplicates (audit_id, kind, value, position, path)
				VALUES (?, ?, ?, ?, ?)
			`, auditID, kind, g.Value, i, path); err != nil {
				return fmt.Errorf("insert duplicate: %w", err)
			}
		}
	}
	return nil
}
