package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/page-rescue/models"
)

// ErrRecordNotFound is returned by GetRecord for an unknown id.
var ErrRecordNotFound = errors.New("record not found")

const recordColumns = "record_id, url, archived, snapshot_url, ai_reconstruction, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.ReportRecord, error) {
	var (
		rec            models.ReportRecord
		snapshotURL    sql.NullString
		reconstruction sql.NullString
		createdAt      sql.NullTime
	)
	if err := row.Scan(&rec.ID, &rec.URL, &rec.Archived, &snapshotURL, &reconstruction, &createdAt); err != nil {
		return models.ReportRecord{}, err
	}
	rec.SnapshotURL = snapshotURL.String
	rec.AIReconstruction = reconstruction.String
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}
	return rec, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRecord(ctx context.Context, ex execer, rec models.ReportRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	result, err := ex.ExecContext(ctx, `
		INSERT INTO archived_pages (url, archived, snapshot_url, ai_reconstruction, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.URL, rec.Archived, nullable(rec.SnapshotURL), nullable(rec.AIReconstruction), createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get record ID: %w", err)
	}
	return id, nil
}

// InsertRecord stores one report record and returns its record_id.
func (db *DB) InsertRecord(ctx context.Context, rec models.ReportRecord) (int64, error) {
	if rec.URL == "" {
		return 0, errors.New("record URL is required")
	}
	return insertRecord(ctx, db, rec)
}

// ImportRecords inserts recs in a single transaction. Either all rows land or none.
func (db *DB) ImportRecords(ctx context.Context, recs []models.ReportRecord) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	for i, rec := range recs {
		if rec.URL == "" {
			return 0, fmt.Errorf("record %d: URL is required", i)
		}
		if _, err := insertRecord(ctx, tx, rec); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return len(recs), nil
}

// GetRecord returns the record with the given id, or ErrRecordNotFound.
func (db *DB) GetRecord(ctx context.Context, id int64) (models.ReportRecord, error) {
	row := db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM archived_pages WHERE record_id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReportRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return models.ReportRecord{}, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// ListRecords returns the newest records first. A non-positive limit returns all.
func (db *DB) ListRecords(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	query := "SELECT " + recordColumns + " FROM archived_pages ORDER BY record_id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []models.ReportRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountRecords returns the number of stored records.
func (db *DB) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM archived_pages").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Stream calls fn for every record in record_id order without loading the
// table into memory. An error from fn stops the stream and is returned as is.
func (db *DB) Stream(ctx context.Context, fn func(models.ReportRecord) error) error {
	rows, err := db.QueryContext(ctx, "SELECT "+recordColumns+" FROM archived_pages ORDER BY record_id")
	if err != nil {
		return fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return fmt.Errorf("failed to scan record: %w", err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	return nil
}
