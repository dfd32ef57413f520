package db

import (
	"fmt"
	"time"
)

// Run is one recorded validation run
type Run struct {
	RunID      int64
	FilePath   string
	FieldName  string
	GoodRows   int
	BadRows    int
	DurationMS int64
	CreatedAt  time.Time
}

// RunError is one captured per-row failure belonging to a run
type RunError struct {
	ErrorID  int64
	RunID    int64
	Line     int
	Category string
	Message  string
}

// InsertRun records a completed run and returns its ID
func (db *DB) InsertRun(filePath, fieldName string, goodRows, badRows int, duration time.Duration) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO runs (file_path, field_name, good_rows, bad_rows, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		filePath, fieldName, goodRows, badRows, duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return result.LastInsertId()
}

// InsertRunErrors records the captured per-row failures for a run
func (db *DB) InsertRunErrors(runID int64, errs []RunError) error {
	if len(errs) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO run_errors (run_id, line, category, message) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range errs {
		if _, err := stmt.Exec(runID, e.Line, e.Category, e.Message); err != nil {
			return fmt.Errorf("failed to insert run error: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(
		`SELECT run_id, file_path, field_name, good_rows, bad_rows, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.FilePath, &r.FieldName, &r.GoodRows, &r.BadRows, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunByID returns one run
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(
		`SELECT run_id, file_path, field_name, good_rows, bad_rows, duration_ms, created_at
		 FROM runs WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.FilePath, &r.FieldName, &r.GoodRows, &r.BadRows, &r.DurationMS, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	return &r, nil
}

// GetRunErrors returns the captured failures for a run, in line order
func (db *DB) GetRunErrors(runID int64) ([]RunError, error) {
	rows, err := db.Query(
		`SELECT error_id, run_id, line, category, message
		 FROM run_errors WHERE run_id = ? ORDER BY line`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run errors: %w", err)
	}
	defer rows.Close()

	var errs []RunError
	for rows.Next() {
		var e RunError
		if err := rows.Scan(&e.ErrorID, &e.RunID, &e.Line, &e.Category, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan run error: %w", err)
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}
