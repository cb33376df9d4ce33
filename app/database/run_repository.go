package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// RunRepository handles database operations for pipeline runs
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// RecordRun inserts a completed run and returns its row id.
func (r *RunRepository) RecordRun(run Run) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO runs (run_date, language, outcome, item_count, detail, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.Date, run.Language, run.Outcome, run.ItemCount, run.Detail, run.Duration)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	return id, nil
}

// RecentRuns returns the most recent runs, newest first.
func (r *RunRepository) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT id, run_date, language, outcome, item_count, detail, duration_ms, created_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID, &run.Date, &run.Language, &run.Outcome,
			&run.ItemCount, &run.Detail, &run.Duration, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}

	return runs, nil
}

// LastRunForDate returns the newest run recorded for a date, or nil.
func (r *RunRepository) LastRunForDate(date string) (*Run, error) {
	var run Run
	err := r.db.QueryRow(`
		SELECT id, run_date, language, outcome, item_count, detail, duration_ms, created_at
		FROM runs
		WHERE run_date = ?
		ORDER BY id DESC
		LIMIT 1
	`, date).Scan(
		&run.ID, &run.Date, &run.Language, &run.Outcome,
		&run.ItemCount, &run.Detail, &run.Duration, &run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run for date: %w", err)
	}

	return &run, nil
}

// Stats counts runs per terminal outcome.
func (r *RunRepository) Stats() (OutcomeStats, error) {
	var stats OutcomeStats
	rows, err := r.db.Query(`SELECT outcome, COUNT(*) FROM runs GROUP BY outcome`)
	if err != nil {
		return stats, fmt.Errorf("failed to get run stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return stats, fmt.Errorf("failed to scan stats row: %w", err)
		}
		switch outcome {
		case "published":
			stats.Published = count
		case "empty":
			stats.Empty = count
		case "failed":
			stats.Failed = count
		}
	}

	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("failed to iterate stats rows: %w", err)
	}

	return stats, nil
}
