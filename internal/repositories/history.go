// Package repositories persists sync run history in the local SQLite
// database so past runs can be reviewed from the CLI.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncRun is one recorded playlist sync: where the songs came from, which
// playlist they landed in, and the outcome counters.
type SyncRun struct {
	ID           string
	PlaylistID   string
	PlaylistName string
	Source       string
	Total        int
	Added        int
	Skipped      int
	Unmatched    int
	Errors       int
	CreatedAt    time.Time
}

// HistoryRepository stores and queries sync runs.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a repository over the given database handle.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Init creates the history schema when absent.
func (r *HistoryRepository) Init() error {
	query := `
		CREATE TABLE IF NOT EXISTS sync_runs (
			id TEXT PRIMARY KEY,
			playlist_id TEXT NOT NULL,
			playlist_name TEXT NOT NULL,
			source TEXT NOT NULL,
			total INTEGER NOT NULL DEFAULT 0,
			added INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			unmatched INTEGER NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sync_runs_created_at ON sync_runs(created_at);
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}
	return nil
}

// Record inserts a completed run, filling in its id and timestamp.
func (r *HistoryRepository) Record(run *SyncRun) error {
	run.ID = uuid.NewString()
	run.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO sync_runs (
			id, playlist_id, playlist_name, source,
			total, added, skipped, unmatched, errors, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.PlaylistID,
		run.PlaylistName,
		run.Source,
		run.Total,
		run.Added,
		run.Skipped,
		run.Unmatched,
		run.Errors,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}

	return nil
}

// Recent returns the most recent runs, newest first.
func (r *HistoryRepository) Recent(limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, playlist_id, playlist_name, source,
		       total, added, skipped, unmatched, errors, created_at
		FROM sync_runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var run SyncRun
		if err := rows.Scan(
			&run.ID,
			&run.PlaylistID,
			&run.PlaylistName,
			&run.Source,
			&run.Total,
			&run.Added,
			&run.Skipped,
			&run.Unmatched,
			&run.Errors,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sync runs: %w", err)
	}

	return runs, nil
}
