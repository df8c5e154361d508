// Package storage keeps a history of finished runs in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/pthm-cable/drift/telemetry"
)

// History is a SQLite-backed log of run summaries.
type History struct {
	db *sql.DB
}

// Run is one stored run.
type Run struct {
	ID int64
	telemetry.RunSummary
	CreatedAt time.Time
}

// Open creates or opens the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: creating directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: connecting to database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			environment TEXT NOT NULL,
			frames INTEGER NOT NULL,
			distance REAL NOT NULL,
			final_x REAL NOT NULL,
			final_y REAL NOT NULL,
			final_vel REAL NOT NULL,
			final_angle REAL NOT NULL,
			slot INTEGER NOT NULL,
			low_frames INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_env_distance ON runs(environment, distance DESC);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Close closes the database.
func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Save records a finished run and returns its ID.
func (h *History) Save(s telemetry.RunSummary, at time.Time) (int64, error) {
	res, err := h.db.Exec(
		`INSERT INTO runs
		 (environment, frames, distance, final_x, final_y, final_vel, final_angle, slot, low_frames, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Environment, s.Frames, s.Distance, s.FinalX, s.FinalY,
		s.FinalVel, s.FinalAngle, s.Slot, s.LowFrames, at.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: saving run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: reading run id: %w", err)
	}
	return id, nil
}

// Longest returns up to limit runs in environment ordered by distance flown.
func (h *History) Longest(environment string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := h.db.Query(
		`SELECT id, environment, frames, distance, final_x, final_y, final_vel, final_angle, slot, low_frames, created_at
		 FROM runs
		 WHERE environment = ?
		 ORDER BY distance DESC, id ASC
		 LIMIT ?`,
		environment, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdMS int64
		if err := rows.Scan(
			&r.ID, &r.Environment, &r.Frames, &r.Distance, &r.FinalX, &r.FinalY,
			&r.FinalVel, &r.FinalAngle, &r.Slot, &r.LowFrames, &createdMS,
		); err != nil {
			return nil, fmt.Errorf("storage: scanning run: %w", err)
		}
		r.CreatedAt = time.UnixMilli(createdMS)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterating runs: %w", err)
	}
	return runs, nil
}

// Count returns the number of stored runs in environment.
func (h *History) Count(environment string) (int, error) {
	var n int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM runs WHERE environment = ?", environment).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: counting runs: %w", err)
	}
	return n, nil
}
