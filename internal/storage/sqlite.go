// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is the record of one finished run.
type RunEntry struct {
	ID        int64
	RunID     string // Session run identifier (UUID)
	Player    string // Local user or SSH user name
	Score     int
	Wave      int // Wave the player died in
	CreatedAt time.Time
}

// WavesSurvived returns the number of waves fully cleared.
func (e RunEntry) WavesSurvived() int {
	if e.Wave < 1 {
		return 0
	}
	return e.Wave - 1
}

// ErrDuplicateRun is returned when a run is saved twice.
var ErrDuplicateRun = errors.New("storage: run already recorded")

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			wave INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(runID, player string, score, wave int) (int64, error) {
	if exists, err := s.hasRun(runID); err != nil {
		return 0, err
	} else if exists {
		return 0, ErrDuplicateRun
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (run_id, player, score, wave) VALUES (?, ?, ?, ?)",
		runID, player, score, wave,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

func (s *Store) hasRun(runID string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE run_id = ?", runID).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot look up run: %w", err)
	}
	return n > 0, nil
}

// TopRuns retrieves the top N runs ordered by score descending.
// Ties go to the run that reached the later wave.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, score, wave, created_at
		 FROM runs
		 ORDER BY score DESC, wave DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns retrieves every recorded run (no limit).
func (s *Store) AllRuns() ([]RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, player, score, wave, created_at
		 FROM runs
		 ORDER BY score DESC, wave DESC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Player, &e.Score, &e.Wave, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded score.
// Returns 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	return s.maxOf("score")
}

// BestWave returns the furthest wave any run reached.
// Returns 0 if no runs exist.
func (s *Store) BestWave() (int, error) {
	return s.maxOf("wave")
}

func (s *Store) maxOf(column string) (int, error) {
	var v sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(" + column + ") FROM runs").Scan(&v); err != nil {
		return 0, fmt.Errorf("storage: cannot query max %s: %w", column, err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
