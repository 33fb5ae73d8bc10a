// Package archive persists finished game sessions to SQLite so results
// survive process restarts.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/okian/ascent/internal/domain/model"
	"github.com/okian/ascent/pkg/metrics"
)

const defaultRecentLimit = 20

// Archive wraps the database connection.
type Archive struct {
	db   *sqlx.DB
	path string
}

// Open opens or creates the archive database at path.
func Open(path string) (*Archive, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping archive database: %w", err)
	}

	a := &Archive{db: db, path: path}

	if err := a.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return a, nil
}

// Path returns the database file path.
func (a *Archive) Path() string {
	return a.path
}

func (a *Archive) migrate() error {
	migrations := []string{
		migrationGameSessions,
		migrationIndexes,
	}

	for _, m := range migrations {
		if _, err := a.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// RecordSession stores one finished game session.
func (a *Archive) RecordSession(ctx context.Context, rec model.GameRecord) error {
	const q = `
INSERT INTO game_sessions (
    session_id, player_id, mode, patterns_completed, best_score, total_score, finished_at
) VALUES (
    :session_id, :player_id, :mode, :patterns_completed, :best_score, :total_score, :finished_at
)
ON CONFLICT(session_id) DO UPDATE SET
    patterns_completed = excluded.patterns_completed,
    best_score = excluded.best_score,
    total_score = excluded.total_score,
    finished_at = excluded.finished_at
`

	if _, err := a.db.NamedExecContext(ctx, q, rec); err != nil {
		metrics.RecordArchiveError()
		return fmt.Errorf("failed to record session %s: %w", rec.SessionID, err)
	}

	metrics.RecordArchiveWrite()
	return nil
}

// RecentSessions returns the most recently finished sessions, newest first.
// A non-positive limit falls back to the default.
func (a *Archive) RecentSessions(ctx context.Context, limit int) ([]model.GameRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	const q = `
SELECT session_id, player_id, mode, patterns_completed, best_score, total_score, finished_at
FROM game_sessions
ORDER BY finished_at DESC
LIMIT ?
`

	records := []model.GameRecord{}
	if err := a.db.SelectContext(ctx, &records, q, limit); err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}

	return records, nil
}

// PlayerSessions returns all archived sessions for one player, newest first.
func (a *Archive) PlayerSessions(ctx context.Context, playerID string) ([]model.GameRecord, error) {
	const q = `
SELECT session_id, player_id, mode, patterns_completed, best_score, total_score, finished_at
FROM game_sessions
WHERE player_id = ?
ORDER BY finished_at DESC
`

	records := []model.GameRecord{}
	if err := a.db.SelectContext(ctx, &records, q, playerID); err != nil {
		return nil, fmt.Errorf("failed to query sessions for %s: %w", playerID, err)
	}

	return records, nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

const migrationGameSessions = `
CREATE TABLE IF NOT EXISTS game_sessions (
    session_id TEXT PRIMARY KEY,
    player_id TEXT NOT NULL,
    mode TEXT NOT NULL,
    patterns_completed INTEGER NOT NULL DEFAULT 0,
    best_score REAL NOT NULL DEFAULT 0,
    total_score REAL NOT NULL DEFAULT 0,
    finished_at TIMESTAMP NOT NULL
);
`

const migrationIndexes = `
CREATE INDEX IF NOT EXISTS idx_game_sessions_player_id ON game_sessions(player_id);
CREATE INDEX IF NOT EXISTS idx_game_sessions_finished_at ON game_sessions(finished_at);
`
