// Package storage provides SQLite-based persistence for scores and level results.
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

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished run.
type ScoreEntry struct {
	ID        int64
	PackID    string
	Player    string
	Score     int
	Levels    int // Levels cleared in the run
	CreatedAt time.Time
}

// LevelResult is the outcome of one attempt at a level.
type LevelResult struct {
	ID        int64
	PackID    string
	Level     int
	Player    string
	Won       bool
	LivesLeft int
	CreatedAt time.Time
}

// LevelStats aggregates every attempt at one level.
type LevelStats struct {
	PackID   string
	Level    int
	Attempts int
	Wins     int
	AvgLives float64 // Average lives left over won attempts
}

// WinRate returns the fraction of attempts that were won.
func (s LevelStats) WinRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Attempts)
}

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			levels INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_pack_id ON scores(pack_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(pack_id, score DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			won INTEGER NOT NULL,
			lives_left INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(pack_id, level);
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

// SaveScore records a finished run for the given pack.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (pack_id, player, score, levels) VALUES (?, ?, ?, ?)",
		e.PackID, e.Player, e.Score, e.Levels,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given pack.
// Results are ordered by score descending.
func (s *Store) TopScores(packID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, pack_id, player, score, levels, created_at
		 FROM scores
		 WHERE pack_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		packID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PackID, &e.Player, &e.Score, &e.Levels, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given pack.
// Returns 0 if no scores exist.
func (s *Store) HighScore(packID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE pack_id = ?",
		packID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores and level results for the given pack.
func (s *Store) ClearScores(packID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM level_results WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear level results: %w", err)
	}
	return nil
}

// SaveLevelResult records one won or lost level attempt.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	won := 0
	if r.Won {
		won = 1
	}

	result, err := s.db.Exec(
		"INSERT INTO level_results (pack_id, level, player, won, lives_left) VALUES (?, ?, ?, ?, ?)",
		r.PackID, r.Level, r.Player, won, r.LivesLeft,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LevelStats returns aggregated attempts for one level.
// A level that was never played yields zero stats and no error.
func (s *Store) LevelStats(packID string, level int) (LevelStats, error) {
	stats := LevelStats{PackID: packID, Level: level}

	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0),
		        AVG(CASE WHEN won = 1 THEN lives_left END)
		 FROM level_results WHERE pack_id = ? AND level = ?`,
		packID, level,
	).Scan(&stats.Attempts, &stats.Wins, &avg)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	if avg.Valid {
		stats.AvgLives = avg.Float64
	}
	return stats, nil
}

// PackLevelStats returns stats for every level of a pack that has results,
// ordered by level number.
func (s *Store) PackLevelStats(packID string) ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), COALESCE(SUM(won), 0),
		        AVG(CASE WHEN won = 1 THEN lives_left END)
		 FROM level_results
		 WHERE pack_id = ?
		 GROUP BY level
		 ORDER BY level`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	defer rows.Close()

	var out []LevelStats
	for rows.Next() {
		st := LevelStats{PackID: packID}
		var avg sql.NullFloat64
		if err := rows.Scan(&st.Level, &st.Attempts, &st.Wins, &avg); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if avg.Valid {
			st.AvgLives = avg.Float64
		}
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LastPlayed returns when the pack was last finished, or ErrNoScores.
func (s *Store) LastPlayed(packID string) (time.Time, error) {
	var createdAt any
	err := s.db.QueryRow(
		`SELECT created_at FROM scores WHERE pack_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		packID,
	).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoScores
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	return parseTime(createdAt), nil
}

// ErrNoScores is returned when a pack has no recorded runs.
var ErrNoScores = errors.New("storage: no scores recorded")

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
