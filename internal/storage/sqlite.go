// Package storage provides a SQLite-backed journal of finished runs.
// Each run keeps its seed and input log so it can be replayed exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// InputEvent lists the actions pressed on one tick. Ticks without input
// are not stored.
type InputEvent struct {
	Tick    int      `json:"t"`
	Actions []string `json:"a"`
}

// Run is one finished playthrough.
type Run struct {
	ID        int64
	GameID    string
	Seed      int64
	TickRate  int
	ScreenW   int
	ScreenH   int
	Score     int
	Ticks     int // Steps from reset to game over
	Inputs    []InputEvent

	// Difficulty is the preset name in effect, empty for none. Config is
	// the resolved game config as YAML; empty means built-in defaults.
	Difficulty string
	Config     string

	CreatedAt time.Time
}

// DifficultyName returns the preset name for display.
func (r Run) DifficultyName() string {
	if r.Difficulty == "" {
		return "default"
	}
	return r.Difficulty
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
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			screen_w INTEGER NOT NULL,
			screen_h INTEGER NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			inputs TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			difficulty TEXT NOT NULL DEFAULT '',
			config TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id, id DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Journals created before runs carried their config.
	for _, col := range []string{"difficulty", "config"} {
		if err := s.addColumn("runs", col, "TEXT NOT NULL DEFAULT ''"); err != nil {
			return err
		}
	}
	return nil
}

// addColumn adds a column unless the table already has it.
func (s *Store) addColumn(table, column, decl string) error {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
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
func (s *Store) SaveRun(r Run) (int64, error) {
	inputs := r.Inputs
	if inputs == nil {
		inputs = []InputEvent{}
	}
	data, err := json.Marshal(inputs)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode inputs: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, seed, tick_rate, screen_w, screen_h, score, ticks, inputs, difficulty, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.TickRate, r.ScreenW, r.ScreenH, r.Score, r.Ticks, string(data), r.Difficulty, r.Config,
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

const runColumns = `id, game_id, seed, tick_rate, screen_w, screen_h, score, ticks, inputs, created_at, difficulty, config`

// gameFilter narrows a query to one game; an empty gameID matches all.
func gameFilter(gameID string) (string, []any) {
	if gameID == "" {
		return "", nil
	}
	return " WHERE game_id = ?", []any{gameID}
}

// RecentRuns retrieves the latest runs, newest first. An empty gameID
// lists runs of every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	where, args := gameFilter(gameID)
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs`+where+` ORDER BY id DESC LIMIT ?`, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CountRuns returns how many runs of a game are journaled, or of all
// games when gameID is empty.
func (s *Store) CountRuns(gameID string) (int, error) {
	var n int
	where, args := gameFilter(gameID)
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes the runs of one game, or the whole journal when
// gameID is empty.
func (s *Store) ClearRuns(gameID string) error {
	where, args := gameFilter(gameID)
	if _, err := s.db.Exec("DELETE FROM runs"+where, args...); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r         Run
		inputs    string
		createdAt any
	)
	err := sc.Scan(&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.ScreenW, &r.ScreenH,
		&r.Score, &r.Ticks, &inputs, &createdAt, &r.Difficulty, &r.Config)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	if err := json.Unmarshal([]byte(inputs), &r.Inputs); err != nil {
		return r, fmt.Errorf("storage: run %d has a corrupt input log: %w", r.ID, err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
