// Package history keeps a local record of completed conversions so past
// results survive the one-shot CLI process.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Conversion is one recorded successful conversion.
type Conversion struct {
	ID        int64
	TaskID    string
	Source    string
	Target    string
	Amount    float64
	Rate      float64
	Converted float64
	CreatedAt time.Time
}

// Store is a SQLite-backed conversion log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// WAL and busy timeout; failure here is not critical.
	_, _ = db.Exec(`
		PRAGMA busy_timeout = 5000;
		PRAGMA journal_mode = WAL;
	`)

	s := &Store{db: db}
	if err := s.initTable(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id TEXT NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		amount REAL NOT NULL,
		rate REAL NOT NULL,
		converted REAL NOT NULL,
		created_time DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_conversions_created ON conversions(created_time);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("init history table: %w", err)
	}
	return nil
}

// Record appends a completed conversion. CreatedAt defaults to now.
func (s *Store) Record(c Conversion) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO conversions (task_id, source, target, amount, rate, converted, created_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, c.TaskID, c.Source, c.Target, c.Amount, c.Rate, c.Converted, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("record conversion: %w", err)
	}
	return nil
}

// List returns the most recent conversions, newest first.
// limit <= 0 returns everything.
func (s *Store) List(limit int) ([]Conversion, error) {
	query := `SELECT id, task_id, source, target, amount, rate, converted, created_time
		FROM conversions ORDER BY created_time DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Source, &c.Target, &c.Amount, &c.Rate, &c.Converted, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
