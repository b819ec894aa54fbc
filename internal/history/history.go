package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one finished bootstrap run. Outcome metadata only; secret
// material is never persisted.
type Record struct {
	TaskID      string    `json:"taskId"`
	NodeID      string    `json:"nodeId"`
	Platform    string    `json:"platform"`
	Success     bool      `json:"success"`
	FailingStep int       `json:"failingStep"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Store is an append-only run log in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates the database (and its schema) if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history mkdir: %w", err)
	}
	dsn := "file:" + path + "?_pragma=busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history open: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history ping: %w", err)
	}
	schema := `CREATE TABLE IF NOT EXISTS runs(
		task_id TEXT,
		node_id TEXT,
		platform TEXT,
		success INTEGER,
		failing_step INTEGER,
		started_at INTEGER,
		finished_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_runs_node ON runs(node_id);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(rec Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(task_id, node_id, platform, success, failing_step, started_at, finished_at) VALUES(?,?,?,?,?,?,?)`,
		rec.TaskID, rec.NodeID, rec.Platform, boolToInt(rec.Success), rec.FailingStep,
		rec.StartedAt.Unix(), rec.FinishedAt.Unix())
	if err != nil {
		return fmt.Errorf("history insert: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT task_id, node_id, platform, success, failing_step, started_at, finished_at
		 FROM runs ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var success int
		var started, finished int64
		if err := rows.Scan(&r.TaskID, &r.NodeID, &r.Platform, &success, &r.FailingStep, &started, &finished); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		r.Success = success != 0
		r.StartedAt = time.Unix(started, 0).UTC()
		r.FinishedAt = time.Unix(finished, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
