package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/focusplug/focusplug/internal/models"
	"github.com/focusplug/focusplug/internal/osutil"
	"github.com/focusplug/focusplug/internal/timeutil"
)

// SQLiteClient stores focusplug data in a SQLite database.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens (or creates) the SQLite database at dbPath.
func NewSQLiteClient(dbPath string) (*SQLiteClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// a single connection serialises writers the same way bolt does
	db.SetMaxOpenConns(1)

	client := &SQLiteClient{db: db}

	if err := client.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return client, nil
}

func (s *SQLiteClient) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
  start_time TEXT PRIMARY KEY,
  end_time TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  elapsed_seconds INTEGER NOT NULL,
  completed INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	return nil
}

func (s *SQLiteClient) Get(key string) ([]byte, error) {
	var value []byte

	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return value, nil
}

func (s *SQLiteClient) Put(entries map[string][]byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	const stmt = `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	for k, v := range entries {
		if _, err := tx.Exec(stmt, k, v); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put %s: %w", k, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteClient) AddSession(sess *models.Session) error {
	const stmt = `
INSERT INTO sessions (start_time, end_time, duration_seconds, elapsed_seconds, completed)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(start_time) DO UPDATE SET
  end_time=excluded.end_time,
  duration_seconds=excluded.duration_seconds,
  elapsed_seconds=excluded.elapsed_seconds,
  completed=excluded.completed;
`
	var completed int
	if sess.Completed {
		completed = 1
	}

	_, err := s.db.Exec(
		stmt,
		string(timeutil.ToKey(sess.StartTime)),
		string(timeutil.ToKey(sess.EndTime)),
		sess.DurationSeconds,
		sess.ElapsedSeconds,
		completed,
	)
	if err != nil {
		return fmt.Errorf("add session: %w", err)
	}

	return nil
}

func (s *SQLiteClient) GetSessions(
	start, end time.Time,
) ([]*models.Session, error) {
	rows, err := s.db.Query(`
SELECT start_time, end_time, duration_seconds, elapsed_seconds, completed
FROM sessions
WHERE start_time >= ? AND start_time <= ?
ORDER BY start_time`,
		string(timeutil.ToKey(start)),
		string(timeutil.ToKey(end)),
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	defer rows.Close()

	var sessions []*models.Session

	for rows.Next() {
		var (
			sess       models.Session
			startTime  string
			endTime    string
			completedN int
		)

		err := rows.Scan(
			&startTime,
			&endTime,
			&sess.DurationSeconds,
			&sess.ElapsedSeconds,
			&completedN,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		sess.StartTime, err = time.Parse(time.RFC3339Nano, startTime)
		if err != nil {
			return nil, err
		}

		sess.EndTime, err = time.Parse(time.RFC3339Nano, endTime)
		if err != nil {
			return nil, err
		}

		sess.Completed = completedN != 0

		sessions = append(sessions, &sess)
	}

	return sessions, rows.Err()
}

func (s *SQLiteClient) Close() error {
	return s.db.Close()
}
