package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"botarena/application/state"
)

var ErrEmptyPath = errors.New("sqlite: empty db path")

// Store persists actor state in a single SQLite table. Writes are synchronous:
// a call returns only after the row is committed, so the next activation of
// the same key always sees it.
type Store struct {
	db   *sql.DB
	clk  func() time.Time
	once sync.Once
}

var _ state.Store = (*Store)(nil)

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, clk: time.Now}, nil
}

func (s *Store) WithClock(clock func() time.Time) *Store {
	if clock != nil {
		s.clk = clock
	}
	return s
}

func initPragmas(db *sql.DB) error {
	// actor state is the source of truth, so FULL instead of NORMAL.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS actor_state (
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (kind, key)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Read(ctx context.Context, kind, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM actor_state WHERE kind = ? AND key = ?`, kind, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: read %s/%s: %w", kind, key, err)
	}
	return payload, true, nil
}

func (s *Store) Write(ctx context.Context, kind, key string, payload []byte) error {
	if payload == nil {
		payload = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO actor_state (kind, key, payload, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		kind, key, payload, s.clk().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: write %s/%s: %w", kind, key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, kind, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM actor_state WHERE kind = ? AND key = ?`, kind, key,
	); err != nil {
		return fmt.Errorf("sqlite: clear %s/%s: %w", kind, key, err)
	}
	return nil
}

// Keys lists the stored keys of one actor kind in key order.
func (s *Store) Keys(ctx context.Context, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM actor_state WHERE kind = ? ORDER BY key`, kind)
	if err != nil {
		return nil, fmt.Errorf("sqlite: keys %s: %w", kind, err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}
