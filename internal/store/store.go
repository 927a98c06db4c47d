// Package store caches computed predictions in SQL, keyed by settings and table version.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/xtding233/volcano-backend/internal/volcano"
)

// ErrNotFound is returned by Get when no prediction is cached under the key.
var ErrNotFound = errors.New("prediction not found")

// Store is a prediction cache over database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Key identifies a cached prediction. A new table version never reuses old entries.
func Key(s volcano.GameSettings, tableVersion string) string {
	return tableVersion + "/" + s.Fingerprint()
}

// Open connects to the configured backend and creates the schema if needed.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	d, err := NewDialect(DialectType(cfg.Driver))
	if err != nil {
		return nil, err
	}

	var dsn string
	switch d.(type) {
	case *SQLiteDialect:
		if cfg.SQLitePath == "" {
			return nil, errors.New("sqlite path is required")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	case *PostgresDialect:
		dsn = cfg.Postgres.DSN()
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, ok := d.(*PostgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}

	for _, stmt := range d.InitStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS predictions (
			key TEXT PRIMARY KEY,
			table_version TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_table_version ON predictions(table_version)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Get loads the prediction cached under key.
func (s *Store) Get(ctx context.Context, key string) (*volcano.Prediction, error) {
	var body string
	err := s.db.QueryRowContext(ctx, rebind(s.dialect, `SELECT body FROM predictions WHERE key = ?`), key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	var p volcano.Prediction
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &p, nil
}

// Put stores p under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, p *volcano.Prediction) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	q := rebind(s.dialect, `INSERT INTO predictions (key, table_version, body, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET table_version = excluded.table_version, body = excluded.body, created_at = excluded.created_at`)
	if _, err := s.db.ExecContext(ctx, q, key, p.TableVersion, string(body), time.Now().Unix()); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Purge deletes every cached prediction.
func (s *Store) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM predictions`); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	return nil
}

// PurgeStale deletes predictions computed against any table version other than current.
func (s *Store) PurgeStale(ctx context.Context, current string) (int64, error) {
	res, err := s.db.ExecContext(ctx, rebind(s.dialect, `DELETE FROM predictions WHERE table_version <> ?`), current)
	if err != nil {
		return 0, fmt.Errorf("purge stale: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached predictions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
