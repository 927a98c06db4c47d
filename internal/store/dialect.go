package store

import (
	"fmt"
	"strings"
)

// Dialect abstracts the SQL differences between sqlite and postgres.
type Dialect interface {
	// DriverName is the database/sql driver name.
	DriverName() string
	// Placeholder returns the bind marker for the 1-based position.
	Placeholder(position int) string
	// InitStatements run once per Open before migrations.
	InitStatements() []string
}

// DialectType names a supported backend.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the dialect for a driver name.
func NewDialect(t DialectType) (Dialect, error) {
	switch t {
	case DialectSQLite, "":
		return &SQLiteDialect{}, nil
	case DialectPostgres:
		return &PostgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", t)
	}
}

// SQLiteDialect targets modernc.org/sqlite.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string { return "sqlite" }

func (d *SQLiteDialect) Placeholder(int) string { return "?" }

func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// PostgresDialect targets github.com/lib/pq.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) Placeholder(position int) string { return fmt.Sprintf("$%d", position) }

func (d *PostgresDialect) InitStatements() []string { return nil }

// rebind converts ? placeholders to the dialect's markers.
//
//	"DELETE FROM predictions WHERE key = ?"  ->  "DELETE FROM predictions WHERE key = $1"
func rebind(d Dialect, query string) string {
	if _, ok := d.(*SQLiteDialect); ok {
		return query
	}
	var b strings.Builder
	pos := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(d.Placeholder(pos))
			pos++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
