package store

import (
	"fmt"
	"time"
)

// Config selects and configures the prediction cache backend.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	SQLitePath string `yaml:"sqlite_path"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection and pool settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DefaultConfig returns a sqlite config at path.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     "sqlite",
		SQLitePath: sqlitePath,
	}
}

// DefaultPostgresConfig returns PostgresConfig with small pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// DSN renders the lib/pq keyword/value connection string.
func (p PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", p.Host, p.Port, p.Database, p.SSLMode)
	if p.User != "" {
		dsn += " user=" + p.User
	}
	if p.Password != "" {
		dsn += " password=" + p.Password
	}
	return dsn
}
