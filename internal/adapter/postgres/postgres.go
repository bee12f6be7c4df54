// Package postgres implements the observation record store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"bmitracker/internal/domain"
	"bmitracker/internal/logger"
)

// DB is a connection factory for one PostgreSQL database. Each operation
// opens a connection, runs one statement and closes it again.
type DB struct {
	connStr string
	now     func() time.Time
	log     *logger.Logger
}

var _ domain.ObservationRepository = (*DB)(nil)

// New returns a store for connStr without connecting.
func New(connStr string, log *logger.Logger) *DB {
	return &DB{connStr: connStr, now: time.Now, log: log.With("store", "postgres")}
}

// Open connects to PostgreSQL, pings, and initializes the schema.
func Open(ctx context.Context, connStr string, log *logger.Logger) (*DB, error) {
	d := New(connStr, log)
	if err := d.Initialize(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// WithClock replaces the clock used to stamp new observations.
func (d *DB) WithClock(now func() time.Time) *DB {
	d.now = now
	return d
}

func (d *DB) conn(ctx context.Context) (*sql.DB, error) {
	s, err := sql.Open("postgres", d.connStr)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	s.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(pingCtx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return s, nil
}

// Initialize creates the records table and index if they do not exist.
func (d *DB) Initialize(ctx context.Context) error {
	s, err := d.conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	stmts := []string{
		"CREATE TABLE IF NOT EXISTS records (id BIGSERIAL PRIMARY KEY, username TEXT, weight DOUBLE PRECISION, height DOUBLE PRECISION, bmi DOUBLE PRECISION, date TEXT);",
		"CREATE INDEX IF NOT EXISTS idx_records_username_date ON records(username, date);",
	}
	for _, stmt := range stmts {
		if _, err := s.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: initialize: %w", err)
		}
	}
	d.log.Debug("schema ready")
	return nil
}
