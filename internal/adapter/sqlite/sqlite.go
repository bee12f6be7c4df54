// Package sqlite implements the observation record store on a local SQLite
// file. Every operation opens its own connection and closes it before
// returning, so no connection or lock outlives a call.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"bmitracker/internal/domain"
	"bmitracker/internal/logger"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Store is a handle on one SQLite database file.
type Store struct {
	path string
	now  func() time.Time
	log  *logger.Logger
}

var _ domain.ObservationRepository = (*Store)(nil)

// New returns a store for the database file at path. Nothing is opened
// until the first operation.
func New(path string, log *logger.Logger) *Store {
	return &Store{path: path, now: time.Now, log: log.With("store", "sqlite")}
}

// Open returns a store for path with its schema initialized.
func Open(ctx context.Context, path string, log *logger.Logger) (*Store, error) {
	s := New(path, log)
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// WithClock replaces the clock used to stamp new observations.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) conn(ctx context.Context) (*sql.DB, error) {
	db, err := openDB("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", s.path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: open %s: %w", s.path, err)
	}
	return db, nil
}

// Initialize creates the records table and its index if absent. It is
// safe to call on every start and never touches existing rows.
func (s *Store) Initialize(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	stmts := []string{
		"CREATE TABLE IF NOT EXISTS records (id INTEGER PRIMARY KEY, username TEXT, weight REAL, height REAL, bmi REAL, date TEXT);",
		"CREATE INDEX IF NOT EXISTS idx_records_username_date ON records(username, date);",
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: initialize: %w", err)
		}
	}
	s.log.Debug("schema ready", "path", s.path)
	return nil
}

// Insert appends an observation stamped with the current local time.
func (s *Store) Insert(ctx context.Context, username string, weightKg, heightCm, bmi float64) (domain.Observation, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return domain.Observation{}, err
	}
	defer func() { _ = db.Close() }()

	recordedAt := s.now().Truncate(time.Second)
	res, err := db.ExecContext(ctx,
		"INSERT INTO records(username, weight, height, bmi, date) VALUES(?, ?, ?, ?, ?);",
		username, weightKg, heightCm, bmi, domain.FormatTimestamp(recordedAt),
	)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("sqlite: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Observation{}, fmt.Errorf("sqlite: insert: %w", err)
	}
	return domain.Observation{
		ID:         id,
		Username:   username,
		WeightKg:   weightKg,
		HeightCm:   heightCm,
		BMI:        bmi,
		RecordedAt: recordedAt.In(time.Local),
	}, nil
}

// ListAll returns every observation, newest first.
func (s *Store) ListAll(ctx context.Context) ([]domain.Observation, error) {
	return s.list(ctx, "list all",
		"SELECT id, username, weight, height, bmi, date FROM records ORDER BY date DESC, id DESC;")
}

// ListForUser returns the observations for username, newest first.
func (s *Store) ListForUser(ctx context.Context, username string) ([]domain.Observation, error) {
	return s.list(ctx, "list for user",
		"SELECT id, username, weight, height, bmi, date FROM records WHERE username = ? ORDER BY date DESC, id DESC;",
		username)
}

// DeleteForUser removes every observation for username.
func (s *Store) DeleteForUser(ctx context.Context, username string) (int64, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()

	res, err := db.ExecContext(ctx, "DELETE FROM records WHERE username = ?;", username)
	if err != nil {
		return 0, fmt.Errorf("sqlite: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: delete: %w", err)
	}
	return n, nil
}

func (s *Store) list(ctx context.Context, op, query string, args ...any) ([]domain.Observation, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}
	defer rows.Close()

	out := make([]domain.Observation, 0)
	for rows.Next() {
		var (
			o    domain.Observation
			date string
		)
		if err := rows.Scan(&o.ID, &o.Username, &o.WeightKg, &o.HeightCm, &o.BMI, &date); err != nil {
			return nil, fmt.Errorf("sqlite: %s: %w", op, err)
		}
		if o.RecordedAt, err = domain.ParseTimestamp(date); err != nil {
			return nil, fmt.Errorf("sqlite: %s: record %d: %w", op, o.ID, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}
	return out, nil
}
