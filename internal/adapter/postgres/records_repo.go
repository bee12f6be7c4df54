package postgres

import (
	"context"
	"fmt"
	"time"

	"bmitracker/internal/domain"
)

// Insert appends an observation stamped with the current local time.
func (d *DB) Insert(ctx context.Context, username string, weightKg, heightCm, bmi float64) (domain.Observation, error) {
	s, err := d.conn(ctx)
	if err != nil {
		return domain.Observation{}, err
	}
	defer func() { _ = s.Close() }()

	recordedAt := d.now().Truncate(time.Second)
	var id int64
	err = s.QueryRowContext(ctx,
		"INSERT INTO records(username, weight, height, bmi, date) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		username, weightKg, heightCm, bmi, domain.FormatTimestamp(recordedAt),
	).Scan(&id)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("postgres: insert: %w", err)
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
func (d *DB) ListAll(ctx context.Context) ([]domain.Observation, error) {
	return d.list(ctx, "list all",
		"SELECT id, username, weight, height, bmi, date FROM records ORDER BY date DESC, id DESC;")
}

// ListForUser returns the observations for username, newest first.
func (d *DB) ListForUser(ctx context.Context, username string) ([]domain.Observation, error) {
	return d.list(ctx, "list for user",
		"SELECT id, username, weight, height, bmi, date FROM records WHERE username = $1 ORDER BY date DESC, id DESC;",
		username)
}

// DeleteForUser removes every observation for username.
func (d *DB) DeleteForUser(ctx context.Context, username string) (int64, error) {
	s, err := d.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()

	res, err := s.ExecContext(ctx, "DELETE FROM records WHERE username = $1;", username)
	if err != nil {
		return 0, fmt.Errorf("postgres: delete: %w", err)
	}
	return res.RowsAffected()
}

func (d *DB) list(ctx context.Context, op, query string, args ...any) ([]domain.Observation, error) {
	s, err := d.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: %s: %w", op, err)
	}
	defer rows.Close()

	out := make([]domain.Observation, 0)
	for rows.Next() {
		var (
			o    domain.Observation
			date string
		)
		if err := rows.Scan(&o.ID, &o.Username, &o.WeightKg, &o.HeightCm, &o.BMI, &date); err != nil {
			return nil, fmt.Errorf("postgres: %s: %w", op, err)
		}
		if o.RecordedAt, err = domain.ParseTimestamp(date); err != nil {
			return nil, fmt.Errorf("postgres: %s: record %d: %w", op, o.ID, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
