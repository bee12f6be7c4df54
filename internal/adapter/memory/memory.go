// Package memory implements an in-memory record store for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bmitracker/internal/domain"
)

// DB implements an in-memory observation store.
type DB struct {
	mu           sync.Mutex
	observations []domain.Observation
	idCounter    int64
	now          func() time.Time
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{now: time.Now}
}

// Ensure interfaces are met.
var _ domain.ObservationRepository = (*DB)(nil)

// WithClock replaces the clock used to stamp new observations.
func (db *DB) WithClock(now func() time.Time) *DB {
	db.now = now
	return db
}

// Initialize is a no-op; the store has no schema.
func (db *DB) Initialize(ctx context.Context) error {
	return nil
}

// Insert appends an observation.
func (db *DB) Insert(ctx context.Context, username string, weightKg, heightCm, bmi float64) (domain.Observation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.idCounter++
	o := domain.Observation{
		ID:         db.idCounter,
		Username:   username,
		WeightKg:   weightKg,
		HeightCm:   heightCm,
		BMI:        bmi,
		RecordedAt: db.now().Truncate(time.Second).In(time.Local),
	}
	db.observations = append(db.observations, o)
	return o, nil
}

// ListAll lists every observation, newest first.
func (db *DB) ListAll(ctx context.Context) ([]domain.Observation, error) {
	return db.list(func(domain.Observation) bool { return true }), nil
}

// ListForUser lists one user's observations, newest first.
func (db *DB) ListForUser(ctx context.Context, username string) ([]domain.Observation, error) {
	return db.list(func(o domain.Observation) bool { return o.Username == username }), nil
}

// DeleteForUser removes all of a user's observations.
func (db *DB) DeleteForUser(ctx context.Context, username string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.observations[:0]
	var removed int64
	for _, o := range db.observations {
		if o.Username == username {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	db.observations = kept
	return removed, nil
}

func (db *DB) list(keep func(domain.Observation) bool) []domain.Observation {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Observation, 0, len(db.observations))
	for _, o := range db.observations {
		if keep(o) {
			result = append(result, o)
		}
	}

	// Same order as the SQL stores: recorded_at desc, then id desc.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RecordedAt.Equal(result[j].RecordedAt) {
			return result[i].RecordedAt.After(result[j].RecordedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}
