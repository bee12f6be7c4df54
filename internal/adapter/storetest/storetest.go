// Package storetest holds the behaviour every domain.ObservationRepository
// implementation must share. Adapter tests call Run with a constructor.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmitracker/internal/domain"
)

// Factory returns an initialized, empty repository whose clock is now.
type Factory func(t *testing.T, now func() time.Time) domain.ObservationRepository

// Clock is a manually advanced clock for deterministic recorded_at values.
type Clock struct {
	t time.Time
}

// NewClock starts a clock at a fixed local time.
func NewClock() *Clock {
	return &Clock{t: time.Date(2026, 1, 2, 8, 0, 0, 0, time.Local)}
}

// Now returns the current clock time.
func (c *Clock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Run executes the shared repository checks.
func Run(t *testing.T, newRepo Factory) {
	t.Run("InsertThenListForUser", func(t *testing.T) {
		repo := newRepo(t, time.Now)
		ctx := context.Background()

		before := time.Now().Truncate(time.Second)
		obs, err := repo.Insert(ctx, "alice", 70, 175, 22.86)
		require.NoError(t, err)
		assert.NotZero(t, obs.ID)

		items, err := repo.ListForUser(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, items, 1)
		got := items[0]
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, 70.0, got.WeightKg)
		assert.Equal(t, 175.0, got.HeightCm)
		assert.Equal(t, 22.86, got.BMI)
		assert.False(t, got.RecordedAt.Before(before), "recorded_at %v before call time %v", got.RecordedAt, before)
		assert.Equal(t, 0, got.RecordedAt.Nanosecond())
	})

	t.Run("ListForUnknownUserIsEmpty", func(t *testing.T) {
		repo := newRepo(t, time.Now)
		items, err := repo.ListForUser(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("OrderingNewestFirst", func(t *testing.T) {
		clock := NewClock()
		repo := newRepo(t, clock.Now)
		ctx := context.Background()

		for i, u := range []string{"alice", "bob", "alice", "bob"} {
			_, err := repo.Insert(ctx, u, 60+float64(i), 170, 20+float64(i))
			require.NoError(t, err)
			clock.Advance(time.Minute)
		}

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		for i := 1; i < len(all); i++ {
			assert.True(t, all[i-1].RecordedAt.After(all[i].RecordedAt), "ListAll not descending at %d", i)
		}
		assert.Equal(t, "bob", all[0].Username)
		assert.Equal(t, 23.0, all[0].BMI)

		alice, err := repo.ListForUser(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, alice, 2)
		assert.Equal(t, 22.0, alice[0].BMI)
		assert.Equal(t, 20.0, alice[1].BMI)
	})

	t.Run("SameSecondKeepsInsertOrder", func(t *testing.T) {
		clock := NewClock()
		repo := newRepo(t, clock.Now)
		ctx := context.Background()

		first, err := repo.Insert(ctx, "carol", 70, 170, 24.2)
		require.NoError(t, err)
		second, err := repo.Insert(ctx, "carol", 71, 170, 24.6)
		require.NoError(t, err)

		items, err := repo.ListForUser(ctx, "carol")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, second.ID, items[0].ID)
		assert.Equal(t, first.ID, items[1].ID)
	})

	t.Run("DeleteForUser", func(t *testing.T) {
		clock := NewClock()
		repo := newRepo(t, clock.Now)
		ctx := context.Background()

		for _, w := range []float64{80, 81, 82} {
			_, err := repo.Insert(ctx, "bob", w, 180, domain.ComputeBMI(w, 180))
			require.NoError(t, err)
			clock.Advance(time.Hour)
		}
		_, err := repo.Insert(ctx, "alice", 70, 175, 22.86)
		require.NoError(t, err)

		n, err := repo.DeleteForUser(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		bob, err := repo.ListForUser(ctx, "bob")
		require.NoError(t, err)
		assert.Empty(t, bob)

		alice, err := repo.ListForUser(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, alice, 1)

		n, err = repo.DeleteForUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("BMIStoredVerbatim", func(t *testing.T) {
		repo := newRepo(t, time.Now)
		ctx := context.Background()

		_, err := repo.Insert(ctx, "dave", 70, 175, 99.99)
		require.NoError(t, err)

		items, err := repo.ListForUser(ctx, "dave")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 99.99, items[0].BMI)
	})
}
