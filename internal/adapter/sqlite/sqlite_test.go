package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmitracker/internal/adapter/storetest"
	"bmitracker/internal/domain"
	"bmitracker/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "bmi_records.db"), logger.Nop())
	require.NoError(t, err)
	return s
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T, now func() time.Time) domain.ObservationRepository {
		return newTestStore(t).WithClock(now)
	})
}

func TestInitialize_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, "alice", 70, 175, 22.86)
	require.NoError(t, err)

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))

	items, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStore_PersistsAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bmi_records.db")
	ctx := context.Background()

	first, err := Open(ctx, path, logger.Nop())
	require.NoError(t, err)
	_, err = first.Insert(ctx, "alice", 70, 175, 22.86)
	require.NoError(t, err)

	second, err := Open(ctx, path, logger.Nop())
	require.NoError(t, err)
	items, err := second.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 22.86, items[0].BMI)
}

func TestStore_ReadsLegacyRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	db, err := sql.Open("sqlite", s.path)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO records(username, weight, height, bmi, date) VALUES('erin', 55.5, 160, 21.68, '2024-05-01 07:30:00');")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	items, err := s.ListForUser(ctx, "erin")
	require.NoError(t, err)
	require.Len(t, items, 1)
	want := time.Date(2024, 5, 1, 7, 30, 0, 0, time.Local)
	assert.True(t, items[0].RecordedAt.Equal(want), "got %v", items[0].RecordedAt)
	assert.Equal(t, 55.5, items[0].WeightKg)
}

func TestStore_BadTimestamp(t *testing.T) {
	s := newTestStore(t)

	db, err := sql.Open("sqlite", s.path)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO records(username, weight, height, bmi, date) VALUES('frank', 70, 170, 24.2, 'last tuesday');")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = s.ListForUser(context.Background(), "frank")
	require.Error(t, err)
}

func TestStore_OpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("disk unavailable")
	}

	s := New("ignored.db", logger.Nop())
	ctx := context.Background()

	_, err := s.Insert(ctx, "alice", 70, 175, 22.86)
	require.ErrorContains(t, err, "disk unavailable")
	_, err = s.ListAll(ctx)
	require.Error(t, err)
	_, err = s.DeleteForUser(ctx, "alice")
	require.Error(t, err)
	require.Error(t, s.Initialize(ctx))
}

func TestStore_UnwritableDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing", "dir", "bmi.db"), logger.Nop())
	require.Error(t, s.Initialize(context.Background()))
}
