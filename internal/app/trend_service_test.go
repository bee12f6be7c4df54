package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bmitracker/internal/adapter/memory"
	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

func TestTrend_Stats(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local)
	repo := &mockObservationRepo{
		listFn: func(_ context.Context, _ string) ([]domain.Observation, error) {
			// newest first, as the store returns them
			return []domain.Observation{
				{ID: 3, BMI: 24.0, RecordedAt: base.Add(2 * time.Hour)},
				{ID: 2, BMI: 22.0, RecordedAt: base.Add(time.Hour)},
				{ID: 1, BMI: 20.0, RecordedAt: base},
			}, nil
		},
	}
	svc := app.NewTrendService(repo)

	tr, err := svc.Trend(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr == nil {
		t.Fatal("expected trend, got nil")
	}
	if tr.Min != 20.0 || tr.Max != 24.0 || tr.Avg != 22.0 {
		t.Errorf("expected min=20 max=24 avg=22, got %v %v %v", tr.Min, tr.Max, tr.Avg)
	}
	want := []float64{20.0, 22.0, 24.0}
	if len(tr.Points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(tr.Points))
	}
	for i, p := range tr.Points {
		if p.BMI != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], p.BMI)
		}
		if i > 0 && !p.RecordedAt.After(tr.Points[i-1].RecordedAt) {
			t.Errorf("points not oldest-first at %d", i)
		}
	}
	if tr.Username != "alice" {
		t.Errorf("expected username alice, got %q", tr.Username)
	}
}

func TestTrend_NoData(t *testing.T) {
	svc := app.NewTrendService(&mockObservationRepo{})
	tr, err := svc.Trend(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr != nil {
		t.Errorf("expected nil trend, got %+v", tr)
	}
}

func TestTrend_SinglePoint(t *testing.T) {
	repo := &mockObservationRepo{
		listFn: func(_ context.Context, _ string) ([]domain.Observation, error) {
			return []domain.Observation{{ID: 1, BMI: 31.2}}, nil
		},
	}
	tr, err := app.NewTrendService(repo).Trend(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Min != 31.2 || tr.Max != 31.2 || tr.Avg != 31.2 {
		t.Errorf("expected all stats 31.2, got %+v", tr)
	}
}

func TestTrend_Errors(t *testing.T) {
	svc := app.NewTrendService(&mockObservationRepo{})
	if _, err := svc.Trend(context.Background(), ""); !errors.Is(err, domain.ErrEmptyUsername) {
		t.Errorf("expected ErrEmptyUsername, got %v", err)
	}

	failing := &mockObservationRepo{
		listFn: func(_ context.Context, _ string) ([]domain.Observation, error) {
			return nil, errors.New("unavailable")
		},
	}
	if _, err := app.NewTrendService(failing).Trend(context.Background(), "alice"); err == nil {
		t.Error("expected storage error")
	}
}

func TestTrend_WithMemoryStore(t *testing.T) {
	clock := time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local)
	db := memory.New().WithClock(func() time.Time { return clock })
	ctx := context.Background()

	for _, bmi := range []float64{20.0, 22.0, 24.0} {
		if _, err := db.Insert(ctx, "bob", 70, 175, bmi); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		clock = clock.Add(24 * time.Hour)
	}

	tr, err := app.NewTrendService(db).Trend(ctx, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Points[0].BMI != 20.0 || tr.Points[2].BMI != 24.0 {
		t.Errorf("expected oldest-first points, got %+v", tr.Points)
	}
	if tr.Avg != 22.0 {
		t.Errorf("expected avg 22, got %v", tr.Avg)
	}
}
