package app_test

import (
	"context"

	"bmitracker/internal/domain"
)

type mockObservationRepo struct {
	insertFn  func(ctx context.Context, username string, w, h, bmi float64) (domain.Observation, error)
	listAllFn func(ctx context.Context) ([]domain.Observation, error)
	listFn    func(ctx context.Context, username string) ([]domain.Observation, error)
	deleteFn  func(ctx context.Context, username string) (int64, error)
}

func (m *mockObservationRepo) Insert(ctx context.Context, username string, w, h, bmi float64) (domain.Observation, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, username, w, h, bmi)
	}
	return domain.Observation{ID: 1, Username: username, WeightKg: w, HeightCm: h, BMI: bmi}, nil
}

func (m *mockObservationRepo) ListAll(ctx context.Context) ([]domain.Observation, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockObservationRepo) ListForUser(ctx context.Context, username string) ([]domain.Observation, error) {
	if m.listFn != nil {
		return m.listFn(ctx, username)
	}
	return nil, nil
}

func (m *mockObservationRepo) DeleteForUser(ctx context.Context, username string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, username)
	}
	return 0, nil
}
