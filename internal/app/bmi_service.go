// Package app holds the application services and business logic.
package app

import (
	"context"

	"bmitracker/internal/domain"
	"bmitracker/internal/logger"
)

// Result is the outcome of a BMI calculation.
type Result struct {
	WeightKg float64
	HeightCm float64
	BMI      float64
	Category domain.Category
	Severity string
}

// BMIService encapsulates the calculate, save, history and delete use cases.
type BMIService struct {
	repo domain.ObservationRepository
	log  *logger.Logger
}

// NewBMIService creates a BMIService backed by the given repository.
func NewBMIService(repo domain.ObservationRepository, log *logger.Logger) *BMIService {
	return &BMIService{repo: repo, log: log.With("service", "BMIService")}
}

// Calculate validates the raw inputs, then computes and classifies the BMI.
func (s *BMIService) Calculate(weightText, heightText string) (Result, error) {
	m, err := domain.ParseAndValidate(weightText, heightText)
	if err != nil {
		return Result{}, err
	}
	return resultFor(m), nil
}

// Save validates the username and measurement and stores a new
// observation. Nothing is written when validation fails.
func (s *BMIService) Save(ctx context.Context, username, weightText, heightText string) (domain.Observation, error) {
	user, err := domain.ValidateUsername(username)
	if err != nil {
		return domain.Observation{}, err
	}
	m, err := domain.ParseAndValidate(weightText, heightText)
	if err != nil {
		return domain.Observation{}, err
	}

	obs, err := s.repo.Insert(ctx, user, m.WeightKg, m.HeightCm, m.BMI())
	if err != nil {
		s.log.Error("save failed", "username", user, "error", err)
		return domain.Observation{}, err
	}
	s.log.Info("observation saved", "username", user, "id", obs.ID, "bmi", obs.BMI)
	return obs, nil
}

// History returns every user's observations, newest first.
func (s *BMIService) History(ctx context.Context) ([]domain.Observation, error) {
	return s.repo.ListAll(ctx)
}

// UserHistory returns one user's observations, newest first.
func (s *BMIService) UserHistory(ctx context.Context, username string) ([]domain.Observation, error) {
	user, err := domain.ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForUser(ctx, user)
}

// DeleteHistory removes all of a user's observations and reports how many
// were removed. Callers are expected to confirm with the user first.
func (s *BMIService) DeleteHistory(ctx context.Context, username string) (int64, error) {
	user, err := domain.ValidateUsername(username)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.DeleteForUser(ctx, user)
	if err != nil {
		s.log.Error("delete failed", "username", user, "error", err)
		return 0, err
	}
	s.log.Info("history deleted", "username", user, "removed", n)
	return n, nil
}

func resultFor(m domain.Measurement) Result {
	bmi := m.BMI()
	cat, sev := domain.Classify(bmi)
	return Result{WeightKg: m.WeightKg, HeightCm: m.HeightCm, BMI: bmi, Category: cat, Severity: sev}
}
