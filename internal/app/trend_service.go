package app

import (
	"context"
	"time"

	"bmitracker/internal/domain"
)

// TrendService derives chart data and summary statistics from a user's
// observations.
type TrendService struct {
	repo domain.ObservationRepository
}

// NewTrendService creates a TrendService backed by the given repository.
func NewTrendService(repo domain.ObservationRepository) *TrendService {
	return &TrendService{repo: repo}
}

// TrendPoint is a single point of a BMI trend.
type TrendPoint struct {
	RecordedAt time.Time
	BMI        float64
}

// Trend is a user's BMI series, oldest first, with min/max/mean over it.
type Trend struct {
	Username string
	Points   []TrendPoint
	Min      float64
	Max      float64
	Avg      float64
}

// Trend returns the user's BMI trend. It returns nil without an error when
// the user has no observations.
func (s *TrendService) Trend(ctx context.Context, username string) (*Trend, error) {
	user, err := domain.ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListForUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	t := &Trend{Username: user, Points: make([]TrendPoint, len(items))}
	var sum float64
	// items are newest first; fill points oldest first.
	for i, o := range items {
		t.Points[len(items)-1-i] = TrendPoint{RecordedAt: o.RecordedAt, BMI: o.BMI}
		if i == 0 || o.BMI < t.Min {
			t.Min = o.BMI
		}
		if i == 0 || o.BMI > t.Max {
			t.Max = o.BMI
		}
		sum += o.BMI
	}
	t.Avg = sum / float64(len(items))
	return t, nil
}
