// Package domain contains the core business entities, rules and ports.
package domain

import (
	"context"
	"time"
)

// TimestampLayout is the persisted form of Observation.RecordedAt.
const TimestampLayout = "2006-01-02 15:04:05"

// Observation is one persisted weight/height/BMI reading for a username.
// BMI is computed at save time and trusted as stored afterwards.
type Observation struct {
	ID         int64
	Username   string
	WeightKg   float64
	HeightCm   float64
	BMI        float64
	RecordedAt time.Time
}

// ObservationRepository is the port for the record store.
//
// ListAll and ListForUser return observations newest first. DeleteForUser
// reports how many rows were removed; zero is not an error.
type ObservationRepository interface {
	Insert(ctx context.Context, username string, weightKg, heightCm, bmi float64) (Observation, error)
	ListAll(ctx context.Context) ([]Observation, error)
	ListForUser(ctx context.Context, username string) ([]Observation, error)
	DeleteForUser(ctx context.Context, username string) (int64, error)
}

// FormatTimestamp renders t the way the record store persists it.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

// ParseTimestamp parses a persisted recorded_at value in local time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}
