package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Plausible physiological ranges, inclusive.
const (
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	MinHeightCm = 100.0
	MaxHeightCm = 250.0
)

// ValidationError is an input error meant to be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	// ErrNotNumeric indicates weight or height did not parse as a number.
	ErrNotNumeric = &ValidationError{Field: "input", Message: "Invalid input. Please enter numeric values for weight and height."}
	// ErrWeightRange indicates weight outside MinWeightKg..MaxWeightKg.
	ErrWeightRange = &ValidationError{Field: "weight", Message: "Weight must be between 30 and 300 kg."}
	// ErrHeightRange indicates height outside MinHeightCm..MaxHeightCm.
	ErrHeightRange = &ValidationError{Field: "height", Message: "Height must be between 100 and 250 cm."}
	// ErrEmptyUsername indicates a blank username.
	ErrEmptyUsername = &ValidationError{Field: "username", Message: "Please enter a username."}
)

// Measurement is a validated weight and height pair.
type Measurement struct {
	WeightKg float64
	HeightCm float64
}

// BMI computes the body mass index of the measurement.
func (m Measurement) BMI() float64 {
	return ComputeBMI(m.WeightKg, m.HeightCm)
}

// ParseAndValidate parses raw weight and height text and checks both
// ranges. Both values must parse before any range is checked, and the
// weight range is checked before the height range.
func ParseAndValidate(weightText, heightText string) (Measurement, error) {
	w, err := parseNumber(weightText)
	if err != nil {
		return Measurement{}, err
	}
	h, err := parseNumber(heightText)
	if err != nil {
		return Measurement{}, err
	}
	if w < MinWeightKg || w > MaxWeightKg {
		return Measurement{}, ErrWeightRange
	}
	if h < MinHeightCm || h > MaxHeightCm {
		return Measurement{}, ErrHeightRange
	}
	return Measurement{WeightKg: w, HeightCm: h}, nil
}

// Validate reports whether the raw inputs are acceptable, with the message
// to display when they are not.
func Validate(weightText, heightText string) (bool, string) {
	if _, err := ParseAndValidate(weightText, heightText); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// ValidateUsername trims the username and rejects an empty result.
func ValidateUsername(username string) (string, error) {
	u := strings.TrimSpace(username)
	if u == "" {
		return "", ErrEmptyUsername
	}
	return u, nil
}

// parseNumber accepts decimal notation only. Overflow yields ±Inf, which
// the range checks then reject; NaN is not a number.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if hasHexPrefix(s) {
		return 0, ErrNotNumeric
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return 0, ErrNotNumeric
		}
	}
	if math.IsNaN(v) {
		return 0, ErrNotNumeric
	}
	return v, nil
}

func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
