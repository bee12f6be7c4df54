package chart_test

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmitracker/internal/adapter/chart"
	"bmitracker/internal/app"
)

func sampleTrend(bmis ...float64) *app.Trend {
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.Local)
	t := &app.Trend{Username: "alice"}
	var sum float64
	for i, b := range bmis {
		t.Points = append(t.Points, app.TrendPoint{RecordedAt: base.AddDate(0, 0, i), BMI: b})
		if i == 0 || b < t.Min {
			t.Min = b
		}
		if i == 0 || b > t.Max {
			t.Max = b
		}
		sum += b
	}
	if len(bmis) > 0 {
		t.Avg = sum / float64(len(bmis))
	}
	return t
}

func TestRender_PNG(t *testing.T) {
	r, err := chart.NewRenderer(1000, 500)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleTrend(20, 22, 24)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestRender_SinglePointAndFlatSeries(t *testing.T) {
	r, err := chart.NewRenderer(400, 300)
	require.NoError(t, err)

	for _, tr := range []*app.Trend{sampleTrend(23.1), sampleTrend(25, 25, 25)} {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, tr))
		_, err := png.Decode(&buf)
		require.NoError(t, err)
	}
}

func TestRender_NoData(t *testing.T) {
	r, err := chart.NewRenderer(400, 300)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.True(t, errors.Is(r.Render(&buf, nil), chart.ErrNoData))
	assert.True(t, errors.Is(r.Render(&buf, sampleTrend()), chart.ErrNoData))
	assert.Zero(t, buf.Len())
}

func TestNewRenderer_TooSmall(t *testing.T) {
	_, err := chart.NewRenderer(10, 10)
	require.Error(t, err)
}
