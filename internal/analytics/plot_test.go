package analytics_test

import (
	"math"
	"testing"

	"github.com/simre/results-server/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPlotPoints(t *testing.T) {
	scale := analytics.Scale{Ceiling: 500, Gridlines: []float64{500, 375, 250, 125, 0}}

	t.Run("single point is centered", func(t *testing.T) {
		series := analytics.Series{Points: []analytics.SeriesPoint{{Year: 2023, Score: 250}}}

		points := analytics.ToPlotPoints(series, scale)

		require.Len(t, points, 1)
		assert.Equal(t, 50.0, points[0].XPercent)
		assert.InDelta(t, 50.0, points[0].YPercent, 1e-9)
		assert.Equal(t, 2023, points[0].Year)
		assert.Equal(t, 250.0, points[0].Score)
	})

	t.Run("points spread evenly", func(t *testing.T) {
		series := analytics.Series{Points: []analytics.SeriesPoint{
			{Year: 2021, Score: 0},
			{Year: 2022, Score: 480},
			{Year: 2023, Score: 500},
		}}

		points := analytics.ToPlotPoints(series, scale)

		require.Len(t, points, 3)
		assert.Equal(t, 0.0, points[0].XPercent)
		assert.Equal(t, 50.0, points[1].XPercent)
		assert.Equal(t, 100.0, points[2].XPercent)

		assert.InDelta(t, 100.0, points[0].YPercent, 1e-9)
		assert.InDelta(t, 4.0, points[1].YPercent, 1e-9)
		assert.InDelta(t, 0.0, points[2].YPercent, 1e-9)
	})

	t.Run("scores above the ceiling are clamped", func(t *testing.T) {
		series := analytics.Series{Points: []analytics.SeriesPoint{{Year: 2022, Score: 6.2}, {Year: 2023, Score: 42}}}

		points := analytics.ToPlotPoints(series, analytics.Scale{Ceiling: 10})

		assert.InDelta(t, 38.0, points[0].YPercent, 1e-9)
		assert.Equal(t, 0.0, points[1].YPercent)
		assert.Equal(t, 42.0, points[1].Score, "labels keep the original score")
	})

	t.Run("negative and non-finite scores sit on the axis", func(t *testing.T) {
		series := analytics.Series{Points: []analytics.SeriesPoint{
			{Year: 2021, Score: -5},
			{Year: 2022, Score: math.NaN()},
			{Year: 2023, Score: math.Inf(1)},
		}}

		for _, p := range analytics.ToPlotPoints(series, scale) {
			assert.Equal(t, 100.0, p.YPercent)
		}
	})

	t.Run("zero ceiling", func(t *testing.T) {
		series := analytics.Series{Points: []analytics.SeriesPoint{{Year: 2021, Score: 5}}}

		points := analytics.ToPlotPoints(series, analytics.Scale{})

		assert.Equal(t, 100.0, points[0].YPercent)
	})

	t.Run("empty series", func(t *testing.T) {
		points := analytics.ToPlotPoints(analytics.Series{}, scale)

		assert.Empty(t, points)
	})
}

func TestToPlotPoints_Bounds(t *testing.T) {
	scores := []float64{-1000, -1, 0, 0.5, 7.5, 10, 10.01, 499, 500, 501, 1e9}
	ceilings := []float64{10, 500, 1000}

	for _, ceiling := range ceilings {
		series := analytics.Series{}
		for i, s := range scores {
			series.Points = append(series.Points, analytics.SeriesPoint{Year: 2000 + i, Score: s})
		}

		points := analytics.ToPlotPoints(series, analytics.Scale{Ceiling: ceiling})

		require.Len(t, points, len(scores))
		for i, p := range points {
			assert.GreaterOrEqual(t, p.YPercent, 0.0)
			assert.LessOrEqual(t, p.YPercent, 100.0)
			if i > 0 {
				assert.GreaterOrEqual(t, p.XPercent, points[i-1].XPercent)
			}
		}
	}
}
