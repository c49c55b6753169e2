package analytics

import "math"

// ToPlotPoints maps a series onto percentage space: x spreads the points evenly across
// [0,100] (a lone point sits at 50) and y is measured from the top, so 0 is the ceiling.
// Scores are clamped to [0, ceiling].
func ToPlotPoints(series Series, scale Scale) []PlotPoint {
	n := len(series.Points)
	out := make([]PlotPoint, 0, n)

	for i, p := range series.Points {
		x := 50.0
		if n > 1 {
			x = float64(i) / float64(n-1) * 100
		}
		out = append(out, PlotPoint{
			XPercent: x,
			YPercent: yPercent(p.Score, scale.Ceiling),
			Year:     p.Year,
			Score:    p.Score,
		})
	}
	return out
}

func yPercent(score, ceiling float64) float64 {
	if ceiling <= 0 || math.IsNaN(ceiling) {
		return 100
	}
	v := math.Min(math.Max(finiteOrZero(score), 0), ceiling)
	return 100 - v/ceiling*100
}
