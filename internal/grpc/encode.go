package grpc

import (
	"time"

	"github.com/simre/results-server/internal/analytics"
	"github.com/simre/results-server/internal/service"
)

func summaryToMap(s analytics.KPISummary) map[string]any {
	return map[string]any{
		"school_count":                  s.SchoolCount,
		"result_count":                  s.ResultCount,
		"current_year_average":          s.CurrentYearAverage,
		"year_over_year_growth_percent": s.YearOverYearGrowthPercent,
	}
}

func chartsToList(charts []service.ChartSeries) []any {
	out := make([]any, len(charts))
	for i, c := range charts {
		gridlines := make([]any, len(c.Scale.Gridlines))
		for j, g := range c.Scale.Gridlines {
			gridlines[j] = g
		}
		points := make([]any, len(c.Points))
		for j, p := range c.Points {
			points[j] = map[string]any{
				"x":     p.XPercent,
				"y":     p.YPercent,
				"year":  p.Year,
				"score": p.Score,
			}
		}
		out[i] = map[string]any{
			"key":       c.Key.String(),
			"title":     c.Title,
			"ceiling":   c.Scale.Ceiling,
			"gridlines": gridlines,
			"points":    points,
		}
	}
	return out
}

func activitiesToList(feed []analytics.Activity, now time.Time) []any {
	out := make([]any, len(feed))
	for i, a := range feed {
		out[i] = map[string]any{
			"kind":     string(a.Kind),
			"title":    a.Title,
			"subtitle": a.Subtitle,
			"at":       a.At.UTC().Format(time.RFC3339),
			"elapsed":  analytics.FormatElapsed(a.At, now),
		}
	}
	return out
}
