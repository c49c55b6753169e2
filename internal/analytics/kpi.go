package analytics

import (
	"time"

	"github.com/simre/results-server/internal/repository/models"
)

// Summarize computes the dashboard KPIs. Growth compares the average score of now's
// calendar year with the previous year and is 0 unless both averages are positive.
func Summarize(results []models.Result, schoolCount int, now time.Time) KPISummary {
	year := now.Year()
	current := yearAverage(results, year)
	prior := yearAverage(results, year-1)

	var growth float64
	if current > 0 && prior > 0 {
		growth = ((current - prior) / prior) * 100.0
	}

	return KPISummary{
		SchoolCount:               schoolCount,
		ResultCount:               len(results),
		CurrentYearAverage:        current,
		YearOverYearGrowthPercent: growth,
	}
}

func yearAverage(results []models.Result, year int) float64 {
	var total float64
	var count int
	for _, r := range results {
		if r.Year != year {
			continue
		}
		total += ScoreOf(r)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
