package analytics

import (
	"math"
	"sort"

	"github.com/simre/results-server/internal/repository/models"
)

// KeyOf derives the series identity of a result.
func KeyOf(r models.Result) SeriesKey {
	return SeriesKey{
		Assessment: Normalize(r.Assessment),
		Grade:      Normalize(r.Grade),
		Subject:    Normalize(r.Subject),
	}
}

// ScoreOf returns the score of r, or 0 when it is missing or not finite.
func ScoreOf(r models.Result) float64 {
	if r.Score == nil {
		return 0
	}
	return finiteOrZero(*r.Score)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Group partitions results into series by KeyOf. Points of every series are sorted by
// year; results sharing a year keep their input order.
func Group(results []models.Result) map[SeriesKey]Series {
	out := make(map[SeriesKey]Series)

	for _, r := range results {
		key := KeyOf(r)
		s, ok := out[key]
		if !ok {
			s = Series{
				Key:        key,
				Assessment: r.Assessment,
				Grade:      r.Grade,
				Subject:    r.Subject,
			}
		}
		s.Points = append(s.Points, SeriesPoint{Year: r.Year, Score: ScoreOf(r)})
		out[key] = s
	}

	for _, s := range out {
		sort.SliceStable(s.Points, func(i, j int) bool {
			return s.Points[i].Year < s.Points[j].Year
		})
	}
	return out
}

// SortedKeys returns the keys of a grouping ordered by assessment, then grade, then subject.
func SortedKeys(groups map[SeriesKey]Series) []SeriesKey {
	keys := make([]SeriesKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].less(keys[j])
	})
	return keys
}
