package analytics

import "strings"

var (
	scale1000 = Scale{Ceiling: 1000, Gridlines: []float64{1000, 750, 500, 250, 0}}
	scale500  = Scale{Ceiling: 500, Gridlines: []float64{500, 375, 250, 125, 0}}
	scale10   = Scale{Ceiling: 10, Gridlines: []float64{10, 7.5, 5, 2.5, 0}}
)

// SelectScale picks the axis of a series from its grade and assessment labels.
// Index instruments (IDEB, IDEPE) always report on 0-10; proficiency scales depend on the grade.
// Score values never influence the result.
func SelectScale(series Series) Scale {
	grade, assessment := series.Key.Grade, series.Key.Assessment
	if series.Key == (SeriesKey{}) {
		grade, assessment = Normalize(series.Grade), Normalize(series.Assessment)
	}
	return scaleFor(grade, assessment)
}

func scaleFor(grade, assessment string) Scale {
	if strings.Contains(assessment, "ideb") || strings.Contains(assessment, "idepe") {
		return scale10.clone()
	}

	switch {
	case strings.Contains(grade, "2"):
		return scale1000.clone()
	case strings.Contains(grade, "5"), strings.Contains(grade, "9"):
		return scale500.clone()
	default:
		return scale10.clone()
	}
}

func (s Scale) clone() Scale {
	lines := make([]float64, len(s.Gridlines))
	copy(lines, s.Gridlines)
	return Scale{Ceiling: s.Ceiling, Gridlines: lines}
}
