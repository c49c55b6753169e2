package analytics

import "time"

// SeriesKey identifies a series by its normalized assessment, grade and subject.
type SeriesKey struct {
	Assessment string
	Grade      string
	Subject    string
}

// String joins the key parts with " - ", the form FormatTitle expects.
func (k SeriesKey) String() string {
	return k.Assessment + " - " + k.Grade + " - " + k.Subject
}

// less compares field by field; the joined String form is ambiguous when a part contains " - ".
func (k SeriesKey) less(o SeriesKey) bool {
	if k.Assessment != o.Assessment {
		return k.Assessment < o.Assessment
	}
	if k.Grade != o.Grade {
		return k.Grade < o.Grade
	}
	return k.Subject < o.Subject
}

type SeriesPoint struct {
	Year  int
	Score float64
}

// Series is the chronological score sequence of one SeriesKey. The labels are the
// original (non-normalized) texts of the first result seen for the key.
type Series struct {
	Key        SeriesKey
	Assessment string
	Grade      string
	Subject    string
	Points     []SeriesPoint
}

type Scale struct {
	Ceiling   float64
	Gridlines []float64
}

type PlotPoint struct {
	XPercent float64
	YPercent float64
	Year     int
	Score    float64
}

type KPISummary struct {
	SchoolCount               int
	ResultCount               int
	CurrentYearAverage        float64
	YearOverYearGrowthPercent float64
}

type ActivityKind string

const (
	ActivityNewSchool ActivityKind = "new_school"
	ActivityNewResult ActivityKind = "new_result"
)

type Activity struct {
	Kind     ActivityKind
	Title    string
	Subtitle string
	At       time.Time
}
