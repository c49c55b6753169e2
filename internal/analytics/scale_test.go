package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seriesOf(assessment, grade string) Series {
	return Series{
		Key:        SeriesKey{Assessment: Normalize(assessment), Grade: Normalize(grade), Subject: "matematica"},
		Assessment: assessment,
		Grade:      grade,
		Subject:    "Matemática",
	}
}

func TestSelectScale(t *testing.T) {
	cases := []struct {
		name       string
		assessment string
		grade      string
		ceiling    float64
		gridlines  []float64
	}{
		{"second grade", "SAEB", "2º Ano", 1000, []float64{1000, 750, 500, 250, 0}},
		{"fifth grade", "SAEB", "5º Ano", 500, []float64{500, 375, 250, 125, 0}},
		{"ninth grade", "Prova Brasil", "9° ano", 500, []float64{500, 375, 250, 125, 0}},
		{"unknown grade", "SAEB", "Ensino Médio", 10, []float64{10, 7.5, 5, 2.5, 0}},
		{"ideb overrides grade", "IDEB", "5º Ano", 10, []float64{10, 7.5, 5, 2.5, 0}},
		{"idepe overrides grade", "Idepe", "2º Ano", 10, []float64{10, 7.5, 5, 2.5, 0}},
		{"empty labels", "", "", 10, []float64{10, 7.5, 5, 2.5, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectScale(seriesOf(tc.assessment, tc.grade))

			assert.Equal(t, tc.ceiling, got.Ceiling)
			assert.Equal(t, tc.gridlines, got.Gridlines)
		})
	}
}

func TestSelectScale_IgnoresScores(t *testing.T) {
	low := seriesOf("SAEB", "9º Ano")
	low.Points = []SeriesPoint{{Year: 2021, Score: 3}}
	high := seriesOf("SAEB", "9º Ano")
	high.Points = []SeriesPoint{{Year: 2021, Score: 9000}, {Year: 2022, Score: 12}}

	assert.Equal(t, SelectScale(low), SelectScale(high))
}

func TestSelectScale_FromLabelsWithoutKey(t *testing.T) {
	got := SelectScale(Series{Assessment: "IDEB", Grade: "9º Ano"})

	assert.Equal(t, 10.0, got.Ceiling)
}

func TestSelectScale_GridlinesAreNotShared(t *testing.T) {
	first := SelectScale(seriesOf("SAEB", "9º Ano"))
	first.Gridlines[0] = -1

	second := SelectScale(seriesOf("SAEB", "9º Ano"))

	assert.Equal(t, 500.0, second.Gridlines[0])
}
