package analytics_test

import (
	"testing"

	"github.com/simre/results-server/internal/analytics"
	"github.com/simre/results-server/internal/repository/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func TestGroup(t *testing.T) {
	t.Run("equivalent labels share a series", func(t *testing.T) {
		results := []models.Result{
			{SchoolID: "s1", Assessment: "saeb", Grade: "9o ano", Subject: "matemática", Year: 2023, Score: score(480)},
			{SchoolID: "s1", Assessment: "SAEB", Grade: "9º Ano", Subject: "Matemática", Year: 2022, Score: score(450)},
		}

		groups := analytics.Group(results)

		require.Len(t, groups, 1)
		key := analytics.SeriesKey{Assessment: "saeb", Grade: "9o ano", Subject: "matematica"}
		series, ok := groups[key]
		require.True(t, ok)

		assert.Equal(t, []analytics.SeriesPoint{{Year: 2022, Score: 450}, {Year: 2023, Score: 480}}, series.Points)
		assert.Equal(t, "saeb", series.Assessment, "labels come from the first result seen")
		assert.Equal(t, 500.0, analytics.SelectScale(series).Ceiling)
	})

	t.Run("different subjects split", func(t *testing.T) {
		results := []models.Result{
			{SchoolID: "s1", Assessment: "SAEB", Grade: "5º Ano", Subject: "Matemática", Year: 2021, Score: score(210)},
			{SchoolID: "s1", Assessment: "SAEB", Grade: "5º Ano", Subject: "Português", Year: 2021, Score: score(199)},
		}

		groups := analytics.Group(results)

		assert.Len(t, groups, 2)
	})

	t.Run("same year keeps input order", func(t *testing.T) {
		results := []models.Result{
			{SchoolID: "s1", Assessment: "IDEB", Grade: "5º", Subject: "Geral", Year: 2022, Score: score(1)},
			{SchoolID: "s1", Assessment: "IDEB", Grade: "5º", Subject: "Geral", Year: 2022, Score: score(2)},
			{SchoolID: "s1", Assessment: "IDEB", Grade: "5º", Subject: "Geral", Year: 2021, Score: score(3)},
		}

		groups := analytics.Group(results)

		require.Len(t, groups, 1)
		for _, s := range groups {
			assert.Equal(t, []analytics.SeriesPoint{
				{Year: 2021, Score: 3},
				{Year: 2022, Score: 1},
				{Year: 2022, Score: 2},
			}, s.Points)
		}
	})

	t.Run("missing score and year default to zero", func(t *testing.T) {
		results := []models.Result{
			{SchoolID: "s1", Assessment: "IDEB", Grade: "9º", Subject: "Geral", Year: 2020, Score: score(4.5)},
			{SchoolID: "s1", Assessment: "IDEB", Grade: "9º", Subject: "Geral"},
		}

		groups := analytics.Group(results)

		require.Len(t, groups, 1)
		for _, s := range groups {
			assert.Equal(t, []analytics.SeriesPoint{{Year: 0, Score: 0}, {Year: 2020, Score: 4.5}}, s.Points)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		groups := analytics.Group(nil)

		assert.NotNil(t, groups)
		assert.Empty(t, groups)
	})
}

func TestGroup_YearsNonDecreasing(t *testing.T) {
	years := []int{2019, 2023, 2021, 2021, 0, 2020, 2023, 2018}
	results := make([]models.Result, 0, len(years))
	for i, y := range years {
		subject := "Matemática"
		if i%2 == 1 {
			subject = "matematica"
		}
		results = append(results, models.Result{SchoolID: "s1", Assessment: "SAEB", Grade: "9º Ano", Subject: subject, Year: y, Score: score(float64(i))})
	}

	for _, s := range analytics.Group(results) {
		for i := 1; i < len(s.Points); i++ {
			assert.LessOrEqual(t, s.Points[i-1].Year, s.Points[i].Year)
		}
	}
}

func TestSortedKeys(t *testing.T) {
	groups := analytics.Group([]models.Result{
		{SchoolID: "s1", Assessment: "SAEB", Grade: "9º Ano", Subject: "Português", Year: 2021},
		{SchoolID: "s1", Assessment: "IDEB", Grade: "5º Ano", Subject: "Geral", Year: 2021},
		{SchoolID: "s1", Assessment: "SAEB", Grade: "5º Ano", Subject: "Matemática", Year: 2021},
	})

	keys := analytics.SortedKeys(groups)

	require.Len(t, keys, 3)
	assert.Equal(t, "ideb - 5o ano - geral", keys[0].String())
	assert.Equal(t, "saeb - 5o ano - matematica", keys[1].String())
	assert.Equal(t, "saeb - 9o ano - portugues", keys[2].String())
}

func TestSortedKeys_PartsContainingSeparator(t *testing.T) {
	results := []models.Result{
		{SchoolID: "s1", Assessment: "a - b", Grade: "c", Subject: "x", Year: 2021},
		{SchoolID: "s1", Assessment: "a", Grade: "b - c", Subject: "x", Year: 2021},
	}

	// both keys join to "a - b - c - x"; map iteration order must not leak into the result
	for i := 0; i < 50; i++ {
		keys := analytics.SortedKeys(analytics.Group(results))

		require.Len(t, keys, 2)
		assert.Equal(t, analytics.SeriesKey{Assessment: "a", Grade: "b - c", Subject: "x"}, keys[0])
		assert.Equal(t, analytics.SeriesKey{Assessment: "a - b", Grade: "c", Subject: "x"}, keys[1])
	}
}
