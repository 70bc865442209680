package experience

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		years float64
		ok    bool
	}{
		{text: "5 years of Go", years: 5, ok: true},
		{text: "3-5 years experience", years: 4, ok: true},
		{text: "mindestens 3 Jahre Berufserfahrung", years: 3, ok: true},
		{text: "2 bis 4 Jahren Erfahrung", years: 3, ok: true},
		{text: "7+ yrs backend", years: 7, ok: true},
		{text: "1,5 Jahre", years: 1.5, ok: true},
		{text: "senior engineer", years: 0, ok: false},
		{text: "", years: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			years, ok := FromText(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.years, years, 1e-9)
		})
	}
}

func TestExtractPrecedence(t *testing.T) {
	t.Parallel()
	ref := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	six := 6.0

	years, origin := Extract(Source{Years: &six, Text: "2 years"}, ref)
	assert.Equal(t, 6.0, years)
	assert.Equal(t, OriginField, origin)

	years, origin = Extract(Source{
		Text: "2 years",
		History: []Entry{
			{Title: "Backend", Start: "2019-01", End: "2021-07"},
			{Title: "Lead", Start: "2022-07", End: "present"},
			{Title: "Freelance", Years: 1},
		},
	}, ref)
	assert.Equal(t, OriginHistory, origin)
	assert.InDelta(t, 2.5+2+1, years, 1e-9)

	years, origin = Extract(Source{Text: "about 2 years"}, ref)
	assert.Equal(t, 2.0, years)
	assert.Equal(t, OriginText, origin)

	years, origin = Extract(Source{Text: "lots"}, ref)
	assert.Equal(t, 0.0, years)
	assert.Equal(t, OriginNone, origin)
}

func TestExtractIgnoresNonFiniteYears(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		years, origin := Extract(Source{Years: &v, Text: "3 years"}, time.Time{})
		assert.Equal(t, 3.0, years)
		assert.Equal(t, OriginText, origin)

		years, origin = Extract(Source{Years: &v, History: []Entry{{Years: v}}}, time.Time{})
		assert.Equal(t, 0.0, years)
		assert.Equal(t, OriginNone, origin)
	}

	inf := math.Inf(1)
	required, _ := Extract(Source{Years: &inf}, time.Time{})
	actual, _ := Extract(Source{Years: &inf}, time.Time{})
	res := Score(required, actual)
	assert.False(t, math.IsNaN(res.Score))
	assert.Equal(t, 100.0, res.Score)
}

func TestExtractIgnoresOpenEndedWithoutReference(t *testing.T) {
	t.Parallel()
	years, origin := Extract(Source{History: []Entry{{Start: "2020", End: "heute"}}}, time.Time{})
	assert.Equal(t, 0.0, years)
	assert.Equal(t, OriginNone, origin)
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		required float64
		actual   float64
		score    float64
		bonus    float64
	}{
		{name: "no requirement", required: 0, actual: 0, score: 100},
		{name: "overqualified is capped", required: 5, actual: 8, score: 100, bonus: 12},
		{name: "bonus is capped at twenty", required: 2, actual: 20, score: 100, bonus: 20},
		{name: "exact", required: 3, actual: 3, score: 100},
		{name: "under", required: 4, actual: 3, score: 75},
		{name: "under with rounding", required: 3, actual: 1, score: 33.33},
		{name: "negative actual", required: 3, actual: -2, score: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Score(tt.required, tt.actual)
			assert.InDelta(t, tt.score, res.Score, 1e-9)
			assert.InDelta(t, tt.bonus, res.Bonus, 1e-9)
		})
	}
}

func TestExtractZeroFieldFallsBack(t *testing.T) {
	t.Parallel()
	zero := 0.0

	years, origin := Extract(Source{Years: &zero, Text: "3 Jahre"}, time.Time{})
	assert.Equal(t, 3.0, years)
	assert.Equal(t, OriginText, origin)

	years, origin = Extract(Source{Years: &zero}, time.Time{})
	assert.Equal(t, 0.0, years)
	assert.Equal(t, OriginField, origin)
}
