// Package experience extracts years of experience and scores them against a
// required amount.
package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxBonus = 20

// Where the number of years came from.
const (
	OriginField   = "field"
	OriginHistory = "history"
	OriginText    = "text"
	OriginNone    = "none"
)

var (
	unit    = `(?:years?|yrs?|jahre?n?|yoe)\b`
	number  = `(\d+(?:[.,]\d+)?)`
	reRange = regexp.MustCompile(`(?i)` + number + `\s*(?:-|–|bis|to)\s*` + number + `\s*\+?\s*` + unit)
	reYears = regexp.MustCompile(`(?i)` + number + `\s*\+?\s*` + unit)

	openEnded = map[string]bool{"": true, "present": true, "now": true, "current": true, "today": true, "heute": true, "aktuell": true, "bis heute": true}
	dateForms = []string{"2006-01-02", "2006-01", "01/2006", "01.2006", "2006"}
)

// Entry is one item of a structured work history.
type Entry struct {
	Title string  `json:"title,omitempty" mapstructure:"title"`
	Years float64 `json:"years,omitempty" mapstructure:"years"`
	Start string  `json:"start,omitempty" mapstructure:"start"`
	End   string  `json:"end,omitempty" mapstructure:"end"`
}

// Source is every representation of experience a record may carry.
// A positive Years wins over History, History wins over Text. A zero Years
// is used only when nothing else is known.
type Source struct {
	Years   *float64
	Text    string
	History []Entry
}

// Extract returns the number of years described by src. Open-ended history
// entries run until ref; when ref is zero they are ignored.
func Extract(src Source, ref time.Time) (float64, string) {
	field := src.Years != nil && finite(*src.Years) && *src.Years >= 0
	if field && *src.Years > 0 {
		return *src.Years, OriginField
	}
	if years := historyYears(src.History, ref); years > 0 {
		return years, OriginHistory
	}
	if years, ok := FromText(src.Text); ok {
		return years, OriginText
	}
	if field {
		return 0, OriginField
	}
	return 0, OriginNone
}

// FromText finds "N years" or "N-M years" (midpoint) in free text.
func FromText(text string) (float64, bool) {
	if m := reRange.FindStringSubmatch(text); m != nil {
		low, errLow := parseNumber(m[1])
		high, errHigh := parseNumber(m[2])
		if errLow == nil && errHigh == nil {
			return (low + high) / 2, true
		}
	}
	if m := reYears.FindStringSubmatch(text); m != nil {
		if years, err := parseNumber(m[1]); err == nil {
			return years, true
		}
	}
	return 0, false
}

// Result explains an experience score.
type Result struct {
	Score          float64 `json:"score"`
	RequiredYears  float64 `json:"required_years"`
	ActualYears    float64 `json:"actual_years"`
	Bonus          float64 `json:"overqualification_bonus"`
	RequiredOrigin string  `json:"required_origin"`
	ActualOrigin   string  `json:"actual_origin"`
}

// Score rates actual against required years on a 0-100 scale.
func Score(required, actual float64) Result {
	res := Result{RequiredYears: required, ActualYears: actual}
	if actual < 0 {
		actual = 0
	}

	switch {
	case required <= 0:
		res.Score = 100
	case actual >= required:
		res.Bonus = round2(math.Min(maxBonus, (actual-required)/required*maxBonus))
		res.Score = math.Min(100, 100+res.Bonus)
	default:
		res.Score = round2(actual / required * 100)
	}
	return res
}

func historyYears(history []Entry, ref time.Time) float64 {
	total := 0.0
	for _, e := range history {
		if e.Years > 0 && finite(e.Years) {
			total += e.Years
			continue
		}
		start, ok := parseDate(e.Start)
		if !ok {
			continue
		}
		end, ok := parseDate(e.End)
		if !ok {
			if !openEnded[strings.ToLower(strings.TrimSpace(e.End))] || ref.IsZero() {
				continue
			}
			end = ref
		}
		months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
		if months > 0 {
			total += float64(months) / 12
		}
	}
	return round2(total)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateForms {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
