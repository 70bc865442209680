package entity

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/spigell/talent-match/internal/experience"
)

const maxExperienceYears = 70

var rePostalCode = regexp.MustCompile(`^\d{4,5}$`)

// looseYears reads an experience_years value of any shape. A string that is
// not a number is handed back as experience text so phrases like "5 Jahre"
// can still be read; negative, infinite or implausibly large values are
// dropped. note is empty when the value was used as is.
func looseYears(v any) (years *float64, text, note string) {
	var f float64
	switch val := v.(type) {
	case nil:
		return nil, "", ""
	case *float64:
		if val == nil {
			return nil, "", ""
		}
		f = *val
	case bool:
		return nil, "", fmt.Sprintf("experience_years %v is not a number, ignored", val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, "", ""
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return nil, s, fmt.Sprintf("experience_years %q is not a number, read as experience text", s)
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(val)
		if err != nil {
			return nil, "", fmt.Sprintf("experience_years %v is not a number, ignored", val)
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > maxExperienceYears {
		return nil, "", fmt.Sprintf("experience_years %v out of range 0-%d, ignored", f, maxExperienceYears)
	}
	return &f, "", ""
}

// loosePostal renders a postal code of any scalar type. Values that are not
// four or five digits stay part of the location text and produce a note.
func loosePostal(v any) (postal, note string) {
	if v == nil {
		return "", ""
	}
	postal = strings.TrimSpace(cast.ToString(v))
	if postal == "" {
		postal = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	if postal == "" || rePostalCode.MatchString(postal) {
		return postal, ""
	}
	return postal, fmt.Sprintf("postal code %q is not numeric, kept as location text", postal)
}

// experienceSource combines the loose years field with the free text. Text
// recovered from a non-numeric years field comes first.
func experienceSource(years any, text string, history []experience.Entry) (experience.Source, []string) {
	y, yearsText, note := looseYears(years)
	src := experience.Source{
		Years:   y,
		Text:    strings.Join(nonEmpty(yearsText, text), "; "),
		History: history,
	}
	return src, nonEmpty(note)
}

func looseLocation(postal any, location string, remote bool) (string, []string) {
	code, note := loosePostal(postal)
	return joinLocation(code, location, remote), nonEmpty(note)
}
