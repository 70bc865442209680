package skills

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/talent-match/internal/knowledge"
)

// Class is the kind of similarity found between two skill tokens.
type Class int

const (
	ClassNone Class = iota
	ClassFuzzy
	ClassCategory
	ClassPartial
	ClassStem
	ClassSynonym
	ClassExact
)

var classNames = map[Class]string{
	ClassNone:     "none",
	ClassFuzzy:    "fuzzy",
	ClassCategory: "category",
	ClassPartial:  "partial",
	ClassStem:     "stem",
	ClassSynonym:  "synonym",
	ClassExact:    "exact",
}

func (c Class) String() string { return classNames[c] }

// MarshalText renders the class name in JSON output.
func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Weights maps every similarity class to its numeric value.
type Weights struct {
	Exact    float64 `mapstructure:"exact" json:"exact" validate:"gte=0,lte=1"`
	Partial  float64 `mapstructure:"partial" json:"partial" validate:"gte=0,lte=1"`
	Synonym  float64 `mapstructure:"synonym" json:"synonym" validate:"gte=0,lte=1"`
	Stem     float64 `mapstructure:"stem" json:"stem" validate:"gte=0,lte=1"`
	Category float64 `mapstructure:"category" json:"category" validate:"gte=0,lte=1"`
	Fuzzy    float64 `mapstructure:"fuzzy" json:"fuzzy" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard similarity weights.
func DefaultWeights() Weights {
	return Weights{
		Exact:    1.0,
		Partial:  0.7,
		Synonym:  0.9,
		Stem:     0.8,
		Category: 0.6,
		Fuzzy:    0.5,
	}
}

// Of returns the weight of class c.
func (w Weights) Of(c Class) float64 {
	switch c {
	case ClassExact:
		return w.Exact
	case ClassPartial:
		return w.Partial
	case ClassSynonym:
		return w.Synonym
	case ClassStem:
		return w.Stem
	case ClassCategory:
		return w.Category
	case ClassFuzzy:
		return w.Fuzzy
	default:
		return 0
	}
}

const (
	minStemLength  = 4
	minFuzzyLength = 5
)

// stemSuffixes are tried longest first.
var stemSuffixes = []string{
	"ations", "ation", "ments", "ment", "ings", "ing", "ions", "ion",
	"ers", "ies", "ity", "ive", "er", "ed", "es", "al", "s",
}

// Similarity classifies two skill tokens. Checks run in a fixed order and the
// first hit wins: exact, substring, synonym, common stem, shared category,
// single-edit typo.
func Similarity(idx *knowledge.Index, a, b string) Class {
	if a == "" || b == "" {
		return ClassNone
	}
	if a == b {
		return ClassExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return ClassPartial
	}
	if idx != nil && idx.Synonyms(a, b) {
		return ClassSynonym
	}
	if commonStem(a, b) {
		return ClassStem
	}
	if idx != nil {
		if _, ok := idx.SameCategory(a, b); ok {
			return ClassCategory
		}
	}
	if utf8.RuneCountInString(a) >= minFuzzyLength && utf8.RuneCountInString(b) >= minFuzzyLength && levenshtein(a, b) <= 1 {
		return ClassFuzzy
	}
	return ClassNone
}

func commonStem(a, b string) bool {
	sa, sb := stem(a), stem(b)
	if len(sa) > len(sb) {
		sa, sb = sb, sa
	}
	return utf8.RuneCountInString(sa) >= minStemLength && strings.HasPrefix(sb, sa)
}

func stem(token string) string {
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(token, suffix) && len(token)-len(suffix) >= 3 {
			return strings.TrimSuffix(token, suffix)
		}
	}
	return token
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
