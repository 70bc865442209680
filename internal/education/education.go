// Package education maps free-text degree descriptions onto an ordinal scale.
package education

import (
	"github.com/spigell/talent-match/internal/knowledge"
	"github.com/spigell/talent-match/internal/textnorm"
)

// LevelNone is reported when no keyword is recognised.
const LevelNone = "none"

// penalties by level gap, the last entry is the floor.
var penalties = []float64{100, 70, 50, 35, 30}

// Rank returns the ordinal position of level: none is 0, professor is 5.
func Rank(level string) int {
	for i, l := range knowledge.EducationLevels {
		if l == level {
			return i + 1
		}
	}
	return 0
}

type Scorer struct {
	idx *knowledge.Index
}

func NewScorer(idx *knowledge.Index) *Scorer {
	return &Scorer{idx: idx}
}

// Classify returns the highest level mentioned in text together with the
// keyword that matched.
func (s *Scorer) Classify(text string) (level, keyword string) {
	words := textnorm.Words(text)
	if len(words) == 0 {
		return LevelNone, ""
	}
	for i := len(knowledge.EducationLevels) - 1; i >= 0; i-- {
		l := knowledge.EducationLevels[i]
		if kw, ok := textnorm.ContainsAnyPhrase(words, s.idx.EducationKeywords(l)); ok {
			return l, kw
		}
	}
	return LevelNone, ""
}

// ClassifyMinimum returns the lowest level mentioned in text. Requirements
// such as "Bachelor oder Master" are met by the lower of the two.
func (s *Scorer) ClassifyMinimum(text string) (level, keyword string) {
	words := textnorm.Words(text)
	for _, l := range knowledge.EducationLevels {
		if kw, ok := textnorm.ContainsAnyPhrase(words, s.idx.EducationKeywords(l)); ok {
			return l, kw
		}
	}
	return LevelNone, ""
}

type Result struct {
	Score    float64 `json:"score"`
	Required string  `json:"required_level"`
	Actual   string  `json:"actual_level"`
	Gap      int     `json:"gap"`
	// Unrecognised is set when the requirement text was not empty but
	// matched no level.
	Unrecognised bool `json:"requirement_unrecognised,omitempty"`
}

// Score compares the required education text against the actual one. The
// requirement is the lowest level it names, the actual level the highest.
// A missing or unrecognised requirement imposes no constraint.
func (s *Scorer) Score(required, actual string) Result {
	reqLevel, _ := s.ClassifyMinimum(required)
	actLevel, _ := s.Classify(actual)

	res := Result{Required: reqLevel, Actual: actLevel}
	if reqLevel == LevelNone {
		res.Unrecognised = len(textnorm.Words(required)) > 0
		res.Score = 100
		return res
	}

	res.Gap = Rank(reqLevel) - Rank(actLevel)
	res.Score = Penalty(res.Gap)
	return res
}

// Penalty converts a level gap into a score. Non-positive gaps score 100.
func Penalty(gap int) float64 {
	if gap <= 0 {
		return 100
	}
	if gap >= len(penalties) {
		return penalties[len(penalties)-1]
	}
	return penalties[gap]
}
