// Package workmodel classifies work arrangements and scores how well a
// preference fits an offer.
package workmodel

import (
	"github.com/spigell/talent-match/internal/knowledge"
	"github.com/spigell/talent-match/internal/textnorm"
)

// Reasons reported in Result.
const (
	ReasonExact        = "exact"
	ReasonFlexible     = "flexible"
	ReasonCompatible   = "compatible"
	ReasonIncompatible = "incompatible"
)

// Default is assumed when neither flags nor text name a model.
const Default = knowledge.ModelFullTime

var compatible = map[[2]string]bool{
	{knowledge.ModelPartTime, knowledge.ModelFullTime}: true,
	{knowledge.ModelFullTime, knowledge.ModelPartTime}: true,
	{knowledge.ModelProject, knowledge.ModelPartTime}:  true,
	{knowledge.ModelPartTime, knowledge.ModelProject}:  true,
}

// Flags are boolean work-model markers some records carry instead of text.
type Flags struct {
	FullTime       bool
	PartTime       bool
	Project        bool
	Internship     bool
	Apprenticeship bool
}

func (f Flags) models() []string {
	var out []string
	if f.FullTime {
		out = append(out, knowledge.ModelFullTime)
	}
	if f.PartTime {
		out = append(out, knowledge.ModelPartTime)
	}
	if f.Project {
		out = append(out, knowledge.ModelProject)
	}
	if f.Internship {
		out = append(out, knowledge.ModelInternship)
	}
	if f.Apprenticeship {
		out = append(out, knowledge.ModelApprenticeship)
	}
	return out
}

type Scorer struct {
	idx *knowledge.Index
}

func NewScorer(idx *knowledge.Index) *Scorer {
	return &Scorer{idx: idx}
}

// Classify resolves flags and text to one model. Several flags, or a text
// naming both part-time and full-time, mean flexible. Explicit working hours
// win over project wording, so "Full-time, permanent contract" is full-time.
// defaulted reports that nothing was recognised and Default was used.
func (s *Scorer) Classify(text string, flags Flags) (model string, defaulted bool) {
	switch set := flags.models(); len(set) {
	case 0:
	case 1:
		return set[0], false
	default:
		return knowledge.ModelFlexible, false
	}

	words := textnorm.Words(text)
	found := map[string]bool{}
	first := ""
	for _, m := range knowledge.WorkModels {
		if _, ok := textnorm.ContainsAnyPhrase(words, s.idx.WorkModelKeywords(m)); ok {
			found[m] = true
			if first == "" {
				first = m
			}
		}
	}

	switch {
	case first == "":
		return Default, true
	case found[knowledge.ModelPartTime] && found[knowledge.ModelFullTime]:
		return knowledge.ModelFlexible, false
	case first == knowledge.ModelProject && found[knowledge.ModelFullTime]:
		return knowledge.ModelFullTime, false
	case first == knowledge.ModelProject && found[knowledge.ModelPartTime]:
		return knowledge.ModelPartTime, false
	default:
		return first, false
	}
}

type Result struct {
	Score     float64 `json:"score"`
	Required  string  `json:"required_model"`
	Preferred string  `json:"preferred_model"`
	Reason    string  `json:"reason"`
}

// Score rates a preferred model against the model a position offers.
func Score(required, preferred string) Result {
	res := Result{Required: required, Preferred: preferred}
	switch {
	case required == preferred:
		res.Score, res.Reason = 100, ReasonExact
	case preferred == knowledge.ModelFlexible, required == knowledge.ModelFlexible:
		res.Score, res.Reason = 100, ReasonFlexible
	case compatible[[2]string{required, preferred}]:
		res.Score, res.Reason = 50, ReasonCompatible
	default:
		res.Reason = ReasonIncompatible
	}
	return res
}
