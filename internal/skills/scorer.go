package skills

import (
	"math"

	"github.com/spigell/talent-match/internal/knowledge"
)

// EmptyRequirement decides what an empty required skill set scores.
type EmptyRequirement string

const (
	// EmptyRequirementZero scores an empty requirement as 0: nothing to match.
	EmptyRequirementZero EmptyRequirement = "zero"
	// EmptyRequirementNeutral scores an empty requirement as the neutral score:
	// no requirement means any candidate qualifies.
	EmptyRequirementNeutral EmptyRequirement = "neutral"
)

// Config tunes the skill-set scorer. A required skill counts as matched when
// its best weight reaches MatchedThreshold and as partially matched when it
// reaches PartialThreshold. Both bounds are inclusive: with the defaults a
// PARTIAL hit of exactly 0.7 is partially matched.
type Config struct {
	Weights          Weights          `mapstructure:",squash" json:"weights"`
	MatchedThreshold float64          `mapstructure:"matched-threshold" json:"matched_threshold" validate:"gte=0,lte=1"`
	PartialThreshold float64          `mapstructure:"partial-threshold" json:"partial_threshold" validate:"gte=0,lte=1,ltefield=MatchedThreshold"`
	EmptyRequirement EmptyRequirement `mapstructure:"empty-requirement" json:"empty_requirement" validate:"omitempty,oneof=zero neutral"`
	NeutralScore     float64          `mapstructure:"neutral-score" json:"neutral_score" validate:"gte=0,lte=100"`
}

// DefaultConfig returns the standard scorer configuration.
func DefaultConfig() Config {
	return Config{
		Weights:          DefaultWeights(),
		MatchedThreshold: 0.85,
		PartialThreshold: 0.7,
		EmptyRequirement: EmptyRequirementZero,
		NeutralScore:     50,
	}
}

// Match is the best candidate skill found for one required skill.
type Match struct {
	Required  string  `json:"required"`
	Candidate string  `json:"candidate,omitempty"`
	Class     Class   `json:"class"`
	Weight    float64 `json:"weight"`
}

// Result is the outcome of scoring a skill set.
type Result struct {
	Score            float64  `json:"score"`
	Matched          []string `json:"matched"`
	PartiallyMatched []string `json:"partially_matched"`
	Missing          []string `json:"missing"`
	Best             []Match  `json:"best,omitempty"`
	NoRequirement    bool     `json:"no_requirement,omitempty"`
}

// Scorer compares required skill sets against candidate skill sets.
type Scorer struct {
	index *knowledge.Index
	cfg   Config
}

// NewScorer returns a scorer backed by idx.
func NewScorer(idx *knowledge.Index, cfg Config) *Scorer {
	if cfg.EmptyRequirement == "" {
		cfg.EmptyRequirement = EmptyRequirementZero
	}
	return &Scorer{index: idx, cfg: cfg}
}

// Score rates candidate against required on a 0-100 scale.
func (s *Scorer) Score(required, candidate []string) Result {
	required = unique(required)
	res := Result{
		Matched:          []string{},
		PartiallyMatched: []string{},
		Missing:          []string{},
	}

	if len(required) == 0 {
		res.NoRequirement = true
		if s.cfg.EmptyRequirement == EmptyRequirementNeutral {
			res.Score = s.cfg.NeutralScore
		}
		return res
	}

	total := 0.0
	for _, req := range required {
		best := s.bestMatch(req, candidate)
		res.Best = append(res.Best, best)
		total += best.Weight

		switch {
		case best.Weight > 0 && best.Weight >= s.cfg.MatchedThreshold:
			res.Matched = append(res.Matched, req)
		case best.Weight > 0 && best.Weight >= s.cfg.PartialThreshold:
			res.PartiallyMatched = append(res.PartiallyMatched, req)
		default:
			res.Missing = append(res.Missing, req)
		}
	}

	res.Score = round2(total / float64(len(required)) * 100)
	return res
}

func (s *Scorer) bestMatch(required string, candidate []string) Match {
	best := Match{Required: required, Class: ClassNone}
	for _, c := range candidate {
		class := Similarity(s.index, required, c)
		if w := s.cfg.Weights.Of(class); w > best.Weight {
			best = Match{Required: required, Candidate: c, Class: class, Weight: w}
		}
		if class == ClassExact {
			break
		}
	}
	return best
}

func unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
