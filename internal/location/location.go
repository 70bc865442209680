// Package location scores how close a person's location is to a position's.
package location

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/talent-match/internal/knowledge"
	"github.com/spigell/talent-match/internal/textnorm"
)

// Scores awarded by each rule.
const (
	ScoreBothRemote    = 100
	ScoreRemote        = 80
	ScoreExact         = 100
	ScorePostalCode    = 100
	ScorePostalPrefix  = 80
	ScoreContainsWord  = 95
	ScoreContains      = 90
	ScoreRegionCity    = 75
	ScoreRegionMention = 70
	ScoreHybrid        = 50
	ScoreDefault       = 30
)

// Reasons reported alongside the score.
const (
	ReasonBothRemote   = "both_remote"
	ReasonRemote       = "remote"
	ReasonExact        = "exact"
	ReasonPostalCode   = "postal_code"
	ReasonPostalPrefix = "postal_prefix"
	ReasonContains     = "contains"
	ReasonRegion       = "region"
	ReasonHybrid       = "hybrid"
	ReasonDefault      = "default"
)

const minContainedLength = 4

var (
	rePostalCode = regexp.MustCompile(`\b\d{5}\b`)
	reParts      = regexp.MustCompile(`[,/]`)
)

// Result explains a location score.
type Result struct {
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`
	PositionMatch string  `json:"position_match,omitempty"`
	EntityMatch   string  `json:"entity_match,omitempty"`
	Region        string  `json:"region,omitempty"`
	RemoteAllowed bool    `json:"remote_allowed"`
}

// Scorer resolves free-text locations against the region table.
type Scorer struct {
	index *knowledge.Index
}

// NewScorer returns a scorer backed by idx.
func NewScorer(idx *knowledge.Index) *Scorer {
	return &Scorer{index: idx}
}

// Score compares the position's location with the entity's. Every
// comma/slash separated part of one side is compared with every part of the
// other; the best pair wins.
func (s *Scorer) Score(position string, remoteAllowed bool, entity string) Result {
	posWords := textnorm.Words(position)
	entWords := textnorm.Words(entity)

	if remoteAllowed {
		_, posRemote := textnorm.ContainsAnyPhrase(posWords, s.index.RemoteKeywords())
		_, entRemote := textnorm.ContainsAnyPhrase(entWords, s.index.RemoteKeywords())
		switch {
		case posRemote && entRemote:
			return Result{Score: ScoreBothRemote, Reason: ReasonBothRemote, RemoteAllowed: true}
		case posRemote || entRemote:
			return Result{Score: ScoreRemote, Reason: ReasonRemote, RemoteAllowed: true}
		}
	}

	if p, e := textnorm.Fold(position), textnorm.Fold(entity); p != "" && p == e {
		return Result{Score: ScoreExact, Reason: ReasonExact, PositionMatch: p, EntityMatch: e, RemoteAllowed: remoteAllowed}
	}

	best := Result{}
	for _, p := range parts(position) {
		for _, e := range parts(entity) {
			if r := s.comparePair(p, e); r.Score > best.Score {
				best = r
			}
		}
	}

	if best.Score == 0 {
		best = Result{Score: ScoreDefault, Reason: ReasonDefault}
		_, posHybrid := textnorm.ContainsAnyPhrase(posWords, s.index.HybridKeywords())
		_, entHybrid := textnorm.ContainsAnyPhrase(entWords, s.index.HybridKeywords())
		if posHybrid || entHybrid {
			best = Result{Score: ScoreHybrid, Reason: ReasonHybrid}
		}
	}

	best.RemoteAllowed = remoteAllowed
	return best
}

// comparePair applies the rules in priority order and returns the first hit,
// or a zero Result.
func (s *Scorer) comparePair(p, e string) Result {
	if p == e {
		return Result{Score: ScoreExact, Reason: ReasonExact, PositionMatch: p, EntityMatch: e}
	}

	pc, ec := rePostalCode.FindString(p), rePostalCode.FindString(e)
	if pc != "" && ec != "" {
		if pc == ec {
			return Result{Score: ScorePostalCode, Reason: ReasonPostalCode, PositionMatch: p, EntityMatch: e}
		}
		if pc[:2] == ec[:2] {
			return Result{Score: ScorePostalPrefix, Reason: ReasonPostalPrefix, PositionMatch: p, EntityMatch: e}
		}
	}

	if score, ok := contains(p, e); ok {
		return Result{Score: score, Reason: ReasonContains, PositionMatch: p, EntityMatch: e}
	}

	pr, _, pExact := s.index.Region(p)
	er, _, eExact := s.index.Region(e)
	if pr != "" && pr == er {
		score := float64(ScoreRegionMention)
		if pExact && eExact {
			score = ScoreRegionCity
		}
		return Result{Score: score, Reason: ReasonRegion, PositionMatch: p, EntityMatch: e, Region: pr}
	}

	return Result{}
}

func contains(a, b string) (float64, bool) {
	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) < minContainedLength || !strings.Contains(longer, shorter) {
		return 0, false
	}
	if textnorm.ContainsPhrase(textnorm.Words(longer), shorter) {
		return ScoreContainsWord, true
	}
	return ScoreContains, true
}

func parts(location string) []string {
	raw := reParts.Split(location, -1)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if folded := textnorm.Fold(p); folded != "" {
			out = append(out, folded)
		}
	}
	return out
}
