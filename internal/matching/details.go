package matching

import (
	"go.uber.org/zap/zapcore"

	"github.com/spigell/talent-match/internal/education"
	"github.com/spigell/talent-match/internal/entity"
	"github.com/spigell/talent-match/internal/experience"
	"github.com/spigell/talent-match/internal/location"
	"github.com/spigell/talent-match/internal/skills"
	"github.com/spigell/talent-match/internal/workmodel"
)

// Factor names as they appear in reports and logs.
const (
	FactorSkills     = "skills"
	FactorLocation   = "location"
	FactorExperience = "experience"
	FactorEducation  = "education"
	FactorWorkModel  = "work_model"
)

// Details is the explained outcome of scoring one person against one
// position. It is built fresh per call and owned by the caller.
type Details struct {
	EntityID      string      `json:"entity_id"`
	EntityKind    entity.Kind `json:"entity_kind"`
	EntityName    string      `json:"entity_name,omitempty"`
	AppliedTo     string      `json:"applied_to,omitempty"`
	PositionID    string      `json:"position_id"`
	PositionKind  entity.Kind `json:"position_kind"`
	PositionTitle string      `json:"position_title,omitempty"`

	Overall float64 `json:"overall"`
	Weights Weights `json:"weights"`
	// Unweighted is set when every weight was zero and Overall is the plain
	// mean of the five sub-scores.
	Unweighted bool `json:"unweighted,omitempty"`

	Skills     skills.Result     `json:"skills"`
	Location   location.Result   `json:"location"`
	Experience experience.Result `json:"experience"`
	Education  education.Result  `json:"education"`
	WorkModel  workmodel.Result  `json:"work_model"`

	Notes []string `json:"notes,omitempty"`
}

// Key identifies the scored pair.
func (d Details) Key() string {
	return PairKey(d.EntityID, d.PositionID)
}

// PairKey joins an entity and a position ID.
func PairKey(entityID, positionID string) string {
	return entityID + "@" + positionID
}

// Factor is one weighted sub-score.
type Factor struct {
	Name   string
	Score  float64
	Weight float64
}

// Factors lists the five sub-scores in a fixed order.
func (d Details) Factors() []Factor {
	return []Factor{
		{Name: FactorSkills, Score: d.Skills.Score, Weight: d.Weights.Skills},
		{Name: FactorLocation, Score: d.Location.Score, Weight: d.Weights.Location},
		{Name: FactorExperience, Score: d.Experience.Score, Weight: d.Weights.Experience},
		{Name: FactorEducation, Score: d.Education.Score, Weight: d.Weights.Education},
		{Name: FactorWorkModel, Score: d.WorkModel.Score, Weight: d.Weights.WorkModel},
	}
}

// MarshalLogObject lets the sub-scores be logged with zap.Object.
func (d Details) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, f := range d.Factors() {
		enc.AddFloat64(f.Name, f.Score)
	}
	return nil
}
