// Package matching combines the skill, location, experience, education and
// work-model scorers into one weighted, explainable score.
package matching

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/education"
	"github.com/spigell/talent-match/internal/entity"
	"github.com/spigell/talent-match/internal/experience"
	"github.com/spigell/talent-match/internal/knowledge"
	"github.com/spigell/talent-match/internal/location"
	"github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/skills"
	"github.com/spigell/talent-match/internal/utils"
	"github.com/spigell/talent-match/internal/workmodel"
)

const logTextLimit = 80

type Config struct {
	Weights Weights       `mapstructure:"weights" json:"weights"`
	Skills  skills.Config `mapstructure:"skills" json:"skills"`
	Workers int           `mapstructure:"workers" json:"workers" validate:"gte=0"`
	// ReferenceTime closes open-ended work history entries. It is fixed per
	// engine so repeated calls give identical results; zero ignores them.
	ReferenceTime time.Time `mapstructure:"-" json:"-"`
}

func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		Skills:  skills.DefaultConfig(),
		Workers: runtime.NumCPU(),
	}
}

type Option func(*Engine)

// WithLogger sets the engine logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTables replaces the compiled-in knowledge base.
func WithTables(t knowledge.Tables) Option {
	return func(e *Engine) {
		e.tables = t
	}
}

// Engine is immutable after New and safe for concurrent use.
type Engine struct {
	cfg        Config
	weights    Weights
	unweighted bool
	tables     knowledge.Tables
	log        *zap.Logger

	skills    *skills.Scorer
	location  *location.Scorer
	education *education.Scorer
	workModel *workmodel.Scorer
}

// New validates cfg and builds the scorers. Negative weights are rejected
// with ErrNegativeWeight; all-zero weights are accepted and make Overall the
// unweighted mean.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Weights.Check(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	e := &Engine{
		cfg:    cfg,
		tables: knowledge.Default(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	idx := knowledge.NewIndex(e.tables)
	e.skills = skills.NewScorer(idx, cfg.Skills)
	e.location = location.NewScorer(idx)
	e.education = education.NewScorer(idx)
	e.workModel = workmodel.NewScorer(idx)

	e.weights = cfg.Weights.Normalize()
	if cfg.Weights.Sum() == 0 {
		e.unweighted = true
		e.log.Warn("all weights are zero, overall score is the unweighted mean")
	}
	return e, nil
}

// Weights returns the normalized weights in use.
func (e *Engine) Weights() Weights { return e.weights }

// Calculate scores one person against one position. It never fails:
// malformed fields degrade to documented defaults recorded in Notes.
func (e *Engine) Calculate(p entity.Person, o entity.Opening) Details {
	prof := p.Profile()
	req := o.Requirement()

	d := Details{
		EntityID:      prof.ID,
		EntityKind:    prof.Kind,
		EntityName:    prof.Name,
		AppliedTo:     prof.AppliedTo,
		PositionID:    req.ID,
		PositionKind:  req.Kind,
		PositionTitle: req.Title,
		Weights:       e.weights,
		Unweighted:    e.unweighted,
	}
	note := func(format string, args ...any) {
		d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	}

	d.Notes = append(d.Notes, req.Notes...)
	d.Notes = append(d.Notes, prof.Notes...)

	required, degraded := skills.Normalize(req.Skills)
	if degraded {
		note("required skills are not valid JSON, used as one free-text skill")
	}
	offered, degraded := skills.Normalize(prof.Skills)
	if degraded {
		note("skills are not valid JSON, used as one free-text skill")
	}
	d.Skills = e.skills.Score(required, offered)
	if d.Skills.NoRequirement {
		note("position lists no required skills")
	}

	d.Location = e.location.Score(req.Location, req.RemoteAllowed, prof.Location)

	reqYears, reqOrigin := experience.Extract(req.Experience, e.cfg.ReferenceTime)
	actYears, actOrigin := experience.Extract(prof.Experience, e.cfg.ReferenceTime)
	d.Experience = experience.Score(reqYears, actYears)
	d.Experience.RequiredOrigin = reqOrigin
	d.Experience.ActualOrigin = actOrigin
	if actOrigin == experience.OriginNone && strings.TrimSpace(prof.Experience.Text) != "" {
		note("no years found in experience text %q, assumed 0", utils.TruncateForLog(prof.Experience.Text, logTextLimit))
	}

	d.Education = e.education.Score(req.Education, prof.Education)
	if d.Education.Unrecognised {
		note("education requirement %q not recognised, no constraint applied", utils.TruncateForLog(req.Education, logTextLimit))
	}

	reqModel, reqDefaulted := e.workModel.Classify(req.WorkModel, req.WorkFlags)
	prefModel, prefDefaulted := e.workModel.Classify(prof.WorkModel, prof.WorkFlags)
	d.WorkModel = workmodel.Score(reqModel, prefModel)
	if reqDefaulted {
		note("position work model not recognised, assumed %s", workmodel.Default)
	}
	if prefDefaulted {
		note("preferred work model not recognised, assumed %s", workmodel.Default)
	}

	d.Overall = overall(d.Factors(), e.unweighted)

	e.log.Debug("pair scored", append(
		logger.MatchFields(d.EntityID, d.PositionID, d.Overall),
		zap.Object("factors", d),
		zap.Strings("notes", d.Notes),
	)...)
	return d
}

func overall(factors []Factor, unweighted bool) float64 {
	total := 0.0
	for _, f := range factors {
		if unweighted {
			total += f.Score / float64(len(factors))
			continue
		}
		total += f.Score * f.Weight
	}
	if math.IsNaN(total) {
		return 0
	}
	return math.Max(0, math.Min(100, math.Round(total*100)/100))
}
