package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talent-match/internal/entity"
	"github.com/spigell/talent-match/internal/experience"
	"github.com/spigell/talent-match/internal/logger"
)

func years(v float64) *float64 { return &v }

func newEngine(t *testing.T, cfg Config, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}

func perfectPair() (entity.Candidate, entity.Job) {
	return entity.Candidate{
			ID:        "c-1",
			Skills:    "Go",
			Location:  "Berlin",
			WorkModel: "Vollzeit",
		}, entity.Job{
			ID:             "j-1",
			Skills:         []any{"go"},
			Location:       "Berlin",
			EmploymentType: "Vollzeit",
		}
}

func TestWeightsNormalize(t *testing.T) {
	t.Parallel()

	tests := []Weights{
		DefaultWeights(),
		{Skills: 5, Location: 1, Experience: 2, Education: 1, WorkModel: 1},
		{Skills: 1},
		{Skills: 1e-9, Location: 3e-9, Experience: 0, Education: 0, WorkModel: 7e-9},
		{Skills: 1e6, Location: 2e6, Experience: 3, Education: 4, WorkModel: 5},
	}

	for _, w := range tests {
		assert.InDelta(t, 1.0, w.Normalize().Sum(), 1e-9, "weights %+v", w)
	}

	assert.Equal(t, Weights{}, Weights{}.Normalize())
}

func TestNewRejectsNegativeWeight(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Weights.Location = -0.1
	_, err := New(cfg)
	assert.True(t, errors.Is(err, ErrNegativeWeight))
}

func TestCalculateAllFactorsPerfect(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	c, j := perfectPair()
	d := e.Calculate(c, j)

	for _, f := range d.Factors() {
		assert.Equal(t, 100.0, f.Score, f.Name)
	}
	assert.Equal(t, 100.0, d.Overall)
	assert.Equal(t, "c-1", d.EntityID)
	assert.Equal(t, "j-1", d.PositionID)
	assert.Equal(t, entity.KindCandidate, d.EntityKind)
	assert.Equal(t, entity.KindJob, d.PositionKind)
}

func TestCalculateSkillGap(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	d := e.Calculate(
		entity.Candidate{ID: "c-1", Skills: []any{"React", "TypeScript"}},
		entity.Job{ID: "j-1", Skills: []any{"react", "node"}},
	)

	assert.Equal(t, 50.0, d.Skills.Score)
	assert.Equal(t, []string{"react"}, d.Skills.Matched)
	assert.Equal(t, []string{"node"}, d.Skills.Missing)
}

func TestCalculateOverqualified(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	d := e.Calculate(
		entity.Candidate{ID: "c-1", ExperienceYears: years(8)},
		entity.Job{ID: "j-1", ExperienceYears: years(5)},
	)

	assert.Equal(t, 100.0, d.Experience.Score)
	assert.Equal(t, 12.0, d.Experience.Bonus)
	assert.Equal(t, experience.OriginField, d.Experience.ActualOrigin)
}

func TestCalculateUsesReferenceTimeForHistory(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ReferenceTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(t, cfg)

	c := entity.Candidate{ID: "c-1", History: []experience.Entry{{Start: "2023-01", End: "heute"}}}
	d := e.Calculate(c, entity.Job{ID: "j-1", Experience: "4 years"})

	assert.Equal(t, 2.0, d.Experience.ActualYears)
	assert.Equal(t, 4.0, d.Experience.RequiredYears)
	assert.Equal(t, 50.0, d.Experience.Score)
	assert.Equal(t, experience.OriginHistory, d.Experience.ActualOrigin)
}

func TestCalculateZeroWeightsFallBackToMean(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	cfg := DefaultConfig()
	cfg.Weights = Weights{}
	e := newEngine(t, cfg, WithLogger(zap.New(core)))

	c, j := perfectPair()
	c.Skills = []any{"React", "TypeScript"}
	j.Skills = "react, node"
	d := e.Calculate(c, j)

	assert.True(t, d.Unweighted)
	assert.Equal(t, 90.0, d.Overall)
	assert.Equal(t, 1, observed.Len())
}

func TestCalculateDegradesOnMalformedInput(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	people := []entity.Person{
		entity.Candidate{},
		entity.Candidate{Skills: `[{"name": "go"`, Experience: "lots", WorkModel: "???"},
		entity.TalentPoolSnapshot{Skills: 42, Summary: "\x00"},
	}
	openings := []entity.Opening{
		entity.Job{},
		entity.Job{Skills: `["react", `, Education: "gute Deutschkenntnisse", Location: "///"},
		entity.CustomerRequirement{Skills: map[string]any{"x": 1}, ExperienceYears: years(0)},
	}

	for _, p := range people {
		for _, o := range openings {
			d := e.Calculate(p, o)
			assert.GreaterOrEqual(t, d.Overall, 0.0)
			assert.LessOrEqual(t, d.Overall, 100.0)
		}
	}

	d := e.Calculate(people[1], openings[1])
	assert.Contains(t, d.Notes, "required skills are not valid JSON, used as one free-text skill")
	assert.Contains(t, d.Notes, "skills are not valid JSON, used as one free-text skill")
	assert.Contains(t, d.Notes, `education requirement "gute Deutschkenntnisse" not recognised, no constraint applied`)
	assert.Contains(t, d.Notes, `no years found in experience text "lots", assumed 0`)
}

func TestCalculateScoresDirtyRecords(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	doc := entity.DecodeAll([]map[string]any{
		{"kind": "candidate", "id": "c-1", "experience_years": "5 Jahre", "postal_code": "D-10115", "location": "Berlin"},
		{"kind": "job", "id": "j-1", "experience_years": 80, "experience": "4 years", "location": "10117 Berlin"},
	})
	require.Empty(t, doc.Skipped)
	require.Len(t, doc.People, 1)
	require.Len(t, doc.Openings, 1)

	d := e.Calculate(doc.People[0], doc.Openings[0])
	assert.Equal(t, 5.0, d.Experience.ActualYears)
	assert.Equal(t, 4.0, d.Experience.RequiredYears)
	assert.Equal(t, 100.0, d.Experience.Score)
	assert.Equal(t, 80.0, d.Location.Score)
	assert.Equal(t, []string{
		"experience_years 80 out of range 0-70, ignored",
		`postal code "D-10115" is not numeric, kept as location text`,
		`experience_years "5 Jahre" is not a number, read as experience text`,
	}, d.Notes[:3])
}

func TestCalculateIsDeterministic(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	c := entity.Candidate{
		ID:         "c-1",
		Skills:     `[{"name":"Kubernetes"},{"name":"golang"}]`,
		Location:   "Potsdam",
		Experience: "3-5 years",
		Education:  "Bachelor",
		PartTime:   true,
	}
	j := entity.Job{
		ID:             "j-1",
		Skills:         "k8s, go, terraform",
		Location:       "Berlin",
		Experience:     "5+ years",
		Education:      "Master",
		EmploymentType: "Vollzeit",
	}

	first := e.Calculate(c, j)
	for range 5 {
		assert.Equal(t, first, e.Calculate(c, j))
	}
}

func TestCalculateLogsAtDebug(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	e := newEngine(t, DefaultConfig(), WithLogger(zap.New(core)))

	c, j := perfectPair()
	e.Calculate(c, j)

	entries := observed.FilterMessage("pair scored").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "c-1", ctx[logger.FieldEntityID])
	assert.Equal(t, 100.0, ctx[logger.FieldOverall])
}

func TestBatchSortsByOverall(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Workers = 2
	e := newEngine(t, cfg)

	people := []entity.Person{
		entity.Candidate{ID: "weak", Skills: "excel", Location: "Hamburg"},
		entity.Candidate{ID: "strong", Skills: "go, postgresql", Location: "Berlin", WorkModel: "Vollzeit"},
		entity.Candidate{ID: "weak-twin", Skills: "excel", Location: "Hamburg"},
	}
	openings := []entity.Opening{
		entity.Job{ID: "j-1", Skills: "go, postgresql", Location: "Berlin", EmploymentType: "Vollzeit"},
	}

	results, err := e.Batch(context.Background(), people, openings)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "strong", results[0].EntityID)
	assert.Equal(t, "weak", results[1].EntityID)
	assert.Equal(t, "weak-twin", results[2].EntityID)
	assert.Equal(t, results[1].Overall, results[2].Overall)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Overall, results[i].Overall)
	}
}

func TestBatchCoversEveryPair(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	people := []entity.Person{entity.Candidate{ID: "a"}, entity.Candidate{ID: "b"}}
	openings := []entity.Opening{entity.Job{ID: "x"}, entity.Job{ID: "y"}, entity.Job{ID: "z"}}

	results, err := e.Batch(context.Background(), people, openings)
	require.NoError(t, err)

	keys := make([]string, 0, len(results))
	for _, d := range results {
		keys = append(keys, d.Key())
	}
	assert.ElementsMatch(t, []string{"a@x", "a@y", "a@z", "b@x", "b@y", "b@z"}, keys)
}

func TestBatchHonoursCancellation(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Batch(ctx, []entity.Person{entity.Candidate{}}, []entity.Opening{entity.Job{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankHelpers(t *testing.T) {
	t.Parallel()
	e := newEngine(t, DefaultConfig())

	job := entity.Job{ID: "j-1", Skills: "sap"}
	ranked, err := e.RankPeople(context.Background(), job, []entity.Person{
		entity.Candidate{ID: "c-1", Skills: "excel"},
		entity.Candidate{ID: "c-2", Skills: "sap"},
	})
	require.NoError(t, err)
	assert.Equal(t, "c-2", ranked[0].EntityID)

	ranked, err = e.RankPositions(context.Background(), entity.Candidate{ID: "c-1", Skills: "sap"}, []entity.Opening{
		entity.Job{ID: "j-1", Skills: "java"},
		entity.Job{ID: "j-2", Skills: "sap"},
	})
	require.NoError(t, err)
	assert.Equal(t, "j-2", ranked[0].PositionID)
}
