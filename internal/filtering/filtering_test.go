package filtering

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talent-match/internal/matching"
)

func ranking() *matching.Ranking {
	d := func(entity, position string, overall float64) matching.Details {
		return matching.Details{EntityID: entity, PositionID: position, Overall: overall}
	}
	items := []matching.Details{
		d("c-1", "j-1", 95),
		d("c-2", "j-1", 90),
		d("c-1", "j-2", 85),
		d("c-3", "j-1", 70),
		d("c-2", "j-2", 40),
	}
	app := d("a-1", "j-2", 88)
	app.AppliedTo = "j-1"
	items = append(items, app)
	return matching.NewRanking(items)
}

func keys(r *matching.Ranking) []string {
	out := make([]string, 0, r.Len())
	for _, d := range r.Items {
		out = append(out, d.Key())
	}
	return out
}

func TestRunDefaultPipeline(t *testing.T) {
	t.Parallel()

	excludePath := filepath.Join(t.TempDir(), "exclude.json")
	excluded := &matching.ExcludedPairs{Items: []*matching.ExcludedPair{
		{EntityID: "c-1", PositionID: "j-2", ExcludedAt: time.Now()},
	}}
	require.NoError(t, excluded.ToFile(excludePath))

	core, observed := observer.New(zapcore.InfoLevel)
	cfg := &Config{MinimumScore: 50, Top: 1, ExcludeFile: excludePath}

	got, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Default(), ranking())
	require.NoError(t, err)

	assert.Equal(t, []string{"c-1@j-1"}, keys(got))
	assert.Equal(t, 5, observed.FilterMessage("filter step").Len())
}

func TestMinimumScore(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), &Config{MinimumScore: 85}, Deps{}, []Filter{NewMinimumScore()}, ranking())
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1@j-1", "c-2@j-1", "c-1@j-2", "a-1@j-2"}, keys(got))
}

func TestTopPerPosition(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), &Config{Top: 2}, Deps{}, []Filter{NewTop()}, ranking())
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1@j-1", "c-2@j-1", "c-1@j-2", "c-2@j-2"}, keys(got))
}

func TestAppliedPosition(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), nil, Deps{}, []Filter{NewAppliedPosition()}, ranking())
	require.NoError(t, err)
	assert.NotContains(t, keys(got), "a-1@j-2")
	assert.Equal(t, 5, got.Len())
}

func TestExcludedPositions(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), &Config{ExcludedPositions: []string{"j-1"}}, Deps{}, []Filter{NewExcludedPositions()}, ranking())
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1@j-2", "c-2@j-2", "a-1@j-2"}, keys(got))
}

func TestExcludeFileMissingIsEmpty(t *testing.T) {
	t.Parallel()

	cfg := &Config{ExcludeFile: filepath.Join(t.TempDir(), "missing.json")}
	got, err := Run(context.Background(), cfg, Deps{}, []Filter{NewExcludeFile()}, ranking())
	require.NoError(t, err)
	assert.Equal(t, 6, got.Len())
}

func TestDisabledFilterIsSkipped(t *testing.T) {
	t.Parallel()

	steps := []Filter{NewMinimumScore()}
	DisableByName(steps, "minimum_score", "disabled by flag")

	got, err := Run(context.Background(), &Config{MinimumScore: 99}, Deps{}, steps, ranking())
	require.NoError(t, err)
	assert.Equal(t, 6, got.Len())

	statuses := Describe(steps)
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].Enabled)
	assert.Equal(t, "disabled by flag", statuses[0].Reason)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), &Config{MinimumScore: 120}, Deps{}, Default(), ranking())
	assert.Error(t, err)

	_, err = Run(context.Background(), &Config{Top: -1}, Deps{}, Default(), ranking())
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	steps := Default()
	require.NoError(t, steps[4].Validate(&Config{Top: 3}))

	statuses := Describe(steps)
	require.Len(t, statuses, 5)
	assert.Equal(t, "applied_position", statuses[0].Name)
	assert.Equal(t, "top", statuses[4].Name)
	assert.Equal(t, "3", statuses[4].Details["top"])
}
