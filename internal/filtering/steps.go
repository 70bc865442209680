package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/matching"
)

// switchable carries the enable state shared by every filter.
type switchable struct {
	disabled bool
	reason   string
}

func (s *switchable) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *switchable) IsEnabled() bool { return !s.disabled }

func logDropped(deps Deps, msg string, removed []string, left int, fields ...zap.Field) {
	if deps.Logger == nil || len(removed) == 0 {
		return
	}
	fields = append(fields, zap.Strings("excluded_pairs", removed), zap.Int("pairs_left", left))
	deps.Logger.Info(msg, fields...)
}

type appliedPositionFilter struct {
	switchable
}

// NewAppliedPosition creates a filter that keeps applications only against
// the position they were submitted for.
func NewAppliedPosition() Filter {
	return &appliedPositionFilter{}
}

func (f *appliedPositionFilter) Name() string { return "applied_position" }

func (f *appliedPositionFilter) Validate(*Config) error { return nil }

func (f *appliedPositionFilter) Apply(_ context.Context, deps Deps, r *matching.Ranking) (*matching.Ranking, Step, error) {
	initial := r.Len()
	removed := r.Exclude(func(d matching.Details) bool {
		return d.AppliedTo != "" && d.AppliedTo != d.PositionID
	})
	logDropped(deps, "excluding applications scored against other positions", removed, r.Len())

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *appliedPositionFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type excludedPositionsFilter struct {
	switchable
	positions []string
}

// NewExcludedPositions creates a filter that removes positions listed in the config.
func NewExcludedPositions() Filter {
	return &excludedPositionsFilter{}
}

func (f *excludedPositionsFilter) Name() string { return "excluded_positions" }

func (f *excludedPositionsFilter) Validate(cfg *Config) error {
	f.positions = append([]string(nil), cfg.ExcludedPositions...)
	return nil
}

func (f *excludedPositionsFilter) Apply(_ context.Context, deps Deps, r *matching.Ranking) (*matching.Ranking, Step, error) {
	initial := r.Len()
	if len(f.positions) == 0 {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	drop := make(map[string]bool, len(f.positions))
	for _, id := range f.positions {
		drop[id] = true
	}
	removed := r.Exclude(func(d matching.Details) bool { return drop[d.PositionID] })
	logDropped(deps, "excluding positions", removed, r.Len(), zap.Strings("excluded_positions", f.positions))

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *excludedPositionsFilter) Status() Status {
	details := map[string]string{}
	if len(f.positions) > 0 {
		details["positions"] = strings.Join(f.positions, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	switchable
	path string
}

// NewExcludeFile creates a filter that removes pairs recorded in an exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = strings.TrimSpace(cfg.ExcludeFile)
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, r *matching.Ranking) (*matching.Ranking, Step, error) {
	initial := r.Len()
	if f.path == "" {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	excluded, err := matching.ExcludedPairsFromFile(f.path)
	if err != nil {
		return r, Step{}, fmt.Errorf("getting excluded pairs from file: %w", err)
	}

	keys := excluded.Keys()
	removed := r.Exclude(func(d matching.Details) bool { return keys[d.Key()] })
	logDropped(deps, "excluding pairs based on exclude file", removed, r.Len(), zap.String("path", f.path))

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type minimumScoreFilter struct {
	switchable
	minimum float64
}

// NewMinimumScore creates a filter that drops pairs scoring below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, r *matching.Ranking) (*matching.Ranking, Step, error) {
	initial := r.Len()
	removed := r.Exclude(func(d matching.Details) bool { return d.Overall < f.minimum })
	logDropped(deps, "excluding pairs below minimum score", removed, r.Len(), zap.Float64("minimum_score", f.minimum))

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	details := map[string]string{"minimum_score": strconv.FormatFloat(f.minimum, 'f', 2, 64)}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type topFilter struct {
	switchable
	top int
}

// NewTop creates a filter that keeps the best N pairs of every position.
func NewTop() Filter {
	return &topFilter{}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Validate(cfg *Config) error {
	f.top = cfg.Top
	return nil
}

func (f *topFilter) Apply(_ context.Context, deps Deps, r *matching.Ranking) (*matching.Ranking, Step, error) {
	initial := r.Len()
	if f.top == 0 {
		return r, Step{Initial: initial, Left: initial}, nil
	}

	seen := map[string]int{}
	removed := r.Exclude(func(d matching.Details) bool {
		seen[d.PositionID]++
		return seen[d.PositionID] > f.top
	})
	logDropped(deps, "keeping top pairs per position", removed, r.Len(), zap.Int("top", f.top))

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *topFilter) Status() Status {
	details := map[string]string{}
	if f.top > 0 {
		details["top"] = strconv.Itoa(f.top)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
