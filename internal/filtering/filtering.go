// Package filtering trims a ranking after scoring: low scores, pairs handled
// in earlier runs, excluded positions and everything below the top N.
package filtering

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/matching"
)

// Filter represents a single filtering step applied to a ranking.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *matching.Ranking) (*matching.Ranking, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	MinimumScore      float64  `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	Top               int      `mapstructure:"top" validate:"gte=0"`
	ExcludeFile       string   `mapstructure:"exclude-file"`
	ExcludedPositions []string `mapstructure:"excluded-positions" validate:"dive,required"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Default returns the standard pipeline in execution order.
func Default() []Filter {
	return []Filter{
		NewAppliedPosition(),
		NewExcludedPositions(),
		NewExcludeFile(),
		NewMinimumScore(),
		NewTop(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter, then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, r *matching.Ranking) (*matching.Ranking, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("filter config: %w", err)
	}
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	log := logger.WithFields(deps.Logger)
	for _, step := range steps {
		if !step.IsEnabled() {
			log.Info("filter disabled", zap.String(logger.FieldFilter, step.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, deps, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		log.Info("filter step",
			zap.String(logger.FieldFilter, step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		r = next
	}

	return r, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
