package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/talent-match/internal/entity"
)

// Batch scores every person against every position in parallel. Results
// are sorted by Overall descending; equal scores keep input order, people
// first then positions.
func (e *Engine) Batch(ctx context.Context, people []entity.Person, openings []entity.Opening) ([]Details, error) {
	started := time.Now()
	results := make([]Details, len(people)*len(openings))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

schedule:
	for i, p := range people {
		for j, o := range openings {
			if gCtx.Err() != nil {
				break schedule
			}
			slot := i*len(openings) + j
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				results[slot] = e.Calculate(p, o)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch scoring: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch scoring: %w", err)
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Overall > results[b].Overall
	})

	e.log.Info("batch scored",
		zap.Int("people", len(people)),
		zap.Int("positions", len(openings)),
		zap.Int("pairs", len(results)),
		zap.Int("workers", e.cfg.Workers),
		zap.Duration("took", time.Since(started)),
	)
	return results, nil
}

// RankPeople scores people against one position, best first.
func (e *Engine) RankPeople(ctx context.Context, o entity.Opening, people []entity.Person) ([]Details, error) {
	return e.Batch(ctx, people, []entity.Opening{o})
}

// RankPositions scores positions for one person, best first.
func (e *Engine) RankPositions(ctx context.Context, p entity.Person, openings []entity.Opening) ([]Details, error) {
	return e.Batch(ctx, []entity.Person{p}, openings)
}
