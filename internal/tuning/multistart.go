package tuning

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"biodesigner/internal/model"
)

// ClimberFactory builds the climber for one run around that run's private
// random stream.
type ClimberFactory func(rng *rand.Rand) (*HillClimber, error)

// MultiStart runs independent climbs from the same design and keeps the best.
// Run i draws from rand.NewSource(Seed+i). Ties go to the lowest run index.
type MultiStart struct {
	Seed       int64
	Runs       int
	Workers    int
	NewClimber ClimberFactory
}

func (m MultiStart) Run(ctx context.Context, design model.Design, iterations int) (ClimbResult, error) {
	if m.NewClimber == nil {
		return ClimbResult{}, errors.New("climber factory is required")
	}
	runs := m.Runs
	if runs < 1 {
		runs = 1
	}
	workers := m.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]ClimbResult, runs)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < runs; i++ {
		g.Go(func() error {
			climber, err := m.NewClimber(rand.New(rand.NewSource(m.Seed + int64(i))))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			result, err := climber.Climb(gCtx, design, iterations)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ClimbResult{}, err
	}

	best := 0
	for i := 1; i < runs; i++ {
		if results[i].BestScore > results[best].BestScore {
			best = i
		}
	}
	out := results[best]
	out.Runs = runs
	return out, nil
}
