package tuning

import (
	"context"

	"biodesigner/internal/model"
)

// DefaultIterations is the number of mutate/score rounds when the caller does
// not ask for a specific count.
const DefaultIterations = 50

type FitnessFn func(ctx context.Context, design model.Design) (float64, error)

// MutateFn returns a new candidate derived from design and the name of the
// operator that produced it. It must not modify design.
type MutateFn func(ctx context.Context, design model.Design) (model.Design, string, error)

type ClimbResult struct {
	Original      model.Design
	Best          model.Design
	OriginalScore float64
	BestScore     float64
	Iterations    int
	Accepted      int
	Runs          int
	// Trace holds the best score after each iteration.
	Trace      []float64
	Operations []string
}
