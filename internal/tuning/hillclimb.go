package tuning

import (
	"context"
	"errors"
	"math/rand"

	"biodesigner/internal/model"
)

// HillClimber runs mutate, score, accept rounds from a starting design and
// keeps the best design seen. With the default acceptance it is a plain
// greedy climber and can stall in a local optimum.
type HillClimber struct {
	Rand       *rand.Rand
	Mutate     MutateFn
	Fitness    FitnessFn
	Acceptance Acceptance
}

func (h *HillClimber) Name() string {
	return "hill_climber"
}

func (h *HillClimber) Climb(ctx context.Context, design model.Design, iterations int) (ClimbResult, error) {
	if err := ctx.Err(); err != nil {
		return ClimbResult{}, err
	}
	if h == nil || h.Rand == nil {
		return ClimbResult{}, errors.New("random source is required")
	}
	if h.Mutate == nil {
		return ClimbResult{}, errors.New("mutate function is required")
	}
	if h.Fitness == nil {
		return ClimbResult{}, errors.New("fitness function is required")
	}
	if iterations < 0 {
		return ClimbResult{}, errors.New("iterations must be >= 0")
	}
	acceptance := h.Acceptance
	if acceptance == nil {
		acceptance = GreedyAcceptance{}
	}

	originalScore, err := h.Fitness(ctx, design)
	if err != nil {
		return ClimbResult{}, err
	}

	current := design.Clone()
	currentScore := originalScore
	best := current
	bestScore := currentScore

	result := ClimbResult{
		Original:      design.Clone(),
		OriginalScore: originalScore,
		Iterations:    iterations,
		Runs:          1,
		Trace:         make([]float64, 0, iterations),
		Operations:    make([]string, 0, iterations),
	}
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return ClimbResult{}, err
		}
		candidate, opName, err := h.Mutate(ctx, current)
		if err != nil {
			return ClimbResult{}, err
		}
		candidateScore, err := h.Fitness(ctx, candidate)
		if err != nil {
			return ClimbResult{}, err
		}
		result.Operations = append(result.Operations, opName)

		if acceptance.Accept(h.Rand, i, currentScore, candidateScore) {
			current = candidate
			currentScore = candidateScore
			result.Accepted++
		}
		if currentScore > bestScore {
			best = current
			bestScore = currentScore
		}
		result.Trace = append(result.Trace, bestScore)
	}

	result.Best = best
	result.BestScore = bestScore
	return result, nil
}
