package tuning

import (
	"errors"
	"math"
	"math/rand"
)

const DefaultCooling = 0.95

// Acceptance decides whether the climber moves from the current design to a
// candidate.
type Acceptance interface {
	Name() string
	Accept(rng *rand.Rand, iteration int, current, candidate float64) bool
}

// GreedyAcceptance only moves on strict improvement.
type GreedyAcceptance struct{}

func (GreedyAcceptance) Name() string { return "greedy" }

func (GreedyAcceptance) Accept(_ *rand.Rand, _ int, current, candidate float64) bool {
	return candidate > current
}

// AnnealingAcceptance also takes a worse candidate with probability
// exp(delta/T), where T = Temperature * Cooling^iteration.
type AnnealingAcceptance struct {
	Temperature float64
	Cooling     float64
}

func (AnnealingAcceptance) Name() string { return "annealing" }

func (a AnnealingAcceptance) Validate() error {
	if a.Temperature < 0 {
		return errors.New("temperature must be >= 0")
	}
	if a.Cooling < 0 || a.Cooling > 1 {
		return errors.New("cooling must be within [0, 1]")
	}
	return nil
}

func (a AnnealingAcceptance) Accept(rng *rand.Rand, iteration int, current, candidate float64) bool {
	if candidate > current {
		return true
	}
	cooling := a.Cooling
	if cooling == 0 {
		cooling = DefaultCooling
	}
	temperature := a.Temperature * math.Pow(cooling, float64(iteration))
	if temperature <= 0 || rng == nil {
		return false
	}
	return rng.Float64() < math.Exp((candidate-current)/temperature)
}
