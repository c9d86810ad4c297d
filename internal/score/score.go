package score

import (
	"context"
	"math"

	"biodesigner/internal/model"
	"biodesigner/internal/sim"
)

const (
	stabilityEdgeWeight      = 2.0
	stabilityRepressorWeight = 5.0
)

// Score rates a design against goal; higher is better. Unknown goals score 0.
func Score(design model.Design, goal model.Goal) float64 {
	switch goal {
	case model.GoalMaxExpression:
		return maxExpression(design)
	case model.GoalMinLeakage:
		return minLeakage(design)
	case model.GoalStability:
		return stability(design)
	default:
		return 0
	}
}

func maxExpression(design model.Design) float64 {
	levels := sim.Simulate(design, true)
	total := 0.0
	for _, node := range design.Nodes {
		if isReporter(node) {
			total += levels[node.ID]
		}
	}
	return total
}

func minLeakage(design model.Design) float64 {
	induced := sim.Simulate(design, true)
	uninduced := sim.Simulate(design, false)
	total := 0.0
	for _, node := range design.Nodes {
		if isReporter(node) {
			total += induced[node.ID] / math.Max(uninduced[node.ID], sim.LeakageFloor)
		}
	}
	return total
}

// stability is a structural heuristic rewarding connected, auto-regulated
// topologies. It is not a physical stability measure.
func stability(design model.Design) float64 {
	edges := float64(len(design.Edges))
	repressors := float64(design.CountGenes(model.GeneRepressor))
	return stabilityEdgeWeight*edges + stabilityRepressorWeight*repressors
}

func isReporter(node model.Node) bool {
	gene, ok := node.Part.(model.Gene)
	return ok && gene.Function == model.GeneReporter
}

// Func adapts goal into the fitness signature the optimizer consumes.
func Func(goal model.Goal) func(context.Context, model.Design) (float64, error) {
	return func(_ context.Context, design model.Design) (float64, error) {
		return Score(design, goal), nil
	}
}
