package evo

import (
	"context"
	"fmt"
	"math/rand"

	"biodesigner/internal/model"
)

const (
	OpAdjustPromoterStrength = "adjust_promoter_strength"
	OpAdjustRBSStrength      = "adjust_rbs_strength"
	OpAddConnection          = "add_connection"
	OpRemoveConnection       = "remove_connection"
)

// DefaultOperators is the draw order used when constraints do not name a
// subset.
var DefaultOperators = []string{
	OpAdjustPromoterStrength,
	OpAdjustRBSStrength,
	OpAddConnection,
	OpRemoveConnection,
}

// AdjustPromoterStrength moves a random promoter to a different rung of the
// strength ladder.
type AdjustPromoterStrength struct {
	Rand        *rand.Rand
	Constraints model.Constraints
}

func (o *AdjustPromoterStrength) Name() string {
	return OpAdjustPromoterStrength
}

func (o *AdjustPromoterStrength) Apply(_ context.Context, design model.Design) (model.Design, error) {
	if o == nil || o.Rand == nil {
		return model.Design{}, errRandRequired
	}
	candidates := make([]int, 0, len(design.Nodes))
	for i, node := range design.Nodes {
		if _, ok := node.Part.(model.Promoter); ok && !o.Constraints.IsLocked(node.ID) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return model.Design{}, ErrNoMutationChoice
	}

	idx := candidates[o.Rand.Intn(len(candidates))]
	mutated := design.Clone()
	promoter := mutated.Nodes[idx].Part.(model.Promoter)
	promoter.Strength = differentStrength(o.Rand, promoter.Strength)
	mutated.Nodes[idx].Part = promoter
	return mutated, nil
}

// AdjustRBSStrength moves a random translation element to a different rung
// of the strength ladder.
type AdjustRBSStrength struct {
	Rand        *rand.Rand
	Constraints model.Constraints
}

func (o *AdjustRBSStrength) Name() string {
	return OpAdjustRBSStrength
}

func (o *AdjustRBSStrength) Apply(_ context.Context, design model.Design) (model.Design, error) {
	if o == nil || o.Rand == nil {
		return model.Design{}, errRandRequired
	}
	candidates := make([]int, 0, len(design.Nodes))
	for i, node := range design.Nodes {
		reg, ok := node.Part.(model.Regulatory)
		if ok && reg.Function == model.FunctionTranslation && !o.Constraints.IsLocked(node.ID) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return model.Design{}, ErrNoMutationChoice
	}

	idx := candidates[o.Rand.Intn(len(candidates))]
	mutated := design.Clone()
	reg := mutated.Nodes[idx].Part.(model.Regulatory)
	reg.Strength = differentStrength(o.Rand, reg.Strength)
	mutated.Nodes[idx].Part = reg
	return mutated, nil
}

// AddConnection wires a random promoter or regulatory element into a random
// gene. Drawing a pair that is already connected leaves the design as is.
type AddConnection struct {
	Rand        *rand.Rand
	Constraints model.Constraints
}

func (o *AddConnection) Name() string {
	return OpAddConnection
}

func (o *AddConnection) Apply(_ context.Context, design model.Design) (model.Design, error) {
	if o == nil || o.Rand == nil {
		return model.Design{}, errRandRequired
	}
	if o.Constraints.MaxEdges > 0 && len(design.Edges) >= o.Constraints.MaxEdges {
		return model.Design{}, ErrNoMutationChoice
	}

	var sources, targets []string
	for _, node := range design.Nodes {
		if o.Constraints.IsLocked(node.ID) {
			continue
		}
		switch node.Part.(type) {
		case model.Promoter, model.Regulatory:
			sources = append(sources, node.ID)
		case model.Gene:
			targets = append(targets, node.ID)
		}
	}
	if len(sources) == 0 || len(targets) == 0 {
		return model.Design{}, ErrNoMutationChoice
	}

	source := sources[o.Rand.Intn(len(sources))]
	target := targets[o.Rand.Intn(len(targets))]
	mutated := design.Clone()
	if mutated.HasEdge(source, target) {
		return mutated, nil
	}
	mutated.Edges = append(mutated.Edges, model.Edge{
		ID:     EdgeID(source, target),
		Source: source,
		Target: target,
	})
	return mutated, nil
}

// RemoveConnection drops one uniformly chosen edge.
type RemoveConnection struct {
	Rand        *rand.Rand
	Constraints model.Constraints
}

func (o *RemoveConnection) Name() string {
	return OpRemoveConnection
}

func (o *RemoveConnection) Apply(_ context.Context, design model.Design) (model.Design, error) {
	if o == nil || o.Rand == nil {
		return model.Design{}, errRandRequired
	}
	candidates := make([]int, 0, len(design.Edges))
	for i, edge := range design.Edges {
		if o.Constraints.IsLocked(edge.Source) || o.Constraints.IsLocked(edge.Target) {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return model.Design{}, ErrNoMutationChoice
	}

	idx := candidates[o.Rand.Intn(len(candidates))]
	mutated := design.Clone()
	mutated.Edges = append(mutated.Edges[:idx], mutated.Edges[idx+1:]...)
	return mutated, nil
}

func EdgeID(source, target string) string {
	return fmt.Sprintf("e-%s-%s", source, target)
}

// differentStrength draws uniformly from the ladder levels other than
// current.
func differentStrength(rng *rand.Rand, current model.Strength) model.Strength {
	ladder := model.StrengthLadder
	cur := current.Index()
	if cur < 0 {
		return ladder[rng.Intn(len(ladder))]
	}
	idx := rng.Intn(len(ladder) - 1)
	if idx >= cur {
		idx++
	}
	return ladder[idx]
}
