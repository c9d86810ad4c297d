package evo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"biodesigner/internal/model"
)

// Mutator draws one operator uniformly per call and applies it. It never
// changes the design it is given.
type Mutator struct {
	rng       *rand.Rand
	operators []Operator
}

// NewMutator resolves the operators named by constraints, or the four
// defaults, against rng.
func NewMutator(rng *rand.Rand, constraints model.Constraints) (*Mutator, error) {
	if rng == nil {
		return nil, errRandRequired
	}
	names := constraints.Operators
	if len(names) == 0 {
		names = DefaultOperators
	}
	operators := make([]Operator, 0, len(names))
	for _, name := range names {
		op, err := ResolveOperator(name, rng, constraints)
		if err != nil {
			return nil, err
		}
		operators = append(operators, op)
	}
	return &Mutator{rng: rng, operators: operators}, nil
}

// Mutate returns a new design and the name of the operator drawn. An operator
// with nothing eligible yields an unchanged copy.
func (m *Mutator) Mutate(ctx context.Context, design model.Design) (model.Design, string, error) {
	if err := ctx.Err(); err != nil {
		return model.Design{}, "", err
	}
	op := m.operators[m.rng.Intn(len(m.operators))]
	mutated, err := op.Apply(ctx, design)
	if err != nil {
		if errors.Is(err, ErrNoMutationChoice) {
			return design.Clone(), op.Name(), nil
		}
		return model.Design{}, op.Name(), fmt.Errorf("%s: %w", op.Name(), err)
	}
	return mutated, op.Name(), nil
}

func (m *Mutator) Operators() []string {
	names := make([]string, 0, len(m.operators))
	for _, op := range m.operators {
		names = append(names, op.Name())
	}
	return names
}
