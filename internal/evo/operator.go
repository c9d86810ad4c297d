package evo

import (
	"context"
	"errors"

	"biodesigner/internal/model"
)

// ErrNoMutationChoice reports that an operator found nothing eligible to
// change. The mutator turns it into a no-op.
var ErrNoMutationChoice = errors.New("no mutation choice available")

var errRandRequired = errors.New("random source is required")

type Operator interface {
	Name() string
	Apply(ctx context.Context, design model.Design) (model.Design, error)
}
