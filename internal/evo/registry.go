package evo

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"biodesigner/internal/model"
)

var (
	ErrOperatorExists   = errors.New("operator already registered")
	ErrOperatorNotFound = errors.New("operator not found")
)

// OperatorFactory builds an operator bound to one run's random stream and
// constraints.
type OperatorFactory func(rng *rand.Rand, constraints model.Constraints) Operator

var operatorRegistry = struct {
	mu sync.RWMutex
	m  map[string]OperatorFactory
}{
	m: make(map[string]OperatorFactory),
}

func init() {
	registerBuiltins()
}

func registerBuiltins() {
	builtins := map[string]OperatorFactory{
		OpAdjustPromoterStrength: func(rng *rand.Rand, c model.Constraints) Operator {
			return &AdjustPromoterStrength{Rand: rng, Constraints: c}
		},
		OpAdjustRBSStrength: func(rng *rand.Rand, c model.Constraints) Operator {
			return &AdjustRBSStrength{Rand: rng, Constraints: c}
		},
		OpAddConnection: func(rng *rand.Rand, c model.Constraints) Operator {
			return &AddConnection{Rand: rng, Constraints: c}
		},
		OpRemoveConnection: func(rng *rand.Rand, c model.Constraints) Operator {
			return &RemoveConnection{Rand: rng, Constraints: c}
		},
	}
	for name, factory := range builtins {
		if err := RegisterOperator(name, factory); err != nil {
			panic(err)
		}
	}
}

// RegisterOperator makes an operator available to constraints by name.
func RegisterOperator(name string, factory OperatorFactory) error {
	if name == "" {
		return errors.New("operator name is required")
	}
	if factory == nil {
		return errors.New("operator factory is required")
	}

	operatorRegistry.mu.Lock()
	defer operatorRegistry.mu.Unlock()

	if _, exists := operatorRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrOperatorExists, name)
	}
	operatorRegistry.m[name] = factory
	return nil
}

// ResolveOperator builds the named operator for one run.
func ResolveOperator(name string, rng *rand.Rand, constraints model.Constraints) (Operator, error) {
	operatorRegistry.mu.RLock()
	factory, ok := operatorRegistry.m[name]
	operatorRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOperatorNotFound, name)
	}
	return factory(rng, constraints), nil
}

func ListOperators() []string {
	operatorRegistry.mu.RLock()
	defer operatorRegistry.mu.RUnlock()

	names := make([]string, 0, len(operatorRegistry.m))
	for name := range operatorRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resetOperatorRegistryForTests() {
	operatorRegistry.mu.Lock()
	operatorRegistry.m = make(map[string]OperatorFactory)
	operatorRegistry.mu.Unlock()
	registerBuiltins()
}
