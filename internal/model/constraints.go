package model

const (
	AcceptanceGreedy    = "greedy"
	AcceptanceAnnealing = "annealing"
)

// Constraints narrows what the mutator may touch and how the optimizer runs.
// Zero values mean "no constraint" / "use the default".
type Constraints struct {
	LockedNodes []string `json:"lockedNodes,omitempty"`
	MaxEdges    int      `json:"maxEdges,omitempty" binding:"gte=0"`
	Operators   []string `json:"operators,omitempty"`

	Iterations  *int    `json:"iterations,omitempty" binding:"omitempty,gte=0,lte=100000"`
	Seed        *int64  `json:"seed,omitempty"`
	Restarts    int     `json:"restarts,omitempty" binding:"gte=0,lte=64"`
	Workers     int     `json:"workers,omitempty" binding:"gte=0,lte=64"`
	Acceptance  string  `json:"acceptance,omitempty" binding:"omitempty,oneof=greedy annealing"`
	Temperature float64 `json:"temperature,omitempty" binding:"gte=0"`
	Cooling     float64 `json:"cooling,omitempty" binding:"gte=0,lte=1"`
}

func (c Constraints) IsLocked(id string) bool {
	for _, locked := range c.LockedNodes {
		if locked == id {
			return true
		}
	}
	return false
}

// WithDefaults fills the run settings c leaves unset from d. Graph
// constraints (locked nodes, edge budget, operators) are never defaulted.
func (c Constraints) WithDefaults(d Constraints) Constraints {
	if c.Iterations == nil && d.Iterations != nil {
		iterations := *d.Iterations
		c.Iterations = &iterations
	}
	if c.Seed == nil && d.Seed != nil {
		seed := *d.Seed
		c.Seed = &seed
	}
	if c.Restarts == 0 {
		c.Restarts = d.Restarts
	}
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
	if c.Acceptance == "" {
		c.Acceptance = d.Acceptance
	}
	if c.Temperature == 0 {
		c.Temperature = d.Temperature
	}
	if c.Cooling == 0 {
		c.Cooling = d.Cooling
	}
	return c
}
