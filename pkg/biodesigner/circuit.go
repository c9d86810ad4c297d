package biodesigner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"biodesigner/internal/evo"
	"biodesigner/internal/model"
	"biodesigner/internal/score"
	"biodesigner/internal/sim"
	"biodesigner/internal/stats"
	"biodesigner/internal/tuning"
)

type CircuitRequest struct {
	Design      model.Design
	Goal        model.Goal
	Constraints model.Constraints
}

// CircuitRun is one finished circuit optimization together with the settings
// it ran with.
type CircuitRun struct {
	Result     model.OptimizationResult
	Operations []string
	Config     stats.RunConfig
}

// OptimizeCircuit hill-climbs req.Design towards req.Goal. Run settings the
// request leaves unset come from Options.OptimizerDefaults. Without a seed in
// either the run is seeded from the clock.
func (c *Client) OptimizeCircuit(ctx context.Context, req CircuitRequest) (CircuitRun, error) {
	if req.Goal == "" {
		return CircuitRun{}, invalid(ErrGoalRequired)
	}
	goal, err := model.ParseGoal(string(req.Goal))
	if err != nil {
		return CircuitRun{}, invalid(err)
	}
	if err := req.Design.Validate(); err != nil {
		return CircuitRun{}, invalid(err)
	}

	cons := req.Constraints.WithDefaults(c.defaults)
	iterations := tuning.DefaultIterations
	if cons.Iterations != nil {
		if *cons.Iterations < 0 {
			return CircuitRun{}, invalid(errors.New("iterations must be >= 0"))
		}
		iterations = *cons.Iterations
	}
	seed := time.Now().UnixNano()
	if cons.Seed != nil {
		seed = *cons.Seed
	}
	runs := cons.Restarts
	if runs < 1 {
		runs = 1
	}
	acceptance, err := acceptanceFor(cons)
	if err != nil {
		return CircuitRun{}, invalid(err)
	}
	base, err := evo.NewMutator(rand.New(rand.NewSource(seed)), cons)
	if err != nil {
		return CircuitRun{}, invalid(err)
	}

	fitness := tuning.FitnessFn(score.Func(goal))
	multi := tuning.MultiStart{
		Seed:    seed,
		Runs:    runs,
		Workers: cons.Workers,
		NewClimber: func(rng *rand.Rand) (*tuning.HillClimber, error) {
			mutator, err := evo.NewMutator(rng, cons)
			if err != nil {
				return nil, err
			}
			return &tuning.HillClimber{
				Rand:       rng,
				Mutate:     mutator.Mutate,
				Fitness:    fitness,
				Acceptance: acceptance,
			}, nil
		},
	}

	started := time.Now()
	climb, err := multi.Run(ctx, req.Design, iterations)
	if err != nil {
		return CircuitRun{}, fmt.Errorf("optimize circuit: %w", err)
	}

	result := model.OptimizationResult{
		OriginalDesign:  climb.Original,
		OptimizedDesign: climb.Best,
		OriginalScore:   climb.OriginalScore,
		OptimizedScore:  climb.BestScore,
		Iterations:      climb.Iterations,
		Goal:            goal,
		Accepted:        climb.Accepted,
		Trace:           climb.Trace,
	}
	if climb.Runs > 1 {
		result.Restarts = climb.Runs
	}

	cfg := stats.NewRunConfig(started)
	cfg.Goal = string(goal)
	cfg.Iterations = iterations
	cfg.Runs = runs
	cfg.Seed = seed
	cfg.Workers = cons.Workers
	cfg.Acceptance = acceptance.Name()
	cfg.Temperature = cons.Temperature
	cfg.Cooling = cons.Cooling
	cfg.Operators = base.Operators()
	cfg.LockedNodes = append([]string(nil), cons.LockedNodes...)
	cfg.MaxEdges = cons.MaxEdges

	c.logger.Info("circuit optimized",
		"run_id", cfg.RunID,
		"goal", goal,
		"iterations", iterations,
		"runs", runs,
		"accepted", climb.Accepted,
		"original_score", climb.OriginalScore,
		"optimized_score", climb.BestScore,
		"elapsed", time.Since(started),
	)
	return CircuitRun{Result: result, Operations: climb.Operations, Config: cfg}, nil
}

func acceptanceFor(cons model.Constraints) (tuning.Acceptance, error) {
	switch cons.Acceptance {
	case "", model.AcceptanceGreedy:
		return tuning.GreedyAcceptance{}, nil
	case model.AcceptanceAnnealing:
		a := tuning.AnnealingAcceptance{Temperature: cons.Temperature, Cooling: cons.Cooling}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown acceptance %q", cons.Acceptance)
	}
}

// WriteReport stores run under baseDir/<run id> and returns that directory.
func (c *Client) WriteReport(baseDir string, run CircuitRun) (string, error) {
	dir, err := stats.WriteRunReport(baseDir, stats.RunReport{
		Config:     run.Config,
		Result:     run.Result,
		Operations: run.Operations,
	})
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	c.logger.Info("run report written", "run_id", run.Config.RunID, "dir", dir)
	return dir, nil
}

type SimulationResult struct {
	Levels     sim.Levels     `json:"levels"`
	Profile    sim.Profile    `json:"profile"`
	Complexity sim.Complexity `json:"complexity"`
}

// Simulate reports induced levels, the induced/uninduced profile and
// structural counts for design.
func (c *Client) Simulate(design model.Design) (SimulationResult, error) {
	if err := design.Validate(); err != nil {
		return SimulationResult{}, invalid(err)
	}
	profile := sim.ProfileOf(design)
	return SimulationResult{
		Levels:     profile.Induced,
		Profile:    profile,
		Complexity: sim.ComplexityOf(design),
	}, nil
}
