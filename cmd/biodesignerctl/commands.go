package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"biodesigner/internal/codon"
	"biodesigner/internal/model"
	"biodesigner/internal/server"
	"biodesigner/pkg/biodesigner"
)

// circuitFile is the on-disk optimize input, the same shape as the circuit
// endpoint's request body.
type circuitFile struct {
	Nodes            []model.Node      `json:"nodes"`
	Edges            []model.Edge      `json:"edges"`
	OptimizationGoal string            `json:"optimizationGoal"`
	Constraints      model.Constraints `json:"constraints"`
}

func (a *app) optimizeCmd() *cobra.Command {
	var (
		goal        string
		out         string
		iterations  int
		seed        int64
		restarts    int
		workers     int
		acceptance  string
		temperature float64
		cooling     float64
		locked      []string
		operators   []string
		maxEdges    int
	)
	cmd := &cobra.Command{
		Use:   "optimize FILE",
		Short: "Hill-climb a circuit design (JSON, - for stdin) towards a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in circuitFile
			if err := a.readJSON(args[0], &in); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("goal") {
				in.OptimizationGoal = goal
			}
			cons := &in.Constraints
			if flags.Changed("iterations") {
				cons.Iterations = &iterations
			}
			if flags.Changed("seed") {
				cons.Seed = &seed
			}
			if flags.Changed("restarts") {
				cons.Restarts = restarts
			}
			if flags.Changed("workers") {
				cons.Workers = workers
			}
			if flags.Changed("acceptance") {
				cons.Acceptance = acceptance
			}
			if flags.Changed("temperature") {
				cons.Temperature = temperature
			}
			if flags.Changed("cooling") {
				cons.Cooling = cooling
			}
			if flags.Changed("lock") {
				cons.LockedNodes = append(cons.LockedNodes, locked...)
			}
			if flags.Changed("operators") {
				cons.Operators = operators
			}
			if flags.Changed("max-edges") {
				cons.MaxEdges = maxEdges
			}

			run, err := a.client.OptimizeCircuit(cmd.Context(), biodesigner.CircuitRequest{
				Design:      model.Design{Nodes: in.Nodes, Edges: in.Edges},
				Goal:        model.Goal(in.OptimizationGoal),
				Constraints: in.Constraints,
			})
			if err != nil {
				return err
			}
			if out != "" {
				if _, err := a.client.WriteReport(out, run); err != nil {
					return err
				}
			}
			return a.writeJSON(run.Result)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&goal, "goal", "", "optimization goal: maxExpression|minLeakage|stability")
	flags.StringVar(&out, "out", "", "write a run report under this directory")
	flags.IntVar(&iterations, "iterations", 0, "mutate/score rounds per run")
	flags.Int64Var(&seed, "seed", 0, "random seed")
	flags.IntVar(&restarts, "restarts", 0, "independent runs; the best one wins")
	flags.IntVar(&workers, "workers", 0, "concurrent runs (0 = GOMAXPROCS)")
	flags.StringVar(&acceptance, "acceptance", "", "acceptance rule: greedy|annealing")
	flags.Float64Var(&temperature, "temperature", 0, "annealing start temperature")
	flags.Float64Var(&cooling, "cooling", 0, "annealing cooling factor per iteration")
	flags.StringSliceVar(&locked, "lock", nil, "node ids the mutator must not touch")
	flags.StringSliceVar(&operators, "operators", nil, "mutation operators to draw from")
	flags.IntVar(&maxEdges, "max-edges", 0, "edge budget for add_connection (0 = unbounded)")
	return cmd
}

func (a *app) simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate FILE",
		Short: "Report expression levels and complexity of a circuit design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var design model.Design
			if err := a.readJSON(args[0], &design); err != nil {
				return err
			}
			result, err := a.client.Simulate(design)
			if err != nil {
				return err
			}
			return a.writeJSON(result)
		},
	}
}

func (a *app) codonCmd() *cobra.Command {
	var (
		file       string
		organism   string
		enzymes    []string
		sites      []string
		expression bool
	)
	cmd := &cobra.Command{
		Use:   "codon [SEQUENCE]",
		Short: "Codon-optimize a coding sequence for a host organism",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := a.sequenceInput(args, file)
			if err != nil {
				return err
			}
			if expression {
				result, err := a.client.OptimizeExpression(cmd.Context(), biodesigner.ExpressionRequest{
					GeneSequence: seq,
					HostOrganism: organism,
					AvoidEnzymes: enzymes,
				})
				if err != nil {
					return err
				}
				return a.writeJSON(result)
			}
			result, err := a.client.OptimizeCodons(cmd.Context(), biodesigner.CodonRequest{
				Sequence:     seq,
				Organism:     organism,
				AvoidSites:   sites,
				AvoidEnzymes: enzymes,
			})
			if err != nil {
				return err
			}
			return a.writeJSON(result)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&file, "file", "", "read the sequence from a plain or FASTA file (- for stdin)")
	flags.StringVar(&organism, "organism", "", "host organism (default from config)")
	flags.StringSliceVar(&enzymes, "avoid-enzyme", nil, "restriction enzymes whose sites must not be created")
	flags.StringSliceVar(&sites, "avoid-site", nil, "literal sites that must not be created")
	flags.BoolVar(&expression, "expression", false, "report expression metrics and recommendations")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate [SEQUENCE]",
		Short: "Check a DNA sequence for invalid bases, restriction sites, repeats and palindromes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := a.sequenceInput(args, file)
			if err != nil {
				return err
			}
			report, err := a.client.ValidateSequence(seq)
			if err != nil {
				return err
			}
			return a.writeJSON(report)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read the sequence from a plain or FASTA file (- for stdin)")
	return cmd
}

func (a *app) translateCmd() *cobra.Command {
	var (
		file       string
		startCodon string
	)
	cmd := &cobra.Command{
		Use:   "translate [SEQUENCE]",
		Short: "Translate DNA to protein from the start codon to the first stop",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := a.sequenceInput(args, file)
			if err != nil {
				return err
			}
			translation, err := a.client.Translate(seq, startCodon)
			if err != nil {
				return err
			}
			return a.writeJSON(translation)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read the sequence from a plain or FASTA file (- for stdin)")
	cmd.Flags().StringVar(&startCodon, "start-codon", codon.StartCodon, "codon translation starts at")
	return cmd
}

func (a *app) tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage codon usage tables",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List organisms with a stored codon table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				organisms, err := a.client.ListTables(cmd.Context())
				if err != nil {
					return err
				}
				for _, organism := range organisms {
					fmt.Fprintln(a.stdout, organism)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show ORGANISM",
			Short: "Print a codon table as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				table, err := a.client.GetTable(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.writeJSON(table)
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Store a codon table from a YAML or JSON file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := a.readFile(args[0])
				if err != nil {
					return err
				}
				var table codon.UsageTable
				if err := yaml.Unmarshal(data, &table); err != nil {
					return fmt.Errorf("decode %s: %w", args[0], err)
				}
				if err := a.client.ImportTable(cmd.Context(), table); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "imported %s\n", codon.NormalizeOrganism(table.Organism))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ORGANISM",
			Short: "Remove a stored codon table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.client.DeleteTable(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var (
		addr  string
		debug bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("debug") {
				a.cfg.Server.Debug = debug
			}
			srv, err := server.New(a.client, server.Options{Debug: a.cfg.Server.Debug, Logger: a.logger})
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&debug, "debug", false, "gin debug mode")
	return cmd
}
