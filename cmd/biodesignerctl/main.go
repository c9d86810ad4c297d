package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/koeng101/poly"
	"github.com/spf13/cobra"

	"biodesigner/pkg/biodesigner"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app carries the state shared by every sub-command once the root command
// has loaded the configuration.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	storeKind  string
	dbPath     string
	logLevel   string
	logFormat  string

	cfg    Config
	logger *slog.Logger
	client *biodesigner.Client
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "biodesignerctl",
		Short:         "Optimize genetic circuits and coding sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.client == nil {
				return nil
			}
			return a.client.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.storeKind, "store", "", "codon table store backend: memory|sqlite")
	flags.StringVar(&a.dbPath, "db-path", "", "sqlite database path")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text|json")

	root.AddCommand(
		a.optimizeCmd(),
		a.simulateCmd(),
		a.codonCmd(),
		a.validateCmd(),
		a.translateCmd(),
		a.tablesCmd(),
		a.serveCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and opens the client.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Kind = a.storeKind
	}
	if flags.Changed("db-path") {
		cfg.Store.DBPath = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(a.stderr, cfg.Log)
	if err != nil {
		return err
	}
	client, err := biodesigner.New(biodesigner.Options{
		StoreKind:         cfg.Store.Kind,
		DBPath:            cfg.Store.DBPath,
		DefaultOrganism:   cfg.Codon.DefaultOrganism,
		OptimizerDefaults: cfg.Optimizer.constraints(),
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	if err := client.Init(cmd.Context()); err != nil {
		_ = client.Close()
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.client = client
	return nil
}

func newLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (a *app) readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(path)
}

func (a *app) readJSON(path string, out any) error {
	data, err := a.readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (a *app) writeJSON(value any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// sequenceInput returns the sequence given as the single argument or read
// from file, which may be plain text or FASTA.
func (a *app) sequenceInput(args []string, file string) (string, error) {
	if file == "" {
		if len(args) == 1 {
			return args[0], nil
		}
		return "", errors.New("a sequence argument or --file is required")
	}
	data, err := a.readFile(file)
	if err != nil {
		return "", err
	}
	return parseSequence(data), nil
}

// parseSequence joins the records of a FASTA (or headerless) text into one
// sequence, dropping whitespace the parser leaves in place.
func parseSequence(data []byte) string {
	return strings.Join(strings.Fields(poly.ParseFASTA(data).Sequence), "")
}
