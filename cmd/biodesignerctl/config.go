package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"biodesigner/internal/codon"
	"biodesigner/internal/model"
	"biodesigner/internal/storage"
	"biodesigner/internal/tuning"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Codon     CodonConfig     `yaml:"codon"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Debug bool   `yaml:"debug"`
}

type StoreConfig struct {
	Kind   string `yaml:"kind"`
	DBPath string `yaml:"db_path"`
}

// OptimizerConfig holds defaults for circuit optimization. Values set in a
// request's constraints take precedence.
type OptimizerConfig struct {
	Iterations  int     `yaml:"iterations"`
	Restarts    int     `yaml:"restarts"`
	Workers     int     `yaml:"workers"`
	Seed        *int64  `yaml:"seed"`
	Acceptance  string  `yaml:"acceptance"`
	Temperature float64 `yaml:"temperature"`
	Cooling     float64 `yaml:"cooling"`
}

type CodonConfig struct {
	DefaultOrganism string `yaml:"default_organism"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Kind:   storage.DefaultStoreKind(),
			DBPath: "biodesigner.db",
		},
		Optimizer: OptimizerConfig{
			Iterations: tuning.DefaultIterations,
			Restarts:   1,
			Acceptance: model.AcceptanceGreedy,
			Cooling:    tuning.DefaultCooling,
		},
		Codon: CodonConfig{DefaultOrganism: codon.DefaultOrganism},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// loadConfig reads a YAML file over the defaults. An empty path yields the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Kind {
	case storage.KindMemory, storage.KindSQLite:
	default:
		return fmt.Errorf("unsupported store kind %q", c.Store.Kind)
	}
	if c.Store.Kind == storage.KindSQLite && c.Store.DBPath == "" {
		return errors.New("store.db_path is required for sqlite")
	}

	o := c.Optimizer
	if o.Iterations < 0 {
		return errors.New("optimizer.iterations must be >= 0")
	}
	if o.Restarts < 0 {
		return errors.New("optimizer.restarts must be >= 0")
	}
	if o.Workers < 0 {
		return errors.New("optimizer.workers must be >= 0")
	}
	switch o.Acceptance {
	case "", model.AcceptanceGreedy, model.AcceptanceAnnealing:
	default:
		return fmt.Errorf("unknown optimizer.acceptance %q", o.Acceptance)
	}
	if err := (tuning.AnnealingAcceptance{Temperature: o.Temperature, Cooling: o.Cooling}).Validate(); err != nil {
		return fmt.Errorf("optimizer: %w", err)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

// constraints turns the optimizer section into the run defaults the client
// applies to every circuit request.
func (o OptimizerConfig) constraints() model.Constraints {
	iterations := o.Iterations
	defaults := model.Constraints{
		Iterations:  &iterations,
		Restarts:    o.Restarts,
		Workers:     o.Workers,
		Acceptance:  o.Acceptance,
		Temperature: o.Temperature,
		Cooling:     o.Cooling,
	}
	if o.Seed != nil {
		seed := *o.Seed
		defaults.Seed = &seed
	}
	return defaults
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if raw == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("unknown log.level %q", raw)
	}
	return level, nil
}
