package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/aegis/optim"
	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
	"github.com/katalvlaran/aegis/variational"
)

// Config is the full CLI configuration. A YAML file is decoded over
// DefaultConfig, then explicitly set flags override it.
type Config struct {
	Problem   ProblemConfig   `yaml:"problem"`
	Solve     SolveConfig     `yaml:"solve"`
	Noise     NoiseConfig     `yaml:"noise"`
	Bench     BenchConfig     `yaml:"bench"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Output    string          `yaml:"output" validate:"oneof=table json yaml"`
}

// ProblemConfig describes the instance. Risk and Distance, when set, must
// both have N entries; otherwise they are drawn from Seed.
type ProblemConfig struct {
	N        int       `yaml:"n" validate:"min=1,max=30"`
	Seed     int64     `yaml:"seed"`
	Risk     []float64 `yaml:"risk,omitempty"`
	Distance []float64 `yaml:"distance,omitempty"`
	Alpha    float64   `yaml:"alpha" validate:"gte=0"`
	Beta     float64   `yaml:"beta" validate:"gte=0"`
	Penalty  float64   `yaml:"penalty" validate:"gte=0"`
}

// SolveConfig selects and tunes the solvers.
type SolveConfig struct {
	Methods   []string `yaml:"methods" validate:"min=1,dive,oneof=brute_force greedy vqe qaoa"`
	Reps      int      `yaml:"reps" validate:"min=1,max=10"`
	Shots     int      `yaml:"shots" validate:"min=1"`
	MaxIter   int      `yaml:"max_iter" validate:"min=1"`
	Optimizer string   `yaml:"optimizer" validate:"oneof=spsa nelder_mead"`
	Seed      int64    `yaml:"seed"`
	Workers   int      `yaml:"workers" validate:"gte=0"`
	Heuristic bool     `yaml:"heuristic_fallback"`
	History   bool     `yaml:"history"`
}

// NoiseConfig selects a noise preset and its rate.
type NoiseConfig struct {
	Preset string  `yaml:"preset" validate:"oneof=ideal depolarizing readout combined"`
	Rate   float64 `yaml:"rate" validate:"gte=0,lte=1"`
}

// BenchConfig drives the bench subcommands.
type BenchConfig struct {
	Sizes       []int     `yaml:"sizes" validate:"min=1,dive,min=1,max=20"`
	Rates       []float64 `yaml:"rates" validate:"min=1,dive,gte=0,lte=1"`
	Trials      int       `yaml:"trials" validate:"min=1"`
	Concurrency int       `yaml:"concurrency" validate:"gte=0"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Format string `yaml:"format" validate:"oneof=text json"`
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
}

// TelemetryConfig selects the OpenTelemetry exporters.
type TelemetryConfig struct {
	Traces  string `yaml:"traces" validate:"oneof=none stdout"`
	Metrics string `yaml:"metrics" validate:"oneof=none stdout prometheus"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Problem: ProblemConfig{
			N:       4,
			Seed:    rng.DefaultSeed,
			Alpha:   qubo.DefaultAlpha,
			Beta:    qubo.DefaultBeta,
			Penalty: qubo.DefaultPenalty,
		},
		Solve: SolveConfig{
			Methods:   []string{"brute_force", "greedy", "vqe", "qaoa"},
			Reps:      2,
			Shots:     variational.DefaultShots,
			MaxIter:   optim.DefaultMaxIter,
			Optimizer: "spsa",
			Seed:      rng.DefaultSeed,
			Heuristic: true,
		},
		Noise: NoiseConfig{Preset: "ideal"},
		Bench: BenchConfig{
			Sizes:  []int{2, 3, 4, 5, 6},
			Rates:  []float64{0, 0.01, 0.02, 0.05, 0.1},
			Trials: 3,
		},
		Log:       LogConfig{Format: "text", Level: "info"},
		Telemetry: TelemetryConfig{Traces: "none", Metrics: "none"},
		Output:    "table",
	}
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig decodes the YAML file at path over DefaultConfig. Unknown keys
// are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks struct tags and the cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			errs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	p := c.Problem
	if p.Risk != nil && len(p.Risk) != p.N {
		return fmt.Errorf("%w: problem.risk has %d entries, n=%d", ErrInvalidConfig, len(p.Risk), p.N)
	}
	if p.Distance != nil && len(p.Distance) != p.N {
		return fmt.Errorf("%w: problem.distance has %d entries, n=%d", ErrInvalidConfig, len(p.Distance), p.N)
	}

	return nil
}
