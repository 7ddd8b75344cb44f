package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/aegis/internal/telemetry"
)

var version = "dev"

// app carries state shared by every command of one invocation.
type app struct {
	flags   Config // flag-bound values, applied only where a flag was set
	cfgPath string

	cfg      Config // effective configuration
	runID    string
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
	shutdown func(context.Context) error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		flags:  DefaultConfig(),
		stdout: stdout,
		stderr: stderr,
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aegis",
		Short: "Tactical target selection as a QUBO, solved classically and variationally",
		Long: `aegis chooses exactly one of N candidate items by minimising a weighted
risk/distance cost under a one-hot penalty. The problem is solved exactly,
greedily, and with VQE and QAOA on an in-process state-vector simulator.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&a.flags.Log.Format, "log-format", a.flags.Log.Format, "log format: text or json")
	pf.StringVar(&a.flags.Log.Level, "log-level", a.flags.Log.Level, "log level: debug, info, warn or error")
	pf.StringVar(&a.flags.Telemetry.Traces, "telemetry", a.flags.Telemetry.Traces, "trace exporter: none or stdout")
	pf.StringVar(&a.flags.Telemetry.Metrics, "metrics", a.flags.Telemetry.Metrics, "metric exporter: none, stdout or prometheus")
	pf.StringVarP(&a.flags.Output, "output", "o", a.flags.Output, "output format: table, json or yaml")

	cmd.AddCommand(newSolveCommand(a))
	cmd.AddCommand(newHamiltonianCommand(a))
	cmd.AddCommand(newBenchCommand(a))

	return cmd
}

// problemFlags registers the instance flags on fs.
func (a *app) problemFlags(fs *pflag.FlagSet) {
	p := &a.flags.Problem
	fs.IntVarP(&p.N, "n", "n", p.N, "number of candidate items")
	fs.Int64Var(&p.Seed, "seed", p.Seed, "instance seed")
	fs.Float64SliceVar(&p.Risk, "risk", nil, "risk costs (comma separated, overrides generation)")
	fs.Float64SliceVar(&p.Distance, "distance", nil, "distance costs (comma separated, overrides generation)")
	fs.Float64Var(&p.Alpha, "alpha", p.Alpha, "risk weight")
	fs.Float64Var(&p.Beta, "beta", p.Beta, "distance weight")
	fs.Float64Var(&p.Penalty, "penalty", p.Penalty, "one-hot penalty")
}

// solveFlags registers the solver and noise flags on fs.
func (a *app) solveFlags(fs *pflag.FlagSet) {
	s := &a.flags.Solve
	fs.StringSliceVarP(&s.Methods, "methods", "m", s.Methods, "solvers: brute_force, greedy, vqe, qaoa")
	fs.IntVar(&s.Reps, "reps", s.Reps, "ansatz layers")
	fs.IntVar(&s.Shots, "shots", s.Shots, "samples per evaluation")
	fs.IntVar(&s.MaxIter, "max-iter", s.MaxIter, "optimizer budget (SPSA iterations, Nelder-Mead evaluations)")
	fs.StringVar(&s.Optimizer, "optimizer", s.Optimizer, "optimizer: spsa or nelder_mead")
	fs.Int64Var(&s.Seed, "solver-seed", s.Seed, "solver seed")
	fs.IntVar(&s.Workers, "workers", s.Workers, "exhaustive search workers, 0 for GOMAXPROCS")
	fs.BoolVar(&s.Heuristic, "heuristic-fallback", s.Heuristic, "allow the greedy extraction fallback")
	fs.BoolVar(&s.History, "history", s.History, "include optimizer history in json/yaml output")

	n := &a.flags.Noise
	fs.StringVar(&n.Preset, "noise", n.Preset, "noise preset: ideal, depolarizing, readout or combined")
	fs.Float64Var(&n.Rate, "noise-rate", n.Rate, "noise preset error rate")
}

// overrides copies one flag-bound field into the effective configuration.
var overrides = map[string]func(dst, src *Config){
	"log-format":         func(d, s *Config) { d.Log.Format = s.Log.Format },
	"log-level":          func(d, s *Config) { d.Log.Level = s.Log.Level },
	"telemetry":          func(d, s *Config) { d.Telemetry.Traces = s.Telemetry.Traces },
	"metrics":            func(d, s *Config) { d.Telemetry.Metrics = s.Telemetry.Metrics },
	"output":             func(d, s *Config) { d.Output = s.Output },
	"n":                  func(d, s *Config) { d.Problem.N = s.Problem.N },
	"seed":               func(d, s *Config) { d.Problem.Seed = s.Problem.Seed },
	"risk":               func(d, s *Config) { d.Problem.Risk = s.Problem.Risk },
	"distance":           func(d, s *Config) { d.Problem.Distance = s.Problem.Distance },
	"alpha":              func(d, s *Config) { d.Problem.Alpha = s.Problem.Alpha },
	"beta":               func(d, s *Config) { d.Problem.Beta = s.Problem.Beta },
	"penalty":            func(d, s *Config) { d.Problem.Penalty = s.Problem.Penalty },
	"methods":            func(d, s *Config) { d.Solve.Methods = s.Solve.Methods },
	"reps":               func(d, s *Config) { d.Solve.Reps = s.Solve.Reps },
	"shots":              func(d, s *Config) { d.Solve.Shots = s.Solve.Shots },
	"max-iter":           func(d, s *Config) { d.Solve.MaxIter = s.Solve.MaxIter },
	"optimizer":          func(d, s *Config) { d.Solve.Optimizer = s.Solve.Optimizer },
	"solver-seed":        func(d, s *Config) { d.Solve.Seed = s.Solve.Seed },
	"workers":            func(d, s *Config) { d.Solve.Workers = s.Solve.Workers },
	"heuristic-fallback": func(d, s *Config) { d.Solve.Heuristic = s.Solve.Heuristic },
	"history":            func(d, s *Config) { d.Solve.History = s.Solve.History },
	"noise":              func(d, s *Config) { d.Noise.Preset = s.Noise.Preset },
	"noise-rate":         func(d, s *Config) { d.Noise.Rate = s.Noise.Rate },
	"sizes":              func(d, s *Config) { d.Bench.Sizes = s.Bench.Sizes },
	"rates":              func(d, s *Config) { d.Bench.Rates = s.Bench.Rates },
	"trials":             func(d, s *Config) { d.Bench.Trials = s.Bench.Trials },
	"concurrency":        func(d, s *Config) { d.Bench.Concurrency = s.Bench.Concurrency },
}

// resolveConfig loads the file, if any, and applies every flag set on fs.
func (a *app) resolveConfig(fs *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	if a.cfgPath != "" {
		var err error
		if cfg, err = LoadConfig(a.cfgPath); err != nil {
			return cfg, err
		}
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&cfg, &a.flags)
		}
	})

	return cfg, cfg.Validate()
}

// setup resolves configuration, then installs the logger and telemetry.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.runID = uuid.NewString()

	logger, err := newLogger(a.stderr, cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger.With("run_id", a.runID)
	slog.SetDefault(a.logger)

	a.shutdown, err = telemetry.Init(cmd.Context(), telemetry.Config{
		ServiceName:    "aegis",
		ServiceVersion: version,
		RunID:          a.runID,
		TraceExporter:  cfg.Telemetry.Traces,
		MetricExporter: cfg.Telemetry.Metrics,
		Writer:         a.stderr,
	})
	if err != nil {
		return err
	}
	a.logger.Debug("configuration resolved", "command", cmd.Name(), "config", a.cfgPath)

	return nil
}

// close flushes telemetry.
func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}

	return a.shutdown(ctx)
}

func newLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q: must be text or json", cfg.Format)
	}
}

func execute(ctx context.Context) error {
	a := newApp(os.Stdout, os.Stderr)
	err := newRootCommand(a).ExecuteContext(ctx)
	if cerr := a.close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
		err = cerr
	}

	return err
}
