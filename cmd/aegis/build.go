package main

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/optim"
	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
	"github.com/katalvlaran/aegis/solver"
	"github.com/katalvlaran/aegis/tactical"
	"github.com/katalvlaran/aegis/variational"
)

// buildInstance generates the tactical instance described by cfg.
func buildInstance(cfg ProblemConfig) (*tactical.Problem, error) {
	opts := []tactical.Option{
		tactical.WithSeed(cfg.Seed),
		tactical.WithAlpha(cfg.Alpha),
		tactical.WithBeta(cfg.Beta),
		tactical.WithPenalty(cfg.Penalty),
	}
	if cfg.Risk != nil {
		opts = append(opts, tactical.WithRisk(cfg.Risk))
	}
	if cfg.Distance != nil {
		opts = append(opts, tactical.WithDistance(cfg.Distance))
	}

	return tactical.New(cfg.N, opts...)
}

// noiseModel maps a preset name and rate to a noise model.
func noiseModel(preset string, rate float64) (noise.Model, error) {
	switch preset {
	case "", "ideal":
		return noise.Ideal(), nil
	case "depolarizing":
		return noise.Depolarizing(rate, rate)
	case "readout":
		return noise.Readout(rate)
	case "combined":
		return noise.Combined(rate, rate)
	default:
		return noise.Model{}, fmt.Errorf("unknown noise preset %q", preset)
	}
}

func buildOptimizer(cfg SolveConfig, seed int64) optim.Optimizer {
	if cfg.Optimizer == "nelder_mead" {
		return optim.NelderMead{MaxEvaluations: cfg.MaxIter}
	}

	return optim.NewSPSA(optim.WithMaxIter(cfg.MaxIter), optim.WithSeed(seed))
}

// buildSolver returns the solver for method under model, seeded with seed.
func buildSolver(method string, cfg SolveConfig, model noise.Model, seed int64, logger *slog.Logger) (solver.Solver, error) {
	opts := func() []variational.Option {
		return []variational.Option{
			variational.WithReps(cfg.Reps),
			variational.WithShots(cfg.Shots),
			variational.WithOptimizer(buildOptimizer(cfg, rng.DeriveSeed(seed, 1))),
			variational.WithNoise(model),
			variational.WithSeed(seed),
			variational.WithHeuristicFallback(cfg.Heuristic),
			variational.WithLogger(logger),
		}
	}

	switch solver.Method(method) {
	case solver.MethodBruteForce:
		return solver.BruteForce{Workers: cfg.Workers}, nil
	case solver.MethodGreedy:
		return solver.Greedy{}, nil
	case solver.MethodVQE:
		return variational.NewVQE(opts()...), nil
	case solver.MethodQAOA:
		return variational.NewQAOA(opts()...), nil
	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}

// buildSolvers resolves every configured method.
func buildSolvers(cfg Config, logger *slog.Logger) ([]solver.Solver, error) {
	model, err := noiseModel(cfg.Noise.Preset, cfg.Noise.Rate)
	if err != nil {
		return nil, err
	}

	out := make([]solver.Solver, 0, len(cfg.Solve.Methods))
	for _, m := range cfg.Solve.Methods {
		s, err := buildSolver(m, cfg.Solve, model, cfg.Solve.Seed, logger)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// problemOf is a convenience for commands that only need the QUBO model.
func problemOf(cfg ProblemConfig) (*qubo.Problem, error) {
	inst, err := buildInstance(cfg)
	if err != nil {
		return nil, err
	}

	return inst.Model(), nil
}
