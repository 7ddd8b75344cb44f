// SPDX-License-Identifier: MIT
// Package: aegis/variational
//
// options.go: functional options for the VQE and QAOA solvers.
//
// Contract:
//   • Constructors panic on nonsensical values (reps < 1, nil collaborators).
//   • Solve never panics on user input.

package variational

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/optim"
	"github.com/katalvlaran/aegis/quantum"
)

// DefaultShots is the sample count for sampler-style evaluation and for the
// sampling extraction tier. Exact-distribution tiers scale probabilities by
// the same number to build Counts.
const DefaultShots = 1024

// Option customizes a Solver.
type Option func(*Solver)

// WithReps sets the ansatz layer count. Panics if reps < 1.
func WithReps(reps int) Option {
	if reps < 1 {
		panic(fmt.Sprintf("variational: WithReps: reps must be ≥ 1, got %d", reps))
	}
	return func(s *Solver) { s.reps = reps }
}

// WithShots sets the sample count. Panics if shots < 1.
func WithShots(shots int) Option {
	if shots < 1 {
		panic(fmt.Sprintf("variational: WithShots: shots must be ≥ 1, got %d", shots))
	}
	return func(s *Solver) { s.shots = shots }
}

// WithOptimizer replaces the default SPSA. Panics on nil.
func WithOptimizer(o optim.Optimizer) Option {
	if o == nil {
		panic("variational: WithOptimizer(nil)")
	}
	return func(s *Solver) { s.optimizer = o }
}

// WithOracleFactory replaces SimulatorFactory. Panics on nil.
func WithOracleFactory(f OracleFactory) Option {
	if f == nil {
		panic("variational: WithOracleFactory(nil)")
	}
	return func(s *Solver) { s.factory = f }
}

// WithOracle makes every Solve use o. Panics on nil.
func WithOracle(o Oracle) Option {
	if o == nil {
		panic("variational: WithOracle(nil)")
	}
	return WithOracleFactory(func(noise.Model, int64) (Oracle, error) { return o, nil })
}

// WithNoise sets the model handed to the oracle factory. It is not
// validated here; an invalid model fails oracle construction.
func WithNoise(m noise.Model) Option {
	return func(s *Solver) { s.noise = m }
}

// WithSeed seeds the initial point, the oracle and the default optimizer.
// 0 selects the rng default.
func WithSeed(seed int64) Option {
	return func(s *Solver) { s.seed = seed }
}

// WithInitialPoint fixes the starting parameters. Its length must equal the
// ansatz parameter count, otherwise Solve returns ErrInitialPoint.
func WithInitialPoint(x0 []float64) Option {
	x := append([]float64(nil), x0...)
	return func(s *Solver) { s.initial = x }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("variational: WithLogger(nil)")
	}
	return func(s *Solver) { s.logger = l }
}

// WithHeuristicFallback enables or disables the final greedy extraction
// tier. Enabled by default; when disabled and every other tier fails, Solve
// returns ErrOracleUnavailable.
func WithHeuristicFallback(enabled bool) Option {
	return func(s *Solver) { s.heuristic = enabled }
}

func newSolver(m method, opts []Option) *Solver {
	s := &Solver{
		method:    m,
		reps:      quantum.DefaultReps,
		shots:     DefaultShots,
		factory:   SimulatorFactory,
		noise:     noise.Ideal(),
		heuristic: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}
