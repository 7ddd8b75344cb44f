// SPDX-License-Identifier: MIT
// Package: aegis/bench
//
// options.go: functional options shared by Scaling and NoiseSweep.

package bench

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/rng"
)

// DefaultTrials is the number of seeded repetitions per noise-sweep point.
const DefaultTrials = 3

// Preset turns a sweep rate into a noise model.
type Preset func(rate float64) (noise.Model, error)

// CombinedPreset applies rate to both gate and readout error.
func CombinedPreset(rate float64) (noise.Model, error) { return noise.Combined(rate, rate) }

// DepolarizingPreset applies rate to gate and measurement error.
func DepolarizingPreset(rate float64) (noise.Model, error) { return noise.Depolarizing(rate, rate) }

// ReadoutPreset applies rate to readout only.
func ReadoutPreset(rate float64) (noise.Model, error) { return noise.Readout(rate) }

// Option customizes a benchmark run.
type Option func(*config)

type config struct {
	logger *slog.Logger
	limit  int
	seed   int64
	trials int
	preset Preset
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
		limit:  runtime.GOMAXPROCS(0),
		seed:   rng.DefaultSeed,
		trials: DefaultTrials,
		preset: CombinedPreset,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("bench: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithConcurrency bounds the number of solver invocations in flight.
// Panics if limit < 1.
func WithConcurrency(limit int) Option {
	if limit < 1 {
		panic(fmt.Sprintf("bench: WithConcurrency: limit must be ≥ 1, got %d", limit))
	}
	return func(c *config) { c.limit = limit }
}

// WithSeed sets the root seed for instances and trials.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithTrials sets the repetitions per sweep point. Panics if n < 1.
func WithTrials(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("bench: WithTrials: n must be ≥ 1, got %d", n))
	}
	return func(c *config) { c.trials = n }
}

// WithPreset selects how a sweep rate maps to a noise model. Panics on nil.
func WithPreset(p Preset) Option {
	if p == nil {
		panic("bench: WithPreset(nil)")
	}
	return func(c *config) { c.preset = p }
}
