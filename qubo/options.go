// SPDX-License-Identifier: MIT
// Package: aegis/qubo
//
// options.go: functional options for Problem construction.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs
//     (negative or non-finite weights). New itself never panics.
//   • Defaults: α = β = 1, P = 10.

package qubo

import (
	"fmt"
	"math"
)

// Defaults - single source of truth for zero-option behaviour.
const (
	// DefaultAlpha weights the normalised risk axis.
	DefaultAlpha = 1.0

	// DefaultBeta weights the normalised distance axis.
	DefaultBeta = 1.0

	// DefaultPenalty enforces the one-hot constraint. With both axes in [0,1]
	// and unit weights the achievable linear cost range is at most 2.
	DefaultPenalty = 10.0
)

// Option customizes a Problem before Q is built.
type Option func(*config)

// config is the resolved option set.
type config struct {
	alpha   float64
	beta    float64
	penalty float64
}

func defaultConfig() config {
	return config{alpha: DefaultAlpha, beta: DefaultBeta, penalty: DefaultPenalty}
}

// mustNonNegative panics with a tagged message when v is negative or non-finite.
func mustNonNegative(tag string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		panic(fmt.Sprintf("qubo: %s: value must be finite and non-negative, got %v", tag, v))
	}
}

// WithAlpha sets the risk weight α ≥ 0. Panics on negative or non-finite α.
func WithAlpha(alpha float64) Option {
	mustNonNegative("WithAlpha", alpha)
	return func(c *config) { c.alpha = alpha }
}

// WithBeta sets the distance weight β ≥ 0. Panics on negative or non-finite β.
func WithBeta(beta float64) Option {
	mustNonNegative("WithBeta", beta)
	return func(c *config) { c.beta = beta }
}

// WithWeights sets α and β together.
func WithWeights(alpha, beta float64) Option {
	mustNonNegative("WithWeights", alpha)
	mustNonNegative("WithWeights", beta)
	return func(c *config) {
		c.alpha = alpha
		c.beta = beta
	}
}

// WithPenalty sets the one-hot penalty P ≥ 0. P should exceed the achievable
// linear cost range; P == 0 is accepted and yields an unconstrained model.
// Panics on negative or non-finite P.
func WithPenalty(penalty float64) Option {
	mustNonNegative("WithPenalty", penalty)
	return func(c *config) { c.penalty = penalty }
}
