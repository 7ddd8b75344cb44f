// Package optim provides black-box minimisers for variational parameters.
//
// An Optimizer repeatedly calls an Objective and returns its terminal point.
// The caller observes individual evaluations by wrapping the Objective; the
// optimizers themselves keep no history.
//
// Two implementations are provided:
//   - SPSA: simultaneous-perturbation stochastic approximation, two
//     evaluations per iteration regardless of dimension, seeded perturbations.
//   - NelderMead: the gonum simplex method, a deterministic gradient-free
//     alternative.
package optim

import (
	"context"
	"errors"
)

var (
	// ErrNoEvaluations is returned when the objective was never evaluated.
	ErrNoEvaluations = errors.New("optim: objective was never evaluated")

	// ErrEmptyStart is returned when the initial point has no coordinates.
	ErrEmptyStart = errors.New("optim: empty initial point")
)

// Objective maps parameters to a scalar to minimise. An error aborts the run.
type Objective func(x []float64) (float64, error)

// Result is the terminal state of a run.
type Result struct {
	X           []float64 // terminal point
	F           float64   // objective at X
	Evaluations int       // objective calls
	Iterations  int       // major iterations
	Status      string    // termination reason
}

// Optimizer minimises an Objective from x0. Implementations must not retain
// x0 or the slices passed to obj.
type Optimizer interface {
	Name() string
	Minimize(ctx context.Context, obj Objective, x0 []float64) (*Result, error)
}
