package optim

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// DefaultMaxEvaluations bounds NelderMead objective calls.
const DefaultMaxEvaluations = 400

// NelderMead minimises with gonum's downhill simplex.
type NelderMead struct {
	// MaxEvaluations bounds objective calls; ≤ 0 selects DefaultMaxEvaluations.
	MaxEvaluations int

	// InitialSize is the simplex edge length; 0 lets gonum choose.
	InitialSize float64
}

// Name returns "nelder_mead".
func (NelderMead) Name() string { return "nelder_mead" }

// Minimize runs the simplex until gonum's function convergence test passes,
// the evaluation budget is spent, ctx is cancelled or obj fails.
func (nm NelderMead) Minimize(ctx context.Context, obj Objective, x0 []float64) (*Result, error) {
	if len(x0) == 0 {
		return nil, fmt.Errorf("NelderMead.Minimize: %w", ErrEmptyStart)
	}
	maxEval := nm.MaxEvaluations
	if maxEval <= 0 {
		maxEval = DefaultMaxEvaluations
	}

	var (
		firstErr error
		evals    int
	)
	stop := func() bool {
		if firstErr == nil {
			firstErr = ctx.Err()
		}
		return firstErr != nil
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if stop() {
				return math.Inf(1)
			}
			f, err := obj(append([]float64(nil), x...))
			evals++
			if err != nil {
				firstErr = err
				return math.Inf(1)
			}
			return f
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEval,
		Converger: &abortConverger{
			inner: &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 100},
			stop:  stop,
		},
	}

	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{SimplexSize: nm.InitialSize})
	if firstErr != nil {
		return nil, fmt.Errorf("NelderMead.Minimize: %w", firstErr)
	}
	if err != nil {
		return nil, fmt.Errorf("NelderMead.Minimize: %w", err)
	}
	if evals == 0 {
		return nil, fmt.Errorf("NelderMead.Minimize: %w", ErrNoEvaluations)
	}

	return &Result{
		X:           res.X,
		F:           res.F,
		Evaluations: evals,
		Iterations:  res.MajorIterations,
		Status:      res.Status.String(),
	}, nil
}

// abortConverger ends the run as soon as stop reports a pending error and
// otherwise defers to inner.
type abortConverger struct {
	inner optimize.Converger
	stop  func() bool
}

func (c *abortConverger) Init(dim int) { c.inner.Init(dim) }

func (c *abortConverger) Converged(loc *optimize.Location) optimize.Status {
	if c.stop() {
		return optimize.Failure
	}

	return c.inner.Converged(loc)
}
