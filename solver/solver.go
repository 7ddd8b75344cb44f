// Package solver defines the common Result record and Solver contract, and
// the two classical solvers: exhaustive search and the greedy per-item
// choice.
//
// Every solver is synchronous. Solve honours ctx cancellation, opens an
// OpenTelemetry span "solver.<method>.Solve" and records duration metrics.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/aegis/internal/telemetry"
	"github.com/katalvlaran/aegis/qubo"
)

// ErrNilProblem is returned when Solve receives a nil problem.
var ErrNilProblem = errors.New("solver: nil problem")

// Solver produces a Result for a problem.
type Solver interface {
	Method() Method
	Solve(ctx context.Context, p *qubo.Problem) (*Result, error)
}

// BruteForce is the exhaustive ground-truth solver.
type BruteForce struct {
	// Workers partitions the scan; ≤ 0 selects GOMAXPROCS, 1 is sequential.
	// The answer does not depend on Workers.
	Workers int
}

var (
	_ Solver = BruteForce{}
	_ Solver = Greedy{}
)

// Method returns MethodBruteForce.
func (BruteForce) Method() Method { return MethodBruteForce }

// Solve returns the minimum-energy bitstring over all 2^N assignments.
// Errors are those of qubo.Problem.OptimalSolutionContext.
func (b BruteForce) Solve(ctx context.Context, p *qubo.Problem) (res *Result, err error) {
	if p == nil {
		return nil, fmt.Errorf("BruteForce.Solve: %w", ErrNilProblem)
	}

	start := time.Now()
	ctx, span := telemetry.StartSolve(ctx, string(MethodBruteForce), p.N())
	defer func() { telemetry.EndSolve(ctx, span, string(MethodBruteForce), start, err) }()

	x, energy, err := p.OptimalSolutionContext(ctx, b.Workers)
	if err != nil {
		return nil, fmt.Errorf("BruteForce.Solve: %w", err)
	}

	return &Result{
		Bitstring: x,
		Energy:    energy,
		Elapsed:   time.Since(start),
		Method:    MethodBruteForce,
	}, nil
}

// Greedy selects the single item with the lowest linear cost.
type Greedy struct{}

// Method returns MethodGreedy.
func (Greedy) Method() Method { return MethodGreedy }

// Solve returns the greedy one-hot bitstring and its energy. It never
// violates the one-hot constraint.
func (Greedy) Solve(ctx context.Context, p *qubo.Problem) (res *Result, err error) {
	if p == nil {
		return nil, fmt.Errorf("Greedy.Solve: %w", ErrNilProblem)
	}

	start := time.Now()
	ctx, span := telemetry.StartSolve(ctx, string(MethodGreedy), p.N())
	defer func() { telemetry.EndSolve(ctx, span, string(MethodGreedy), start, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	x := GreedyBitstring(p)
	energy, err := p.Evaluate(x)
	if err != nil {
		return nil, fmt.Errorf("Greedy.Solve: %w", err)
	}

	return &Result{
		Bitstring: x,
		Energy:    energy,
		Elapsed:   time.Since(start),
		Method:    MethodGreedy,
	}, nil
}

// GreedyIndex returns argmin_i (α·R_i + β·D_i), ties to the lowest index.
// Complexity: O(N).
func GreedyIndex(p *qubo.Problem) int {
	best := 0
	for i := 1; i < p.N(); i++ {
		if p.LinearCost(i) < p.LinearCost(best) {
			best = i
		}
	}

	return best
}

// GreedyBitstring returns the one-hot bitstring selecting GreedyIndex(p).
func GreedyBitstring(p *qubo.Problem) qubo.Bitstring {
	return qubo.OneHot(p.N(), GreedyIndex(p))
}
