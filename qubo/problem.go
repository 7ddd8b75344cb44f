// SPDX-License-Identifier: MIT
// Package: aegis/qubo
//
// problem.go: the immutable QUBO instance.
//
// Contract:
//   • len(risk) == len(distance) ≥ 1, all values finite.
//   • Costs are normalised on construction; the caller's slices are copied.
//   • Q is symmetric: Q[i][i] = α·R_i + β·D_i − P, Q[i][j] = 2P for i ≠ j.
//   • Evaluate(x) = Σ_i (α·R_i + β·D_i)·x_i + P·(Σx − 1)² and equals
//     Σ_i Q_ii x_i + Σ_{i<j} Q_ij x_i x_j + P for every binary x.
//
// Complexity:
//   • New      O(N²) time and memory.
//   • Evaluate O(N).

package qubo

import (
	"fmt"
	"math"

	"github.com/katalvlaran/aegis/matrix"
)

// Problem is a one-hot selection instance. It is immutable after New and
// safe for concurrent use.
type Problem struct {
	n       int
	alpha   float64
	beta    float64
	penalty float64

	risk     []float64 // normalised risk R
	distance []float64 // normalised distance D
	linear   []float64 // α·R_i + β·D_i
	q        *matrix.Dense
}

// New validates and normalises the cost arrays and builds the coefficient
// matrix Q.
//
// Errors:
//   - ErrShapeMismatch if the arrays differ in length.
//   - ErrEmptyProblem if they are empty.
//   - ErrNonFinite if any value is NaN or ±Inf.
func New(risk, distance []float64, opts ...Option) (*Problem, error) {
	if len(risk) != len(distance) {
		return nil, fmt.Errorf("New: risk has %d items, distance has %d: %w",
			len(risk), len(distance), ErrShapeMismatch)
	}
	if len(risk) == 0 {
		return nil, fmt.Errorf("New: %w", ErrEmptyProblem)
	}
	if err := checkFinite("risk", risk); err != nil {
		return nil, err
	}
	if err := checkFinite("distance", distance); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(risk)
	p := &Problem{
		n:        n,
		alpha:    cfg.alpha,
		beta:     cfg.beta,
		penalty:  cfg.penalty,
		risk:     Normalize(risk),
		distance: Normalize(distance),
		linear:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p.linear[i] = p.alpha*p.risk[i] + p.beta*p.distance[i]
	}

	q, err := matrix.NewSymmetric(n, func(i, j int) float64 {
		if i == j {
			return p.linear[i] - p.penalty
		}

		return 2 * p.penalty
	})
	if err != nil {
		return nil, fmt.Errorf("New: build Q: %w", err)
	}
	// Finite weights can still overflow a cell.
	if err = matrix.ValidateFinite(q); err != nil {
		return nil, fmt.Errorf("New: Q: %w: %w", ErrNonFinite, err)
	}
	p.q = q

	return p, nil
}

func checkFinite(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("New: %s[%d]=%v: %w", name, i, v, ErrNonFinite)
		}
	}

	return nil
}

// N returns the number of items.
func (p *Problem) N() int { return p.n }

// Alpha returns the risk weight.
func (p *Problem) Alpha() float64 { return p.alpha }

// Beta returns the distance weight.
func (p *Problem) Beta() float64 { return p.beta }

// Penalty returns the one-hot penalty.
func (p *Problem) Penalty() float64 { return p.penalty }

// NormalizedRisk returns a copy of the normalised risk vector.
func (p *Problem) NormalizedRisk() []float64 { return append([]float64(nil), p.risk...) }

// NormalizedDistance returns a copy of the normalised distance vector.
func (p *Problem) NormalizedDistance() []float64 { return append([]float64(nil), p.distance...) }

// LinearCosts returns a copy of the per-item costs α·R_i + β·D_i.
func (p *Problem) LinearCosts() []float64 { return append([]float64(nil), p.linear...) }

// LinearCost returns α·R_i + β·D_i. Panics if i is out of range, like a
// slice index.
func (p *Problem) LinearCost(i int) float64 { return p.linear[i] }

// Q returns an independent copy of the coefficient matrix.
func (p *Problem) Q() *matrix.Dense { return p.q.Clone().(*matrix.Dense) }

// QAt returns Q[i][j].
func (p *Problem) QAt(i, j int) (float64, error) { return p.q.At(i, j) }

// Evaluate returns the objective for assignment x.
//
// Errors:
//   - ErrShapeMismatch if len(x) != N.
//   - ErrNonBinary if an entry is neither 0 nor 1.
func (p *Problem) Evaluate(x Bitstring) (float64, error) {
	if len(x) != p.n {
		return 0, fmt.Errorf("Evaluate: len(x)=%d, N=%d: %w", len(x), p.n, ErrShapeMismatch)
	}

	var (
		cost float64
		ones int
	)
	for i, b := range x {
		switch b {
		case 0:
		case 1:
			cost += p.linear[i]
			ones++
		default:
			return 0, fmt.Errorf("Evaluate: x[%d]=%d: %w", i, b, ErrNonBinary)
		}
	}

	return cost + p.constraintPenalty(ones), nil
}

// constraintPenalty is P·(ones − 1)².
func (p *Problem) constraintPenalty(ones int) float64 {
	d := float64(ones - 1)

	return p.penalty * d * d
}
