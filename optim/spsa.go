package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/aegis/rng"
)

// SPSA defaults. The gain sequences are a_k = A0/(k+1+Stability)^Alpha and
// c_k = C0/(k+1)^Gamma.
const (
	DefaultMaxIter   = 200
	DefaultA0        = 0.2
	DefaultC0        = 0.1
	DefaultStability = 10.0
	DefaultAlpha     = 0.602
	DefaultGamma     = 0.101
)

// SPSAOption customizes SPSA.
type SPSAOption func(*SPSA)

// WithMaxIter sets the iteration budget. Panics if n < 1.
func WithMaxIter(n int) SPSAOption {
	if n < 1 {
		panic(fmt.Sprintf("optim: WithMaxIter: n must be ≥ 1, got %d", n))
	}
	return func(s *SPSA) { s.maxIter = n }
}

// WithSeed seeds the perturbation stream; 0 selects rng.DefaultSeed.
func WithSeed(seed int64) SPSAOption {
	return func(s *SPSA) { s.seed = seed }
}

// WithGains sets the step and perturbation magnitudes. Panics unless both
// are positive and finite.
func WithGains(a0, c0 float64) SPSAOption {
	if !(a0 > 0) || !(c0 > 0) || math.IsInf(a0, 0) || math.IsInf(c0, 0) {
		panic(fmt.Sprintf("optim: WithGains: gains must be positive, got %v, %v", a0, c0))
	}
	return func(s *SPSA) {
		s.a0 = a0
		s.c0 = c0
	}
}

// SPSA is the simultaneous-perturbation stochastic approximation minimiser.
// Each Minimize call starts a fresh perturbation stream from the seed, so
// repeated runs are identical.
type SPSA struct {
	maxIter int
	seed    int64
	a0, c0  float64
}

// NewSPSA returns an SPSA optimizer with defaults overridden by opts.
func NewSPSA(opts ...SPSAOption) *SPSA {
	s := &SPSA{maxIter: DefaultMaxIter, a0: DefaultA0, c0: DefaultC0}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns "spsa".
func (s *SPSA) Name() string { return "spsa" }

// MaxIter returns the iteration budget.
func (s *SPSA) MaxIter() int { return s.maxIter }

// Minimize runs maxIter iterations of two evaluations each, then evaluates
// the terminal point once.
func (s *SPSA) Minimize(ctx context.Context, obj Objective, x0 []float64) (*Result, error) {
	dim := len(x0)
	if dim == 0 {
		return nil, fmt.Errorf("SPSA.Minimize: %w", ErrEmptyStart)
	}

	r := rng.New(s.seed)
	x := append([]float64(nil), x0...)
	delta := make([]float64, dim)
	plus := make([]float64, dim)
	minus := make([]float64, dim)
	evals := 0

	var (
		k      int
		ak, ck float64
		fp, fm float64
		err    error
	)
	for k = 0; k < s.maxIter; k++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		ak = s.a0 / math.Pow(float64(k+1)+DefaultStability, DefaultAlpha)
		ck = s.c0 / math.Pow(float64(k+1), DefaultGamma)
		for i := range delta {
			if r.Intn(2) == 0 {
				delta[i] = -1
			} else {
				delta[i] = 1
			}
			plus[i] = x[i] + ck*delta[i]
			minus[i] = x[i] - ck*delta[i]
		}

		if fp, err = obj(plus); err != nil {
			return nil, fmt.Errorf("SPSA.Minimize: iteration %d: %w", k+1, err)
		}
		if fm, err = obj(minus); err != nil {
			return nil, fmt.Errorf("SPSA.Minimize: iteration %d: %w", k+1, err)
		}
		evals += 2

		g := (fp - fm) / (2 * ck)
		for i := range x {
			x[i] -= ak * g / delta[i]
		}
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	f, err := obj(append([]float64(nil), x...))
	if err != nil {
		return nil, fmt.Errorf("SPSA.Minimize: final point: %w", err)
	}
	evals++

	return &Result{
		X:           x,
		F:           f,
		Evaluations: evals,
		Iterations:  k,
		Status:      "IterationLimit",
	}, nil
}
