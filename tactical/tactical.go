// Package tactical generates reproducible one-hot selection instances.
//
// A Problem draws any cost array the caller omits uniformly from
// [MinCost, MaxCost) using a seeded stream: risk first, then distance. The
// same size, seed and supplied arrays always yield the same qubo.Problem,
// which keeps benchmark runs comparable.
package tactical

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
)

// Cost draw bounds.
const (
	MinCost = 0.1
	MaxCost = 1.0
)

// ErrInvalidSize is returned when n < 1.
var ErrInvalidSize = errors.New("tactical: instance size must be at least 1")

// Option customizes instance generation.
type Option func(*config)

type config struct {
	risk     []float64
	distance []float64
	seed     int64
	rnd      *rand.Rand
	opts     []qubo.Option
}

// WithRisk supplies the risk costs instead of drawing them.
func WithRisk(risk []float64) Option {
	return func(c *config) { c.risk = append([]float64(nil), risk...) }
}

// WithDistance supplies the distance costs instead of drawing them.
func WithDistance(distance []float64) Option {
	return func(c *config) { c.distance = append([]float64(nil), distance...) }
}

// WithSeed seeds the draw stream; 0 selects rng.DefaultSeed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithRand draws from r instead of a seeded stream. r is advanced.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("tactical: WithRand(nil)")
	}
	return func(c *config) { c.rnd = r }
}

// WithAlpha forwards the risk weight to the QUBO model.
func WithAlpha(alpha float64) Option {
	o := qubo.WithAlpha(alpha)
	return func(c *config) { c.opts = append(c.opts, o) }
}

// WithBeta forwards the distance weight to the QUBO model.
func WithBeta(beta float64) Option {
	o := qubo.WithBeta(beta)
	return func(c *config) { c.opts = append(c.opts, o) }
}

// WithPenalty forwards the one-hot penalty to the QUBO model.
func WithPenalty(penalty float64) Option {
	o := qubo.WithPenalty(penalty)
	return func(c *config) { c.opts = append(c.opts, o) }
}

// Problem is a generated instance together with its raw costs.
type Problem struct {
	risk     []float64
	distance []float64
	model    *qubo.Problem
}

// New builds an instance of n items.
//
// Errors: ErrInvalidSize for n < 1; qubo.ErrShapeMismatch when a supplied
// array's length differs from n; any qubo.New error.
func New(n int, opts ...Option) (*Problem, error) {
	if n < 1 {
		return nil, fmt.Errorf("New: n=%d: %w", n, ErrInvalidSize)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	r := cfg.rnd
	if r == nil {
		r = rng.New(cfg.seed)
	}
	if cfg.risk == nil {
		cfg.risk = rng.Uniform(r, n, MinCost, MaxCost)
	}
	if cfg.distance == nil {
		cfg.distance = rng.Uniform(r, n, MinCost, MaxCost)
	}
	if len(cfg.risk) != n || len(cfg.distance) != n {
		return nil, fmt.Errorf("New: n=%d, risk=%d, distance=%d: %w",
			n, len(cfg.risk), len(cfg.distance), qubo.ErrShapeMismatch)
	}

	model, err := qubo.New(cfg.risk, cfg.distance, cfg.opts...)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	return &Problem{risk: cfg.risk, distance: cfg.distance, model: model}, nil
}

// Model returns the owned QUBO model.
func (p *Problem) Model() *qubo.Problem { return p.model }

// N returns the number of items.
func (p *Problem) N() int { return p.model.N() }

// RiskCosts returns a copy of the raw (unnormalised) risk costs.
func (p *Problem) RiskCosts() []float64 { return append([]float64(nil), p.risk...) }

// DistanceCosts returns a copy of the raw (unnormalised) distance costs.
func (p *Problem) DistanceCosts() []float64 { return append([]float64(nil), p.distance...) }

// OptimalSolution delegates to the model's exhaustive search.
func (p *Problem) OptimalSolution() (qubo.Bitstring, float64, error) {
	return p.model.OptimalSolution()
}
