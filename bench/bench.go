// SPDX-License-Identifier: MIT
// Package: aegis/bench
//
// bench.go: batch runs across problem sizes and noise rates.
//
// Contract:
//   • Every (size, solver) or (rate, contender, trial) cell is an independent
//     Solve call; cells run in parallel up to WithConcurrency.
//   • Output order is input order, whatever the completion order.
//   • The first failing cell cancels the rest and its error is returned.
//
// Solvers passed to Scaling are shared between goroutines and must be safe
// for concurrent Solve calls. Sweep contenders build a fresh solver per cell.

package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
	"github.com/katalvlaran/aegis/solver"
	"github.com/katalvlaran/aegis/tactical"
)

// Row is one scaling measurement.
type Row struct {
	N         int            `json:"n" yaml:"n"`
	Method    solver.Method  `json:"method" yaml:"method"`
	Elapsed   time.Duration  `json:"elapsed" yaml:"elapsed"`
	Energy    float64        `json:"energy" yaml:"energy"`
	Bitstring qubo.Bitstring `json:"bitstring" yaml:"bitstring"`

	// Optimal is the exhaustive optimum, nil when N exceeds qubo.MaxExhaustiveN.
	Optimal qubo.Bitstring `json:"optimal,omitempty" yaml:"optimal,omitempty"`

	// Success reports Bitstring == Optimal.
	Success bool `json:"success" yaml:"success"`

	Repaired    bool      `json:"repaired,omitempty" yaml:"repaired,omitempty"`
	Degraded    bool      `json:"degraded,omitempty" yaml:"degraded,omitempty"`
	Convergence []float64 `json:"convergence,omitempty" yaml:"convergence,omitempty"`
}

// Point is one noise-sweep measurement.
type Point struct {
	Rate        float64       `json:"rate" yaml:"rate"`
	Method      solver.Method `json:"method" yaml:"method"`
	SuccessRate float64       `json:"success_rate" yaml:"success_rate"` // mean over trials
	Trials      int           `json:"trials" yaml:"trials"`
}

// Factory builds a solver for one noise model and trial seed.
type Factory func(m noise.Model, seed int64) solver.Solver

// Contender is a solver family compared in a noise sweep.
type Contender struct {
	Method solver.Method
	Build  Factory
}

// Scaling generates one seeded tactical instance per size and solves it with
// every solver. Rows are ordered by size, then by solver.
//
// Errors: tactical.ErrInvalidSize for a size < 1, the first Solve error,
// or ctx.Err().
func Scaling(ctx context.Context, sizes []int, solvers []solver.Solver, opts ...Option) ([]Row, error) {
	cfg := newConfig(opts)

	problems := make([]*qubo.Problem, len(sizes))
	optima := make([]qubo.Bitstring, len(sizes))
	for i, n := range sizes {
		inst, err := tactical.New(n, tactical.WithSeed(rng.DeriveSeed(cfg.seed, uint64(n))))
		if err != nil {
			return nil, fmt.Errorf("Scaling: %w", err)
		}
		problems[i] = inst.Model()

		opt, _, err := problems[i].OptimalSolutionContext(ctx, 0)
		switch {
		case errors.Is(err, qubo.ErrProblemTooLarge):
			cfg.logger.Debug("optimum not computed", "n", n)
		case err != nil:
			return nil, fmt.Errorf("Scaling: n=%d: %w", n, err)
		default:
			optima[i] = opt
		}
	}

	rows := make([]Row, len(sizes)*len(solvers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.limit)
	for i := range sizes {
		i := i
		for j, s := range solvers {
			j, s := j, s
			g.Go(func() error {
				res, err := s.Solve(gctx, problems[i])
				if err != nil {
					return fmt.Errorf("Scaling: n=%d %s: %w", sizes[i], s.Method(), err)
				}
				row := Row{
					N:           sizes[i],
					Method:      res.Method,
					Elapsed:     res.Elapsed,
					Energy:      res.Energy,
					Bitstring:   res.Bitstring,
					Optimal:     optima[i],
					Success:     optima[i] != nil && res.Bitstring.String() == optima[i].String(),
					Repaired:    res.Repaired,
					Degraded:    res.Degraded,
					Convergence: Convergence(res),
				}
				rows[i*len(solvers)+j] = row
				cfg.logger.Debug("scaling cell done",
					"n", row.N, "method", row.Method, "elapsed", row.Elapsed, "success", row.Success)

				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

// NoiseSweep solves p under the noise model of every rate with every
// contender, WithTrials times each, and reports the mean SuccessRate against
// the exhaustive optimum. Trial t uses the same seed at every rate. Points
// are ordered by rate, then by contender.
//
// Errors: qubo.ErrProblemTooLarge, a preset error for an invalid rate, the
// first Solve error, or ctx.Err().
func NoiseSweep(ctx context.Context, p *qubo.Problem, rates []float64, contenders []Contender, opts ...Option) ([]Point, error) {
	if p == nil {
		return nil, fmt.Errorf("NoiseSweep: %w", solver.ErrNilProblem)
	}
	cfg := newConfig(opts)

	optimum, _, err := p.OptimalSolutionContext(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("NoiseSweep: %w", err)
	}

	models := make([]noise.Model, len(rates))
	for i, rate := range rates {
		if models[i], err = cfg.preset(rate); err != nil {
			return nil, fmt.Errorf("NoiseSweep: rate=%g: %w", rate, err)
		}
	}

	// scores[i][j][t]: rate i, contender j, trial t.
	scores := make([][][]float64, len(rates))
	for i := range scores {
		scores[i] = make([][]float64, len(contenders))
		for j := range scores[i] {
			scores[i][j] = make([]float64, cfg.trials)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.limit)
	for i := range rates {
		i := i
		for j, c := range contenders {
			j, c := j, c
			for t := 0; t < cfg.trials; t++ {
				t := t
				g.Go(func() error {
					s := c.Build(models[i], rng.DeriveSeed(cfg.seed, uint64(t+1)))
					res, err := s.Solve(gctx, p)
					if err != nil {
						return fmt.Errorf("NoiseSweep: rate=%g %s trial %d: %w", rates[i], c.Method, t, err)
					}
					scores[i][j][t] = SuccessRate(res, optimum)
					cfg.logger.Debug("sweep cell done",
						"rate", rates[i], "method", c.Method, "trial", t, "success_rate", scores[i][j][t])

					return nil
				})
			}
		}
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(rates)*len(contenders))
	for i, rate := range rates {
		for j, c := range contenders {
			points = append(points, Point{
				Rate:        rate,
				Method:      c.Method,
				SuccessRate: stat.Mean(scores[i][j], nil),
				Trials:      cfg.trials,
			})
		}
	}

	return points, nil
}

// SuccessRate is the fraction of res.Counts on optimal. Without counts it
// is 1 when res.Bitstring equals optimal and 0 otherwise.
func SuccessRate(res *solver.Result, optimal qubo.Bitstring) float64 {
	key := optimal.String()
	if total := res.Counts.Total(); total > 0 {
		return float64(res.Counts[key]) / float64(total)
	}
	if res.Bitstring.String() == key {
		return 1
	}

	return 0
}

// Convergence returns the energy of every history snapshot in order, or nil
// for a result without history.
func Convergence(res *solver.Result) []float64 {
	if len(res.History) == 0 {
		return nil
	}
	out := make([]float64, len(res.History))
	for i, s := range res.History {
		out[i] = s.Energy
	}

	return out
}
