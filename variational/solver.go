package variational

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/aegis/internal/telemetry"
	"github.com/katalvlaran/aegis/ising"
	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/optim"
	"github.com/katalvlaran/aegis/quantum"
	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
	"github.com/katalvlaran/aegis/solver"
)

// Seed streams derived from the solver seed.
const (
	streamInitialPoint uint64 = iota + 1
	streamOracle
	streamOptimizer
)

type style uint8

const (
	styleEstimator style = iota
	styleSampler
)

// method fixes the variant: its tag, query style and ansatz family.
type method struct {
	name  solver.Method
	style style
	build func(p *qubo.Problem, h *ising.Hamiltonian, reps int) (quantum.Ansatz, error)
}

var (
	vqeMethod = method{
		name:  solver.MethodVQE,
		style: styleEstimator,
		build: func(p *qubo.Problem, _ *ising.Hamiltonian, reps int) (quantum.Ansatz, error) {
			a, err := quantum.NewRealAmplitudes(p.N(), reps)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	}
	qaoaMethod = method{
		name:  solver.MethodQAOA,
		style: styleSampler,
		build: func(_ *qubo.Problem, h *ising.Hamiltonian, reps int) (quantum.Ansatz, error) {
			a, err := quantum.NewQAOA(h, reps)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	}
)

// Solver is a configured VQE or QAOA solver. It holds configuration only;
// every Solve call owns its history and intermediate state, so one Solver may
// be used from several goroutines when its optimizer and oracle factory are
// themselves safe for that.
type Solver struct {
	method    method
	reps      int
	shots     int
	optimizer optim.Optimizer
	factory   OracleFactory
	noise     noise.Model
	seed      int64
	initial   []float64
	logger    *slog.Logger
	heuristic bool
}

var _ solver.Solver = (*Solver)(nil)

// NewVQE returns the estimator-style solver with a RealAmplitudes ansatz.
func NewVQE(opts ...Option) *Solver { return newSolver(vqeMethod, opts) }

// NewQAOA returns the sampler-style solver with a QAOA ansatz.
func NewQAOA(opts ...Option) *Solver { return newSolver(qaoaMethod, opts) }

// Method returns MethodVQE or MethodQAOA.
func (s *Solver) Method() solver.Method { return s.method.name }

// Solve runs the variational loop without a callback.
func (s *Solver) Solve(ctx context.Context, p *qubo.Problem) (*solver.Result, error) {
	return s.SolveWithCallback(ctx, p, nil)
}

// SolveWithCallback runs the variational loop; cb, if non-nil, is invoked
// once per objective evaluation after the snapshot is recorded.
//
// Errors:
//   - solver.ErrNilProblem for a nil problem.
//   - ErrInitialPoint if WithInitialPoint does not fit the ansatz.
//   - ErrOracleUnavailable if every tier fails with the heuristic disabled.
//   - ctx.Err() on cancellation.
func (s *Solver) SolveWithCallback(ctx context.Context, p *qubo.Problem, cb solver.Callback) (res *solver.Result, err error) {
	name := string(s.method.name)
	if p == nil {
		return nil, fmt.Errorf("%s.Solve: %w", name, solver.ErrNilProblem)
	}

	start := time.Now()
	ctx, span := telemetry.StartSolve(ctx, name, p.N())
	defer func() {
		if res != nil {
			annotate(span, res)
		}
		telemetry.EndSolve(ctx, span, name, start, err)
	}()

	h, err := ising.FromQUBO(p)
	if err != nil {
		return nil, fmt.Errorf("%s.Solve: %w", name, err)
	}

	r := &run{
		s:      s,
		p:      p,
		h:      h,
		cb:     cb,
		logger: s.logger.With("method", name, "n", p.N()),
	}
	if err = r.optimize(ctx); err != nil {
		return nil, fmt.Errorf("%s.Solve: %w", name, err)
	}

	ext, err := r.extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s.Solve: %w", name, err)
	}
	telemetry.RecordTier(ctx, name, ext.tier)

	bits, repaired := ext.bits, false
	if !bits.IsOneHot() {
		r.logger.Warn("extracted bitstring violates one-hot constraint, repairing",
			"tier", ext.tier, "bitstring", bits.String())
		bits = solver.GreedyBitstring(p)
		repaired = true
		telemetry.RecordRepair(ctx, name)
	}

	res = &solver.Result{
		Bitstring:         bits,
		Energy:            r.energy,
		Method:            s.method.name,
		OptimalParameters: r.params,
		History:           r.history,
		Counts:            ext.counts,
		Evaluations:       len(r.history),
		Tier:              ext.tier,
		Repaired:          repaired,
		Degraded:          !r.optimized,
		EnergyOffset:      h.Offset(),
	}
	if res.Degraded {
		if res.Energy, err = p.Evaluate(bits); err != nil {
			return nil, fmt.Errorf("%s.Solve: %w", name, err)
		}
	}
	res.Elapsed = time.Since(start)

	return res, nil
}

func annotate(span trace.Span, res *solver.Result) {
	span.SetAttributes(
		telemetry.AttrTier.String(res.Tier),
		telemetry.AttrRepaired.Bool(res.Repaired),
		telemetry.AttrDegraded.Bool(res.Degraded),
		telemetry.AttrEvaluations.Int(res.Evaluations),
	)
}

// distribution is an outcome distribution observed at params.
type distribution struct {
	params []float64
	probs  []float64
	energy float64
}

// run is the state of a single Solve call.
type run struct {
	s      *Solver
	p      *qubo.Problem
	h      *ising.Hamiltonian
	cb     solver.Callback
	logger *slog.Logger

	ansatz quantum.Ansatz
	oracle Oracle
	diag   []float64

	history   []solver.Snapshot
	last      *distribution
	best      *distribution
	params    []float64
	energy    float64
	optimized bool
}

// optimize runs steps 2 and 3. It returns an error only for cancellation and
// for a mismatched initial point; every other failure leaves r unoptimized.
func (r *run) optimize(ctx context.Context) error {
	ansatz, err := r.s.method.build(r.p, r.h, r.s.reps)
	if err != nil {
		r.logger.Warn("ansatz construction failed", "err", err)
		return nil
	}
	r.ansatz = ansatz

	x0, err := r.s.initialPoint(ansatz.NumParams())
	if err != nil {
		return err
	}

	oracle, err := r.s.factory(r.s.noise, rng.DeriveSeed(r.s.seed, streamOracle))
	if err != nil {
		r.logger.Warn("oracle construction failed", "err", err, "noise", r.s.noise.String())
		return nil
	}
	r.oracle = oracle

	if r.s.method.style == styleSampler {
		if r.diag, err = r.h.Diagonal(); err != nil {
			r.logger.Warn("hamiltonian diagonal unavailable", "err", err)
			return nil
		}
	}

	opt := r.s.optimizer
	if opt == nil {
		opt = optim.NewSPSA(optim.WithSeed(rng.DeriveSeed(r.s.seed, streamOptimizer)))
	}

	out, err := opt.Minimize(ctx, r.objective(ctx), x0)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		r.logger.Warn("optimization failed", "optimizer", opt.Name(), "err", err)
		return nil
	}

	r.params = append([]float64(nil), out.X...)
	r.energy = out.F
	r.optimized = true
	r.logger.Debug("optimization finished",
		"optimizer", opt.Name(), "energy", out.F, "evaluations", len(r.history), "status", out.Status)

	return nil
}

func (s *Solver) initialPoint(n int) ([]float64, error) {
	if s.initial != nil {
		if len(s.initial) != n {
			return nil, fmt.Errorf("got %d parameters, ansatz has %d: %w", len(s.initial), n, ErrInitialPoint)
		}
		return append([]float64(nil), s.initial...), nil
	}

	return rng.Uniform(rng.Derive(s.seed, streamInitialPoint), n, -math.Pi, math.Pi), nil
}

// objective evaluates ⟨H⟩ at x and records one snapshot per call.
func (r *run) objective(ctx context.Context) optim.Objective {
	return func(x []float64) (float64, error) {
		c, err := r.ansatz.Bind(x)
		if err != nil {
			return 0, err
		}

		var (
			energy float64
			probs  []float64
		)
		switch r.s.method.style {
		case styleEstimator:
			if energy, err = r.oracle.Estimate(ctx, c, r.h); err != nil {
				return 0, err
			}
		case styleSampler:
			counts, err := r.oracle.Sample(ctx, c, r.s.shots)
			if err != nil {
				return 0, err
			}
			if probs, err = probabilitiesFromCounts(counts, r.p.N()); err != nil {
				return 0, err
			}
			energy = floats.Dot(probs, r.diag)
		}

		params := append([]float64(nil), x...)
		snap := solver.Snapshot{Iteration: len(r.history) + 1, Energy: energy, Parameters: params}
		r.history = append(r.history, snap)
		if probs != nil {
			d := &distribution{params: params, probs: probs, energy: energy}
			r.last = d
			if r.best == nil || energy < r.best.energy {
				r.best = d
			}
		}
		if r.cb != nil {
			r.cb(snap)
		}

		return energy, nil
	}
}
