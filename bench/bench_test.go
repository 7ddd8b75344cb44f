package bench_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/katalvlaran/aegis/bench"
	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/optim"
	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/solver"
	"github.com/katalvlaran/aegis/tactical"
	"github.com/katalvlaran/aegis/variational"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

var errBroken = errors.New("broken")

type stubSolver struct {
	res *solver.Result
	err error
}

func (stubSolver) Method() solver.Method { return "stub" }

func (s stubSolver) Solve(context.Context, *qubo.Problem) (*solver.Result, error) {
	return s.res, s.err
}

func quiet() bench.Option {
	return bench.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func threeItems(t *testing.T) *qubo.Problem {
	t.Helper()
	p, err := qubo.New([]float64{0.2, 0.5, 0.9}, []float64{0.9, 0.5, 0.1})
	require.NoError(t, err)

	return p
}

func TestScaling_RowsInInputOrder(t *testing.T) {
	sizes := []int{2, 3, 4, 5}
	solvers := []solver.Solver{solver.BruteForce{Workers: 1}, solver.Greedy{}}

	rows, err := bench.Scaling(context.Background(), sizes, solvers, bench.WithConcurrency(3), quiet())
	require.NoError(t, err)
	require.Len(t, rows, len(sizes)*len(solvers))

	for i, n := range sizes {
		exact, greedy := rows[2*i], rows[2*i+1]
		require.Equal(t, n, exact.N)
		require.Equal(t, solver.MethodBruteForce, exact.Method)
		require.Equal(t, n, greedy.N)
		require.Equal(t, solver.MethodGreedy, greedy.Method)

		require.True(t, exact.Success, "n=%d", n)
		require.Equal(t, exact.Optimal, exact.Bitstring)
		require.GreaterOrEqual(t, greedy.Energy, exact.Energy-eps)
		require.Nil(t, exact.Convergence)
	}
}

// TestScaling_SeededInstances: the instance for size n does not depend on
// concurrency or on which other sizes are run.
func TestScaling_SeededInstances(t *testing.T) {
	solvers := []solver.Solver{solver.BruteForce{}}

	a, err := bench.Scaling(context.Background(), []int{3, 6}, solvers, bench.WithSeed(9), bench.WithConcurrency(1), quiet())
	require.NoError(t, err)
	b, err := bench.Scaling(context.Background(), []int{6}, solvers, bench.WithSeed(9), bench.WithConcurrency(4), quiet())
	require.NoError(t, err)

	require.Equal(t, a[1].Bitstring, b[0].Bitstring)
	require.InDelta(t, a[1].Energy, b[0].Energy, eps)
}

func TestScaling_Errors(t *testing.T) {
	_, err := bench.Scaling(context.Background(), []int{0}, []solver.Solver{solver.Greedy{}}, quiet())
	require.ErrorIs(t, err, tactical.ErrInvalidSize)

	_, err = bench.Scaling(context.Background(), []int{3}, []solver.Solver{stubSolver{err: errBroken}}, quiet())
	require.ErrorIs(t, err, errBroken)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bench.Scaling(ctx, []int{4}, []solver.Solver{solver.BruteForce{}}, quiet())
	require.ErrorIs(t, err, context.Canceled)
}

func TestScaling_Convergence(t *testing.T) {
	res := &solver.Result{
		Method:    solver.MethodVQE,
		Bitstring: qubo.Bitstring{0, 1, 0},
		History: []solver.Snapshot{
			{Iteration: 1, Energy: 3},
			{Iteration: 2, Energy: 2},
		},
	}
	rows, err := bench.Scaling(context.Background(), []int{3}, []solver.Solver{stubSolver{res: res}}, quiet())
	require.NoError(t, err)
	require.Equal(t, []float64{3, 2}, rows[0].Convergence)
}

func TestNoiseSweep_MeanOverTrials(t *testing.T) {
	p := threeItems(t) // optimum 010
	contenders := []bench.Contender{
		{Method: solver.MethodBruteForce, Build: func(noise.Model, int64) solver.Solver { return solver.BruteForce{} }},
		{Method: "stub", Build: func(noise.Model, int64) solver.Solver {
			return stubSolver{res: &solver.Result{Counts: qubo.Counts{"010": 3, "100": 1}}}
		}},
	}

	points, err := bench.NoiseSweep(context.Background(), p, []float64{0, 0.1}, contenders,
		bench.WithTrials(2), bench.WithConcurrency(1), quiet())
	require.NoError(t, err)
	require.Len(t, points, 4)

	want := []struct {
		rate    float64
		method  solver.Method
		success float64
	}{
		{0, solver.MethodBruteForce, 1},
		{0, "stub", 0.75},
		{0.1, solver.MethodBruteForce, 1},
		{0.1, "stub", 0.75},
	}
	for i, w := range want {
		require.InDelta(t, w.rate, points[i].Rate, eps)
		require.Equal(t, w.method, points[i].Method)
		require.InDelta(t, w.success, points[i].SuccessRate, eps)
		require.Equal(t, 2, points[i].Trials)
	}
}

func TestNoiseSweep_PresetAndTrialSeeds(t *testing.T) {
	p := threeItems(t)
	type call struct {
		m    noise.Model
		seed int64
	}
	calls := make(chan call, 16)
	contenders := []bench.Contender{{Method: "stub", Build: func(m noise.Model, seed int64) solver.Solver {
		calls <- call{m, seed}
		return stubSolver{res: &solver.Result{Bitstring: qubo.Bitstring{1, 0, 0}}}
	}}}

	points, err := bench.NoiseSweep(context.Background(), p, []float64{0.2, 0.3}, contenders,
		bench.WithPreset(bench.ReadoutPreset), bench.WithTrials(3), quiet())
	require.NoError(t, err)
	close(calls)

	require.Zero(t, points[0].SuccessRate)
	bySeed := map[int64][]float64{}
	for c := range calls {
		require.Zero(t, c.m.GateError)
		bySeed[c.seed] = append(bySeed[c.seed], c.m.ReadoutError)
	}
	require.Len(t, bySeed, 3)
	for _, rates := range bySeed {
		require.ElementsMatch(t, []float64{0.2, 0.3}, rates)
	}
}

func TestNoiseSweep_Errors(t *testing.T) {
	p := threeItems(t)
	ok := []bench.Contender{{Method: solver.MethodGreedy, Build: func(noise.Model, int64) solver.Solver { return solver.Greedy{} }}}

	_, err := bench.NoiseSweep(context.Background(), nil, []float64{0}, ok, quiet())
	require.ErrorIs(t, err, solver.ErrNilProblem)

	_, err = bench.NoiseSweep(context.Background(), p, []float64{1.5}, ok, quiet())
	require.ErrorIs(t, err, noise.ErrInvalidProbability)

	failing := []bench.Contender{{Method: "stub", Build: func(noise.Model, int64) solver.Solver {
		return stubSolver{err: errBroken}
	}}}
	_, err = bench.NoiseSweep(context.Background(), p, []float64{0}, failing, quiet())
	require.ErrorIs(t, err, errBroken)
}

func TestNoiseSweep_QAOA(t *testing.T) {
	p := threeItems(t)
	contenders := []bench.Contender{{Method: solver.MethodQAOA, Build: func(m noise.Model, seed int64) solver.Solver {
		return variational.NewQAOA(
			variational.WithNoise(m),
			variational.WithSeed(seed),
			variational.WithShots(128),
			variational.WithOptimizer(optim.NewSPSA(optim.WithMaxIter(3), optim.WithSeed(seed))),
			variational.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		)
	}}}

	points, err := bench.NoiseSweep(context.Background(), p, []float64{0, 0.05}, contenders, bench.WithTrials(1), quiet())
	require.NoError(t, err)
	require.Len(t, points, 2)
	for _, pt := range points {
		require.GreaterOrEqual(t, pt.SuccessRate, 0.0)
		require.LessOrEqual(t, pt.SuccessRate, 1.0)
	}
}

func TestSuccessRate(t *testing.T) {
	opt := qubo.Bitstring{0, 1, 0}

	require.InDelta(t, 0.25, bench.SuccessRate(&solver.Result{Counts: qubo.Counts{"010": 1, "001": 3}}, opt), eps)
	require.InDelta(t, 0.0, bench.SuccessRate(&solver.Result{Counts: qubo.Counts{"001": 3}}, opt), eps)
	require.InDelta(t, 1.0, bench.SuccessRate(&solver.Result{Bitstring: qubo.Bitstring{0, 1, 0}}, opt), eps)
	require.InDelta(t, 0.0, bench.SuccessRate(&solver.Result{Bitstring: qubo.Bitstring{1, 0, 0}}, opt), eps)
}

func TestConvergence(t *testing.T) {
	require.Nil(t, bench.Convergence(&solver.Result{}))
	res := &solver.Result{History: []solver.Snapshot{{Energy: 1.5}, {Energy: 0.5}}}
	require.Equal(t, []float64{1.5, 0.5}, bench.Convergence(res))
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { bench.WithLogger(nil) })
	require.Panics(t, func() { bench.WithConcurrency(0) })
	require.Panics(t, func() { bench.WithTrials(0) })
	require.Panics(t, func() { bench.WithPreset(nil) })
}
