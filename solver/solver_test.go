package solver_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/solver"
	"github.com/katalvlaran/aegis/tactical"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func mustProblem(t *testing.T, risk, distance []float64) *qubo.Problem {
	t.Helper()
	p, err := qubo.New(risk, distance)
	require.NoError(t, err)

	return p
}

func TestBruteForce_ThreeItems(t *testing.T) {
	p := mustProblem(t, []float64{0.2, 0.5, 0.9}, []float64{0.9, 0.5, 0.1})
	res, err := solver.BruteForce{}.Solve(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, solver.MethodBruteForce, res.Method)
	require.Equal(t, qubo.Bitstring{0, 1, 0}, res.Bitstring)
	require.Equal(t, 1, res.Selected())
	require.InDelta(t, 3.0/7.0+0.5, res.Energy, eps)
	require.Nil(t, res.History)
}

// TestGreedy_AllEqualPicksFirst: four identical items, lowest index wins.
func TestGreedy_AllEqualPicksFirst(t *testing.T) {
	p := mustProblem(t, []float64{0.5, 0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5, 0.5})
	res, err := solver.Greedy{}.Solve(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, solver.MethodGreedy, res.Method)
	require.Equal(t, qubo.Bitstring{1, 0, 0, 0}, res.Bitstring)
	require.InDelta(t, 0.5, res.Energy, eps)
	require.Equal(t, 0, solver.GreedyIndex(p))
}

// TestGreedy_MatchesBruteForceOnOneHotProblems: with an adequate penalty the
// exhaustive optimum is one-hot and has the greedy cost.
func TestGreedy_MatchesBruteForceOnOneHotProblems(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		inst, err := tactical.New(6, tactical.WithSeed(seed))
		require.NoError(t, err)
		p := inst.Model()

		exact, err := solver.BruteForce{Workers: 3}.Solve(context.Background(), p)
		require.NoError(t, err)
		greedy, err := solver.Greedy{}.Solve(context.Background(), p)
		require.NoError(t, err)

		require.True(t, exact.Bitstring.IsOneHot(), "seed=%d", seed)
		require.True(t, greedy.Bitstring.IsOneHot(), "seed=%d", seed)
		require.InDelta(t, exact.Energy, greedy.Energy, eps, "seed=%d", seed)
	}
}

// TestBruteForce_NoBetterAssignment: the exhaustive answer is ≤ every
// assignment's energy.
func TestBruteForce_NoBetterAssignment(t *testing.T) {
	inst, err := tactical.New(5, tactical.WithSeed(77), tactical.WithPenalty(0.3))
	require.NoError(t, err)
	p := inst.Model()

	res, err := solver.BruteForce{Workers: 1}.Solve(context.Background(), p)
	require.NoError(t, err)
	for k := uint64(0); k < 1<<5; k++ {
		e, err := p.Evaluate(qubo.FromIndex(k, 5))
		require.NoError(t, err)
		require.LessOrEqual(t, res.Energy, e)
	}
}

func TestSolve_NilAndCancelled(t *testing.T) {
	_, err := solver.BruteForce{}.Solve(context.Background(), nil)
	require.ErrorIs(t, err, solver.ErrNilProblem)
	_, err = solver.Greedy{}.Solve(context.Background(), nil)
	require.ErrorIs(t, err, solver.ErrNilProblem)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := mustProblem(t, []float64{1, 2}, []float64{2, 1})
	_, err = solver.BruteForce{}.Solve(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
	_, err = solver.Greedy{}.Solve(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMethod_Names(t *testing.T) {
	require.Equal(t, "brute_force", solver.BruteForce{}.Method().String())
	require.Equal(t, "greedy", string(solver.Greedy{}.Method()))
	require.Equal(t, "vqe", string(solver.MethodVQE))
	require.Equal(t, "qaoa", string(solver.MethodQAOA))
}
