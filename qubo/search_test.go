package qubo_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/aegis/qubo"
	"github.com/stretchr/testify/require"
)

func TestOptimalSolution_ThreeItems(t *testing.T) {
	p := threeItems(t)
	x, e, err := p.OptimalSolution()
	require.NoError(t, err)
	require.Equal(t, qubo.Bitstring{0, 1, 0}, x)
	require.InDelta(t, 3.0/7.0+0.5, e, eps)
}

// TestOptimalSolution_TieKeepsLowestInteger: with four identical items the
// first one-hot assignment in ascending integer order is 0001.
func TestOptimalSolution_TieKeepsLowestInteger(t *testing.T) {
	p, err := qubo.New([]float64{0.5, 0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5, 0.5})
	require.NoError(t, err)
	require.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, p.NormalizedRisk())

	x, e, err := p.OptimalSolution()
	require.NoError(t, err)
	require.Equal(t, qubo.Bitstring{0, 0, 0, 1}, x)
	require.InDelta(t, 0.5, e, eps)
}

func TestOptimalSolution_SingleItem(t *testing.T) {
	p, err := qubo.New([]float64{3}, []float64{4})
	require.NoError(t, err)
	x, e, err := p.OptimalSolution()
	require.NoError(t, err)
	require.Equal(t, qubo.Bitstring{1}, x)
	require.InDelta(t, 2.0, e, eps) // uniform 1/1 on both axes
}

// TestOptimalSolution_ParallelMatchesSequential runs every worker count from
// 1 to 9 and expects the same answer, ties included.
func TestOptimalSolution_ParallelMatchesSequential(t *testing.T) {
	risk := []float64{0.4, 0.4, 0.9, 0.1, 0.4, 0.1, 0.6}
	dist := []float64{0.2, 0.2, 0.3, 0.5, 0.2, 0.5, 0.8}
	p, err := qubo.New(risk, dist)
	require.NoError(t, err)

	wantX, wantE, err := p.OptimalSolution()
	require.NoError(t, err)
	for w := 1; w <= 9; w++ {
		x, e, err := p.OptimalSolutionContext(context.Background(), w)
		require.NoError(t, err)
		require.Equal(t, wantX, x, "workers=%d", w)
		require.Equal(t, wantE, e, "workers=%d", w)
	}
	// items 0, 1 and 4 tie at 0.375; 0000100 is the lowest integer among them
	require.Equal(t, qubo.Bitstring{0, 0, 0, 0, 1, 0, 0}, wantX)
}

func TestOptimalSolution_Cancelled(t *testing.T) {
	p := threeItems(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := p.OptimalSolutionContext(ctx, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimalSolution_TooLarge(t *testing.T) {
	n := qubo.MaxExhaustiveN + 1
	p, err := qubo.New(make([]float64, n), make([]float64, n))
	require.NoError(t, err)
	_, _, err = p.OptimalSolution()
	require.ErrorIs(t, err, qubo.ErrProblemTooLarge)
}
