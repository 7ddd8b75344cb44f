package optim_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/aegis/optim"
	"github.com/stretchr/testify/require"
)

// bowl has its minimum 0 at (1, −2).
func bowl(x []float64) (float64, error) {
	dx, dy := x[0]-1, x[1]+2
	return dx*dx + dy*dy, nil
}

func TestNelderMead_Bowl(t *testing.T) {
	res, err := optim.NelderMead{}.Minimize(context.Background(), bowl, []float64{0, 0})
	require.NoError(t, err)
	require.InDelta(t, 1.0, res.X[0], 1e-3)
	require.InDelta(t, -2.0, res.X[1], 1e-3)
	require.Less(t, res.F, 1e-6)
	require.Positive(t, res.Evaluations)
	require.LessOrEqual(t, res.Evaluations, optim.DefaultMaxEvaluations)
}

func TestSPSA_Bowl(t *testing.T) {
	s := optim.NewSPSA(optim.WithMaxIter(500), optim.WithSeed(4))
	res, err := s.Minimize(context.Background(), bowl, []float64{0, 0})
	require.NoError(t, err)
	require.Less(t, res.F, 0.5) // start value is 5
	require.Equal(t, 2*500+1, res.Evaluations)
	require.Equal(t, 500, res.Iterations)
}

func TestSPSA_DefaultsAndDeterminism(t *testing.T) {
	s := optim.NewSPSA(optim.WithSeed(9))
	require.Equal(t, optim.DefaultMaxIter, s.MaxIter())
	require.Equal(t, "spsa", s.Name())

	a, err := s.Minimize(context.Background(), bowl, []float64{3, 3})
	require.NoError(t, err)
	b, err := s.Minimize(context.Background(), bowl, []float64{3, 3})
	require.NoError(t, err)
	require.Equal(t, a.X, b.X) // fresh stream per run
	require.Equal(t, a.F, b.F)
}

// TestSPSA_CallsInOrder: the objective sees exactly 2·MaxIter+1 calls and
// the terminal point last.
func TestSPSA_CallsInOrder(t *testing.T) {
	var seen [][]float64
	obj := func(x []float64) (float64, error) {
		seen = append(seen, append([]float64(nil), x...))
		return bowl(x)
	}
	res, err := optim.NewSPSA(optim.WithMaxIter(3)).Minimize(context.Background(), obj, []float64{0.5, 0.5})
	require.NoError(t, err)
	require.Len(t, seen, 7)
	require.Equal(t, res.X, seen[6])
}

func TestOptimizers_PropagateObjectiveError(t *testing.T) {
	boom := errors.New("boom")
	failing := func([]float64) (float64, error) { return 0, boom }

	_, err := optim.NewSPSA().Minimize(context.Background(), failing, []float64{1})
	require.ErrorIs(t, err, boom)

	_, err = optim.NelderMead{}.Minimize(context.Background(), failing, []float64{1, 2})
	require.ErrorIs(t, err, boom)
}

func TestOptimizers_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := optim.NewSPSA().Minimize(ctx, bowl, []float64{1})
	require.ErrorIs(t, err, context.Canceled)

	_, err = optim.NelderMead{}.Minimize(ctx, bowl, []float64{1, 2})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimizers_EmptyStart(t *testing.T) {
	_, err := optim.NewSPSA().Minimize(context.Background(), bowl, nil)
	require.ErrorIs(t, err, optim.ErrEmptyStart)
	_, err = optim.NelderMead{}.Minimize(context.Background(), bowl, nil)
	require.ErrorIs(t, err, optim.ErrEmptyStart)
}

func TestOptions_Panic(t *testing.T) {
	require.Panics(t, func() { optim.WithMaxIter(0) })
	require.Panics(t, func() { optim.WithGains(0, 1) })
}
