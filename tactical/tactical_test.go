package tactical_test

import (
	"testing"

	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
	"github.com/katalvlaran/aegis/tactical"
	"github.com/stretchr/testify/require"
)

func TestNew_SameSeedSameInstance(t *testing.T) {
	a, err := tactical.New(6, tactical.WithSeed(42))
	require.NoError(t, err)
	b, err := tactical.New(6, tactical.WithSeed(42))
	require.NoError(t, err)

	require.Equal(t, a.RiskCosts(), b.RiskCosts())
	require.Equal(t, a.DistanceCosts(), b.DistanceCosts())
	require.True(t, a.Model().Q().Equal(b.Model().Q()))

	c, err := tactical.New(6, tactical.WithSeed(43))
	require.NoError(t, err)
	require.NotEqual(t, a.RiskCosts(), c.RiskCosts())
}

// TestNew_DrawOrder: risk is drawn before distance from one stream.
func TestNew_DrawOrder(t *testing.T) {
	p, err := tactical.New(4, tactical.WithSeed(9))
	require.NoError(t, err)

	r := rng.New(9)
	require.Equal(t, rng.Uniform(r, 4, tactical.MinCost, tactical.MaxCost), p.RiskCosts())
	require.Equal(t, rng.Uniform(r, 4, tactical.MinCost, tactical.MaxCost), p.DistanceCosts())

	for _, v := range append(p.RiskCosts(), p.DistanceCosts()...) {
		require.GreaterOrEqual(t, v, tactical.MinCost)
		require.Less(t, v, tactical.MaxCost)
	}
}

func TestNew_SuppliedCosts(t *testing.T) {
	p, err := tactical.New(3,
		tactical.WithRisk([]float64{0.2, 0.5, 0.9}),
		tactical.WithDistance([]float64{0.9, 0.5, 0.1}),
		tactical.WithPenalty(5))
	require.NoError(t, err)
	require.Equal(t, 5.0, p.Model().Penalty())

	x, _, err := p.OptimalSolution()
	require.NoError(t, err)
	require.Equal(t, qubo.Bitstring{0, 1, 0}, x)
}

func TestNew_Errors(t *testing.T) {
	_, err := tactical.New(0)
	require.ErrorIs(t, err, tactical.ErrInvalidSize)

	_, err = tactical.New(3, tactical.WithRisk([]float64{1, 2}))
	require.ErrorIs(t, err, qubo.ErrShapeMismatch)
}

func TestNew_WithRandAdvancesStream(t *testing.T) {
	r := rng.New(5)
	a, err := tactical.New(3, tactical.WithRand(r))
	require.NoError(t, err)
	b, err := tactical.New(3, tactical.WithRand(r))
	require.NoError(t, err)
	require.NotEqual(t, a.RiskCosts(), b.RiskCosts())
	require.Panics(t, func() { tactical.WithRand(nil) })
}

func TestNew_WeightsForwarded(t *testing.T) {
	p, err := tactical.New(2, tactical.WithAlpha(2), tactical.WithBeta(0.5))
	require.NoError(t, err)
	require.Equal(t, 2.0, p.Model().Alpha())
	require.Equal(t, 0.5, p.Model().Beta())
	require.Equal(t, 2, p.N())
}
