package quantum_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/aegis/ising"
	"github.com/katalvlaran/aegis/quantum"
	"github.com/katalvlaran/aegis/qubo"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func probs(t *testing.T, c *quantum.Circuit) []float64 {
	t.Helper()
	st, err := quantum.Simulate(context.Background(), c)
	require.NoError(t, err)

	return quantum.Probabilities(st)
}

// TestQubitOrder: flipping qubit 0 sets the most significant index bit.
func TestQubitOrder(t *testing.T) {
	c, err := quantum.NewCircuit(2)
	require.NoError(t, err)
	require.NoError(t, c.RY(0, math.Pi))

	p := probs(t, c)
	require.InDelta(t, 1.0, p[2], eps) // |10⟩
	require.Equal(t, "10", qubo.FromIndex(2, 2).String())
}

func TestCXEntangles(t *testing.T) {
	c, err := quantum.NewCircuit(2)
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	require.NoError(t, c.CX(0, 1))

	p := probs(t, c)
	require.InDelta(t, 0.5, p[0], eps)
	require.InDelta(t, 0.5, p[3], eps)
	require.InDelta(t, 0.0, p[1]+p[2], eps)
}

func TestRXMatchesRYOnZero(t *testing.T) {
	c, err := quantum.NewCircuit(1)
	require.NoError(t, err)
	require.NoError(t, c.RX(0, math.Pi/3))

	p := probs(t, c)
	require.InDelta(t, math.Pow(math.Sin(math.Pi/6), 2), p[1], eps)
}

func TestCircuitErrors(t *testing.T) {
	_, err := quantum.NewCircuit(0)
	require.ErrorIs(t, err, quantum.ErrQubitRange)
	_, err = quantum.NewCircuit(quantum.MaxQubits + 1)
	require.ErrorIs(t, err, quantum.ErrQubitRange)

	c, err := quantum.NewCircuit(2)
	require.NoError(t, err)
	require.ErrorIs(t, c.RY(2, 0), quantum.ErrQubitRange)
	require.ErrorIs(t, c.CX(1, 1), quantum.ErrQubitRange)
	require.ErrorIs(t, c.CostPhase([]float64{1, 2}, 0.1, quantum.GateCost{}), quantum.ErrDiagonalSize)
	require.Equal(t, 0, c.Len())
}

func TestSimulate_Cancelled(t *testing.T) {
	c, err := quantum.NewCircuit(1)
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = quantum.Simulate(ctx, c)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRealAmplitudes(t *testing.T) {
	a, err := quantum.NewRealAmplitudes(3, 2)
	require.NoError(t, err)
	require.Equal(t, 9, a.NumParams())
	require.Equal(t, "real_amplitudes", a.Name())

	params := make([]float64, 9)
	c, err := a.Bind(params)
	require.NoError(t, err)
	require.Equal(t, quantum.GateCost{OneQubit: 9, TwoQubit: 4}, c.GateCounts())
	require.InDelta(t, 1.0, probs(t, c)[0], eps) // all-zero angles stay in |000⟩

	params[6+1] = math.Pi // last layer, qubit 1
	c, err = a.Bind(params)
	require.NoError(t, err)
	require.InDelta(t, 1.0, probs(t, c)[qubo.OneHot(3, 1).Index()], eps)

	_, err = a.Bind(params[:8])
	require.ErrorIs(t, err, quantum.ErrParamCount)
	_, err = quantum.NewRealAmplitudes(3, 0)
	require.ErrorIs(t, err, quantum.ErrInvalidReps)
}

func TestQAOA(t *testing.T) {
	p, err := qubo.New([]float64{0.2, 0.5, 0.9}, []float64{0.9, 0.5, 0.1})
	require.NoError(t, err)
	h, err := ising.FromQUBO(p)
	require.NoError(t, err)

	a, err := quantum.NewQAOA(h, quantum.DefaultReps)
	require.NoError(t, err)
	require.Equal(t, 4, a.NumParams())
	require.Equal(t, 3, a.NumQubits())

	c, err := a.Bind([]float64{0, 0, 0, 0})
	require.NoError(t, err)
	for _, v := range probs(t, c) {
		require.InDelta(t, 1.0/8, v, eps) // zero angles leave the uniform superposition
	}
	// 3 H + 2·(3 RZ + 3 ZZ-RZ + 3 RX) one-qubit, 2·(2·3) two-qubit
	require.Equal(t, quantum.GateCost{OneQubit: 3 + 2*(6+3), TwoQubit: 12}, c.GateCounts())

	c, err = a.Bind([]float64{0.3, -0.7, 0.4, 1.1})
	require.NoError(t, err)
	total := 0.0
	for _, v := range probs(t, c) {
		total += v
	}
	require.InDelta(t, 1.0, total, 1e-9)
}
