package noise_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/aegis/noise"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	m, err := noise.Depolarizing(0.01, 0.02)
	require.NoError(t, err)
	require.Equal(t, 0.01, m.GateError)
	require.Equal(t, 0.01, m.TwoQubitRate())
	require.Equal(t, 0.02, m.ReadoutError)

	m, err = noise.Readout(0.05)
	require.NoError(t, err)
	require.Zero(t, m.GateError)
	require.Equal(t, "gate=0 cx=0 readout=0.05", m.String())

	m, err = noise.Combined(0.001, 0.03)
	require.NoError(t, err)
	require.False(t, m.IsIdeal())

	require.True(t, noise.Ideal().IsIdeal())
	require.Equal(t, "ideal", noise.Ideal().String())
}

func TestValidate(t *testing.T) {
	_, err := noise.Readout(1.5)
	require.ErrorIs(t, err, noise.ErrInvalidProbability)
	_, err = noise.Depolarizing(-0.1, 0)
	require.ErrorIs(t, err, noise.ErrInvalidProbability)
	_, err = noise.Combined(math.NaN(), 0)
	require.ErrorIs(t, err, noise.ErrInvalidProbability)

	m := noise.Model{GateError: 0.01, TwoQubitGateError: 0.1}
	require.NoError(t, m.Validate())
	require.Equal(t, 0.1, m.TwoQubitRate())
}
