package qubo_test

import (
	"encoding/json"
	"testing"

	"github.com/katalvlaran/aegis/qubo"
	"github.com/stretchr/testify/require"
)

func TestBitstring_IndexRoundTrip(t *testing.T) {
	x := qubo.FromIndex(5, 4)
	require.Equal(t, qubo.Bitstring{0, 1, 0, 1}, x) // MSB first
	require.Equal(t, uint64(5), x.Index())
	require.Equal(t, "0101", x.String())
	require.Equal(t, 2, x.OnesCount())
	require.False(t, x.IsOneHot())
	require.Equal(t, -1, x.Selected())
}

func TestBitstring_OneHot(t *testing.T) {
	x := qubo.OneHot(4, 2)
	require.Equal(t, "0010", x.String())
	require.True(t, x.IsOneHot())
	require.Equal(t, 2, x.Selected())
	require.Equal(t, "0000", qubo.OneHot(4, 9).String())
}

func TestParse(t *testing.T) {
	x, err := qubo.Parse("1001")
	require.NoError(t, err)
	require.Equal(t, qubo.Bitstring{1, 0, 0, 1}, x)

	_, err = qubo.Parse("10x1")
	require.ErrorIs(t, err, qubo.ErrNonBinary)
}

func TestBitstring_Clone(t *testing.T) {
	x := qubo.Bitstring{1, 0}
	y := x.Clone()
	y[0] = 0
	require.Equal(t, uint8(1), x[0])
	require.Nil(t, qubo.Bitstring(nil).Clone())
}

func TestCounts_MostFrequent(t *testing.T) {
	_, _, ok := qubo.Counts{}.MostFrequent()
	require.False(t, ok)

	c := qubo.Counts{"100": 7, "010": 12, "001": 12}
	key, n, ok := c.MostFrequent()
	require.True(t, ok)
	require.Equal(t, "001", key) // tie resolved lexicographically
	require.Equal(t, 12, n)
	require.Equal(t, 31, c.Total())
}

func TestBitstring_JSON(t *testing.T) {
	type wrap struct {
		X qubo.Bitstring `json:"x"`
	}
	b, err := json.Marshal(wrap{X: qubo.Bitstring{0, 1, 1}})
	require.NoError(t, err)
	require.JSONEq(t, `{"x":"011"}`, string(b))

	var w wrap
	require.NoError(t, json.Unmarshal(b, &w))
	require.Equal(t, qubo.Bitstring{0, 1, 1}, w.X)

	require.ErrorIs(t, json.Unmarshal([]byte(`{"x":"012"}`), &w), qubo.ErrNonBinary)
}
