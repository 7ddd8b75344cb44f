// Package matrix_test contains unit tests for Dense, validators and reductions.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/aegis/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)                      // zero rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // rejected

	_, err = matrix.NewDense(5, -1)                      // negative columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // rejected
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

// TestNewSymmetricMirrorsUpperTriangle checks both triangles hold fn(i,j).
func TestNewSymmetricMirrorsUpperTriangle(t *testing.T) {
	calls := 0
	m, err := matrix.NewSymmetric(3, func(i, j int) float64 {
		calls++                  // count generator calls
		return float64(10*i + j) // distinct value per upper cell
	})
	require.NoError(t, err)
	require.Equal(t, 6, calls) // n(n+1)/2 upper cells

	v, err := m.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 2.0, v) // mirrored from (0,2)

	require.NoError(t, matrix.ValidateSymmetric(m, 0))
}

// TestCloneIsIndependent verifies deep copy semantics.
func TestCloneIsIndependent(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 4))

	cp := m.Clone()
	require.NoError(t, cp.Set(0, 1, 9)) // mutate the copy only

	v, _ := m.At(0, 1)
	require.Equal(t, 4.0, v) // original untouched
	require.False(t, m.Equal(cp.(*matrix.Dense)))
}

func TestValidateSymmetric(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 1))
	require.NoError(t, m.Set(1, 0, 1.5))

	require.ErrorIs(t, matrix.ValidateSymmetric(m, 0.1), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(m, 0.5))
	require.NoError(t, matrix.ValidateSymmetric(m, -0.5)) // |tol| is used
	require.ErrorIs(t, matrix.ValidateSymmetric(m, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(nil, 0), matrix.ErrNilMatrix)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateSymmetric(rect, 0), matrix.ErrDimensionMismatch)
}

func TestValidateFinite(t *testing.T) {
	m, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(m))

	require.NoError(t, m.Set(0, 1, math.Inf(-1)))
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)
}

// TestReductions checks Trace, UpperSum and RowSum on a fixed 3×3 matrix.
func TestReductions(t *testing.T) {
	// [1 2 3]
	// [2 4 5]
	// [3 5 6]
	m, err := matrix.NewSymmetric(3, func(i, j int) float64 {
		return [3][3]float64{{1, 2, 3}, {0, 4, 5}, {0, 0, 6}}[i][j]
	})
	require.NoError(t, err)

	tr, err := matrix.Trace(m)
	require.NoError(t, err)
	require.Equal(t, 11.0, tr)

	up, err := matrix.UpperSum(m)
	require.NoError(t, err)
	require.Equal(t, 10.0, up)

	rs, err := matrix.RowSum(m, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 7.0, rs) // 2 + 5, diagonal skipped

	_, err = matrix.RowSum(m, 3, -1)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}
