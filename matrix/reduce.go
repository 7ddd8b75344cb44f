// SPDX-License-Identifier: MIT

package matrix

// Trace returns the sum of the main diagonal of a square matrix.
// Complexity: O(n).
func Trace(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, err
	}

	var (
		s float64
		v float64
	)
	for i := 0; i < m.Rows(); i++ {
		v, _ = m.At(i, i)
		s += v
	}

	return s, nil
}

// UpperSum returns Σ_{i<j} m[i][j], the strict upper triangle of a square matrix.
// Complexity: O(n²).
func UpperSum(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, err
	}

	var (
		n    = m.Rows()
		s    float64
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			v, _ = m.At(i, j)
			s += v
		}
	}

	return s, nil
}

// RowSum returns Σ_{j≠skip} m[row][j]. Pass skip < 0 to sum the whole row.
// Complexity: O(c).
func RowSum(m Matrix, row, skip int) (float64, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	if row < 0 || row >= m.Rows() {
		return 0, ErrIndexOutOfBounds
	}

	var (
		s float64
		v float64
	)
	for j := 0; j < m.Cols(); j++ {
		if j == skip {
			continue
		}
		v, _ = m.At(row, j)
		s += v
	}

	return s, nil
}
