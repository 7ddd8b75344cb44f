// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - One canonical place for shape, symmetry and finiteness checks.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly and tests can match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// A negative tol is treated as its absolute value; a NaN/Inf tol is rejected
// with ErrNaNInf.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrAsymmetry.
// Complexity: O(n²) time, O(1) space.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf cell.
//
// Errors: ErrNilMatrix, ErrNaNInf.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", ErrNaNInf)
			}
		}
	}

	return nil
}
