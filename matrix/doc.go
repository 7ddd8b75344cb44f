// Package matrix provides the small dense-matrix surface used to hold QUBO
// coefficient matrices.
//
// What & Why:
//
//	A QUBO instance is fully described by a symmetric N×N coefficient matrix.
//	Dense stores it row-major in one flat slice; the Matrix interface keeps
//	callers independent from the storage so tests can swap in their own
//	implementations.
//
// Contents:
//   - Dense: bounds-checked row-major storage with deep Clone.
//   - Validators: ValidateSquare, ValidateSymmetric, ValidateFinite.
//   - Reductions: Trace, UpperSum, RowSum.
//
// Complexity:
//
//	Rows/Cols/At/Set run in O(1). Clone and every reduction run in O(r*c).
package matrix
