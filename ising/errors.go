package ising

import "errors"

var (
	// ErrNilProblem is returned when FromQUBO receives a nil problem.
	ErrNilProblem = errors.New("ising: nil problem")

	// ErrSizeMismatch is returned when a spin or bit vector length differs
	// from the number of spins.
	ErrSizeMismatch = errors.New("ising: size mismatch")

	// ErrInvalidSpin is returned when a spin is neither −1 nor +1.
	ErrInvalidSpin = errors.New("ising: spin must be -1 or +1")
)
