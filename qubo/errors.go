package qubo

import "errors"

var (
	// ErrShapeMismatch is returned when the cost arrays differ in length or a
	// bitstring's length differs from the problem size.
	ErrShapeMismatch = errors.New("qubo: shape mismatch")

	// ErrEmptyProblem is returned when no candidate items are supplied.
	ErrEmptyProblem = errors.New("qubo: problem must have at least one item")

	// ErrNonFinite is returned when a cost is NaN or ±Inf, or when the
	// weights overflow a cell of Q.
	ErrNonFinite = errors.New("qubo: non-finite cost")

	// ErrNonBinary is returned when a bitstring entry is neither 0 nor 1.
	ErrNonBinary = errors.New("qubo: bitstring entry is not binary")

	// ErrProblemTooLarge is returned by exhaustive search when N exceeds
	// MaxExhaustiveN.
	ErrProblemTooLarge = errors.New("qubo: problem too large for exhaustive search")
)
