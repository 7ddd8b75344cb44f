package variational

import "errors"

var (
	// ErrOracleUnavailable is returned when every extraction tier failed and
	// the heuristic fallback is disabled.
	ErrOracleUnavailable = errors.New("variational: no evaluation oracle path succeeded")

	// ErrTierUnavailable marks an extraction tier that cannot run in the
	// current state. It is logged, never returned from Solve.
	ErrTierUnavailable = errors.New("variational: extraction tier unavailable")

	// ErrInitialPoint is returned when a fixed initial point does not match
	// the ansatz parameter count.
	ErrInitialPoint = errors.New("variational: initial point length mismatch")

	// ErrMalformedOutcome is returned when an oracle reports an outcome that
	// does not fit the problem width.
	ErrMalformedOutcome = errors.New("variational: malformed oracle outcome")
)
