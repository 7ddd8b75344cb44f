package variational

import (
	"context"

	"github.com/katalvlaran/aegis/backend"
	"github.com/katalvlaran/aegis/ising"
	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/quantum"
	"github.com/katalvlaran/aegis/qubo"
)

// Oracle evaluates bound circuits. *backend.Simulator implements it.
type Oracle interface {
	// Estimate returns the expectation of h, offset excluded.
	Estimate(ctx context.Context, c *quantum.Circuit, h *ising.Hamiltonian) (float64, error)

	// Sample draws shots outcomes.
	Sample(ctx context.Context, c *quantum.Circuit, shots int) (qubo.Counts, error)

	// Probabilities returns the exact outcome distribution, indexed by
	// basis state.
	Probabilities(ctx context.Context, c *quantum.Circuit) ([]float64, error)
}

var _ Oracle = (*backend.Simulator)(nil)

// OracleFactory builds the oracle for one Solve call. The noise model is
// handed over unmodified.
type OracleFactory func(m noise.Model, seed int64) (Oracle, error)

// SimulatorFactory is the default OracleFactory: an in-process state-vector
// simulator.
func SimulatorFactory(m noise.Model, seed int64) (Oracle, error) {
	return backend.New(backend.Config{Noise: m, Seed: seed})
}
