// Package backend provides the in-process evaluation oracle: an exact
// state-vector simulator with an optional noise model.
//
// Noise is applied to the outcome distribution, not the state:
//
//	P_noisy = F·P_ideal + (1−F)/2^n,   F = (1−p₁)^{g₁}·(1−p₂)^{g₂}
//
// where g₁, g₂ are the circuit's primitive one- and two-qubit gate counts,
// followed by an exact independent bit-flip channel of rate ReadoutError on
// every qubit. With noise.Ideal the distribution is the exact Born rule.
package backend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/aegis/ising"
	"github.com/katalvlaran/aegis/noise"
	"github.com/katalvlaran/aegis/quantum"
	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
)

var (
	// ErrNilCircuit is returned when an operation receives a nil circuit.
	ErrNilCircuit = errors.New("backend: nil circuit")

	// ErrInvalidShots is returned when Sample is asked for shots < 1.
	ErrInvalidShots = errors.New("backend: shots must be positive")

	// ErrWidthMismatch is returned when a Hamiltonian and circuit differ in width.
	ErrWidthMismatch = errors.New("backend: hamiltonian and circuit widths differ")
)

// Config configures a Simulator.
type Config struct {
	// Noise is validated by New and applied to every distribution.
	Noise noise.Model

	// Seed drives shot sampling; 0 selects rng.DefaultSeed.
	Seed int64
}

// Simulator evaluates bound circuits. It is safe for concurrent use; shot
// sampling serialises on an internal lock.
type Simulator struct {
	cfg Config

	mu  sync.Mutex
	rnd *rand.Rand

	// Diagonal of the most recent Hamiltonian only.
	diagMu sync.Mutex
	diagH  *ising.Hamiltonian
	diag   []float64
}

// New validates cfg and returns a Simulator.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Noise.Validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	return &Simulator{
		cfg: cfg,
		rnd: rng.New(cfg.Seed),
	}, nil
}

// Name identifies the simulator and its noise model.
func (s *Simulator) Name() string {
	if s.cfg.Noise.IsIdeal() {
		return "statevector"
	}

	return "statevector(" + s.cfg.Noise.String() + ")"
}

// Noise returns the configured model.
func (s *Simulator) Noise() noise.Model { return s.cfg.Noise }

// Probabilities returns the (noisy) outcome distribution of c, indexed by
// basis state.
func (s *Simulator) Probabilities(ctx context.Context, c *quantum.Circuit) ([]float64, error) {
	if c == nil {
		return nil, fmt.Errorf("Probabilities: %w", ErrNilCircuit)
	}

	state, err := quantum.Simulate(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("Probabilities: %w", err)
	}
	p := quantum.Probabilities(state)
	if s.cfg.Noise.IsIdeal() {
		return p, nil
	}

	counts := c.GateCounts()
	fidelity := math.Pow(1-s.cfg.Noise.GateError, float64(counts.OneQubit)) *
		math.Pow(1-s.cfg.Noise.TwoQubitRate(), float64(counts.TwoQubit))
	depolarize(p, fidelity)
	readout(p, c.NumQubits(), s.cfg.Noise.ReadoutError)

	return p, nil
}

// depolarize mixes p toward the uniform distribution, keeping weight f.
func depolarize(p []float64, f float64) {
	if f >= 1 {
		return
	}
	floats.Scale(f, p)
	floats.AddConst((1-f)/float64(len(p)), p)
}

// readout applies an independent flip of rate r to every qubit.
func readout(p []float64, n int, r float64) {
	if r == 0 {
		return
	}
	for q := 0; q < n; q++ {
		m := 1 << uint(n-1-q)
		for k := range p {
			if k&m != 0 {
				continue
			}
			a, b := p[k], p[k|m]
			p[k] = (1-r)*a + r*b
			p[k|m] = r*a + (1-r)*b
		}
	}
}

// Estimate returns ⟨h⟩ without its offset under the (noisy) distribution
// of c.
func (s *Simulator) Estimate(ctx context.Context, c *quantum.Circuit, h *ising.Hamiltonian) (float64, error) {
	if c == nil {
		return 0, fmt.Errorf("Estimate: %w", ErrNilCircuit)
	}
	if h.NumSpins() != c.NumQubits() {
		return 0, fmt.Errorf("Estimate: %d spins, %d qubits: %w", h.NumSpins(), c.NumQubits(), ErrWidthMismatch)
	}

	diag, err := s.diagonal(h)
	if err != nil {
		return 0, fmt.Errorf("Estimate: %w", err)
	}
	p, err := s.Probabilities(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("Estimate: %w", err)
	}

	return floats.Dot(p, diag), nil
}

func (s *Simulator) diagonal(h *ising.Hamiltonian) ([]float64, error) {
	s.diagMu.Lock()
	defer s.diagMu.Unlock()

	if s.diagH == h {
		return s.diag, nil
	}
	d, err := h.Diagonal()
	if err != nil {
		return nil, err
	}
	s.diagH, s.diag = h, d

	return d, nil
}

// Sample draws shots outcomes from the (noisy) distribution of c.
func (s *Simulator) Sample(ctx context.Context, c *quantum.Circuit, shots int) (qubo.Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("Sample: shots=%d: %w", shots, ErrInvalidShots)
	}
	p, err := s.Probabilities(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("Sample: %w", err)
	}

	cdf := make([]float64, len(p))
	floats.CumSum(cdf, p)
	total := cdf[len(cdf)-1]

	n := c.NumQubits()
	counts := make(qubo.Counts)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < shots; i++ {
		u := s.rnd.Float64() * total
		k := sort.SearchFloat64s(cdf, u)
		if k >= len(cdf) {
			k = len(cdf) - 1
		}
		// skip zero-probability states sitting on a cdf plateau
		for k+1 < len(cdf) && p[k] == 0 {
			k++
		}
		counts[qubo.FromIndex(uint64(k), n).String()]++
	}

	return counts, nil
}
