package quantum

import (
	"fmt"

	"github.com/katalvlaran/aegis/ising"
)

// DefaultReps is the layer count used when none is given.
const DefaultReps = 2

// Ansatz is a parameterised circuit family.
type Ansatz interface {
	Name() string
	NumQubits() int
	NumParams() int
	Bind(params []float64) (*Circuit, error)
}

// RealAmplitudes is the hardware-efficient family: reps+1 layers of RY
// rotations separated by a linear CX chain. It has n·(reps+1) parameters,
// layer-major.
type RealAmplitudes struct {
	n    int
	reps int
}

// NewRealAmplitudes builds the family on n qubits.
func NewRealAmplitudes(n, reps int) (*RealAmplitudes, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("NewRealAmplitudes: n=%d: %w", n, ErrQubitRange)
	}
	if reps < 1 {
		return nil, fmt.Errorf("NewRealAmplitudes: reps=%d: %w", reps, ErrInvalidReps)
	}

	return &RealAmplitudes{n: n, reps: reps}, nil
}

// Name returns "real_amplitudes".
func (a *RealAmplitudes) Name() string { return "real_amplitudes" }

// NumQubits returns n.
func (a *RealAmplitudes) NumQubits() int { return a.n }

// NumParams returns n·(reps+1).
func (a *RealAmplitudes) NumParams() int { return a.n * (a.reps + 1) }

// Bind returns the circuit for params.
func (a *RealAmplitudes) Bind(params []float64) (*Circuit, error) {
	if len(params) != a.NumParams() {
		return nil, fmt.Errorf("RealAmplitudes.Bind: got %d, want %d: %w", len(params), a.NumParams(), ErrParamCount)
	}

	c, err := NewCircuit(a.n)
	if err != nil {
		return nil, err
	}
	p := 0
	for layer := 0; layer <= a.reps; layer++ {
		if layer > 0 {
			for q := 0; q+1 < a.n; q++ {
				_ = c.CX(q, q+1)
			}
		}
		for q := 0; q < a.n; q++ {
			_ = c.RY(q, params[p])
			p++
		}
	}

	return c, nil
}

// QAOA is the problem-tailored family: Hadamards on every qubit, then reps
// alternating cost and mixer layers. params[0:reps] are the cost angles γ,
// params[reps:] the mixer angles β. The mixer applies RX(2β) per qubit.
type QAOA struct {
	n    int
	reps int
	diag []float64
	cost GateCost
}

// NewQAOA builds the family for h. The cost layer is the diagonal of h
// without its offset, which contributes only a global phase.
func NewQAOA(h *ising.Hamiltonian, reps int) (*QAOA, error) {
	n := h.NumSpins()
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("NewQAOA: n=%d: %w", n, ErrQubitRange)
	}
	if reps < 1 {
		return nil, fmt.Errorf("NewQAOA: reps=%d: %w", reps, ErrInvalidReps)
	}

	diag, err := h.Diagonal()
	if err != nil {
		return nil, fmt.Errorf("NewQAOA: %w", err)
	}

	// Z terms become RZ; each ZZ term becomes CX·RZ·CX.
	fields, couplings := len(h.Fields()), len(h.Couplings())

	return &QAOA{
		n:    n,
		reps: reps,
		diag: diag,
		cost: GateCost{OneQubit: fields + couplings, TwoQubit: 2 * couplings},
	}, nil
}

// Name returns "qaoa".
func (a *QAOA) Name() string { return "qaoa" }

// NumQubits returns n.
func (a *QAOA) NumQubits() int { return a.n }

// NumParams returns 2·reps.
func (a *QAOA) NumParams() int { return 2 * a.reps }

// Bind returns the circuit for params.
func (a *QAOA) Bind(params []float64) (*Circuit, error) {
	if len(params) != a.NumParams() {
		return nil, fmt.Errorf("QAOA.Bind: got %d, want %d: %w", len(params), a.NumParams(), ErrParamCount)
	}

	c, err := NewCircuit(a.n)
	if err != nil {
		return nil, err
	}
	for q := 0; q < a.n; q++ {
		_ = c.H(q)
	}
	for l := 0; l < a.reps; l++ {
		if err := c.CostPhase(a.diag, params[l], a.cost); err != nil {
			return nil, err
		}
		for q := 0; q < a.n; q++ {
			_ = c.RX(q, 2*params[a.reps+l])
		}
	}

	return c, nil
}
