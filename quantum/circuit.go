// SPDX-License-Identifier: MIT
// Package: aegis/quantum
//
// circuit.go: bound gate sequences over n qubits.
//
// Contract:
//   • Qubit q maps to basis-index bit (n−1−q), so basis index k decodes to
//     qubo.FromIndex(k, n) with qubit q ↔ x[q].
//   • Gate constructors validate qubit indices and return ErrQubitRange.
//   • A CostPhase gate is a diagonal unitary carrying its own decomposition
//     cost, used by noisy backends to count gates.

package quantum

import (
	"errors"
	"fmt"
)

// MaxQubits bounds circuit width; the state vector holds 2^n amplitudes.
const MaxQubits = 20

var (
	// ErrQubitRange is returned for a qubit index outside [0,n) or a width
	// outside [1,MaxQubits].
	ErrQubitRange = errors.New("quantum: qubit out of range")

	// ErrParamCount is returned when Bind receives the wrong number of
	// parameters.
	ErrParamCount = errors.New("quantum: wrong parameter count")

	// ErrInvalidReps is returned when an ansatz is built with reps < 1.
	ErrInvalidReps = errors.New("quantum: reps must be at least 1")

	// ErrDiagonalSize is returned when a CostPhase diagonal is not 2^n long.
	ErrDiagonalSize = errors.New("quantum: diagonal size mismatch")
)

// GateKind enumerates supported operations.
type GateKind uint8

// Gate kinds.
const (
	GateRY GateKind = iota
	GateRX
	GateH
	GateCX
	GateCostPhase
)

var gateNames = [...]string{"ry", "rx", "h", "cx", "cost"}

// String returns the lower-case gate mnemonic.
func (k GateKind) String() string {
	if int(k) < len(gateNames) {
		return gateNames[k]
	}

	return fmt.Sprintf("gate(%d)", uint8(k))
}

// GateCost is the number of primitive one- and two-qubit gates an operation
// decomposes into.
type GateCost struct {
	OneQubit int
	TwoQubit int
}

// Gate is one bound operation. For GateCX, Control is the control qubit and
// Target the target. Diag is shared, never mutated, and set only for
// GateCostPhase.
type Gate struct {
	Kind    GateKind
	Target  int
	Control int
	Theta   float64
	Diag    []float64
	Cost    GateCost
}

// Circuit is an ordered gate list over a fixed number of qubits.
type Circuit struct {
	n     int
	gates []Gate
}

// NewCircuit returns an empty circuit on n qubits.
func NewCircuit(n int) (*Circuit, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("NewCircuit: n=%d: %w", n, ErrQubitRange)
	}

	return &Circuit{n: n}, nil
}

// NumQubits returns the circuit width.
func (c *Circuit) NumQubits() int { return c.n }

// Len returns the number of operations.
func (c *Circuit) Len() int { return len(c.gates) }

// Gates returns a copy of the operation list.
func (c *Circuit) Gates() []Gate { return append([]Gate(nil), c.gates...) }

func (c *Circuit) check(op string, qs ...int) error {
	for _, q := range qs {
		if q < 0 || q >= c.n {
			return fmt.Errorf("%s: qubit %d of %d: %w", op, q, c.n, ErrQubitRange)
		}
	}

	return nil
}

// RY appends a Y rotation by theta on qubit q.
func (c *Circuit) RY(q int, theta float64) error {
	if err := c.check("RY", q); err != nil {
		return err
	}
	c.gates = append(c.gates, Gate{Kind: GateRY, Target: q, Theta: theta, Cost: GateCost{OneQubit: 1}})

	return nil
}

// RX appends an X rotation by theta on qubit q.
func (c *Circuit) RX(q int, theta float64) error {
	if err := c.check("RX", q); err != nil {
		return err
	}
	c.gates = append(c.gates, Gate{Kind: GateRX, Target: q, Theta: theta, Cost: GateCost{OneQubit: 1}})

	return nil
}

// H appends a Hadamard on qubit q.
func (c *Circuit) H(q int) error {
	if err := c.check("H", q); err != nil {
		return err
	}
	c.gates = append(c.gates, Gate{Kind: GateH, Target: q, Cost: GateCost{OneQubit: 1}})

	return nil
}

// CX appends a controlled-X.
func (c *Circuit) CX(control, target int) error {
	if err := c.check("CX", control, target); err != nil {
		return err
	}
	if control == target {
		return fmt.Errorf("CX: control == target == %d: %w", control, ErrQubitRange)
	}
	c.gates = append(c.gates, Gate{Kind: GateCX, Target: target, Control: control, Cost: GateCost{TwoQubit: 1}})

	return nil
}

// CostPhase appends the diagonal unitary |k⟩ ↦ exp(−i·gamma·diag[k])|k⟩.
// cost records the primitive gates the operation stands for.
func (c *Circuit) CostPhase(diag []float64, gamma float64, cost GateCost) error {
	if len(diag) != 1<<uint(c.n) {
		return fmt.Errorf("CostPhase: len(diag)=%d, want %d: %w", len(diag), 1<<uint(c.n), ErrDiagonalSize)
	}
	c.gates = append(c.gates, Gate{Kind: GateCostPhase, Theta: gamma, Diag: diag, Cost: cost})

	return nil
}

// GateCounts totals the primitive one- and two-qubit gates.
func (c *Circuit) GateCounts() GateCost {
	var total GateCost
	for _, g := range c.gates {
		total.OneQubit += g.Cost.OneQubit
		total.TwoQubit += g.Cost.TwoQubit
	}

	return total
}
