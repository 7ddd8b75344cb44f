// Package noise describes gate and readout error rates for a noisy oracle.
//
// A Model is passed through the variational solvers untouched; only the
// oracle that consumes it interprets the rates. Three presets mirror the
// usual studies: gate depolarizing only, readout only, and both.
package noise

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidProbability is returned when a rate lies outside [0,1].
var ErrInvalidProbability = errors.New("noise: probability must lie in [0,1]")

// Model holds per-operation error probabilities.
type Model struct {
	// GateError is the depolarizing probability applied per gate.
	GateError float64 `json:"gate_error" yaml:"gate_error"`

	// TwoQubitGateError applies to two-qubit gates. Zero means GateError.
	TwoQubitGateError float64 `json:"two_qubit_gate_error,omitempty" yaml:"two_qubit_gate_error,omitempty"`

	// ReadoutError is the per-bit flip probability at measurement.
	ReadoutError float64 `json:"readout_error" yaml:"readout_error"`
}

// Ideal returns the noiseless model.
func Ideal() Model { return Model{} }

// Depolarizing returns a model with gateError on every one- and two-qubit
// gate and measurementError as the readout flip rate.
func Depolarizing(gateError, measurementError float64) (Model, error) {
	m := Model{GateError: gateError, ReadoutError: measurementError}

	return m, m.Validate()
}

// Readout returns a readout-only model.
func Readout(readoutError float64) (Model, error) {
	m := Model{ReadoutError: readoutError}

	return m, m.Validate()
}

// Combined returns a model with gate depolarizing and readout errors. The
// channels are those of Depolarizing.
func Combined(gateError, readoutError float64) (Model, error) {
	m := Model{GateError: gateError, ReadoutError: readoutError}

	return m, m.Validate()
}

// Validate checks every rate lies in [0,1].
func (m Model) Validate() error {
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"gate_error", m.GateError},
		{"two_qubit_gate_error", m.TwoQubitGateError},
		{"readout_error", m.ReadoutError},
	} {
		if math.IsNaN(r.v) || r.v < 0 || r.v > 1 {
			return fmt.Errorf("Validate: %s=%v: %w", r.name, r.v, ErrInvalidProbability)
		}
	}

	return nil
}

// IsIdeal reports whether every rate is zero.
func (m Model) IsIdeal() bool {
	return m.GateError == 0 && m.TwoQubitGateError == 0 && m.ReadoutError == 0
}

// TwoQubitRate returns the effective two-qubit gate error.
func (m Model) TwoQubitRate() float64 {
	if m.TwoQubitGateError == 0 {
		return m.GateError
	}

	return m.TwoQubitGateError
}

// String renders the model compactly, e.g. "gate=0.01 cx=0.1 readout=0.02".
func (m Model) String() string {
	if m.IsIdeal() {
		return "ideal"
	}

	return fmt.Sprintf("gate=%g cx=%g readout=%g", m.GateError, m.TwoQubitRate(), m.ReadoutError)
}
