// Package quantum builds parameterised circuits and simulates them exactly.
//
// Two ansatz families are provided: RealAmplitudes, the hardware-efficient
// RY/CX ladder used by VQE, and QAOA, the cost/mixer alternation derived from
// an ising.Hamiltonian. Simulate evolves the full 2^n state vector, so widths
// are bounded by MaxQubits.
package quantum
