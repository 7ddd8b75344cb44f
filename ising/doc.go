// Package ising maps a qubo.Problem onto an Ising spin Hamiltonian
//
//	H(z) = Σ_i h_i·z_i + Σ_{i<j} J_ij·z_i·z_j + offset,   z_i ∈ {−1,+1}
//
// with z_i = 2·x_i − 1, so a selected item carries spin +1. Coefficients are
//
//	h_i  = Q_ii/2 + Σ_{j≠i} Q_ij/4
//	J_ij = Q_ij/4
//
// and offset = Σ_i Q_ii/2 + Σ_{i<j} Q_ij/4 + P collects every constant,
// including the one-hot penalty's own constant P. With that offset the spin
// form reproduces qubo.Problem.Evaluate exactly for every assignment.
//
// Terms with |coefficient| ≤ Cutoff are dropped. A Hamiltonian whose terms are
// all dropped is still valid: Terms returns a single identity term carrying
// the offset.
package ising
