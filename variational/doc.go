// Package variational implements the VQE and QAOA solvers.
//
// Both share one orchestration, differing only in ansatz family and in how
// the oracle is queried:
//
//   - VQE (estimator style): RealAmplitudes ansatz, each objective call asks
//     the oracle for ⟨H⟩ directly.
//   - QAOA (sampler style): cost/mixer ansatz built from the Hamiltonian, each
//     objective call samples the circuit and derives ⟨H⟩ from the outcome
//     frequencies.
//
// Solve flow:
//
//  1. Map the problem to an ising.Hamiltonian.
//  2. Build the ansatz and acquire an Oracle from the OracleFactory.
//  3. Minimise with the configured optim.Optimizer (SPSA by default). Every
//     objective call appends one solver.Snapshot to the call's own history
//     and then invokes the caller's callback.
//  4. Extract a bitstring by trying named tiers in order, first success wins:
//     result_distribution → exact_distribution → sampling → heuristic.
//  5. Repair: a bitstring that is not one-hot is replaced by the greedy
//     choice and Result.Repaired is set.
//
// Failures of ansatz construction, oracle construction or optimisation do not
// abort Solve: they leave the run without terminal parameters, the tiers that
// need them are skipped, and the Result is marked Degraded with Energy set to
// the problem's own objective. Only context cancellation, a bad initial point,
// or exhaustion of every tier (heuristic disabled) surface as errors.
//
// Result.Energy on a non-degraded run is the optimizer's terminal value of
// ⟨H⟩ without the Hamiltonian offset; Result.EnergyOffset carries that offset.
// The two are not reconciled with the repaired bitstring.
package variational
