// Package aegis selects exactly one tactical target out of N candidates by
// casting the choice as a QUBO problem and solving it exactly, greedily, and
// with variational quantum algorithms on an in-process simulator.
//
// 🚀 What is aegis?
//
//	A small, seeded, reproducible toolkit that brings together:
//		• Problem model: normalised risk/distance costs, one-hot penalty, Q matrix
//		• Ising mapping: spin fields, couplings and an exact energy offset
//		• Classical solvers: exhaustive search (parallel) and greedy choice
//		• Variational solvers: VQE and QAOA with tiered bitstring extraction
//		• Noise presets: depolarizing, readout, combined
//		• Benchmarks: scaling and noise sweeps over seeded instances
//
// ✨ Guarantees
//
//   - Every Solve call owns its history; solvers hold configuration only.
//   - Variational results are always one-hot: a violating bitstring is
//     replaced by the greedy choice and flagged as repaired.
//   - Same seed, same instance, same result.
//
// Packages:
//
//	qubo/        Problem, Evaluate, exhaustive OptimalSolution, Bitstring
//	ising/       Hamiltonian from a Problem, Pauli rendering
//	tactical/    seeded instance generator
//	solver/      Result record, Solver contract, BruteForce, Greedy
//	variational/ VQE and QAOA orchestration
//	quantum/     circuits, ansätze, state-vector simulation
//	backend/     Simulator oracle, ideal or noisy
//	noise/       noise model presets
//	optim/       SPSA and Nelder-Mead
//	bench/       scaling and noise-sweep batches
//	matrix/      dense symmetric storage for Q
//	rng/         seeded streams
//
// Quick example:
//
//	inst, _ := tactical.New(4, tactical.WithSeed(7))
//	res, _ := variational.NewQAOA().Solve(ctx, inst.Model())
//	fmt.Println(res.Bitstring, res.Tier, res.Repaired)
//
//	go install github.com/katalvlaran/aegis/cmd/aegis@latest
package aegis
