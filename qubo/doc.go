// Package qubo models the one-hot selection problem as a Quadratic
// Unconstrained Binary Optimization instance.
//
// 🚀 What is modelled?
//
//	N candidate items each carry a risk and a distance score. Exactly one item
//	must be picked. With both score arrays min-max normalised to [0,1], the
//	objective over x ∈ {0,1}^N is
//
//	  H(x) = Σ_i (α·R_i + β·D_i)·x_i + P·(Σ_i x_i − 1)²
//
//	where P is a penalty large enough to make every non-one-hot assignment
//	worse than every one-hot one.
//
// ✨ Key pieces:
//   - Problem: immutable instance with normalised costs and the symmetric
//     coefficient matrix Q (diag α·R_i+β·D_i−P, off-diagonal 2P).
//   - Evaluate: the ground-truth objective every solver validates against.
//   - OptimalSolution: exhaustive scan of all 2^N assignments in ascending
//     integer order, optionally partitioned across workers with the same
//     lowest-integer tie-break as the sequential scan.
//   - Bitstring / Counts: assignment and outcome-frequency types shared with
//     the solver packages.
//
// Bit order:
//
//	Bitstring x reads most-significant-first: x[0] carries weight 2^{N-1}
//	when the assignment is viewed as an integer.
//
// Complexity:
//
//   - New:             O(N²) (Q construction)
//   - Evaluate:        O(N)
//   - OptimalSolution: O(2^N · N); refused for N > MaxExhaustiveN.
package qubo
