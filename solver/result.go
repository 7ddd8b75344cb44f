package solver

import (
	"time"

	"github.com/katalvlaran/aegis/qubo"
)

// Method tags the algorithm that produced a Result.
type Method string

// Known methods.
const (
	MethodBruteForce Method = "brute_force"
	MethodGreedy     Method = "greedy"
	MethodVQE        Method = "vqe"
	MethodQAOA       Method = "qaoa"
)

// String implements fmt.Stringer.
func (m Method) String() string { return string(m) }

// Snapshot is one optimizer objective evaluation.
type Snapshot struct {
	Iteration  int       `json:"iteration" yaml:"iteration"` // 1-based, in evaluation order
	Energy     float64   `json:"energy" yaml:"energy"`
	Parameters []float64 `json:"parameters" yaml:"parameters"`
}

// Callback observes each Snapshot as it is recorded.
type Callback func(Snapshot)

// Result is the outcome of one Solve call. The caller owns it.
type Result struct {
	Bitstring qubo.Bitstring `json:"bitstring" yaml:"bitstring"`

	// Energy is Evaluate(Bitstring) for the classical methods and for degraded
	// variational runs; otherwise it is the optimizer's terminal value.
	Energy float64 `json:"energy" yaml:"energy"`

	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
	Method  Method        `json:"method" yaml:"method"`

	// Variational fields; zero for the classical methods.
	OptimalParameters []float64   `json:"optimal_parameters,omitempty" yaml:"optimal_parameters,omitempty"`
	History           []Snapshot  `json:"history,omitempty" yaml:"history,omitempty"`
	Counts            qubo.Counts `json:"counts,omitempty" yaml:"counts,omitempty"`
	Evaluations       int         `json:"evaluations,omitempty" yaml:"evaluations,omitempty"`
	Tier              string      `json:"tier,omitempty" yaml:"tier,omitempty"`
	Repaired          bool        `json:"repaired,omitempty" yaml:"repaired,omitempty"`
	Degraded          bool        `json:"degraded,omitempty" yaml:"degraded,omitempty"`
	EnergyOffset      float64     `json:"energy_offset,omitempty" yaml:"energy_offset,omitempty"`
}

// Selected returns the chosen item index, or -1 if the bitstring is not one-hot.
func (r *Result) Selected() int { return r.Bitstring.Selected() }
