// SPDX-License-Identifier: MIT
// Package: aegis/ising
//
// hamiltonian.go: QUBO → Ising mapping and spin-form evaluation.
//
// Contract:
//   • FromQUBO is deterministic: the same problem yields identical terms.
//   • Fields are ordered by site, couplings by (i, j) row-major with i < j.
//   • EnergyOf(x) == problem.Evaluate(x) up to dropped sub-Cutoff terms.
//
// Complexity:
//   • FromQUBO  O(N²).
//   • Energy    O(N + |couplings|).
//   • Diagonal  O(2^N · (N + |couplings|)).

package ising

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/aegis/matrix"
	"github.com/katalvlaran/aegis/qubo"
)

// Cutoff is the magnitude at or below which a coefficient is dropped.
const Cutoff = 1e-10

// Field is a single-spin term h·Z_I.
type Field struct {
	I int
	H float64
}

// Coupling is a two-spin term J·Z_I·Z_J with I < J.
type Coupling struct {
	I, J  int
	Value float64
}

// Term is a Pauli-Z product over Sites with coefficient Coeff. Empty Sites
// denotes the identity.
type Term struct {
	Sites []int
	Coeff float64
}

// IsIdentity reports whether t acts on no site.
func (t Term) IsIdentity() bool { return len(t.Sites) == 0 }

// Label renders t as an n-character Pauli string, site 0 first ("ZIZ").
func (t Term) Label(n int) string {
	b := []byte(strings.Repeat("I", n))
	for _, s := range t.Sites {
		if s >= 0 && s < n {
			b[s] = 'Z'
		}
	}

	return string(b)
}

// Hamiltonian is an immutable Ising operator over n spins.
type Hamiltonian struct {
	n         int
	fields    []Field
	couplings []Coupling
	offset    float64
}

// FromQUBO derives the spin Hamiltonian of p.
func FromQUBO(p *qubo.Problem) (*Hamiltonian, error) {
	if p == nil {
		return nil, fmt.Errorf("FromQUBO: %w", ErrNilProblem)
	}

	q := p.Q()
	if err := matrix.ValidateSymmetric(q, 0); err != nil {
		return nil, fmt.Errorf("FromQUBO: %w", err)
	}

	n := p.N()
	h := &Hamiltonian{n: n}

	diag, err := matrix.Trace(q)
	if err != nil {
		return nil, fmt.Errorf("FromQUBO: %w", err)
	}
	upper, err := matrix.UpperSum(q)
	if err != nil {
		return nil, fmt.Errorf("FromQUBO: %w", err)
	}
	h.offset = diag/2 + upper/4 + p.Penalty()

	var (
		i, j     int
		qii, qij float64
		rowOff   float64
	)
	for i = 0; i < n; i++ {
		qii, _ = q.At(i, i)
		rowOff, err = matrix.RowSum(q, i, i)
		if err != nil {
			return nil, fmt.Errorf("FromQUBO: %w", err)
		}
		if v := qii/2 + rowOff/4; math.Abs(v) > Cutoff {
			h.fields = append(h.fields, Field{I: i, H: v})
		}
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			qij, _ = q.At(i, j)
			if v := qij / 4; math.Abs(v) > Cutoff {
				h.couplings = append(h.couplings, Coupling{I: i, J: j, Value: v})
			}
		}
	}

	return h, nil
}

// NumSpins returns the number of spins.
func (h *Hamiltonian) NumSpins() int { return h.n }

// Offset returns the constant energy shift.
func (h *Hamiltonian) Offset() float64 { return h.offset }

// IsConstant reports whether every field and coupling fell below Cutoff.
func (h *Hamiltonian) IsConstant() bool { return len(h.fields) == 0 && len(h.couplings) == 0 }

// Fields returns a copy of the retained single-spin terms.
func (h *Hamiltonian) Fields() []Field { return append([]Field(nil), h.fields...) }

// Couplings returns a copy of the retained two-spin terms.
func (h *Hamiltonian) Couplings() []Coupling { return append([]Coupling(nil), h.couplings...) }

// Terms returns the retained terms as Pauli-Z products, fields first. The
// offset is not included unless the operator is constant, in which case the
// result is exactly one identity term carrying the offset.
func (h *Hamiltonian) Terms() []Term {
	if h.IsConstant() {
		return []Term{{Coeff: h.offset}}
	}

	out := make([]Term, 0, len(h.fields)+len(h.couplings))
	for _, f := range h.fields {
		out = append(out, Term{Sites: []int{f.I}, Coeff: f.H})
	}
	for _, c := range h.couplings {
		out = append(out, Term{Sites: []int{c.I, c.J}, Coeff: c.Value})
	}

	return out
}

// Energy evaluates Σh·z + ΣJ·z·z for spins in {−1,+1}, offset excluded.
func (h *Hamiltonian) Energy(spins []int8) (float64, error) {
	if len(spins) != h.n {
		return 0, fmt.Errorf("Energy: len(spins)=%d, n=%d: %w", len(spins), h.n, ErrSizeMismatch)
	}
	for i, s := range spins {
		if s != 1 && s != -1 {
			return 0, fmt.Errorf("Energy: spins[%d]=%d: %w", i, s, ErrInvalidSpin)
		}
	}

	return h.energy(spins), nil
}

func (h *Hamiltonian) energy(spins []int8) float64 {
	var e float64
	for _, f := range h.fields {
		e += f.H * float64(spins[f.I])
	}
	for _, c := range h.couplings {
		e += c.Value * float64(spins[c.I]*spins[c.J])
	}

	return e
}

// SpinsOf converts a bitstring to spins with z = 2x − 1.
func SpinsOf(x qubo.Bitstring) []int8 {
	z := make([]int8, len(x))
	for i, b := range x {
		if b != 0 {
			z[i] = 1
		} else {
			z[i] = -1
		}
	}

	return z
}

// EnergyOf returns the full operator value, offset included, at bitstring x.
// It agrees with the source problem's Evaluate.
func (h *Hamiltonian) EnergyOf(x qubo.Bitstring) (float64, error) {
	if len(x) != h.n {
		return 0, fmt.Errorf("EnergyOf: len(x)=%d, n=%d: %w", len(x), h.n, ErrSizeMismatch)
	}

	return h.energy(SpinsOf(x)) + h.offset, nil
}

// Diagonal returns the spin energy, offset excluded, of every computational
// basis state. Entry k corresponds to qubo.FromIndex(k, n).
//
// Errors: qubo.ErrProblemTooLarge when n > qubo.MaxExhaustiveN.
func (h *Hamiltonian) Diagonal() ([]float64, error) {
	if h.n > qubo.MaxExhaustiveN {
		return nil, fmt.Errorf("Diagonal: n=%d: %w", h.n, qubo.ErrProblemTooLarge)
	}

	size := 1 << uint(h.n)
	out := make([]float64, size)
	x := make(qubo.Bitstring, h.n)
	z := make([]int8, h.n)
	for k := 0; k < size; k++ {
		qubo.FromIndexInto(x, uint64(k))
		for i, b := range x {
			z[i] = int8(2*int(b) - 1)
		}
		out[k] = h.energy(z)
	}

	return out, nil
}

// String renders the full operator, one "<coeff> <pauli>" term per line
// with the identity (offset) line last, e.g. "+5.0000000 ZZI".
func (h *Hamiltonian) String() string {
	var sb strings.Builder
	for _, t := range h.Terms() {
		writeTerm(&sb, t, h.n)
	}
	if !h.IsConstant() {
		writeTerm(&sb, Term{Coeff: h.offset}, h.n)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func writeTerm(sb *strings.Builder, t Term, n int) {
	if t.Coeff >= 0 {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.FormatFloat(t.Coeff, 'f', 7, 64))
	sb.WriteByte(' ')
	sb.WriteString(t.Label(n))
	sb.WriteByte('\n')
}
