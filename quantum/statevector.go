package quantum

import (
	"context"
	"math"
	"math/cmplx"
)

// Simulate applies c to |0…0⟩ and returns the final amplitudes. ctx is
// checked between gates.
// Complexity: O(len(gates) · 2^n) time, O(2^n) memory.
func Simulate(ctx context.Context, c *Circuit) ([]complex128, error) {
	state := make([]complex128, 1<<uint(c.n))
	state[0] = 1

	for _, g := range c.gates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		apply(state, c.n, g)
	}

	return state, nil
}

// Probabilities returns |amp|² for every basis state.
func Probabilities(state []complex128) []float64 {
	out := make([]float64, len(state))
	for k, a := range state {
		re, im := real(a), imag(a)
		out[k] = re*re + im*im
	}

	return out
}

// mask returns the basis-index bit of qubit q.
func mask(n, q int) int { return 1 << uint(n-1-q) }

func apply(state []complex128, n int, g Gate) {
	switch g.Kind {
	case GateRY:
		s, c := math.Sincos(g.Theta / 2)
		applySingle(state, mask(n, g.Target),
			complex(c, 0), complex(-s, 0),
			complex(s, 0), complex(c, 0))
	case GateRX:
		s, c := math.Sincos(g.Theta / 2)
		applySingle(state, mask(n, g.Target),
			complex(c, 0), complex(0, -s),
			complex(0, -s), complex(c, 0))
	case GateH:
		r := complex(1/math.Sqrt2, 0)
		applySingle(state, mask(n, g.Target), r, r, r, -r)
	case GateCX:
		cm, tm := mask(n, g.Control), mask(n, g.Target)
		for k := range state {
			if k&cm != 0 && k&tm == 0 {
				state[k], state[k|tm] = state[k|tm], state[k]
			}
		}
	case GateCostPhase:
		for k := range state {
			state[k] *= cmplx.Exp(complex(0, -g.Theta*g.Diag[k]))
		}
	}
}

// applySingle applies the 2×2 unitary [[u00,u01],[u10,u11]] on the qubit
// with basis bit m.
func applySingle(state []complex128, m int, u00, u01, u10, u11 complex128) {
	for k := range state {
		if k&m != 0 {
			continue
		}
		a0, a1 := state[k], state[k|m]
		state[k] = u00*a0 + u01*a1
		state[k|m] = u10*a0 + u11*a1
	}
}
