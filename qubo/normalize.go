package qubo

// Normalize maps values onto [0,1] by min-max scaling:
//
//	out[i] = (v[i] − min) / (max − min)
//
// When every value is equal (including a single value) the result is the
// uniform vector 1/N, so a flat axis still contributes a constant share.
// The input is not modified. Complexity: O(N).
func Normalize(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if hi == lo {
		u := 1.0 / float64(n)
		for i := range out {
			out[i] = u
		}

		return out
	}

	span := hi - lo
	for i, v := range values {
		out[i] = (v - lo) / span
	}

	return out
}
