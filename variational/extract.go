package variational

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/solver"
)

// Extraction tier names, in the order they are tried.
const (
	TierResultDistribution = "result_distribution"
	TierExactDistribution  = "exact_distribution"
	TierSampling           = "sampling"
	TierHeuristic          = "heuristic"
)


type extraction struct {
	tier   string
	bits   qubo.Bitstring
	counts qubo.Counts
}

// strategy is one extraction tier. extract reports ErrTierUnavailable (or
// the underlying oracle error) when it cannot produce a bitstring.
type strategy struct {
	name    string
	extract func(ctx context.Context, r *run) (qubo.Bitstring, qubo.Counts, error)
}

func (r *run) strategies() []strategy {
	list := []strategy{
		{TierResultDistribution, fromResultDistribution},
		{TierExactDistribution, fromExactDistribution},
		{TierSampling, fromSampling},
	}
	if r.s.heuristic {
		list = append(list, strategy{TierHeuristic, fromHeuristic})
	}

	return list
}

// extract tries each tier in order and returns the first success.
func (r *run) extract(ctx context.Context) (extraction, error) {
	for _, st := range r.strategies() {
		bits, counts, err := st.extract(ctx, r)
		if err == nil {
			return extraction{tier: st.name, bits: bits, counts: counts}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return extraction{}, ctxErr
		}
		r.logger.Debug("extraction tier unavailable", "tier", st.name, "err", err)
	}

	return extraction{}, ErrOracleUnavailable
}

// fromResultDistribution reuses the distribution observed at the terminal
// parameters during optimisation. Only sampler-style runs record one.
func fromResultDistribution(_ context.Context, r *run) (qubo.Bitstring, qubo.Counts, error) {
	if !r.optimized {
		return nil, nil, ErrTierUnavailable
	}
	for _, d := range []*distribution{r.last, r.best} {
		if d != nil && floats.Equal(d.params, r.params) {
			return argmax(d.probs, r.p.N()), countsFromProbabilities(d.probs, r.p.N(), r.s.shots), nil
		}
	}

	return nil, nil, fmt.Errorf("no distribution at terminal parameters: %w", ErrTierUnavailable)
}

// fromExactDistribution binds the terminal parameters and asks the oracle
// for the exact distribution.
func fromExactDistribution(ctx context.Context, r *run) (qubo.Bitstring, qubo.Counts, error) {
	if !r.optimized || r.oracle == nil {
		return nil, nil, ErrTierUnavailable
	}
	c, err := r.ansatz.Bind(r.params)
	if err != nil {
		return nil, nil, err
	}
	probs, err := r.oracle.Probabilities(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	n := r.p.N()
	if len(probs) != 1<<uint(n) {
		return nil, nil, fmt.Errorf("%d probabilities for %d qubits: %w", len(probs), n, ErrMalformedOutcome)
	}

	return argmax(probs, n), countsFromProbabilities(probs, n, r.s.shots), nil
}

// fromSampling binds the terminal parameters, draws shots samples and takes
// the most frequent outcome.
func fromSampling(ctx context.Context, r *run) (qubo.Bitstring, qubo.Counts, error) {
	if !r.optimized || r.oracle == nil {
		return nil, nil, ErrTierUnavailable
	}
	c, err := r.ansatz.Bind(r.params)
	if err != nil {
		return nil, nil, err
	}
	counts, err := r.oracle.Sample(ctx, c, r.s.shots)
	if err != nil {
		return nil, nil, err
	}
	key, _, ok := counts.MostFrequent()
	if !ok {
		return nil, nil, fmt.Errorf("empty sample: %w", ErrMalformedOutcome)
	}
	bits, err := qubo.Parse(key)
	if err != nil || len(bits) != r.p.N() {
		return nil, nil, fmt.Errorf("outcome %q: %w", key, ErrMalformedOutcome)
	}

	return bits, counts, nil
}

// fromHeuristic returns the greedy choice with all shots on it.
func fromHeuristic(_ context.Context, r *run) (qubo.Bitstring, qubo.Counts, error) {
	bits := solver.GreedyBitstring(r.p)

	return bits, qubo.Counts{bits.String(): r.s.shots}, nil
}

// argmax returns the most probable basis state; ties go to the lowest index.
func argmax(probs []float64, n int) qubo.Bitstring {
	return qubo.FromIndex(uint64(floats.MaxIdx(probs)), n)
}

// countsFromProbabilities scales probs by shots, truncating. Outcomes whose
// scaled count truncates to zero are left out of the table.
func countsFromProbabilities(probs []float64, n, shots int) qubo.Counts {
	counts := make(qubo.Counts)
	for k, p := range probs {
		if c := int(p * float64(shots)); c > 0 {
			counts[qubo.FromIndex(uint64(k), n).String()] = c
		}
	}

	return counts
}

// probabilitiesFromCounts converts outcome frequencies to a dense
// distribution over 2^n basis states.
func probabilitiesFromCounts(counts qubo.Counts, n int) ([]float64, error) {
	total := counts.Total()
	if total <= 0 {
		return nil, fmt.Errorf("empty sample: %w", ErrMalformedOutcome)
	}

	probs := make([]float64, 1<<uint(n))
	for key, c := range counts {
		bits, err := qubo.Parse(key)
		if err != nil || len(bits) != n {
			return nil, fmt.Errorf("outcome %q: %w", key, ErrMalformedOutcome)
		}
		probs[bits.Index()] += float64(c) / float64(total)
	}

	return probs, nil
}
