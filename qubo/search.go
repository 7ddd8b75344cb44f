// SPDX-License-Identifier: MIT
// Package: aegis/qubo
//
// search.go: exhaustive ground-truth search over {0,1}^N.
//
// Contract:
//   • Assignments are scanned as integers k = 0 … 2^N−1, decoded MSB-first.
//   • Ties keep the lowest k; the parallel scan preserves this by splitting
//     the range into contiguous chunks and merging them in chunk order.
//   • ctx is polled every cancelCheckInterval assignments.
//
// Complexity: O(2^N · N) time, O(N) memory per worker.

package qubo

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MaxExhaustiveN bounds the problem size accepted by exhaustive search.
const MaxExhaustiveN = 30

const cancelCheckInterval = 1 << 12

// OptimalSolution returns the minimum-objective bitstring over all 2^N
// assignments and its objective value, using a single goroutine.
func (p *Problem) OptimalSolution() (Bitstring, float64, error) {
	return p.OptimalSolutionContext(context.Background(), 1)
}

// OptimalSolutionContext is OptimalSolution with cancellation and an explicit
// worker count. workers ≤ 0 selects GOMAXPROCS. The result does not depend
// on workers.
//
// Errors:
//   - ErrProblemTooLarge if N > MaxExhaustiveN.
//   - ctx.Err() if the context is cancelled before the scan completes.
func (p *Problem) OptimalSolutionContext(ctx context.Context, workers int) (Bitstring, float64, error) {
	if p.n > MaxExhaustiveN {
		return nil, 0, fmt.Errorf("OptimalSolution: N=%d > %d: %w", p.n, MaxExhaustiveN, ErrProblemTooLarge)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	total := uint64(1) << uint(p.n)
	if uint64(workers) > total {
		workers = int(total)
	}

	if workers == 1 {
		best := p.scanRange(ctx, 0, total)
		if best.err != nil {
			return nil, 0, best.err
		}

		return FromIndex(best.k, p.n), best.energy, nil
	}

	chunk := (total + uint64(workers) - 1) / uint64(workers)
	parts := make([]scanResult, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo := uint64(w) * chunk
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		g.Go(func() error {
			parts[w] = p.scanRange(gctx, lo, hi)

			return parts[w].err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	best := scanResult{energy: math.Inf(1)}
	for _, r := range parts {
		if r.found && (!best.found || r.energy < best.energy) {
			best = r
		}
	}

	return FromIndex(best.k, p.n), best.energy, nil
}

type scanResult struct {
	k      uint64
	energy float64
	found  bool
	err    error
}

// scanRange evaluates every assignment in [lo, hi) and keeps the first
// strict minimum.
func (p *Problem) scanRange(ctx context.Context, lo, hi uint64) scanResult {
	best := scanResult{energy: math.Inf(1)}
	buf := make(Bitstring, p.n)

	for k := lo; k < hi; k++ {
		if (k-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return scanResult{err: err}
			}
		}

		FromIndexInto(buf, k)
		e := p.evaluateBinary(buf)
		if !best.found || e < best.energy {
			best = scanResult{k: k, energy: e, found: true}
		}
	}

	return best
}

// evaluateBinary is Evaluate without validation; buf must be a binary
// assignment of length N.
func (p *Problem) evaluateBinary(x Bitstring) float64 {
	var (
		cost float64
		ones int
	)
	for i, b := range x {
		if b != 0 {
			cost += p.linear[i]
			ones++
		}
	}

	return cost + p.constraintPenalty(ones)
}
