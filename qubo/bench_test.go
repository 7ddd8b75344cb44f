package qubo_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/aegis/qubo"
	"github.com/katalvlaran/aegis/rng"
)

func benchProblem(b *testing.B, n int) *qubo.Problem {
	b.Helper()
	r := rng.New(7)
	p, err := qubo.New(rng.Uniform(r, n, 0.1, 1), rng.Uniform(r, n, 0.1, 1))
	if err != nil {
		b.Fatal(err)
	}

	return p
}

func BenchmarkOptimalSolution_N16_Sequential(b *testing.B) {
	p := benchProblem(b, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := p.OptimalSolution(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOptimalSolution_N16_Parallel(b *testing.B) {
	p := benchProblem(b, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := p.OptimalSolutionContext(context.Background(), 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate_N64(b *testing.B) {
	p := benchProblem(b, 64)
	x := qubo.OneHot(64, 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Evaluate(x)
	}
}
