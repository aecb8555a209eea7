package coverage

import (
	"math/rand"
	"testing"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
)

// BenchmarkEvaluate runs a 10 000 command walk with moves of up to 100 000 steps.
func BenchmarkEvaluate(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	commands := randomWalk(rng, 10000, 100000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(geometry.Position{X: -100000, Y: 100000}, commands); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
	}
}

// BenchmarkCountUniqueNaive measures the quadratic crossing count on the same
// walk for comparison with CountUnique.
func BenchmarkCountUniqueNaive(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	state, err := Reduce(geometry.Position{}, randomWalk(rng, 2000, 1000))
	if err != nil {
		b.Fatalf("setup Reduce failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CountUniqueNaive(state)
	}
}

func BenchmarkCountUnique(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	state, err := Reduce(geometry.Position{}, randomWalk(rng, 2000, 1000))
	if err != nil {
		b.Fatalf("setup Reduce failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CountUnique(state)
	}
}
