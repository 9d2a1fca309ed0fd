package optimizer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/udisondev/vgcspread/internal/usage"
)

func benchOptimizer(parallel bool) *Optimizer {
	return New(testDex(), usage.Nop{}, Options{
		Parallel:   parallel,
		MaxWorkers: 4,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// BenchmarkOptimizeSingle - один физический противник, все натуры.
func BenchmarkOptimizeSingle(b *testing.B) {
	o := benchOptimizer(false)
	req := Request{Species: "tank", Threats: []ThreatSpec{smash()}}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := o.OptimizeSingle(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOptimizeMulti(b *testing.B) {
	for _, bc := range []struct {
		name     string
		parallel bool
	}{
		{"sequential", false},
		{"parallel", true},
	} {
		b.Run(bc.name, func(b *testing.B) {
			o := benchOptimizer(bc.parallel)
			req := Request{
				Species: "tank",
				Threats: []ThreatSpec{smash(), {Attacker: "brute", Move: "aura"}, {Attacker: "brute", Move: "blast"}, {Attacker: "brute", Move: "strike"}},
			}
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				if _, err := o.OptimizeMulti(ctx, req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
