package pathgraph

import "testing"

func BenchmarkScanner(b *testing.B) {
	p := RandomPath(1000, true)
	b.Run("Manual", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			for j := 0; j < len(p.d); {
				j += cmdLen(p.d[j])
				_, _ = p.d[j-3], p.d[j-2]
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			for s := p.Scanner(); s.Scan(); {
				_ = s.End()
			}
		}
	})
}

func BenchmarkGraphPath(b *testing.B) {
	p := RandomPath(100, true)
	q := RandomPath(100, true)
	b.Run("FromPath", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = GraphPathFromPath(p, 0)
		}
	})

	b.Run("Collide", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			g := GraphPathFromPath(p, 0)
			g.Collide(GraphPathFromPath(q, 1), 0.01)
		}
	})

	b.Run("RayCollisions", func(b *testing.B) {
		g := GraphPathFromPath(p, 0)
		ray := Ray{Point{0.0, 0.0}, Point{1.0, 0.0}}
		for i := 0; i < b.N; i++ {
			_ = g.RayCollisions(ray)
		}
	})
}
