package pcaref

import (
	"fmt"
	"testing"
)

func BenchmarkCovariance(b *testing.B) {
	shapes := []struct{ samples, features, count int }{
		{64, 4, 8},
		{256, 8, 8},
		{1024, 16, 4},
	}
	for _, s := range shapes {
		name := fmt.Sprintf("%dx%dx%d", s.count, s.samples, s.features)
		b.Run(name, func(b *testing.B) {
			batch := GenerateBatch(s.samples, s.features, s.count, 42)
			p, err := New(s.samples, s.features, batch, Options{})
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				p.ComputeCovarianceMatrix()
			}
			flops := 2 * s.count * s.samples * s.features * s.features
			b.ReportMetric(float64(flops)/float64(b.Elapsed().Nanoseconds()/int64(b.N)), "flops/ns")
		})
	}
}

func BenchmarkEigenSolve(b *testing.B) {
	shapes := []struct{ samples, features, count int }{
		{64, 4, 8},
		{256, 8, 8},
		{1024, 16, 4},
	}
	for _, s := range shapes {
		name := fmt.Sprintf("%dx%dx%d", s.count, s.samples, s.features)
		b.Run(name, func(b *testing.B) {
			batch := GenerateBatch(s.samples, s.features, s.count, 42)
			p, err := New(s.samples, s.features, batch, Options{})
			if err != nil {
				b.Fatal(err)
			}
			p.ComputeCovarianceMatrix()
			b.ResetTimer()
			iters := 0
			for i := 0; i < b.N; i++ {
				if err := p.ComputeEigenValuesAndVectors(); err != nil {
					b.Fatal(err)
				}
				for m := 0; m < s.count; m++ {
					iters += p.IterationsAt(m)
				}
			}
			b.ReportMetric(float64(iters)/float64(b.N*s.count), "qr-iters/matrix")
		})
	}
}
