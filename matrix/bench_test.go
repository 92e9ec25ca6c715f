// SPDX-License-Identifier: MIT
// Package matrix_test provides benchmarks for the exponential and product
// kernels on antisymmetric inputs of adjoint-representation size.

package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/gsim/matrix"
)

// benchSizes cover small algebras (su(2)) up to so(n) for moderate chains.
var benchSizes = []int{3, 15, 64}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkV []float64
)

func BenchmarkMul(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := RandAntisymmetric(b, n, 1)
			y := RandAntisymmetric(b, n, 2)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkExpm(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandAntisymmetric(b, n, 3)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Expm(a, 0.8)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkExpmVec(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandAntisymmetric(b, n, 3)
			v := RandVec(n, 4)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				w, err := matrix.ExpmVec(a, 0.8, v, 1e-15)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = w
			}
		})
	}
}
