// SPDX-License-Identifier: MIT

package gsim_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/gsim"
	"github.com/katalvlaran/gsim/pauli"
)

func isingChain(b *testing.B, n int) (rho, obs *cmatrix.Dense, gens []*cmatrix.Dense) {
	b.Helper()
	for q := 0; q < n; q++ {
		l, err := pauli.On(n, q, 'X')
		if err != nil {
			b.Fatal(err)
		}
		g, err := pauli.Operator(l)
		if err != nil {
			b.Fatal(err)
		}
		gens = append(gens, g)
	}
	for q := 0; q+1 < n; q++ {
		l := []byte(strings.Repeat("I", n))
		l[q], l[q+1] = 'Z', 'Z'
		g, err := pauli.Operator(string(l))
		if err != nil {
			b.Fatal(err)
		}
		gens = append(gens, g)
	}
	var err error
	if rho, err = pauli.BasisState(strings.Repeat("0", n)); err != nil {
		b.Fatal(err)
	}

	return rho, gens[n], gens
}

func layeredCircuit(layers, gens int) gsim.Circuit {
	c := make(gsim.Circuit, 0, layers*gens)
	for l := 0; l < layers; l++ {
		for g := 0; g < gens; g++ {
			c = append(c, gsim.Step{Theta: 0.1 * float64(l+g+1), Gate: g})
		}
	}

	return c
}

func BenchmarkBuild_Ising4(b *testing.B) {
	rho, obs, gens := isingChain(b, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gsim.Build(rho, obs, gens); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkSimulate(b *testing.B, mode gsim.ExpMode) {
	rho, obs, gens := isingChain(b, 4)
	bundle, err := gsim.Build(rho, obs, gens, gsim.WithExpMode(mode))
	if err != nil {
		b.Fatal(err)
	}
	c := layeredCircuit(10, len(gens))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = bundle.Simulate(c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSimulate_Action(b *testing.B) { benchmarkSimulate(b, gsim.ExpAction) }
func BenchmarkSimulate_Full(b *testing.B)   { benchmarkSimulate(b, gsim.ExpFull) }
