// SPDX-License-Identifier: MIT
// Package matrix_test contains shared fixtures for the kernel tests.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gsim/matrix"
)

// hide wraps any Matrix to hide its concrete type, forcing kernels onto
// their non-*Dense fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(tb, err)

	return m
}

// MustFrom builds a *Dense from rows or fails the test.
func MustFrom(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(tb, err)

	return m
}

// RandAntisymmetric fills an n×n antisymmetric matrix with entries in
// [-1, 1) from a fixed seed.
func RandAntisymmetric(tb testing.TB, n int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(tb, n, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 2*rng.Float64() - 1
			require.NoError(tb, m.Set(i, j, v))
			require.NoError(tb, m.Set(j, i, -v))
		}
	}

	return m
}

// RandVec returns a length-n vector with entries in [-1, 1).
func RandVec(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for i := range v {
		v[i] = 2*rng.Float64() - 1
	}

	return v
}

// requireClose asserts elementwise closeness of two matrices.
func requireClose(tb testing.TB, want, got matrix.Matrix, atol float64) {
	tb.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(tb, err)
	require.Truef(tb, ok, "want\n%v\ngot\n%v", want, got)
}
