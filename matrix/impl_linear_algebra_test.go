// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gsim/matrix"
)

func TestAddSubScale(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFrom(t, [][]float64{{4, 3}, {2, 1}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 5}, {5, 5}}, sum.ToRows())

	diff, err := matrix.Sub(a, hide{b})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-3, -1}, {1, 3}}, diff.ToRows())

	sc, err := matrix.Scale(hide{a}, -2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-2, -4}, {-6, -8}}, sc.ToRows())

	_, err = matrix.Add(a, MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Scale(a, math.NaN())
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestMul_FastPathMatchesFallback(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2, 0}, {0, 1, -1}})
	b := MustFrom(t, [][]float64{{1, 0}, {2, 1}, {0, 3}})
	want := [][]float64{{5, 2}, {2, -2}}

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, want, fast.ToRows())

	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	assert.Equal(t, fast.ToRows(), slow.ToRows())

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestCommutator(t *testing.T) {
	// Generators of so(3): [L_x, L_y] = L_z.
	lx := MustFrom(t, [][]float64{{0, 0, 0}, {0, 0, -1}, {0, 1, 0}})
	ly := MustFrom(t, [][]float64{{0, 0, 1}, {0, 0, 0}, {-1, 0, 0}})
	lz := MustFrom(t, [][]float64{{0, -1, 0}, {1, 0, 0}, {0, 0, 0}})

	c, err := matrix.Commutator(lx, ly)
	require.NoError(t, err)
	requireClose(t, lz, c, 0)

	self, err := matrix.Commutator(lx, lx)
	require.NoError(t, err)
	requireClose(t, MustDense(t, 3, 3), self, 0)

	_, err = matrix.Commutator(MustDense(t, 2, 3), MustDense(t, 3, 2))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTransposeAndMatVec(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	tr, err := matrix.Transpose(hide{a})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.ToRows())

	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, y)

	_, err = matrix.MatVec(a, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestEigen_Symmetric(t *testing.T) {
	m := MustFrom(t, [][]float64{{2, 1, 1}, {1, 2, 1}, {1, 1, 2}})
	vals, vecs, err := matrix.Eigen(m, 1e-12, 100)
	require.NoError(t, err)

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	assert.InDeltaSlice(t, []float64{1, 1, 4}, sorted, 1e-10)

	// Columns of vecs are orthonormal eigenvectors: m·q_k = λ_k·q_k.
	for k := range vals {
		q := make([]float64, 3)
		for i := range q {
			q[i], _ = vecs.At(i, k)
		}
		assert.InDelta(t, 1, matrix.VecNorm2(q), 1e-10)
		mq, err := matrix.MatVec(m, q)
		require.NoError(t, err)
		for i := range q {
			assert.InDelta(t, vals[k]*q[i], mq[i], 1e-10)
		}
	}

	_, _, err = matrix.Eigen(MustFrom(t, [][]float64{{1, 2}, {0, 1}}), 1e-9, 10)
	assert.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestLUSolve(t *testing.T) {
	a := MustFrom(t, [][]float64{{4, 3}, {6, 3}})
	l, u, err := matrix.LU(a)
	require.NoError(t, err)
	lu, err := matrix.Mul(l, u)
	require.NoError(t, err)
	requireClose(t, a, lu, 1e-12)

	x, err := matrix.Solve(a, MustFrom(t, [][]float64{{10}, {12}}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, []float64{mustAt(t, x, 0, 0), mustAt(t, x, 1, 0)}, 1e-12)

	// Solve against I recovers the inverse.
	id, _ := matrix.NewIdentity(2)
	inv, err := matrix.Solve(a, id)
	require.NoError(t, err)
	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	requireClose(t, id, prod, 1e-12)

	_, err = matrix.Solve(MustFrom(t, [][]float64{{1, 2}, {2, 4}}), id)
	assert.ErrorIs(t, err, matrix.ErrSingular)
	_, err = matrix.Solve(a, MustDense(t, 3, 1))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, _, err = matrix.LU(MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestVectorHelpers(t *testing.T) {
	d, err := matrix.Dot([]float64{1, 2, 3}, []float64{4, -5, 6})
	require.NoError(t, err)
	assert.Equal(t, 12.0, d)
	_, err = matrix.Dot([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	assert.Equal(t, 5.0, matrix.VecNorm2([]float64{3, -4}))
	assert.Equal(t, 4.0, matrix.VecNormInf([]float64{3, -4}))
	assert.Equal(t, 0.0, matrix.VecNormInf(nil))
}

func mustAt(tb testing.TB, m matrix.Matrix, i, j int) float64 {
	tb.Helper()
	v, err := m.At(i, j)
	require.NoError(tb, err)

	return v
}
