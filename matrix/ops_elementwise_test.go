// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gsim/matrix"
)

func TestAllClose(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFrom(t, [][]float64{{1, 2}, {3, 4 + 1e-9}})

	ok, err := matrix.AllClose(a, b, 0, 1e-8)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(a, hide{b}, 0, 1e-10)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = matrix.AllClose(a, b, 1e-9, 0)
	require.NoError(t, err)
	assert.True(t, ok, "relative tolerance scales with |b|")

	_, err = matrix.AllClose(a, MustDense(t, 1, 2), 0, 0)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestVecAllClose_Infinities(t *testing.T) {
	ok, err := matrix.VecAllClose([]float64{math.Inf(1)}, []float64{math.Inf(1)}, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.VecAllClose([]float64{math.Inf(1)}, []float64{math.Inf(-1)}, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = matrix.VecAllClose([]float64{math.NaN()}, []float64{math.NaN()}, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = matrix.VecAllClose([]float64{1}, nil, 0, 0)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
