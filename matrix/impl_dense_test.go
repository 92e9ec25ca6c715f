// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gsim/matrix"
)

func TestNewDense_Shapes(t *testing.T) {
	m := MustDense(t, 2, 3)
	r, c := m.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, m.ToRows())

	for _, shape := range [][2]int{{0, 1}, {1, 0}, {-1, 2}} {
		_, err := matrix.NewDense(shape[0], shape[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "shape %v", shape)
	}
}

func TestNewDenseFrom(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, "[1, 2]\n[3, 4]\n", m.String())

	_, err = matrix.NewDenseFrom(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.NewDenseFrom([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDense_AtSetBounds(t *testing.T) {
	m := MustDense(t, 2, 2)
	require.NoError(t, m.Set(1, 1, 5))

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := m.At(idx[0], idx[1])
		assert.ErrorIs(t, err, matrix.ErrOutOfRange)
		assert.ErrorIs(t, m.Set(idx[0], idx[1], 1), matrix.ErrOutOfRange)
	}
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	_, err := m.Row(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5}, row)
}

func TestDense_CloneIsDeep(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)

	row, _ := m.Row(0)
	row[1] = 7
	v, _ = m.At(0, 1)
	assert.Equal(t, 2.0, v, "Row must return a copy")
}

func TestNewDenseWithOptions_NaNPolicy(t *testing.T) {
	m, err := matrix.NewDenseWithOptions(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, math.NaN()))

	m, err = matrix.NewDenseWithOptions(1, 1, matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	require.NoError(t, err)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf, "last option wins")

	_, err = matrix.NewDenseWithOptions(0, 1)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, id.ToRows())

	like, err := matrix.IdentityLike(MustDense(t, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, like.Rows())
	_, err = matrix.IdentityLike(MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
