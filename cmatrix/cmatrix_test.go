// SPDX-License-Identifier: MIT

package cmatrix_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/matrix"
)

const tol = 1e-12

var (
	pauliX = cmatrix.MustFromRows([][]complex128{{0, 1}, {1, 0}})
	pauliY = cmatrix.MustFromRows([][]complex128{{0, -1i}, {1i, 0}})
	pauliZ = cmatrix.MustFromRows([][]complex128{{1, 0}, {0, -1}})
)

func requireClose(t *testing.T, want, got *cmatrix.Dense) {
	t.Helper()
	ok, err := cmatrix.AllClose(got, want, 0, 1e-10)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%sgot\n%s", want, got)
}

func TestNewFromRows_Errors(t *testing.T) {
	_, err := cmatrix.NewFromRows(nil)
	require.ErrorIs(t, err, cmatrix.ErrInvalidDimensions)

	_, err = cmatrix.NewFromRows([][]complex128{{1, 2}, {3}})
	require.ErrorIs(t, err, cmatrix.ErrBadShape)

	_, err = cmatrix.NewFromRows([][]complex128{{complex(math.NaN(), 0)}})
	require.ErrorIs(t, err, cmatrix.ErrNaNInf)

	_, err = cmatrix.NewSquareFromRows([][]complex128{{1, 2}})
	require.ErrorIs(t, err, cmatrix.ErrBadShape)

	require.Panics(t, func() { cmatrix.MustFromRows([][]complex128{{1, 2}}) })
}

func TestAtSet(t *testing.T) {
	m, err := cmatrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 3+4i))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 3+4i, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, cmatrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, cmplx.Inf()), cmatrix.ErrNaNInf)

	cp := m.Clone()
	require.NoError(t, cp.Set(1, 2, 0))
	v, _ = m.At(1, 2)
	require.Equal(t, 3+4i, v, "Clone must not alias")
}

func TestPauliAlgebra(t *testing.T) {
	// [X, Y] = 2iZ
	c, err := cmatrix.Commutator(pauliX, pauliY)
	require.NoError(t, err)
	want, err := cmatrix.Scale(pauliZ, 2i)
	require.NoError(t, err)
	requireClose(t, want, c)

	// XY = iZ
	xy, err := cmatrix.Mul(pauliX, pauliY)
	require.NoError(t, err)
	want, _ = cmatrix.Scale(pauliZ, 1i)
	requireClose(t, want, xy)

	// [X, X] = 0
	c, err = cmatrix.Commutator(pauliX, pauliX)
	require.NoError(t, err)
	require.True(t, cmatrix.IsZero(c, tol))
}

func TestInnerNormTrace(t *testing.T) {
	ip, err := cmatrix.Inner(pauliX, pauliX)
	require.NoError(t, err)
	require.InDelta(t, 2, real(ip), tol)

	ip, err = cmatrix.Inner(pauliX, pauliY)
	require.NoError(t, err)
	require.InDelta(t, 0, cmplx.Abs(ip), tol)

	// ⟨A,B⟩ is conjugate-linear in A.
	iy, _ := cmatrix.Scale(pauliY, 1i)
	ip, err = cmatrix.Inner(iy, pauliY)
	require.NoError(t, err)
	require.InDelta(t, 0, cmplx.Abs(ip-(-2i)), tol)

	require.InDelta(t, math.Sqrt2, cmatrix.Norm(pauliZ), tol)
	require.Zero(t, cmatrix.Norm(nil))

	tr, err := cmatrix.Trace(pauliZ)
	require.NoError(t, err)
	require.Zero(t, tr)

	_, err = cmatrix.Inner(pauliX, cmatrix.MustFromRows([][]complex128{{1}}))
	require.ErrorIs(t, err, cmatrix.ErrDimensionMismatch)
}

func TestAdjointHermitian(t *testing.T) {
	require.True(t, cmatrix.IsHermitian(pauliY, tol))
	iy, _ := cmatrix.Scale(pauliY, 1i)
	require.False(t, cmatrix.IsHermitian(iy, tol))
	require.ErrorIs(t, cmatrix.ValidateHermitian(iy, tol), cmatrix.ErrNotHermitian)

	dag, err := cmatrix.Adjoint(iy)
	require.NoError(t, err)
	neg, _ := cmatrix.Scale(iy, -1)
	requireClose(t, neg, dag)

	rect, err := cmatrix.NewFromRows([][]complex128{{1, 2i, 3}})
	require.NoError(t, err)
	rd, err := cmatrix.Adjoint(rect)
	require.NoError(t, err)
	require.Equal(t, 3, rd.Rows())
	v, _ := rd.At(1, 0)
	require.Equal(t, -2i, v)
}

func TestKron(t *testing.T) {
	xz, err := cmatrix.Kron(pauliX, pauliZ)
	require.NoError(t, err)
	require.Equal(t, 4, xz.Rows())
	want := cmatrix.MustFromRows([][]complex128{
		{0, 0, 1, 0},
		{0, 0, 0, -1},
		{1, 0, 0, 0},
		{0, -1, 0, 0},
	})
	requireClose(t, want, xz)
}

func TestAddScaledInPlace(t *testing.T) {
	acc := pauliX.Clone()
	require.NoError(t, cmatrix.AddScaledInPlace(acc, -1, pauliX))
	require.True(t, cmatrix.IsZero(acc, tol))
	require.ErrorIs(t,
		cmatrix.AddScaledInPlace(acc, 1, cmatrix.MustFromRows([][]complex128{{1}})),
		cmatrix.ErrDimensionMismatch)
}

func TestExpm(t *testing.T) {
	t.Run("Rotation", func(t *testing.T) {
		// exp(−iθX) = cosθ·I − i sinθ·X
		for _, theta := range []float64{0, 0.3, math.Pi / 2, 4.1} {
			u, err := cmatrix.Expm(pauliX, complex(0, -theta))
			require.NoError(t, err)
			c, s := complex(math.Cos(theta), 0), complex(0, -math.Sin(theta))
			want := cmatrix.MustFromRows([][]complex128{{c, s}, {s, c}})
			requireClose(t, want, u)
		}
	})
	t.Run("RealDiagonal", func(t *testing.T) {
		e, err := cmatrix.Expm(pauliZ, 3)
		require.NoError(t, err)
		want := cmatrix.MustFromRows([][]complex128{
			{complex(math.Exp(3), 0), 0},
			{0, complex(math.Exp(-3), 0)},
		})
		ok, err := cmatrix.AllClose(e, want, 1e-12, 1e-12)
		require.NoError(t, err)
		require.True(t, ok)
	})
	t.Run("Errors", func(t *testing.T) {
		_, err := cmatrix.Expm(nil, 1)
		require.ErrorIs(t, err, cmatrix.ErrNilMatrix)
		_, err = cmatrix.Expm(pauliX, cmplx.NaN())
		require.ErrorIs(t, err, cmatrix.ErrNaNInf)
	})
}

func TestRealBridge(t *testing.T) {
	r, err := matrix.NewDenseFrom([][]float64{{1, -2}, {2, 1}})
	require.NoError(t, err)
	c, err := cmatrix.FromReal(r)
	require.NoError(t, err)
	v, _ := c.At(0, 1)
	require.Equal(t, complex(-2, 0), v)

	back, imagMax, err := cmatrix.RealPart(c)
	require.NoError(t, err)
	require.Zero(t, imagMax)
	ok, err := matrix.AllClose(back, r, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)

	_, imagMax, err = cmatrix.RealPart(pauliY)
	require.NoError(t, err)
	require.Equal(t, 1.0, imagMax)

	_, err = cmatrix.FromReal(nil)
	require.ErrorIs(t, err, cmatrix.ErrNilMatrix)
}
