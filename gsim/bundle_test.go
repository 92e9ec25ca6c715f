// SPDX-License-Identifier: MIT

package gsim_test

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gsim/cmatrix"
	"github.com/katalvlaran/gsim/dla"
	"github.com/katalvlaran/gsim/gsim"
)

func TestBuild_Errors(t *testing.T) {
	rho := mustState(t, "0")
	z := mustOp(t, "Z")

	_, err := gsim.Build(rho, z, nil)
	require.ErrorIs(t, err, dla.ErrDegenerateInput)

	_, err = gsim.Build(rho, z, mustGens(t, "X", "ZZ"))
	require.ErrorIs(t, err, dla.ErrBasisMismatch)

	_, err = gsim.Build(mustState(t, "00"), z, mustGens(t, "X"))
	require.ErrorIs(t, err, dla.ErrBasisMismatch, "state dimension")

	_, err = gsim.Build(rho, mustOp(t, "ZZ"), mustGens(t, "X"))
	require.ErrorIs(t, err, dla.ErrBasisMismatch, "observable dimension")

	nonHerm := cmatrix.MustFromRows([][]complex128{{0, 1}, {0, 0}})
	_, err = gsim.Build(rho, nonHerm, mustGens(t, "X"))
	require.ErrorIs(t, err, dla.ErrNotHermitian)

	_, err = gsim.Build(rho, z, mustGens(t, "X", "Z"), gsim.WithAlgebraOptions(dla.WithMaxDimension(2)))
	require.ErrorIs(t, err, dla.ErrDimensionLimit)
}

func TestBuild_NotExact(t *testing.T) {
	// span{X} misses Z entirely: both residuals are non-zero.
	b, err := gsim.Build(mustState(t, "0"), mustOp(t, "Z"), mustGens(t, "X"))
	require.NoError(t, err)
	require.Equal(t, 1, b.Dim())
	require.False(t, b.Exact(tol))
	require.InDelta(t, math.Sqrt2, b.ObservableResidual(), tol)

	val, err := b.Simulate(gsim.Circuit{{Theta: 0.3, Gate: 0}})
	require.NoError(t, err)
	require.InDelta(t, 0, val, tol, "nothing of Z survives the projection")
}

func TestBuild_LoggerAndIdentity(t *testing.T) {
	var buf bytes.Buffer
	gens := mustGens(t, "ZZ", "XI", "IX")
	b1, err := gsim.Build(mustState(t, "00"), mustOp(t, "ZZ"), gens,
		gsim.WithAlgebraOptions(dla.WithLogger(log.New(&buf, "", 0)), dla.WithWorkers(2)))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "dla: adjoint generators=3 m=6")

	b2, err := gsim.Build(mustState(t, "00"), mustOp(t, "ZZ"), gens)
	require.NoError(t, err)
	require.NotEqual(t, b1.ID(), b2.ID())
	require.Equal(t, b1.EIn(), b2.EIn(), "build is deterministic")
}

func TestAssemble(t *testing.T) {
	b, err := gsim.Build(mustState(t, "01"), mustOp(t, "0.5*YZ + -1*XI"), mustGens(t, "ZZ", "XI", "IX"),
		gsim.WithExpMode(gsim.ExpFull))
	require.NoError(t, err)

	again, err := gsim.Assemble(b.Basis(), b.EIn(), b.AdjointGenerators(), b.Observable(), gsim.WithExpMode(gsim.ExpFull))
	require.NoError(t, err)
	require.True(t, math.IsNaN(again.StateResidual()))
	require.True(t, again.Exact(tol), "observable residual alone decides")
	require.Equal(t, b.NumGenerators(), again.NumGenerators())

	c := gsim.Circuit{{Theta: 0.7, Gate: 2}, {Theta: -0.2, Gate: 0}, {Theta: 1.9, Gate: 1}}
	v1, err := b.Simulate(c)
	require.NoError(t, err)
	v2, err := again.Simulate(c)
	require.NoError(t, err)
	require.InDelta(t, v1, v2, 1e-12)

	t.Run("ShortEIn", func(t *testing.T) {
		_, err := gsim.Assemble(b.Basis(), b.EIn()[:2], b.AdjointGenerators(), b.Observable())
		require.ErrorIs(t, err, gsim.ErrDimensionMismatch)
	})
	t.Run("BadAdjointShape", func(t *testing.T) {
		small, _ := cmatrix.NewDense(2, 2)
		_, err := gsim.Assemble(b.Basis(), b.EIn(), []*cmatrix.Dense{small}, b.Observable())
		require.ErrorIs(t, err, gsim.ErrDimensionMismatch)
	})
	t.Run("ComplexAdjoint", func(t *testing.T) {
		adj := b.AdjointGenerators()
		require.NoError(t, adj[0].Set(0, 1, 1i))
		_, err := gsim.Assemble(b.Basis(), b.EIn(), adj, b.Observable())
		require.ErrorIs(t, err, gsim.ErrNotReal)
	})
	t.Run("NotOrthonormal", func(t *testing.T) {
		basis := b.Basis()
		basis[1] = basis[0]
		_, err := gsim.Assemble(basis, b.EIn(), b.AdjointGenerators(), b.Observable())
		require.ErrorIs(t, err, dla.ErrNotOrthonormal)
	})
}
