// SPDX-License-Identifier: MIT
// Package gsim: sentinel error set.
// Algebra construction errors come from package dla (ErrDegenerateInput,
// ErrBasisMismatch, ErrNotHermitian, ErrDimensionLimit) and pass through
// wrapped, so errors.Is works against either package.

package gsim

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a coordinate vector or adjoint
	// matrix does not match the algebra dimension m.
	ErrDimensionMismatch = errors.New("gsim: dimension mismatch")

	// ErrIndexOutOfRange is returned when a circuit step names a generator
	// index outside [0, number of generators).
	ErrIndexOutOfRange = errors.New("gsim: generator index out of range")

	// ErrNilBundle is returned by methods called on a nil *Bundle.
	ErrNilBundle = errors.New("gsim: nil bundle")

	// ErrNonFiniteParameter is returned for a NaN or ±Inf circuit parameter.
	ErrNonFiniteParameter = errors.New("gsim: non-finite circuit parameter")

	// ErrNonFiniteResult is returned when evolution produces NaN or ±Inf
	// coordinates.
	ErrNonFiniteResult = errors.New("gsim: non-finite evolution result")

	// ErrNotReal is returned by Assemble for an adjoint matrix with a
	// non-negligible imaginary part.
	ErrNotReal = errors.New("gsim: adjoint matrix is not real")
)

func gsimErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
