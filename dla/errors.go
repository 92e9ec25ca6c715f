// SPDX-License-Identifier: MIT
// Package dla: sentinel error set.
// Messages are prefixed "dla: ..."; builders wrap with dlaErrorf(op, err) and
// callers match with errors.Is.

package dla

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput is returned when the generator set is empty or every
	// generator is numerically zero, leaving an empty basis.
	ErrDegenerateInput = errors.New("dla: degenerate generator set")

	// ErrBasisMismatch is returned when operator dimensions disagree with each
	// other or with the basis, or a coordinate vector has the wrong length.
	ErrBasisMismatch = errors.New("dla: dimension mismatch against basis")

	// ErrNonSquare is returned for a non-square generator or operator.
	ErrNonSquare = errors.New("dla: operator is not square")

	// ErrNotHermitian is returned when an operator that must be Hermitian is not.
	ErrNotHermitian = errors.New("dla: operator is not Hermitian")

	// ErrDimensionLimit is returned when the closure grows past WithMaxDimension.
	ErrDimensionLimit = errors.New("dla: algebra dimension limit exceeded")

	// ErrNotOrthonormal is returned by NewBasis for elements that are not
	// pairwise orthonormal within tolerance.
	ErrNotOrthonormal = errors.New("dla: basis is not orthonormal")
)

func dlaErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
