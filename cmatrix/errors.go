// SPDX-License-Identifier: MIT
// Package cmatrix: sentinel error set.
// Same policy as package matrix: every message is prefixed "cmatrix: ...",
// kernels wrap with cmatrixErrorf(op, err) and callers match with errors.Is.

package cmatrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("cmatrix: dimensions must be > 0")

	// ErrBadShape is returned for ragged row data or a non-square operator where
	// a square one is required.
	ErrBadShape = errors.New("cmatrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("cmatrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("cmatrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense was used.
	ErrNilMatrix = errors.New("cmatrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf component in a real or imaginary part.
	ErrNaNInf = errors.New("cmatrix: NaN or Inf encountered")

	// ErrNotHermitian signals A ≠ A† beyond the requested tolerance.
	ErrNotHermitian = errors.New("cmatrix: matrix is not Hermitian within eps")
)
