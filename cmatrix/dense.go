// SPDX-License-Identifier: MIT

// Package cmatrix - Dense complex storage (row-major) & safe accessors.
//
// Purpose:
//   - Mirror matrix.Dense for complex128: flat buffer, offset i*cols + j.
//   - Safety at the public surface: At/Set return errors instead of panicking.
//   - Reject NaN/Inf at ingestion (NewFromRows, Set).

package cmatrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/katalvlaran/gsim/matrix"
)

const (
	ctxAt   = "At"
	ctxSet  = "Set"
	ctxFrom = "FromRows"
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// cmatrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
func cmatrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Dense is a row-major complex matrix.
//   - r,c hold dimensions.
//   - data holds r*c entries, offset = i*c + j.
type Dense struct {
	r, c int
	data []complex128
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix.
// Errors: ErrInvalidDimensions when rows<=0 or cols<=0.
// Complexity: O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// NewIdentity returns the n×n identity operator.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1
	}

	return id, nil
}

// NewFromRows copies rectangular row data into a fresh *Dense.
// Implementation:
//   - Stage 1: reject empty input (ErrInvalidDimensions) and ragged rows (ErrBadShape).
//   - Stage 2: copy entries, rejecting NaN/Inf components (ErrNaNInf).
//
// Complexity: O(r*c).
func NewFromRows(rows [][]complex128) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.r; i++ {
		if len(rows[i]) != m.c {
			return nil, denseErrorf(ctxFrom, i, len(rows[i]), ErrBadShape)
		}
		for j := 0; j < m.c; j++ {
			if isNonFinite(rows[i][j]) {
				return nil, denseErrorf(ctxFrom, i, j, ErrNaNInf)
			}
			m.data[i*m.c+j] = rows[i][j]
		}
	}

	return m, nil
}

// NewSquareFromRows is NewFromRows plus a square-shape check; the boundary
// constructor for operators (density matrices, observables, generators).
// Errors: as NewFromRows, plus ErrBadShape for non-square input.
func NewSquareFromRows(rows [][]complex128) (*Dense, error) {
	m, err := NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	if m.r != m.c {
		return nil, cmatrixErrorf("NewSquareFromRows", ErrBadShape)
	}

	return m, nil
}

// MustFromRows is NewSquareFromRows for fixed literals (tests, Pauli tables).
// It panics on invalid input, which for literals is a programmer error.
func MustFromRows(rows [][]complex128) *Dense {
	m, err := NewSquareFromRows(rows)
	if err != nil {
		panic(err)
	}

	return m
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// IsSquare reports Rows == Cols.
func (m *Dense) IsSquare() bool { return m.r == m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the entry at (row, col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (complex128, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
// Errors: ErrOutOfRange, ErrNaNInf.
func (m *Dense) Set(row, col int, v complex128) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	cp := make([]complex128, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// ToRows materializes the matrix as [][]complex128 (fresh slices).
func (m *Dense) ToRows() [][]complex128 {
	out := make([][]complex128, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = make([]complex128, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// String implements fmt.Stringer.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// FromReal lifts a real matrix into a complex one (zero imaginary parts).
// Used to expose adjoint-representation matrices at the complex boundary.
// Errors: ErrNilMatrix, propagated matrix.At errors.
func FromReal(m matrix.Matrix) (*Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, cmatrixErrorf("FromReal", ErrNilMatrix)
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, cmatrixErrorf("FromReal", err)
	}
	var v float64
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, cmatrixErrorf("FromReal", err)
			}
			out.data[i*out.c+j] = complex(v, 0)
		}
	}

	return out, nil
}

// RealPart returns Re(m) as a *matrix.Dense together with max |Im(m_ij)|,
// so callers can decide whether dropping the imaginary part was lossless.
// Errors: ErrNilMatrix.
func RealPart(m *Dense) (*matrix.Dense, float64, error) {
	if m == nil {
		return nil, 0, cmatrixErrorf("RealPart", ErrNilMatrix)
	}
	out, err := matrix.NewDense(m.r, m.c)
	if err != nil {
		return nil, 0, cmatrixErrorf("RealPart", err)
	}
	var imagMax float64
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			z := m.data[i*m.c+j]
			if err = out.Set(i, j, real(z)); err != nil {
				return nil, 0, cmatrixErrorf("RealPart", err)
			}
			if a := math.Abs(imag(z)); a > imagMax {
				imagMax = a
			}
		}
	}

	return out, imagMax, nil
}

func isNonFinite(z complex128) bool {
	return cmplx.IsNaN(z) || cmplx.IsInf(z)
}
