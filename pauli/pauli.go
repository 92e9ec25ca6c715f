// SPDX-License-Identifier: MIT

// Package pauli builds multi-qubit operators from Pauli strings.
//
// Conventions:
//   - A label such as "XZI" acts with X on qubit 0, Z on qubit 1, I on qubit 2.
//   - Qubit 0 is the most significant tensor factor (leftmost in Kron), so the
//     computational basis state "01" is index 1 of a 4-dimensional space.
//   - Sums are weighted with real coefficients, so every Sum is Hermitian.
package pauli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/gsim/cmatrix"
)

var (
	// ErrEmptyLabel is returned for an empty Pauli string or an empty sum.
	ErrEmptyLabel = errors.New("pauli: empty label")

	// ErrUnknownLetter is returned for a letter outside {I, X, Y, Z}.
	ErrUnknownLetter = errors.New("pauli: unknown letter")

	// ErrQubitMismatch is returned when terms of a sum act on different qubit counts.
	ErrQubitMismatch = errors.New("pauli: qubit count mismatch")

	// ErrBadTerm is returned when a term of a textual sum cannot be parsed.
	ErrBadTerm = errors.New("pauli: malformed term")

	// ErrBadBits is returned for a basis-state label that is not a 0/1 string.
	ErrBadBits = errors.New("pauli: malformed bit string")
)

var single = map[byte]*cmatrix.Dense{
	'I': cmatrix.MustFromRows([][]complex128{{1, 0}, {0, 1}}),
	'X': cmatrix.MustFromRows([][]complex128{{0, 1}, {1, 0}}),
	'Y': cmatrix.MustFromRows([][]complex128{{0, -1i}, {1i, 0}}),
	'Z': cmatrix.MustFromRows([][]complex128{{1, 0}, {0, -1}}),
}

func pauliErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Letter returns the 2×2 matrix of a single Pauli letter (case-insensitive).
func Letter(c byte) (*cmatrix.Dense, error) {
	m, ok := single[upper(c)]
	if !ok {
		return nil, pauliErrorf(fmt.Sprintf("Letter(%q)", c), ErrUnknownLetter)
	}

	return m.Clone(), nil
}

// Operator returns the 2^n × 2^n matrix of the Pauli string label.
// Errors: ErrEmptyLabel, ErrUnknownLetter.
// Complexity: O(4^n) for the final Kron.
func Operator(label string) (*cmatrix.Dense, error) {
	if label == "" {
		return nil, pauliErrorf("Operator", ErrEmptyLabel)
	}
	out, err := Letter(label[0])
	if err != nil {
		return nil, pauliErrorf("Operator", err)
	}
	for i := 1; i < len(label); i++ {
		f, err := Letter(label[i])
		if err != nil {
			return nil, pauliErrorf("Operator", err)
		}
		if out, err = cmatrix.Kron(out, f); err != nil {
			return nil, pauliErrorf("Operator", err)
		}
	}

	return out, nil
}

// On returns the n-qubit string with letter c on qubit q and identity elsewhere.
func On(n, q int, c byte) (string, error) {
	if n <= 0 || q < 0 || q >= n {
		return "", pauliErrorf("On", ErrEmptyLabel)
	}
	if _, ok := single[upper(c)]; !ok {
		return "", pauliErrorf("On", ErrUnknownLetter)
	}
	b := []byte(strings.Repeat("I", n))
	b[q] = upper(c)

	return string(b), nil
}

// Term is a real-weighted Pauli string.
type Term struct {
	Coeff float64
	Label string
}

// Sum is a real linear combination of Pauli strings on a common qubit count.
type Sum []Term

// Qubits returns the qubit count shared by all terms, or an error.
func (s Sum) Qubits() (int, error) {
	if len(s) == 0 {
		return 0, pauliErrorf("Sum.Qubits", ErrEmptyLabel)
	}
	n := len(s[0].Label)
	for _, t := range s[1:] {
		if len(t.Label) != n {
			return 0, pauliErrorf("Sum.Qubits", ErrQubitMismatch)
		}
	}

	return n, nil
}

// Operator materializes Σ c_k P_k.
// Errors: ErrEmptyLabel, ErrQubitMismatch, ErrUnknownLetter.
func (s Sum) Operator() (*cmatrix.Dense, error) {
	if _, err := s.Qubits(); err != nil {
		return nil, err
	}
	var acc *cmatrix.Dense
	for _, t := range s {
		p, err := Operator(t.Label)
		if err != nil {
			return nil, pauliErrorf("Sum.Operator", err)
		}
		if acc == nil {
			acc, err = cmatrix.NewDense(p.Rows(), p.Cols())
			if err != nil {
				return nil, pauliErrorf("Sum.Operator", err)
			}
		}
		if err = cmatrix.AddScaledInPlace(acc, complex(t.Coeff, 0), p); err != nil {
			return nil, pauliErrorf("Sum.Operator", err)
		}
	}

	return acc, nil
}

// String renders the sum in the format accepted by Parse.
func (s Sum) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = strconv.FormatFloat(t.Coeff, 'g', -1, 64) + "*" + t.Label
	}

	return strings.Join(parts, " + ")
}

// Parse reads a sum such as "0.5*XZ + -1*ZZ" or "XI - 2*IZ".
// A term without "*" has coefficient ±1. Whitespace is ignored.
// Errors: ErrEmptyLabel, ErrBadTerm, ErrUnknownLetter, ErrQubitMismatch.
func Parse(text string) (Sum, error) {
	compact := strings.Join(strings.Fields(text), "")
	if compact == "" {
		return nil, pauliErrorf("Parse", ErrEmptyLabel)
	}

	// Split on '+'/'-' that start a term; signs following 'e'/'E' or '*'
	// belong to a number.
	var (
		raw   []string
		start int
	)
	for i := 1; i < len(compact); i++ {
		c := compact[i]
		if c != '+' && c != '-' {
			continue
		}
		prev := compact[i-1]
		if prev == '*' || prev == '+' || prev == '-' || ((prev == 'e' || prev == 'E') && i >= 2 && isDigit(compact[i-2])) {
			continue
		}
		raw = append(raw, compact[start:i])
		start = i
	}
	raw = append(raw, compact[start:])

	sum := make(Sum, 0, len(raw))
	for _, r := range raw {
		t, err := parseTerm(r)
		if err != nil {
			return nil, pauliErrorf(fmt.Sprintf("Parse(%q)", r), err)
		}
		sum = append(sum, t)
	}
	if _, err := sum.Qubits(); err != nil {
		return nil, pauliErrorf("Parse", err)
	}

	return sum, nil
}

func parseTerm(r string) (Term, error) {
	sign := 1.0
	for len(r) > 0 && (r[0] == '+' || r[0] == '-') {
		if r[0] == '-' {
			sign = -sign
		}
		r = r[1:]
	}
	coeff, label := 1.0, r
	if i := strings.LastIndexByte(r, '*'); i >= 0 {
		v, err := strconv.ParseFloat(r[:i], 64)
		if err != nil {
			return Term{}, ErrBadTerm
		}
		coeff, label = v, r[i+1:]
	}
	if label == "" {
		return Term{}, ErrBadTerm
	}
	label = strings.ToUpper(label)
	for i := 0; i < len(label); i++ {
		if _, ok := single[label[i]]; !ok {
			return Term{}, ErrUnknownLetter
		}
	}

	return Term{Coeff: sign * coeff, Label: label}, nil
}

// BasisState returns the density matrix |b⟩⟨b| of a computational basis state.
// bits[0] is qubit 0 (most significant).
// Errors: ErrBadBits.
func BasisState(bits string) (*cmatrix.Dense, error) {
	if bits == "" {
		return nil, pauliErrorf("BasisState", ErrBadBits)
	}
	idx := 0
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			idx <<= 1
		case '1':
			idx = idx<<1 | 1
		default:
			return nil, pauliErrorf("BasisState", ErrBadBits)
		}
	}
	d := 1 << len(bits)
	rho, err := cmatrix.NewDense(d, d)
	if err != nil {
		return nil, pauliErrorf("BasisState", err)
	}
	if err = rho.Set(idx, idx, 1); err != nil {
		return nil, pauliErrorf("BasisState", err)
	}

	return rho, nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}

	return c
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
