// SPDX-License-Identifier: MIT

package gsim

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gsim/dla"
)

// ExpMode selects how a gate exp(θR) is applied to the coordinate vector.
type ExpMode int

const (
	// ExpAction applies exp(θR)·v with a sub-stepped Taylor series, never
	// forming the m×m exponential. O(s·K·m²) per gate.
	ExpAction ExpMode = iota

	// ExpFull forms exp(θR) by Padé [6/6] with scaling & squaring and then
	// multiplies. O(m³) per gate.
	ExpFull
)

// String implements fmt.Stringer.
func (m ExpMode) String() string {
	switch m {
	case ExpAction:
		return "action"
	case ExpFull:
		return "full"
	default:
		return fmt.Sprintf("ExpMode(%d)", int(m))
	}
}

// ParseExpMode maps "action" / "full" (and "" → action) to an ExpMode.
func ParseExpMode(s string) (ExpMode, error) {
	switch s {
	case "", "action":
		return ExpAction, nil
	case "full":
		return ExpFull, nil
	default:
		return 0, fmt.Errorf("gsim: unknown exp mode %q", s)
	}
}

const (
	// DefaultExpMode is the gate application strategy.
	DefaultExpMode = ExpAction

	// DefaultExpTolerance is the relative truncation threshold of the Taylor
	// action in ExpAction mode.
	DefaultExpTolerance = 1e-15
)

// Option configures Build, Assemble and Simulate.
type Option func(*Options)

// Options holds resolved configuration. Bundles keep theirs for Simulate.
type Options struct {
	mode    ExpMode
	expTol  float64
	dlaOpts []dla.Option
}

// WithExpMode selects the gate application strategy.
func WithExpMode(m ExpMode) Option {
	if m != ExpAction && m != ExpFull {
		panic("gsim: WithExpMode: unknown mode")
	}

	return func(o *Options) { o.mode = m }
}

// WithExpTolerance sets the Taylor truncation threshold (finite, >= 0).
func WithExpTolerance(tol float64) Option {
	if !(tol >= 0) || math.IsInf(tol, 0) {
		panic("gsim: WithExpTolerance requires a finite tol >= 0")
	}

	return func(o *Options) { o.expTol = tol }
}

// WithAlgebraOptions forwards options to the dla builders used by Build
// (closure tolerance, workers, dimension cap, logger).
func WithAlgebraOptions(opts ...dla.Option) Option {
	return func(o *Options) { o.dlaOpts = append(o.dlaOpts, opts...) }
}

func gatherOptions(opts ...Option) Options {
	o := Options{mode: DefaultExpMode, expTol: DefaultExpTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
