// SPDX-License-Identifier: MIT
// Package dla - functional options.
//
// Defaults are the single source of truth; WithX constructors panic on
// nonsensical values since those are programmer errors, not input errors.

package dla

import (
	"log"
	"runtime"
)

const (
	// DefaultTolerance is the Gram–Schmidt acceptance threshold: a normalized
	// candidate whose residual HS norm is at most this value is in the span.
	DefaultTolerance = 1e-8

	// DefaultHermitianEpsilon bounds |A_ij − conj(A_ji)| for Hermitian checks.
	DefaultHermitianEpsilon = 1e-10

	// DefaultMaxDimension of 0 means no limit beyond the natural bound d².
	DefaultMaxDimension = 0

	// chunkPerWorker bounds how many candidate commutators are held in memory
	// per worker between sequential acceptance rounds.
	chunkPerWorker = 32
)

// Option configures the builders in this package.
type Option func(*Options)

// Options holds the resolved builder configuration.
type Options struct {
	tol     float64
	hermEps float64
	workers int
	maxDim  int
	logger  *log.Logger
}

// WithTolerance sets the Gram–Schmidt acceptance threshold (> 0).
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("dla: WithTolerance requires tol > 0")
	}

	return func(o *Options) { o.tol = tol }
}

// WithHermitianEpsilon sets the Hermitian check tolerance (>= 0).
func WithHermitianEpsilon(eps float64) Option {
	if !(eps >= 0) {
		panic("dla: WithHermitianEpsilon requires eps >= 0")
	}

	return func(o *Options) { o.hermEps = eps }
}

// WithWorkers bounds the goroutines used for commutator evaluation (>= 1).
func WithWorkers(n int) Option {
	if n < 1 {
		panic("dla: WithWorkers requires n >= 1")
	}

	return func(o *Options) { o.workers = n }
}

// WithMaxDimension caps the algebra dimension; 0 disables the cap.
func WithMaxDimension(n int) Option {
	if n < 0 {
		panic("dla: WithMaxDimension requires n >= 0")
	}

	return func(o *Options) { o.maxDim = n }
}

// WithLogger enables per-pass progress logging. nil keeps the builder silent.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func defaultOptions() Options {
	return Options{
		tol:     DefaultTolerance,
		hermEps: DefaultHermitianEpsilon,
		workers: runtime.GOMAXPROCS(0),
		maxDim:  DefaultMaxDimension,
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func (o Options) logf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Printf(format, args...)
	}
}
