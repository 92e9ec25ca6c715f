// SPDX-License-Identifier: MIT

// Package gsim simulates expectation values of parameterized quantum circuits
// inside the dynamical Lie algebra (DLA) of the circuit's generators.
//
// 🚀 What is gsim?
//
// A circuit is a list of gates exp(−iθ·H_k) drawn from a fixed generator set
// {H_k}. Instead of evolving a d×d density matrix, gsim works with the m
// coordinates of the state in an orthonormal basis of the generators' Lie
// closure, where each gate is the m×m orthogonal map exp(θ·R_k):
//
//	bundle, err := gsim.Build(rho, obs, generators)
//	val, err := bundle.Simulate(gsim.Circuit{{Theta: 0.3, Gate: 0}, {Theta: 1.1, Gate: 2}})
//
// Build runs once (closure, adjoint matrices, projections); Simulate is cheap
// and may be called concurrently on one Bundle.
//
// ✨ Accuracy
//
// The part of the state or observable outside the algebra is discarded. The
// result equals Tr(O·UρU†) exactly whenever either the observable or the state
// lies in the algebra; Bundle.Exact and the residual accessors report this.
//
// ⚙️ Options
//
//	WithExpMode(ExpAction|ExpFull)  how exp(θR) is applied
//	WithExpTolerance(tol)           Taylor truncation of ExpAction
//	WithAlgebraOptions(dla...)      closure tolerance, workers, dimension cap, logger
package gsim
