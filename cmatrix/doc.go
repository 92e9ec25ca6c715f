// SPDX-License-Identifier: MIT

// Package cmatrix provides dense complex128 operators for quantum-style
// linear algebra: density matrices, observables and Hermitian generators.
//
// 🚀 What is inside?
//
//	• Dense: row-major complex128 storage with safe At/Set accessors
//	• Algebra: Add, Sub, Scale, Mul, Commutator, Adjoint (conjugate transpose), Kron
//	• Hilbert–Schmidt geometry: Inner(A,B) = Tr(A†B), Norm(A) = √Tr(A†A)
//	• Predicates: IsHermitian, IsZero, AllClose
//	• Expm: exp(z·A) by scaling & squaring of a Taylor series; the full
//	  Hilbert-space propagator used to cross-check algebra results on small systems
//	• Bridges to package matrix: FromReal / RealPart
//
// Every kernel allocates a fresh result; operands are never mutated except by
// the explicitly named *InPlace helpers, which exist for Gram–Schmidt hot loops.
//
// Complexity: Mul/Commutator O(n³), Inner/Norm O(n²), Kron O(n²m²).
package cmatrix
