// SPDX-License-Identifier: MIT

// Package matrix provides the real dense kernels behind the simulator.
//
// 🚀 What is here?
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set and an
//     optional NaN/Inf ingestion policy.
//   - Arithmetic: Add, Sub, Scale, Mul, Commutator, Transpose, MatVec.
//   - Factorizations: Jacobi Eigen for symmetric input (Gram matrices), LU
//     without pivoting and Solve on top of it.
//   - Exponentials: Expm (Padé [6/6] with scaling and squaring) and ExpmVec,
//     the action exp(tA)·v by sub-stepped Taylor series.
//   - Validators and comparison helpers (AllClose, VecAllClose).
//
// ⚙️ Conventions
//
// Every kernel validates its operands first and returns a sentinel from
// errors.go wrapped with the kernel name, so errors.Is is the only way tests
// and callers should inspect failures. Kernels never mutate their inputs.
//
// Adjoint-representation matrices are antisymmetric; their exponentials are
// orthogonal, so ExpmVec preserves the Euclidean norm of coordinate vectors.
//
// See example_test.go for small runnable programs.
package matrix
