// SPDX-License-Identifier: MIT

// Package dla builds the dynamical Lie algebra of a set of Hermitian
// generators and the linear maps needed to simulate circuits inside it.
//
// 🚀 What is inside?
//
//	• Closure: orthonormal basis of the real Lie algebra spanned by the
//	  generators and their nested brackets i[A,B] (Hilbert–Schmidt inner product)
//	• Adjoint / AdjointAll: real antisymmetric matrices of X ↦ −i[H,X] on that basis
//	• Project / Reconstruct / Residual: algebra coordinates of an operator and back
//
// The algebra dimension m is usually far smaller than d² for structured
// generator sets, so evolution on m coordinates replaces d×d density matrices.
//
// Example:
//
//	gens := []*cmatrix.Dense{x, z}
//	b, err := dla.Closure(gens, dla.WithWorkers(4))
//	rs, err := dla.AdjointAll(b, gens)
//	v, err := dla.Project(b, rho)
//
// All builders are pure: inputs are never mutated and a Basis is immutable, so
// results can be shared between goroutines.
package dla
