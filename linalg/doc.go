// Package linalg provides dense linear algebra primitives for the lvlinalg
// engine.
//
// The package provides:
//
//   - Dense: a row-major float64 matrix with safe accessors; a Vector is the
//     cols==1 special case.
//   - Pure kernels: Add, Sub, Scale, Mul, Transpose — operands are never
//     mutated and results are always freshly allocated.
//   - Pivoted factorization: LU with partial pivoting behind Det and Inverse,
//     with an epsilon singularity guard (ErrSingular, hard-fail policy).
//   - FrobeniusNorm with a fixed reduction order for reproducible floats.
//   - A numeric policy (epsilon, element ceiling, NaN/Inf rejection) set via
//     functional options with documented defaults.
//
// All failures surface as package sentinel errors matched with errors.Is;
// nothing here panics on user data.
package linalg
