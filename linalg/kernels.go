// SPDX-License-Identifier: MIT
// Package linalg: elementwise and product kernels on Dense.
//
// Purpose:
//   - Declare the canonical linear-algebra kernels used across the library.
//   - All kernels perform strict fail-fast validation through the central
//     validators and return plain sentinels wrapped with the operation tag.
//
// Notes:
//   - Every kernel is pure: operands are never mutated, also on failure, and
//     the result is always freshly allocated storage.
//   - Loop orders are fixed (flat 0..n-1 or i→k→j) for reproducible floats.

package linalg

import "fmt"

// Operation name constants for unified error wrapping, no magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opScale     = "Scale"
	opTranspose = "Transpose"
	opDet       = "Det"
	opInverse   = "Inverse"
	opLUP       = "LUP"
	opNorm      = "FrobeniusNorm"
)

// opErrorf wraps err with an operation tag, preserving the original error
// via %w. Keeps a stable "Op: underlying" shape for uniform reporting.
// Call only with err != nil.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are
// not mutated. Internal helper for Add/Sub to share validation and the loop.
// Determinism: single flat slice walk 0..(r*c−1).
// Complexity: O(r*c) time, O(r*c) space for the new result.
func addSub(a, b *Dense, sign float64, opTag string) (*Dense, error) {
	// Validate shapes match.
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, opErrorf(opTag, err)
	}

	// Allocate result Dense with the operand's numeric policy. The shape is
	// already proven valid and equals a's, so under the inherited ceiling the
	// constructor cannot fail; keep the error path anyway for uniformity.
	res, err := newResult(a.r, a.c, a)
	if err != nil {
		return nil, opErrorf(opTag, err)
	}

	// Direct elementwise pass on the backing slices, deterministic 0..n-1.
	length := a.r * a.c
	for idx := 0; idx < length; idx++ {
		res.data[idx] = a.data[idx] + sign*b.data[idx]
	}

	return res, nil
}

// Add computes the elementwise sum C = A + B and returns a fresh Dense.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
// Complexity: O(r*c).
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the elementwise difference C = A - B and returns a fresh Dense.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
// Complexity: O(r*c).
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale computes C = alpha·A and returns a fresh Dense.
// Errors: ErrNilMatrix (nil input).
// Determinism: flat 0..n-1 walk. Complexity: O(r*c).
func Scale(a *Dense, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, opErrorf(opScale, err)
	}

	res, err := newResult(a.r, a.c, a)
	if err != nil {
		return nil, opErrorf(opScale, err)
	}
	length := a.r * a.c
	for idx := 0; idx < length; idx++ {
		res.data[idx] = alpha * a.data[idx]
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Stage 1 (Validate): A,B non-nil and inner dimensions (A.Cols == B.Rows).
// Stage 2 (Execute): i→k→j with row-major strides and zero-skip on A[i,k].
// Errors: ErrNilMatrix, ErrDimensionMismatch (inner mismatch), ErrTooLarge
// when the r×c product exceeds A's element ceiling.
// Complexity: O(r*n*c) time, O(r*c) space.
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulShapes(a, b); err != nil {
		return nil, opErrorf(opMul, err)
	}

	res, err := newResult(a.r, b.c, a)
	if err != nil {
		return nil, opErrorf(opMul, err)
	}

	var i, k, j int // loop indices (deterministic i→k→j order)
	var aik float64 // hoisted A[i,k]
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 { // zero-skip: contributes nothing to row i
				continue
			}
			for j = 0; j < b.c; j++ {
				res.data[i*b.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return res, nil
}

// Transpose returns Aᵀ as a fresh Dense; the input is never mutated.
// Always succeeds on a non-nil input.
// Determinism: fixed i→j traversal. Complexity: O(r*c).
func Transpose(a *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, opErrorf(opTranspose, err)
	}

	res, err := newResult(a.c, a.r, a)
	if err != nil {
		return nil, opErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < a.r; i++ {
		for j = 0; j < a.c; j++ {
			res.data[j*a.r+i] = a.data[i*a.c+j]
		}
	}

	return res, nil
}
