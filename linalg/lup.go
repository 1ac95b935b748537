// SPDX-License-Identifier: MIT
// Package linalg: LU decomposition with partial pivoting, determinant and
// inverse built on top of it.
//
// The factorization selects, for every column, the remaining row with the
// largest absolute pivot. A selected pivot with magnitude below the
// configured epsilon marks the matrix singular and the whole operation fails
// with ErrSingular (hard-fail policy; no flagged zeros).

package linalg

import (
	"fmt"
	"math"
)

// lupFactor computes the packed LU factorization of a square matrix with
// partial pivoting: PA = LU, with L unit lower triangular and U upper
// triangular stored in a single working copy.
//
// Blueprint:
//
//	Stage 1 (Validate): ensure m is non-nil and square.
//	Stage 2 (Prepare): clone m into the working copy, init permutation.
//	Stage 3 (Execute): for each column pick the max-|pivot| row, swap,
//	        eliminate below the diagonal.
//	Stage 4 (Finalize): return packed LU, permutation and swap sign.
//
// Returns ErrSingular when the best available pivot magnitude is < eps.
// Complexity: O(n³) time, O(n²) memory for the working copy.
func lupFactor(m *Dense, eps float64) (*Dense, []int, float64, error) {
	// Stage 1: validate input shape.
	if err := ValidateSquare(m); err != nil {
		return nil, nil, 0, opErrorf(opLUP, err)
	}
	n := m.r

	// Stage 2: working copy and identity permutation.
	lu := m.Clone()
	perm := make([]int, n)
	for i := 0; i < n; i++ {
		perm[i] = i
	}
	sign := 1.0 // flips on every row swap; feeds the determinant

	// Stage 3: elimination with partial pivoting.
	var (
		col, row, k int     // loop indices
		pivotRow    int     // row holding the max-|pivot| for this column
		pivotAbs    float64 // its magnitude
		factor      float64 // multiplier stored into L's strict lower part
	)
	for col = 0; col < n; col++ {
		// Select the remaining row with the largest absolute pivot.
		pivotRow = col
		pivotAbs = math.Abs(lu.data[col*n+col])
		for row = col + 1; row < n; row++ {
			if abs := math.Abs(lu.data[row*n+col]); abs > pivotAbs {
				pivotRow, pivotAbs = row, abs
			}
		}
		// Singularity guard: even the best pivot is numerically zero.
		if pivotAbs < eps {
			return nil, nil, 0, opErrorf(opLUP, fmt.Errorf("pivot %d (|%g| < eps %g): %w", col, pivotAbs, eps, ErrSingular))
		}
		// Swap rows in the working copy and the permutation.
		if pivotRow != col {
			swapRows(lu.data, n, pivotRow, col)
			perm[pivotRow], perm[col] = perm[col], perm[pivotRow]
			sign = -sign
		}
		// Eliminate entries below the pivot; store multipliers in place.
		for row = col + 1; row < n; row++ {
			factor = lu.data[row*n+col] / lu.data[col*n+col]
			lu.data[row*n+col] = factor
			for k = col + 1; k < n; k++ {
				lu.data[row*n+k] -= factor * lu.data[col*n+k]
			}
		}
	}

	// Stage 4: packed result.
	return lu, perm, sign, nil
}

// swapRows exchanges rows a and b of an n-column flat row-major buffer.
// Complexity: O(n).
func swapRows(data []float64, n, a, b int) {
	ra, rb := data[a*n:a*n+n], data[b*n:b*n+n]
	for i := 0; i < n; i++ {
		ra[i], rb[i] = rb[i], ra[i]
	}
}

// Det computes the determinant of a square matrix via pivoted LU:
// det(A) = sign(P) · Π U[k,k].
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular
// (pivot below epsilon; a singular determinant is an error, never a flagged 0).
// Determinism: fixed elimination and product order. Complexity: O(n³).
func Det(m *Dense, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)

	lu, _, sign, err := lupFactor(m, o.eps)
	if err != nil {
		return 0, opErrorf(opDet, err)
	}

	n := lu.r
	det := sign
	for k := 0; k < n; k++ { // fixed 0..n-1 product order
		det *= lu.data[k*n+k]
	}

	return det, nil
}

// Inverse returns A⁻¹ for a square non-singular matrix, computed column by
// column from the pivoted factorization: for each basis vector e_col, solve
// L·y = P·e_col by forward substitution, then U·x = y by backward
// substitution, and write x into column col of the result.
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular.
// Complexity: O(n³) time, O(n²) memory.
func Inverse(m *Dense, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)

	// Stage 1+2: validate and factor.
	lu, perm, _, err := lupFactor(m, o.eps)
	if err != nil {
		return nil, opErrorf(opInverse, err)
	}
	n := lu.r

	// Stage 3: result container and scratch vectors.
	inv, err := newResult(n, n, m)
	if err != nil {
		return nil, opErrorf(opInverse, err)
	}
	y := make([]float64, n) // forward-substitution scratch
	x := make([]float64, n) // backward-substitution scratch

	// Stage 4: one triangular solve pair per identity column.
	var (
		col, i, k int
		sum       float64
		rhs       float64 // (P·e_col)[i]
	)
	for col = 0; col < n; col++ {
		// Forward: L·y = P·e_col, L has an implicit unit diagonal.
		for i = 0; i < n; i++ {
			rhs = 0
			if perm[i] == col {
				rhs = 1
			}
			sum = 0
			for k = 0; k < i; k++ {
				sum += lu.data[i*n+k] * y[k]
			}
			y[i] = rhs - sum
		}
		// Backward: U·x = y. Pivots were already guarded during factoring.
		for i = n - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k < n; k++ {
				sum += lu.data[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / lu.data[i*n+i]
		}
		// Write solution x into column col of the inverse.
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
