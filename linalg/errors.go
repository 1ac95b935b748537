// SPDX-License-Identifier: MIT
// Package linalg: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the engine.
// All kernels MUST return these sentinels and tests MUST check them via
// errors.Is. No kernel panics on user-triggered error conditions; panics are
// reserved for programmer errors in option constructors.

package linalg

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "linalg: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the call site — callers will still use errors.Is to match.

var (
	// ErrBadShape is returned when a requested shape is invalid (r<=0 or c<=0)
	// or when supplied data does not cover exactly rows*cols elements.
	// Constructors must validate before allocation.
	ErrBadShape = errors.New("linalg: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid
	// bounds. Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("linalg: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add/Sub on different shapes, Mul where a.Cols != b.Rows, or a
	// square-only routine receiving a rectangular input.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrSingular is returned when the selected pivot magnitude falls below
	// the configured epsilon during LUP/Det/Inverse. This is the hard-fail
	// policy: near-singular inputs are reported loudly, never as a rounded 0.
	ErrSingular = errors.New("linalg: singular matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// by the numeric policy (construction, Set).
	ErrNaNInf = errors.New("linalg: NaN or Inf encountered")

	// ErrTooLarge is returned when rows*cols exceeds the configured element
	// ceiling. This is the engine-level stand-in for allocation failure,
	// which Go cannot observe as an error.
	ErrTooLarge = errors.New("linalg: matrix exceeds element limit")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("linalg: nil matrix")
)
