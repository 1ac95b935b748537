// SPDX-License-Identifier: MIT

// Package linalg: functional configuration for the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each knob impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Reusability: Options fields are unexported; public APIs consume ...Option.
package linalg

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the non-negative tolerance used by the pivot guard in
	// LUP/Det/Inverse. A pivot with magnitude below it marks the matrix singular.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on
	// construction and Set. NaN/±Inf entries are rejected when enabled.
	DefaultValidateNaNInf = true

	// DefaultMaxElements bounds rows*cols per matrix. Exceeding it fails with
	// ErrTooLarge instead of attempting an allocation that may abort the
	// process. 1<<26 float64s is 512 MiB of backing storage.
	DefaultMaxElements = 1 << 26
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid     = "linalg: WithEpsilon: eps must be finite, non-negative"
	panicMaxElementsInvalid = "linalg: WithMaxElements: limit must be > 0"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective numeric policy after applying Option setters.
// It is intentionally opaque to prevent external mutation; public entry
// points accept `...Option` and internally resolve them via gatherOptions.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	maxElems       int     // > 0; DefaultMaxElements
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithEpsilon sets the singularity tolerance used by LUP/Det/Inverse.
// Panics if eps is NaN, infinite or negative (programmer error).
// Complexity: O(1).
func WithEpsilon(eps float64) Option {
	// Stage 1: validate eps is finite and >= 0.
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	// Stage 2: return a setter that writes eps into Options.
	return func(o *Options) { o.eps = eps }
}

// WithMaxElements sets the per-matrix element ceiling (rows*cols).
// Panics if limit <= 0 (programmer error).
// Complexity: O(1).
func WithMaxElements(limit int) Option {
	if limit <= 0 {
		panic(panicMaxElementsInvalid)
	}

	return func(o *Options) { o.maxElems = limit }
}

// WithNaNInfValidation toggles rejection of non-finite values on
// construction and Set. Disabling it is an explicit opt-out for hosts that
// deliberately traffic in sentinels like +Inf.
// Complexity: O(1).
func WithNaNInfValidation(enabled bool) Option {
	return func(o *Options) { o.validateNaNInf = enabled }
}

// gatherOptions resolves the effective Options from defaults plus setters.
// Deterministic: later options win; no hidden state.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		maxElems:       DefaultMaxElements,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
