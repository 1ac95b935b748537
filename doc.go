// Package lvlinalg is a dense linear-algebra engine built to be embedded:
// a numeric core, an ownership arena with never-reused handles, and a flat
// foreign-function façade that dynamic hosts (Lua, Python, C callers) can
// drive through integer status codes.
//
// 🚀 What is lvlinalg?
//
//	A compact, deterministic library that brings together:
//		• Dense core: row-major matrices & vectors, value-semantics operations
//		• Kernels: add, sub, scale, multiply, transpose
//		• Decomposition: LU with partial pivoting → determinant & inverse
//		• Ownership: arena of monotonic handles, explicit release, borrowed views
//		• Boundary: flat façade with sentinel status codes, cgo c-shared exports
//		• Hosting: reference Lua binding & lz4 workspace snapshots
//
// ✨ Why choose lvlinalg?
//
//   - Predictable numerics – fixed loop order, bit-reproducible results
//   - Hard ownership rules – handles are minted once and never recycled
//   - Host-friendly – every fallible call maps to one stable integer code
//   - Extensible – options (epsilon, element ceiling, NaN policy) per call
//
// Under the hood, everything is organized under focused subpackages:
//
//	linalg/   — Dense type, kernels, LU/determinant/inverse, Frobenius norm
//	arena/    — handle table: Put, Get, Release, monotonic minting
//	ffi/      — flat façade, status codes, environment-driven configuration
//	snapshot/ — lz4 save/restore of a whole arena with handle remapping
//	luahost/  — reference embedding of the façade into a Lua interpreter
//	cmd/liblinalg — c-shared build exposing the lin_* C surface
//
// Quick ASCII example:
//
//	h = create(2, 2, {4, 7, 2, 6})
//	det(h) → 10        inverse(h)·h → I
//
//	a 2×2 matrix enters the arena, its handle drives every later call.
//
// Dive into README.md for the boundary contract, the status-code table, and
// host-side usage from Lua and C.
//
//	go get github.com/katalvlaran/lvlinalg
package lvlinalg
