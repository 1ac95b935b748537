// SPDX-License-Identifier: MIT

// Package ffi is the flat foreign-function façade over the numeric engine
// and its arena.
//
// This is the system's only trust boundary: every exported operation first
// validates the referenced handle(s) and all primitive inputs, then computes
// through the engine, registers any result in the arena, and returns the new
// handle — or a reserved negative status code, since rich error values
// cannot cross a foreign boundary. Status codes are distinguishable from
// every valid handle (handles are strictly positive).
//
// A Facade is an explicit value owning its arena, so isolated instances can
// coexist (one per test, one per embedded interpreter). The package-level
// Default instance is the single process-wide façade that the C ABI in
// cmd/liblinalg exposes; it is configured from the environment.
//
// Everything here is fully synchronous and carries no interior locking;
// concurrent invocation from multiple host threads requires external
// synchronization supplied by the host.
package ffi

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvlinalg/arena"
	"github.com/katalvlaran/lvlinalg/linalg"
)

// Reserved status codes. All strictly negative; 0 is success for calls that
// do not mint a handle. A valid handle is always >= 1.
const (
	StatusOK            int64 = 0
	StatusInvalidHandle int64 = -1 // unknown or already-released handle
	StatusShapeMismatch int64 = -2 // incompatible operand dimensions
	StatusBadShape      int64 = -3 // malformed shape or data length at creation
	StatusSingular      int64 = -4 // determinant/inverse undefined within tolerance
	StatusOutOfMemory   int64 = -5 // allocation refused (element ceiling)
	StatusOutOfRange    int64 = -6 // element index outside the matrix
	StatusNotFinite     int64 = -7 // NaN/±Inf rejected by the numeric policy
	StatusInternal      int64 = -8 // any error outside the taxonomy
)

// statusOf narrows an engine/arena error to its reserved status code.
// Unknown errors collapse to StatusInternal; nil maps to StatusOK.
func statusOf(err error) int64 {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, arena.ErrUnknownHandle):
		return StatusInvalidHandle
	case errors.Is(err, linalg.ErrDimensionMismatch):
		return StatusShapeMismatch
	case errors.Is(err, linalg.ErrBadShape):
		return StatusBadShape
	case errors.Is(err, linalg.ErrSingular):
		return StatusSingular
	case errors.Is(err, linalg.ErrTooLarge):
		return StatusOutOfMemory
	case errors.Is(err, linalg.ErrOutOfRange):
		return StatusOutOfRange
	case errors.Is(err, linalg.ErrNaNInf):
		return StatusNotFinite
	default:
		return StatusInternal
	}
}

// Facade owns one arena plus the numeric policy applied to every matrix it
// creates.
type Facade struct {
	arena *arena.Arena
	opts  []linalg.Option // resolved once from Config, reused per call
}

// New builds an isolated façade from cfg. Nonsensical config values fall
// back to the engine defaults rather than panicking: the boundary must
// reject bad input, not crash on it.
func New(cfg Config) *Facade {
	opts := make([]linalg.Option, 0, 3)
	if cfg.Epsilon >= 0 && !math.IsNaN(cfg.Epsilon) && !math.IsInf(cfg.Epsilon, 0) {
		opts = append(opts, linalg.WithEpsilon(cfg.Epsilon))
	}
	if cfg.MaxElements > 0 {
		opts = append(opts, linalg.WithMaxElements(cfg.MaxElements))
	}
	opts = append(opts, linalg.WithNaNInfValidation(cfg.ValidateNaNInf))

	arenaOpts := []arena.Option{}
	if cfg.Debug {
		if log, err := zap.NewDevelopment(); err == nil {
			arenaOpts = append(arenaOpts, arena.WithLogger(log))
		}
	}

	return &Facade{
		arena: arena.New(arenaOpts...),
		opts:  opts,
	}
}

// Arena exposes the owned arena to library-side collaborators (snapshots).
// Foreign hosts never see this; only handles cross the boundary.
func (f *Facade) Arena() *arena.Arena {
	return f.arena
}

// get resolves a boundary handle value, bounds-checking before any lookup.
func (f *Facade) get(h int64) (*linalg.Dense, int64) {
	if h <= 0 { // no valid handle is ever <= 0
		return nil, StatusInvalidHandle
	}
	m, err := f.arena.Get(arena.Handle(h))
	if err != nil {
		return nil, statusOf(err)
	}

	return m, StatusOK
}

// Create registers a new rows×cols matrix and returns its handle.
// nil data zero-fills; otherwise len(data) must equal rows*cols
// (StatusBadShape). The slice is copied: the host keeps ownership of its
// own memory.
func (f *Facade) Create(rows, cols int64, data []float64) int64 {
	if rows <= 0 || cols <= 0 {
		return StatusBadShape
	}

	var (
		m   *linalg.Dense
		err error
	)
	if data == nil {
		m, err = linalg.NewDense(int(rows), int(cols), f.opts...)
	} else {
		m, err = linalg.NewDenseData(int(rows), int(cols), data, f.opts...)
	}
	if err != nil {
		return statusOf(err)
	}

	return int64(f.arena.Put(m))
}

// Release frees the matrix behind h. Returns StatusOK, or
// StatusInvalidHandle for unknown/already-released handles (never a no-op).
func (f *Facade) Release(h int64) int64 {
	if h <= 0 {
		return StatusInvalidHandle
	}

	return statusOf(f.arena.Release(arena.Handle(h)))
}

// binary runs a two-operand kernel and registers the result.
func (f *Facade) binary(a, b int64, kernel func(x, y *linalg.Dense) (*linalg.Dense, error)) int64 {
	ma, st := f.get(a)
	if st != StatusOK {
		return st
	}
	mb, st := f.get(b)
	if st != StatusOK {
		return st
	}
	res, err := kernel(ma, mb)
	if err != nil {
		return statusOf(err)
	}

	return int64(f.arena.Put(res))
}

// unary runs a one-operand kernel and registers the result.
func (f *Facade) unary(h int64, kernel func(x *linalg.Dense) (*linalg.Dense, error)) int64 {
	m, st := f.get(h)
	if st != StatusOK {
		return st
	}
	res, err := kernel(m)
	if err != nil {
		return statusOf(err)
	}

	return int64(f.arena.Put(res))
}

// Add returns a handle to A+B, or StatusShapeMismatch / StatusInvalidHandle.
func (f *Facade) Add(a, b int64) int64 { return f.binary(a, b, linalg.Add) }

// Sub returns a handle to A−B, or StatusShapeMismatch / StatusInvalidHandle.
func (f *Facade) Sub(a, b int64) int64 { return f.binary(a, b, linalg.Sub) }

// Mul returns a handle to A×B; StatusShapeMismatch when A.cols != B.rows.
func (f *Facade) Mul(a, b int64) int64 { return f.binary(a, b, linalg.Mul) }

// Scale returns a handle to alpha·A.
func (f *Facade) Scale(h int64, alpha float64) int64 {
	return f.unary(h, func(m *linalg.Dense) (*linalg.Dense, error) {
		return linalg.Scale(m, alpha)
	})
}

// Transpose returns a handle to Aᵀ; the operand is never mutated.
func (f *Facade) Transpose(h int64) int64 { return f.unary(h, linalg.Transpose) }

// Inverse returns a handle to A⁻¹; StatusSingular within tolerance,
// StatusShapeMismatch for non-square inputs.
func (f *Facade) Inverse(h int64) int64 {
	return f.unary(h, func(m *linalg.Dense) (*linalg.Dense, error) {
		return linalg.Inverse(m, f.opts...)
	})
}

// Det computes the determinant. The value is only meaningful when the
// returned status is StatusOK.
func (f *Facade) Det(h int64) (float64, int64) {
	m, st := f.get(h)
	if st != StatusOK {
		return 0, st
	}
	det, err := linalg.Det(m, f.opts...)
	if err != nil {
		return 0, statusOf(err)
	}

	return det, StatusOK
}

// Norm computes the Frobenius norm with its fixed reduction order.
func (f *Facade) Norm(h int64) (float64, int64) {
	m, st := f.get(h)
	if st != StatusOK {
		return 0, st
	}
	norm, err := linalg.FrobeniusNorm(m)
	if err != nil {
		return 0, statusOf(err)
	}

	return norm, StatusOK
}

// Rows reports the row count of the matrix behind h.
func (f *Facade) Rows(h int64) (int64, int64) {
	m, st := f.get(h)
	if st != StatusOK {
		return 0, st
	}

	return int64(m.Rows()), StatusOK
}

// Cols reports the column count of the matrix behind h.
func (f *Facade) Cols(h int64) (int64, int64) {
	m, st := f.get(h)
	if st != StatusOK {
		return 0, st
	}

	return int64(m.Cols()), StatusOK
}

// DataView returns a borrowed view of the row-major buffer behind h. The
// slice aliases arena-owned storage and stays valid until the next mutating
// call on this handle (SetItem) or its release; hosts that retain the data
// must copy it first. This lifetime bound is a tested contract.
func (f *Facade) DataView(h int64) ([]float64, int64) {
	m, st := f.get(h)
	if st != StatusOK {
		return nil, st
	}

	return m.Data(), StatusOK
}

// GetItem reads element (i, j); StatusOutOfRange on bad indices.
func (f *Facade) GetItem(h, i, j int64) (float64, int64) {
	m, st := f.get(h)
	if st != StatusOK {
		return 0, st
	}
	v, err := m.At(int(i), int(j))
	if err != nil {
		return 0, statusOf(err)
	}

	return v, StatusOK
}

// SetItem writes element (i, j). This is the explicit in-place variant: it
// is the one mutating call, and it invalidates outstanding DataView borrows
// of h by contract. StatusOutOfRange / StatusNotFinite on bad input.
func (f *Facade) SetItem(h, i, j int64, v float64) int64 {
	m, st := f.get(h)
	if st != StatusOK {
		return st
	}

	return statusOf(m.Set(int(i), int(j), v))
}

// Live reports the number of live handles in this façade's arena.
func (f *Facade) Live() int64 {
	return int64(f.arena.Len())
}
