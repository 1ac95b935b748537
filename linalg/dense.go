// SPDX-License-Identifier: MIT

// Package linalg - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index
//     formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of
//     panicking.
//   - Enforce the numeric policy (rejection of NaN/Inf, element ceiling) from
//     a single source of truth at construction time.
//
// Complexity quicksheet:
//   - NewDense/NewDenseData: O(r*c); At/Set: O(1); Clone: O(r*c).
package linalg

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- formatting literals ----------

const (
	fmtRowOpen  = "["
	fmtRowClose = "]\n"
	fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// A Vector is the cols==1 special case; no separate type exists.
type Dense struct {
	r, c     int       // number of rows and columns
	data     []float64 // flat backing storage, length == r*c
	validate bool      // numeric policy captured at construction
	maxElems int       // element ceiling captured at construction
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0 and rows*cols within ceiling.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or sentinel error.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)

	// Validate dimensions.
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}
	// Guard the element ceiling before allocating (overflow-safe ordering).
	if rows > o.maxElems/cols {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrTooLarge)
	}

	// Allocate flat slice.
	data := make([]float64, rows*cols)

	return &Dense{r: rows, c: cols, data: data, validate: o.validateNaNInf, maxElems: o.maxElems}, nil
}

// NewDenseData creates an r×c Dense matrix from row-major data.
// The slice is copied; the caller keeps ownership of its argument.
// Stage 1 (Validate): shape, ceiling, exact length, finite entries.
// Stage 2 (Prepare): allocate and copy.
// Complexity: O(r*c) time and memory.
func NewDenseData(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)

	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDenseData(%d,%d): %w", rows, cols, ErrBadShape)
	}
	if rows > o.maxElems/cols {
		return nil, fmt.Errorf("NewDenseData(%d,%d): %w", rows, cols, ErrTooLarge)
	}
	// Supplied data must cover exactly rows*cols elements.
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseData(%d,%d): data length %d: %w", rows, cols, len(data), ErrBadShape)
	}
	// Numeric policy: reject non-finite entries up front, fixed scan order.
	if o.validateNaNInf {
		for idx := 0; idx < len(data); idx++ {
			if math.IsNaN(data[idx]) || math.IsInf(data[idx], 0) {
				return nil, fmt.Errorf("NewDenseData(%d,%d): element %d: %w", rows, cols, idx, ErrNaNInf)
			}
		}
	}

	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf, validate: o.validateNaNInf, maxElems: o.maxElems}, nil
}

// NewVector creates an n×1 Dense (the Vector special case) from data.
// nil data yields a zero vector. Complexity: O(n).
func NewVector(n int, data []float64, opts ...Option) (*Dense, error) {
	if data == nil {
		return NewDense(n, 1, opts...)
	}

	return NewDenseData(n, 1, data, opts...)
}

// Identity creates the n×n identity matrix.
// Complexity: O(n²) time and memory.
func Identity(n int, opts ...Option) (*Dense, error) {
	m, err := NewDense(n, n, opts...)
	if err != nil {
		return nil, fmt.Errorf("Identity(%d): %w", n, err)
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows in the matrix. Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r
}

// Cols returns the number of columns in the matrix. Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Returns ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col). This is the single in-place mutator on
// Dense; it invalidates borrowed views of the same entity by contract.
// Returns ErrOutOfRange on invalid indices and ErrNaNInf when the numeric
// policy rejects v. Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	if m.validate && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Data returns the backing storage as a borrowed view: the slice aliases the
// matrix, stays valid until the next Set on this matrix or its release from
// an owning arena, and must be copied by callers that retain it.
// Complexity: O(1).
func (m *Dense) Data() []float64 {
	return m.data
}

// Clone returns a deep copy of the Dense matrix, numeric policy included.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	copyData := make([]float64, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData, validate: m.validate, maxElems: m.maxElems}
}

// newResult allocates a rows×cols container carrying src's numeric policy.
// Kernels allocate their results through this helper so a matrix admitted
// under a raised element ceiling keeps computing under that ceiling instead
// of falling back to the default. Complexity: O(rows*cols).
func newResult(rows, cols int, src *Dense) (*Dense, error) {
	return NewDense(rows, cols,
		WithNaNInfValidation(src.validate),
		WithMaxElements(src.maxElems))
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(fmtRowOpen)
		for j = 0; j < m.c; j++ {
			// compute flat index directly for performance
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				b.WriteString(fmtSep)
			}
		}
		b.WriteString(fmtRowClose)
	}

	return b.String()
}
