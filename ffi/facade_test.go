// SPDX-License-Identifier: MIT

package ffi_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/ffi"
	"github.com/katalvlaran/lvlinalg/linalg"
)

// newFacade builds an isolated façade with default policy, one per test.
func newFacade() *ffi.Facade {
	return ffi.New(ffi.DefaultConfig())
}

// mustCreate registers data and fails the test on any status code.
func mustCreate(t *testing.T, f *ffi.Facade, rows, cols int64, data []float64) int64 {
	t.Helper()
	h := f.Create(rows, cols, data)
	require.Positive(t, h, "create returned status %d", h)

	return h
}

func TestCreate_ZeroFillAndData(t *testing.T) {
	t.Parallel()
	f := newFacade()

	hz := mustCreate(t, f, 2, 2, nil)
	view, st := f.DataView(hz)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, []float64{0, 0, 0, 0}, view)

	hd := mustCreate(t, f, 2, 2, []float64{1, 2, 3, 4})
	view, st = f.DataView(hd)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, []float64{1, 2, 3, 4}, view)
}

func TestCreate_BadInput(t *testing.T) {
	t.Parallel()
	f := newFacade()

	require.Equal(t, ffi.StatusBadShape, f.Create(0, 2, nil))
	require.Equal(t, ffi.StatusBadShape, f.Create(2, -1, nil))
	require.Equal(t, ffi.StatusBadShape, f.Create(2, 2, []float64{1, 2, 3}))
	require.Equal(t, ffi.StatusNotFinite, f.Create(1, 2, []float64{1, math.NaN()}))
}

func TestCreate_ElementCeiling_MapsToOutOfMemory(t *testing.T) {
	t.Parallel()

	cfg := ffi.DefaultConfig()
	cfg.MaxElements = 16
	f := ffi.New(cfg)

	require.Equal(t, ffi.StatusOutOfMemory, f.Create(5, 5, nil))
	require.Positive(t, f.Create(4, 4, nil))
}

func TestRaisedCeiling_ComputeStillWorks(t *testing.T) {
	t.Parallel()

	// A matrix created under a raised MaxElements must stay fully usable:
	// compute results inherit the operand's ceiling.
	cfg := ffi.DefaultConfig()
	cfg.MaxElements = 1 << 27
	f := ffi.New(cfg)

	h := f.Create(1, int64(linalg.DefaultMaxElements)+1, nil)
	require.Positive(t, h)

	ht := f.Transpose(h)
	require.Positive(t, ht)

	rows, st := f.Rows(ht)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, int64(linalg.DefaultMaxElements)+1, rows)
}

func TestRelease_ThenEveryOpFails(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 2, 2, []float64{1, 2, 3, 4})
	require.Equal(t, ffi.StatusOK, f.Release(h))

	// Any later use of the released handle is StatusInvalidHandle.
	require.Equal(t, ffi.StatusInvalidHandle, f.Release(h))
	require.Equal(t, ffi.StatusInvalidHandle, f.Add(h, h))
	require.Equal(t, ffi.StatusInvalidHandle, f.Transpose(h))
	_, st := f.Det(h)
	require.Equal(t, ffi.StatusInvalidHandle, st)
	_, st = f.Rows(h)
	require.Equal(t, ffi.StatusInvalidHandle, st)
	_, st = f.DataView(h)
	require.Equal(t, ffi.StatusInvalidHandle, st)
}

func TestHandles_NeverReused(t *testing.T) {
	t.Parallel()
	f := newFacade()

	var last int64
	for i := 0; i < 500; i++ {
		h := mustCreate(t, f, 1, 1, nil)
		require.Greater(t, h, last)
		last = h
		require.Equal(t, ffi.StatusOK, f.Release(h))
	}
	require.Zero(t, f.Live())
}

func TestBoundary_MalformedHandles(t *testing.T) {
	t.Parallel()
	f := newFacade()

	// Zero, negative and out-of-range handle values are rejected before any
	// lookup; the status codes are disjoint from the handle space.
	for _, h := range []int64{0, -1, -1000, math.MaxInt64} {
		require.Equal(t, ffi.StatusInvalidHandle, f.Transpose(h))
		require.Equal(t, ffi.StatusInvalidHandle, f.Release(h))
	}
}

func TestTranspose_TwoByTwo(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 2, 2, []float64{1, 2, 3, 4})
	ht := f.Transpose(h)
	require.Positive(t, ht)

	rows, st := f.Rows(ht)
	require.Equal(t, ffi.StatusOK, st)
	cols, st := f.Cols(ht)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, int64(2), rows)
	require.Equal(t, int64(2), cols)

	view, st := f.DataView(ht)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, []float64{1, 3, 2, 4}, view)

	// Source handle still live and unchanged.
	view, st = f.DataView(h)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, []float64{1, 2, 3, 4}, view)
}

func TestAddSubMul_StatusPaths(t *testing.T) {
	t.Parallel()
	f := newFacade()

	a := mustCreate(t, f, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := mustCreate(t, f, 2, 3, []float64{6, 5, 4, 3, 2, 1})
	sq := mustCreate(t, f, 2, 2, []float64{1, 2, 3, 4})

	sum := f.Add(a, b)
	require.Positive(t, sum)
	view, st := f.DataView(sum)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, []float64{7, 7, 7, 7, 7, 7}, view)

	require.Equal(t, ffi.StatusShapeMismatch, f.Add(a, sq))

	// multiply on shapes (2,3) and (2,2) fails; both operands unchanged.
	require.Equal(t, ffi.StatusShapeMismatch, f.Mul(a, sq))
	view, _ = f.DataView(a)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, view)
	view, _ = f.DataView(sq)
	require.Equal(t, []float64{1, 2, 3, 4}, view)

	prod := f.Mul(sq, sq)
	require.Positive(t, prod)
	view, _ = f.DataView(prod)
	require.Equal(t, []float64{7, 10, 15, 22}, view)
}

func TestScale(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 1, 3, []float64{1, -2, 3})
	hs := f.Scale(h, 2)
	require.Positive(t, hs)
	view, _ := f.DataView(hs)
	require.Equal(t, []float64{2, -4, 6}, view)
}

func TestDet_SingularStatus(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 2, 2, []float64{1, 2, 2, 4})
	_, st := f.Det(h)
	require.Equal(t, ffi.StatusSingular, st)

	// Operand left unmodified by the failed computation.
	view, _ := f.DataView(h)
	require.Equal(t, []float64{1, 2, 2, 4}, view)
}

func TestInverse_RoundTrip(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 2, 2, []float64{4, 7, 2, 6})
	hi := f.Inverse(h)
	require.Positive(t, hi)

	prod := f.Mul(h, hi)
	require.Positive(t, prod)
	view, _ := f.DataView(prod)
	want := []float64{1, 0, 0, 1}
	for i := range want {
		require.InDelta(t, want[i], view[i], 1e-12)
	}
}

func TestInverse_NonSquareAndSingular(t *testing.T) {
	t.Parallel()
	f := newFacade()

	rect := mustCreate(t, f, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.Equal(t, ffi.StatusShapeMismatch, f.Inverse(rect))

	sing := mustCreate(t, f, 2, 2, []float64{1, 2, 2, 4})
	require.Equal(t, ffi.StatusSingular, f.Inverse(sing))
}

func TestNorm(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 2, 2, []float64{1, 2, 3, 4})
	norm, st := f.Norm(h)
	require.Equal(t, ffi.StatusOK, st)
	require.InDelta(t, math.Sqrt(30), norm, 1e-12)
}

func TestGetSetItem(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 2, 2, []float64{1, 2, 3, 4})

	v, st := f.GetItem(h, 1, 0)
	require.Equal(t, ffi.StatusOK, st)
	require.Equal(t, 3.0, v)

	_, st = f.GetItem(h, 5, 0)
	require.Equal(t, ffi.StatusOutOfRange, st)
	_, st = f.GetItem(h, 0, -1)
	require.Equal(t, ffi.StatusOutOfRange, st)

	require.Equal(t, ffi.StatusOK, f.SetItem(h, 0, 1, 9))
	v, _ = f.GetItem(h, 0, 1)
	require.Equal(t, 9.0, v)

	require.Equal(t, ffi.StatusOutOfRange, f.SetItem(h, 2, 0, 1))
	require.Equal(t, ffi.StatusNotFinite, f.SetItem(h, 0, 0, math.Inf(1)))
}

func TestDataView_BorrowLifetime(t *testing.T) {
	t.Parallel()
	f := newFacade()

	h := mustCreate(t, f, 2, 2, []float64{1, 2, 3, 4})
	view, st := f.DataView(h)
	require.Equal(t, ffi.StatusOK, st)

	// The view is a borrow of arena storage: the next mutating call on the
	// same handle is visible through it. Hosts that need retention must copy
	// before any further boundary call.
	require.Equal(t, ffi.StatusOK, f.SetItem(h, 0, 0, 42))
	require.Equal(t, 42.0, view[0])

	// After release the handle yields no view at all.
	require.Equal(t, ffi.StatusOK, f.Release(h))
	_, st = f.DataView(h)
	require.Equal(t, ffi.StatusInvalidHandle, st)
}

func TestIsolatedFacades(t *testing.T) {
	t.Parallel()

	f1 := newFacade()
	f2 := newFacade()

	h1 := mustCreate(t, f1, 1, 1, []float64{1})
	require.Equal(t, ffi.StatusInvalidHandle, f2.Release(h1))
	require.Equal(t, int64(1), f1.Live())
	require.Zero(t, f2.Live())
}

func TestDefault_SingleInstance(t *testing.T) {
	t.Parallel()

	require.Same(t, ffi.Default(), ffi.Default())
}
