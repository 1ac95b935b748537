// SPDX-License-Identifier: MIT

// Package luahost is the reference host-binding shim: it maps the flat
// façade onto Lua callables so an embedded interpreter can drive the engine
// the way any dynamic host would.
//
// The shim owns the host side of the boundary contract: it wraps handles in
// userdata, re-expands sentinel status codes into Lua errors, copies the
// borrowed data view into a Lua table before returning it (the retention
// rule), and releases only explicitly via m:release(), exactly once per
// wrapper. go-lua never finalizes userdata, so there is no collector
// backstop: a wrapper abandoned without release keeps its handle live until
// the owning façade goes away. Scripts own the release call.
//
// Lua indices are 1-based at the surface (m:get(1,1) reads the top-left
// element); the shim translates to the engine's 0-based convention.
package luahost

import (
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/katalvlaran/lvlinalg/ffi"
)

const matrixTypeName = "linalg.matrix"

// statusMessage re-expands a sentinel code into a stable host-facing string.
func statusMessage(code int64) string {
	switch code {
	case ffi.StatusInvalidHandle:
		return "invalid or released handle"
	case ffi.StatusShapeMismatch:
		return "shape mismatch"
	case ffi.StatusBadShape:
		return "invalid shape"
	case ffi.StatusSingular:
		return "singular matrix"
	case ffi.StatusOutOfMemory:
		return "out of memory"
	case ffi.StatusOutOfRange:
		return "index out of range"
	case ffi.StatusNotFinite:
		return "non-finite value"
	default:
		return "internal error"
	}
}

// matrix is the userdata payload: one handle bound to the façade that
// minted it. released guards the release-exactly-once contract of the
// wrapper.
type matrix struct {
	f        *ffi.Facade
	handle   int64
	released bool
}

// Open registers the "linalg" module table and the matrix metatable on l,
// binding every callable to f. Call once per interpreter state.
func Open(l *lua.State, f *ffi.Facade) {
	registerMatrixType(l)

	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "create", Function: func(l *lua.State) int { return hostCreate(l, f) }},
		{Name: "zeros", Function: func(l *lua.State) int { return hostZeros(l, f) }},
		{Name: "identity", Function: func(l *lua.State) int { return hostIdentity(l, f) }},
		{Name: "live", Function: func(l *lua.State) int {
			l.PushInteger(int(f.Live()))
			return 1
		}},
	}, 0)
	l.SetGlobal("linalg")
}

func registerMatrixType(l *lua.State) {
	lua.NewMetaTable(l, matrixTypeName)
	l.NewTable()
	lua.SetFunctions(l, matrixMethods, 0)
	l.SetField(-2, "__index")
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "__tostring", Function: matrixToString},
	}, 0)
	l.Pop(1)
}

var matrixMethods = []lua.RegistryFunction{
	{Name: "add", Function: func(l *lua.State) int { return binaryOp(l, (*ffi.Facade).Add) }},
	{Name: "sub", Function: func(l *lua.State) int { return binaryOp(l, (*ffi.Facade).Sub) }},
	{Name: "mul", Function: func(l *lua.State) int { return binaryOp(l, (*ffi.Facade).Mul) }},
	{Name: "scale", Function: matrixScale},
	{Name: "transpose", Function: func(l *lua.State) int { return unaryOp(l, (*ffi.Facade).Transpose) }},
	{Name: "inverse", Function: func(l *lua.State) int { return unaryOp(l, (*ffi.Facade).Inverse) }},
	{Name: "det", Function: matrixDet},
	{Name: "norm", Function: matrixNorm},
	{Name: "rows", Function: matrixRows},
	{Name: "cols", Function: matrixCols},
	{Name: "get", Function: matrixGet},
	{Name: "set", Function: matrixSet},
	{Name: "data", Function: matrixData},
	{Name: "release", Function: matrixRelease},
}

// checkMatrix extracts the wrapper at stack index idx or raises.
func checkMatrix(l *lua.State, idx int) *matrix {
	ud := lua.CheckUserData(l, idx, matrixTypeName)
	if m, ok := ud.(*matrix); ok && m != nil {
		return m
	}
	lua.ArgumentError(l, idx, "matrix expected")

	return nil
}

// liveMatrix additionally rejects wrappers whose handle was released through
// the shim, before the façade ever sees the stale handle.
func liveMatrix(l *lua.State, idx int) *matrix {
	m := checkMatrix(l, idx)
	if m.released {
		lua.Errorf(l, "linalg: use of released matrix")
	}

	return m
}

// pushMatrix wraps a freshly minted handle into userdata.
func pushMatrix(l *lua.State, f *ffi.Facade, handle int64) int {
	l.PushUserData(&matrix{f: f, handle: handle})
	lua.SetMetaTableNamed(l, matrixTypeName)

	return 1
}

// fail raises a Lua error carrying the re-expanded sentinel.
func fail(l *lua.State, code int64) int {
	lua.Errorf(l, "linalg: %s", statusMessage(code))

	return 0 // unreachable; Errorf does not return
}

// checkFlatTable reads a flat numeric array of exactly want elements from
// stack index idx.
func checkFlatTable(l *lua.State, idx, want int) []float64 {
	lua.CheckType(l, idx, lua.TypeTable)
	if n := l.RawLength(idx); n != want {
		lua.ArgumentError(l, idx, "data length must equal rows*cols")
	}

	data := make([]float64, want)
	for i := 1; i <= want; i++ {
		l.RawGetInt(idx, i)
		v, ok := l.ToNumber(-1)
		l.Pop(1)
		if !ok {
			lua.ArgumentError(l, idx, "data must contain only numbers")
		}
		data[i-1] = v
	}

	return data
}

// hostCreate implements linalg.create(rows, cols [, data]).
func hostCreate(l *lua.State, f *ffi.Facade) int {
	rows := lua.CheckInteger(l, 1)
	cols := lua.CheckInteger(l, 2)

	var data []float64
	if !l.IsNoneOrNil(3) {
		if rows <= 0 || cols <= 0 {
			return fail(l, ffi.StatusBadShape)
		}
		data = checkFlatTable(l, 3, rows*cols)
	}

	h := f.Create(int64(rows), int64(cols), data)
	if h <= 0 {
		return fail(l, h)
	}

	return pushMatrix(l, f, h)
}

// hostZeros implements linalg.zeros(rows, cols).
func hostZeros(l *lua.State, f *ffi.Facade) int {
	rows := lua.CheckInteger(l, 1)
	cols := lua.CheckInteger(l, 2)

	h := f.Create(int64(rows), int64(cols), nil)
	if h <= 0 {
		return fail(l, h)
	}

	return pushMatrix(l, f, h)
}

// hostIdentity implements linalg.identity(n) via create + set of the diagonal.
func hostIdentity(l *lua.State, f *ffi.Facade) int {
	n := lua.CheckInteger(l, 1)

	h := f.Create(int64(n), int64(n), nil)
	if h <= 0 {
		return fail(l, h)
	}
	for i := 0; i < n; i++ {
		if st := f.SetItem(h, int64(i), int64(i), 1); st != ffi.StatusOK {
			f.Release(h)
			return fail(l, st)
		}
	}

	return pushMatrix(l, f, h)
}

func binaryOp(l *lua.State, op func(f *ffi.Facade, a, b int64) int64) int {
	a := liveMatrix(l, 1)
	b := liveMatrix(l, 2)

	h := op(a.f, a.handle, b.handle)
	if h <= 0 {
		return fail(l, h)
	}

	return pushMatrix(l, a.f, h)
}

func unaryOp(l *lua.State, op func(f *ffi.Facade, h int64) int64) int {
	m := liveMatrix(l, 1)

	h := op(m.f, m.handle)
	if h <= 0 {
		return fail(l, h)
	}

	return pushMatrix(l, m.f, h)
}

func matrixScale(l *lua.State) int {
	m := liveMatrix(l, 1)
	alpha := lua.CheckNumber(l, 2)

	h := m.f.Scale(m.handle, alpha)
	if h <= 0 {
		return fail(l, h)
	}

	return pushMatrix(l, m.f, h)
}

func matrixDet(l *lua.State) int {
	m := liveMatrix(l, 1)
	det, st := m.f.Det(m.handle)
	if st != ffi.StatusOK {
		return fail(l, st)
	}
	l.PushNumber(det)

	return 1
}

func matrixNorm(l *lua.State) int {
	m := liveMatrix(l, 1)
	norm, st := m.f.Norm(m.handle)
	if st != ffi.StatusOK {
		return fail(l, st)
	}
	l.PushNumber(norm)

	return 1
}

func matrixRows(l *lua.State) int {
	m := liveMatrix(l, 1)
	rows, st := m.f.Rows(m.handle)
	if st != ffi.StatusOK {
		return fail(l, st)
	}
	l.PushInteger(int(rows))

	return 1
}

func matrixCols(l *lua.State) int {
	m := liveMatrix(l, 1)
	cols, st := m.f.Cols(m.handle)
	if st != ffi.StatusOK {
		return fail(l, st)
	}
	l.PushInteger(int(cols))

	return 1
}

func matrixGet(l *lua.State) int {
	m := liveMatrix(l, 1)
	i := lua.CheckInteger(l, 2)
	j := lua.CheckInteger(l, 3)

	v, st := m.f.GetItem(m.handle, int64(i-1), int64(j-1))
	if st != ffi.StatusOK {
		return fail(l, st)
	}
	l.PushNumber(v)

	return 1
}

func matrixSet(l *lua.State) int {
	m := liveMatrix(l, 1)
	i := lua.CheckInteger(l, 2)
	j := lua.CheckInteger(l, 3)
	v := lua.CheckNumber(l, 4)

	if st := m.f.SetItem(m.handle, int64(i-1), int64(j-1), v); st != ffi.StatusOK {
		return fail(l, st)
	}

	return 0
}

// matrixData copies the borrowed view into a fresh Lua array table. The copy
// happens before returning to Lua, so the host side never holds the borrow
// across another boundary call.
func matrixData(l *lua.State) int {
	m := liveMatrix(l, 1)
	view, st := m.f.DataView(m.handle)
	if st != ffi.StatusOK {
		return fail(l, st)
	}

	l.CreateTable(len(view), 0)
	for i, v := range view {
		l.PushNumber(v)
		l.RawSetInt(-2, i+1)
	}

	return 1
}

// release frees the wrapped handle exactly once; idempotence lives in the
// wrapper, the façade itself still treats double release as an error.
func (m *matrix) release() int64 {
	if m.released {
		return ffi.StatusInvalidHandle
	}
	m.released = true

	return m.f.Release(m.handle)
}

func matrixRelease(l *lua.State) int {
	m := checkMatrix(l, 1)
	if st := m.release(); st != ffi.StatusOK {
		return fail(l, st)
	}

	return 0
}

func matrixToString(l *lua.State) int {
	m := checkMatrix(l, 1)
	if m.released {
		l.PushString("matrix(released)")
		return 1
	}

	rows, _ := m.f.Rows(m.handle)
	cols, _ := m.f.Cols(m.handle)
	l.PushString(fmt.Sprintf("matrix(%dx%d)", rows, cols))

	return 1
}
