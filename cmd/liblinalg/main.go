// SPDX-License-Identifier: MIT

// Command liblinalg builds the foreign-function artifact:
//
//	go build -buildmode=c-shared -o liblinalg.so ./cmd/liblinalg
//
// Every export is a thin wrapper over the process-wide façade. Handles are
// positive int64 values; every status code is strictly negative, so a host
// can test the sign of any handle-returning call. Calls that produce a
// scalar write it through an out-pointer and return a status.
//
// lin_data returns a borrowed pointer into arena-owned storage together with
// the element count. The buffer is pinned on first query and unpinned at
// release, so the pointer stays valid exactly as long as the handle's borrow
// window: until the next mutating call on that handle or its release. Hosts
// that retain data must copy it before any further boundary call.
//
// The surface is fully synchronous and carries no locking; concurrent calls
// from multiple host threads require external synchronization.
package main

/*
#include <stdint.h>
#include <stddef.h>
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/katalvlaran/lvlinalg/ffi"
)

// pins keeps one pinner per handle with an outstanding data borrow. Access
// follows the same single-threaded contract as the façade itself.
var pins = map[int64]*runtime.Pinner{}

// unpin drops the pin for h, if any.
func unpin(h int64) {
	if p, ok := pins[h]; ok {
		p.Unpin()
		delete(pins, h)
	}
}

// goFloats converts a host pointer+length pair into a Go slice without
// copying. Returns nil for a nil pointer or non-positive length.
func goFloats(data *C.double, length C.int64_t) []float64 {
	if data == nil || length <= 0 {
		return nil
	}

	return unsafe.Slice((*float64)(unsafe.Pointer(data)), int(length))
}

//export lin_create
func lin_create(rows, cols C.int64_t, data *C.double, length C.int64_t) C.int64_t {
	var buf []float64
	if data != nil {
		// Reject a pointer with a nonsensical length before any dereference.
		if length <= 0 {
			return C.int64_t(ffi.StatusBadShape)
		}
		buf = goFloats(data, length)
	}

	return C.int64_t(ffi.Default().Create(int64(rows), int64(cols), buf))
}

//export lin_release
func lin_release(h C.int64_t) C.int64_t {
	unpin(int64(h))

	return C.int64_t(ffi.Default().Release(int64(h)))
}

//export lin_add
func lin_add(a, b C.int64_t) C.int64_t {
	return C.int64_t(ffi.Default().Add(int64(a), int64(b)))
}

//export lin_sub
func lin_sub(a, b C.int64_t) C.int64_t {
	return C.int64_t(ffi.Default().Sub(int64(a), int64(b)))
}

//export lin_mul
func lin_mul(a, b C.int64_t) C.int64_t {
	return C.int64_t(ffi.Default().Mul(int64(a), int64(b)))
}

//export lin_scale
func lin_scale(h C.int64_t, alpha C.double) C.int64_t {
	return C.int64_t(ffi.Default().Scale(int64(h), float64(alpha)))
}

//export lin_transpose
func lin_transpose(h C.int64_t) C.int64_t {
	return C.int64_t(ffi.Default().Transpose(int64(h)))
}

//export lin_inverse
func lin_inverse(h C.int64_t) C.int64_t {
	return C.int64_t(ffi.Default().Inverse(int64(h)))
}

//export lin_det
func lin_det(h C.int64_t, out *C.double) C.int64_t {
	if out == nil {
		return C.int64_t(ffi.StatusInternal)
	}
	det, st := ffi.Default().Det(int64(h))
	if st != ffi.StatusOK {
		return C.int64_t(st)
	}
	*out = C.double(det)

	return C.int64_t(ffi.StatusOK)
}

//export lin_norm
func lin_norm(h C.int64_t, out *C.double) C.int64_t {
	if out == nil {
		return C.int64_t(ffi.StatusInternal)
	}
	norm, st := ffi.Default().Norm(int64(h))
	if st != ffi.StatusOK {
		return C.int64_t(st)
	}
	*out = C.double(norm)

	return C.int64_t(ffi.StatusOK)
}

//export lin_rows
func lin_rows(h C.int64_t) C.int64_t {
	rows, st := ffi.Default().Rows(int64(h))
	if st != ffi.StatusOK {
		return C.int64_t(st)
	}

	return C.int64_t(rows)
}

//export lin_cols
func lin_cols(h C.int64_t) C.int64_t {
	cols, st := ffi.Default().Cols(int64(h))
	if st != ffi.StatusOK {
		return C.int64_t(st)
	}

	return C.int64_t(cols)
}

//export lin_len
func lin_len(h C.int64_t) C.int64_t {
	rows, st := ffi.Default().Rows(int64(h))
	if st != ffi.StatusOK {
		return C.int64_t(st)
	}
	cols, _ := ffi.Default().Cols(int64(h))

	return C.int64_t(rows * cols)
}

//export lin_data
func lin_data(h C.int64_t, outLen *C.int64_t) *C.double {
	if outLen == nil {
		return nil
	}
	view, st := ffi.Default().DataView(int64(h))
	if st != ffi.StatusOK {
		*outLen = C.int64_t(st)
		return nil
	}

	// Pin the backing array so the borrowed pointer obeys cgo pointer rules
	// for as long as the handle lives. Pinning twice is harmless: the first
	// pin already spans the borrow window.
	if _, ok := pins[int64(h)]; !ok {
		p := &runtime.Pinner{}
		p.Pin(&view[0])
		pins[int64(h)] = p
	}
	*outLen = C.int64_t(len(view))

	return (*C.double)(unsafe.Pointer(&view[0]))
}

//export lin_get
func lin_get(h, i, j C.int64_t, out *C.double) C.int64_t {
	if out == nil {
		return C.int64_t(ffi.StatusInternal)
	}
	v, st := ffi.Default().GetItem(int64(h), int64(i), int64(j))
	if st != ffi.StatusOK {
		return C.int64_t(st)
	}
	*out = C.double(v)

	return C.int64_t(ffi.StatusOK)
}

//export lin_set
func lin_set(h, i, j C.int64_t, v C.double) C.int64_t {
	return C.int64_t(ffi.Default().SetItem(int64(h), int64(i), int64(j), float64(v)))
}

//export lin_live
func lin_live() C.int64_t {
	return C.int64_t(ffi.Default().Live())
}

func main() {}
