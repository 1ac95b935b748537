// SPDX-License-Identifier: MIT

// Package snapshot persists a whole arena to a byte stream and restores it,
// so interactive sessions can save and reload their workspace.
//
// Layout: an lz4 frame wrapping little-endian records —
//
//	magic "LVLS" | version u16 | count u64
//	per entry: handle u64 | rows u64 | cols u64 | rows*cols float64
//
// Entries are written in ascending handle order for deterministic output.
// Restore mints fresh handles (the monotonic counter of the target arena is
// never rewound) and returns the old→new mapping so hosts can rebind.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/katalvlaran/lvlinalg/arena"
	"github.com/katalvlaran/lvlinalg/linalg"
)

// ErrBadSnapshot is returned for corrupt, truncated or foreign input.
var ErrBadSnapshot = errors.New("snapshot: malformed snapshot stream")

var magic = [4]byte{'L', 'V', 'L', 'S'}

// version is bumped on any layout change; readers reject other versions.
const version uint16 = 1

// header mirrors the fixed-size stream prefix.
type header struct {
	Magic   [4]byte
	Version uint16
	Count   uint64
}

// record mirrors one fixed-size entry prefix; the float payload follows it.
type record struct {
	Handle uint64
	Rows   uint64
	Cols   uint64
}

// maxSide caps rows/cols read back from a stream before any allocation, so
// corrupt input cannot demand absurd memory. Mirrors the engine ceiling.
const maxSide = uint64(linalg.DefaultMaxElements)

// Write serializes every live entry of a into w, ascending by handle.
// Complexity: O(total elements).
func Write(w io.Writer, a *arena.Arena) error {
	zw := lz4.NewWriter(w)

	hdr := header{Magic: magic, Version: version, Count: uint64(a.Len())}
	if err := binary.Write(zw, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}

	for _, h := range a.Handles() {
		m, err := a.Get(h)
		if err != nil {
			return fmt.Errorf("snapshot: entry %d vanished mid-write: %w", h, err)
		}
		rec := record{Handle: uint64(h), Rows: uint64(m.Rows()), Cols: uint64(m.Cols())}
		if err = binary.Write(zw, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("snapshot: write record %d: %w", h, err)
		}
		if err = binary.Write(zw, binary.LittleEndian, m.Data()); err != nil {
			return fmt.Errorf("snapshot: write payload %d: %w", h, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("snapshot: close frame: %w", err)
	}

	return nil
}

// Read rebuilds an arena from a stream produced by Write. Fresh handles are
// minted in the order the entries were saved; the returned map carries
// old handle → new handle for host-side rebinding.
// Errors: ErrBadSnapshot for corrupt/truncated/foreign input.
func Read(r io.Reader, opts ...arena.Option) (*arena.Arena, map[arena.Handle]arena.Handle, error) {
	zr := lz4.NewReader(r)

	var hdr header
	if err := binary.Read(zr, binary.LittleEndian, &hdr); err != nil {
		return nil, nil, fmt.Errorf("snapshot: read header: %w", ErrBadSnapshot)
	}
	if hdr.Magic != magic || hdr.Version != version {
		return nil, nil, fmt.Errorf("snapshot: magic/version: %w", ErrBadSnapshot)
	}

	a := arena.New(opts...)
	remap := make(map[arena.Handle]arena.Handle, hdr.Count)

	for i := uint64(0); i < hdr.Count; i++ {
		var rec record
		if err := binary.Read(zr, binary.LittleEndian, &rec); err != nil {
			return nil, nil, fmt.Errorf("snapshot: record %d: %w", i, ErrBadSnapshot)
		}
		// Shape sanity before allocating anything.
		if rec.Rows == 0 || rec.Cols == 0 || rec.Rows > maxSide || rec.Cols > maxSide/rec.Rows {
			return nil, nil, fmt.Errorf("snapshot: record %d shape %dx%d: %w", i, rec.Rows, rec.Cols, ErrBadSnapshot)
		}

		data := make([]float64, rec.Rows*rec.Cols)
		if err := binary.Read(zr, binary.LittleEndian, data); err != nil {
			return nil, nil, fmt.Errorf("snapshot: payload %d: %w", i, ErrBadSnapshot)
		}

		// Restore is lossless by design: the payload was already subject to
		// the numeric policy when the original matrix was built.
		m, err := linalg.NewDenseData(int(rec.Rows), int(rec.Cols), data,
			linalg.WithNaNInfValidation(false))
		if err != nil {
			return nil, nil, fmt.Errorf("snapshot: record %d: %w", i, err)
		}
		remap[arena.Handle(rec.Handle)] = a.Put(m)
	}

	return a, remap, nil
}
