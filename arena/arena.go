// SPDX-License-Identifier: MIT

// Package arena owns every live matrix on behalf of foreign hosts.
//
// The Arena maps opaque Handles to heap-resident Dense buffers and is the
// sole owner of that data: hosts only ever hold handles and borrowed views.
// Handles come from a strictly monotonic counter and are never reused within
// the Arena's lifetime, so a released handle can never silently come to refer
// to a different entity.
//
// The Arena carries no interior locking. The boundary it serves is fully
// synchronous and concurrent access requires external synchronization
// supplied by the host; this is a documented precondition, not an enforced
// one.
package arena

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvlinalg/linalg"
)

// ErrUnknownHandle is returned when a handle is absent from the arena:
// never issued, or already released. Use of a released handle is always an
// error, never a no-op.
var ErrUnknownHandle = errors.New("arena: unknown or released handle")

// Handle is an opaque identifier for one live matrix. 0 is never issued.
type Handle uint64

// firstHandle is the first value the monotonic counter hands out. Keeping 0
// unissued lets flat boundaries treat it as "no handle".
const firstHandle Handle = 1

// Option configures an Arena at construction.
type Option func(*Arena)

// WithLogger attaches a zap logger for debug-level create/release records.
// A nil logger is replaced with the no-op default.
func WithLogger(log *zap.Logger) Option {
	return func(a *Arena) {
		if log != nil {
			a.log = log
		}
	}
}

// Arena is an explicit registry value: callers may hold several isolated
// arenas (one per test, one per embedded interpreter) side by side.
type Arena struct {
	next    Handle                   // next handle to issue; strictly increasing
	entries map[Handle]*linalg.Dense // live entities, keyed by handle
	log     *zap.Logger
}

// New creates an empty Arena.
func New(opts ...Option) *Arena {
	a := &Arena{
		next:    firstHandle,
		entries: make(map[Handle]*linalg.Dense),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Put registers m and returns its freshly issued handle.
// The arena takes ownership of m; callers must not retain references that
// outlive the handle. Complexity: O(1).
func (a *Arena) Put(m *linalg.Dense) Handle {
	h := a.next
	a.next++ // counter only ever moves forward, also across releases
	a.entries[h] = m

	a.log.Debug("arena: put",
		zap.Uint64("handle", uint64(h)),
		zap.Int("rows", m.Rows()),
		zap.Int("cols", m.Cols()),
	)

	return h
}

// Get returns the live entity for h, or ErrUnknownHandle.
// Complexity: O(1).
func (a *Arena) Get(h Handle) (*linalg.Dense, error) {
	m, ok := a.entries[h]
	if !ok {
		return nil, fmt.Errorf("Get(%d): %w", h, ErrUnknownHandle)
	}

	return m, nil
}

// Release removes the entry for h and drops its buffer. Releasing an unknown
// or already-released handle fails with ErrUnknownHandle. The handle value
// itself is retired forever: the counter never revisits it.
// Complexity: O(1).
func (a *Arena) Release(h Handle) error {
	if _, ok := a.entries[h]; !ok {
		return fmt.Errorf("Release(%d): %w", h, ErrUnknownHandle)
	}
	delete(a.entries, h)

	a.log.Debug("arena: release", zap.Uint64("handle", uint64(h)))

	return nil
}

// Len reports the number of live entries. Complexity: O(1).
func (a *Arena) Len() int {
	return len(a.entries)
}

// Handles returns the live handles in ascending order. This exists for
// library-side consumers (snapshots); foreign hosts never iterate the arena.
// Complexity: O(n log n).
func (a *Arena) Handles() []Handle {
	hs := make([]Handle, 0, len(a.entries))
	for h := range a.entries {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })

	return hs
}
