// SPDX-License-Identifier: MIT

package ffi

import "sync"

var (
	defaultFacade *Facade
	defaultOnce   sync.Once
)

// Default returns the single process-wide façade, building it lazily from
// the environment on first use. This is the instance the C ABI in
// cmd/liblinalg serves. An unparseable environment falls back to the
// documented defaults: the boundary must come up, not crash, on bad input.
func Default() *Facade {
	defaultOnce.Do(func() {
		cfg, err := ConfigFromEnv()
		if err != nil {
			cfg = DefaultConfig()
		}
		defaultFacade = New(cfg)
	})

	return defaultFacade
}
