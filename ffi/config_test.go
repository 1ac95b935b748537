// SPDX-License-Identifier: MIT

package ffi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/ffi"
	"github.com/katalvlaran/lvlinalg/linalg"
)

func TestDefaultConfig_MirrorsEngineDefaults(t *testing.T) {
	t.Parallel()

	cfg := ffi.DefaultConfig()
	require.Equal(t, linalg.DefaultEpsilon, cfg.Epsilon)
	require.Equal(t, linalg.DefaultMaxElements, cfg.MaxElements)
	require.Equal(t, linalg.DefaultValidateNaNInf, cfg.ValidateNaNInf)
	require.False(t, cfg.Debug)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	// No t.Parallel: touches process environment via the parser defaults.
	cfg, err := ffi.ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, 1e-9, cfg.Epsilon)
	require.Equal(t, 1<<26, cfg.MaxElements)
	require.True(t, cfg.ValidateNaNInf)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("LINALG_EPSILON", "1e-6")
	t.Setenv("LINALG_MAX_ELEMENTS", "1024")
	t.Setenv("LINALG_VALIDATE_NANINF", "false")
	t.Setenv("LINALG_DEBUG", "true")

	cfg, err := ffi.ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, 1e-6, cfg.Epsilon)
	require.Equal(t, 1024, cfg.MaxElements)
	require.False(t, cfg.ValidateNaNInf)
	require.True(t, cfg.Debug)
}

func TestConfigFromEnv_Malformed(t *testing.T) {
	t.Setenv("LINALG_MAX_ELEMENTS", "not-a-number")

	_, err := ffi.ConfigFromEnv()
	require.Error(t, err)
}

func TestNew_SanitizesNonsenseConfig(t *testing.T) {
	t.Parallel()

	// Negative epsilon and zero ceiling are dropped in favor of engine
	// defaults; the façade still has to come up and behave.
	f := ffi.New(ffi.Config{Epsilon: -1, MaxElements: 0, ValidateNaNInf: true})
	h := f.Create(2, 2, []float64{1, 2, 3, 4})
	require.Positive(t, h)

	det, st := f.Det(h)
	require.Equal(t, ffi.StatusOK, st)
	require.InDelta(t, -2.0, det, 1e-12)
}
