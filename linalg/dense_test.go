// SPDX-License-Identifier: MIT

package linalg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlinalg/linalg"
)

// mustDense builds a matrix from row-major data or fails the test.
func mustDense(t *testing.T, rows, cols int, data []float64) *linalg.Dense {
	t.Helper()
	m, err := linalg.NewDenseData(rows, cols, data)
	require.NoError(t, err)

	return m
}

func TestNewDense_ZeroFilled(t *testing.T) {
	t.Parallel()

	m, err := linalg.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			v, err := m.At(i, j)
			require.NoError(t, err)
			require.Zero(t, v)
		}
	}
}

func TestNewDense_BadShape(t *testing.T) {
	t.Parallel()

	for _, rc := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {2, -5}} {
		_, err := linalg.NewDense(rc[0], rc[1])
		require.ErrorIs(t, err, linalg.ErrBadShape)
	}
}

func TestNewDense_ElementCeiling(t *testing.T) {
	t.Parallel()

	_, err := linalg.NewDense(5, 5, linalg.WithMaxElements(24))
	require.ErrorIs(t, err, linalg.ErrTooLarge)

	m, err := linalg.NewDense(5, 5, linalg.WithMaxElements(25))
	require.NoError(t, err)
	require.Equal(t, 25, len(m.Data()))
}

func TestNewDenseData_LengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := linalg.NewDenseData(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, linalg.ErrBadShape)
}

func TestNewDenseData_CopiesInput(t *testing.T) {
	t.Parallel()

	src := []float64{1, 2, 3, 4}
	m := mustDense(t, 2, 2, src)
	src[0] = 99 // mutate caller slice; matrix must be unaffected

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestNewDenseData_RejectsNaNInf(t *testing.T) {
	t.Parallel()

	_, err := linalg.NewDenseData(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, linalg.ErrNaNInf)

	_, err = linalg.NewDenseData(1, 2, []float64{1, math.Inf(-1)})
	require.ErrorIs(t, err, linalg.ErrNaNInf)

	// Explicit opt-out admits non-finite values.
	m, err := linalg.NewDenseData(1, 2, []float64{1, math.Inf(1)}, linalg.WithNaNInfValidation(false))
	require.NoError(t, err)
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))
}

func TestAtSet_Bounds(t *testing.T) {
	t.Parallel()

	m := mustDense(t, 2, 2, []float64{1, 2, 3, 4})

	_, err := m.At(2, 0)
	require.ErrorIs(t, err, linalg.ErrOutOfRange)
	_, err = m.At(0, -1)
	require.ErrorIs(t, err, linalg.ErrOutOfRange)

	require.ErrorIs(t, m.Set(-1, 0, 1), linalg.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 2, 1), linalg.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), linalg.ErrNaNInf)

	require.NoError(t, m.Set(1, 1, 42))
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 42.0, v)
}

func TestDataView_AliasesUntilSet(t *testing.T) {
	t.Parallel()

	m := mustDense(t, 2, 2, []float64{1, 2, 3, 4})
	view := m.Data()
	require.Equal(t, []float64{1, 2, 3, 4}, view)

	// Set on the matrix is visible through the outstanding view: the view is
	// a borrow, not a copy.
	require.NoError(t, m.Set(0, 1, 7))
	require.Equal(t, 7.0, view[1])
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	m := mustDense(t, 2, 2, []float64{1, 2, 3, 4})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, -1))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestNewVector_ColsOne(t *testing.T) {
	t.Parallel()

	v, err := linalg.NewVector(3, []float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, v.Rows())
	require.Equal(t, 1, v.Cols())

	z, err := linalg.NewVector(2, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, z.Data())
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	id, err := linalg.Identity(3)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, id.Data())
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { linalg.WithEpsilon(-1) })
	require.Panics(t, func() { linalg.WithEpsilon(math.NaN()) })
	require.Panics(t, func() { linalg.WithMaxElements(0) })
}
