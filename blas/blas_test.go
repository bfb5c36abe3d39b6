package blas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The zero-value Library validates and quick-returns without a device, so
// everything here runs without GPU hardware.

func TestReductionsEmptyAndZeroStride(t *testing.T) {
	var l Library

	v, err := l.Sasum(0, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	v, err = l.Snrm2(-3, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	// Zero stride reads as the empty vector, not an error.
	v, err = l.Sdot(5, nil, 0, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	idx, err := l.Isamax(0, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = l.Isamin(4, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestMutatingRoutinesDegenerateShapes(t *testing.T) {
	var l Library

	// Non-positive n is a no-op even with nil arrays.
	require.NoError(t, l.Sscal(0, 2, nil, 1))
	require.NoError(t, l.Saxpy(-1, 2, nil, 1, nil, 1))
	require.NoError(t, l.Sgemv(NoTrans, 0, 5, 1, nil, 1, nil, 1, 0, nil, 1))
	require.NoError(t, l.Sger(3, 0, 1, nil, 1, nil, 1, nil, 3))
	require.NoError(t, l.Strsv(Upper, NoTrans, NonUnit, 0, nil, 1, nil, 1))
}

func TestIdentityCoefficientsSkipDevice(t *testing.T) {
	// No device is bound: these calls only pass if the identity
	// quick-return fires before any dispatch is attempted.
	var l Library
	x := []float32{1, 2, 3}
	y := []float32{4, 5, 6}

	require.NoError(t, l.Sscal(3, 1, x, 1))
	assert.Equal(t, []float32{1, 2, 3}, x)

	require.NoError(t, l.Saxpy(3, 0, x, 1, y, 1))
	assert.Equal(t, []float32{4, 5, 6}, y)

	require.NoError(t, l.Srot(3, x, 1, y, 1, 1, 0))
	require.NoError(t, l.Srotm(3, x, 1, y, 1, SrotmParams{Flag: Identity}))
	require.NoError(t, l.Sger(3, 3, 0, x, 1, y, 1, make([]float32, 9), 3))
	require.NoError(t, l.Ssyr(Lower, 3, 0, x, 1, make([]float32, 9), 3))
	require.NoError(t, l.Sspr(Lower, 3, 0, x, 1, make([]float32, 6)))
	require.NoError(t, l.Sgemv(NoTrans, 3, 3, 0, make([]float32, 9), 3, x, 1, 1, y, 1))
}

func TestVectorValidation(t *testing.T) {
	var l Library
	x := []float32{1, 2, 3}

	// Zero stride on a mutating routine.
	err := l.Sscal(3, 2, x, 0)
	var argErr ArgError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "Sscal", argErr.Routine)

	// Backing array shorter than 1+(n-1)*|inc|.
	err = l.Sscal(3, 2, x, 2)
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "x", argErr.Arg)

	// Negative stride needs the same capacity as its positive mirror.
	assert.Error(t, l.Sscal(3, 2, x, -2))
	assert.Error(t, l.Saxpy(3, 2, x, 1, []float32{1}, 1))
}

func TestMatrixValidation(t *testing.T) {
	var l Library
	a := make([]float32, 12)
	x := make([]float32, 4)
	y := make([]float32, 3)

	// lda below the row count.
	err := l.Sgemv(NoTrans, 3, 4, 1, a, 2, x, 1, 0, y, 1)
	var argErr ArgError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "lda", argErr.Arg)

	// Matrix array shorter than lda*n.
	assert.Error(t, l.Sgemv(NoTrans, 3, 4, 1, make([]float32, 11), 3, x, 1, 0, y, 1))

	// Transposed shapes swap the vector length requirements.
	assert.Error(t, l.Sgemv(Trans, 3, 4, 1, a, 3, x[:2], 1, 0, make([]float32, 4), 1))

	// Banded storage needs kl+ku+1 rows.
	assert.Error(t, l.Sgbmv(NoTrans, 4, 4, 1, 2, 1, make([]float32, 16), 3, x, 1, 0, x, 1))

	// Packed storage needs n*(n+1)/2 elements.
	assert.Error(t, l.Sspmv(Upper, 4, 1, make([]float32, 9), x, 1, 0, x, 1))

	// Negative band width.
	assert.Error(t, l.Ssbmv(Upper, 4, -1, 1, a, 3, x, 1, 0, x, 1))
}

func TestFlagValidation(t *testing.T) {
	var l Library
	a := make([]float32, 9)
	x := make([]float32, 3)

	assert.Error(t, l.Ssymv('X', 3, 1, a, 3, x, 1, 0, x, 1))
	assert.Error(t, l.Sgemv('Q', 3, 3, 1, a, 3, x, 1, 0, x, 1))
	assert.Error(t, l.Strmv(Upper, NoTrans, 'Z', 3, a, 3, x, 1))

	// ConjTrans is accepted and means Trans for real data; validation of a
	// degenerate shape still passes.
	require.NoError(t, l.Sgemv(ConjTrans, 0, 0, 1, nil, 1, nil, 1, 0, nil, 1))
}

func TestRealDispatchWithoutDeviceFails(t *testing.T) {
	var l Library
	x := []float32{1, 2, 3}

	_, err := l.Sasum(3, x, 1)
	assert.True(t, errors.Is(err, ErrUnavailable))

	err = l.Sscal(3, 2, x, 1)
	assert.True(t, errors.Is(err, ErrUnavailable))

	err = l.Strsv(Upper, NoTrans, NonUnit, 3, make([]float32, 9), 3, x, 1)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestArgErrorMessage(t *testing.T) {
	err := ArgError{Routine: "Sdot", Arg: "incx", Message: "stride must be nonzero"}
	assert.Equal(t, "blas: Sdot: argument incx: stride must be nonzero", err.Error())
}
