package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A nil-context engine panics or errors the moment anything touches the
// device, so a zero dispatch count here proves the quick-return fired
// before any GPU work.

func TestDegenerateCallsSkipDispatch(t *testing.T) {
	e := New(nil)

	v, err := e.Asum(0, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	v, err = e.Nrm2(5, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	idx, err := e.ArgExt(false, -2, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	require.NoError(t, e.Scal(0, 2, nil, 1))
	require.NoError(t, e.Copy(5, nil, 0, nil, 1))
	require.NoError(t, e.Trsv(true, false, false, 0, nil, 1, nil, 1))

	assert.Equal(t, uint64(0), e.Dispatches())
}

func TestIdentityCoefficientsSkipDispatch(t *testing.T) {
	e := New(nil)
	x := []float32{1, 2, 3}
	y := []float32{4, 5, 6}

	require.NoError(t, e.Scal(3, 1, x, 1))
	require.NoError(t, e.Axpy(3, 0, x, 1, y, 1))
	require.NoError(t, e.Rot(3, x, 1, y, 1, 1, 0))
	require.NoError(t, e.Ger(3, 3, 0, x, 1, y, 1, make([]float32, 9), 3))
	require.NoError(t, e.Syr2(true, 3, 0, x, 1, y, 1, make([]float32, 9), 3))
	require.NoError(t, e.Gemv(false, 3, 3, 0, make([]float32, 9), 3, x, 1, 1, y, 1))
	require.NoError(t, e.Spmv(true, 3, 0, make([]float32, 6), x, 1, 1, y, 1))

	assert.Equal(t, uint64(0), e.Dispatches())
	assert.Equal(t, []float32{1, 2, 3}, x)
	assert.Equal(t, []float32{4, 5, 6}, y)
}

func TestRealWorkWithoutDeviceErrors(t *testing.T) {
	e := New(nil)
	x := []float32{1, 2, 3}

	_, err := e.Asum(3, x, 1)
	assert.Error(t, err)

	assert.Error(t, e.Scal(3, 2, x, 1))
	assert.Error(t, e.Gemv(false, 3, 3, 1, make([]float32, 9), 3, x, 1, 0, x, 1))
	assert.Error(t, e.Tpsv(true, false, false, 3, make([]float32, 6), x, 1))
	assert.Equal(t, uint64(0), e.Dispatches())
}

func TestVecExtent(t *testing.T) {
	assert.Equal(t, 1, vecExtent(1, 1))
	assert.Equal(t, 5, vecExtent(5, 1))
	assert.Equal(t, 9, vecExtent(5, 2))
	assert.Equal(t, 9, vecExtent(5, -2))
}

func TestVecOffset(t *testing.T) {
	// Positive strides start at the buffer head; negative strides start at
	// the conceptual first element, which sits at the far end.
	assert.Equal(t, int32(0), vecOffset(5, 1))
	assert.Equal(t, int32(0), vecOffset(5, 3))
	assert.Equal(t, int32(4), vecOffset(5, -1))
	assert.Equal(t, int32(8), vecOffset(5, -2))
	assert.Equal(t, int32(0), vecOffset(1, -7))
}

func TestF32BytesRoundTrip(t *testing.T) {
	x := []float32{1.5, -2.25, 0, 3e7}
	b := f32Bytes(x)
	require.Len(t, b, 16)
	assert.Equal(t, x, bytesF32(b))

	assert.Nil(t, f32Bytes(nil))
	assert.Nil(t, bytesF32(nil))
}
