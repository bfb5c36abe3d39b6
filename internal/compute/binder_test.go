package compute

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamBlockPacking(t *testing.T) {
	p := NewParamBlock().
		PutU32(7).
		PutI32(-3).
		PutF32(1.5)

	b := p.Bytes()
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(b[0:4]))
	assert.Equal(t, int32(-3), int32(binary.LittleEndian.Uint32(b[4:8])))
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])))
}

func TestParamBlockUniformAlignment(t *testing.T) {
	// Uniform buffers bind in 16-byte granules; the block pads up, never
	// truncates.
	cases := []struct {
		fields int
		padded int
	}{
		{1, 16},
		{3, 16},
		{4, 16},
		{5, 32},
		{8, 32},
		{9, 48},
	}
	for _, tc := range cases {
		p := NewParamBlock()
		for i := 0; i < tc.fields; i++ {
			p.PutU32(uint32(i))
		}
		b := p.Bytes()
		require.Len(t, b, tc.padded, "%d fields", tc.fields)
		assert.Equal(t, uint64(tc.padded), p.Size())

		// Payload survives the padding.
		for i := 0; i < tc.fields; i++ {
			assert.Equal(t, uint32(i), binary.LittleEndian.Uint32(b[i*4:i*4+4]))
		}
	}
}

func TestDeviceErrorUnwrap(t *testing.T) {
	inner := ErrUnavailable
	err := &DeviceError{Op: "readback", Err: inner}
	assert.Contains(t, err.Error(), "readback")
	assert.ErrorIs(t, err, ErrUnavailable)
}
