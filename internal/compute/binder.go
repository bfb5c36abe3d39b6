package compute

import (
	"encoding/binary"
	"math"

	"github.com/go-webgpu/webgpu/wgpu"
)

// ParamBlock packs scalar kernel parameters into a little-endian byte block.
// Fields are appended in the same order as the WGSL uniform struct declares
// them; all fields are 4-byte scalars so no interior padding is needed, and
// Bytes pads the block to the 16-byte uniform alignment.
type ParamBlock struct {
	buf []byte
}

// NewParamBlock returns an empty parameter block.
func NewParamBlock() *ParamBlock {
	return &ParamBlock{buf: make([]byte, 0, 64)}
}

// PutU32 appends an unsigned 32-bit field.
func (p *ParamBlock) PutU32(v uint32) *ParamBlock {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
	return p
}

// PutI32 appends a signed 32-bit field.
func (p *ParamBlock) PutI32(v int32) *ParamBlock {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(v))
	return p
}

// PutF32 appends a 32-bit float field.
func (p *ParamBlock) PutF32(v float32) *ParamBlock {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, math.Float32bits(v))
	return p
}

// Bytes returns the packed block, padded to a 16-byte boundary.
func (p *ParamBlock) Bytes() []byte {
	padded := (len(p.buf) + 15) &^ 15
	for len(p.buf) < padded {
		p.buf = append(p.buf, 0)
	}
	return p.buf
}

// Size returns the padded byte size of the block.
func (p *ParamBlock) Size() uint64 {
	return uint64((len(p.buf) + 15) &^ 15)
}

// Pass is one kernel dispatch inside a command batch.
type Pass struct {
	Pipeline  *wgpu.ComputePipeline
	BindGroup *wgpu.BindGroup
	X, Y, Z   uint32
}

// Submit encodes one or more compute passes into a single command buffer and
// submits it. Passes execute in slice order; within one batch a later pass
// observes the completed writes of an earlier one.
func (c *Context) Submit(passes ...Pass) {
	encoder := c.device.CreateCommandEncoder(nil)
	for _, p := range passes {
		computePass := encoder.BeginComputePass(nil)
		computePass.SetPipeline(p.Pipeline)
		computePass.SetBindGroup(0, p.BindGroup, nil)
		computePass.DispatchWorkgroups(p.X, p.Y, p.Z)
		computePass.End()
	}
	cmdBuffer := encoder.Finish(nil)
	c.queue.Submit(cmdBuffer)
}
