// Package engine orchestrates BLAS kernels over the compute context:
// copy-in, dispatch, readback, with deterministic buffer release on every
// path. Host arrays never alias device buffers; each invocation owns
// disjoint GPU resources.
package engine

import (
	"sync/atomic"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/google/uuid"

	"github.com/gpublas/gpublas/internal/compute"
	"github.com/gpublas/gpublas/internal/kernels"
	"github.com/gpublas/gpublas/internal/logger"
)

// Engine executes BLAS operations against one compute context. The context
// is injected, never ambient. The dispatch counter is observable so callers
// can assert that degenerate invocations skip the device entirely.
type Engine struct {
	ctx *compute.Context
	reg *kernels.Registry
	log logger.Logger

	dispatches atomic.Uint64
}

// New returns an engine bound to the given context. A nil context is legal
// for invocations that never reach the device (degenerate shapes, identity
// coefficients); any real dispatch against it is a programming error.
func New(ctx *compute.Context) *Engine {
	e := &Engine{ctx: ctx}
	if ctx != nil {
		e.reg = kernels.NewRegistry(ctx)
		e.log = ctx.Logger()
	} else {
		e.log = logger.Discard()
	}
	return e
}

// SetLogger replaces the engine logger.
func (e *Engine) SetLogger(log logger.Logger) {
	e.log = log
}

// Dispatches returns the number of kernel passes submitted so far.
func (e *Engine) Dispatches() uint64 {
	return e.dispatches.Load()
}

// submit sends one command batch and accounts for its passes. Passes within
// a batch execute in order; stage 2 of a reduction sees stage 1's output.
func (e *Engine) submit(kind kernels.Kind, n int, passes ...compute.Pass) {
	e.dispatches.Add(uint64(len(passes)))
	e.log.Debug("engine: dispatch",
		"kernel", kind.String(), "n", n, "passes", len(passes),
		"invocation", uuid.NewString())
	e.ctx.Submit(passes...)
}

func (e *Engine) pipeline(kind kernels.Kind) (*wgpu.ComputePipeline, error) {
	if e.reg == nil {
		return nil, compute.ErrUnavailable
	}
	return e.reg.Pipeline(kind, kernels.F32)
}

// ready is checked after the degenerate quick-returns, before any buffer is
// allocated against the context.
func (e *Engine) ready() error {
	if e.ctx == nil {
		return compute.ErrUnavailable
	}
	return nil
}

// vecExtent is the backing length touched by n strided elements.
func vecExtent(n, inc int) int {
	if inc < 0 {
		inc = -inc
	}
	return 1 + (n-1)*inc
}

// vecOffset is the index of logical element 0: a negative stride walks the
// buffer backward from its conceptual first element.
func vecOffset(n, inc int) int32 {
	if inc < 0 {
		return int32((n - 1) * -inc)
	}
	return 0
}

func f32Bytes(x []float32) []byte {
	if len(x) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&x[0])), len(x)*4)
}

func bytesF32(b []byte) []float32 {
	if len(b) < 4 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}

// uploadVec copies the strided extent of x into a read-only storage buffer.
func (e *Engine) uploadVec(x []float32, n, inc int) (*wgpu.Buffer, uint64) {
	ext := vecExtent(n, inc)
	return e.ctx.NewInputBuffer(f32Bytes(x[:ext])), uint64(ext * 4)
}

// uploadVecRW copies the strided extent of x into a mutable storage buffer.
func (e *Engine) uploadVecRW(x []float32, n, inc int) (*wgpu.Buffer, uint64) {
	ext := vecExtent(n, inc)
	return e.ctx.NewInOutBuffer(f32Bytes(x[:ext])), uint64(ext * 4)
}

// readBackVec copies a mutated device vector back into the host slice.
func (e *Engine) readBackVec(buf *wgpu.Buffer, x []float32, n, inc int) error {
	ext := vecExtent(n, inc)
	raw, err := e.ctx.ReadBack(buf, uint64(ext*4))
	if err != nil {
		return err
	}
	copy(x[:ext], bytesF32(raw))
	return nil
}
