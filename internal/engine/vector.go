package engine

import (
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gpublas/gpublas/internal/compute"
	"github.com/gpublas/gpublas/internal/kernels"
)

// Per-element vector operations: one thread per logical position, no
// inter-thread ordering. Identity coefficients return before any device
// work, avoiding the host/device round trip.

// Scal scales x by alpha in place.
func (e *Engine) Scal(n int, alpha float32, x []float32, incx int) error {
	if n <= 0 || incx == 0 || alpha == 1 {
		return nil
	}
	pipe, err := e.pipeline(kernels.Scal)
	if err != nil {
		return err
	}

	xb, xsize := e.uploadVecRW(x, n, incx)
	defer xb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutF32(alpha)
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, pb}, []uint64{xsize, params.Size()})
	defer bg.Release()

	e.submit(kernels.Scal, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: kernels.Workgroups1D(n), Y: 1, Z: 1})
	return e.readBackVec(xb, x, n, incx)
}

// Axpy computes y = alpha*x + y.
func (e *Engine) Axpy(n int, alpha float32, x []float32, incx int, y []float32, incy int) error {
	if n <= 0 || incx == 0 || incy == 0 || alpha == 0 {
		return nil
	}
	pipe, err := e.pipeline(kernels.Axpy)
	if err != nil {
		return err
	}

	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy)).
		PutF32(alpha)
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, yb, pb}, []uint64{xsize, ysize, params.Size()})
	defer bg.Release()

	e.submit(kernels.Axpy, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: kernels.Workgroups1D(n), Y: 1, Z: 1})
	return e.readBackVec(yb, y, n, incy)
}

// Copy copies x into y.
func (e *Engine) Copy(n int, x []float32, incx int, y []float32, incy int) error {
	if n <= 0 || incx == 0 || incy == 0 {
		return nil
	}
	pipe, err := e.pipeline(kernels.Copy)
	if err != nil {
		return err
	}

	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, yb, pb}, []uint64{xsize, ysize, params.Size()})
	defer bg.Release()

	e.submit(kernels.Copy, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: kernels.Workgroups1D(n), Y: 1, Z: 1})
	return e.readBackVec(yb, y, n, incy)
}

// Swap exchanges x and y.
func (e *Engine) Swap(n int, x []float32, incx int, y []float32, incy int) error {
	if n <= 0 || incx == 0 || incy == 0 {
		return nil
	}
	pipe, err := e.pipeline(kernels.Swap)
	if err != nil {
		return err
	}

	xb, xsize := e.uploadVecRW(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, yb, pb}, []uint64{xsize, ysize, params.Size()})
	defer bg.Release()

	e.submit(kernels.Swap, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: kernels.Workgroups1D(n), Y: 1, Z: 1})

	if err := e.readBackVec(xb, x, n, incx); err != nil {
		return err
	}
	return e.readBackVec(yb, y, n, incy)
}

// Rot applies the plane rotation (c, s) to x and y. The identity rotation
// returns without dispatch.
func (e *Engine) Rot(n int, x []float32, incx int, y []float32, incy int, c, s float32) error {
	if n <= 0 || incx == 0 || incy == 0 || (c == 1 && s == 0) {
		return nil
	}
	pipe, err := e.pipeline(kernels.Rot)
	if err != nil {
		return err
	}

	xb, xsize := e.uploadVecRW(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy)).
		PutF32(c).
		PutF32(s)
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, yb, pb}, []uint64{xsize, ysize, params.Size()})
	defer bg.Release()

	e.submit(kernels.Rot, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: kernels.Workgroups1D(n), Y: 1, Z: 1})

	if err := e.readBackVec(xb, x, n, incx); err != nil {
		return err
	}
	return e.readBackVec(yb, y, n, incy)
}

// Rotm applies the expanded modified-rotation matrix h = [h11 h21 h12 h22]
// to x and y. The caller resolves the flag encoding; flag -2 (identity)
// never reaches the engine.
func (e *Engine) Rotm(n int, x []float32, incx int, y []float32, incy int, h [4]float32) error {
	if n <= 0 || incx == 0 || incy == 0 {
		return nil
	}
	pipe, err := e.pipeline(kernels.Rotm)
	if err != nil {
		return err
	}

	xb, xsize := e.uploadVecRW(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy)).
		PutF32(h[0]).
		PutF32(h[1]).
		PutF32(h[2]).
		PutF32(h[3])
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, yb, pb}, []uint64{xsize, ysize, params.Size()})
	defer bg.Release()

	e.submit(kernels.Rotm, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: kernels.Workgroups1D(n), Y: 1, Z: 1})

	if err := e.readBackVec(xb, x, n, incx); err != nil {
		return err
	}
	return e.readBackVec(yb, y, n, incy)
}
