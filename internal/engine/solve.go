package engine

import (
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gpublas/gpublas/internal/compute"
	"github.com/gpublas/gpublas/internal/kernels"
)

// Triangular solves run as one single-thread kernel pass: row i needs every
// previously solved row, so the traversal is inherently ordered. A zero
// non-unit diagonal propagates Inf/NaN; it is not trapped here.

// Trsv solves op(A)*x = b in place for dense triangular A.
func (e *Engine) Trsv(upper, trans, unit bool, n int, a []float32, lda int, x []float32, incx int) error {
	if n <= 0 || incx == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}

	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVecRW(x, n, incx)
	defer xb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutU32(boolFlag(trans)).
		PutU32(boolFlag(unit)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.runSeq(kernels.Trsv, n,
		[]*wgpu.Buffer{ab, xb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(xb, x, n, incx)
}

// Tbsv solves op(A)*x = b in place for triangular banded A.
func (e *Engine) Tbsv(upper, trans, unit bool, n, k int, a []float32, lda int, x []float32, incx int) error {
	if n <= 0 || incx == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}

	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVecRW(x, n, incx)
	defer xb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(k)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutU32(boolFlag(trans)).
		PutU32(boolFlag(unit)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.runSeq(kernels.Tbsv, n,
		[]*wgpu.Buffer{ab, xb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(xb, x, n, incx)
}

// Tpsv solves op(A)*x = b in place for packed triangular A.
func (e *Engine) Tpsv(upper, trans, unit bool, n int, ap []float32, x []float32, incx int) error {
	if n <= 0 || incx == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	plen := n * (n + 1) / 2

	apb := e.ctx.NewInputBuffer(f32Bytes(ap[:plen]))
	defer apb.Release()
	xb, xsize := e.uploadVecRW(x, n, incx)
	defer xb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(boolFlag(upper)).
		PutU32(boolFlag(trans)).
		PutU32(boolFlag(unit)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.runSeq(kernels.Tpsv, n,
		[]*wgpu.Buffer{apb, xb, pb},
		[]uint64{uint64(plen) * 4, xsize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(xb, x, n, incx)
}
