package engine

import (
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gpublas/gpublas/internal/compute"
	"github.com/gpublas/gpublas/internal/kernels"
)

// Matrix-vector products and rank updates. Matrices travel as their full
// column-major (or compact) extent; the mutated operand is read back once
// and copied into the caller's array.

func boolFlag(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// run1D binds the buffers in order and dispatches a 1D grid covering n
// logical outputs.
func (e *Engine) run1D(kind kernels.Kind, n int, bufs []*wgpu.Buffer, sizes []uint64) error {
	pipe, err := e.pipeline(kind)
	if err != nil {
		return err
	}
	bg := e.ctx.BindGroup(pipe, bufs, sizes)
	defer bg.Release()
	e.submit(kind, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: kernels.Workgroups1D(n), Y: 1, Z: 1})
	return nil
}

// run2D dispatches a tiled 2D grid covering rows x cols threads.
func (e *Engine) run2D(kind kernels.Kind, rows, cols int, bufs []*wgpu.Buffer, sizes []uint64) error {
	pipe, err := e.pipeline(kind)
	if err != nil {
		return err
	}
	bg := e.ctx.BindGroup(pipe, bufs, sizes)
	defer bg.Release()
	x, y := kernels.Workgroups2D(rows, cols)
	e.submit(kind, rows*cols, compute.Pass{Pipeline: pipe, BindGroup: bg, X: x, Y: y, Z: 1})
	return nil
}

// runSeq dispatches the single-thread sequential kernel.
func (e *Engine) runSeq(kind kernels.Kind, n int, bufs []*wgpu.Buffer, sizes []uint64) error {
	pipe, err := e.pipeline(kind)
	if err != nil {
		return err
	}
	bg := e.ctx.BindGroup(pipe, bufs, sizes)
	defer bg.Release()
	e.submit(kind, n, compute.Pass{Pipeline: pipe, BindGroup: bg, X: 1, Y: 1, Z: 1})
	return nil
}

// Gemv computes y = alpha*op(A)*x + beta*y for dense column-major A (m x n).
func (e *Engine) Gemv(trans bool, m, n int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if m <= 0 || n <= 0 || (alpha == 0 && beta == 1) {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	xn, yn := n, m
	if trans {
		xn, yn = m, n
	}

	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVec(x, xn, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, yn, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(m)).
		PutU32(uint32(n)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(trans)).
		PutF32(alpha).
		PutF32(beta).
		PutI32(int32(incx)).
		PutI32(vecOffset(xn, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(yn, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run1D(kernels.Gemv, yn,
		[]*wgpu.Buffer{ab, xb, yb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(yb, y, yn, incy)
}

// Gbmv computes y = alpha*op(A)*x + beta*y for a banded A (m x n, kl
// sub-diagonals, ku super-diagonals) in compact storage.
func (e *Engine) Gbmv(trans bool, m, n, kl, ku int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if m <= 0 || n <= 0 || (alpha == 0 && beta == 1) {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	xn, yn := n, m
	if trans {
		xn, yn = m, n
	}

	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVec(x, xn, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, yn, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(m)).
		PutU32(uint32(n)).
		PutU32(uint32(kl)).
		PutU32(uint32(ku)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(trans)).
		PutF32(alpha).
		PutF32(beta).
		PutI32(int32(incx)).
		PutI32(vecOffset(xn, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(yn, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run1D(kernels.Gbmv, yn,
		[]*wgpu.Buffer{ab, xb, yb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(yb, y, yn, incy)
}

// Symv computes y = alpha*A*x + beta*y for symmetric A, reading only the
// uplo half.
func (e *Engine) Symv(upper bool, n int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if n <= 0 || (alpha == 0 && beta == 1) {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}

	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutF32(alpha).
		PutF32(beta).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run1D(kernels.Symv, n,
		[]*wgpu.Buffer{ab, xb, yb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(yb, y, n, incy)
}

// Sbmv computes y = alpha*A*x + beta*y for symmetric banded A with k
// off-diagonals in compact storage.
func (e *Engine) Sbmv(upper bool, n, k int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if n <= 0 || (alpha == 0 && beta == 1) {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}

	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(k)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutF32(alpha).
		PutF32(beta).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run1D(kernels.Sbmv, n,
		[]*wgpu.Buffer{ab, xb, yb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(yb, y, n, incy)
}

// Spmv computes y = alpha*A*x + beta*y for packed symmetric A.
func (e *Engine) Spmv(upper bool, n int, alpha float32, ap []float32,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if n <= 0 || (alpha == 0 && beta == 1) {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	plen := n * (n + 1) / 2

	apb := e.ctx.NewInputBuffer(f32Bytes(ap[:plen]))
	defer apb.Release()
	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVecRW(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(boolFlag(upper)).
		PutF32(alpha).
		PutF32(beta).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run1D(kernels.Spmv, n,
		[]*wgpu.Buffer{apb, xb, yb, pb},
		[]uint64{uint64(plen) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(yb, y, n, incy)
}

// runTriMV handles the x = op(A)*x family: x is uploaded twice, once as an
// immutable snapshot and once as the output, so threads read unmutated
// inputs.
func (e *Engine) runTriMV(kind kernels.Kind, n int, mat *wgpu.Buffer, matSize uint64,
	params *compute.ParamBlock, x []float32, incx int) error {
	xin, xsize := e.uploadVec(x, n, incx)
	defer xin.Release()
	xout, _ := e.uploadVecRW(x, n, incx)
	defer xout.Release()

	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run1D(kind, n,
		[]*wgpu.Buffer{mat, xin, xout, pb},
		[]uint64{matSize, xsize, xsize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackVec(xout, x, n, incx)
}

// Trmv computes x = op(A)*x for dense triangular A.
func (e *Engine) Trmv(upper, trans, unit bool, n int, a []float32, lda int, x []float32, incx int) error {
	if n <= 0 || incx == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutU32(boolFlag(trans)).
		PutU32(boolFlag(unit)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	return e.runTriMV(kernels.Trmv, n, ab, uint64(lda*n)*4, params, x, incx)
}

// Tbmv computes x = op(A)*x for triangular banded A.
func (e *Engine) Tbmv(upper, trans, unit bool, n, k int, a []float32, lda int, x []float32, incx int) error {
	if n <= 0 || incx == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	ab := e.ctx.NewInputBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(k)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutU32(boolFlag(trans)).
		PutU32(boolFlag(unit)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	return e.runTriMV(kernels.Tbmv, n, ab, uint64(lda*n)*4, params, x, incx)
}

// Tpmv computes x = op(A)*x for packed triangular A.
func (e *Engine) Tpmv(upper, trans, unit bool, n int, ap []float32, x []float32, incx int) error {
	if n <= 0 || incx == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	plen := n * (n + 1) / 2
	apb := e.ctx.NewInputBuffer(f32Bytes(ap[:plen]))
	defer apb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(boolFlag(upper)).
		PutU32(boolFlag(trans)).
		PutU32(boolFlag(unit)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	return e.runTriMV(kernels.Tpmv, n, apb, uint64(plen)*4, params, x, incx)
}

// Ger applies A = A + alpha*x*y^T. alpha == 0 returns with zero dispatches.
func (e *Engine) Ger(m, n int, alpha float32, x []float32, incx int,
	y []float32, incy int, a []float32, lda int) error {
	if m <= 0 || n <= 0 || alpha == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}

	ab := e.ctx.NewInOutBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVec(x, m, incx)
	defer xb.Release()
	yb, ysize := e.uploadVec(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(m)).
		PutU32(uint32(n)).
		PutU32(uint32(lda)).
		PutF32(alpha).
		PutI32(int32(incx)).
		PutI32(vecOffset(m, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run2D(kernels.Ger, m, n,
		[]*wgpu.Buffer{ab, xb, yb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackMat(ab, a, lda*n)
}

// Syr applies A = A + alpha*x*x^T inside the declared triangle.
func (e *Engine) Syr(upper bool, n int, alpha float32, x []float32, incx int,
	a []float32, lda int) error {
	if n <= 0 || alpha == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}

	ab := e.ctx.NewInOutBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutF32(alpha).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run2D(kernels.Syr, n, n,
		[]*wgpu.Buffer{ab, xb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackMat(ab, a, lda*n)
}

// Syr2 applies A = A + alpha*(x*y^T + y*x^T) inside the declared triangle.
func (e *Engine) Syr2(upper bool, n int, alpha float32, x []float32, incx int,
	y []float32, incy int, a []float32, lda int) error {
	if n <= 0 || alpha == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}

	ab := e.ctx.NewInOutBuffer(f32Bytes(a[:lda*n]))
	defer ab.Release()
	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVec(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(uint32(lda)).
		PutU32(boolFlag(upper)).
		PutF32(alpha).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run2D(kernels.Syr2, n, n,
		[]*wgpu.Buffer{ab, xb, yb, pb},
		[]uint64{uint64(lda*n) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackMat(ab, a, lda*n)
}

// Spr applies the packed rank-1 update.
func (e *Engine) Spr(upper bool, n int, alpha float32, x []float32, incx int, ap []float32) error {
	if n <= 0 || alpha == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	plen := n * (n + 1) / 2

	apb := e.ctx.NewInOutBuffer(f32Bytes(ap[:plen]))
	defer apb.Release()
	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(boolFlag(upper)).
		PutF32(alpha).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run2D(kernels.Spr, n, n,
		[]*wgpu.Buffer{apb, xb, pb},
		[]uint64{uint64(plen) * 4, xsize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackMat(apb, ap, plen)
}

// Spr2 applies the packed rank-2 update.
func (e *Engine) Spr2(upper bool, n int, alpha float32, x []float32, incx int,
	y []float32, incy int, ap []float32) error {
	if n <= 0 || alpha == 0 {
		return nil
	}
	if err := e.ready(); err != nil {
		return err
	}
	plen := n * (n + 1) / 2

	apb := e.ctx.NewInOutBuffer(f32Bytes(ap[:plen]))
	defer apb.Release()
	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVec(y, n, incy)
	defer yb.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutU32(boolFlag(upper)).
		PutF32(alpha).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy))
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	err := e.run2D(kernels.Spr2, n, n,
		[]*wgpu.Buffer{apb, xb, yb, pb},
		[]uint64{uint64(plen) * 4, xsize, ysize, params.Size()})
	if err != nil {
		return err
	}
	return e.readBackMat(apb, ap, plen)
}

func (e *Engine) readBackMat(buf *wgpu.Buffer, a []float32, count int) error {
	raw, err := e.ctx.ReadBack(buf, uint64(count*4))
	if err != nil {
		return err
	}
	copy(a[:count], bytesF32(raw))
	return nil
}
