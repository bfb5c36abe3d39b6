package engine

import (
	"encoding/binary"
	"math"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gpublas/gpublas/internal/compute"
	"github.com/gpublas/gpublas/internal/kernels"
)

// Two-stage reductions. Stage 1 writes one partial per workgroup into a
// transient workspace sized to exactly the workgroup count; when more than
// one workgroup ran, stage 2 folds the partials in the same ordered batch.
// The workspace never outlives the invocation.

// Asum computes sum(|x_i|). n<=0 or a zero stride yields the identity with
// no kernel launch.
func (e *Engine) Asum(n int, x []float32, incx int) (float32, error) {
	if n <= 0 || incx == 0 {
		return 0, nil
	}
	return e.runScalarReduce(kernels.Asum, n, x, incx)
}

// Nrm2 computes sqrt(sum(x_i^2)); the terminal square root is applied after
// readback.
func (e *Engine) Nrm2(n int, x []float32, incx int) (float32, error) {
	if n <= 0 || incx == 0 {
		return 0, nil
	}
	sumsq, err := e.runScalarReduce(kernels.SumSq, n, x, incx)
	if err != nil {
		return 0, err
	}
	return float32(math.Sqrt(float64(sumsq))), nil
}

func (e *Engine) runScalarReduce(kind kernels.Kind, n int, x []float32, incx int) (float32, error) {
	pipe, err := e.pipeline(kind)
	if err != nil {
		return 0, err
	}

	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()

	w := kernels.ReduceWorkgroups(n)
	workspace := e.ctx.NewOutputBuffer(uint64(w) * 4)
	defer workspace.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutU32(w)
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, workspace, pb},
		[]uint64{xsize, uint64(w) * 4, params.Size()})
	defer bg.Release()

	passes := []compute.Pass{{Pipeline: pipe, BindGroup: bg, X: w, Y: 1, Z: 1}}

	// Single workgroup: the lone partial is the final value.
	if w == 1 {
		e.submit(kind, n, passes...)
		return e.readScalar(workspace)
	}

	finalPipe, err := e.pipeline(kernels.SumFinal)
	if err != nil {
		return 0, err
	}
	result := e.ctx.NewOutputBuffer(4)
	defer result.Release()

	finalParams := compute.NewParamBlock().PutU32(w)
	fpb := e.ctx.NewUniformBuffer(finalParams.Bytes())
	defer fpb.Release()

	fbg := e.ctx.BindGroup(finalPipe, []*wgpu.Buffer{workspace, result, fpb},
		[]uint64{uint64(w) * 4, 4, finalParams.Size()})
	defer fbg.Release()

	passes = append(passes, compute.Pass{Pipeline: finalPipe, BindGroup: fbg, X: 1, Y: 1, Z: 1})
	e.submit(kind, n, passes...)
	return e.readScalar(result)
}

// Dot computes sum(x_i * y_i).
func (e *Engine) Dot(n int, x []float32, incx int, y []float32, incy int) (float32, error) {
	if n <= 0 || incx == 0 || incy == 0 {
		return 0, nil
	}
	pipe, err := e.pipeline(kernels.Dot)
	if err != nil {
		return 0, err
	}

	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()
	yb, ysize := e.uploadVec(y, n, incy)
	defer yb.Release()

	w := kernels.ReduceWorkgroups(n)
	workspace := e.ctx.NewOutputBuffer(uint64(w) * 4)
	defer workspace.Release()

	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutI32(int32(incy)).
		PutI32(vecOffset(n, incy)).
		PutU32(w)
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, yb, workspace, pb},
		[]uint64{xsize, ysize, uint64(w) * 4, params.Size()})
	defer bg.Release()

	passes := []compute.Pass{{Pipeline: pipe, BindGroup: bg, X: w, Y: 1, Z: 1}}

	if w == 1 {
		e.submit(kernels.Dot, n, passes...)
		return e.readScalar(workspace)
	}

	finalPipe, err := e.pipeline(kernels.SumFinal)
	if err != nil {
		return 0, err
	}
	result := e.ctx.NewOutputBuffer(4)
	defer result.Release()

	finalParams := compute.NewParamBlock().PutU32(w)
	fpb := e.ctx.NewUniformBuffer(finalParams.Bytes())
	defer fpb.Release()

	fbg := e.ctx.BindGroup(finalPipe, []*wgpu.Buffer{workspace, result, fpb},
		[]uint64{uint64(w) * 4, 4, finalParams.Size()})
	defer fbg.Release()

	passes = append(passes, compute.Pass{Pipeline: finalPipe, BindGroup: fbg, X: 1, Y: 1, Z: 1})
	e.submit(kernels.Dot, n, passes...)
	return e.readScalar(result)
}

// ArgExt finds the 1-based index of the extreme |x_i|: the minimum when
// minimize is set, otherwise the maximum. Ties resolve to the smallest
// index; 0 means no candidate.
func (e *Engine) ArgExt(minimize bool, n int, x []float32, incx int) (int, error) {
	if n <= 0 || incx == 0 {
		return 0, nil
	}
	pipe, err := e.pipeline(kernels.ArgExt)
	if err != nil {
		return 0, err
	}

	xb, xsize := e.uploadVec(x, n, incx)
	defer xb.Release()

	w := kernels.ReduceWorkgroups(n)
	workspace := e.ctx.NewOutputBuffer(uint64(w) * 8)
	defer workspace.Release()

	var minFlag uint32
	if minimize {
		minFlag = 1
	}
	params := compute.NewParamBlock().
		PutU32(uint32(n)).
		PutI32(int32(incx)).
		PutI32(vecOffset(n, incx)).
		PutU32(w).
		PutU32(minFlag)
	pb := e.ctx.NewUniformBuffer(params.Bytes())
	defer pb.Release()

	bg := e.ctx.BindGroup(pipe, []*wgpu.Buffer{xb, workspace, pb},
		[]uint64{xsize, uint64(w) * 8, params.Size()})
	defer bg.Release()

	passes := []compute.Pass{{Pipeline: pipe, BindGroup: bg, X: w, Y: 1, Z: 1}}

	// Single workgroup: unpack the lone (value, index) pair to an index.
	if w == 1 {
		e.submit(kernels.ArgExt, n, passes...)
		return e.readPairIndex(workspace)
	}

	finalPipe, err := e.pipeline(kernels.ArgExtFinal)
	if err != nil {
		return 0, err
	}
	result := e.ctx.NewOutputBuffer(8)
	defer result.Release()

	finalParams := compute.NewParamBlock().PutU32(w).PutU32(minFlag)
	fpb := e.ctx.NewUniformBuffer(finalParams.Bytes())
	defer fpb.Release()

	fbg := e.ctx.BindGroup(finalPipe, []*wgpu.Buffer{workspace, result, fpb},
		[]uint64{uint64(w) * 8, 8, finalParams.Size()})
	defer fbg.Release()

	passes = append(passes, compute.Pass{Pipeline: finalPipe, BindGroup: fbg, X: 1, Y: 1, Z: 1})
	e.submit(kernels.ArgExt, n, passes...)
	return e.readPairIndex(result)
}

func (e *Engine) readScalar(buf *wgpu.Buffer) (float32, error) {
	raw, err := e.ctx.ReadBack(buf, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(raw)), nil
}

func (e *Engine) readPairIndex(buf *wgpu.Buffer) (int, error) {
	raw, err := e.ctx.ReadBack(buf, 8)
	if err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint32(raw[4:8])), nil
}
