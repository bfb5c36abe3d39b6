// Package kernels holds the WGSL compute shader sources and the closed
// kernel registry that resolves (kind, precision) to a compiled pipeline.
package kernels

import (
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/gpublas/gpublas/internal/compute"
)

// Kind identifies one compute program. The set is closed: adding a kernel
// means adding a variant here and a source entry below, not a string lookup.
type Kind int

const (
	// Reduction stage 1 kernels (one partial per workgroup).
	Asum Kind = iota
	SumSq
	Dot
	ArgExt
	// Reduction stage 2 kernels (partials to one element).
	SumFinal
	ArgExtFinal
	// Elementwise vector kernels.
	Scal
	Axpy
	Copy
	Swap
	Rot
	Rotm
	// Matrix-vector products.
	Gemv
	Gbmv
	Symv
	Sbmv
	Spmv
	Trmv
	Tbmv
	Tpmv
	// Rank-1 and rank-2 updates.
	Ger
	Syr
	Syr2
	Spr
	Spr2
	// Sequential triangular solves.
	Trsv
	Tbsv
	Tpsv

	numKinds int = iota
)

var kindNames = [...]string{
	Asum:        "asum_partial",
	SumSq:       "sumsq_partial",
	Dot:         "dot_partial",
	ArgExt:      "argext_partial",
	SumFinal:    "sum_final",
	ArgExtFinal: "argext_final",
	Scal:        "scal",
	Axpy:        "axpy",
	Copy:        "copy",
	Swap:        "swap",
	Rot:         "rot",
	Rotm:        "rotm",
	Gemv:        "gemv",
	Gbmv:        "gbmv",
	Symv:        "symv",
	Sbmv:        "sbmv",
	Spmv:        "spmv",
	Trmv:        "trmv",
	Tbmv:        "tbmv",
	Tpmv:        "tpmv",
	Ger:         "ger",
	Syr:         "syr",
	Syr2:        "syr2",
	Spr:         "spr",
	Spr2:        "spr2",
	Trsv:        "trsv",
	Tbsv:        "tbsv",
	Tpsv:        "tpsv",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Precision selects the element type of a kernel.
type Precision int

const (
	F32 Precision = iota
	F64
)

func (p Precision) String() string {
	if p == F64 {
		return "f64"
	}
	return "f32"
}

var sources = [numKinds]string{
	Asum:        asumPartialSrc,
	SumSq:       sumsqPartialSrc,
	Dot:         dotPartialSrc,
	ArgExt:      argextPartialSrc,
	SumFinal:    sumFinalSrc,
	ArgExtFinal: argextFinalSrc,
	Scal:        scalSrc,
	Axpy:        axpySrc,
	Copy:        copySrc,
	Swap:        swapSrc,
	Rot:         rotSrc,
	Rotm:        rotmSrc,
	Gemv:        gemvSrc,
	Gbmv:        gbmvSrc,
	Symv:        symvSrc,
	Sbmv:        sbmvSrc,
	Spmv:        spmvSrc,
	Trmv:        trmvSrc,
	Tbmv:        tbmvSrc,
	Tpmv:        tpmvSrc,
	Ger:         gerSrc,
	Syr:         syrSrc,
	Syr2:        syr2Src,
	Spr:         sprSrc,
	Spr2:        spr2Src,
	Trsv:        trsvSrc,
	Tbsv:        tbsvSrc,
	Tpsv:        tpsvSrc,
}

// Registry resolves kernel kinds to compiled pipelines for one context.
// Pipelines are compiled lazily through the context cache, so a registry is
// cheap to construct and shares compiled programs across engines.
type Registry struct {
	ctx *compute.Context
}

// NewRegistry returns a registry bound to the given context.
func NewRegistry(ctx *compute.Context) *Registry {
	return &Registry{ctx: ctx}
}

// Pipeline returns the compiled pipeline for a kernel kind. F64 kernels are
// rejected: WGSL has no f64 storage type on the targeted backends.
func (r *Registry) Pipeline(kind Kind, prec Precision) (*wgpu.ComputePipeline, error) {
	if prec != F32 {
		return nil, fmt.Errorf("kernels: %s precision not supported by backend", prec)
	}
	if kind < 0 || int(kind) >= numKinds {
		return nil, fmt.Errorf("kernels: unknown kernel kind %d", int(kind))
	}
	return r.ctx.Pipeline(kind.String(), sources[kind]), nil
}

// Source returns the WGSL source for a kernel kind. Used by tests.
func Source(kind Kind) string {
	return sources[kind]
}

// Kinds returns every kernel kind in the registry.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

const (
	// NB is the number of threads per workgroup for 1D kernels.
	NB = 256
	// WIN is the per-thread element window in reduction stage 1.
	WIN = 4
	// Tile is the workgroup edge for 2D kernels.
	Tile = 16
)

// Workgroups1D returns ceil(n/NB) for per-element kernels.
func Workgroups1D(n int) uint32 {
	return uint32((n + NB - 1) / NB)
}

// ReduceWorkgroups returns the stage-1 workgroup count for an n-element
// reduction: each thread covers a WIN-element window.
func ReduceWorkgroups(n int) uint32 {
	w := (n + NB*WIN - 1) / (NB * WIN)
	if w < 1 {
		w = 1
	}
	return uint32(w)
}

// Workgroups2D returns ceil(rows/Tile), ceil(cols/Tile) for tiled kernels.
func Workgroups2D(rows, cols int) (x, y uint32) {
	return uint32((cols + Tile - 1) / Tile), uint32((rows + Tile - 1) / Tile)
}
