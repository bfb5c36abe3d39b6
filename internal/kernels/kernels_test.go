package kernels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindHasSourceAndName(t *testing.T) {
	for _, k := range Kinds() {
		src := Source(k)
		require.NotEmpty(t, src, "kind %d has no source", int(k))
		assert.Contains(t, src, "@compute", "kind %s", k)
		assert.Contains(t, src, "fn main", "kind %s", k)
		assert.NotContains(t, k.String(), "Kind(", "kind %d has no name", int(k))
	}
}

func TestKindNamesUnique(t *testing.T) {
	seen := map[string]Kind{}
	for _, k := range Kinds() {
		prev, dup := seen[k.String()]
		require.False(t, dup, "%s names both %d and %d", k, int(prev), int(k))
		seen[k.String()] = k
	}
}

func TestReductionKernelsDeclareSharedMemory(t *testing.T) {
	for _, k := range []Kind{Asum, SumSq, Dot, SumFinal} {
		assert.Contains(t, Source(k), "var<workgroup>", "kind %s", k)
	}
	// Extremum kernels carry the index alongside the value.
	for _, k := range []Kind{ArgExt, ArgExtFinal} {
		src := Source(k)
		assert.Contains(t, src, "var<workgroup>", "kind %s", k)
		assert.Contains(t, src, "struct Pair", "kind %s", k)
	}
}

func TestSequentialSolversAreSingleThreaded(t *testing.T) {
	for _, k := range []Kind{Trsv, Tbsv, Tpsv} {
		assert.Contains(t, Source(k), "@workgroup_size(1)", "kind %s", k)
	}
}

func TestParallelKernelsUseFullWorkgroup(t *testing.T) {
	for _, k := range []Kind{Scal, Axpy, Gemv, Symv, Trmv} {
		assert.Contains(t, Source(k), "@workgroup_size(256)", "kind %s", k)
	}
	for _, k := range []Kind{Ger, Syr, Spr2} {
		assert.Contains(t, Source(k), "@workgroup_size(16, 16)", "kind %s", k)
	}
}

func TestRegistryRejectsF64(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Pipeline(Dot, F64)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "f64"))

	_, err = r.Pipeline(Kind(numKinds), F32)
	assert.Error(t, err)
	_, err = r.Pipeline(Kind(-1), F32)
	assert.Error(t, err)
}

func TestWorkgroupCounts(t *testing.T) {
	assert.Equal(t, uint32(1), Workgroups1D(1))
	assert.Equal(t, uint32(1), Workgroups1D(256))
	assert.Equal(t, uint32(2), Workgroups1D(257))

	// Stage 1 covers NB*WIN elements per workgroup.
	assert.Equal(t, uint32(1), ReduceWorkgroups(1))
	assert.Equal(t, uint32(1), ReduceWorkgroups(1024))
	assert.Equal(t, uint32(2), ReduceWorkgroups(1025))
	assert.Equal(t, uint32(4), ReduceWorkgroups(4096))

	x, y := Workgroups2D(17, 31)
	assert.Equal(t, uint32(2), x)
	assert.Equal(t, uint32(2), y)
	x, y = Workgroups2D(16, 16)
	assert.Equal(t, uint32(1), x)
	assert.Equal(t, uint32(1), y)
}
