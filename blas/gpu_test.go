package blas

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests against a real device. Each test acquires the shared
// context and skips when no adapter is present, so the suite stays green on
// CI hosts without GPU access.

func gpuLib(t *testing.T) *Library {
	t.Helper()
	l, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	return l
}

func randVec(rng *rand.Rand, n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = rng.Float32()*4 - 2
	}
	return v
}

func TestSasumGPU(t *testing.T) {
	l := gpuLib(t)

	v, err := l.Sasum(4, []float32{1, -2, 3, -4}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10, v, 1e-5)

	// Singleton.
	v, err = l.Sasum(1, []float32{-7}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 7, v, 1e-6)
}

func TestSasumTwoStageGPU(t *testing.T) {
	// 5000 elements forces multiple stage-1 workgroups and a stage-2 fold.
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(1))
	x := randVec(rng, 5000)

	var want float64
	for _, v := range x {
		want += math.Abs(float64(v))
	}
	got, err := l.Sasum(len(x), x, 1)
	require.NoError(t, err)
	assert.InEpsilon(t, want, float64(got), 1e-3)
}

func TestSnrm2GPU(t *testing.T) {
	l := gpuLib(t)
	v, err := l.Snrm2(2, []float32{3, 4}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 5, v, 1e-5)
}

func TestSdotStridedGPU(t *testing.T) {
	l := gpuLib(t)
	x := []float32{1, 99, 2, 99, 3}
	y := []float32{4, 5, 6}

	// Strided access must see logical elements (1, 2, 3).
	v, err := l.Sdot(3, x, 2, y, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1*4+2*5+3*6, v, 1e-5)
}

func TestSdotMatchesSequentialGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{1, 255, 256, 1024, 1025, 3000} {
		x := randVec(rng, n)
		y := randVec(rng, n)
		var want float64
		for i := range x {
			want += float64(x[i]) * float64(y[i])
		}
		got, err := l.Sdot(n, x, 1, y, 1)
		require.NoError(t, err)
		assert.InDelta(t, want, float64(got), 1e-2+1e-4*math.Abs(want), "n=%d", n)
	}
}

func TestIsamaxTieBreakGPU(t *testing.T) {
	l := gpuLib(t)

	idx, err := l.Isamax(4, []float32{1, -3, 3, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "tie resolves to the smaller 1-based index")

	idx, err = l.Isamin(4, []float32{3, -1, 2, -1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestIsamaxLargeGPU(t *testing.T) {
	l := gpuLib(t)
	x := make([]float32, 4000)
	rng := rand.New(rand.NewSource(3))
	for i := range x {
		x[i] = rng.Float32()
	}
	x[2777] = 9 // clear winner deep in a later workgroup

	idx, err := l.Isamax(len(x), x, 1)
	require.NoError(t, err)
	assert.Equal(t, 2778, idx)
}

func TestSscalNegativeStrideGPU(t *testing.T) {
	l := gpuLib(t)
	x := []float32{1, 2, 3, 4, 5}
	mirror := []float32{1, 2, 3, 4, 5}

	require.NoError(t, l.Sscal(5, 2, x, -1))
	require.NoError(t, l.Sscal(5, 2, mirror, 1))

	// Same touched positions either direction, so the multiset matches.
	a := append([]float32(nil), x...)
	b := append([]float32(nil), mirror...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	assert.Equal(t, b, a)
}

func TestSaxpyGPU(t *testing.T) {
	l := gpuLib(t)
	x := []float32{1, 2, 3}
	y := []float32{10, 20, 30}
	require.NoError(t, l.Saxpy(3, 2, x, 1, y, 1))
	assert.Equal(t, []float32{12, 24, 36}, y)
	assert.Equal(t, []float32{1, 2, 3}, x, "x is read-only")
}

func TestScopySswapGPU(t *testing.T) {
	l := gpuLib(t)
	x := []float32{1, 2, 3}
	y := make([]float32, 3)
	require.NoError(t, l.Scopy(3, x, 1, y, 1))
	assert.Equal(t, x, y)

	a := []float32{1, 2, 3}
	b := []float32{7, 8, 9}
	require.NoError(t, l.Sswap(3, a, 1, b, 1))
	assert.Equal(t, []float32{7, 8, 9}, a)
	assert.Equal(t, []float32{1, 2, 3}, b)
}

func TestSrotAppliesGivensGPU(t *testing.T) {
	l := gpuLib(t)
	c, s, r, _ := Srotg(3, 4)

	x := []float32{3}
	y := []float32{4}
	require.NoError(t, l.Srot(1, x, 1, y, 1, c, s))
	assert.InDelta(t, float64(r), float64(x[0]), 1e-5)
	assert.InDelta(t, 0, float64(y[0]), 1e-5)
}

func TestSrotmGPU(t *testing.T) {
	l := gpuLib(t)
	x := []float32{1, 2}
	y := []float32{3, 4}
	p := SrotmParams{Flag: OffDiagonal, H: [4]float32{0, 0.5, -0.25, 0}}

	require.NoError(t, l.Srotm(2, x, 1, y, 1, p))
	// H = [[1, -0.25], [0.5, 1]]
	assert.InDelta(t, 1-0.25*3, float64(x[0]), 1e-5)
	assert.InDelta(t, 0.5*1+3, float64(y[0]), 1e-5)
	assert.InDelta(t, 2-0.25*4, float64(x[1]), 1e-5)
	assert.InDelta(t, 0.5*2+4, float64(y[1]), 1e-5)
}

// refGemv is the sequential reference for y = alpha*op(A)*x + beta*y.
func refGemv(trans bool, m, n int, alpha float32, a []float32, lda int,
	x []float32, beta float32, y []float32) {
	rows, cols := m, n
	if trans {
		rows, cols = n, m
	}
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var acc float64
		for j := 0; j < cols; j++ {
			var aij float32
			if trans {
				aij = a[j+i*lda]
			} else {
				aij = a[i+j*lda]
			}
			acc += float64(aij) * float64(x[j])
		}
		out[i] = float64(alpha)*acc + float64(beta)*float64(y[i])
	}
	for i := range out {
		y[i] = float32(out[i])
	}
}

func TestSgemvGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(4))
	m, n := 33, 17
	a := randVec(rng, m*n)
	x := randVec(rng, n)
	y := randVec(rng, m)
	want := append([]float32(nil), y...)

	refGemv(false, m, n, 1.5, a, m, x, -0.5, want)
	require.NoError(t, l.Sgemv(NoTrans, m, n, 1.5, a, m, x, 1, -0.5, y, 1))
	for i := range y {
		assert.InDelta(t, float64(want[i]), float64(y[i]), 1e-3, "row %d", i)
	}
}

func TestSgemvTransGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(5))
	m, n := 20, 31
	a := randVec(rng, m*n)
	x := randVec(rng, m)
	y := randVec(rng, n)
	want := append([]float32(nil), y...)

	refGemv(true, m, n, 2, a, m, x, 1, want)
	require.NoError(t, l.Sgemv(Trans, m, n, 2, a, m, x, 1, 1, y, 1))
	for i := range y {
		assert.InDelta(t, float64(want[i]), float64(y[i]), 1e-3, "row %d", i)
	}
}

// packBand stores dense n x n A into compact banded form with ku supers and
// kl subs: element (i, j) lands at (ku+i-j) + j*lda.
func packBand(n, kl, ku int, dense []float32) (banded []float32, lda int) {
	lda = kl + ku + 1
	banded = make([]float32, lda*n)
	for j := 0; j < n; j++ {
		for i := max(0, j-ku); i <= min(n-1, j+kl); i++ {
			banded[(ku+i-j)+j*lda] = dense[i+j*n]
		}
	}
	return banded, lda
}

func TestSgbmvMatchesDenseGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(6))
	n, kl, ku := 5, 2, 1

	// Dense matrix zero outside the band, so gemv on it is the oracle.
	dense := make([]float32, n*n)
	for j := 0; j < n; j++ {
		for i := max(0, j-ku); i <= min(n-1, j+kl); i++ {
			dense[i+j*n] = rng.Float32()*2 - 1
		}
	}
	banded, lda := packBand(n, kl, ku, dense)

	x := randVec(rng, n)
	y := randVec(rng, n)
	want := append([]float32(nil), y...)

	refGemv(false, n, n, 1, dense, n, x, 0.5, want)
	require.NoError(t, l.Sgbmv(NoTrans, n, n, kl, ku, 1, banded, lda, x, 1, 0.5, y, 1))
	for i := range y {
		assert.InDelta(t, float64(want[i]), float64(y[i]), 1e-4, "row %d", i)
	}
}

func TestSsymvMirrorsTriangleGPU(t *testing.T) {
	l := gpuLib(t)
	n := 4
	// Only the upper triangle is populated; the lower half is garbage that
	// must never be read.
	a := make([]float32, n*n)
	full := make([]float32, n*n)
	vals := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	k := 0
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			a[i+j*n] = vals[k]
			full[i+j*n] = vals[k]
			full[j+i*n] = vals[k]
			k++
		}
		for i := j + 1; i < n; i++ {
			a[i+j*n] = 999
		}
	}

	x := []float32{1, -1, 2, 0.5}
	y := make([]float32, n)
	want := make([]float32, n)
	refGemv(false, n, n, 1, full, n, x, 0, want)

	require.NoError(t, l.Ssymv(Upper, n, 1, a, n, x, 1, 0, y, 1))
	for i := range y {
		assert.InDelta(t, float64(want[i]), float64(y[i]), 1e-4, "row %d", i)
	}
}

// packTriangle stores the uplo triangle of dense n x n A column by column.
func packTriangle(upper bool, n int, dense []float32) []float32 {
	ap := make([]float32, n*(n+1)/2)
	k := 0
	for j := 0; j < n; j++ {
		if upper {
			for i := 0; i <= j; i++ {
				ap[k] = dense[i+j*n]
				k++
			}
		} else {
			for i := j; i < n; i++ {
				ap[k] = dense[i+j*n]
				k++
			}
		}
	}
	return ap
}

func TestSspmvPackedGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(7))
	n := 6
	full := make([]float32, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			v := rng.Float32()*2 - 1
			full[i+j*n] = v
			full[j+i*n] = v
		}
	}

	for _, uplo := range []Uplo{Upper, Lower} {
		ap := packTriangle(uplo == Upper, n, full)
		x := randVec(rng, n)
		y := randVec(rng, n)
		want := append([]float32(nil), y...)
		refGemv(false, n, n, 1.25, full, n, x, 0.75, want)

		require.NoError(t, l.Sspmv(uplo, n, 1.25, ap, x, 1, 0.75, y, 1))
		for i := range y {
			assert.InDelta(t, float64(want[i]), float64(y[i]), 1e-4, "uplo %c row %d", uplo, i)
		}
	}
}

func TestStrmvUnitDiagonalIgnoresStoredValuesGPU(t *testing.T) {
	l := gpuLib(t)
	n := 3
	a := []float32{
		555, 0, 0,
		2, 555, 0,
		3, 4, 555,
	} // column-major upper triangular; diagonal deliberately corrupted

	x := []float32{1, 1, 1}
	require.NoError(t, l.Strmv(Upper, NoTrans, Unit, n, a, n, x, 1))
	// Implied unit diagonal: x0 = 1 + 2 + 3, x1 = 1 + 4, x2 = 1.
	assert.InDelta(t, 6, float64(x[0]), 1e-5)
	assert.InDelta(t, 5, float64(x[1]), 1e-5)
	assert.InDelta(t, 1, float64(x[2]), 1e-5)
}

func TestStrsvInvertsStrmvGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(8))
	n := 16
	a := make([]float32, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			a[i+j*n] = rng.Float32()*2 - 1
		}
		a[j+j*n] = 3 + rng.Float32() // well-conditioned diagonal
	}

	for _, trans := range []Transpose{NoTrans, Trans} {
		x := randVec(rng, n)
		orig := append([]float32(nil), x...)

		require.NoError(t, l.Strmv(Upper, trans, NonUnit, n, a, n, x, 1))
		require.NoError(t, l.Strsv(Upper, trans, NonUnit, n, a, n, x, 1))
		for i := range x {
			assert.InDelta(t, float64(orig[i]), float64(x[i]), 1e-3, "trans %c row %d", trans, i)
		}
	}
}

func TestStbsvBandedRoundTripGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(9))
	n, k := 5, 2

	// Upper triangular band: supers within k of the diagonal.
	dense := make([]float32, n*n)
	for j := 0; j < n; j++ {
		for i := max(0, j-k); i < j; i++ {
			dense[i+j*n] = rng.Float32() - 0.5
		}
		dense[j+j*n] = 2 + rng.Float32()
	}
	banded, lda := packBand(n, 0, k, dense)

	x := randVec(rng, n)
	orig := append([]float32(nil), x...)
	require.NoError(t, l.Stbmv(Upper, NoTrans, NonUnit, n, k, banded, lda, x, 1))
	require.NoError(t, l.Stbsv(Upper, NoTrans, NonUnit, n, k, banded, lda, x, 1))
	for i := range x {
		assert.InDelta(t, float64(orig[i]), float64(x[i]), 1e-3, "row %d", i)
	}
}

func TestStpsvPackedRoundTripGPU(t *testing.T) {
	l := gpuLib(t)
	rng := rand.New(rand.NewSource(10))
	n := 8
	dense := make([]float32, n*n)
	for j := 0; j < n; j++ {
		for i := j; i < n; i++ {
			dense[i+j*n] = rng.Float32() - 0.5
		}
		dense[j+j*n] = 2 + rng.Float32()
	}
	ap := packTriangle(false, n, dense)

	x := randVec(rng, n)
	orig := append([]float32(nil), x...)
	require.NoError(t, l.Stpmv(Lower, NoTrans, NonUnit, n, ap, x, 1))
	require.NoError(t, l.Stpsv(Lower, NoTrans, NonUnit, n, ap, x, 1))
	for i := range x {
		assert.InDelta(t, float64(orig[i]), float64(x[i]), 1e-3, "row %d", i)
	}
}

func TestSgerGPU(t *testing.T) {
	l := gpuLib(t)
	m, n := 3, 2
	a := make([]float32, m*n)
	x := []float32{1, 2, 3}
	y := []float32{4, 5}

	require.NoError(t, l.Sger(m, n, 2, x, 1, y, 1, a, m))
	for j := 0; j < n; j++ {
		for i := 0; i < m; i++ {
			assert.InDelta(t, 2*float64(x[i])*float64(y[j]), float64(a[i+j*m]), 1e-5)
		}
	}
}

func TestSsyrWritesOnlyDeclaredTriangleGPU(t *testing.T) {
	l := gpuLib(t)
	n := 3
	a := make([]float32, n*n)
	x := []float32{1, 2, 3}

	require.NoError(t, l.Ssyr(Upper, n, 1, x, 1, a, n))
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			want := 0.0
			if i <= j {
				want = float64(x[i]) * float64(x[j])
			}
			assert.InDelta(t, want, float64(a[i+j*n]), 1e-5, "(%d,%d)", i, j)
		}
	}
}

func TestSspr2PackedGPU(t *testing.T) {
	l := gpuLib(t)
	n := 3
	ap := make([]float32, n*(n+1)/2)
	x := []float32{1, 2, 3}
	y := []float32{-1, 0, 2}

	require.NoError(t, l.Sspr2(Upper, n, 1, x, 1, y, 1, ap))
	k := 0
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			want := float64(x[i])*float64(y[j]) + float64(y[i])*float64(x[j])
			assert.InDelta(t, want, float64(ap[k]), 1e-5, "(%d,%d)", i, j)
			k++
		}
	}
}
