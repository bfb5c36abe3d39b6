package blas

import "math"

// Rotation construction runs entirely on the host: the routines are
// scalar, branch-heavy and sequential, with nothing for a device grid to
// do.

// Flag selects the implicit structure of a modified-rotation matrix.
type Flag int32

const (
	Identity    Flag = -2 // H = I, no work
	Rescaling   Flag = -1 // all four entries stored
	OffDiagonal Flag = 0  // unit diagonal, stored off-diagonal
	Diagonal    Flag = 1  // stored diagonal, off-diagonal (-1, 1)
)

// SrotmParams describes a modified rotation. H is stored column-major as
// [h11, h21, h12, h22]; entries implied by Flag are ignored.
type SrotmParams struct {
	Flag Flag
	H    [4]float32
}

// DrotmParams is the float64 counterpart of SrotmParams.
type DrotmParams struct {
	Flag Flag
	H    [4]float64
}

type float interface {
	~float32 | ~float64
}

func fabs[F float](v F) F {
	if v < 0 {
		return -v
	}
	return v
}

// rotg constructs the Givens rotation zeroing the second component of
// (a, b): c*a + s*b = r, -s*a + c*b = 0. The larger input magnitude drives
// the quotient so intermediate squares cannot overflow spuriously. z
// encodes the rotation for later reconstruction: s when |a| > |b|, 1/c
// otherwise, 1 when c is zero.
func rotg[F float](a, b F) (c, s, r, z F) {
	switch {
	case b == 0:
		return 1, 0, a, 0
	case a == 0:
		return 0, 1, b, 1
	}
	if fabs(a) > fabs(b) {
		t := b / a
		u := F(math.Sqrt(1 + float64(t)*float64(t)))
		if a < 0 {
			u = -u
		}
		c = 1 / u
		s = t * c
		r = a * u
		z = s
		return c, s, r, z
	}
	t := a / b
	u := F(math.Sqrt(1 + float64(t)*float64(t)))
	if b < 0 {
		u = -u
	}
	s = 1 / u
	c = t * s
	r = b * u
	z = 1
	if c != 0 {
		z = 1 / c
	}
	return c, s, r, z
}

// Srotg constructs a Givens rotation for the point (a, b).
func Srotg(a, b float32) (c, s, r, z float32) {
	return rotg(a, b)
}

// Drotg constructs a Givens rotation for the point (a, b).
func Drotg(a, b float64) (c, s, r, z float64) {
	return rotg(a, b)
}

// Scaling bounds for modified rotations. Whenever a weight leaves
// [1/gamSq, gamSq] it is pulled back by powers of gam with the matrix
// entries compensated. The iteration cap bounds the rescale loop when a
// weight is non-finite and cannot converge.
const (
	rotmGam        = 4096.0
	rotmGamSq      = rotmGam * rotmGam
	rotmMaxRescale = 100
)

// rotmg constructs the modified rotation eliminating the second component
// of (sqrt(d1)*x1, sqrt(d2)*y1). A negative d1 or a rotation that would
// need a negative weight degrades to the zero matrix with Rescaling flag.
func rotmg[F float](d1, d2, x1, y1 F) (F, F, F, Flag, [4]F) {
	var h [4]F
	gam := F(rotmGam)
	gamSq := F(rotmGamSq)
	rGamSq := 1 / gamSq

	if d1 < 0 {
		return 0, 0, 0, Rescaling, h
	}
	p2 := d2 * y1
	if p2 == 0 {
		return d1, d2, x1, Identity, h
	}
	p1 := d1 * x1
	q2 := p2 * y1
	q1 := p1 * x1

	var flag Flag
	if fabs(q1) > fabs(q2) {
		h[1] = -y1 / x1
		h[2] = p2 / p1
		u := 1 - h[2]*h[1]
		if u <= 0 {
			// Lost to rounding.
			return 0, 0, 0, Rescaling, [4]F{}
		}
		flag = OffDiagonal
		d1 /= u
		d2 /= u
		x1 *= u
	} else {
		if q2 < 0 {
			return 0, 0, 0, Rescaling, [4]F{}
		}
		flag = Diagonal
		h[0] = p1 / p2
		h[3] = x1 / y1
		u := 1 + h[0]*h[3]
		d1, d2 = d2/u, d1/u
		x1 = y1 * u
	}

	if d1 != 0 {
		for i := 0; (d1 <= rGamSq || d1 >= gamSq) && i < rotmMaxRescale; i++ {
			if flag == OffDiagonal {
				h[0], h[3] = 1, 1
				flag = Rescaling
			} else if flag == Diagonal {
				h[1], h[2] = -1, 1
				flag = Rescaling
			}
			if d1 <= rGamSq {
				d1 *= gamSq
				x1 /= gam
				h[0] /= gam
				h[2] /= gam
			} else {
				d1 /= gamSq
				x1 *= gam
				h[0] *= gam
				h[2] *= gam
			}
		}
	}
	if d2 != 0 {
		for i := 0; (fabs(d2) <= rGamSq || fabs(d2) >= gamSq) && i < rotmMaxRescale; i++ {
			if flag == OffDiagonal {
				h[0], h[3] = 1, 1
				flag = Rescaling
			} else if flag == Diagonal {
				h[1], h[2] = -1, 1
				flag = Rescaling
			}
			if fabs(d2) <= rGamSq {
				d2 *= gamSq
				h[1] /= gam
				h[3] /= gam
			} else {
				d2 /= gamSq
				h[1] *= gam
				h[3] *= gam
			}
		}
	}
	return d1, d2, x1, flag, h
}

// Srotmg constructs a modified rotation for the weighted point
// (sqrt(d1)*x1, sqrt(d2)*y1), returning updated weights and first
// component alongside the matrix description.
func Srotmg(d1, d2, x1, y1 float32) (rd1, rd2, rx1 float32, p SrotmParams) {
	rd1, rd2, rx1, flag, h := rotmg(d1, d2, x1, y1)
	return rd1, rd2, rx1, SrotmParams{Flag: flag, H: h}
}

// Drotmg constructs a modified rotation for the weighted point
// (sqrt(d1)*x1, sqrt(d2)*y1).
func Drotmg(d1, d2, x1, y1 float64) (rd1, rd2, rx1 float64, p DrotmParams) {
	rd1, rd2, rx1, flag, h := rotmg(d1, d2, x1, y1)
	return rd1, rd2, rx1, DrotmParams{Flag: flag, H: h}
}
