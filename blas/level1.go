package blas

// Level-1 routines: vector reductions and element-wise updates. Reductions
// treat n <= 0 and a zero stride as the empty vector and return the
// identity without touching the device; mutating routines reject a zero
// stride and treat non-positive n as a no-op.

// Sasum returns sum(|x_i|).
func (l *Library) Sasum(n int, x []float32, incx int) (float32, error) {
	if n <= 0 || incx == 0 {
		return 0, nil
	}
	if err := checkVector("Sasum", "x", n, x, incx); err != nil {
		return 0, err
	}
	return l.engine().Asum(n, x, incx)
}

// Snrm2 returns the Euclidean norm of x.
func (l *Library) Snrm2(n int, x []float32, incx int) (float32, error) {
	if n <= 0 || incx == 0 {
		return 0, nil
	}
	if err := checkVector("Snrm2", "x", n, x, incx); err != nil {
		return 0, err
	}
	return l.engine().Nrm2(n, x, incx)
}

// Sdot returns sum(x_i * y_i).
func (l *Library) Sdot(n int, x []float32, incx int, y []float32, incy int) (float32, error) {
	if n <= 0 || incx == 0 || incy == 0 {
		return 0, nil
	}
	if err := checkVector("Sdot", "x", n, x, incx); err != nil {
		return 0, err
	}
	if err := checkVector("Sdot", "y", n, y, incy); err != nil {
		return 0, err
	}
	return l.engine().Dot(n, x, incx, y, incy)
}

// Isamax returns the 1-based index of the first element with maximum
// absolute value, or 0 for an empty vector. Ties resolve to the smallest
// index.
func (l *Library) Isamax(n int, x []float32, incx int) (int, error) {
	if n <= 0 || incx == 0 {
		return 0, nil
	}
	if err := checkVector("Isamax", "x", n, x, incx); err != nil {
		return 0, err
	}
	return l.engine().ArgExt(false, n, x, incx)
}

// Isamin returns the 1-based index of the first element with minimum
// absolute value, or 0 for an empty vector.
func (l *Library) Isamin(n int, x []float32, incx int) (int, error) {
	if n <= 0 || incx == 0 {
		return 0, nil
	}
	if err := checkVector("Isamin", "x", n, x, incx); err != nil {
		return 0, err
	}
	return l.engine().ArgExt(true, n, x, incx)
}

// Sscal scales x by alpha in place. alpha == 1 returns without dispatch.
func (l *Library) Sscal(n int, alpha float32, x []float32, incx int) error {
	if n <= 0 {
		return nil
	}
	if err := checkVector("Sscal", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Scal(n, alpha, x, incx)
}

// Saxpy computes y = alpha*x + y. alpha == 0 returns without dispatch.
func (l *Library) Saxpy(n int, alpha float32, x []float32, incx int, y []float32, incy int) error {
	if n <= 0 {
		return nil
	}
	if err := checkVector("Saxpy", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Saxpy", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Axpy(n, alpha, x, incx, y, incy)
}

// Scopy copies x into y.
func (l *Library) Scopy(n int, x []float32, incx int, y []float32, incy int) error {
	if n <= 0 {
		return nil
	}
	if err := checkVector("Scopy", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Scopy", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Copy(n, x, incx, y, incy)
}

// Sswap exchanges x and y.
func (l *Library) Sswap(n int, x []float32, incx int, y []float32, incy int) error {
	if n <= 0 {
		return nil
	}
	if err := checkVector("Sswap", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Sswap", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Swap(n, x, incx, y, incy)
}

// Srot applies the plane rotation (c, s): x_i, y_i = c*x_i + s*y_i,
// c*y_i - s*x_i. The identity rotation returns without dispatch.
func (l *Library) Srot(n int, x []float32, incx int, y []float32, incy int, c, s float32) error {
	if n <= 0 {
		return nil
	}
	if err := checkVector("Srot", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Srot", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Rot(n, x, incx, y, incy, c, s)
}

// Srotm applies the modified rotation described by p. Flag -2 is the
// identity and returns without dispatch; the other encodings are expanded
// to a full 2x2 matrix before dispatch.
func (l *Library) Srotm(n int, x []float32, incx int, y []float32, incy int, p SrotmParams) error {
	if n <= 0 || p.Flag == Identity {
		return nil
	}
	if err := checkVector("Srotm", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Srotm", "y", n, y, incy); err != nil {
		return err
	}

	var h [4]float32
	switch p.Flag {
	case Rescaling:
		h = p.H
	case OffDiagonal:
		h = [4]float32{1, p.H[1], p.H[2], 1}
	case Diagonal:
		h = [4]float32{p.H[0], -1, 1, p.H[3]}
	default:
		return ArgError{"Srotm", "p.Flag", "unknown flag encoding"}
	}
	return l.engine().Rotm(n, x, incx, y, incy, h)
}
