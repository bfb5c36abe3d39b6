package blas

// Level-2 routines: matrix-vector products, triangular solves and rank
// updates. Matrices are column-major with leading dimension lda; banded
// and packed layouts follow the compact BLAS conventions.

// Sgemv computes y = alpha*op(A)*x + beta*y for dense A (m x n).
func (l *Library) Sgemv(trans Transpose, m, n int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if err := checkTrans("Sgemv", trans); err != nil {
		return err
	}
	if m <= 0 || n <= 0 {
		return nil
	}
	if err := checkMatrix("Sgemv", "a", n, lda, max(1, m), a); err != nil {
		return err
	}
	xn, yn := n, m
	if trans != NoTrans {
		xn, yn = m, n
	}
	if err := checkVector("Sgemv", "x", xn, x, incx); err != nil {
		return err
	}
	if err := checkVector("Sgemv", "y", yn, y, incy); err != nil {
		return err
	}
	return l.engine().Gemv(trans != NoTrans, m, n, alpha, a, lda, x, incx, beta, y, incy)
}

// Sgbmv computes y = alpha*op(A)*x + beta*y for banded A (m x n, kl
// sub-diagonals, ku super-diagonals) stored compactly: element (i, j) lives
// at a[(ku+i-j) + j*lda].
func (l *Library) Sgbmv(trans Transpose, m, n, kl, ku int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if err := checkTrans("Sgbmv", trans); err != nil {
		return err
	}
	if kl < 0 {
		return ArgError{"Sgbmv", "kl", "negative band width"}
	}
	if ku < 0 {
		return ArgError{"Sgbmv", "ku", "negative band width"}
	}
	if m <= 0 || n <= 0 {
		return nil
	}
	if err := checkMatrix("Sgbmv", "a", n, lda, kl+ku+1, a); err != nil {
		return err
	}
	xn, yn := n, m
	if trans != NoTrans {
		xn, yn = m, n
	}
	if err := checkVector("Sgbmv", "x", xn, x, incx); err != nil {
		return err
	}
	if err := checkVector("Sgbmv", "y", yn, y, incy); err != nil {
		return err
	}
	return l.engine().Gbmv(trans != NoTrans, m, n, kl, ku, alpha, a, lda, x, incx, beta, y, incy)
}

// Ssymv computes y = alpha*A*x + beta*y for symmetric A; only the uplo
// half is read, the other half is mirrored.
func (l *Library) Ssymv(uplo Uplo, n int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if err := checkUplo("Ssymv", uplo); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Ssymv", "a", n, lda, max(1, n), a); err != nil {
		return err
	}
	if err := checkVector("Ssymv", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Ssymv", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Symv(uplo == Upper, n, alpha, a, lda, x, incx, beta, y, incy)
}

// Ssbmv computes y = alpha*A*x + beta*y for symmetric banded A with k
// off-diagonals in compact storage.
func (l *Library) Ssbmv(uplo Uplo, n, k int, alpha float32, a []float32, lda int,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if err := checkUplo("Ssbmv", uplo); err != nil {
		return err
	}
	if k < 0 {
		return ArgError{"Ssbmv", "k", "negative band width"}
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Ssbmv", "a", n, lda, k+1, a); err != nil {
		return err
	}
	if err := checkVector("Ssbmv", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Ssbmv", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Sbmv(uplo == Upper, n, k, alpha, a, lda, x, incx, beta, y, incy)
}

// Sspmv computes y = alpha*A*x + beta*y for packed symmetric A: the uplo
// triangle stored column by column in n*(n+1)/2 elements.
func (l *Library) Sspmv(uplo Uplo, n int, alpha float32, ap []float32,
	x []float32, incx int, beta float32, y []float32, incy int) error {
	if err := checkUplo("Sspmv", uplo); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkPacked("Sspmv", "ap", n, ap); err != nil {
		return err
	}
	if err := checkVector("Sspmv", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Sspmv", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Spmv(uplo == Upper, n, alpha, ap, x, incx, beta, y, incy)
}

// Strmv computes x = op(A)*x for dense triangular A. A unit diagonal is
// implied, never read.
func (l *Library) Strmv(uplo Uplo, trans Transpose, diag Diag, n int,
	a []float32, lda int, x []float32, incx int) error {
	if err := checkTriangle("Strmv", uplo, trans, diag); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Strmv", "a", n, lda, max(1, n), a); err != nil {
		return err
	}
	if err := checkVector("Strmv", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Trmv(uplo == Upper, trans != NoTrans, diag == Unit, n, a, lda, x, incx)
}

// Stbmv computes x = op(A)*x for triangular banded A with k off-diagonals.
func (l *Library) Stbmv(uplo Uplo, trans Transpose, diag Diag, n, k int,
	a []float32, lda int, x []float32, incx int) error {
	if err := checkTriangle("Stbmv", uplo, trans, diag); err != nil {
		return err
	}
	if k < 0 {
		return ArgError{"Stbmv", "k", "negative band width"}
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Stbmv", "a", n, lda, k+1, a); err != nil {
		return err
	}
	if err := checkVector("Stbmv", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Tbmv(uplo == Upper, trans != NoTrans, diag == Unit, n, k, a, lda, x, incx)
}

// Stpmv computes x = op(A)*x for packed triangular A.
func (l *Library) Stpmv(uplo Uplo, trans Transpose, diag Diag, n int,
	ap []float32, x []float32, incx int) error {
	if err := checkTriangle("Stpmv", uplo, trans, diag); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkPacked("Stpmv", "ap", n, ap); err != nil {
		return err
	}
	if err := checkVector("Stpmv", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Tpmv(uplo == Upper, trans != NoTrans, diag == Unit, n, ap, x, incx)
}

// Strsv solves op(A)*x = b in place for dense triangular A. A zero
// non-unit diagonal propagates Inf/NaN rather than raising an error.
func (l *Library) Strsv(uplo Uplo, trans Transpose, diag Diag, n int,
	a []float32, lda int, x []float32, incx int) error {
	if err := checkTriangle("Strsv", uplo, trans, diag); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Strsv", "a", n, lda, max(1, n), a); err != nil {
		return err
	}
	if err := checkVector("Strsv", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Trsv(uplo == Upper, trans != NoTrans, diag == Unit, n, a, lda, x, incx)
}

// Stbsv solves op(A)*x = b in place for triangular banded A.
func (l *Library) Stbsv(uplo Uplo, trans Transpose, diag Diag, n, k int,
	a []float32, lda int, x []float32, incx int) error {
	if err := checkTriangle("Stbsv", uplo, trans, diag); err != nil {
		return err
	}
	if k < 0 {
		return ArgError{"Stbsv", "k", "negative band width"}
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Stbsv", "a", n, lda, k+1, a); err != nil {
		return err
	}
	if err := checkVector("Stbsv", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Tbsv(uplo == Upper, trans != NoTrans, diag == Unit, n, k, a, lda, x, incx)
}

// Stpsv solves op(A)*x = b in place for packed triangular A.
func (l *Library) Stpsv(uplo Uplo, trans Transpose, diag Diag, n int,
	ap []float32, x []float32, incx int) error {
	if err := checkTriangle("Stpsv", uplo, trans, diag); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkPacked("Stpsv", "ap", n, ap); err != nil {
		return err
	}
	if err := checkVector("Stpsv", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Tpsv(uplo == Upper, trans != NoTrans, diag == Unit, n, ap, x, incx)
}

// Sger applies A = A + alpha*x*y^T. alpha == 0 returns without dispatch.
func (l *Library) Sger(m, n int, alpha float32, x []float32, incx int,
	y []float32, incy int, a []float32, lda int) error {
	if m <= 0 || n <= 0 {
		return nil
	}
	if err := checkMatrix("Sger", "a", n, lda, max(1, m), a); err != nil {
		return err
	}
	if err := checkVector("Sger", "x", m, x, incx); err != nil {
		return err
	}
	if err := checkVector("Sger", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Ger(m, n, alpha, x, incx, y, incy, a, lda)
}

// Ssyr applies A = A + alpha*x*x^T inside the declared triangle; the other
// half is never written.
func (l *Library) Ssyr(uplo Uplo, n int, alpha float32, x []float32, incx int,
	a []float32, lda int) error {
	if err := checkUplo("Ssyr", uplo); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Ssyr", "a", n, lda, max(1, n), a); err != nil {
		return err
	}
	if err := checkVector("Ssyr", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Syr(uplo == Upper, n, alpha, x, incx, a, lda)
}

// Ssyr2 applies A = A + alpha*(x*y^T + y*x^T) inside the declared triangle.
func (l *Library) Ssyr2(uplo Uplo, n int, alpha float32, x []float32, incx int,
	y []float32, incy int, a []float32, lda int) error {
	if err := checkUplo("Ssyr2", uplo); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkMatrix("Ssyr2", "a", n, lda, max(1, n), a); err != nil {
		return err
	}
	if err := checkVector("Ssyr2", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Ssyr2", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Syr2(uplo == Upper, n, alpha, x, incx, y, incy, a, lda)
}

// Sspr applies the rank-1 update to packed symmetric A.
func (l *Library) Sspr(uplo Uplo, n int, alpha float32, x []float32, incx int, ap []float32) error {
	if err := checkUplo("Sspr", uplo); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkPacked("Sspr", "ap", n, ap); err != nil {
		return err
	}
	if err := checkVector("Sspr", "x", n, x, incx); err != nil {
		return err
	}
	return l.engine().Spr(uplo == Upper, n, alpha, x, incx, ap)
}

// Sspr2 applies the rank-2 update to packed symmetric A.
func (l *Library) Sspr2(uplo Uplo, n int, alpha float32, x []float32, incx int,
	y []float32, incy int, ap []float32) error {
	if err := checkUplo("Sspr2", uplo); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if err := checkPacked("Sspr2", "ap", n, ap); err != nil {
		return err
	}
	if err := checkVector("Sspr2", "x", n, x, incx); err != nil {
		return err
	}
	if err := checkVector("Sspr2", "y", n, y, incy); err != nil {
		return err
	}
	return l.engine().Spr2(uplo == Upper, n, alpha, x, incx, y, incy, ap)
}

func checkTriangle(routine string, uplo Uplo, trans Transpose, diag Diag) error {
	if err := checkUplo(routine, uplo); err != nil {
		return err
	}
	if err := checkTrans(routine, trans); err != nil {
		return err
	}
	return checkDiag(routine, diag)
}
