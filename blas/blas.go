// Package blas exposes BLAS level-1 and level-2 routines executed on a
// WebGPU compute device. Routines validate their arguments, assemble kernel
// parameters and delegate to the execution engine; host arrays are copied
// to the device, mutated there and copied back, never aliased.
//
// Matrices are column-major. Vector strides may be negative: logical
// element i of x is x[off + i*incx], with off chosen so a negative stride
// walks the buffer from its conceptual first element backward.
package blas

import (
	"fmt"

	"github.com/gpublas/gpublas/internal/compute"
	"github.com/gpublas/gpublas/internal/engine"
	"github.com/gpublas/gpublas/internal/logger"
)

// Uplo selects the referenced half of a symmetric or triangular matrix.
type Uplo byte

const (
	Upper Uplo = 'U'
	Lower Uplo = 'L'
)

// Transpose selects op(A). ConjTrans equals Trans for real elements.
type Transpose byte

const (
	NoTrans   Transpose = 'N'
	Trans     Transpose = 'T'
	ConjTrans Transpose = 'C'
)

// Diag marks a triangular matrix as unit-diagonal: the stored diagonal is
// never read and is treated as 1.
type Diag byte

const (
	NonUnit Diag = 'N'
	Unit    Diag = 'U'
)

// ErrUnavailable reports that no compatible WebGPU device exists. The
// condition is memoized: every call on an unavailable library fails
// identically.
var ErrUnavailable = compute.ErrUnavailable

// ArgError reports an invalid routine argument, detected before any device
// resource is allocated. Caller arrays are left untouched.
type ArgError struct {
	Routine string
	Arg     string
	Message string
}

func (e ArgError) Error() string {
	return fmt.Sprintf("blas: %s: argument %s: %s", e.Routine, e.Arg, e.Message)
}

// Library is the routine surface bound to one compute engine. The zero
// value performs validation and degenerate quick-returns but fails real
// dispatches with ErrUnavailable.
type Library struct {
	eng *engine.Engine
}

// New acquires the shared compute context and returns a library bound to
// it. Acquisition is memoized process-wide; a failed acquisition is
// reported identically on every call.
func New() (*Library, error) {
	ctx, err := compute.Acquire()
	if err != nil {
		return nil, err
	}
	return &Library{eng: engine.New(ctx)}, nil
}

// offline backs the zero-value Library: quick-returns succeed, real
// dispatches fail with ErrUnavailable.
var offline = engine.New(nil)

func (l *Library) engine() *engine.Engine {
	if l.eng != nil {
		return l.eng
	}
	return offline
}

// SetLogger replaces the logger used for dispatch tracing.
func (l *Library) SetLogger(log logger.Logger) {
	if l.eng != nil {
		l.eng.SetLogger(log)
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// vecLen is the backing capacity required by n strided elements.
func vecLen(n, inc int) int {
	if n <= 0 {
		return 0
	}
	return 1 + (n-1)*abs(inc)
}

func checkVector(routine, arg string, n int, x []float32, inc int) error {
	if inc == 0 {
		return ArgError{routine, "inc" + arg, "stride must be nonzero"}
	}
	if len(x) < vecLen(n, inc) {
		return ArgError{routine, arg, fmt.Sprintf("length %d below required %d", len(x), vecLen(n, inc))}
	}
	return nil
}

func checkMatrix(routine, arg string, cols, lda, minLda int, a []float32) error {
	if lda < minLda {
		return ArgError{routine, "lda", fmt.Sprintf("%d below required %d", lda, minLda)}
	}
	if len(a) < lda*cols {
		return ArgError{routine, arg, fmt.Sprintf("length %d below required %d", len(a), lda*cols)}
	}
	return nil
}

func checkPacked(routine, arg string, n int, ap []float32) error {
	if len(ap) < n*(n+1)/2 {
		return ArgError{routine, arg, fmt.Sprintf("length %d below required %d", len(ap), n*(n+1)/2)}
	}
	return nil
}

func checkUplo(routine string, uplo Uplo) error {
	if uplo != Upper && uplo != Lower {
		return ArgError{routine, "uplo", fmt.Sprintf("invalid value %q", byte(uplo))}
	}
	return nil
}

func checkTrans(routine string, trans Transpose) error {
	if trans != NoTrans && trans != Trans && trans != ConjTrans {
		return ArgError{routine, "trans", fmt.Sprintf("invalid value %q", byte(trans))}
	}
	return nil
}

func checkDiag(routine string, diag Diag) error {
	if diag != NonUnit && diag != Unit {
		return ArgError{routine, "diag", fmt.Sprintf("invalid value %q", byte(diag))}
	}
	return nil
}
