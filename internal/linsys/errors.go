package linsys

import (
	"errors"
	"fmt"
)

// Domain errors for parsing and solving.
var (
	// ErrNoNumericValue indicates the input text contained no number.
	ErrNoNumericValue = errors.New("linsys: no numeric value found")

	// ErrDimension indicates rows whose token counts do not form an n x (n+1) system.
	ErrDimension = errors.New("linsys: system is not square")

	// ErrSingular indicates no usable pivot was found during elimination.
	ErrSingular = errors.New("linsys: singular matrix")

	// ErrNilMatrix indicates a nil matrix was passed to an operation.
	ErrNilMatrix = errors.New("linsys: nil matrix")

	// ErrShape indicates a matrix whose storage is not rows x (rows+1).
	ErrShape = errors.New("linsys: matrix is not in augmented form")
)

// DimensionError reports which row broke the square augmented shape.
// Row is zero-based; Line is the one-based source line, 0 when unknown.
type DimensionError struct {
	Row  int
	Line int
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: row %d (line %d) has %d values, want %d", ErrDimension, e.Row, e.Line, e.Got, e.Want)
	}
	return fmt.Sprintf("%v: row %d has %d values, want %d", ErrDimension, e.Row, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimension
}

// SingularError wraps ErrSingular with the elimination step that failed.
type SingularError struct {
	Step  int
	Pivot float64
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("%v: no usable pivot at step %d (|pivot| = %g)", ErrSingular, e.Step, e.Pivot)
}

func (e *SingularError) Unwrap() error {
	return ErrSingular
}
