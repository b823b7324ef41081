package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/linsolve/internal/linsys"
)

const (
	SolutionTitle = "Solution Vector:"
	InverseTitle  = "Inverse Matrix:"
)

// Intro is the help text shown on start and on Help.
const Intro = `
Click [Clear] and enter Coefficient Matrix with Constant Vector as Last Column

Example (3 x 4):

 3.0  2.0  -4.0   3.0
 2.0  3.0   3.0  15.0
 5.0 -3.0   1.0  14.0

or

3,2,-4,3
2,3,3,15
5,-3,1,14

Then click [Solve...]

Solution Vector:

 x[  0] :   3.0000000
 x[  1] :   1.0000000
 x[  2] :   2.0000000
`

// Component renders one solution entry.
func Component(i int, v float64) string {
	return fmt.Sprintf(" x[%3d] : % 11.7f\n", i, v)
}

// Solution writes one line per component.
func Solution(w io.Writer, x []float64) error {
	for i, v := range x {
		if _, err := io.WriteString(w, Component(i, v)); err != nil {
			return err
		}
	}
	return nil
}

// SolutionBlock is the text appended below the system after a solve.
func SolutionBlock(x []float64) string {
	var b strings.Builder
	b.WriteString("\n\n" + SolutionTitle + "\n\n")
	_ = Solution(&b, x)
	return b.String()
}

// InverseBlock renders A⁻¹ one row per line using the solution field width.
func InverseBlock(inv [][]float64) string {
	var b strings.Builder
	b.WriteString("\n" + InverseTitle + "\n\n")
	for _, row := range inv {
		for _, v := range row {
			fmt.Fprintf(&b, " % 11.7f", v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func Determinant(det float64) string {
	return fmt.Sprintf("\nDeterminant: % .7g\n", det)
}

// ErrorBanner maps a parse or solve failure to the message shown to the user.
func ErrorBanner(err error) string {
	var de *linsys.DimensionError
	switch {
	case errors.Is(err, linsys.ErrNoNumericValue):
		return "\n\n => ERROR: No Numeric Value Found In Buffer\n"
	case errors.As(err, &de):
		return fmt.Sprintf("\n\n => ERROR: System Not Square (row %d has %d values, expected %d)\n", de.Row, de.Got, de.Want)
	case errors.Is(err, linsys.ErrDimension):
		return "\n\n => ERROR: System Not Square\n"
	case errors.Is(err, linsys.ErrSingular):
		return "\n\n => ERROR: Singular Matrix - No Unique Solution\n"
	}
	return fmt.Sprintf("\n\n => ERROR: %v\n", err)
}
