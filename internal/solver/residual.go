package solver

import (
	"math"

	"github.com/san-kum/linsolve/internal/linsys"
)

// Residual returns the infinity norm of A·x − b for the unreduced system.
func Residual(orig *linsys.Matrix, x []float64) (float64, error) {
	if err := orig.Validate(); err != nil {
		return 0, err
	}
	if len(x) != orig.Rows {
		return 0, &linsys.DimensionError{Row: 0, Want: orig.Rows, Got: len(x)}
	}
	worst := 0.0
	for _, row := range orig.Data {
		sum := -row[orig.Rows]
		for j := 0; j < orig.Rows; j++ {
			sum += row[j] * x[j]
		}
		if v := math.Abs(sum); v > worst || math.IsNaN(v) {
			worst = v
		}
	}
	return worst, nil
}
