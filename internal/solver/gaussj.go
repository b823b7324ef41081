package solver

import (
	"math"

	"github.com/san-kum/linsolve/internal/linsys"
)

// DefaultTolerance scales the largest input coefficient into the pivot
// threshold below which the system is treated as singular.
const DefaultTolerance = 1e-12

type Options struct {
	Tolerance float64
}

type Solver struct {
	tol float64
}

func New(opts Options) *Solver {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return &Solver{tol: tol}
}

// Solve reduces m in place using the default tolerance.
func Solve(m *linsys.Matrix) (*Result, error) {
	return New(Options{}).Solve(m)
}

// Solve performs Gauss-Jordan elimination with full pivoting on m. On
// return the coefficient block holds the raw inverse (see Result.Inverse)
// and column m.Rows holds the solution in original variable order.
// On error m is left partially reduced and must be discarded.
func (s *Solver) Solve(m *linsys.Matrix) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.Rows
	a := m.Data
	threshold := s.tol * m.MaxAbs()

	res := &Result{
		Matrix:   m,
		Perm:     make([]int, n),
		RowSwaps: make([]int, n),
		Pivots:   make([]float64, n),
	}
	for i := range res.Perm {
		res.Perm[i] = i
	}

	det := 1.0
	for k := 0; k < n; k++ {
		r, c, big := k, k, -1.0
		for i := k; i < n; i++ {
			for j := k; j < n; j++ {
				if v := math.Abs(a[i][j]); v > big {
					r, c, big = i, j, v
				}
			}
		}

		if big <= threshold || math.IsNaN(a[r][c]) {
			return nil, &linsys.SingularError{Step: k, Pivot: big}
		}

		res.RowSwaps[k] = r
		if r != k {
			m.SwapRows(r, k)
			det = -det
		}
		if c != k {
			m.SwapCols(c, k)
			res.Perm[c], res.Perm[k] = res.Perm[k], res.Perm[c]
			det = -det
		}

		pivot := a[k][k]
		res.Pivots[k] = pivot
		det *= pivot

		// the pivot slot becomes the inverse entry
		inv := 1.0 / pivot
		a[k][k] = 1.0
		for j := 0; j <= n; j++ {
			a[k][j] *= inv
		}

		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			f := a[i][k]
			if f == 0 {
				continue
			}
			a[i][k] = 0
			for j := 0; j <= n; j++ {
				a[i][j] -= a[k][j] * f
			}
		}
	}

	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[res.Perm[j]] = a[j][n]
	}
	for i := 0; i < n; i++ {
		a[i][n] = x[i]
	}

	res.Determinant = det
	return res, nil
}
