package solver

import "github.com/san-kum/linsolve/internal/linsys"

// Result describes a completed reduction.
type Result struct {
	// Matrix is the reduced input: raw inverse plus solution column.
	Matrix *linsys.Matrix
	// Perm[j] is the original variable held in working column j.
	Perm []int
	// RowSwaps[k] is the row exchanged with row k at step k.
	RowSwaps []int
	// Pivots holds the pivot value chosen at each step.
	Pivots []float64
	// Determinant of the original coefficient block.
	Determinant float64
}

// Solution returns a copy of the solution vector in original variable order.
func (r *Result) Solution() []float64 {
	return r.Matrix.Constants()
}

// Inverse returns A⁻¹ for the original coefficient block. The raw block left
// in Matrix has its columns permuted by the row swaps and its rows by the
// column swaps; both are undone here on a copy.
func (r *Result) Inverse() [][]float64 {
	n := r.Matrix.Rows
	raw := r.Matrix.Coefficients()

	for k := n - 1; k >= 0; k-- {
		if p := r.RowSwaps[k]; p != k {
			for i := 0; i < n; i++ {
				raw[i][p], raw[i][k] = raw[i][k], raw[i][p]
			}
		}
	}

	inv := make([][]float64, n)
	for j := 0; j < n; j++ {
		inv[r.Perm[j]] = raw[j]
	}
	return inv
}
