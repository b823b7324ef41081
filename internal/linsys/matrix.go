package linsys

// Matrix is a dense augmented system stored row-major.
// Cols is always Rows+1; column Rows holds the constants.
type Matrix struct {
	Rows int
	Cols int
	Data [][]float64
}

// New allocates a zeroed n x (n+1) augmented matrix.
func New(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, ErrShape
	}
	backing := make([]float64, n*(n+1))
	data := make([][]float64, n)
	for i := range data {
		data[i] = backing[i*(n+1) : (i+1)*(n+1) : (i+1)*(n+1)]
	}
	return &Matrix{Rows: n, Cols: n + 1, Data: data}, nil
}

// FromRows builds a matrix from already split rows, copying the values.
func FromRows(rows [][]float64) (*Matrix, error) {
	m, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != m.Cols {
			return nil, &DimensionError{Row: i, Want: m.Cols, Got: len(r)}
		}
		copy(m.Data[i], r)
	}
	return m, nil
}

// Validate checks the augmented-form invariant.
func (m *Matrix) Validate() error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.Rows <= 0 || m.Cols != m.Rows+1 || len(m.Data) != m.Rows {
		return ErrShape
	}
	for _, r := range m.Data {
		if len(r) != m.Cols {
			return ErrShape
		}
	}
	return nil
}

func (m *Matrix) Clone() *Matrix {
	c, _ := New(m.Rows)
	for i := range m.Data {
		copy(c.Data[i], m.Data[i])
	}
	return c
}

// Coefficients returns a copy of the n x n coefficient block.
func (m *Matrix) Coefficients() [][]float64 {
	out := make([][]float64, m.Rows)
	for i := range m.Data {
		out[i] = append([]float64(nil), m.Data[i][:m.Rows]...)
	}
	return out
}

// Constants returns a copy of the augmented column.
func (m *Matrix) Constants() []float64 {
	out := make([]float64, m.Rows)
	for i := range m.Data {
		out[i] = m.Data[i][m.Rows]
	}
	return out
}

// MaxAbs returns the largest magnitude in the coefficient block.
func (m *Matrix) MaxAbs() float64 {
	big := 0.0
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Rows; j++ {
			v := m.Data[i][j]
			if v < 0 {
				v = -v
			}
			if v > big {
				big = v
			}
		}
	}
	return big
}

func (m *Matrix) SwapRows(a, b int) {
	m.Data[a], m.Data[b] = m.Data[b], m.Data[a]
}

// SwapCols swaps two coefficient columns in every row.
func (m *Matrix) SwapCols(a, b int) {
	for _, r := range m.Data {
		r[a], r[b] = r[b], r[a]
	}
}
