// Package linsys provides the core types shared by the parser and the solver.
//
// A linear system of n equations is carried as an augmented [Matrix]:
// n rows by n+1 columns, the coefficient block A followed by the constants
// column b. The package also defines the error taxonomy every stage reports:
//
//   - [ErrNoNumericValue]: the input held no number at all
//   - [ErrDimension]: the rows do not form a square augmented system
//   - [ErrSingular]: elimination found no usable pivot
//
// # Example
//
//	m, err := parser.Parse("3,2,-4,3\n2,3,3,15\n5,-3,1,14\n")
//	res, err := solver.Solve(m)
//	x := res.Solution()
//
// # Thread Safety
//
// Matrix values are NOT thread-safe. Solving mutates the matrix in place;
// concurrent solves must each own their own instance (see [Matrix.Clone]).
package linsys
