// Package transform interpolates a linear map from the identity to a target
// matrix and applies every intermediate matrix to a set of points.
//
// The intermediate matrix at fraction t is
//
//	M(t) = I + t·(A − I)
//
// so M(0) is the identity and M(1) is A. [Stepwise] samples t = j/S for
// j = 0..S and returns S+1 transformed copies of the input points.
//
// # Example
//
//	a := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
//	points, _ := grid.New(2, grid.DefaultBounds(2))
//	seq, err := transform.Stepwise(a, points, transform.DefaultSteps)
//
// Singular targets are not special-cased: nothing is inverted, so the
// intermediate matrices may be singular too.
package transform
