// Package markers builds the reference vectors drawn as arrows alongside the
// grid: the standard basis and, optionally, an eigenvector of the target.
package markers

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const DefaultEigenScale = 3.0

// realTol bounds the imaginary part of an eigenvalue treated as real.
const realTol = 1e-9

// Basis returns the n×n identity, one standard basis vector per column.
func Basis(n int) *mat.Dense {
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		b.Set(i, i, 1)
	}
	return b
}

// Eigen returns scale times the first eigenvector of a whose eigenvalue is
// real. ok is false when a has no real eigenvalue or the factorization fails.
func Eigen(a mat.Matrix, scale float64) (vec []float64, ok bool) {
	var eig mat.Eigen
	if !eig.Factorize(a, mat.EigenRight) {
		return nil, false
	}

	values := eig.Values(nil)
	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	n, _ := a.Dims()
	for j, v := range values {
		if math.Abs(imag(v)) > realTol {
			continue
		}
		vec = make([]float64, n)
		for i := 0; i < n; i++ {
			vec[i] = scale * real(vectors.At(i, j))
		}
		return vec, true
	}
	return nil, false
}

// Stack places vectors side by side as the columns of an n×k matrix.
func Stack(vectors ...[]float64) *mat.Dense {
	if len(vectors) == 0 {
		return nil
	}
	n := len(vectors[0])
	m := mat.NewDense(n, len(vectors), nil)
	for j, v := range vectors {
		m.SetCol(j, v)
	}
	return m
}

// Columns splits m back into its column vectors.
func Columns(m mat.Matrix) [][]float64 {
	if m == nil {
		return nil
	}
	_, c := m.Dims()
	cols := make([][]float64, c)
	for j := range cols {
		cols[j] = mat.Col(nil, j, m)
	}
	return cols
}

// Build assembles the marker set for a target matrix. It returns nil when
// neither the basis nor the eigenvector is requested.
func Build(a mat.Matrix, basis, eigen bool, eigenScale float64) *mat.Dense {
	n, _ := a.Dims()
	var cols [][]float64
	if basis {
		cols = append(cols, Columns(Basis(n))...)
	}
	if eigen {
		if v, ok := Eigen(a, eigenScale); ok {
			cols = append(cols, v)
		}
	}
	if len(cols) == 0 {
		return nil
	}
	return Stack(cols...)
}
