// Package grid builds the lattice of sample points that gets transformed.
//
// Points are stored column-wise in a dim×N [mat.Dense], the layout the
// transform engine multiplies against.
package grid

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimension = errors.New("grid: dimension must be 2 or 3")
	ErrCount     = errors.New("grid: axis sample count must be positive")
)

// Axis samples Count evenly spaced values between Min and Max inclusive.
type Axis struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Count int     `yaml:"count"`
}

func (a Axis) Values() []float64 {
	if a.Count <= 0 {
		return nil
	}
	vals := make([]float64, a.Count)
	if a.Count == 1 {
		vals[0] = a.Min
		return vals
	}
	step := (a.Max - a.Min) / float64(a.Count-1)
	for i := range vals {
		vals[i] = a.Min + float64(i)*step
	}
	// keep the upper bound exact
	vals[a.Count-1] = a.Max
	return vals
}

type Bounds struct {
	X Axis `yaml:"x"`
	Y Axis `yaml:"y"`
	Z Axis `yaml:"z"`
}

func DefaultBounds(dim int) Bounds {
	if dim == 3 {
		return Bounds{
			X: Axis{Min: -4, Max: 4, Count: 9},
			Y: Axis{Min: -4, Max: 4, Count: 9},
			Z: Axis{Min: -4, Max: 4, Count: 9},
		}
	}
	return Bounds{
		X: Axis{Min: -4, Max: 4, Count: 9},
		Y: Axis{Min: -3, Max: 3, Count: 7},
	}
}

// New returns the dim×N point matrix. x varies slowest and the last axis
// fastest.
func New(dim int, b Bounds) (*mat.Dense, error) {
	axes, err := b.axes(dim)
	if err != nil {
		return nil, err
	}

	n := 1
	for _, a := range axes {
		n *= a.Count
	}

	values := make([][]float64, len(axes))
	for i, a := range axes {
		values[i] = a.Values()
	}

	points := mat.NewDense(dim, n, nil)
	idx := make([]int, dim)
	for col := 0; col < n; col++ {
		for row := 0; row < dim; row++ {
			points.Set(row, col, values[row][idx[row]])
		}
		for row := dim - 1; row >= 0; row-- {
			idx[row]++
			if idx[row] < len(values[row]) {
				break
			}
			idx[row] = 0
		}
	}
	return points, nil
}

func (b Bounds) axes(dim int) ([]Axis, error) {
	var axes []Axis
	switch dim {
	case 2:
		axes = []Axis{b.X, b.Y}
	case 3:
		axes = []Axis{b.X, b.Y, b.Z}
	default:
		return nil, fmt.Errorf("%w: got %d", ErrDimension, dim)
	}
	for i, a := range axes {
		if a.Count < 1 {
			return nil, fmt.Errorf("%w: axis %d has %d", ErrCount, i, a.Count)
		}
	}
	return axes, nil
}
