// Package colorize maps a point's original coordinates to a color.
//
// Colors are computed once from the untransformed grid and reused for every
// frame, so a point keeps its color while it moves.
package colorize

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// RGB channels are nominally in [0, 1]. The formulas only bound some channels
// from above, so values outside that range are possible and kept as-is.
type RGB struct {
	R, G, B float64
}

// Color converts to a displayable color, clamping each channel into [0, 1].
func (c RGB) Color() color.RGBA {
	clamped := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
	r, g, b := clamped.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (c RGB) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

type Func func(p []float64) RGB

// Planar colors 2D points. divisor is 3 or 4 in the stock variants.
func Planar(divisor float64) Func {
	return func(p []float64) RGB {
		x, y := p[0], p[1]
		return RGB{
			R: math.Min(1, 1-y/divisor),
			G: 0.25 + x/16,
			B: math.Min(1, 1+y/divisor),
		}
	}
}

// Spatial colors 3D points.
func Spatial() Func {
	return func(p []float64) RGB {
		x, y, z := p[0], p[1], p[2]
		return RGB{
			R: math.Min(1, 1+x/4),
			G: math.Min(0.25, 1-y/18),
			B: math.Min(1, 1-z/4),
		}
	}
}

var registry = map[string]struct {
	dim int
	fn  Func
}{
	"planar3": {2, Planar(3)},
	"planar4": {2, Planar(4)},
	"spatial": {3, Spatial()},
}

// Lookup returns the named colorizer and the point dimension it expects.
func Lookup(name string) (Func, int, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, 0, fmt.Errorf("unknown color formula: %s (available: %v)", name, Names())
	}
	return entry.fn, entry.dim, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default picks the stock formula for a dimension.
func Default(dim int) string {
	if dim == 3 {
		return "spatial"
	}
	return "planar3"
}

// Assign colors every column of points.
func Assign(fn Func, points mat.Matrix) []RGB {
	r, c := points.Dims()
	colors := make([]RGB, c)
	p := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(p, j, points)
		colors[j] = fn(p)
	}
	return colors
}
