package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/san-kum/lintrans/internal/colorize"
	"github.com/san-kum/lintrans/internal/transform"
	"github.com/san-kum/lintrans/internal/viz"
	"gonum.org/v1/gonum/mat"
)

// Frame is everything needed to draw one interpolation step.
type Frame struct {
	Index   int
	Points  *mat.Dense
	Markers *mat.Dense
	Colors  []colorize.RGB
	// Limit is the largest coordinate magnitude over the whole sequence, so
	// every frame shares the same axes.
	Limit float64
}

// Frames pairs each step with the colors of the original points.
func Frames(seq *transform.Sequence, colors []colorize.RGB) []Frame {
	limit := seq.Extent()
	frames := make([]Frame, len(seq.Steps))
	for i, st := range seq.Steps {
		frames[i] = Frame{
			Index:   st.Index,
			Points:  st.Points,
			Markers: st.Markers,
			Colors:  colors,
			Limit:   limit,
		}
	}
	return frames
}

// Output holds the result of rendering one frame; which field is set
// depends on the renderer's mode.
type Output struct {
	Image *image.RGBA
	Text  string
}

type Renderer struct {
	mode Mode
	dim  int
	opts Options
	cam  *viz.Camera
}

func New(mode Mode, dim int, opts Options) *Renderer {
	return &Renderer{
		mode: mode,
		dim:  dim,
		opts: opts.withDefaults(dim),
		cam:  viz.NewCamera(),
	}
}

func (r *Renderer) Mode() Mode          { return r.mode }
func (r *Renderer) Options() Options    { return r.opts }
func (r *Renderer) Dim() int            { return r.dim }
func (r *Renderer) Camera() *viz.Camera { return r.cam }

func (r *Renderer) Render(f Frame) Output {
	if r.mode == ModePreview {
		return Output{Text: r.Text(f)}
	}
	return Output{Image: r.Raster(f)}
}

// Project maps a point to viewport coordinates for a w×h surface with y
// pointing down. depth is only meaningful in 3D.
func (r *Renderer) Project(p []float64, limit float64, w, h int) (x, y, depth float64, visible bool) {
	var sx, sy float64
	visible = true
	span := r.span(limit)
	if r.dim == 3 {
		sx, sy, depth, visible = r.cam.Project(viz.Vec3{X: p[0], Y: p[1], Z: p[2]})
	} else {
		sx, sy = p[0], p[1]
	}
	scale := math.Min(float64(w), float64(h)) / 2 / span
	x = float64(w)/2 + sx*scale
	y = float64(h)/2 - sy*scale
	return x, y, depth, visible
}

func (r *Renderer) span(limit float64) float64 {
	if limit <= 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
		limit = 1
	}
	span := limit * r.opts.Margin
	if r.dim == 3 {
		// the projected cube corners reach past the axis limit
		span *= math.Sqrt(3)
	}
	return span
}

// Dot is a projected grid point.
type Dot struct {
	X, Y, Depth float64
	Color       color.RGBA
	Hex         string
}

// Dots projects the frame's points onto a w×h surface, back to front in 3D.
func (r *Renderer) Dots(f Frame, w, h int) []Dot {
	_, n := f.Points.Dims()
	pts := make([]Dot, 0, n)
	p := make([]float64, r.dim)
	for j := 0; j < n; j++ {
		mat.Col(p, j, f.Points)
		x, y, d, ok := r.Project(p, f.Limit, w, h)
		if !ok {
			continue
		}
		pp := Dot{X: x, Y: y, Depth: d, Color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, Hex: "#ffffff"}
		if j < len(f.Colors) {
			pp.Color = f.Colors[j].Color()
			pp.Hex = f.Colors[j].Hex()
		}
		pts = append(pts, pp)
	}
	if r.dim == 3 {
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Depth < pts[b].Depth })
	}
	return pts
}

type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Cube returns the projected bounding box edges; empty in 2D.
func (r *Renderer) Cube(limit float64, w, h int) []Segment {
	if r.dim != 3 {
		return nil
	}
	if limit <= 0 {
		limit = 1
	}
	half := limit * r.opts.Margin
	edges := viz.CubeEdges(half)
	segs := make([]Segment, 0, len(edges))
	for _, e := range edges {
		x0, y0, _, ok0 := r.Project([]float64{e.Start.X, e.Start.Y, e.Start.Z}, limit, w, h)
		x1, y1, _, ok1 := r.Project([]float64{e.End.X, e.End.Y, e.End.Z}, limit, w, h)
		if ok0 && ok1 {
			segs = append(segs, Segment{x0, y0, x1, y1})
		}
	}
	return segs
}

// Arrows returns one origin-to-tip segment per marker column.
func (r *Renderer) Arrows(f Frame, w, h int) []Segment {
	if f.Markers == nil {
		return nil
	}
	origin := make([]float64, r.dim)
	ox, oy, _, _ := r.Project(origin, f.Limit, w, h)

	_, k := f.Markers.Dims()
	segs := make([]Segment, 0, k)
	tip := make([]float64, r.dim)
	for j := 0; j < k; j++ {
		mat.Col(tip, j, f.Markers)
		x, y, _, _ := r.Project(tip, f.Limit, w, h)
		segs = append(segs, Segment{ox, oy, x, y})
	}
	return segs
}

// Raster draws the frame onto a new image.
func (r *Renderer) Raster(f Frame) *image.RGBA {
	w, h := r.opts.Width, r.opts.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: r.opts.Background}, image.Point{}, draw.Src)

	grid := hexRGBA(gridInk)
	for _, s := range r.Cube(f.Limit, w, h) {
		drawLine(img, s, grid, 1)
	}

	for _, p := range r.Dots(f, w, h) {
		fillDisc(img, p.X, p.Y, r.opts.PointRadius, p.Color)
	}

	head := math.Max(6, float64(min(w, h))/50)
	for k, s := range r.Arrows(f, w, h) {
		drawArrow(img, s, head, MarkerColor(r.dim, k))
	}
	return img
}

// Text draws the frame onto a Braille canvas.
func (r *Renderer) Text(f Frame) string {
	c := viz.NewCanvas(r.opts.Columns, r.opts.Rows)
	w, h := c.Dots()

	for _, s := range r.Cube(f.Limit, w, h) {
		c.DrawLine(round(s.X0), round(s.Y0), round(s.X1), round(s.Y1), gridInk)
	}
	for _, p := range r.Dots(f, w, h) {
		c.Plot(round(p.X), round(p.Y), p.Hex)
	}
	for k, s := range r.Arrows(f, w, h) {
		c.DrawLine(round(s.X0), round(s.Y0), round(s.X1), round(s.Y1), MarkerHex(r.dim, k))
	}
	return c.Render()
}

func round(v float64) int { return int(math.Round(v)) }
