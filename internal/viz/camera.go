package viz

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }

// Camera looks at the origin from a direction given by elevation and azimuth
// in degrees, the way 3D scatter plots are usually framed.
type Camera struct {
	Elevation float64
	Azimuth   float64
	// Distance from the origin in world units. Zero means orthographic.
	Distance float64
}

func NewCamera() *Camera {
	return &Camera{Elevation: 30, Azimuth: -60}
}

// Basis returns the screen right, screen up and toward-viewer directions.
func (c *Camera) Basis() (right, up, toward Vec3) {
	a := c.Azimuth * math.Pi / 180
	e := c.Elevation * math.Pi / 180
	ca, sa := math.Cos(a), math.Sin(a)
	ce, se := math.Cos(e), math.Sin(e)

	right = Vec3{-sa, ca, 0}
	up = Vec3{-se * ca, -se * sa, ce}
	toward = Vec3{ce * ca, ce * sa, se}
	return right, up, toward
}

// Project maps a world point to screen-plane coordinates in world units.
// depth grows toward the viewer; visible is false behind a perspective camera.
func (c *Camera) Project(p Vec3) (x, y, depth float64, visible bool) {
	right, up, toward := c.Basis()
	x, y, depth = p.Dot(right), p.Dot(up), p.Dot(toward)
	if c.Distance <= 0 {
		return x, y, depth, true
	}
	if depth >= c.Distance {
		return 0, 0, depth, false
	}
	s := c.Distance / (c.Distance - depth)
	return x * s, y * s, depth, true
}

type Edge struct {
	Start, End Vec3
}

// CubeEdges returns the twelve edges of an axis-aligned cube centered on the
// origin.
func CubeEdges(half float64) []Edge {
	s := half
	v := []Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	edges := make([]Edge, 0, len(ei))
	for _, e := range ei {
		edges = append(edges, Edge{v[e[0]], v[e[1]]})
	}
	return edges
}
