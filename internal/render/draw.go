package render

import (
	"image"
	"image/color"
	"math"
)

func fillDisc(img *image.RGBA, cx, cy float64, radius int, c color.RGBA) {
	r := float64(radius)
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	b := img.Bounds()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !(image.Point{X: x, Y: y}).In(b) {
				continue
			}
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLine uses Bresenham's algorithm, thickened by stamping a square brush.
func drawLine(img *image.RGBA, s Segment, c color.RGBA, width int) {
	x0, y0 := round(s.X0), round(s.Y0)
	x1, y1 := round(s.X1), round(s.Y1)

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	half := width / 2
	b := img.Bounds()

	for {
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				if p := (image.Point{X: x0 + ox, Y: y0 + oy}); p.In(b) {
					img.SetRGBA(p.X, p.Y, c)
				}
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawArrow(img *image.RGBA, s Segment, head float64, c color.RGBA) {
	drawLine(img, s, c, 2)

	vx, vy := s.X1-s.X0, s.Y1-s.Y0
	length := math.Hypot(vx, vy)
	if length == 0 {
		return
	}
	head = math.Min(head, length/2)
	ux, uy := vx/length, vy/length
	const spread = math.Pi / 7
	for _, a := range []float64{spread, -spread} {
		cos, sin := math.Cos(a), math.Sin(a)
		bx := -(ux*cos - uy*sin) * head
		by := -(ux*sin + uy*cos) * head
		drawLine(img, Segment{s.X1, s.Y1, s.X1 + bx, s.Y1 + by}, c, 2)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
