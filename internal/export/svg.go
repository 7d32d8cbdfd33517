package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/lintrans/internal/render"
)

// FrameToSVG draws a frame as SVG using the renderer's projection and size.
func FrameToSVG(r *render.Renderer, f render.Frame) string {
	opts := r.Options()
	w, h := opts.Width, opts.Height

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, w, h, w, h))

	if cube := r.Cube(f.Limit, w, h); len(cube) > 0 {
		sb.WriteString(`<g stroke="#333333" stroke-width="1">` + "\n")
		for _, s := range cube {
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", s.X0, s.Y0, s.X1, s.Y1))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("<g>\n")
	for _, d := range r.Dots(f, w, h) {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"/>`+"\n", d.X, d.Y, opts.PointRadius, d.Hex))
	}
	sb.WriteString("</g>\n")

	for k, s := range r.Arrows(f, w, h) {
		sb.WriteString(arrowSVG(s, render.MarkerHex(r.Dim(), k)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func arrowSVG(s render.Segment, stroke string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="2" fill="%s">`+"\n", stroke, stroke))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", s.X0, s.Y0, s.X1, s.Y1))

	vx, vy := s.X1-s.X0, s.Y1-s.Y0
	if length := math.Hypot(vx, vy); length > 0 {
		head := math.Min(10, length/2)
		ux, uy := vx/length, vy/length
		// perpendicular half-width of the head
		px, py := -uy*head/2, ux*head/2
		bx, by := s.X1-ux*head, s.Y1-uy*head
		sb.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>`+"\n",
			s.X1, s.Y1, bx+px, by+py, bx-px, by-py))
	}

	sb.WriteString("</g>\n")
	return sb.String()
}

func WriteSVG(path string, r *render.Renderer, f render.Frame) error {
	return os.WriteFile(path, []byte(FrameToSVG(r, f)), 0644)
}
