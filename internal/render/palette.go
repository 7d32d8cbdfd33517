package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	markers2D = []string{"#ff0000", "#008000", "#ffff00"}
	markers3D = []string{"#ff0000", "#008000", "#0000ff", "#ffff00"}
	gridInk   = "#333333"
)

// MarkerHex returns the arrow color for marker k.
func MarkerHex(dim, k int) string {
	p := markers2D
	if dim == 3 {
		p = markers3D
	}
	return p[k%len(p)]
}

func MarkerColor(dim, k int) color.RGBA {
	return hexRGBA(MarkerHex(dim, k))
}

func hexRGBA(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
