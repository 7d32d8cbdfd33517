package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/lintrans/internal/colorize"
	"github.com/san-kum/lintrans/internal/markers"
	"github.com/san-kum/lintrans/internal/render"
	"gonum.org/v1/gonum/mat"
)

func TestFrameToSVG(t *testing.T) {
	points := mat.NewDense(2, 2, []float64{
		0, 4,
		0, -3,
	})
	f := render.Frame{
		Points:  points,
		Markers: markers.Basis(2),
		Colors:  colorize.Assign(colorize.Planar(3), points),
		Limit:   4,
	}
	r := render.New(render.ModeBatch, 2, render.Options{Width: 100, Height: 80})

	svg := FrameToSVG(r, f)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if !strings.Contains(svg, `width="100" height="80"`) {
		t.Error("expected renderer dimensions")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 points, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff40ff"`) {
		t.Error("expected origin color #ff40ff")
	}
	if n := strings.Count(svg, "<polygon"); n != 2 {
		t.Errorf("expected 2 arrow heads, got %d", n)
	}
	if strings.Contains(svg, `stroke="#333333"`) {
		t.Error("2D frames have no bounding cube")
	}
}

func TestFrameToSVG3D(t *testing.T) {
	points := mat.NewDense(3, 1, []float64{1, 1, 1})
	f := render.Frame{
		Points: points,
		Colors: colorize.Assign(colorize.Spatial(), points),
		Limit:  1,
	}
	svg := FrameToSVG(render.New(render.ModeBatch, 3, render.Options{}), f)
	if n := strings.Count(svg, "<line"); n != 12 {
		t.Errorf("expected 12 cube edges, got %d", n)
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	points := mat.NewDense(2, 1, []float64{1, 1})
	f := render.Frame{Points: points, Limit: 1}

	if err := WriteSVG(path, render.New(render.ModeBatch, 2, render.Options{}), f); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<circle") {
		t.Error("expected a point in the written svg")
	}
}
