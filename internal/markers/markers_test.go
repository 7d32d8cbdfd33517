package markers

import (
	"math"
	"testing"

	"github.com/san-kum/lintrans/internal/transform"
	"gonum.org/v1/gonum/mat"
)

func TestBasisAtFullTransformEqualsColumns(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		0, -1, 0,
		1, 0, 0.5,
		0, 0, 1,
	})
	points := mat.NewDense(3, 1, []float64{1, 1, 1})

	seq, err := transform.StepwiseWithMarkers(a, Basis(3), points, 10)
	if err != nil {
		t.Fatalf("stepwise failed: %v", err)
	}

	last := seq.Steps[len(seq.Steps)-1].Markers
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			if last.At(i, j) != a.At(i, j) {
				t.Errorf("marker %d row %d: expected %f, got %f", j, i, a.At(i, j), last.At(i, j))
			}
		}
	}
}

func TestEigenRotationAxis(t *testing.T) {
	rot := math.Pi / 2
	a := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, math.Cos(rot), -math.Sin(rot),
		0, math.Sin(rot), math.Cos(rot),
	})

	v, ok := Eigen(a, DefaultEigenScale)
	if !ok {
		t.Fatal("expected a real eigenvector for a rotation about x")
	}
	if math.Abs(math.Abs(v[0])-3) > 1e-9 || math.Abs(v[1]) > 1e-9 || math.Abs(v[2]) > 1e-9 {
		t.Errorf("expected ±(3, 0, 0), got %v", v)
	}
}

func TestEigenNoRealValue(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	if _, ok := Eigen(a, 1); ok {
		t.Error("a 2D rotation by 90 degrees has no real eigenvector")
	}
}

func TestBuild(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, 0, 0,
		0, 3, 0,
		0, 0, 4,
	})

	if m := Build(a, false, false, 1); m != nil {
		t.Error("expected nil without any markers requested")
	}

	m := Build(a, true, true, DefaultEigenScale)
	r, c := m.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("expected 3x4 markers, got %dx%d", r, c)
	}

	tip := mat.Col(nil, 3, m)
	var av mat.VecDense
	av.MulVec(a, mat.NewVecDense(3, tip))
	ratio := 0.0
	for i, x := range tip {
		if math.Abs(x) > 1e-9 {
			ratio = av.AtVec(i) / x
			break
		}
	}
	for i, x := range tip {
		if math.Abs(av.AtVec(i)-ratio*x) > 1e-9 {
			t.Errorf("column 3 is not an eigenvector at row %d", i)
		}
	}
}

func TestStackColumns(t *testing.T) {
	m := Stack([]float64{1, 2}, []float64{3, 4}, []float64{5, 6})
	cols := Columns(m)
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	if cols[1][0] != 3 || cols[1][1] != 4 {
		t.Errorf("unexpected column: %v", cols[1])
	}
	if Stack() != nil {
		t.Error("expected nil for no vectors")
	}
}
