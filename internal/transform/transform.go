package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const DefaultSteps = 50

type Step struct {
	Index   int
	T       float64
	Matrix  *mat.Dense
	Points  *mat.Dense
	Markers *mat.Dense
}

type Sequence struct {
	Target *mat.Dense
	Steps  []Step
}

func (s *Sequence) Len() int { return len(s.Steps) }

func (s *Sequence) HasMarkers() bool {
	return len(s.Steps) > 0 && s.Steps[0].Markers != nil
}

// Extent returns the absolute value of the largest coordinate reached by any
// point over the whole sequence. Renderers use it for fixed axis limits.
func (s *Sequence) Extent() float64 {
	maxVal := math.Inf(-1)
	for _, st := range s.Steps {
		if v := mat.Max(st.Points); v > maxVal {
			maxVal = v
		}
	}
	if math.IsInf(maxVal, -1) {
		return 0
	}
	return math.Abs(maxVal)
}

func (s *Sequence) Determinants() []float64 {
	dets := make([]float64, len(s.Steps))
	for i, st := range s.Steps {
		dets[i] = mat.Det(st.Matrix)
	}
	return dets
}

func Identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

// Intermediate returns I + t·(A − I). A must be square.
func Intermediate(a mat.Matrix, t float64) *mat.Dense {
	n, _ := a.Dims()
	id := Identity(n)

	var m mat.Dense
	m.Sub(a, id)
	m.Scale(t, &m)
	m.Add(id, &m)
	return &m
}

func Stepwise(a mat.Matrix, points mat.Matrix, steps int) (*Sequence, error) {
	return StepwiseWithMarkers(a, nil, points, steps)
}

// StepwiseWithMarkers applies the same intermediate matrix to the grid points
// and to the marker vectors at every step. markers may be nil.
func StepwiseWithMarkers(a mat.Matrix, markers mat.Matrix, points mat.Matrix, steps int) (*Sequence, error) {
	if err := validate(a, markers, points, steps); err != nil {
		return nil, err
	}

	seq := &Sequence{
		Target: mat.DenseCopyOf(a),
		Steps:  make([]Step, 0, steps+1),
	}

	for j := 0; j <= steps; j++ {
		t := float64(j) / float64(steps)

		var m *mat.Dense
		if j == steps {
			// I + (A − I) may round away from A; the last step is A itself.
			m = mat.DenseCopyOf(a)
		} else {
			m = Intermediate(a, t)
		}

		st := Step{Index: j, T: t, Matrix: m, Points: apply(m, points)}
		if markers != nil {
			st.Markers = apply(m, markers)
		}
		seq.Steps = append(seq.Steps, st)
	}

	return seq, nil
}

func apply(m *mat.Dense, x mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Mul(m, x)
	return &out
}

func validate(a, markers, points mat.Matrix, steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: got %d", ErrZeroSteps, steps)
	}
	r, c := a.Dims()
	if r != c {
		return fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	if pr, _ := points.Dims(); pr != r {
		return fmt.Errorf("%w: matrix is %dx%d, points have %d rows", ErrDimensionMismatch, r, c, pr)
	}
	if markers != nil {
		if vr, _ := markers.Dims(); vr != r {
			return fmt.Errorf("%w: matrix is %dx%d, markers have %d rows", ErrDimensionMismatch, r, c, vr)
		}
	}
	return nil
}
