package transform

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"
)

var _ = Describe("Intermediate", func() {
	a := mat.NewDense(2, 2, []float64{3, 1, -2, 0.5})

	It("is the identity at t=0", func() {
		Expect(mat.Equal(Intermediate(a, 0), Identity(2))).To(BeTrue())
	})

	It("is the target at t=1", func() {
		Expect(mat.EqualApprox(Intermediate(a, 1), a, 1e-12)).To(BeTrue())
	})

	It("is affine in t", func() {
		id := Identity(2)
		for _, t := range []float64{0, 0.25, 0.5, 0.75, 1} {
			var want mat.Dense
			want.Sub(a, id)
			want.Scale(t, &want)
			want.Add(id, &want)
			Expect(mat.EqualApprox(Intermediate(a, t), &want, 1e-12)).To(BeTrue(), "t=%v", t)
		}
	})
})

var _ = Describe("Stepwise", func() {
	var (
		rotation *mat.Dense
		point    *mat.Dense
	)

	BeforeEach(func() {
		rotation = mat.NewDense(2, 2, []float64{0, -1, 1, 0})
		point = mat.NewDense(2, 1, []float64{1, 0})
	})

	It("rotates a point through the half-way matrix", func() {
		seq, err := Stepwise(rotation, point, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(seq.Len()).To(Equal(3))

		Expect(seq.Steps[0].Points.RawMatrix().Data).To(Equal([]float64{1, 0}))

		half := seq.Steps[1]
		Expect(half.T).To(Equal(0.5))
		Expect(half.Matrix.RawMatrix().Data).To(Equal([]float64{0.5, -0.5, 0.5, 0.5}))
		Expect(half.Points.RawMatrix().Data).To(Equal([]float64{0.5, 0.5}))

		Expect(seq.Steps[2].Points.RawMatrix().Data).To(Equal([]float64{0, 1}))
	})

	DescribeTable("produces S+1 steps with exact endpoints",
		func(data []float64, steps int) {
			a := mat.NewDense(2, 2, data)
			points := mat.NewDense(2, 4, []float64{
				1, -2, 0.3, 4,
				0, 3, -0.7, -3,
			})

			seq, err := Stepwise(a, points, steps)
			Expect(err).NotTo(HaveOccurred())
			Expect(seq.Steps).To(HaveLen(steps + 1))

			Expect(mat.Equal(seq.Steps[0].Points, points)).To(BeTrue())

			var want mat.Dense
			want.Mul(a, points)
			Expect(mat.Equal(seq.Steps[steps].Points, &want)).To(BeTrue())
			Expect(mat.Equal(seq.Steps[steps].Matrix, a)).To(BeTrue())

			for j, st := range seq.Steps {
				Expect(st.Index).To(Equal(j))
				Expect(st.T).To(Equal(float64(j) / float64(steps)))
			}
		},
		Entry("rotation, one step", []float64{0, -1, 1, 0}, 1),
		Entry("scaling", []float64{3, 0, 0, 2}, 50),
		Entry("shear", []float64{1, 2, 0, 1}, 7),
		Entry("singular projection", []float64{1, 0, 0, 0}, 10),
		Entry("inexact entries", []float64{0.1, 0.7, -0.3, 0.9}, 3),
	)

	It("follows I + (j/S)(A-I) at the start, middle and end", func() {
		a := mat.NewDense(2, 2, []float64{2, 1, 1, 3})
		seq, err := Stepwise(a, Identity(2), 10)
		Expect(err).NotTo(HaveOccurred())

		for _, j := range []int{0, 5, 10} {
			want := Intermediate(a, float64(j)/10)
			Expect(mat.EqualApprox(seq.Steps[j].Matrix, want, 1e-12)).To(BeTrue(), "step %d", j)
		}
	})

	It("is deterministic and leaves its inputs untouched", func() {
		a := mat.NewDense(2, 2, []float64{1, 2, 0, 1})
		points := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		before := mat.DenseCopyOf(points)

		first, err := Stepwise(a, points, 5)
		Expect(err).NotTo(HaveOccurred())
		second, err := Stepwise(a, points, 5)
		Expect(err).NotTo(HaveOccurred())

		for j := range first.Steps {
			Expect(mat.Equal(first.Steps[j].Points, second.Steps[j].Points)).To(BeTrue())
		}
		Expect(mat.Equal(points, before)).To(BeTrue())
	})

	It("computes determinants and the extent of the sequence", func() {
		a := mat.NewDense(2, 2, []float64{3, 0, 0, 2})
		points := mat.NewDense(2, 1, []float64{1, 1})

		seq, err := Stepwise(a, points, 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(seq.Determinants()).To(HaveLen(3))
		Expect(seq.Determinants()[0]).To(BeNumerically("~", 1, 1e-12))
		Expect(seq.Determinants()[2]).To(BeNumerically("~", 6, 1e-12))
		Expect(seq.Extent()).To(Equal(3.0))
		Expect(seq.HasMarkers()).To(BeFalse())
	})

	Context("with invalid input", func() {
		It("rejects a zero step count", func() {
			_, err := Stepwise(rotation, point, 0)
			Expect(errors.Is(err, ErrZeroSteps)).To(BeTrue())
		})

		It("rejects a non-square matrix", func() {
			_, err := Stepwise(mat.NewDense(2, 3, nil), point, 5)
			Expect(errors.Is(err, ErrNotSquare)).To(BeTrue())
		})

		It("rejects points of the wrong dimension", func() {
			_, err := Stepwise(rotation, mat.NewDense(3, 1, []float64{1, 2, 3}), 5)
			Expect(errors.Is(err, ErrDimensionMismatch)).To(BeTrue())
		})

		It("rejects markers of the wrong dimension", func() {
			_, err := StepwiseWithMarkers(rotation, mat.NewDense(3, 1, []float64{1, 2, 3}), point, 5)
			Expect(errors.Is(err, ErrDimensionMismatch)).To(BeTrue())
		})
	})
})

var _ = Describe("StepwiseWithMarkers", func() {
	It("moves markers in lockstep with the grid", func() {
		a := mat.NewDense(3, 3, []float64{
			0, -1, 0,
			1, 0, 0.5,
			0, 0, 1,
		})
		basis := Identity(3)
		points := mat.NewDense(3, 2, []float64{
			1, -4,
			2, 0,
			3, 4,
		})

		seq, err := StepwiseWithMarkers(a, basis, points, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(seq.HasMarkers()).To(BeTrue())

		for _, st := range seq.Steps {
			var want mat.Dense
			want.Mul(st.Matrix, basis)
			Expect(mat.Equal(st.Markers, &want)).To(BeTrue())
		}

		Expect(mat.Equal(seq.Steps[4].Markers, a)).To(BeTrue())
		Expect(mat.Equal(seq.Steps[0].Markers, basis)).To(BeTrue())
	})
})
