package pipeline

import (
	"context"
	"image/gif"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/lintrans/internal/config"
	"github.com/san-kum/lintrans/internal/storage"
)

var _ = Describe("Pipeline", func() {
	var (
		dir string
		cfg *config.Config
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		cfg = config.GetPreset("rotate-markers")
		cfg.Steps = 4
		cfg.Render.Width = 64
		cfg.Render.Height = 64
		cfg.Output.FrameDir = filepath.Join(dir, "2D_tmp")
		cfg.Output.Animation = filepath.Join(dir, "2D_animations", "2D_animation.gif")
		cfg.Output.DataDir = filepath.Join(dir, "runs")
	})

	Describe("Prepare", func() {
		It("builds grid, colors, markers and the sequence", func() {
			plan, err := New(cfg, nil).Prepare()
			Expect(err).NotTo(HaveOccurred())

			_, n := plan.Points.Dims()
			Expect(n).To(Equal(63))
			Expect(plan.Colors).To(HaveLen(63))
			Expect(plan.Sequence.Len()).To(Equal(5))
			Expect(plan.Sequence.HasMarkers()).To(BeTrue())

			var want mat.Dense
			want.Mul(plan.Target, plan.Points)
			Expect(mat.Equal(plan.Sequence.Steps[4].Points, &want)).To(BeTrue())
		})

		It("computes colors from the untransformed grid", func() {
			plan, err := New(cfg, nil).Prepare()
			Expect(err).NotTo(HaveOccurred())

			// column 0 is (-4, -3) with the divisor-4 formula
			Expect(plan.Colors[0].R).To(Equal(1.0))
			Expect(plan.Colors[0].G).To(Equal(0.0))
			Expect(plan.Colors[0].B).To(Equal(0.25))
		})

		It("skips markers when none are requested", func() {
			cfg = config.GetPreset("shear")
			plan, err := New(cfg, nil).Prepare()
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Markers).To(BeNil())
			Expect(plan.Sequence.HasMarkers()).To(BeFalse())
		})

		It("adds the eigenvector marker in 3D", func() {
			cfg = config.GetPreset("rotx3d")
			cfg.Steps = 2
			plan, err := New(cfg, nil).Prepare()
			Expect(err).NotTo(HaveOccurred())

			_, k := plan.Markers.Dims()
			Expect(k).To(Equal(4))
		})

		It("rejects a zero step count", func() {
			cfg.Steps = 0
			_, err := New(cfg, nil).Prepare()
			Expect(err).To(MatchError(config.ErrInvalid))
		})
	})

	Describe("Run", func() {
		It("writes frames, the animation and a run record", func() {
			result, err := New(cfg, nil).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Frames).To(HaveLen(5))
			Expect(filepath.Base(result.Frames[0])).To(Equal("frame-1.png"))
			for _, f := range result.Frames {
				Expect(f).To(BeAnExistingFile())
			}

			file, err := os.Open(result.Animation)
			Expect(err).NotTo(HaveOccurred())
			defer file.Close()
			g, err := gif.DecodeAll(file)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Image).To(HaveLen(5))

			Expect(result.ID).NotTo(BeEmpty())
			meta, err := storage.New(cfg.Output.DataDir).Load(result.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.Frames).To(Equal(5))
			Expect(meta.Steps).To(Equal(4))
			Expect(meta.Preset).To(Equal("rotate-markers"))
		})

		It("does not record when recording is off", func() {
			p := New(cfg, nil)
			p.Record = false
			result, err := p.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.ID).To(BeEmpty())
			Expect(cfg.Output.DataDir).NotTo(BeADirectory())
		})

		It("succeeds even when the external assembler is missing", func() {
			cfg.Output.Assembler = "convert"
			cfg.Output.Animation = filepath.Join(dir, "missing", "out.gif")
			result, err := New(cfg, nil).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Frames).To(HaveLen(5))
		})

		It("fails when the frame directory cannot be created", func() {
			blocker := filepath.Join(dir, "blocker")
			Expect(os.WriteFile(blocker, []byte("x"), 0644)).To(Succeed())
			cfg.Output.FrameDir = filepath.Join(blocker, "frames")

			_, err := New(cfg, nil).Run(context.Background())
			Expect(err).To(HaveOccurred())
		})

		It("stops between frames when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := New(cfg, nil).Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("Snapshot", func() {
		It("writes the start and end of the transformation", func() {
			p := New(cfg, nil)
			plan, err := p.Prepare()
			Expect(err).NotTo(HaveOccurred())

			paths, err := p.Snapshot(plan, filepath.Join(dir, "snap"))
			Expect(err).NotTo(HaveOccurred())
			Expect(paths).To(ConsistOf(
				filepath.Join(dir, "snap", "rotate-markers-start.png"),
				filepath.Join(dir, "snap", "rotate-markers-start.svg"),
				filepath.Join(dir, "snap", "rotate-markers-end.png"),
				filepath.Join(dir, "snap", "rotate-markers-end.svg"),
			))
			for _, path := range paths {
				Expect(path).To(BeAnExistingFile())
			}
		})
	})
})
