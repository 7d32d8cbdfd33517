// Package pipeline runs a configured transformation end to end: grid,
// colors, interpolation, frames, animation and the run record.
//
// Every stage runs sequentially on the calling goroutine.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/san-kum/lintrans/internal/anim"
	"github.com/san-kum/lintrans/internal/colorize"
	"github.com/san-kum/lintrans/internal/config"
	"github.com/san-kum/lintrans/internal/export"
	"github.com/san-kum/lintrans/internal/grid"
	"github.com/san-kum/lintrans/internal/logging"
	"github.com/san-kum/lintrans/internal/markers"
	"github.com/san-kum/lintrans/internal/render"
	"github.com/san-kum/lintrans/internal/storage"
	"github.com/san-kum/lintrans/internal/transform"
	"gonum.org/v1/gonum/mat"
)

// Plan is the computed, render-independent part of a run.
type Plan struct {
	Config   *config.Config
	Target   *mat.Dense
	Points   *mat.Dense
	Markers  *mat.Dense
	Colors   []colorize.RGB
	Sequence *transform.Sequence
}

func (p *Plan) Frames() []render.Frame {
	return render.Frames(p.Sequence, p.Colors)
}

func (p *Plan) Renderer(mode render.Mode) *render.Renderer {
	return render.New(mode, p.Config.Dimension, render.Options{
		Width:       p.Config.Render.Width,
		Height:      p.Config.Render.Height,
		PointRadius: p.Config.Render.PointRadius,
	})
}

type Result struct {
	ID        string
	Plan      *Plan
	Frames    []string
	Animation string
	Elapsed   time.Duration
}

type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	// Record controls whether the run is saved under Output.DataDir.
	Record bool
}

func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger, Record: true}
}

// Prepare builds the grid, colors and interpolation sequence.
func (p *Pipeline) Prepare() (*Plan, error) {
	cfg := p.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	target, err := cfg.Target()
	if err != nil {
		return nil, err
	}

	points, err := grid.New(cfg.Dimension, cfg.Grid)
	if err != nil {
		return nil, err
	}

	colorFn, _, err := colorize.Lookup(cfg.Color)
	if err != nil {
		return nil, err
	}
	colors := colorize.Assign(colorFn, points)

	plan := &Plan{
		Config: cfg,
		Target: target,
		Points: points,
		Colors: colors,
	}

	if cfg.Markers.Enabled() {
		plan.Markers = markers.Build(target, cfg.Markers.Basis, cfg.Markers.Eigen, cfg.Markers.EigenScale)
		if cfg.Markers.Eigen {
			if _, ok := markers.Eigen(target, 1); !ok {
				p.logger.Warn("target has no real eigenvalue, skipping eigenvector marker")
			}
		}
	}

	if plan.Markers != nil {
		plan.Sequence, err = transform.StepwiseWithMarkers(target, plan.Markers, points, cfg.Steps)
	} else {
		plan.Sequence, err = transform.Stepwise(target, points, cfg.Steps)
	}
	if err != nil {
		return nil, err
	}

	_, n := points.Dims()
	p.logger.Debug("prepared transformation",
		"preset", cfg.Name,
		"dimension", cfg.Dimension,
		"points", n,
		"steps", cfg.Steps,
		"det", mat.Det(target),
	)
	return plan, nil
}

// Run computes the sequence, writes one PNG per step, assembles them into an
// animation and records the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	plan, err := p.Prepare()
	if err != nil {
		return nil, err
	}
	cfg := plan.Config

	renderer := plan.Renderer(render.ModeBatch)
	p.logger.Info("rendering frames", "dir", cfg.Output.FrameDir, "frames", plan.Sequence.Len())
	paths, err := renderer.WriteFrames(ctx, cfg.Output.FrameDir, plan.Frames())
	if err != nil {
		return nil, fmt.Errorf("write frames: %w", err)
	}

	assembler, err := anim.New(cfg.Output.Assembler, cfg.Output.Delay, p.logger)
	if err != nil {
		return nil, err
	}
	p.logger.Info("assembling animation", "out", cfg.Output.Animation, "assembler", cfg.Output.Assembler)
	if err := assembler.Assemble(ctx, paths, cfg.Output.Animation); err != nil {
		return nil, fmt.Errorf("assemble animation: %w", err)
	}

	result := &Result{
		Plan:      plan,
		Frames:    paths,
		Animation: cfg.Output.Animation,
		Elapsed:   time.Since(start),
	}

	if p.Record {
		st := storage.New(cfg.Output.DataDir)
		if err := st.Init(); err != nil {
			return nil, err
		}
		id, err := st.Save(storage.RunMetadata{
			Preset:    cfg.Name,
			Color:     cfg.Color,
			FrameDir:  cfg.Output.FrameDir,
			Frames:    len(paths),
			Animation: cfg.Output.Animation,
			ElapsedMS: result.Elapsed.Milliseconds(),
		}, plan.Sequence)
		if err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		result.ID = id
	}

	return result, nil
}

// Snapshot writes the untransformed and the fully transformed grid as PNG
// and SVG into dir, returning the written paths.
func (p *Pipeline) Snapshot(plan *Plan, dir string) ([]string, error) {
	frames := plan.Frames()
	renderer := plan.Renderer(render.ModeBatch)

	name := plan.Config.Name
	if name == "" {
		name = "snapshot"
	}

	if err := render.EnsureDir(dir); err != nil {
		return nil, err
	}

	var paths []string
	for _, s := range []struct {
		label string
		frame render.Frame
	}{
		{"start", frames[0]},
		{"end", frames[len(frames)-1]},
	} {
		base := filepath.Join(dir, fmt.Sprintf("%s-%s", name, s.label))
		if err := render.WritePNG(base+".png", renderer.Raster(s.frame)); err != nil {
			return paths, err
		}
		if err := export.WriteSVG(base+".svg", renderer, s.frame); err != nil {
			return paths, err
		}
		paths = append(paths, base+".png", base+".svg")
	}
	return paths, nil
}
