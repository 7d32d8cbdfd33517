// Package anim assembles rendered frames into a looping animation.
package anim

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// DefaultDelay is the per-frame delay in hundredths of a second.
const DefaultDelay = 10

var ErrNoFrames = errors.New("anim: no frames to assemble")

type Assembler interface {
	Assemble(ctx context.Context, frames []string, out string) error
}

// New returns the assembler for kind: "gif" encodes in-process, "convert"
// hands the frames to ImageMagick.
func New(kind string, delay int, logger *slog.Logger) (Assembler, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	switch kind {
	case "", "gif":
		return &GIF{Delay: delay}, nil
	case "convert":
		return &Command{Name: "convert", Delay: delay, Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown assembler: %s (available: gif, convert)", kind)
	}
}

// GIF encodes PNG frames into an animated GIF that loops forever.
type GIF struct {
	Delay int
}

func (g *GIF) Assemble(ctx context.Context, frames []string, out string) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	anim := gif.GIF{LoopCount: 0}
	for _, path := range frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		img, err := readPNG(path)
		if err != nil {
			return fmt.Errorf("read frame %s: %w", path, err)
		}
		anim.Image = append(anim.Image, quantize(img))
		anim.Delay = append(anim.Delay, g.Delay)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

// Command runs an external image sequencer as
//
//	<Name> -delay <Delay> <frames...> <out>
//
// A failing or missing tool is logged and otherwise ignored: the run still
// counts as complete, just without an animation.
type Command struct {
	Name   string
	Delay  int
	Logger *slog.Logger

	run func(cmd *exec.Cmd) error
}

func (c *Command) Args(frames []string, out string) []string {
	args := []string{"-delay", strconv.Itoa(c.Delay)}
	args = append(args, frames...)
	return append(args, out)
}

func (c *Command) Assemble(ctx context.Context, frames []string, out string) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args(frames, out)...)
	run := c.run
	if run == nil {
		run = func(cmd *exec.Cmd) error {
			output, err := cmd.CombinedOutput()
			if err != nil && len(output) > 0 {
				return fmt.Errorf("%w: %s", err, output)
			}
			return err
		}
	}

	if err := run(cmd); err != nil && c.Logger != nil {
		c.Logger.Warn("animation assembler failed", "tool", c.Name, "out", out, "error", err)
	}
	return nil
}
