package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
)

var ErrMode = errors.New("render: operation not available in this mode")

// FrameName returns the file name of frame j out of total frames. Frames are
// numbered from 1 and zero-padded to the width of total.
func FrameName(j, total int) string {
	return fmt.Sprintf("frame-%0*d.png", len(strconv.Itoa(total)), j+1)
}

// WriteFrames renders every frame to a PNG in dir, creating dir if needed,
// and returns the written paths in order. Frames are written one at a time;
// ctx is checked before each.
func (r *Renderer) WriteFrames(ctx context.Context, dir string, frames []Frame) ([]string, error) {
	if r.mode != ModeBatch {
		return nil, fmt.Errorf("%w: writing frames needs %s, have %s", ErrMode, ModeBatch, r.mode)
	}
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(frames))
	for j, f := range frames {
		select {
		case <-ctx.Done():
			return paths, ctx.Err()
		default:
		}

		path := filepath.Join(dir, FrameName(j, len(frames)))
		if err := WritePNG(path, r.Raster(f)); err != nil {
			return paths, fmt.Errorf("frame %d: %w", j, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Texts renders every frame for the terminal.
func (r *Renderer) Texts(frames []Frame) ([]string, error) {
	if r.mode != ModePreview {
		return nil, fmt.Errorf("%w: text frames need %s, have %s", ErrMode, ModePreview, r.mode)
	}
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = r.Text(f)
	}
	return out, nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func WritePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
