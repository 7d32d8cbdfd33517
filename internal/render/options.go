package render

import (
	"fmt"
	"image/color"
)

type Mode int

const (
	ModeBatch Mode = iota
	ModePreview
)

func (m Mode) String() string {
	switch m {
	case ModeBatch:
		return "batch"
	case ModePreview:
		return "preview"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

type Options struct {
	Width       int
	Height      int
	PointRadius int
	// Margin scales the axis limits beyond the largest coordinate.
	Margin     float64
	Background color.RGBA
	// Columns and Rows size the terminal canvas in preview mode.
	Columns int
	Rows    int
}

func DefaultOptions(dim int) Options {
	opts := Options{
		Width:       600,
		Height:      600,
		PointRadius: 4,
		Margin:      1.1,
		Background:  color.RGBA{A: 0xff},
		Columns:     60,
		Rows:        30,
	}
	if dim == 3 {
		opts.PointRadius = 2
	}
	return opts
}

func (o Options) withDefaults(dim int) Options {
	def := DefaultOptions(dim)
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.PointRadius <= 0 {
		o.PointRadius = def.PointRadius
	}
	if o.Margin <= 0 {
		o.Margin = def.Margin
	}
	if o.Background == (color.RGBA{}) {
		o.Background = def.Background
	}
	if o.Columns <= 0 {
		o.Columns = def.Columns
	}
	if o.Rows <= 0 {
		o.Rows = def.Rows
	}
	return o
}
