package config

import (
	"sort"

	"github.com/san-kum/lintrans/internal/grid"
)

// Presets reproduce the stock transformations. They are templates: use
// GetPreset, which returns a copy with defaults applied.
var Presets = map[string]*Config{
	"rotate": {
		Name: "rotate", Dimension: 2, Color: "planar3",
		Matrix: [][]float64{{0, -1}, {1, 0}},
	},
	"rotate-markers": {
		Name: "rotate-markers", Dimension: 2, Color: "planar4",
		Matrix:  [][]float64{{0, -1}, {1, 0}},
		Markers: MarkerConfig{Basis: true},
	},
	"scale": {
		Name: "scale", Dimension: 2, Color: "planar3",
		Matrix: [][]float64{{3, 0}, {0, 2}},
	},
	"shear": {
		Name: "shear", Dimension: 2, Color: "planar3",
		Matrix: [][]float64{{1, 2}, {0, 1}},
	},
	"shear3d": {
		Name: "shear3d", Dimension: 3, Color: "spatial",
		Matrix: [][]float64{{0, -1, 0}, {1, 0, 0.5}, {0, 0, 1}},
	},
	"rotx3d": {
		Name: "rotx3d", Dimension: 3, Color: "spatial",
		Rotation: &RotationConfig{Axis: "x", Degrees: 90},
		Markers:  MarkerConfig{Basis: true, Eigen: true},
	},
	"squash3d": {
		Name: "squash3d", Dimension: 3, Color: "spatial", Steps: 30,
		Matrix: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		Grid: grid.Bounds{
			X: grid.Axis{Min: -4, Max: 4, Count: 5},
			Y: grid.Axis{Min: -4, Max: 4, Count: 5},
			Z: grid.Axis{Min: -4, Max: 4, Count: 5},
		},
		Markers: MarkerConfig{Basis: true},
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	cfg.ApplyDefaults()
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
