package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/lintrans/internal/anim"
	"github.com/san-kum/lintrans/internal/colorize"
	"github.com/san-kum/lintrans/internal/grid"
	"github.com/san-kum/lintrans/internal/markers"
	"github.com/san-kum/lintrans/internal/transform"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps     = transform.DefaultSteps
	DefaultWidth     = 600
	DefaultHeight    = 600
	DefaultAssembler = "gif"
	DefaultDataDir   = ".lintrans"
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Name      string          `yaml:"name"`
	Dimension int             `yaml:"dimension"`
	Steps     int             `yaml:"steps"`
	Matrix    [][]float64     `yaml:"matrix,omitempty"`
	Rotation  *RotationConfig `yaml:"rotation,omitempty"`
	Grid      grid.Bounds     `yaml:"grid"`
	Markers   MarkerConfig    `yaml:"markers"`
	Color     string          `yaml:"color"`
	Render    RenderConfig    `yaml:"render"`
	Output    OutputConfig    `yaml:"output"`
}

// RotationConfig describes the target as a rotation when no matrix is given.
// 2D rotations ignore Axis.
type RotationConfig struct {
	Axis    string  `yaml:"axis"`
	Degrees float64 `yaml:"degrees"`
}

type MarkerConfig struct {
	Basis      bool    `yaml:"basis"`
	Eigen      bool    `yaml:"eigen"`
	EigenScale float64 `yaml:"eigen_scale"`
}

func (m MarkerConfig) Enabled() bool { return m.Basis || m.Eigen }

type RenderConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	PointRadius int `yaml:"point_radius"`
}

type OutputConfig struct {
	FrameDir  string `yaml:"frame_dir"`
	Animation string `yaml:"animation"`
	Delay     int    `yaml:"delay"`
	Assembler string `yaml:"assembler"`
	DataDir   string `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return GetPreset("rotate")
}

// ApplyDefaults fills every unset field with the value for the configured
// dimension. Dimension itself defaults to the matrix size, then to 2.
func (c *Config) ApplyDefaults() {
	if c.Dimension == 0 {
		c.Dimension = len(c.Matrix)
	}
	if c.Dimension == 0 {
		c.Dimension = 2
	}
	if c.Steps == 0 {
		c.Steps = DefaultSteps
	}

	def := grid.DefaultBounds(c.Dimension)
	if c.Grid.X.Count == 0 {
		c.Grid.X = def.X
	}
	if c.Grid.Y.Count == 0 {
		c.Grid.Y = def.Y
	}
	if c.Dimension == 3 && c.Grid.Z.Count == 0 {
		c.Grid.Z = def.Z
	}

	if c.Markers.Eigen && c.Markers.EigenScale == 0 {
		c.Markers.EigenScale = markers.DefaultEigenScale
	}
	if c.Color == "" {
		c.Color = colorize.Default(c.Dimension)
	}

	if c.Render.Width == 0 {
		c.Render.Width = DefaultWidth
	}
	if c.Render.Height == 0 {
		c.Render.Height = DefaultHeight
	}

	if c.Output.FrameDir == "" {
		c.Output.FrameDir = fmt.Sprintf("%dD_tmp", c.Dimension)
	}
	if c.Output.Animation == "" {
		c.Output.Animation = fmt.Sprintf("%dD_animations/%dD_animation.gif", c.Dimension, c.Dimension)
	}
	if c.Output.Delay == 0 {
		c.Output.Delay = anim.DefaultDelay
	}
	if c.Output.Assembler == "" {
		c.Output.Assembler = DefaultAssembler
	}
	if c.Output.DataDir == "" {
		c.Output.DataDir = DefaultDataDir
	}
}

func (c *Config) Validate() error {
	if c.Dimension != 2 && c.Dimension != 3 {
		return fmt.Errorf("%w: dimension must be 2 or 3, got %d", ErrInvalid, c.Dimension)
	}
	if c.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalid, c.Steps)
	}
	if len(c.Matrix) == 0 && c.Rotation == nil {
		return fmt.Errorf("%w: either matrix or rotation is required", ErrInvalid)
	}
	if len(c.Matrix) > 0 {
		if len(c.Matrix) != c.Dimension {
			return fmt.Errorf("%w: matrix has %d rows, dimension is %d", ErrInvalid, len(c.Matrix), c.Dimension)
		}
		for i, row := range c.Matrix {
			if len(row) != c.Dimension {
				return fmt.Errorf("%w: matrix row %d has %d entries, dimension is %d", ErrInvalid, i, len(row), c.Dimension)
			}
		}
	}
	if c.Rotation != nil && len(c.Matrix) == 0 && c.Dimension == 3 {
		switch c.Rotation.Axis {
		case "x", "y", "z":
		default:
			return fmt.Errorf("%w: rotation axis must be x, y or z, got %q", ErrInvalid, c.Rotation.Axis)
		}
	}
	_, dim, err := colorize.Lookup(c.Color)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if dim != c.Dimension {
		return fmt.Errorf("%w: color %s is for %dD points", ErrInvalid, c.Color, dim)
	}
	if c.Output.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", ErrInvalid)
	}
	return nil
}

// Target returns the transformation matrix, building it from Rotation when
// Matrix is empty.
func (c *Config) Target() (*mat.Dense, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(c.Matrix) > 0 {
		n := c.Dimension
		data := make([]float64, 0, n*n)
		for _, row := range c.Matrix {
			data = append(data, row...)
		}
		return mat.NewDense(n, n, data), nil
	}
	return Rotation(c.Dimension, c.Rotation.Axis, c.Rotation.Degrees), nil
}

// Rotation returns the rotation matrix by degrees, about axis in 3D.
func Rotation(dim int, axis string, degrees float64) *mat.Dense {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	if dim == 2 {
		return mat.NewDense(2, 2, []float64{
			cos, -sin,
			sin, cos,
		})
	}
	switch axis {
	case "y":
		return mat.NewDense(3, 3, []float64{
			cos, 0, sin,
			0, 1, 0,
			-sin, 0, cos,
		})
	case "z":
		return mat.NewDense(3, 3, []float64{
			cos, -sin, 0,
			sin, cos, 0,
			0, 0, 1,
		})
	default:
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, cos, -sin,
			0, sin, cos,
		})
	}
}

func (c *Config) Clone() *Config {
	out := *c
	if c.Matrix != nil {
		out.Matrix = make([][]float64, len(c.Matrix))
		for i, row := range c.Matrix {
			out.Matrix[i] = append([]float64(nil), row...)
		}
	}
	if c.Rotation != nil {
		r := *c.Rotation
		out.Rotation = &r
	}
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
