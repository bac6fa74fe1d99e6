package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bezier-stencil/internal/curve"
	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/stencil"
	"bezier-stencil/internal/terrain"
	"bezier-stencil/internal/vmath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/curve.yaml"

// ErrInvalid is returned for a config that cannot build a scene.
var ErrInvalid = errors.New("config: invalid")

// Config holds everything the viewer and the capture command read at startup.
type Config struct {
	Window  Window  `yaml:"window"`
	Curve   Curve   `yaml:"curve"`
	Terrain Terrain `yaml:"terrain"`
	Props   Props   `yaml:"props"`
	Camera  Camera  `yaml:"camera"`
	Light   Light   `yaml:"light"`
	Stencil Stencil `yaml:"stencil"`
	Log     Log     `yaml:"log"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
	MSAA   bool   `yaml:"msaa"`
}

// Curve sizes the templates and places the control points. Points must hold
// exactly four entries.
type Curve struct {
	Segments        int          `yaml:"segments"`
	Height          float32      `yaml:"height"`
	ExtrusionHeight float32      `yaml:"extrusion_height"`
	HandleSize      float32      `yaml:"handle_size"`
	Points          [][3]float32 `yaml:"points"`
}

type Terrain struct {
	Size        float32 `yaml:"size"`
	Segments    int     `yaml:"segments"`
	HeightScale float32 `yaml:"height_scale"`
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Frequency   float32 `yaml:"frequency"`
	Lacunarity  float32 `yaml:"lacunarity"`
	Gain        float32 `yaml:"gain"`
}

// Props are spheres resting on the terrain. They write depth but take no
// part in the stencil passes.
type Props struct {
	Count  int     `yaml:"count"`
	Radius float32 `yaml:"radius"`
	Seed   int64   `yaml:"seed"`
}

type Camera struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fovy     float32    `yaml:"fovy"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type Light struct {
	Direction [3]float32 `yaml:"direction"`
}

type Stencil struct {
	// Variant is "four-pass" or "three-pass".
	Variant string `yaml:"variant"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the stock scene: the curve over a 30x30 hill patch seen
// from (15, 20, 15).
func Default() Config {
	g := geom.DefaultOptions()
	t := terrain.Default()
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "Bezier stencil", FPS: 60, MSAA: true},
		Curve: Curve{
			Segments:        g.Segments,
			Height:          curve.DefaultOptions().Height,
			ExtrusionHeight: g.ExtrusionHeight,
			HandleSize:      g.HandleSize,
			Points:          [][3]float32{{-5, 10, -5}, {0, 10, 5}, {10, 10, 5}, {10, 10, 10}},
		},
		Terrain: Terrain{
			Size:        t.Size,
			Segments:    t.Segments,
			HeightScale: t.HeightScale,
			Seed:        t.Seed,
			Octaves:     t.Octaves,
			Frequency:   t.Frequency,
			Lacunarity:  t.Lacunarity,
			Gain:        t.Gain,
		},
		Props: Props{Count: 10, Radius: 1, Seed: 2},
		Camera: Camera{
			Position: [3]float32{15, 20, 15},
			Fovy:     75,
			Near:     0.1,
			Far:      1000,
		},
		Light:   Light{Direction: [3]float32{-10, 10, 10}},
		Stencil: Stencil{Variant: stencil.FourPass.String()},
		Log:     Log{File: "logs/curve.txt", Level: "info"},
	}
}

// Load reads the config at path over Default. A missing file yields Default
// and no error; a file that does not parse or validate is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	// Decoding over the defaults keeps values the file leaves out. Lists are
	// replaced whole.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot build a scene.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	case c.Curve.Segments <= 0:
		return fmt.Errorf("curve segments %d: %w", c.Curve.Segments, ErrInvalid)
	case c.Curve.ExtrusionHeight <= 0 || c.Curve.HandleSize <= 0:
		return fmt.Errorf("curve extrusion height %v, handle size %v: %w",
			c.Curve.ExtrusionHeight, c.Curve.HandleSize, ErrInvalid)
	case len(c.Curve.Points) != 4:
		return fmt.Errorf("curve has %d points: %w", len(c.Curve.Points), ErrInvalid)
	case c.Terrain.Size <= 0 || c.Terrain.Segments <= 0 || c.Terrain.HeightScale < 0:
		return fmt.Errorf("terrain size %v, segments %d, height %v: %w",
			c.Terrain.Size, c.Terrain.Segments, c.Terrain.HeightScale, ErrInvalid)
	case c.Props.Count < 0 || c.Props.Radius <= 0:
		return fmt.Errorf("props count %d, radius %v: %w", c.Props.Count, c.Props.Radius, ErrInvalid)
	case c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180:
		return fmt.Errorf("camera fovy %v: %w", c.Camera.Fovy, ErrInvalid)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera near %v, far %v: %w", c.Camera.Near, c.Camera.Far, ErrInvalid)
	}
	if _, err := stencil.ParseVariant(c.Stencil.Variant); err != nil {
		return fmt.Errorf("%w: %w", err, ErrInvalid)
	}
	return nil
}

func vec(a [3]float32) vmath.Vec3 { return vmath.V3(a[0], a[1], a[2]) }

// GeomOptions sizes the shared templates.
func (c Config) GeomOptions() geom.Options {
	return geom.Options{
		Segments:        c.Curve.Segments,
		ExtrusionHeight: c.Curve.ExtrusionHeight,
		HandleSize:      c.Curve.HandleSize,
	}
}

func (c Config) CurveOptions() curve.Options {
	o := curve.DefaultOptions()
	o.Height = c.Curve.Height
	return o
}

// ControlPoints returns the configured points as vectors.
func (c Config) ControlPoints() []vmath.Vec3 {
	out := make([]vmath.Vec3, len(c.Curve.Points))
	for i, p := range c.Curve.Points {
		out[i] = vec(p)
	}
	return out
}

func (c Config) TerrainOptions() terrain.Options {
	t := c.Terrain
	return terrain.Options{
		Size:        t.Size,
		Segments:    t.Segments,
		HeightScale: t.HeightScale,
		Seed:        t.Seed,
		Octaves:     t.Octaves,
		Frequency:   t.Frequency,
		Lacunarity:  t.Lacunarity,
		Gain:        t.Gain,
	}
}

// PropPositions scatters the prop centres over the terrain, resting on y = radius.
func (c Config) PropPositions() []vmath.Vec3 {
	pts := terrain.Scatter(c.Terrain.Size, c.Props.Count, c.Props.Seed)
	for i := range pts {
		pts[i].Y = c.Props.Radius
	}
	return pts
}

// StencilOptions parses the variant. Validate has already rejected unknown names.
func (c Config) StencilOptions() (stencil.Options, error) {
	o := stencil.DefaultOptions()
	v, err := stencil.ParseVariant(c.Stencil.Variant)
	if err != nil {
		return o, err
	}
	o.Variant = v
	return o, nil
}

func (c Config) CameraPosition() vmath.Vec3 { return vec(c.Camera.Position) }

func (c Config) CameraTarget() vmath.Vec3 { return vec(c.Camera.Target) }

func (c Config) LightDirection() vmath.Vec3 { return vec(c.Light.Direction) }

// View and Projection are the camera matrices for an aspect ratio.
func (c Config) View() vmath.Mat4 {
	return vmath.LookAt(c.CameraPosition(), c.CameraTarget(), vmath.Up)
}

func (c Config) Projection(aspect float32) vmath.Mat4 {
	return vmath.Perspective(c.Camera.Fovy, aspect, c.Camera.Near, c.Camera.Far)
}
