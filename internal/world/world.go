// Package world assembles the scene from a config: the curve over its
// terrain with props resting on it, and the stencil compositor tying them
// together. Both the window and the offline capture draw a World.
package world

import (
	"fmt"

	"bezier-stencil/internal/config"
	"bezier-stencil/internal/curve"
	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/raster"
	"bezier-stencil/internal/render"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/stencil"
	"bezier-stencil/internal/terrain"
	"bezier-stencil/internal/vmath"
)

// Terrain material.
const (
	terrainColor    = 0xaa0000
	terrainEmissive = 0x300000
	ambient         = 0.3
)

// Props are plain white spheres. They draw first, with no stencil state.
const (
	propColor   = 0xffffff
	propOrder   = 0
	propRings   = 10
	propSectors = 10
)

type World struct {
	Curve      *curve.Curve
	Terrain    *render.Drawable
	Props      []*render.Drawable
	Compositor *stencil.Compositor
}

// Build creates everything cfg describes. cfg is expected to be valid.
func Build(cfg config.Config) (*World, error) {
	reg, err := geom.NewRegistry(cfg.GeomOptions())
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	c, err := curve.FromPoints(reg, cfg.CurveOptions(), cfg.ControlPoints())
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	mesh, err := terrain.Generate(cfg.TerrainOptions())
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	lit := shader.Lit()
	ground := render.NewDrawable("terrain", mesh, lit)
	ground.Values = shader.Values{
		Color:    shader.Hex(terrainColor),
		Alpha:    1,
		Emissive: shader.Hex(terrainEmissive),
		LightDir: cfg.LightDirection(),
		Ambient:  ambient,
	}

	sphere := geom.Sphere(cfg.Props.Radius, propRings, propSectors)
	var props []*render.Drawable
	for i, p := range cfg.PropPositions() {
		d := render.NewDrawable(fmt.Sprintf("prop%d", i), sphere, lit)
		d.Model = vmath.Translate(p)
		d.Order = propOrder
		d.Values = shader.Values{
			Color:    shader.Hex(propColor),
			Alpha:    1,
			LightDir: cfg.LightDirection(),
			Ambient:  ambient,
		}
		props = append(props, d)
	}
	opts, err := cfg.StencilOptions()
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	comp, err := stencil.New(ground, c.Extrusion(), opts)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	return &World{Curve: c, Terrain: ground, Props: props, Compositor: comp}, nil
}

// scene is everything drawn besides the compositor's passes.
func (w *World) scene() []*render.Drawable {
	return append(w.Curve.Drawables(), w.Props...)
}

// Drawables lists every drawable a frame may issue, pass drawables included.
func (w *World) Drawables() []*render.Drawable {
	return append(w.scene(), w.Compositor.Drawables()...)
}

// Frame renders one frame of the world on dev.
func (w *World) Frame(dev render.Device) {
	w.Compositor.Frame(dev, w.scene())
}

// Capture renders the world from the configured camera on a software
// device of the given size.
func (w *World) Capture(cfg config.Config, width, height int) *raster.Device {
	dev := raster.New(width, height)
	dev.SetCamera(cfg.View(), cfg.Projection(float32(width)/float32(height)))
	w.Frame(dev)
	return dev
}
