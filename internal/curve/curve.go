// Package curve is the interactive Bezier object: four control points and
// the drawables that show them. Every drawable reads the same control point
// storage, so writing through ControlPoint moves all of them on the next frame.
package curve

import (
	"errors"
	"fmt"

	"bezier-stencil/internal/bezier"
	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/render"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
)

// ErrControlPoints is returned when a curve is built from anything other
// than four points.
var ErrControlPoints = errors.New("curve: need exactly 4 control points")

// Options sets the curve's placement and colors. Colors are 0xRRGGBB.
type Options struct {
	// Height is the y of the drag plane and of the ribbon.
	Height float32

	LineColor      uint32
	ConnectorColor uint32
	RibbonColor    uint32
	RibbonAlpha    float32
	ExtrusionColor uint32
	// EndColor marks the end points, InnerColor the two inner ones.
	EndColor       uint32
	InnerColor     uint32
	HighlightColor uint32
}

func DefaultOptions() Options {
	return Options{
		Height:         10,
		LineColor:      0xff0000,
		ConnectorColor: 0x888888,
		RibbonColor:    0xff0000,
		RibbonAlpha:    0.5,
		ExtrusionColor: 0x00ff00,
		EndColor:       0xff0000,
		InnerColor:     0x00ff00,
		HighlightColor: 0xffff00,
	}
}

// Draw orders. The stencil passes sit between the handles and the ribbon.
const (
	orderLine      = 0
	orderHandles   = 1
	orderExtrusion = 3
	orderRibbon    = 6
)

// Curve owns the control points and their drawables.
type Curve struct {
	opts   Options
	points *bezier.Points

	line       *render.Drawable
	connectors *render.Drawable
	ribbon     *render.Drawable
	extrusion  *render.Drawable
	handles    [4]*render.Drawable
	handleSize float32
}

// New builds a curve with all four control points at the origin.
func New(reg *geom.Registry, opts Options) (*Curve, error) {
	return FromPoints(reg, opts, make([]vmath.Vec3, 4))
}

// FromPoints builds a curve from exactly four control points.
func FromPoints(reg *geom.Registry, opts Options, pts []vmath.Vec3) (*Curve, error) {
	if len(pts) != 4 {
		return nil, fmt.Errorf("from points: got %d: %w", len(pts), ErrControlPoints)
	}
	c := &Curve{
		opts:       opts,
		points:     &bezier.Points{},
		handleSize: reg.Options().HandleSize,
	}
	copy(c.points[:], pts)

	curveValues := func(rgb uint32, alpha float32) shader.Values {
		return shader.Values{Points: c.points, Color: shader.Hex(rgb), Alpha: alpha}
	}

	c.line = render.NewDrawable("line", reg.Template(geom.KindLine), shader.Line())
	c.line.Values = curveValues(opts.LineColor, 1)
	c.line.Order = orderLine

	c.connectors = render.NewDrawable("connectors", reg.Template(geom.KindConnectors), shader.Connector())
	c.connectors.Values = curveValues(opts.ConnectorColor, 1)
	c.connectors.Order = orderLine

	extrude := shader.Extrude()

	c.ribbon = render.NewDrawable("ribbon", reg.Template(geom.KindRibbon), extrude)
	c.ribbon.Values = curveValues(opts.RibbonColor, opts.RibbonAlpha)
	c.ribbon.Model = vmath.Translate(vmath.V3(0, opts.Height, 0))
	c.ribbon.Order = orderRibbon
	blend := gputypes.BlendStateAlpha()
	c.ribbon.State.Blend = &blend
	c.ribbon.State.Primitive.CullMode = gputypes.CullModeNone
	c.ribbon.State.DepthStencil.DepthWriteEnabled = false

	c.extrusion = render.NewDrawable("extrusion", reg.Template(geom.KindExtrusion), extrude)
	c.extrusion.Values = curveValues(opts.ExtrusionColor, 1)
	c.extrusion.Order = orderExtrusion

	marker := shader.Marker()
	for i := range c.handles {
		h := render.NewDrawable(fmt.Sprintf("handle%d", i), reg.Template(geom.KindHandle), marker)
		h.Values = shader.Values{Color: shader.Hex(c.baseColor(i)), Alpha: 1}
		h.Anchor = &c.points[i]
		h.Order = orderHandles
		c.handles[i] = h
	}
	return c, nil
}

func (c *Curve) baseColor(i int) uint32 {
	if i == 0 || i == len(c.points)-1 {
		return c.opts.EndColor
	}
	return c.opts.InnerColor
}

// ControlPoint returns the storage of point i. Writes through it are the
// only way to move the curve. It panics unless 0 <= i < 4.
func (c *Curve) ControlPoint(i int) *vmath.Vec3 { return &c.points[i] }

// Points returns a copy of the control points.
func (c *Curve) Points() bezier.Points { return *c.points }

// Sample evaluates the curve at t.
func (c *Curve) Sample(t float32) bezier.Sample { return c.points.Evaluate(t) }

// Height is the y of the plane control points are dragged on.
func (c *Curve) Height() float32 { return c.opts.Height }

// HandleSize is the edge length of the handle cubes.
func (c *Curve) HandleSize() float32 { return c.handleSize }

// Drawables returns the visible representations: line, connectors, handles
// and ribbon. The extrusion is left to the stencil compositor.
func (c *Curve) Drawables() []*render.Drawable {
	out := []*render.Drawable{c.line, c.connectors}
	out = append(out, c.handles[:]...)
	return append(out, c.ribbon)
}

// Extrusion is the vertical volume swept along the curve.
func (c *Curve) Extrusion() *render.Drawable { return c.extrusion }

// Handle returns the marker drawable of point i.
func (c *Curve) Handle(i int) *render.Drawable { return c.handles[i] }

// SetHighlight switches handle i between its base color and the highlight.
func (c *Curve) SetHighlight(i int, on bool) {
	rgb := c.baseColor(i)
	if on {
		rgb = c.opts.HighlightColor
	}
	c.handles[i].Values.Color = shader.Hex(rgb)
}
