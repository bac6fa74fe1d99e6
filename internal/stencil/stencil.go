// Package stencil finds, by rasterization alone, the terrain fragments that
// lie inside the curve's extrusion volume and relights them.
//
// Each frame the terrain marks its fragments with BaseRef. The volume is then
// drawn twice without color or depth writes: back faces increment the stencil
// where they are hidden behind the terrain, front faces decrement it. A
// terrain fragment inside the volume sits in front of the volume's back face
// but behind its front face, so it is left at BaseRef+1. Finally the terrain
// is drawn again with depth Equal, only where the stencil holds that value.
package stencil

import (
	"errors"
	"fmt"
	"strings"

	"bezier-stencil/internal/logger"
	"bezier-stencil/internal/render"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
)

// ErrMissingGeometry is returned when the compositor is given no terrain or
// no volume.
var ErrMissingGeometry = errors.New("stencil: terrain and volume are required")

// BaseRef is the value the base pass writes on every terrain fragment.
const BaseRef = 1

// Variant selects the pass layout.
type Variant int

const (
	// FourPass runs all four passes and relights where the stencil is BaseRef+1.
	FourPass Variant = iota
	// ThreePass leaves the increment pass disabled and relights where the
	// stencil still equals BaseRef.
	ThreePass
)

func (v Variant) String() string {
	switch v {
	case FourPass:
		return "four-pass"
	case ThreePass:
		return "three-pass"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant accepts the names String returns.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "four-pass", "fourpass", "4":
		return FourPass, nil
	case "three-pass", "threepass", "3":
		return ThreePass, nil
	}
	return 0, fmt.Errorf("stencil: unknown variant %q", s)
}

// Pass indices into Protocol and Passes.
const (
	PassBase = iota
	PassIncrement
	PassDecrement
	PassRelight
)

// Pass describes one step of the protocol.
type Pass struct {
	Name    string
	Order   int
	Enabled bool
	State   render.PipelineState
}

// Protocol returns the four passes of a variant in draw order.
func Protocol(v Variant) []Pass {
	relightRef := uint8(BaseRef + 1)
	if v == ThreePass {
		relightRef = BaseRef
	}

	base := render.DefaultState()
	base.StencilTest = true
	base.StencilRef = BaseRef
	base.SetStencil(gputypes.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      gputypes.StencilOperationKeep,
		DepthFailOp: gputypes.StencilOperationKeep,
		PassOp:      gputypes.StencilOperationReplace,
	})

	volume := func(cull gputypes.CullMode, depthFail gputypes.StencilOperation) render.PipelineState {
		s := render.DefaultState()
		s.Primitive.CullMode = cull
		s.ColorWrite = gputypes.ColorWriteMaskNone
		s.DepthStencil.DepthWriteEnabled = false
		s.StencilTest = true
		s.SetStencil(gputypes.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      gputypes.StencilOperationKeep,
			DepthFailOp: depthFail,
			PassOp:      gputypes.StencilOperationKeep,
		})
		return s
	}

	relight := render.DefaultState()
	relight.DepthStencil.DepthCompare = gputypes.CompareFunctionEqual
	relight.DepthStencil.DepthWriteEnabled = false
	relight.StencilTest = true
	relight.StencilRef = relightRef
	relight.SetStencil(gputypes.StencilFaceState{
		Compare:     gputypes.CompareFunctionEqual,
		FailOp:      gputypes.StencilOperationKeep,
		DepthFailOp: gputypes.StencilOperationKeep,
		PassOp:      gputypes.StencilOperationKeep,
	})

	return []Pass{
		{Name: "base", Order: 2, Enabled: true, State: base},
		{Name: "increment", Order: 3, Enabled: v != ThreePass,
			State: volume(gputypes.CullModeFront, gputypes.StencilOperationIncrementWrap)},
		{Name: "decrement", Order: 4, Enabled: true,
			State: volume(gputypes.CullModeBack, gputypes.StencilOperationDecrementWrap)},
		{Name: "relight", Order: 5, Enabled: true, State: relight},
	}
}

// Options configures a Compositor.
type Options struct {
	Variant Variant
	// RelightColor is the 0xRRGGBB material of the relit terrain.
	RelightColor uint32
}

func DefaultOptions() Options {
	return Options{Variant: FourPass, RelightColor: 0xffffff}
}

// Compositor owns the drawables of the four passes. The base pass is the
// terrain drawable itself; the others are clones sharing its mesh, or the
// volume's mesh and control points.
type Compositor struct {
	variant Variant
	passes  []Pass
	draws   []*render.Drawable
}

// New prepares the passes for terrain and volume. terrain's state and order
// are overwritten by the base pass.
func New(terrain, volume *render.Drawable, opts Options) (*Compositor, error) {
	if terrain == nil || volume == nil {
		return nil, fmt.Errorf("new compositor: %w", ErrMissingGeometry)
	}
	c := &Compositor{variant: opts.Variant, passes: Protocol(opts.Variant)}

	increment, err := volume.Clone("stencil increment")
	if err != nil {
		return nil, fmt.Errorf("new compositor: %w", err)
	}
	decrement, err := volume.Clone("stencil decrement")
	if err != nil {
		return nil, fmt.Errorf("new compositor: %w", err)
	}
	relight, err := terrain.Clone("relight")
	if err != nil {
		return nil, fmt.Errorf("new compositor: %w", err)
	}
	relight.Values.Color = shader.Hex(opts.RelightColor)
	relight.Values.Emissive = vmath.Vec3{}

	c.draws = []*render.Drawable{terrain, increment, decrement, relight}
	for i, d := range c.draws {
		d.State = c.passes[i].State
		d.Order = c.passes[i].Order
		d.Visible = c.passes[i].Enabled
	}
	logger.Default().Info("stencil compositor ready", "variant", opts.Variant.String(), "relight_ref", c.RelightRef())
	return c, nil
}

// Drawables returns the pass drawables, disabled ones included.
func (c *Compositor) Drawables() []*render.Drawable { return c.draws }

// Passes returns the current pass layout, reflecting SetEnabled.
func (c *Compositor) Passes() []Pass {
	out := make([]Pass, len(c.passes))
	copy(out, c.passes)
	return out
}

func (c *Compositor) Variant() Variant { return c.variant }

// RelightRef is the stencil value the relight pass draws on.
func (c *Compositor) RelightRef() uint8 { return c.passes[PassRelight].State.StencilRef }

// SetEnabled switches pass i on or off. Indices outside the protocol are ignored.
func (c *Compositor) SetEnabled(i int, on bool) {
	if i < 0 || i >= len(c.passes) {
		return
	}
	c.passes[i].Enabled = on
	c.draws[i].Visible = on
	logger.Default().Debug("stencil pass toggled", "pass", c.passes[i].Name, "enabled", on)
}

// Toggle flips pass i and reports its new state.
func (c *Compositor) Toggle(i int) bool {
	if i < 0 || i >= len(c.passes) {
		return false
	}
	on := !c.passes[i].Enabled
	c.SetEnabled(i, on)
	return on
}

// Frame clears the stencil and renders scene together with the passes,
// opaque draws first by order, then transparent ones.
func (c *Compositor) Frame(dev render.Device, scene []*render.Drawable) {
	dev.ClearStencil(0)
	all := make([]*render.Drawable, 0, len(scene)+len(c.draws))
	all = append(all, scene...)
	all = append(all, c.draws...)
	render.Render(dev, all)
}
