package render

import (
	"testing"

	"bezier-stencil/internal/bezier"
	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	cleared []uint8
	drawn   []string
}

func (r *recorder) ClearStencil(v uint8) { r.cleared = append(r.cleared, v) }
func (r *recorder) Draw(d *Drawable)     { r.drawn = append(r.drawn, d.Name) }

func drawable(name string, order int, transparent bool) *Drawable {
	d := NewDrawable(name, geom.Cube(1), shader.Marker())
	d.Order = order
	if transparent {
		b := gputypes.BlendStateAlpha()
		d.State.Blend = &b
	}
	return d
}

func TestRenderOrder(t *testing.T) {
	hidden := drawable("hidden", 0, false)
	hidden.Visible = false
	ds := []*Drawable{
		drawable("ribbon", 0, true),
		drawable("relight", 5, false),
		drawable("terrain", 2, false),
		hidden,
		drawable("line", 0, false),
		drawable("decrement", 4, false),
		drawable("increment", 3, false),
		drawable("handle", 0, false),
	}
	r := &recorder{}
	Render(r, ds)
	want := []string{"line", "handle", "terrain", "increment", "decrement", "relight", "ribbon"}
	if diff := cmp.Diff(want, r.drawn); diff != "" {
		t.Errorf("draw order mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneSharesReferences(t *testing.T) {
	pts := bezier.Points{vmath.V3(1, 2, 3)}
	anchor := &pts[0]
	src := NewDrawable("terrain", geom.Cube(1), shader.Lit())
	src.Values = shader.Values{Points: &pts, Color: shader.Hex(0xaa0000), Alpha: 1}
	src.Anchor = anchor
	src.Order = 2
	src.State.StencilTest = true
	src.State.StencilRef = 1

	c, err := src.Clone("relight")
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if c.Name != "relight" {
		t.Errorf("clone name = %q, want relight", c.Name)
	}
	if c.Mesh != src.Mesh || c.Program != src.Program {
		t.Error("clone does not share mesh and program")
	}
	if c.Values.Points != &pts || c.Anchor != anchor {
		t.Error("clone does not share control points")
	}
	if c.Order != 2 || !c.State.StencilTest || c.State.StencilRef != 1 {
		t.Errorf("clone state = order %d, %+v", c.Order, c.State)
	}

	// Changing the clone's material leaves the source alone.
	c.Values.Color = vmath.V3(1, 1, 1)
	c.State.StencilRef = 2
	if src.Values.Color == c.Values.Color || src.State.StencilRef != 1 {
		t.Error("editing the clone changed the source")
	}
}

func TestTransformFollowsAnchor(t *testing.T) {
	p := vmath.V3(1, 2, 3)
	d := NewDrawable("handle", geom.Cube(1), shader.Marker())
	d.Model = vmath.Translate(vmath.V3(0, 1, 0))
	d.Anchor = &p

	if got := d.Transform().MulPoint(vmath.Vec3{}); got != vmath.V3(1, 3, 3) {
		t.Errorf("origin maps to %v, want (1, 3, 3)", got)
	}
	p.X = 5
	if got := d.Transform().MulPoint(vmath.Vec3{}); got != vmath.V3(5, 3, 3) {
		t.Errorf("after moving the anchor origin maps to %v, want (5, 3, 3)", got)
	}
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	if s.Transparent() || s.StencilTest {
		t.Error("default state must be opaque with stencil off")
	}
	if s.DepthStencil.DepthCompare != gputypes.CompareFunctionLess || !s.DepthStencil.DepthWriteEnabled {
		t.Errorf("default depth = %v write %v, want Less with writes", s.DepthStencil.DepthCompare, s.DepthStencil.DepthWriteEnabled)
	}
	s.SetStencil(gputypes.StencilFaceState{Compare: gputypes.CompareFunctionEqual})
	if s.DepthStencil.StencilFront != s.DepthStencil.StencilBack {
		t.Error("SetStencil must set both faces")
	}
}
