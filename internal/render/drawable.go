package render

import (
	"fmt"
	"sort"

	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"

	"github.com/jinzhu/copier"
)

// Drawable is one draw call's worth of geometry, program, uniforms and state.
// Mesh and Program are shared templates. Values.Points and Anchor point into
// the owning curve's control points, so edits show up on the next draw.
type Drawable struct {
	Name    string
	Mesh    *geom.Mesh      `copier:"-"`
	Program *shader.Program `copier:"-"`
	Values  shader.Values
	Model   vmath.Mat4
	// Anchor, when set, translates the model to a control point at draw time.
	Anchor  *vmath.Vec3 `copier:"-"`
	State   PipelineState
	Order   int
	Visible bool
}

// NewDrawable returns a visible drawable with an identity model and DefaultState.
func NewDrawable(name string, mesh *geom.Mesh, prog *shader.Program) *Drawable {
	return &Drawable{
		Name:    name,
		Mesh:    mesh,
		Program: prog,
		Model:   vmath.Identity(),
		State:   DefaultState(),
		Visible: true,
	}
}

// Clone copies d's values, transform and state into a new drawable that
// shares d's mesh, program, control points and anchor.
func (d *Drawable) Clone(name string) (*Drawable, error) {
	c := &Drawable{}
	if err := copier.Copy(c, d); err != nil {
		return nil, fmt.Errorf("clone %s: %w", d.Name, err)
	}
	c.Name = name
	c.Mesh = d.Mesh
	c.Program = d.Program
	c.Anchor = d.Anchor
	c.Values.Points = d.Values.Points
	return c, nil
}

// Transform is the model matrix the draw uses this frame.
func (d *Drawable) Transform() vmath.Mat4 {
	if d.Anchor != nil {
		return vmath.Translate(*d.Anchor).Mul(d.Model)
	}
	return d.Model
}

// Device executes drawables.
type Device interface {
	// ClearStencil resets the whole stencil buffer to v.
	ClearStencil(v uint8)
	// Draw uploads d's uniforms and issues one draw with d's state.
	Draw(d *Drawable)
}

// Sorted returns the visible drawables in the order they must be drawn:
// opaque draws by Order, then transparent draws by Order. Ties keep their
// input order.
func Sorted(ds []*Drawable) []*Drawable {
	out := make([]*Drawable, 0, len(ds))
	for _, d := range ds {
		if d != nil && d.Visible {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].State.Transparent(), out[j].State.Transparent()
		if ti != tj {
			return !ti
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// Render draws ds on dev in Sorted order.
func Render(dev Device, ds []*Drawable) {
	for _, d := range Sorted(ds) {
		dev.Draw(d)
	}
}
