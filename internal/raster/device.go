// Package raster is a software render.Device. It runs the programs' CPU
// twins and rasterizes into color, depth and 8-bit stencil buffers with the
// OpenGL per-fragment order (stencil test, depth test, stencil update,
// depth write, blend). Triangles use fixed-point edge functions with the
// top-left fill rule, so a shared edge is covered exactly once. That
// property is what stencil counting relies on.
package raster

import (
	"image"
	"image/color"

	"bezier-stencil/internal/logger"
	"bezier-stencil/internal/render"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"
)

// Device renders into in-memory buffers.
type Device struct {
	width, height int
	color         *image.RGBA
	depth         []float32
	stencil       []uint8
	viewProj      vmath.Mat4

	// uniforms holds what the last shader.Upload pushed, per program.
	uniforms map[*shader.Program]map[string][]float32
}

// New returns a w x h device cleared to black, depth 1 and stencil 0.
func New(w, h int) *Device {
	d := &Device{
		width:    w,
		height:   h,
		color:    image.NewRGBA(image.Rect(0, 0, w, h)),
		depth:    make([]float32, w*h),
		stencil:  make([]uint8, w*h),
		viewProj: vmath.Identity(),
		uniforms: make(map[*shader.Program]map[string][]float32),
	}
	d.Clear(color.RGBA{A: 255})
	return d
}

// SetCamera sets the view and projection used by subsequent draws.
func (d *Device) SetCamera(view, proj vmath.Mat4) {
	d.viewProj = proj.Mul(view)
}

// Clear resets color to c, depth to 1 and stencil to 0.
func (d *Device) Clear(c color.RGBA) {
	for i := 0; i < len(d.color.Pix); i += 4 {
		d.color.Pix[i+0] = c.R
		d.color.Pix[i+1] = c.G
		d.color.Pix[i+2] = c.B
		d.color.Pix[i+3] = c.A
	}
	for i := range d.depth {
		d.depth[i] = 1
	}
	d.ClearStencil(0)
}

func (d *Device) ClearStencil(v uint8) {
	for i := range d.stencil {
		d.stencil[i] = v
	}
}

func (d *Device) Bounds() image.Rectangle { return d.color.Rect }

// Image returns the color buffer. It is the live buffer, not a copy.
func (d *Device) Image() *image.RGBA { return d.color }

func (d *Device) StencilAt(x, y int) uint8 { return d.stencil[y*d.width+x] }

func (d *Device) DepthAt(x, y int) float32 { return d.depth[y*d.width+x] }

// Stencil returns a copy of the stencil buffer, row-major from the top-left.
func (d *Device) Stencil() []uint8 {
	out := make([]uint8, len(d.stencil))
	copy(out, d.stencil)
	return out
}

// Locate resolves uniforms by their position in the program's schema.
func (d *Device) Locate(p *shader.Program, name string) shader.Handle {
	for i, u := range p.Uniforms {
		if u.Name == name {
			return shader.Handle(i)
		}
	}
	return -1
}

// UpdateUniform stores a copy of data, as a GPU would latch it.
func (d *Device) UpdateUniform(p *shader.Program, _ shader.Handle, u shader.Uniform, data []float32) {
	m := d.uniforms[p]
	if m == nil {
		m = make(map[string][]float32)
		d.uniforms[p] = m
	}
	m[u.Name] = append(m[u.Name][:0], data...)
}

// bound rebuilds the values the program sees from its uploaded uniforms.
func (d *Device) bound(p *shader.Program) *shader.Values {
	v := &shader.Values{}
	for name, data := range d.uniforms[p] {
		v.Decode(name, data)
	}
	return v
}

// Draw uploads dr's uniforms and rasterizes its mesh.
func (d *Device) Draw(dr *render.Drawable) {
	if dr.Mesh == nil || dr.Program == nil {
		return
	}
	shader.Upload(d, dr.Program, &dr.Values)
	vals := d.bound(dr.Program)

	model := dr.Transform()
	mvp := d.viewProj.Mul(model)
	verts := make([]vertex, len(dr.Mesh.Positions))
	for i, p := range dr.Mesh.Positions {
		var n vmath.Vec3
		if i < len(dr.Mesh.Normals) {
			n = dr.Mesh.Normals[i]
		}
		pos, nrm := dr.Program.Transform(vals, p, n)
		verts[i] = vertex{
			clip:   mvp.MulVec4(pos.Vec4(1)),
			normal: model.MulVec4(nrm.Vec4(0)).XYZ(),
		}
	}

	fr := fragmentState{dev: d, state: &dr.State, prog: dr.Program, vals: vals}
	if tris := dr.Mesh.Triangles(); tris != nil {
		for _, t := range tris {
			d.triangle(&fr, verts[t[0]], verts[t[1]], verts[t[2]])
		}
	}
	for _, s := range dr.Mesh.Segments() {
		d.line(&fr, verts[s[0]], verts[s[1]])
	}
	logger.Default().Debug("raster draw", "name", dr.Name, "fragments", fr.count)
}
