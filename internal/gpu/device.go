// Package gpu is the raylib render.Device. Meshes and programs are uploaded
// on first use, after the window and its GL context exist. Cull, depth
// mask and color mask go through rlgl; the stencil and depth functions are
// called directly in the system GL library through purego.
//
// Draw must be called between rl.BeginMode3D and rl.EndMode3D, which set the
// view and projection raylib folds into mvp.
package gpu

import (
	"errors"
	"fmt"

	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/logger"
	"bezier-stencil/internal/render"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gputypes"
)

// ErrShader is returned when the driver rejects a program's GLSL.
var ErrShader = errors.New("gpu: shader did not compile")

// uploaded keeps the Go-side buffers alive for as long as the GPU mesh is.
type uploaded struct {
	mesh     rl.Mesh
	vertices []float32
	normals  []float32
	indices  []uint16
}

type compiled struct {
	shader rl.Shader
	locs   map[string]int32
}

// Device draws render.Drawables with raylib.
type Device struct {
	gl       *glFuncs
	material rl.Material
	meshes   map[*geom.Mesh]*uploaded
	programs map[*shader.Program]*compiled
}

// New loads the GL stencil entry points. Without them the device still
// draws, but every stencil test passes and nothing is written to the
// stencil buffer.
func New() *Device {
	d := &Device{
		material: rl.LoadMaterialDefault(),
		meshes:   make(map[*geom.Mesh]*uploaded),
		programs: make(map[*shader.Program]*compiled),
	}
	gl, err := loadGL()
	if err != nil {
		logger.Default().Warn("stencil unavailable", "err", err)
	} else {
		d.gl = gl
	}
	return d
}

// HasStencil reports whether stencil state reaches the GPU.
func (d *Device) HasStencil() bool { return d.gl != nil }

func (d *Device) ClearStencil(v uint8) {
	if d.gl == nil {
		return
	}
	rl.DrawRenderBatchActive()
	d.gl.stencilMask(0xff)
	d.gl.clearStencil(int32(v))
	d.gl.clear(glStencilBufferBit)
}

func (d *Device) program(p *shader.Program) *compiled {
	if c, ok := d.programs[p]; ok {
		return c
	}
	c := &compiled{
		shader: rl.LoadShaderFromMemory(p.Vertex, p.Fragment),
		locs:   make(map[string]int32),
	}
	d.programs[p] = c
	return c
}

// Prepare compiles progs ahead of the first frame and reports the first
// one the driver rejects. raylib substitutes its default shader for a program
// that fails to compile, so that counts as a rejection too.
func (d *Device) Prepare(progs ...*shader.Program) error {
	for _, p := range progs {
		sh := d.program(p).shader
		if !rl.IsShaderValid(sh) || sh.ID == rl.GetShaderIdDefault() {
			return fmt.Errorf("compile %s: %w", p.Name, ErrShader)
		}
		logger.Default().Debug("program compiled", "program", p.Name)
	}
	return nil
}

// Locate implements shader.Binder.
func (d *Device) Locate(p *shader.Program, name string) shader.Handle {
	c := d.program(p)
	loc, ok := c.locs[name]
	if !ok {
		loc = rl.GetShaderLocation(c.shader, name)
		c.locs[name] = loc
	}
	return shader.Handle(loc)
}

// UpdateUniform implements shader.Binder.
func (d *Device) UpdateUniform(p *shader.Program, h shader.Handle, u shader.Uniform, data []float32) {
	typ := rl.ShaderUniformFloat
	if u.Type == shader.UniformVec3 {
		typ = rl.ShaderUniformVec3
	}
	rl.SetShaderValueV(d.program(p).shader, int32(h), data, typ, int32(u.Count))
}

func (d *Device) mesh(m *geom.Mesh) *uploaded {
	if u, ok := d.meshes[m]; ok {
		return u
	}
	u := &uploaded{
		vertices: make([]float32, 0, 3*len(m.Positions)),
		normals:  make([]float32, 0, 3*len(m.Positions)),
		indices:  append([]uint16(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		n := vmath.Up
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		u.vertices = append(u.vertices, p.X, p.Y, p.Z)
		u.normals = append(u.normals, n.X, n.Y, n.Z)
	}
	u.mesh = rl.Mesh{
		VertexCount:   int32(len(m.Positions)),
		TriangleCount: int32(len(m.Indices) / 3),
		Vertices:      &u.vertices[0],
		Normals:       &u.normals[0],
	}
	if len(u.indices) > 0 {
		u.mesh.Indices = &u.indices[0]
	}
	rl.UploadMesh(&u.mesh, false)
	d.meshes[m] = u
	logger.Default().Debug("mesh uploaded", "name", m.Name, "vertices", len(m.Positions))
	return u
}

func matrix(m vmath.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// apply sets the fixed-function state of one draw. Stencil state uses the
// front-face settings for both faces; every pass culls the face it does not
// use.
func (d *Device) apply(s *render.PipelineState) {
	switch s.Primitive.CullMode {
	case gputypes.CullModeNone:
		rl.DisableBackfaceCulling()
	case gputypes.CullModeFront:
		rl.EnableBackfaceCulling()
		rl.SetCullFace(0)
	default:
		rl.EnableBackfaceCulling()
		rl.SetCullFace(1)
	}
	cw := s.ColorWrite
	rl.ColorMask(cw&gputypes.ColorWriteMaskRed != 0, cw&gputypes.ColorWriteMaskGreen != 0,
		cw&gputypes.ColorWriteMaskBlue != 0, cw&gputypes.ColorWriteMaskAlpha != 0)
	if s.DepthStencil.DepthWriteEnabled {
		rl.EnableDepthMask()
	} else {
		rl.DisableDepthMask()
	}
	if d.gl == nil {
		return
	}
	ds := &s.DepthStencil
	d.gl.enable(glDepthTest)
	d.gl.depthFunc(glCompare(ds.DepthCompare))
	if !s.StencilTest {
		d.gl.disable(glStencilTest)
		return
	}
	f := ds.StencilFront
	d.gl.enable(glStencilTest)
	d.gl.stencilFunc(glCompare(f.Compare), int32(s.StencilRef), ds.StencilReadMask)
	d.gl.stencilOp(glStencilOp(f.FailOp), glStencilOp(f.DepthFailOp), glStencilOp(f.PassOp))
	d.gl.stencilMask(ds.StencilWriteMask)
}

// Restore puts raylib's defaults back so later raylib drawing (grid,
// overlay) is unaffected by the last pass.
func (d *Device) Restore() {
	rl.DrawRenderBatchActive()
	rl.EnableBackfaceCulling()
	rl.SetCullFace(1)
	rl.ColorMask(true, true, true, true)
	rl.EnableDepthMask()
	if d.gl != nil {
		d.gl.disable(glStencilTest)
		d.gl.depthFunc(glLequal)
		d.gl.stencilMask(0xff)
	}
}

// Draw implements render.Device.
func (d *Device) Draw(dr *render.Drawable) {
	if dr.Mesh == nil || dr.Program == nil {
		return
	}
	// Anything raylib batched so far must be drawn with the state it was
	// queued under.
	rl.DrawRenderBatchActive()
	d.apply(&dr.State)
	prog := d.program(dr.Program)
	shader.Upload(d, dr.Program, &dr.Values)
	model := matrix(dr.Transform())

	if dr.State.Blend != nil {
		rl.BeginBlendMode(rl.BlendAlpha)
		defer rl.EndBlendMode()
	}

	if segs := dr.Mesh.Segments(); segs != nil {
		rl.PushMatrix()
		rl.MultMatrix(model)
		rl.BeginShaderMode(prog.shader)
		rl.Begin(rl.Lines)
		for _, s := range segs {
			a, b := dr.Mesh.Positions[s[0]], dr.Mesh.Positions[s[1]]
			rl.Vertex3f(a.X, a.Y, a.Z)
			rl.Vertex3f(b.X, b.Y, b.Z)
		}
		rl.End()
		rl.EndShaderMode()
		rl.PopMatrix()
		rl.DrawRenderBatchActive()
		return
	}

	mat := d.material
	mat.Shader = prog.shader
	rl.DrawMesh(d.mesh(dr.Mesh).mesh, mat, model)
}

// Unload frees every uploaded mesh and compiled shader.
func (d *Device) Unload() {
	for m, u := range d.meshes {
		rl.UnloadMesh(&u.mesh)
		delete(d.meshes, m)
	}
	for p, c := range d.programs {
		rl.UnloadShader(c.shader)
		delete(d.programs, p)
	}
}
