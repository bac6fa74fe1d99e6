package raster

import (
	"image/color"
	"testing"

	"bezier-stencil/internal/geom"
	"bezier-stencil/internal/render"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
)

const size = 64

func newDevice() *Device {
	d := New(size, size)
	d.SetCamera(vmath.Identity(), vmath.Identity())
	return d
}

// quad spans [x0,x1]x[y0,y1] in NDC at depth z, counter-clockwise.
func quad(x0, y0, x1, y1, z float32) *geom.Mesh {
	return &geom.Mesh{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Positions: []vmath.Vec3{
			vmath.V3(x0, y0, z), vmath.V3(x1, y0, z), vmath.V3(x1, y1, z), vmath.V3(x0, y1, z),
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

func flat(name string, m *geom.Mesh, rgb vmath.Vec3) *render.Drawable {
	d := render.NewDrawable(name, m, shader.Marker())
	d.Values = shader.Values{Color: rgb, Alpha: 1}
	d.State.Primitive.CullMode = gputypes.CullModeNone
	return d
}

// counting makes every drawn fragment increment the stencil.
func counting(d *render.Drawable) *render.Drawable {
	d.State.StencilTest = true
	d.State.DepthStencil.DepthCompare = gputypes.CompareFunctionAlways
	d.State.DepthStencil.DepthWriteEnabled = false
	d.State.SetStencil(gputypes.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      gputypes.StencilOperationKeep,
		DepthFailOp: gputypes.StencilOperationKeep,
		PassOp:      gputypes.StencilOperationIncrementWrap,
	})
	return d
}

func TestSharedEdgesCoveredOnce(t *testing.T) {
	// An irregular fan around an off-centre point plus a full-screen quad
	// split along its diagonal.
	centre := vmath.V3(0.137, -0.211, 0)
	rim := []vmath.Vec3{
		vmath.V3(-0.9, -0.83, 0), vmath.V3(0.31, -0.97, 0), vmath.V3(0.93, -0.2, 0),
		vmath.V3(0.71, 0.77, 0), vmath.V3(-0.05, 0.91, 0), vmath.V3(-0.88, 0.4, 0),
	}
	fan := &geom.Mesh{Topology: gputypes.PrimitiveTopologyTriangleList}
	fan.Positions = append([]vmath.Vec3{centre}, rim...)
	for i := range rim {
		fan.Indices = append(fan.Indices, 0, uint16(1+i), uint16(1+(i+1)%len(rim)))
	}

	tests := []struct {
		name     string
		mesh     *geom.Mesh
		coverAll bool
	}{
		{"fan", fan, false},
		{"screen quad", quad(-1, -1, 1, 1, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDevice()
			d.Draw(counting(flat(tt.name, tt.mesh, vmath.V3(1, 1, 1))))
			covered := 0
			for i, s := range d.Stencil() {
				if s > 1 {
					t.Fatalf("pixel %d covered %d times", i, s)
				}
				covered += int(s)
			}
			if tt.coverAll && covered != size*size {
				t.Errorf("covered %d pixels, want %d", covered, size*size)
			}
			if covered == 0 {
				t.Error("nothing covered")
			}
		})
	}
}

func TestCulling(t *testing.T) {
	ccw := quad(-0.5, -0.5, 0.5, 0.5, 0)
	cw := &geom.Mesh{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		Positions: ccw.Positions,
		Indices:   []uint16{0, 2, 1, 0, 3, 2},
	}
	tests := []struct {
		name  string
		mesh  *geom.Mesh
		cull  gputypes.CullMode
		drawn bool
	}{
		{"front kept by back culling", ccw, gputypes.CullModeBack, true},
		{"back removed by back culling", cw, gputypes.CullModeBack, false},
		{"front removed by front culling", ccw, gputypes.CullModeFront, false},
		{"back kept by front culling", cw, gputypes.CullModeFront, true},
		{"no culling", cw, gputypes.CullModeNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDevice()
			dr := counting(flat(tt.name, tt.mesh, vmath.V3(1, 0, 0)))
			dr.State.Primitive.CullMode = tt.cull
			d.Draw(dr)
			if got := d.StencilAt(size/2, size/2) == 1; got != tt.drawn {
				t.Errorf("drawn = %v, want %v", got, tt.drawn)
			}
		})
	}
}

func TestFacingSelectsStencilFace(t *testing.T) {
	ccw := quad(-0.5, -0.5, 0.5, 0.5, 0)
	cw := &geom.Mesh{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		Positions: ccw.Positions,
		Indices:   []uint16{0, 2, 1, 0, 3, 2},
	}
	for _, tt := range []struct {
		name string
		mesh *geom.Mesh
		want uint8
	}{{"front", ccw, 1}, {"back", cw, 255}} {
		t.Run(tt.name, func(t *testing.T) {
			d := newDevice()
			dr := counting(flat(tt.name, tt.mesh, vmath.V3(1, 0, 0)))
			dr.State.DepthStencil.StencilBack.PassOp = gputypes.StencilOperationDecrementWrap
			d.Draw(dr)
			if got := d.StencilAt(size/2, size/2); got != tt.want {
				t.Errorf("stencil = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDepthEqualRedraw(t *testing.T) {
	d := newDevice()
	m := &geom.Mesh{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Positions: []vmath.Vec3{
			vmath.V3(-0.8, -0.7, -0.3), vmath.V3(0.9, -0.6, 0.4), vmath.V3(0.1, 0.85, 0.05),
		},
		Indices: []uint16{0, 1, 2},
	}
	base := flat("base", m, vmath.V3(1, 0, 0))
	d.Draw(base)

	again := flat("again", m, vmath.V3(0, 1, 0))
	again.State.DepthStencil.DepthCompare = gputypes.CompareFunctionEqual
	again.State.DepthStencil.DepthWriteEnabled = false
	d.Draw(again)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := d.Image().RGBAAt(x, y)
			if c.R != 0 {
				t.Fatalf("pixel (%d,%d) = %v: the identical redraw failed the depth Equal test", x, y, c)
			}
		}
	}
	if c := d.Image().RGBAAt(size/2, size/2); c.G != 255 {
		t.Errorf("centre = %v, want the redraw colour", c)
	}
}

func TestDepthFailUpdatesStencil(t *testing.T) {
	d := newDevice()
	d.Draw(flat("occluder", quad(-1, -1, 0, 1, -0.5), vmath.V3(1, 1, 1)))

	behind := counting(flat("behind", quad(-1, -1, 1, 1, 0.5), vmath.V3(1, 0, 0)))
	behind.State.DepthStencil.DepthCompare = gputypes.CompareFunctionLess
	behind.State.SetStencil(gputypes.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      gputypes.StencilOperationKeep,
		DepthFailOp: gputypes.StencilOperationIncrementWrap,
		PassOp:      gputypes.StencilOperationKeep,
	})
	behind.State.ColorWrite = gputypes.ColorWriteMaskNone
	d.Draw(behind)

	if got := d.StencilAt(size/4, size/2); got != 1 {
		t.Errorf("occluded stencil = %d, want 1", got)
	}
	if got := d.StencilAt(3*size/4, size/2); got != 0 {
		t.Errorf("visible stencil = %d, want 0", got)
	}
	if got := d.Image().RGBAAt(3*size/4, size/2); got != (color.RGBA{A: 255}) {
		t.Errorf("colour written with a none mask: %v", got)
	}
	if got := d.DepthAt(3*size/4, size/2); got != 1 {
		t.Errorf("depth = %v, want untouched 1", got)
	}
}

func TestStencilTestAndMasks(t *testing.T) {
	d := newDevice()
	d.ClearStencil(0x0f)

	dr := flat("masked", quad(-1, -1, 1, 1, 0), vmath.V3(0, 0, 1))
	dr.State.StencilTest = true
	dr.State.StencilRef = 0x01
	dr.State.DepthStencil.StencilReadMask = 0x01
	dr.State.DepthStencil.StencilWriteMask = 0xf0
	dr.State.SetStencil(gputypes.StencilFaceState{
		Compare:     gputypes.CompareFunctionEqual,
		FailOp:      gputypes.StencilOperationKeep,
		DepthFailOp: gputypes.StencilOperationKeep,
		PassOp:      gputypes.StencilOperationInvert,
	})
	dr.State.ColorWrite = gputypes.ColorWriteMaskBlue | gputypes.ColorWriteMaskAlpha
	d.Draw(dr)

	// 0x0f & 0x01 == ref & 0x01, so the test passes; only the high nibble
	// takes the inverted value.
	if got := d.StencilAt(1, 1); got != 0xff {
		t.Errorf("stencil = %#x, want 0xff", got)
	}
	if got := d.Image().RGBAAt(1, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("colour = %v, want blue only", got)
	}

	// A failing reference leaves everything alone.
	d.Clear(color.RGBA{A: 255})
	d.ClearStencil(0x02)
	d.Draw(dr)
	if got := d.StencilAt(1, 1); got != 0x02 {
		t.Errorf("stencil after failed test = %#x, want 0x02", got)
	}
	if got := d.Image().RGBAAt(1, 1); got.B != 0 {
		t.Errorf("colour written after failed stencil test: %v", got)
	}
}

func TestAlphaBlend(t *testing.T) {
	d := newDevice()
	dr := flat("glass", quad(-1, -1, 1, 1, 0), vmath.V3(1, 0, 0))
	dr.Values.Alpha = 0.5
	b := gputypes.BlendStateAlpha()
	dr.State.Blend = &b
	d.Draw(dr)
	if got := d.Image().RGBAAt(5, 5); got.R != 128 || got.G != 0 || got.A != 255 {
		t.Errorf("blended colour = %v, want half red over opaque black", got)
	}
}

func TestLineAndClipping(t *testing.T) {
	d := newDevice()
	m := &geom.Mesh{
		Topology:  gputypes.PrimitiveTopologyLineStrip,
		Positions: []vmath.Vec3{vmath.V3(-2, 0.01, 0), vmath.V3(2, 0.01, 0)},
	}
	d.Draw(counting(flat("line", m, vmath.V3(1, 1, 1))))
	row := size/2 - 1
	for x := 0; x < size; x++ {
		if d.StencilAt(x, row) != 1 {
			t.Fatalf("line missing pixel (%d,%d)", x, row)
		}
	}

	// A triangle poking through the near plane is clipped, not dropped.
	near := &geom.Mesh{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		Positions: []vmath.Vec3{
			vmath.V3(-0.5, -0.5, -3), vmath.V3(0.5, -0.5, 0), vmath.V3(0, 0.5, 0),
		},
		Indices: []uint16{0, 1, 2},
	}
	d = newDevice()
	d.Draw(counting(flat("near", near, vmath.V3(1, 1, 1))))
	if d.StencilAt(size/2+4, size/2) != 1 {
		t.Error("clipped triangle not drawn")
	}
}

func TestNonFiniteVerticesDropped(t *testing.T) {
	d := newDevice()
	nan := vmath.Vec3{}.Normalize()
	m := &geom.Mesh{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		Positions: []vmath.Vec3{vmath.V3(-1, -1, 0), nan, vmath.V3(1, 1, 0)},
		Indices:   []uint16{0, 1, 2},
	}
	d.Draw(counting(flat("nan", m, vmath.V3(1, 1, 1))))
	for _, s := range d.Stencil() {
		if s != 0 {
			t.Fatal("a triangle with a NaN vertex was rasterized")
		}
	}
}
