package geom

import (
	"bezier-stencil/internal/vmath"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// Line is segments+1 vertices at (0, 0, i/segments), drawn as a line strip.
func Line(segments int) *Mesh {
	m := &Mesh{Name: "line", Topology: gputypes.PrimitiveTopologyLineStrip}
	for i := 0; i <= segments; i++ {
		m.Positions = append(m.Positions, vmath.V3(0, 0, param(i, segments)))
		m.Normals = append(m.Normals, vmath.Up)
	}
	return m
}

// Ribbon is a 1x1 strip in the XZ plane: x in [-0.5, 0.5], y = 0 and
// z = t in [0, 1], split into segments quads along z. Front faces look up.
func Ribbon(segments int) *Mesh {
	m := &Mesh{Name: "ribbon", Topology: gputypes.PrimitiveTopologyTriangleList}
	for i := 0; i <= segments; i++ {
		z := param(i, segments)
		m.Positions = append(m.Positions, vmath.V3(-0.5, 0, z), vmath.V3(0.5, 0, z))
		m.Normals = append(m.Normals, vmath.Up, vmath.Up)
	}
	for i := 0; i < segments; i++ {
		a := uint16(2 * i)
		b, c, d := a+1, a+2, a+3
		m.Indices = append(m.Indices, a, c, b, b, c, d)
	}
	return m
}

// Box is the extrusion volume template: x in [-width/2, width/2], y in
// [-height/2, height/2], z = t in [0, 1] with segments slices along z. It is
// closed and every face winds counter-clockwise seen from outside.
func Box(width, height float32, segments int) *Mesh {
	m := &Mesh{Name: "extrusion", Topology: gputypes.PrimitiveTopologyTriangleList}
	hx, hy := width/2, height/2
	// Four walls running along z.
	walls := []struct {
		n      vmath.Vec3
		c0, c1 [2]float32
	}{
		{vmath.V3(-1, 0, 0), [2]float32{-hx, -hy}, [2]float32{-hx, hy}},
		{vmath.V3(1, 0, 0), [2]float32{hx, -hy}, [2]float32{hx, hy}},
		{vmath.V3(0, 1, 0), [2]float32{-hx, hy}, [2]float32{hx, hy}},
		{vmath.V3(0, -1, 0), [2]float32{-hx, -hy}, [2]float32{hx, -hy}},
	}
	for _, w := range walls {
		for i := 0; i < segments; i++ {
			z0, z1 := param(i, segments), param(i+1, segments)
			m.appendQuad(
				vmath.V3(w.c0[0], w.c0[1], z0),
				vmath.V3(w.c1[0], w.c1[1], z0),
				vmath.V3(w.c1[0], w.c1[1], z1),
				vmath.V3(w.c0[0], w.c0[1], z1),
				w.n,
			)
		}
	}
	// End caps.
	for _, c := range []struct {
		z float32
		n vmath.Vec3
	}{{0, vmath.V3(0, 0, -1)}, {1, vmath.V3(0, 0, 1)}} {
		m.appendQuad(
			vmath.V3(-hx, -hy, c.z),
			vmath.V3(hx, -hy, c.z),
			vmath.V3(hx, hy, c.z),
			vmath.V3(-hx, hy, c.z),
			c.n,
		)
	}
	return m
}

// Cube is an axis-aligned cube centred on the origin.
func Cube(size float32) *Mesh {
	m := &Mesh{Name: "handle", Topology: gputypes.PrimitiveTopologyTriangleList}
	h := size / 2
	axes := []vmath.Vec3{
		vmath.V3(1, 0, 0), vmath.V3(-1, 0, 0),
		vmath.V3(0, 1, 0), vmath.V3(0, -1, 0),
		vmath.V3(0, 0, 1), vmath.V3(0, 0, -1),
	}
	for _, n := range axes {
		// u and v span the face; n x u = v keeps the perimeter ordered.
		u := vmath.V3(n.Y, n.Z, n.X)
		v := n.Cross(u)
		c := n.Scale(h)
		u, v = u.Scale(h), v.Scale(h)
		m.appendQuad(
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
			n,
		)
	}
	return m
}

// Sphere is a UV sphere of the given radius centred on the origin, with
// rings bands from pole to pole and sectors slices around Y. Normals are the
// unit radii. The pole triangles that would collapse to a line are left out.
func Sphere(radius float32, rings, sectors int) *Mesh {
	m := &Mesh{Name: "sphere", Topology: gputypes.PrimitiveTopologyTriangleList}
	for i := 0; i <= rings; i++ {
		phi := math32.Pi * param(i, rings)
		for j := 0; j <= sectors; j++ {
			theta := 2 * math32.Pi * param(j, sectors)
			n := vmath.V3(math32.Sin(phi)*math32.Cos(theta), math32.Cos(phi), math32.Sin(phi)*math32.Sin(theta))
			m.Positions = append(m.Positions, n.Scale(radius))
			m.Normals = append(m.Normals, n)
		}
	}
	row := uint16(sectors + 1)
	for i := 0; i < rings; i++ {
		for j := 0; j < sectors; j++ {
			a := uint16(i)*row + uint16(j)
			b, c, d := a+row, a+row+1, a+1
			if i < rings-1 {
				m.Indices = append(m.Indices, a, c, b)
			}
			if i > 0 {
				m.Indices = append(m.Indices, a, d, c)
			}
		}
	}
	return m
}

// Connectors is four vertices whose z holds the control-point index 0..3,
// joined as the line list (0,1), (1,2), (2,3).
func Connectors() *Mesh {
	m := &Mesh{Name: "connectors", Topology: gputypes.PrimitiveTopologyLineList}
	for i := 0; i < 4; i++ {
		m.Positions = append(m.Positions, vmath.V3(0, 0, float32(i)))
		m.Normals = append(m.Normals, vmath.Up)
	}
	m.Indices = []uint16{0, 1, 1, 2, 2, 3}
	return m
}

func param(i, segments int) float32 {
	if i == segments {
		return 1
	}
	return float32(i) / float32(segments)
}
