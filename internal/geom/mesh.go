// Package geom builds the static vertex layouts the curve programs deform.
// Template vertices carry curve parameters rather than world positions: z is
// the parameter t in [0,1] (or a control-point index for connectors) and x/y
// are offsets across the curve.
package geom

import (
	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
)

// Mesh is CPU-side geometry. Indices index Positions; a LineStrip mesh may
// leave Indices empty and is drawn in vertex order.
type Mesh struct {
	Name      string
	Topology  gputypes.PrimitiveTopology
	Positions []vmath.Vec3
	Normals   []vmath.Vec3
	Indices   []uint16
}

func (m *Mesh) VertexCount() int { return len(m.Positions) }

// Triangles returns the index triples of a triangle list.
func (m *Mesh) Triangles() [][3]uint16 {
	if m.Topology != gputypes.PrimitiveTopologyTriangleList {
		return nil
	}
	out := make([][3]uint16, 0, len(m.Indices)/3)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		out = append(out, [3]uint16{m.Indices[i], m.Indices[i+1], m.Indices[i+2]})
	}
	return out
}

// Segments returns the vertex pairs of a line list or line strip.
func (m *Mesh) Segments() [][2]uint16 {
	switch m.Topology {
	case gputypes.PrimitiveTopologyLineList:
		out := make([][2]uint16, 0, len(m.Indices)/2)
		for i := 0; i+1 < len(m.Indices); i += 2 {
			out = append(out, [2]uint16{m.Indices[i], m.Indices[i+1]})
		}
		return out
	case gputypes.PrimitiveTopologyLineStrip:
		n := len(m.Positions)
		if len(m.Indices) > 0 {
			n = len(m.Indices)
		}
		out := make([][2]uint16, 0, n)
		for i := 0; i+1 < n; i++ {
			a, b := uint16(i), uint16(i+1)
			if len(m.Indices) > 0 {
				a, b = m.Indices[i], m.Indices[i+1]
			}
			out = append(out, [2]uint16{a, b})
		}
		return out
	}
	return nil
}

// appendQuad adds the quad p0..p3 (given in perimeter order) as two
// triangles wound counter-clockwise when seen from the side n points to.
func (m *Mesh) appendQuad(p0, p1, p2, p3, n vmath.Vec3) {
	if p1.Sub(p0).Cross(p2.Sub(p0)).Dot(n) < 0 {
		p1, p3 = p3, p1
	}
	base := uint16(len(m.Positions))
	m.Positions = append(m.Positions, p0, p1, p2, p3)
	m.Normals = append(m.Normals, n, n, n, n)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
