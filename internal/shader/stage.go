package shader

import (
	"bezier-stencil/internal/bezier"
	"bezier-stencil/internal/vmath"

	"github.com/chewxy/math32"
)

// MarkerIndex maps a connector vertex's z to the control point it follows.
func MarkerIndex(z float32) int {
	switch {
	case z < 0.5:
		return 0
	case z < 1.5:
		return 1
	case z < 2.5:
		return 2
	}
	return 3
}

// Transform runs the vertex stage on the CPU: it returns the object-space
// position the GLSL program hands to mvp, and the normal passed to the
// fragment stage. Curve styles need v.Points; positions may come back NaN at
// the vertical-tangent singularity.
func (p *Program) Transform(v *Values, pos, normal vmath.Vec3) (vmath.Vec3, vmath.Vec3) {
	switch p.Style {
	case StyleLine:
		return v.Points.Eval(pos.Z), normal
	case StyleConnector:
		return v.Points[MarkerIndex(pos.Z)], normal
	case StyleExtrude:
		s := v.Points.Evaluate(pos.Z)
		out := s.Position.Sub(s.Normal.Scale(pos.X * 2))
		out.Y = pos.Y
		return out, normal
	}
	return pos, normal
}

// Shade runs the fragment stage on the CPU for a fragment with the given
// interpolated world-space normal.
func (p *Program) Shade(v *Values, normal vmath.Vec3) (vmath.Vec3, float32) {
	if p.Style != StyleLit {
		return v.Color, v.Alpha
	}
	diffuse := math32.Max(normal.Normalize().Dot(v.LightDir.Normalize()), 0)
	rgb := v.Color.Scale(v.Ambient + (1-v.Ambient)*diffuse).Add(v.Emissive)
	return vmath.V3(math32.Min(rgb.X, 1), math32.Min(rgb.Y, 1), math32.Min(rgb.Z, 1)), v.Alpha
}

// NeedsPoints reports whether the vertex stage reads the control points.
func (p *Program) NeedsPoints() bool {
	switch p.Style {
	case StyleLine, StyleConnector, StyleExtrude:
		return true
	}
	return false
}

// data returns the flattened value of a named uniform.
func (v *Values) data(name string) []float32 {
	switch name {
	case UniformPoints:
		if v.Points == nil {
			return make([]float32, 12)
		}
		return v.Points.Flat()
	case UniformColor:
		return v.Color.Array()
	case UniformAlpha:
		return []float32{v.Alpha}
	case UniformEmissive:
		return v.Emissive.Array()
	case UniformLightDir:
		return v.LightDir.Array()
	case UniformAmbient:
		return []float32{v.Ambient}
	}
	return nil
}

// Decode is the inverse of the values a Binder receives: it sets the named
// uniform from its flattened data. Unknown names are ignored.
func (v *Values) Decode(name string, data []float32) {
	vec := func() vmath.Vec3 { return vmath.V3(data[0], data[1], data[2]) }
	switch name {
	case UniformPoints:
		var pts bezier.Points
		for i := range pts {
			pts[i] = vmath.V3(data[3*i], data[3*i+1], data[3*i+2])
		}
		v.Points = &pts
	case UniformColor:
		v.Color = vec()
	case UniformAlpha:
		v.Alpha = data[0]
	case UniformEmissive:
		v.Emissive = vec()
	case UniformLightDir:
		v.LightDir = vec()
	case UniformAmbient:
		v.Ambient = data[0]
	}
}
