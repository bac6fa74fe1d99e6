// Package bezier evaluates cubic Bezier curves the way the vertex programs do:
// De Casteljau for the position, the same interpolation structure applied to
// the control-point differences for the derivative, and a normal taken
// against the world up axis.
package bezier

import "bezier-stencil/internal/vmath"

// Points are the four control points A, B, C, D in order.
type Points [4]vmath.Vec3

// Sample is one evaluation of the curve.
type Sample struct {
	Position vmath.Vec3
	// Normal is unit length, or NaN where the tangent is parallel to up.
	Normal vmath.Vec3
}

// Eval returns the point at t by repeated linear interpolation.
func Eval(a, b, c, d vmath.Vec3, t float32) vmath.Vec3 {
	e := vmath.Mix(a, b, t)
	f := vmath.Mix(b, c, t)
	g := vmath.Mix(c, d, t)
	h := vmath.Mix(e, f, t)
	i := vmath.Mix(f, g, t)
	return vmath.Mix(h, i, t)
}

// Derivative returns dP/dt at t. The interpolated differences give dP/dt/3;
// the result is scaled back so it matches a finite difference of Eval.
func Derivative(a, b, c, d vmath.Vec3, t float32) vmath.Vec3 {
	de := b.Sub(a)
	df := c.Sub(b)
	dg := d.Sub(c)
	dh := vmath.Mix(de, df, t)
	di := vmath.Mix(df, dg, t)
	return vmath.Mix(dh, di, t).Scale(3)
}

// Normal is normalize(cross(dP/dt, up)). It lies in the horizontal plane and
// is NaN when the tangent is vertical or zero.
func Normal(a, b, c, d vmath.Vec3, t float32) vmath.Vec3 {
	return Derivative(a, b, c, d, t).Cross(vmath.Up).Normalize()
}

func Evaluate(a, b, c, d vmath.Vec3, t float32) Sample {
	return Sample{
		Position: Eval(a, b, c, d, t),
		Normal:   Normal(a, b, c, d, t),
	}
}

func (p *Points) Eval(t float32) vmath.Vec3 { return Eval(p[0], p[1], p[2], p[3], t) }

func (p *Points) Derivative(t float32) vmath.Vec3 { return Derivative(p[0], p[1], p[2], p[3], t) }

func (p *Points) Evaluate(t float32) Sample { return Evaluate(p[0], p[1], p[2], p[3], t) }

// Flat returns the points as 12 floats, the layout of a vec3[4] uniform.
func (p *Points) Flat() []float32 {
	out := make([]float32, 0, 12)
	for _, v := range p {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
