// Package vmath holds the small float32 vector and matrix types shared by the
// curve evaluator, the geometry templates and both render devices. It does not
// depend on raylib so everything built on it can run without a GL context.
package vmath

import "github.com/chewxy/math32"

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z float32
}

// Up is the world up axis used when deriving curve normals.
var Up = Vec3{0, 1, 0}

func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. A zero vector yields NaN
// components, the same as GLSL normalize.
func (v Vec3) Normalize() Vec3 {
	return v.Scale(1 / v.Len())
}

// Mix linearly interpolates between a and b as GLSL mix does,
// a*(1-t) + b*t, which returns a and b exactly at t = 0 and t = 1.
func Mix(a, b Vec3, t float32) Vec3 {
	s := 1 - t
	return Vec3{
		a.X*s + b.X*t,
		a.Y*s + b.Y*t,
		a.Z*s + b.Z*t,
	}
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Array returns the components as a slice, the layout uniform uploads expect.
func (v Vec3) Array() []float32 { return []float32{v.X, v.Y, v.Z} }

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Vec4 is a homogeneous clip-space coordinate.
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec3) Vec4(w float32) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

// XYZ drops W without dividing.
func (v Vec4) XYZ() Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (v Vec4) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) && isFinite(v.W)
}

func (v Vec4) Lerp(o Vec4, t float32) Vec4 {
	return Vec4{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
		v.W + (o.W-v.W)*t,
	}
}
