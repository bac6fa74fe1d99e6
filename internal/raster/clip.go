package raster

import "bezier-stencil/internal/vmath"

type vertex struct {
	clip   vmath.Vec4
	normal vmath.Vec3
}

func (v vertex) finite() bool { return v.clip.IsFinite() }

func lerpVertex(a, b vertex, t float32) vertex {
	return vertex{
		clip:   a.clip.Lerp(b.clip, t),
		normal: vmath.Mix(a.normal, b.normal, t),
	}
}

// guard bounds |x| and |y| to guard*w so fixed-point coordinates stay well
// inside int64 range for geometry that grazes the near plane.
const guard = 16

// planes are the clip-space half spaces dist(v) >= 0 a primitive is clipped to:
// near, far and the guard band.
var planes = []func(c vmath.Vec4) float32{
	func(c vmath.Vec4) float32 { return c.Z + c.W },
	func(c vmath.Vec4) float32 { return c.W - c.Z },
	func(c vmath.Vec4) float32 { return guard*c.W - c.X },
	func(c vmath.Vec4) float32 { return guard*c.W + c.X },
	func(c vmath.Vec4) float32 { return guard*c.W - c.Y },
	func(c vmath.Vec4) float32 { return guard*c.W + c.Y },
}

// clipPolygon clips a convex polygon against every plane (Sutherland-Hodgman).
func clipPolygon(poly []vertex) []vertex {
	for _, dist := range planes {
		if len(poly) == 0 {
			return nil
		}
		out := make([]vertex, 0, len(poly)+1)
		for i, cur := range poly {
			prev := poly[(i+len(poly)-1)%len(poly)]
			dc, dp := dist(cur.clip), dist(prev.clip)
			if dc >= 0 {
				if dp < 0 {
					out = append(out, lerpVertex(prev, cur, dp/(dp-dc)))
				}
				out = append(out, cur)
			} else if dp >= 0 {
				out = append(out, lerpVertex(prev, cur, dp/(dp-dc)))
			}
		}
		poly = out
	}
	return poly
}

// clipSegment clips a line segment against every plane. ok is false when
// nothing is left.
func clipSegment(a, b vertex) (vertex, vertex, bool) {
	t0, t1 := float32(0), float32(1)
	for _, dist := range planes {
		da, db := dist(a.clip), dist(b.clip)
		switch {
		case da < 0 && db < 0:
			return a, b, false
		case da < 0:
			t0 = max(t0, da/(da-db))
		case db < 0:
			t1 = min(t1, da/(da-db))
		}
	}
	if t0 > t1 {
		return a, b, false
	}
	return lerpVertex(a, b, t0), lerpVertex(a, b, t1), true
}
