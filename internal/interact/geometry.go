// Package interact turns pointer rays into control-point edits: hover
// picking against the handle cubes and dragging on the horizontal plane
// through the curve.
package interact

import (
	"bezier-stencil/internal/vmath"

	"github.com/chewxy/math32"
)

// Ray is a half line from Origin along Dir. Dir need not be unit length;
// hit distances are in multiples of Dir.
type Ray struct {
	Origin vmath.Vec3
	Dir    vmath.Vec3
}

func (r Ray) At(t float32) vmath.Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// Plane is the set of points p with Normal.p + D = 0.
type Plane struct {
	Normal vmath.Vec3
	D      float32
}

// HorizontalPlane is the plane y = h.
func HorizontalPlane(h float32) Plane {
	return Plane{Normal: vmath.Up, D: -h}
}

// IntersectPlane returns the point where r meets p. ok is false when the ray
// is parallel to the plane or the plane lies behind the origin.
func IntersectPlane(r Ray, p Plane) (vmath.Vec3, bool) {
	den := p.Normal.Dot(r.Dir)
	if math32.Abs(den) < 1e-8 {
		return vmath.Vec3{}, false
	}
	t := -(p.Normal.Dot(r.Origin) + p.D) / den
	if t < 0 {
		return vmath.Vec3{}, false
	}
	return r.At(t), true
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max vmath.Vec3
}

// CubeAt is the box of edge size centred on c.
func CubeAt(c vmath.Vec3, size float32) Box {
	h := vmath.V3(size/2, size/2, size/2)
	return Box{Min: c.Sub(h), Max: c.Add(h)}
}

// IntersectBox returns the distance along r to the first point inside b
// (0 when the origin is inside). It uses the slab method.
func IntersectBox(r Ray, b Box) (float32, bool) {
	tmin, tmax := float32(0), math32.Inf(1)
	o := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float32{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t0, t1 := (lo[i]-o[i])*inv, (hi[i]-o[i])*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = max(tmin, t0)
		tmax = min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
