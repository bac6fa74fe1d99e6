package raster

import (
	"math"

	"bezier-stencil/internal/vmath"

	"github.com/gogpu/gputypes"
)

// Screen positions are snapped to 1/256 pixel.
const (
	subBits = 8
	subOne  = 1 << subBits
	subHalf = subOne / 2
)

type screenVertex struct {
	x, y   int64
	z      float64
	normal vmath.Vec3
}

// toScreen divides by w and maps NDC to the viewport with y pointing down.
// Depth maps NDC z from [-1, 1] to [0, 1].
func (d *Device) toScreen(v vertex) screenVertex {
	w := float64(v.clip.W)
	nx, ny, nz := float64(v.clip.X)/w, float64(v.clip.Y)/w, float64(v.clip.Z)/w
	sx := (nx*0.5 + 0.5) * float64(d.width)
	sy := (0.5 - ny*0.5) * float64(d.height)
	return screenVertex{
		x:      int64(math.Round(sx * subOne)),
		y:      int64(math.Round(sy * subOne)),
		z:      nz*0.5 + 0.5,
		normal: v.normal,
	}
}

// edge is twice the signed area of (a, b, p). With y pointing down it is
// negative when a, b, p run counter-clockwise in NDC.
func edge(a, b screenVertex, px, py int64) int64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// isTopLeft reports whether a->b is a top or left edge of a triangle with
// positive edge area.
func isTopLeft(a, b screenVertex) bool {
	return (a.y == b.y && b.x > a.x) || b.y < a.y
}

func (d *Device) triangle(fr *fragmentState, a, b, c vertex) {
	if !a.finite() || !b.finite() || !c.finite() {
		return
	}
	poly := clipPolygon([]vertex{a, b, c})
	if len(poly) < 3 {
		return
	}
	sv := make([]screenVertex, len(poly))
	for i, v := range poly {
		sv[i] = d.toScreen(v)
	}
	for i := 1; i+1 < len(sv); i++ {
		d.fill(fr, sv[0], sv[i], sv[i+1])
	}
}

func (d *Device) fill(fr *fragmentState, v0, v1, v2 screenVertex) {
	area := edge(v0, v1, v2.x, v2.y)
	if area == 0 {
		return
	}
	front := (area < 0) == (fr.state.Primitive.FrontFace == gputypes.FrontFaceCCW)
	switch fr.state.Primitive.CullMode {
	case gputypes.CullModeBack:
		if !front {
			return
		}
	case gputypes.CullModeFront:
		if front {
			return
		}
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := max(0, int(min(v0.x, v1.x, v2.x)>>subBits)-1)
	maxX := min(d.width-1, int(max(v0.x, v1.x, v2.x)>>subBits)+1)
	minY := max(0, int(min(v0.y, v1.y, v2.y)>>subBits)-1)
	maxY := min(d.height-1, int(max(v0.y, v1.y, v2.y)>>subBits)+1)

	tl0, tl1, tl2 := isTopLeft(v1, v2), isTopLeft(v2, v0), isTopLeft(v0, v1)
	inv := 1 / float64(area)
	for py := minY; py <= maxY; py++ {
		cy := int64(py)<<subBits + subHalf
		for px := minX; px <= maxX; px++ {
			cx := int64(px)<<subBits + subHalf
			w0 := edge(v1, v2, cx, cy)
			if w0 < 0 || (w0 == 0 && !tl0) {
				continue
			}
			w1 := edge(v2, v0, cx, cy)
			if w1 < 0 || (w1 == 0 && !tl1) {
				continue
			}
			w2 := edge(v0, v1, cx, cy)
			if w2 < 0 || (w2 == 0 && !tl2) {
				continue
			}
			l0, l1, l2 := float64(w0)*inv, float64(w1)*inv, float64(w2)*inv
			z := l0*v0.z + l1*v1.z + l2*v2.z
			n := v0.normal.Scale(float32(l0)).
				Add(v1.normal.Scale(float32(l1))).
				Add(v2.normal.Scale(float32(l2)))
			fr.fragment(px, py, float32(z), n, front)
		}
	}
}

// line rasterizes a segment with a DDA, sampling pixel centres and leaving
// out the last pixel so joined segments do not overlap.
func (d *Device) line(fr *fragmentState, a, b vertex) {
	if !a.finite() || !b.finite() {
		return
	}
	a, b, ok := clipSegment(a, b)
	if !ok {
		return
	}
	sa, sb := d.toScreen(a), d.toScreen(b)
	x0, y0 := float64(sa.x)/subOne, float64(sa.y)/subOne
	x1, y1 := float64(sb.x)/subOne, float64(sb.y)/subOne
	steps := int(math.Ceil(max(math.Abs(x1-x0), math.Abs(y1-y0))))
	for i := 0; i < steps; i++ {
		t := (float64(i) + 0.5) / float64(steps)
		px := int(math.Floor(x0 + (x1-x0)*t))
		py := int(math.Floor(y0 + (y1-y0)*t))
		if px < 0 || py < 0 || px >= d.width || py >= d.height {
			continue
		}
		z := sa.z + (sb.z-sa.z)*t
		fr.fragment(px, py, float32(z), sa.normal, true)
	}
}
