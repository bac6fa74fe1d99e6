package interact

import (
	"bezier-stencil/internal/logger"
	"bezier-stencil/internal/vmath"
)

// Target is what the dragger edits. *curve.Curve implements it.
type Target interface {
	ControlPoint(i int) *vmath.Vec3
	Height() float32
	HandleSize() float32
	SetHighlight(i int, on bool)
}

const points = 4

// Dragger tracks which handle is hovered and which is being dragged.
// Index -1 means none.
type Dragger struct {
	target Target
	hover  int
	active int
}

func NewDragger(t Target) *Dragger {
	return &Dragger{target: t, hover: -1, active: -1}
}

// Pick returns the index of the nearest handle r hits, or -1.
func (d *Dragger) Pick(r Ray) int {
	best, bestT := -1, float32(0)
	for i := 0; i < points; i++ {
		t, ok := IntersectBox(r, CubeAt(*d.target.ControlPoint(i), d.target.HandleSize()))
		if ok && (best < 0 || t < bestT) {
			best, bestT = i, t
		}
	}
	return best
}

// Hover updates the highlighted handle from the pointer ray. While dragging
// the dragged handle stays highlighted.
func (d *Dragger) Hover(r Ray) int {
	if d.active >= 0 {
		return d.hover
	}
	d.setHover(d.Pick(r))
	return d.hover
}

func (d *Dragger) setHover(i int) {
	if i == d.hover {
		return
	}
	if d.hover >= 0 {
		d.target.SetHighlight(d.hover, false)
	}
	if i >= 0 {
		d.target.SetHighlight(i, true)
	}
	d.hover = i
}

// Press starts dragging the handle under r. It reports whether a drag began.
func (d *Dragger) Press(r Ray) bool {
	i := d.Pick(r)
	if i < 0 {
		return false
	}
	d.setHover(i)
	d.active = i
	logger.Default().Info("drag start", "point", i)
	return true
}

// Move writes the point where r meets the drag plane into the dragged
// control point. It reports whether the point moved.
func (d *Dragger) Move(r Ray) bool {
	if d.active < 0 {
		return false
	}
	p, ok := IntersectPlane(r, HorizontalPlane(d.target.Height()))
	if !ok {
		return false
	}
	*d.target.ControlPoint(d.active) = p
	return true
}

// Release ends the drag, if any.
func (d *Dragger) Release() {
	if d.active < 0 {
		return
	}
	p := *d.target.ControlPoint(d.active)
	logger.Default().Info("drag end", "point", d.active, "x", p.X, "y", p.Y, "z", p.Z)
	d.active = -1
}

// Dragging reports whether a handle is held. Camera navigation is
// suspended while it is.
func (d *Dragger) Dragging() bool { return d.active >= 0 }

// Hovered is the highlighted handle, or -1.
func (d *Dragger) Hovered() int { return d.hover }

// Active is the dragged handle, or -1.
func (d *Dragger) Active() int { return d.active }
