package scene

import (
	"fmt"

	"bezier-stencil/internal/config"
	"bezier-stencil/internal/debug"
	"bezier-stencil/internal/gpu"
	"bezier-stencil/internal/interact"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/vmath"
	"bezier-stencil/internal/world"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 20
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120

	orbitSpeed = 0.005
	zoomStep   = 0.1
	minPitch   = 0.05
	maxPitch   = math32.Pi/2 - 0.05
	minDist    = 2
)

// Scene is the interactive view: an orbiting camera over the world, handle
// dragging, and number keys 1-4 toggling the stencil passes.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	world   *world.World
	drag    *interact.Dragger
	dev     *gpu.Device
	overlay *debug.Debug

	// Orbit around Camera.Target.
	yaw, pitch, dist float32
	orbiting         bool
}

// New returns a scene looking at w from the configured camera. GPU
// resources are created by Init once the window exists.
func New(cfg config.Config, w *world.World, overlay *debug.Debug) *Scene {
	s := &Scene{
		world:       w,
		drag:        interact.NewDragger(w.Curve),
		overlay:     overlay,
		GridVisible: true,
	}
	pos, target := cfg.CameraPosition(), cfg.CameraTarget()
	s.Camera.Target = rl.NewVector3(target.X, target.Y, target.Z)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = cfg.Camera.Fovy
	s.Camera.Projection = rl.CameraPerspective

	off := pos.Sub(target)
	s.dist = off.Len()
	s.yaw = math32.Atan2(off.X, off.Z)
	s.pitch = math32.Asin(off.Y / s.dist)
	s.placeCamera()
	return s
}

// Init creates the GPU device and compiles every program. Call after the
// window is open.
func (s *Scene) Init(cfg config.Config) error {
	rl.SetClipPlanes(float64(cfg.Camera.Near), float64(cfg.Camera.Far))
	s.dev = gpu.New()
	var progs []*shader.Program
	for _, d := range s.world.Drawables() {
		progs = append(progs, d.Program)
	}
	if err := s.dev.Prepare(progs...); err != nil {
		return fmt.Errorf("scene init: %w", err)
	}
	return nil
}

// Close frees GPU resources.
func (s *Scene) Close() {
	if s.dev != nil {
		s.dev.Unload()
	}
}

func (s *Scene) placeCamera() {
	t := s.Camera.Target
	cp := math32.Cos(s.pitch)
	s.Camera.Position = rl.NewVector3(
		t.X+s.dist*cp*math32.Sin(s.yaw),
		t.Y+s.dist*math32.Sin(s.pitch),
		t.Z+s.dist*cp*math32.Cos(s.yaw),
	)
}

func (s *Scene) mouseRay() interact.Ray {
	r := rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
	return interact.Ray{
		Origin: vmath.V3(r.Position.X, r.Position.Y, r.Position.Z),
		Dir:    vmath.V3(r.Direction.X, r.Direction.Y, r.Direction.Z),
	}
}

// Update handles input for one frame.
func (s *Scene) Update() {
	ray := s.mouseRay()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		// A press on a handle starts a drag; anywhere else orbits.
		s.orbiting = !s.drag.Press(ray)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		s.drag.Release()
		s.orbiting = false
	}

	switch {
	case s.drag.Dragging():
		s.drag.Move(ray)
	case s.orbiting:
		d := rl.GetMouseDelta()
		s.yaw -= d.X * orbitSpeed
		s.pitch = min(max(s.pitch+d.Y*orbitSpeed, minPitch), maxPitch)
		s.drag.Hover(ray)
	default:
		s.drag.Hover(ray)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.dist = max(s.dist*(1-wheel*zoomStep), minDist)
	}
	s.placeCamera()

	for i := 0; i < 4; i++ {
		if rl.IsKeyPressed(int32(rl.KeyOne + i)) {
			s.world.Compositor.Toggle(i)
		}
	}
	if rl.IsKeyPressed(rl.KeyG) {
		s.GridVisible = !s.GridVisible
	}
	if rl.IsKeyPressed(rl.KeyH) {
		s.overlay.SetVisible(!s.overlay.Visible)
	}
	s.overlay.SetStatus(s.status()...)
}

func (s *Scene) status() []string {
	out := []string{fmt.Sprintf("variant %s, relight ref %d",
		s.world.Compositor.Variant(), s.world.Compositor.RelightRef())}
	for i, p := range s.world.Compositor.Passes() {
		mark := "off"
		if p.Enabled {
			mark = "on"
		}
		out = append(out, fmt.Sprintf("[%d] %-9s %s", i+1, p.Name, mark))
	}
	pts := s.world.Curve.Points()
	for i, p := range pts {
		out = append(out, fmt.Sprintf("P%d (%.1f, %.1f, %.1f)", i, p.X, p.Y, p.Z))
	}
	return out
}

// Draw renders the world, the grid and the overlay.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	s.world.Frame(s.dev)
	s.dev.Restore()
	if s.GridVisible {
		drawGrid()
	}
	rl.EndMode3D()
	s.overlay.Draw()
}

// drawGrid draws a reference grid on the XZ plane with major and minor lines.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}
}
