package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the FPS text every N frames to reduce allocations.
	updateInterval = 30
	logLines       = 6
)

// Tailer supplies the most recent log lines.
type Tailer interface {
	Tail(n int) []string
}

// Debug draws the overlay: FPS top-right, status lines top-left and the log
// tail at the bottom. Everything is on by default and toggled with SetVisible.
type Debug struct {
	Visible     bool
	ShowFPS     bool
	log         Tailer
	frameCount  uint32
	lastFpsText string
	status      []string
}

// New returns an overlay reading recent log lines from log (may be nil).
func New(log Tailer) *Debug {
	return &Debug{Visible: true, ShowFPS: true, log: log}
}

func (d *Debug) SetVisible(v bool) { d.Visible = v }

// SetStatus replaces the status lines shown in the top-left corner.
func (d *Debug) SetStatus(lines ...string) { d.status = lines }

// Draw renders the overlay. Call after the 3D scene, outside BeginMode3D.
func (d *Debug) Draw() {
	if !d.Visible {
		return
	}
	d.frameCount++
	if d.ShowFPS && (d.frameCount%updateInterval == 0 || d.lastFpsText == "") {
		d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	if d.ShowFPS {
		w := rl.MeasureText(d.lastFpsText, fontSize)
		rl.DrawText(d.lastFpsText, int32(rl.GetScreenWidth())-w-padding, padding, fontSize, rl.Green)
	}

	y := int32(padding)
	for _, s := range d.status {
		rl.DrawText(s, padding, y, fontSize, rl.RayWhite)
		y += lineHeight
	}

	if d.log == nil {
		return
	}
	lines := d.log.Tail(logLines)
	y = int32(rl.GetScreenHeight()) - padding - int32(len(lines))*lineHeight
	for _, s := range lines {
		rl.DrawText(s, padding, y, fontSize-4, rl.LightGray)
		y += lineHeight
	}
}
