package graphics

import (
	"bezier-stencil/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the window Run opens.
type Window struct {
	Width, Height int
	Title         string
	FPS           int
	MSAA          bool
}

// Run opens the window and runs the main loop. Each frame it calls update
// (input, camera, drags), then clears the screen and calls draw. init runs
// once after the GL context exists and before the first frame; a non-nil
// error from it closes the window and is returned.
func Run(w Window, init func() error, update, draw func()) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if w.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	if w.FPS > 0 {
		rl.SetTargetFPS(int32(w.FPS))
	}
	logger.Default().Info("window opened", "width", w.Width, "height", w.Height)

	if init != nil {
		if err := init(); err != nil {
			return err
		}
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	logger.Default().Info("window closed")
	return nil
}
