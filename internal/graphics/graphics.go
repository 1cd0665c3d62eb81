package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window opened by Run.
type Options struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Background is the clear color: light blue.
var Background = rl.NewColor(173, 216, 230, 255)

// Run opens the window and drives the main loop. init runs once after the GL context exists
// (GPU resources must be created there, not before); if it returns an error the window closes
// and Run returns it. Each frame calls update with the frame time in seconds, then clears the
// screen and calls draw. ESC is left to the console; close via the window button.
func Run(opts Options, init func() error, update func(dt float32), draw func()) error {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable | rl.FlagVsyncHint)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)

	w, h := opts.Width, opts.Height
	rl.InitWindow(w, h, opts.Title)
	defer rl.CloseWindow()
	if opts.Fullscreen {
		rl.SetWindowSize(rl.GetMonitorWidth(0), rl.GetMonitorHeight(0))
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(opts.TargetFPS)

	if init != nil {
		if err := init(); err != nil {
			return err
		}
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(Background)
		draw()
		rl.EndDrawing()
	}
	return nil
}
