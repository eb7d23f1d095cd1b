package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"nbodies/internal/engineconfig"
)

// Run opens the window and drives the main loop. Each frame it calls update with the
// seconds since the previous frame, then clears to black and calls draw.
// ESC is left to the console; the window closes via its close button.
// unload, if set, runs after the last frame while the GL context is still alive.
func Run(win engineconfig.WindowConfig, update func(dt float32), draw func(), unload func()) {
	if win.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	width, height := win.Width, win.Height
	rl.InitWindow(width, height, win.Title)
	defer rl.CloseWindow()
	if win.Fullscreen {
		m := rl.GetCurrentMonitor()
		rl.SetWindowSize(rl.GetMonitorWidth(m), rl.GetMonitorHeight(m))
	}

	rl.SetExitKey(rl.KeyNull)
	if win.TargetFPS > 0 {
		rl.SetTargetFPS(win.TargetFPS)
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	if unload != nil {
		unload()
	}
}

// KeyDown reports whether a key code is held this frame.
func KeyDown(key int32) bool {
	return rl.IsKeyDown(key)
}
