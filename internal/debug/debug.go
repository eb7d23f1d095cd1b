package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"nbodies/internal/session"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 15
)

// Debug is the HUD in the top-left corner: FPS, camera distance, body count and the
// active actions, with the key bindings under it. What shows follows the session's
// display toggles.
type Debug struct {
	sess       *session.Session
	frameCount uint32
	lines      []string
	help       []string
	memStats   runtime.MemStats
}

// New returns a HUD for sess.
func New(sess *session.Session) *Debug {
	return &Debug{
		sess: sess,
		help: sess.Bindings().Describe(),
	}
}

func (d *Debug) refresh(display session.Display) {
	w := d.sess.World()
	d.lines = d.lines[:0]
	d.lines = append(d.lines,
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("Bodies: %d  radius %.1f", w.Len(), w.Radius()),
		fmt.Sprintf("Distance: %.2f", d.sess.Distance()),
		fmt.Sprintf("Input: %s", d.sess.LastActions()),
	)
	if display.MemAlloc {
		runtime.ReadMemStats(&d.memStats)
		d.lines = append(d.lines, fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)))
	}
}

// Draw renders the enabled overlays. Call after the scene, outside BeginMode3D.
func (d *Debug) Draw() {
	display := d.sess.Display()
	d.frameCount++
	if d.frameCount%updateInterval == 0 || len(d.lines) == 0 {
		d.refresh(display)
	}
	y := int32(padding)
	if display.Stats {
		for _, line := range d.lines {
			rl.DrawText(line, padding, y, fontSize, rl.Green)
			y += lineHeight
		}
	}
	if display.Keys {
		y += lineHeight / 2
		for _, line := range d.help {
			rl.DrawText(line, padding, y, fontSize-4, rl.LightGray)
			y += lineHeight - 4
		}
	}
}
