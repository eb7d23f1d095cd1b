package terminal

import (
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"nbodies/internal/commands"
	"nbodies/internal/logger"
)

const (
	BarHeight  = 40
	prompt     = "> "
	fontSize   = 20
	padding    = 8
	lineHeight = fontSize + 4
	// Log lines shown above the input bar.
	visibleLines = 14
	maxLineLen   = 200
	maxHistory   = 32
)

var (
	barColor     = rl.NewColor(40, 40, 40, 255)
	borderColor  = rl.NewColor(80, 80, 80, 255)
	backlogColor = rl.NewColor(24, 24, 24, 220)
)

// Terminal is the console bar at the bottom of the screen, toggled with ESC.
// While open it owns the keyboard and the host feeds the camera no input.
// "help" lists commands; "cmd ..." lines run through the registry.
type Terminal struct {
	log  *logger.Logger
	reg  *commands.Registry
	open bool

	line    string
	history []string
	// cursor indexes history while browsing with Up/Down; len(history) means a fresh line.
	cursor int
}

// New returns a closed Terminal that logs lines and runs "cmd ..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles the ESC toggle and, while open, editing and submitting the line.
// Call once per frame before the camera update.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !t.open {
		return
	}
	t.readText()
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace):
		if _, size := utf8.DecodeLastRuneInString(t.line); size > 0 {
			t.line = t.line[:len(t.line)-size]
		}
	case rl.IsKeyPressed(rl.KeyUp):
		t.browse(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		t.browse(1)
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		line := t.line
		t.line = ""
		t.Submit(line)
	}
}

func (t *Terminal) readText() {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrl && rl.IsKeyPressed(rl.KeyV) {
		t.line += strings.ReplaceAll(rl.GetClipboardText(), "\n", " ")
		return
	}
	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		t.line += string(rune(c))
	}
}

// browse steps through submitted lines; past the newest entry the line is cleared.
func (t *Terminal) browse(step int) {
	if len(t.history) == 0 {
		return
	}
	t.cursor = min(max(t.cursor+step, 0), len(t.history))
	if t.cursor == len(t.history) {
		t.line = ""
		return
	}
	t.line = t.history[t.cursor]
}

func (t *Terminal) remember(line string) {
	if n := len(t.history); n == 0 || t.history[n-1] != line {
		t.history = append(t.history, line)
		if len(t.history) > maxHistory {
			t.history = t.history[len(t.history)-maxHistory:]
		}
	}
	t.cursor = len(t.history)
}

// Submit runs one console line as if typed.
func (t *Terminal) Submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.remember(line)
	t.log.Log(prompt + line)
	if line == "help" {
		for _, u := range t.reg.Usage() {
			t.log.Log("cmd " + u)
		}
		return
	}
	args, ok := commands.Parse(line)
	if !ok {
		t.log.Warnf("not a command (try \"help\")")
		return
	}
	if err := t.reg.Execute(args); err != nil {
		t.log.Errorf("%v", err)
	}
}

// Draw renders the backlog and input bar while the console is open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	w := rl.GetScreenWidth()
	barY := rl.GetScreenHeight() - BarHeight
	top := max(barY-visibleLines*lineHeight, 0)
	if barY > top {
		rl.DrawRectangle(0, int32(top), int32(w), int32(barY-top), backlogColor)
	}

	lines := t.log.Lines()
	if len(lines) > visibleLines {
		lines = lines[len(lines)-visibleLines:]
	}
	for i, line := range lines {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		rl.DrawText(line, padding, int32(top+i*lineHeight+padding), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(w), BarHeight, barColor)
	rl.DrawRectangle(0, int32(barY), int32(w), 1, borderColor)
	rl.DrawText(prompt+t.line+"|", padding, int32(barY+padding), fontSize, rl.White)
}
