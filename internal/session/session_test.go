package session

import (
	"math"
	"strings"
	"testing"

	"nbodies/internal/camera"
	"nbodies/internal/commands"
	"nbodies/internal/engineconfig"
	"nbodies/internal/input"
	"nbodies/internal/logger"
)

func newSession(t *testing.T) (*Session, *logger.Logger) {
	t.Helper()
	cfg := engineconfig.Default()
	cfg.Radius = 100
	cfg.BodyCount = 200
	cfg.Seed = 1
	cfg = cfg.Derive()
	log := logger.NewAt("")
	s, err := New(cfg, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, log
}

func keysDown(keys ...input.Key) func(input.Key) bool {
	return func(k input.Key) bool {
		for _, d := range keys {
			if d == k {
				return true
			}
		}
		return false
	}
}

func TestNewPlacesCameraAtStart(t *testing.T) {
	s, log := newSession(t)
	if d := s.Distance(); math.Abs(float64(d)-200) > 1e-2 {
		t.Fatalf("distance %v, want 200", d)
	}
	if s.World().Len() != 200 {
		t.Fatalf("bodies %d, want 200", s.World().Len())
	}
	if lines := log.Lines(); len(lines) == 0 || !strings.Contains(lines[0], "placed 200 bodies") {
		t.Fatalf("startup log %v", lines)
	}
}

func TestNewRejectsBadKeys(t *testing.T) {
	cfg := engineconfig.Default().Derive()
	cfg.Keys = map[string]string{"forward": "NOPE"}
	if _, err := New(cfg, logger.NewAt("")); err == nil {
		t.Fatalf("expected binding error")
	}
}

func TestFramePitchScenario(t *testing.T) {
	s, _ := newSession(t)
	start := s.Camera().Position

	s.Frame(keysDown('Q'), 1)

	if got := s.LastActions(); got != camera.Actions(camera.PitchUp) {
		t.Fatalf("actions %v, want up", got)
	}
	pos := s.Camera().Position
	cos := float64(start.Dot(pos)) / (float64(start.Len()) * float64(pos.Len()))
	if angle := math.Acos(math.Min(1, cos)); math.Abs(angle-0.5) > 1e-3 {
		t.Fatalf("rotated %v rad, want 0.5", angle)
	}
	if d := s.Distance(); math.Abs(float64(d)-200) > 1e-2 {
		t.Fatalf("distance %v, want 200", d)
	}
}

func TestIdleKeepsPosition(t *testing.T) {
	s, _ := newSession(t)
	before := s.Camera().Position
	s.Idle(0.5)
	if s.Camera().Position != before {
		t.Fatalf("idle moved camera")
	}
	if s.LastActions() != 0 {
		t.Fatalf("idle left actions %v", s.LastActions())
	}
}

func TestConsoleCommands(t *testing.T) {
	s, log := newSession(t)
	reg := commands.NewRegistry()
	s.RegisterCommands(reg)

	s.Frame(keysDown('W'), 1)
	if d := s.Distance(); math.Abs(float64(d)-100) > 1e-2 {
		t.Fatalf("after dolly distance %v, want 100", d)
	}
	if err := reg.Execute([]string{"reset"}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if d := s.Distance(); math.Abs(float64(d)-200) > 1e-2 {
		t.Fatalf("after reset distance %v, want 200", d)
	}

	if err := reg.Execute([]string{"speed", "10"}); err != nil {
		t.Fatalf("speed: %v", err)
	}
	if s.CameraConfig().Speed != 10 {
		t.Fatalf("speed %v, want 10", s.CameraConfig().Speed)
	}
	if err := reg.Execute([]string{"speed", "0"}); err == nil {
		t.Fatalf("expected error for zero speed")
	}
	if err := reg.Execute([]string{"speed"}); err == nil {
		t.Fatalf("expected error for missing value")
	}

	before := s.World().Bodies()[0].Position
	if err := reg.Execute([]string{"reseed", "-seed", "77"}); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if s.World().Bodies()[0].Position == before {
		t.Fatalf("reseed kept positions")
	}

	n := len(log.Lines())
	if err := reg.Execute([]string{"keys"}); err != nil {
		t.Fatalf("keys: %v", err)
	}
	if got := len(log.Lines()) - n; got != len(camera.AllActions) {
		t.Fatalf("keys logged %d lines, want %d", got, len(camera.AllActions))
	}
}

func TestCameraConfigFrom(t *testing.T) {
	cfg := engineconfig.Default().Derive()
	cfg.BoostFactor = 5
	cfg.AngularSpeed = 0.3
	c := CameraConfigFrom(cfg)
	if c.Speed != cfg.CameraSpeed || c.BoostFactor != 5 || c.AngularSpeed != 0.3 {
		t.Fatalf("got %+v", c)
	}
}

func TestSpeedRejectsNonFinite(t *testing.T) {
	s, _ := newSession(t)
	reg := commands.NewRegistry()
	s.RegisterCommands(reg)
	before := s.CameraConfig().Speed

	for _, v := range []string{"inf", "-inf", "nan", "1e40"} {
		if err := reg.Execute([]string{"speed", v}); err == nil {
			t.Fatalf("speed %s accepted", v)
		}
	}
	if s.CameraConfig().Speed != before {
		t.Fatalf("speed changed to %v", s.CameraConfig().Speed)
	}
	s.Frame(keysDown('A'), 0.016)
	pos := s.Camera().Position
	for i := 0; i < 3; i++ {
		if math.IsNaN(float64(pos[i])) || math.IsInf(float64(pos[i]), 0) {
			t.Fatalf("camera position %v not finite", pos)
		}
	}
}

func TestShowCommandTogglesDisplay(t *testing.T) {
	s, log := newSession(t)
	reg := commands.NewRegistry()
	s.RegisterCommands(reg)

	want := Display{Bounds: true, Stats: true, Keys: true}
	if got := s.Display(); got != want {
		t.Fatalf("initial display %+v, want %+v", got, want)
	}
	if err := reg.Execute([]string{"show", "axes"}); err != nil {
		t.Fatalf("show axes: %v", err)
	}
	if !s.Display().Axes {
		t.Fatalf("axes not toggled on")
	}
	if lines := log.Lines(); !strings.HasSuffix(lines[len(lines)-1], "axes on") {
		t.Fatalf("last log line %q", lines[len(lines)-1])
	}
	if err := reg.Execute([]string{"show", "mem", "on"}); err != nil {
		t.Fatalf("show mem on: %v", err)
	}
	if err := reg.Execute([]string{"show", "bounds", "off"}); err != nil {
		t.Fatalf("show bounds off: %v", err)
	}
	if d := s.Display(); !d.MemAlloc || d.Bounds {
		t.Fatalf("display %+v", d)
	}

	for _, args := range [][]string{
		{"show"},
		{"show", "grid"},
		{"show", "axes", "maybe"},
		{"show", "axes", "on", "now"},
	} {
		if err := reg.Execute(args); err == nil {
			t.Fatalf("%v accepted", args)
		}
	}
}

func TestDisplayFromConfig(t *testing.T) {
	cfg := engineconfig.Default()
	cfg.ShowAxes = true
	cfg.ShowKeys = false
	got := DisplayFrom(cfg)
	want := Display{Bounds: true, Axes: true, Stats: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
