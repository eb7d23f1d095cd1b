package world

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"nbodies/internal/engineconfig"
	"nbodies/internal/sampler"
)

func TestNewScenario(t *testing.T) {
	cfg := engineconfig.Default()
	cfg.Radius = 100
	cfg.BodyCount = 10000
	cfg = cfg.Derive()

	w, err := New(cfg, NewSource(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Len() != 10000 {
		t.Fatalf("Len = %d, want 10000", w.Len())
	}
	w.Each(func(b Body) {
		if b.Position.Len() > 100 {
			t.Fatalf("body %v outside radius", b.Position)
		}
	})
	if mean := w.MeanNorm(); math.Abs(float64(mean)-75) > 1 {
		t.Fatalf("mean norm %v, want about 75", mean)
	}
	if got := w.Stats().Accepted; got != 10000 {
		t.Fatalf("accepted %d, want 10000", got)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := engineconfig.Default().Derive()
	cfg.BodyCount = -3
	if _, err := New(cfg, NewSource(1)); !errors.Is(err, engineconfig.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewNilSource(t *testing.T) {
	cfg := engineconfig.Default().Derive()
	if _, err := New(cfg, nil); !errors.Is(err, sampler.ErrNilSource) {
		t.Fatalf("err = %v, want ErrNilSource", err)
	}
}

func TestZeroRadiusWorld(t *testing.T) {
	cfg := engineconfig.Default()
	cfg.Radius = 0
	cfg.BodyCount = 4
	cfg = cfg.Derive()

	w, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, b := range w.Bodies() {
		if b.Position != (mgl32.Vec3{}) {
			t.Fatalf("body at %v, want origin", b.Position)
		}
	}
}

func TestBodiesReturnsCopy(t *testing.T) {
	w, err := New(engineconfig.Default().Derive(), NewSource(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bodies := w.Bodies()
	orig := bodies[0].Position
	bodies[0].Position = mgl32.Vec3{1e6, 0, 0}
	if w.Bodies()[0].Position != orig {
		t.Fatalf("world body mutated through returned slice")
	}
}

func TestReseedReplacesBatch(t *testing.T) {
	w, err := New(engineconfig.Default().Derive(), NewSource(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first := w.Bodies()
	if err := w.Reseed(NewSource(4)); err != nil {
		t.Fatalf("Reseed: %v", err)
	}
	second := w.Bodies()
	if len(first) != len(second) {
		t.Fatalf("len %d -> %d", len(first), len(second))
	}
	if first[0].Position == second[0].Position {
		t.Fatalf("reseed kept the same positions")
	}
}

func TestCameraStart(t *testing.T) {
	cfg := engineconfig.Default().Derive()
	w, err := New(cfg, NewSource(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	start := w.CameraStart()
	if d := start.Len(); math.Abs(float64(d-cfg.CameraDistance)) > 1e-3 {
		t.Fatalf("start distance %v, want %v", d, cfg.CameraDistance)
	}
	if start.Y() <= 0 || start.Z() >= 0 {
		t.Fatalf("start %v should be above and behind the origin", start)
	}
}

func TestNewBodyScale(t *testing.T) {
	if b := NewBody(mgl32.Vec3{}, 0); b.Scale != 1 {
		t.Fatalf("scale %v, want 1", b.Scale)
	}
	if b := NewBody(mgl32.Vec3{}, 2.5); b.Scale != 2.5 {
		t.Fatalf("scale %v, want 2.5", b.Scale)
	}
}
