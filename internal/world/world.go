package world

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"nbodies/internal/engineconfig"
	"nbodies/internal/sampler"
)

// World holds the bodies placed inside the bounding sphere. It is built once at
// startup; Reseed replaces the whole batch.
type World struct {
	cfg    engineconfig.WorldConfig
	bodies []Body
	stats  sampler.Stats
}

// NewSource returns a seeded random source for sampling. seed == 0 uses a time-based seed.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// New validates cfg and samples cfg.BodyCount bodies uniformly inside a sphere of
// cfg.Radius around the origin.
func New(cfg engineconfig.WorldConfig, src sampler.Source) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{cfg: cfg.Clone()}
	if err := w.Reseed(src); err != nil {
		return nil, err
	}
	return w, nil
}

// Reseed draws a fresh batch of body positions from src.
func (w *World) Reseed(src sampler.Source) error {
	points, stats, err := sampler.SampleWithStats(src, w.cfg.Radius, w.cfg.BodyCount)
	if err != nil {
		return fmt.Errorf("place bodies: %w", err)
	}
	bodies := make([]Body, len(points))
	for i, p := range points {
		bodies[i] = NewBody(p, w.cfg.BodyScale)
	}
	w.bodies = bodies
	w.stats = stats
	return nil
}

// Bodies returns a copy of the bodies. Order is stable between Reseed calls.
func (w *World) Bodies() []Body {
	out := make([]Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Each calls fn for every body without copying the slice. Used by the draw loop.
func (w *World) Each(fn func(b Body)) {
	for _, b := range w.bodies {
		fn(b)
	}
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Radius is the bounding sphere radius.
func (w *World) Radius() float32 {
	return w.cfg.Radius
}

// Config returns a copy of the config the world was built from.
func (w *World) Config() engineconfig.WorldConfig {
	return w.cfg.Clone()
}

// Stats reports the sampling work of the last batch.
func (w *World) Stats() sampler.Stats {
	return w.stats
}

// Target is the fixed point the camera orbits: the sphere center.
func (w *World) Target() mgl32.Vec3 {
	return mgl32.Vec3{}
}

// CameraStart is the initial camera position: CameraDistance from the target
// along CameraDirection.
func (w *World) CameraStart() mgl32.Vec3 {
	dir := mgl32.Vec3(w.cfg.CameraDirection)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 30, -50}
	}
	return w.Target().Add(dir.Normalize().Mul(w.cfg.CameraDistance))
}

// MeanNorm is the average distance of the bodies from the target; about 3/4 of the
// radius for a uniform fill.
func (w *World) MeanNorm() float32 {
	if len(w.bodies) == 0 {
		return 0
	}
	var sum float64
	for _, b := range w.bodies {
		sum += float64(b.Position.Sub(w.Target()).Len())
	}
	return float32(sum / float64(len(w.bodies)))
}
