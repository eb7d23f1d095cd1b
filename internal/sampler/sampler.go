package sampler

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNegativeRadius = errors.New("sampler: radius must not be negative")
	ErrInvalidRadius  = errors.New("sampler: radius must be finite")
	ErrNegativeCount  = errors.New("sampler: count must not be negative")
	ErrNilSource      = errors.New("sampler: nil randomness source")
)

// Source yields uniform floats in [0, 1). *math/rand.Rand satisfies it, so callers
// can pass rand.New(rand.NewSource(seed)) for reproducible batches.
type Source interface {
	Float32() float32
}

// Stats reports how much work one Sample call did.
// Draws counts candidate points, not individual Float32 calls.
type Stats struct {
	Accepted int
	Draws    int
}

// DrawsPerPoint is the mean number of candidates needed per accepted point.
// For a sphere inside its bounding cube this tends to 6/π (about 1.91).
func (s Stats) DrawsPerPoint() float64 {
	if s.Accepted == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.Accepted)
}

// Sample returns count points distributed uniformly over the volume of the solid
// sphere of the given radius centered at the origin.
func Sample(src Source, radius float32, count int) ([]mgl32.Vec3, error) {
	points, _, err := SampleWithStats(src, radius, count)
	return points, err
}

// SampleWithStats is Sample plus the draw counters. Invalid input is rejected before
// any randomness is consumed.
func SampleWithStats(src Source, radius float32, count int) ([]mgl32.Vec3, Stats, error) {
	if math32.IsNaN(radius) || math32.IsInf(radius, 0) {
		return nil, Stats{}, ErrInvalidRadius
	}
	if radius < 0 {
		return nil, Stats{}, ErrNegativeRadius
	}
	if count < 0 {
		return nil, Stats{}, ErrNegativeCount
	}

	points := make([]mgl32.Vec3, count)
	if count == 0 {
		return points, Stats{}, nil
	}
	// A zero radius collapses the acceptance region to the origin; rejection would
	// never terminate on a continuous source.
	if radius == 0 {
		return points, Stats{Accepted: count}, nil
	}
	if src == nil {
		return nil, Stats{}, ErrNilSource
	}

	var stats Stats
	r2 := radius * radius
	for i := range points {
		for {
			stats.Draws++
			p := mgl32.Vec3{
				uniform(src, radius),
				uniform(src, radius),
				uniform(src, radius),
			}
			if p.LenSqr() <= r2 {
				points[i] = p
				break
			}
		}
	}
	stats.Accepted = count
	return points, stats, nil
}

// uniform draws from [-radius, radius).
func uniform(src Source, radius float32) float32 {
	return (2*src.Float32() - 1) * radius
}
