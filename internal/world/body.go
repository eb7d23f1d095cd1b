package world

import "github.com/go-gl/mathgl/mgl32"

// Body is a static point body: a sampled position and the scale it is drawn at.
// Bodies never move after placement.
type Body struct {
	Position mgl32.Vec3
	Scale    float32
}

// NewBody returns a body at position. Non-positive scale falls back to 1.
func NewBody(position mgl32.Vec3, scale float32) Body {
	if scale <= 0 {
		scale = 1
	}
	return Body{Position: position, Scale: scale}
}
