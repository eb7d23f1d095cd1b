package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"nbodies/internal/primitives"
	"nbodies/internal/session"
	"nbodies/internal/world"
)

const (
	boundsRings   = 16
	boundsSlices  = 24
	boundsAlpha   = 40
	axisLineAlpha = 160
)

// Scene draws the session's bodies through a raylib camera kept in sync with the
// orbit camera. It never moves the camera itself.
type Scene struct {
	Camera rl.Camera3D

	sess   *session.Session
	bodies *primitives.Registry
}

// New returns a scene for sess with a 45° perspective camera.
func New(sess *session.Session, style primitives.BodyStyle) *Scene {
	s := &Scene{
		sess:   sess,
		bodies: primitives.NewRegistry(style),
	}
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.Sync()
	return s
}

// Sync copies the orbit camera into the raylib camera. Call after every session frame.
func (s *Scene) Sync() {
	cam := s.sess.Camera()
	target := s.sess.Target()
	s.Camera.Position = rl.NewVector3(cam.Position.X(), cam.Position.Y(), cam.Position.Z())
	s.Camera.Target = rl.NewVector3(target.X(), target.Y(), target.Z())
	s.Camera.Up = rl.NewVector3(cam.Up.X(), cam.Up.Y(), cam.Up.Z())
}

// Draw renders the 3D scene. Call after ClearBackground and before 2D overlays.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	defer rl.EndMode3D()

	w := s.sess.World()
	cam := s.sess.Camera()
	// Bodies on the far side of the sphere get the full fade.
	s.bodies.SetView([3]float32(cam.Position), s.sess.Distance()+w.Radius())
	s.bodies.BeginBodies()
	w.Each(func(b world.Body) {
		s.bodies.DrawBody([3]float32(b.Position), b.Scale)
	})

	display := s.sess.Display()
	if display.Bounds && w.Radius() > 0 {
		rl.DrawSphereWires(rl.NewVector3(0, 0, 0), w.Radius(), boundsRings, boundsSlices, rl.NewColor(128, 128, 160, boundsAlpha))
	}
	if display.Axes {
		drawAxes(w.Radius())
	}
}

// Unload releases GPU resources owned by the scene.
func (s *Scene) Unload() {
	s.bodies.Unload()
}

// drawAxes draws X/Y/Z lines through the target (X=red, Y=green, Z=blue).
func drawAxes(extent float32) {
	if extent <= 0 {
		extent = 1
	}
	var start, end rl.Vector3
	start.X, end.X = -extent, extent
	rl.DrawLine3D(start, end, rl.NewColor(220, 80, 80, axisLineAlpha))
	start, end = rl.Vector3{}, rl.Vector3{}
	start.Y, end.Y = -extent, extent
	rl.DrawLine3D(start, end, rl.NewColor(80, 220, 80, axisLineAlpha))
	start, end = rl.Vector3{}, rl.Vector3{}
	start.Z, end.Z = -extent, extent
	rl.DrawLine3D(start, end, rl.NewColor(80, 80, 220, axisLineAlpha))
}
