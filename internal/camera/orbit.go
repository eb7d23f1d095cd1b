package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// degenerateLen is the length below which a direction is treated as undefined.
const degenerateLen = 1e-8

// Config holds the per-session movement tuning.
type Config struct {
	// Speed is the linear speed in world units per second. It also drives the
	// orbit rate: angular speed is Speed divided by the distance to the target.
	Speed float32
	// BoostFactor multiplies both speeds while Boost is held.
	BoostFactor float32
	// MinDistance floors the distance used to derive the orbit rate.
	MinDistance float32
	// AngularSpeed, when positive, is a fixed orbit rate in radians per second
	// and replaces the distance-derived rate.
	AngularSpeed float32
	// WorldUp is the vertical axis for yaw and roll. Zero means +Y.
	WorldUp mgl32.Vec3
}

// DefaultConfig returns a config with boost 3x, a 1e-3 distance floor and
// distance-derived orbit rate.
func DefaultConfig(speed float32) Config {
	return Config{
		Speed:       speed,
		BoostFactor: 3,
		MinDistance: 1e-3,
		WorldUp:     mgl32.Vec3{0, 1, 0},
	}
}

func (c Config) up() mgl32.Vec3 {
	if c.WorldUp.Len() < degenerateLen {
		return mgl32.Vec3{0, 1, 0}
	}
	return c.WorldUp.Normalize()
}

func (c Config) minDistance() float32 {
	if c.MinDistance > 0 {
		return c.MinDistance
	}
	return 1e-3
}

// Input is one frame of camera input: the resolved actions and the seconds
// elapsed since the previous frame.
type Input struct {
	Actions Actions
	Dt      float32
}

// State is the camera transform. Forward, Right and Up are derived from Position
// and the target on every Update; hosts read them but should not set them.
type State struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
}

// NewState places the camera at position and orients it toward target.
func NewState(position, target mgl32.Vec3, cfg Config) *State {
	s := &State{
		Position: position,
		Forward:  mgl32.Vec3{0, 0, -1},
		Right:    mgl32.Vec3{1, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	s.reorient(target, cfg.up())
	return s
}

// Distance returns the distance from the camera to target.
func (s *State) Distance(target mgl32.Vec3) float32 {
	return s.Position.Sub(target).Len()
}

// View returns the right-handed look-at view matrix toward target.
func (s *State) View(target mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(s.Position, target, s.Up)
}

// Update advances the camera by one frame. The steps run in a fixed order and
// each reads the position left by the previous one:
//
//  1. speeds: linear and angular, boosted when Boost is held
//  2. yaw: orbit about the world up axis through target
//  3. pitch: orbit about the right axis taken from the yawed position
//  4. dolly: straight translation along the view direction
//  5. re-orient to face target (always, even with no input)
//
// Update never fails; degenerate geometry is clamped or skipped.
func Update(s *State, in Input, target mgl32.Vec3, cfg Config) {
	up := cfg.up()
	if dt := in.Dt; dt > 0 && !math32.IsInf(dt, 0) {
		linear, angular := speeds(s, in.Actions, target, cfg)
		yaw(s, in.Actions.axis(YawLeft, YawRight)*angular*dt, target, up)
		pitch(s, in.Actions.axis(PitchUp, PitchDown)*angular*dt, target, up)
		dolly(s, in.Actions.axis(DollyForward, DollyBackward), linear*dt, target)
	}
	s.reorient(target, up)
}

// speeds returns the linear speed and the orbit rate in radians per second.
func speeds(s *State, actions Actions, target mgl32.Vec3, cfg Config) (linear, angular float32) {
	linear = cfg.Speed
	if cfg.AngularSpeed > 0 {
		angular = cfg.AngularSpeed
	} else {
		angular = cfg.Speed / math32.Max(s.Distance(target), cfg.minDistance())
	}
	if actions.Has(Boost) && cfg.BoostFactor > 0 {
		linear *= cfg.BoostFactor
		angular *= cfg.BoostFactor
	}
	return linear, angular
}

// yaw orbits the camera about the world up axis through target. A positive angle
// carries the camera toward its left, so the rotation is by -angle: a right-handed
// turn about +Y would move it right.
func yaw(s *State, angle float32, target, up mgl32.Vec3) {
	if angle == 0 {
		return
	}
	s.orbit(-angle, up, target)
}

// pitch orbits the camera about its current right axis. A positive angle raises
// the camera, hence -angle about forward x up. The right axis must come from the already-yawed position.
func pitch(s *State, angle float32, target, up mgl32.Vec3) {
	if angle == 0 {
		return
	}
	forward := s.facing(target)
	s.Right = rightAxis(forward, up, s.Right)
	s.orbit(-angle, s.Right, target)
}

// dolly moves the camera step units along the view direction, scaled by dir.
func dolly(s *State, dir float32, step float32, target mgl32.Vec3) {
	move := s.facing(target).Mul(dir)
	if move.Len() < degenerateLen {
		return
	}
	s.Position = s.Position.Add(move.Normalize().Mul(step))
}

func (s *State) orbit(angle float32, axis, target mgl32.Vec3) {
	offset := s.Position.Sub(target)
	offset = mgl32.QuatRotate(angle, axis).Rotate(offset)
	s.Position = target.Add(offset)
}

// facing is the unit vector from the camera to target, or the last forward when
// the camera sits on the target.
func (s *State) facing(target mgl32.Vec3) mgl32.Vec3 {
	d := target.Sub(s.Position)
	if d.Len() < degenerateLen {
		return s.Forward
	}
	return d.Normalize()
}

func (s *State) reorient(target, up mgl32.Vec3) {
	s.Forward = s.facing(target)
	s.Right = rightAxis(s.Forward, up, s.Right)
	s.Up = s.Right.Cross(s.Forward).Normalize()
}

// rightAxis is forward x up, falling back to the previous right axis (projected
// off forward) when forward is parallel to up.
func rightAxis(forward, up, prev mgl32.Vec3) mgl32.Vec3 {
	r := forward.Cross(up)
	if r.Len() >= degenerateLen {
		return r.Normalize()
	}
	r = prev.Sub(forward.Mul(prev.Dot(forward)))
	if r.Len() >= degenerateLen {
		return r.Normalize()
	}
	// Any perpendicular will do.
	r = forward.Cross(mgl32.Vec3{1, 0, 0})
	if r.Len() < degenerateLen {
		r = forward.Cross(mgl32.Vec3{0, 0, 1})
	}
	return r.Normalize()
}
