package session

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"nbodies/internal/camera"
	"nbodies/internal/commands"
	"nbodies/internal/engineconfig"
	"nbodies/internal/input"
	"nbodies/internal/logger"
	"nbodies/internal/world"
)

// Session is the per-run state the host drives once per frame: the world, the
// orbit camera and the key bindings. It is owned by the frame loop goroutine.
type Session struct {
	log      *logger.Logger
	world    *world.World
	cam      *camera.State
	camCfg   camera.Config
	bindings input.Bindings
	last     camera.Actions
	display  Display
}

// Display holds the overlay toggles the scene and HUD read every frame.
type Display struct {
	Bounds   bool
	Axes     bool
	Stats    bool
	MemAlloc bool
	Keys     bool
}

// DisplayFrom reads the initial toggles from the config.
func DisplayFrom(cfg engineconfig.WorldConfig) Display {
	return Display{
		Bounds:   cfg.ShowBounds,
		Axes:     cfg.ShowAxes,
		Stats:    cfg.ShowStats,
		MemAlloc: cfg.ShowMemAlloc,
		Keys:     cfg.ShowKeys,
	}
}

func (d *Display) toggle(name string) (*bool, bool) {
	switch name {
	case "bounds":
		return &d.Bounds, true
	case "axes":
		return &d.Axes, true
	case "stats":
		return &d.Stats, true
	case "mem":
		return &d.MemAlloc, true
	case "keys":
		return &d.Keys, true
	}
	return nil, false
}

// New builds the world from cfg and places the camera at its start position.
func New(cfg engineconfig.WorldConfig, log *logger.Logger) (*Session, error) {
	bindings, err := input.BindingsFromNames(cfg.Keys)
	if err != nil {
		return nil, err
	}
	w, err := world.New(cfg, world.NewSource(cfg.Seed))
	if err != nil {
		return nil, err
	}
	s := &Session{
		log:      log,
		world:    w,
		camCfg:   CameraConfigFrom(cfg),
		bindings: bindings,
		display:  DisplayFrom(cfg),
	}
	s.Reset()
	stats := w.Stats()
	log.Infof("placed %d bodies in radius %.1f (%.2f draws per body)", w.Len(), w.Radius(), stats.DrawsPerPoint())
	return s, nil
}

// CameraConfigFrom maps the world config onto the camera tuning.
func CameraConfigFrom(cfg engineconfig.WorldConfig) camera.Config {
	c := camera.DefaultConfig(cfg.CameraSpeed)
	if cfg.BoostFactor > 0 {
		c.BoostFactor = cfg.BoostFactor
	}
	if cfg.MinDistance > 0 {
		c.MinDistance = cfg.MinDistance
	}
	c.AngularSpeed = cfg.AngularSpeed
	return c
}

// Frame resolves the keyboard state and advances the camera by dt seconds.
func (s *Session) Frame(isDown func(input.Key) bool, dt float32) {
	s.last = s.bindings.Resolve(isDown)
	camera.Update(s.cam, camera.Input{Actions: s.last, Dt: dt}, s.world.Target(), s.camCfg)
}

// Idle advances the camera with no input; the camera still re-orients.
func (s *Session) Idle(dt float32) {
	s.last = 0
	camera.Update(s.cam, camera.Input{Dt: dt}, s.world.Target(), s.camCfg)
}

// Reset returns the camera to its start position.
func (s *Session) Reset() {
	s.cam = camera.NewState(s.world.CameraStart(), s.world.Target(), s.camCfg)
}

// Reseed replaces the bodies with a fresh batch. seed == 0 is time based.
func (s *Session) Reseed(seed int64) error {
	if err := s.world.Reseed(world.NewSource(seed)); err != nil {
		return err
	}
	s.log.Infof("reseeded %d bodies (mean distance %.2f)", s.world.Len(), s.world.MeanNorm())
	return nil
}

// SetSpeed changes the camera's linear speed. v must be positive and finite.
func (s *Session) SetSpeed(v float32) error {
	if !engineconfig.Finite(v) || v <= 0 {
		return fmt.Errorf("speed %v must be a positive number", v)
	}
	s.camCfg.Speed = v
	return nil
}

func (s *Session) Camera() camera.State { return *s.cam }

func (s *Session) CameraConfig() camera.Config { return s.camCfg }

func (s *Session) World() *world.World { return s.world }

func (s *Session) Bindings() input.Bindings { return s.bindings }

func (s *Session) Target() mgl32.Vec3 { return s.world.Target() }

func (s *Session) Display() Display { return s.display }

// LastActions is the action set applied on the most recent frame.
func (s *Session) LastActions() camera.Actions { return s.last }

// Distance is the current camera distance from the target.
func (s *Session) Distance() float32 {
	return s.cam.Distance(s.world.Target())
}

// RegisterCommands adds the console commands that act on this session.
func (s *Session) RegisterCommands(reg *commands.Registry) {
	reseed := flag.NewFlagSet("reseed", flag.ContinueOnError)
	reseed.SetOutput(io.Discard)
	seed := reseed.Int64("seed", 0, "random seed (0 = time based)")
	reg.Register("reseed", "place a new batch of bodies [-seed N]", reseed, func([]string) error {
		defer func() { *seed = 0 }()
		return s.Reseed(*seed)
	})

	reg.Register("reset", "move the camera back to its start", nil, func([]string) error {
		s.Reset()
		s.log.Log("camera reset")
		return nil
	})

	reg.Register("speed", "set camera speed: speed <units per second>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("speed: want one value, got %d", len(args))
		}
		v, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return fmt.Errorf("speed: %w", err)
		}
		if err := s.SetSpeed(float32(v)); err != nil {
			return err
		}
		s.log.Infof("camera speed %.2f", v)
		return nil
	})

	reg.Register("show", "toggle an overlay: show bounds|axes|stats|mem|keys [on|off]", nil, func(args []string) error {
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("show: want an overlay name and optional on|off")
		}
		on, ok := s.display.toggle(args[0])
		if !ok {
			return fmt.Errorf("show: unknown overlay %q", args[0])
		}
		if len(args) == 1 {
			*on = !*on
		} else {
			switch args[1] {
			case "on":
				*on = true
			case "off":
				*on = false
			default:
				return fmt.Errorf("show: want on or off, got %q", args[1])
			}
		}
		s.log.Infof("%s %s", args[0], onOff(*on))
		return nil
	})

	reg.Register("keys", "list key bindings", nil, func([]string) error {
		for _, line := range s.bindings.Describe() {
			s.log.Log(line)
		}
		return nil
	})
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
