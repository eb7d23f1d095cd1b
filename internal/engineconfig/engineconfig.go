package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"nbodies/internal/env"
)

// WorldConfigPath is the default path to the world config file, relative to the process working directory.
const WorldConfigPath = "config/world.yaml"

// Environment variables that override file values.
const (
	EnvRadius         = "NBODIES_RADIUS"
	EnvBodyCount      = "NBODIES_BODY_COUNT"
	EnvCameraDistance = "NBODIES_CAMERA_DISTANCE"
	EnvCameraSpeed    = "NBODIES_CAMERA_SPEED"
	EnvSeed           = "NBODIES_SEED"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid world config")

// WindowConfig describes the host window.
type WindowConfig struct {
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int32  `yaml:"target_fps"`
}

// WorldConfig is fixed before a session starts. CameraDistance and CameraSpeed
// are derived from Radius when left at zero (see Derive).
type WorldConfig struct {
	Radius    float32 `yaml:"radius"`
	BodyCount int     `yaml:"body_count"`
	BodyScale float32 `yaml:"body_scale"`
	// BodyRadius is the sphere mesh radius at scale 1.
	BodyRadius float32 `yaml:"body_radius"`
	// BodyColor is "#rrggbb".
	BodyColor string `yaml:"body_color"`

	CameraDistance  float32    `yaml:"camera_distance"`
	CameraSpeed     float32    `yaml:"camera_speed"`
	CameraDirection [3]float32 `yaml:"camera_direction,flow"`
	BoostFactor     float32    `yaml:"boost_factor"`
	MinDistance     float32    `yaml:"min_distance"`
	AngularSpeed    float32    `yaml:"angular_speed,omitempty"`

	// Seed == 0 uses a time-based seed.
	Seed int64 `yaml:"seed"`

	Window WindowConfig `yaml:"window"`
	// Display toggles; the console "show" command flips them at runtime.
	ShowBounds   bool `yaml:"show_bounds"`
	ShowAxes     bool `yaml:"show_axes"`
	ShowStats    bool `yaml:"show_stats"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowKeys     bool `yaml:"show_keys"`
	// Keys maps action names (forward, backward, left, right, up, down, boost)
	// to key names. Empty means the default bindings.
	Keys map[string]string `yaml:"keys,omitempty"`
}

// Default returns the stock world: 300 bodies in a radius 50 sphere, camera
// above and behind the origin.
func Default() WorldConfig {
	return WorldConfig{
		Radius:          50,
		BodyCount:       300,
		BodyScale:       1,
		BodyRadius:      0.5,
		BodyColor:       "#ffffff",
		CameraDirection: [3]float32{0, 30, -50},
		BoostFactor:     3,
		MinDistance:     1e-3,
		ShowBounds:      true,
		ShowStats:       true,
		ShowKeys:        true,
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "nbodies",
			TargetFPS: 60,
		},
	}
}

// Load reads a world config from path. Keys absent from the file keep their
// Default() values. A missing file returns Default() and no error; a malformed
// one is an error.
func Load(path string) (WorldConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the directory if needed.
func Save(path string, cfg WorldConfig) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve is the startup path: load the file, apply environment overrides,
// fill derived fields and validate.
func Resolve(path string) (WorldConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg = cfg.Derive()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from NBODIES_* environment variables.
func ApplyEnv(cfg *WorldConfig) error {
	floats := []struct {
		key string
		dst *float32
	}{
		{EnvRadius, &cfg.Radius},
		{EnvCameraDistance, &cfg.CameraDistance},
		{EnvCameraSpeed, &cfg.CameraSpeed},
	}
	for _, f := range floats {
		v, ok, err := env.Float32(f.key)
		if err != nil {
			return err
		}
		if ok {
			*f.dst = v
		}
	}
	if n, ok, err := env.Int(EnvBodyCount); err != nil {
		return err
	} else if ok {
		cfg.BodyCount = n
	}
	if s, ok, err := env.Int64(EnvSeed); err != nil {
		return err
	} else if ok {
		cfg.Seed = s
	}
	return nil
}

// Derive fills CameraDistance (2 x radius) and CameraSpeed (half the distance)
// when they are zero.
func (c WorldConfig) Derive() WorldConfig {
	out := c.Clone()
	if out.CameraDistance == 0 {
		out.CameraDistance = 2 * out.Radius
		if out.CameraDistance <= 0 {
			out.CameraDistance = 1
		}
	}
	if out.CameraSpeed == 0 {
		out.CameraSpeed = 0.5 * out.CameraDistance
	}
	if out.CameraDirection == [3]float32{} {
		out.CameraDirection = Default().CameraDirection
	}
	return out
}

// Validate rejects configs the sampler or camera cannot run with. Every float
// must be finite.
func (c WorldConfig) Validate() error {
	switch {
	case !Finite(c.Radius) || c.Radius < 0:
		return fmt.Errorf("%w: radius %v must be a non-negative number", ErrInvalidConfig, c.Radius)
	case c.BodyCount < 0:
		return fmt.Errorf("%w: body_count %d must not be negative", ErrInvalidConfig, c.BodyCount)
	case !Finite(c.CameraDistance) || c.CameraDistance <= 0:
		return fmt.Errorf("%w: camera_distance %v must be a positive number", ErrInvalidConfig, c.CameraDistance)
	case !Finite(c.CameraSpeed) || c.CameraSpeed <= 0:
		return fmt.Errorf("%w: camera_speed %v must be a positive number", ErrInvalidConfig, c.CameraSpeed)
	case !Finite(c.BoostFactor) || c.BoostFactor < 1:
		return fmt.Errorf("%w: boost_factor %v must be a number of at least 1", ErrInvalidConfig, c.BoostFactor)
	case !Finite(c.MinDistance) || c.MinDistance < 0:
		return fmt.Errorf("%w: min_distance %v must be a non-negative number", ErrInvalidConfig, c.MinDistance)
	case !Finite(c.AngularSpeed) || c.AngularSpeed < 0:
		return fmt.Errorf("%w: angular_speed %v must be a non-negative number", ErrInvalidConfig, c.AngularSpeed)
	case !Finite(c.BodyScale) || c.BodyScale < 0:
		return fmt.Errorf("%w: body_scale %v must be a non-negative number", ErrInvalidConfig, c.BodyScale)
	case !Finite(c.BodyRadius) || c.BodyRadius < 0:
		return fmt.Errorf("%w: body_radius %v must be a non-negative number", ErrInvalidConfig, c.BodyRadius)
	case !Finite(c.CameraDirection[0]) || !Finite(c.CameraDirection[1]) || !Finite(c.CameraDirection[2]):
		return fmt.Errorf("%w: camera_direction %v must be finite", ErrInvalidConfig, c.CameraDirection)
	}
	return nil
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// Clone returns a deep copy; the Keys map is not shared.
func (c WorldConfig) Clone() WorldConfig {
	var out WorldConfig
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		// Same type on both sides; copier has nothing to reject.
		panic(err)
	}
	return out
}
