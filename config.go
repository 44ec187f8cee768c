package herofx

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the hero scene. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Particles ParticlesConfig `yaml:"particles"`
	Rings     RingsConfig     `yaml:"rings"`
	Motion    MotionConfig    `yaml:"motion"`
	Intro     IntroConfig     `yaml:"intro"`
	Counter   CounterConfig   `yaml:"counter"`
	Debug     bool            `yaml:"debug"`
}

// CameraConfig configures the perspective camera and pointer follow.
type CameraConfig struct {
	FOV         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Position    Vec3    `yaml:"position"`
	FollowScale float64 `yaml:"follow_scale"`
	FollowLerp  float64 `yaml:"follow_lerp"`
}

// ParticlesConfig configures the particle cloud.
type ParticlesConfig struct {
	Count         int     `yaml:"count"`
	Seed          uint64  `yaml:"seed"`
	Drift         string  `yaml:"drift"`
	WaveFrequency float64 `yaml:"wave_frequency"`
	WaveAmplitude float64 `yaml:"wave_amplitude"`
	WaveStep      float64 `yaml:"wave_step"`
	PointSize     float64 `yaml:"point_size"`
}

// RingsConfig configures the orbiting markers of the ring cluster.
type RingsConfig struct {
	Markers  int     `yaml:"markers"`
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`
	Bob      float64 `yaml:"bob"`
}

// MotionConfig holds the per-frame rates of the decorative objects, in
// radians per frame, and the amplitudes of their oscillations.
type MotionConfig struct {
	BrickYaw      float64 `yaml:"brick_yaw"`
	BrickPitch    float64 `yaml:"brick_pitch"`
	BrickBob      float64 `yaml:"brick_bob"`
	CloudYaw      float64 `yaml:"cloud_yaw"`
	CloudPitch    float64 `yaml:"cloud_pitch"`
	RingsYaw      float64 `yaml:"rings_yaw"`
	RingsRoll     float64 `yaml:"rings_roll"`
	HelixYaw      float64 `yaml:"helix_yaw"`
	MoleculeYaw   float64 `yaml:"molecule_yaw"`
	MoleculePitch float64 `yaml:"molecule_pitch"`
}

// IntroConfig configures the start-up entrance animation. Zero durations
// disable the corresponding effect.
type IntroConfig struct {
	// ScaleIn is how long objects take to grow from zero, in seconds.
	ScaleIn float64 `yaml:"scale_in"`
	// Dolly is how long the camera takes to move from DollyFrom to its
	// configured Z, in seconds.
	Dolly     float64 `yaml:"dolly"`
	DollyFrom float64 `yaml:"dolly_from"`
}

// CounterConfig configures the particle-count readout.
type CounterConfig struct {
	IntervalMS int `yaml:"interval_ms"`
	Steps      int `yaml:"steps"`
}

// DefaultConfig returns the configuration of the original hero visual.
func DefaultConfig() *Config {
	return &Config{
		Camera: CameraConfig{
			FOV:         60,
			Near:        0.1,
			Far:         2000,
			Position:    Vec3{0, 1, 5},
			FollowScale: 0.5,
			FollowLerp:  0.02,
		},
		Particles: ParticlesConfig{
			Count:         500,
			Drift:         "recompute",
			WaveFrequency: 0.5,
			WaveAmplitude: 0.12,
			WaveStep:      0.002,
			PointSize:     0.08,
		},
		Rings: RingsConfig{
			Markers:  6,
			SpeedMin: 0.02,
			SpeedMax: 0.04,
			Bob:      0.3,
		},
		Motion: MotionConfig{
			BrickYaw:      0.005,
			BrickPitch:    0.1,
			BrickBob:      0.1,
			CloudYaw:      0.001,
			CloudPitch:    0.0005,
			RingsYaw:      0.01,
			RingsRoll:     0.2,
			HelixYaw:      0.005,
			MoleculeYaw:   0.008,
			MoleculePitch: 0.2,
		},
		Counter: CounterConfig{
			IntervalMS: 30,
			Steps:      50,
		},
	}
}

// LoadConfig reads a YAML config from path. Missing keys keep their
// DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the config for values the animator cannot use.
func (c *Config) Validate() error {
	switch {
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov %v not in (0, 180): %w", c.Camera.FOV, ErrInvalidConfig)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera near/far %v/%v: %w", c.Camera.Near, c.Camera.Far, ErrInvalidConfig)
	case c.Camera.FollowLerp <= 0 || c.Camera.FollowLerp > 1:
		return fmt.Errorf("camera.follow_lerp %v not in (0, 1]: %w", c.Camera.FollowLerp, ErrInvalidConfig)
	case c.Particles.Count <= 0:
		return fmt.Errorf("particles.count %d: %w", c.Particles.Count, ErrInvalidConfig)
	case c.Rings.SpeedMin <= 0 || c.Rings.SpeedMax < c.Rings.SpeedMin:
		return fmt.Errorf("rings speed range [%v, %v): %w", c.Rings.SpeedMin, c.Rings.SpeedMax, ErrInvalidConfig)
	case c.Rings.Markers < 0:
		return fmt.Errorf("rings.markers %d: %w", c.Rings.Markers, ErrInvalidConfig)
	case c.Counter.Steps <= 0 || c.Counter.IntervalMS <= 0:
		return fmt.Errorf("counter steps/interval %d/%d: %w", c.Counter.Steps, c.Counter.IntervalMS, ErrInvalidConfig)
	case c.Intro.ScaleIn < 0 || c.Intro.Dolly < 0:
		return fmt.Errorf("intro durations must be >= 0: %w", ErrInvalidConfig)
	}
	if _, err := ParseDriftMode(c.Particles.Drift); err != nil {
		return err
	}
	return nil
}

// ParseDriftMode maps a config name to a DriftMode. The empty string means
// DriftRecompute.
func ParseDriftMode(s string) (DriftMode, error) {
	switch s {
	case "", "recompute":
		return DriftRecompute, nil
	case "cumulative":
		return DriftCumulative, nil
	default:
		return 0, fmt.Errorf("particles.drift %q: %w", s, ErrInvalidConfig)
	}
}

// cloudConfig derives the particle cloud configuration.
func (c *Config) cloudConfig() CloudConfig {
	cc := DefaultCloudConfig()
	cc.Count = c.Particles.Count
	cc.Seed = c.Particles.Seed
	cc.WaveFrequency = c.Particles.WaveFrequency
	cc.WaveAmplitude = c.Particles.WaveAmplitude
	cc.WaveStep = c.Particles.WaveStep
	cc.Drift, _ = ParseDriftMode(c.Particles.Drift)
	return cc
}
