package herofx

import (
	"math"
	"math/rand/v2"
)

// DriftMode selects how the particle cloud's vertical wave is applied.
type DriftMode uint8

const (
	// DriftRecompute sets y = baseY + sin(t + x·k)·amplitude every frame.
	// The wave is bounded and never accumulates.
	DriftRecompute DriftMode = iota
	// DriftCumulative adds sin(t + x·k)·step to y every frame, reproducing
	// the slow unbounded drift of the original visual.
	DriftCumulative
)

// particle holds per-particle state. Unexported; managed by ParticleCloud.
type particle struct {
	pos   Vec3
	base  Vec3
	color Color
	size  float64
}

// CloudConfig controls how a ParticleCloud is sampled and animated.
type CloudConfig struct {
	// Count is the fixed number of particles.
	Count int
	// Shell is the range of distances from the center.
	Shell Range
	// ZOffset is added to every particle's Z after sampling.
	ZOffset float64
	// Palette is sampled uniformly for particle colors.
	Palette []Color
	// Size is the range of per-particle size multipliers.
	Size Range
	// WaveFrequency is k in sin(t + x·k).
	WaveFrequency float64
	// WaveAmplitude is the peak displacement in DriftRecompute mode.
	WaveAmplitude float64
	// WaveStep is the per-frame increment scale in DriftCumulative mode.
	WaveStep float64
	Drift    DriftMode
	// Seed makes sampling deterministic when non-zero.
	Seed uint64
}

// DefaultCloudConfig returns the configuration of the hero particle cloud.
func DefaultCloudConfig() CloudConfig {
	return CloudConfig{
		Count:   500,
		Shell:   Range{8, 20},
		ZOffset: -5,
		Palette: []Color{
			Hex(0x00d4aa),
			Hex(0x667eea),
			Hex(0xffd700),
			Hex(0xff6b6b),
			Hex(0x90ee90),
		},
		Size:          Range{1, 4},
		WaveFrequency: 0.5,
		WaveAmplitude: 0.12,
		WaveStep:      0.002,
		Drift:         DriftRecompute,
	}
}

// ParticleCloud is a fixed-size set of points sampled once at creation.
// Particles are never added or removed afterwards.
type ParticleCloud struct {
	config    CloudConfig
	particles []particle
}

// NewParticleCloud samples cfg.Count particles from a spherical shell.
// A non-positive Count falls back to 500.
func NewParticleCloud(cfg CloudConfig) *ParticleCloud {
	if cfg.Count <= 0 {
		cfg.Count = 500
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = []Color{ColorWhite}
	}
	rng := newRand(cfg.Seed)

	c := &ParticleCloud{
		config:    cfg,
		particles: make([]particle, cfg.Count),
	}
	for i := range c.particles {
		p := &c.particles[i]
		radius := cfg.Shell.Random(rng)
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi

		p.base = Vec3{
			X: radius * math.Sin(phi) * math.Cos(theta),
			Y: radius * math.Sin(phi) * math.Sin(theta),
			Z: radius*math.Cos(phi) + cfg.ZOffset,
		}
		p.pos = p.base
		p.color = cfg.Palette[rng.IntN(len(cfg.Palette))]
		p.size = cfg.Size.Random(rng)
	}
	return c
}

// Len returns the number of particles. It never changes after creation.
func (c *ParticleCloud) Len() int {
	return len(c.particles)
}

// Position returns the current local position of particle i.
func (c *ParticleCloud) Position(i int) Vec3 {
	return c.particles[i].pos
}

// BasePosition returns the sampled rest position of particle i.
func (c *ParticleCloud) BasePosition(i int) Vec3 {
	return c.particles[i].base
}

// Color returns the palette color of particle i.
func (c *ParticleCloud) Color(i int) Color {
	return c.particles[i].color
}

// Size returns the size multiplier of particle i.
func (c *ParticleCloud) Size(i int) float64 {
	return c.particles[i].size
}

// Config returns a pointer to the cloud's config for live tuning.
// Count and the sampling fields have no effect after creation.
func (c *ParticleCloud) Config() *CloudConfig {
	return &c.config
}

// update applies the vertical wave for elapsed time t.
func (c *ParticleCloud) update(t float64) {
	k := c.config.WaveFrequency
	switch c.config.Drift {
	case DriftCumulative:
		step := c.config.WaveStep
		for i := range c.particles {
			p := &c.particles[i]
			p.pos.Y += math.Sin(t+p.pos.X*k) * step
		}
	default:
		amp := c.config.WaveAmplitude
		for i := range c.particles {
			p := &c.particles[i]
			p.pos.Y = p.base.Y + math.Sin(t+p.base.X*k)*amp
		}
	}
}

// Random returns a random float64 in [Min, Max).
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// newRand returns a deterministic source for a non-zero seed and a randomly
// seeded one otherwise.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
