package herofx

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// maxFrameDelta caps the seconds a single Update may advance the counter,
// the intro and the camera dolly, so a stalled host does not replay them
// in one frame.
const maxFrameDelta = 1.0

// Rasterizer draws a scene as seen by a camera. Render is called once per
// frame from Animator.Render and must not retain scene or cam.
type Rasterizer interface {
	Render(scene *Scene, cam *Camera)
}

// Preparer is implemented by rasterizers that need to allocate resources
// for a scene before the first frame.
type Preparer interface {
	Prepare(scene *Scene) error
}

// Resizer is implemented by rasterizers that track the viewport size.
type Resizer interface {
	Resize(w, h int)
}

// Option configures an Animator.
type Option func(*Animator)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.log = l
		}
	}
}

// WithConfig replaces DefaultConfig. The config is validated by New.
func WithConfig(cfg *Config) Option {
	return func(a *Animator) {
		if cfg != nil {
			a.cfg = cfg
		}
	}
}

// WithDebug enables periodic frame stat logging and transform checks.
func WithDebug(on bool) Option {
	return func(a *Animator) { a.debugOpt = &on }
}

// WithConfigReloads makes the animator apply configs received on ch at the
// start of each frame. See WatchConfig.
func WithConfigReloads(ch <-chan *Config) Option {
	return func(a *Animator) { a.reloads = ch }
}

// WithStartTime sets the instant Tick measures elapsed time from. The
// default is the time New is called.
func WithStartTime(t time.Time) Option {
	return func(a *Animator) { a.start = t }
}

// Animator owns the hero scene and advances it once per frame.
type Animator struct {
	viewport Rect
	raster   Rasterizer
	log      *zap.Logger
	cfg      *Config
	debug    bool
	debugOpt *bool

	scene   *Scene
	camera  *Camera
	decor   *Decor
	pointer Pointer
	counter *Counter
	intro   []*TweenGroup

	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner
	reloads     <-chan *Config

	start   time.Time
	lastT   float64
	started bool
	frame   uint64
	closed  bool

	warnedNonFinite bool
}

// New builds the hero scene for viewport and binds it to r. Any failure
// returns an error wrapping ErrInitialization; no animator is returned.
func New(viewport Rect, r Rasterizer, opts ...Option) (*Animator, error) {
	a := &Animator{
		viewport: viewport,
		raster:   r,
		log:      zap.NewNop(),
		cfg:      DefaultConfig(),
		start:    time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.init(); err != nil {
		a.log.Error("animator init failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	a.log.Info("animator ready",
		zap.Float64("width", viewport.Width),
		zap.Float64("height", viewport.Height),
		zap.Int("particles", a.decor.Cloud.Cloud.Len()),
		zap.Int("markers", len(a.decor.Markers)),
	)
	return a, nil
}

func (a *Animator) init() error {
	if !(a.viewport.Width > 0) || !(a.viewport.Height > 0) {
		return fmt.Errorf("viewport %vx%v: %w", a.viewport.Width, a.viewport.Height, ErrInvalidViewport)
	}
	if a.raster == nil {
		return errors.New("nil rasterizer")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.debug = a.cfg.Debug
	if a.debugOpt != nil {
		a.debug = *a.debugOpt
	}

	a.scene = NewScene()
	setupLighting(a.scene)

	a.camera = NewCamera(a.viewport)
	a.applyCameraConfig()
	a.camera.Position = a.cfg.Camera.Position

	decor, err := buildDecor(a.cfg, newRand(a.cfg.Particles.Seed^0x5bd1e995))
	if err != nil {
		return err
	}
	a.decor = decor
	for _, g := range decor.Groups() {
		a.scene.Add(g)
	}

	if p, ok := a.raster.(Preparer); ok {
		if err := p.Prepare(a.scene); err != nil {
			return fmt.Errorf("prepare rasterizer: %w", err)
		}
	}

	a.counter = NewCounter(time.Duration(a.cfg.Counter.IntervalMS)*time.Millisecond, a.cfg.Counter.Steps)
	a.counter.Start(decor.Cloud.Cloud.Len())
	a.startIntro()
	return nil
}

// startIntro scales every group in from zero and dollies the camera in.
func (a *Animator) startIntro() {
	if d := a.cfg.Intro.ScaleIn; d > 0 {
		for _, g := range a.decor.Groups() {
			g.SetUniformScale(0)
			a.intro = append(a.intro, TweenScale(g, Vec3{1, 1, 1}, float32(d), ease.OutBack))
		}
	}
	if d := a.cfg.Intro.Dolly; d > 0 {
		a.camera.Position.Z = a.cfg.Intro.DollyFrom
		a.camera.DollyTo(a.cfg.Camera.Position.Z, float32(d), ease.OutCubic)
	}
}

func (a *Animator) applyCameraConfig() {
	c := a.camera
	cc := &a.cfg.Camera
	c.FOV = cc.FOV
	c.Near = cc.Near
	c.Far = cc.Far
	c.FollowScale = cc.FollowScale
	c.FollowLerp = cc.FollowLerp
	c.BaseY = cc.Position.Y
	c.MarkDirty()
}

// Frame advances the scene to elapsed time t (seconds) and renders it.
func (a *Animator) Frame(t float64) {
	a.Update(t)
	a.Render()
}

// Tick runs one frame at the elapsed time between the start instant and now.
func (a *Animator) Tick(now time.Time) {
	a.Frame(now.Sub(a.start).Seconds())
}

// Update advances every object, the counter, the intro tweens and the
// camera by one frame. Rotation increments are per frame; t drives the
// oscillations.
func (a *Animator) Update(t float64) {
	if a.closed {
		return
	}
	a.drainReloads()
	if a.testRunner != nil {
		a.testRunner.step(a)
	}
	a.processInjectedInput()

	// A non-finite clock holds the previous frame's time.
	if math.IsNaN(t) || math.IsInf(t, 0) {
		t = a.lastT
	}
	dt := 0.0
	if a.started {
		dt = t - a.lastT
	}
	switch {
	case !(dt > 0):
		dt = 0
	case dt > maxFrameDelta:
		dt = maxFrameDelta
	}
	a.started = true
	a.lastT = t

	a.counter.Update(time.Duration(dt * float64(time.Second)))
	a.updateIntro(float32(dt))
	a.animate(t)

	a.camera.update(a.pointer, float32(dt))
	a.camera.LookAt = Vec3{}
	a.frame++

	a.debugCheckFinite()
}

// animate applies the per-frame motion rules of each group.
func (a *Animator) animate(t float64) {
	m := &a.cfg.Motion
	d := a.decor

	d.Brick.Rotation.Y += m.BrickYaw
	d.Brick.Rotation.X = math.Sin(t*0.5) * m.BrickPitch
	d.Brick.Position.Y = 0.5 + math.Sin(t)*m.BrickBob
	d.Brick.MarkDirty()

	d.Cloud.Rotation.Y += m.CloudYaw
	d.Cloud.Rotation.X += m.CloudPitch
	d.Cloud.MarkDirty()
	d.Cloud.Cloud.update(t)

	d.Rings.Rotation.Y += m.RingsYaw
	d.Rings.Rotation.Z = math.Sin(t*0.5) * m.RingsRoll
	d.Rings.MarkDirty()
	for _, child := range d.Rings.children {
		applyMotion(child)
	}

	d.Helix.Rotation.Y += m.HelixYaw
	d.Helix.MarkDirty()

	d.Molecule.Rotation.Y += m.MoleculeYaw
	d.Molecule.Rotation.X = math.Sin(t*0.7) * m.MoleculePitch
	d.Molecule.MarkDirty()
}

func (a *Animator) updateIntro(dt float32) {
	if len(a.intro) == 0 {
		return
	}
	live := a.intro[:0]
	for _, g := range a.intro {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	a.intro = live
}

// Render submits the scene and camera to the rasterizer.
func (a *Animator) Render() {
	if a.closed {
		return
	}
	a.raster.Render(a.scene, a.camera)
	a.debugLog(a.scene.Stats())
}

// PointerMove records a pointer position in viewport pixels. It takes
// effect on the next Update.
func (a *Animator) PointerMove(px, py float64) {
	a.pointer = NormalizePointer(px, py, a.viewport)
}

// Resize updates the viewport and camera aspect and forwards the new size
// to rasterizers implementing Resizer. Non-positive sizes are rejected and
// leave the animator unchanged.
func (a *Animator) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		a.log.Warn("ignoring resize", zap.Int("width", w), zap.Int("height", h))
		return fmt.Errorf("resize %dx%d: %w", w, h, ErrInvalidViewport)
	}
	vp := Rect{Width: float64(w), Height: float64(h)}
	if vp == a.viewport {
		return nil
	}
	a.viewport = vp
	a.camera.SetViewport(vp)
	if r, ok := a.raster.(Resizer); ok {
		r.Resize(w, h)
	}
	a.log.Debug("resized", zap.Int("width", w), zap.Int("height", h))
	return nil
}

// ApplyConfig swaps in a new config. Camera, motion, particle wave and
// debug settings take effect immediately; particle count, seed and marker
// settings only apply to a new Animator.
func (a *Animator) ApplyConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	old := a.cfg
	a.cfg = cfg
	a.debug = cfg.Debug
	a.applyCameraConfig()

	cc := a.decor.Cloud.Cloud.Config()
	fresh := cfg.cloudConfig()
	cc.WaveFrequency = fresh.WaveFrequency
	cc.WaveAmplitude = fresh.WaveAmplitude
	cc.WaveStep = fresh.WaveStep
	cc.Drift = fresh.Drift
	a.decor.Cloud.Material.PointSize = cfg.Particles.PointSize

	if old.Particles.Count != cfg.Particles.Count || old.Particles.Seed != cfg.Particles.Seed || old.Rings != cfg.Rings {
		a.log.Warn("config change needs restart", zap.String("section", "particles/rings"))
	}
	a.log.Info("config applied", zap.Bool("debug", cfg.Debug))
	return nil
}

// drainReloads applies every pending config from the reload channel.
func (a *Animator) drainReloads() {
	if a.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-a.reloads:
			if !ok {
				a.reloads = nil
				return
			}
			if err := a.ApplyConfig(cfg); err != nil {
				a.log.Warn("rejected config reload", zap.Error(err))
			}
		default:
			return
		}
	}
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of each
// Update, before injected input is consumed.
func (a *Animator) SetTestRunner(r *TestRunner) {
	a.testRunner = r
}

// Close stops the counter and disposes the scene. Further frames are no-ops.
// Close is idempotent.
func (a *Animator) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.counter.Stop()
	a.scene.Dispose()
	a.log.Info("animator closed", zap.Uint64("frames", a.frame))
}

// --- Accessors ---

// Scene returns the animated scene.
func (a *Animator) Scene() *Scene { return a.scene }

// Camera returns the scene camera.
func (a *Animator) Camera() *Camera { return a.camera }

// Decor returns the decorative groups.
func (a *Animator) Decor() *Decor { return a.decor }

// Pointer returns the current normalized pointer.
func (a *Animator) Pointer() Pointer { return a.pointer }

// Viewport returns the current viewport.
func (a *Animator) Viewport() Rect { return a.viewport }

// Counter returns the particle-count readout.
func (a *Animator) Counter() *Counter { return a.counter }

// Config returns the active config. It MUST NOT be mutated; use ApplyConfig.
func (a *Animator) Config() *Config { return a.cfg }

// FrameCount returns the number of completed Updates.
func (a *Animator) FrameCount() uint64 { return a.frame }

// Closed reports whether Close has been called.
func (a *Animator) Closed() bool { return a.closed }
