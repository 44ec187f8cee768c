package ebitenfx

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/nanobrick/herofx"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	// ScreenshotDir overrides the rasterizer's screenshot directory.
	ScreenshotDir string
	// Script, if non-nil, drives the animator; the window closes when the
	// script is done and its screenshots are written.
	Script *herofx.TestRunner
	Logger *zap.Logger
}

// Game adapts an Animator to ebiten.Game.
type Game struct {
	anim   *herofx.Animator
	raster *Rasterizer
	hud    *HUD
	script *herofx.TestRunner
	log    *zap.Logger

	start    time.Time
	lastDraw time.Time
	cursorX  int
	cursorY  int
}

// NewGame builds the animator and its rasterizer for a window of the given
// size.
func NewGame(cfg RunConfig, opts ...herofx.Option) (*Game, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	raster := NewRasterizer(log)
	if cfg.ScreenshotDir != "" {
		raster.ScreenshotDir = cfg.ScreenshotDir
	}
	raster.Resize(cfg.Width, cfg.Height)

	now := time.Now()
	opts = append([]herofx.Option{herofx.WithLogger(log), herofx.WithStartTime(now)}, opts...)
	anim, err := herofx.New(herofx.Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}, raster, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Script != nil {
		anim.SetTestRunner(cfg.Script)
	}
	return &Game{
		anim:     anim,
		raster:   raster,
		hud:      NewHUD(cfg.ShowFPS),
		script:   cfg.Script,
		log:      log,
		start:    now,
		lastDraw: now,
		cursorX:  -1,
		cursorY:  -1,
	}, nil
}

// Animator returns the animator driven by the game.
func (g *Game) Animator() *herofx.Animator { return g.anim }

// Update polls the cursor and advances the animator by one frame.
func (g *Game) Update() error {
	if g.scriptFinished() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.anim.PointerMove(float64(x), float64(y))
	}
	g.anim.Update(time.Since(g.start).Seconds())
	return nil
}

// scriptFinished reports whether the script has run every step and Draw
// has written every screenshot it queued.
func (g *Game) scriptFinished() bool {
	return g.script != nil && g.script.Done() && len(g.raster.screenshotQueue) == 0
}

// Draw renders the scene, the HUD and any queued screenshots.
func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := now.Sub(g.lastDraw).Seconds()
	g.lastDraw = now

	g.raster.SetTarget(screen)
	g.anim.Render()
	g.hud.Draw(screen, g.anim, dt)
	g.raster.flushScreenshots(screen)
}

// Layout tracks the window size and resizes the animator on change.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if err := g.anim.Resize(outsideWidth, outsideHeight); err != nil {
		g.log.Debug("layout", zap.Error(err))
	}
	return outsideWidth, outsideHeight
}

// Close releases the animator.
func (g *Game) Close() {
	g.anim.Close()
}

// Run opens a window and animates the hero scene until the window is
// closed, Escape is pressed or the script finishes.
func Run(cfg RunConfig, opts ...herofx.Option) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("window %dx%d: %w", cfg.Width, cfg.Height, herofx.ErrInvalidViewport)
	}
	g, err := NewGame(cfg, opts...)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
