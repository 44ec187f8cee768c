package termfx

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nanobrick/herofx"
)

// errQuit ends the frame loop when the user presses a quit key.
var errQuit = errors.New("termfx: quit")

// RunConfig holds terminal loop settings.
type RunConfig struct {
	// FPS is the target frame rate. Zero means 30.
	FPS int
	// ShowCounter prints the particle counter over the scene.
	ShowCounter bool
	// Script, if non-nil, drives the animator; Run returns when the
	// script is done.
	Script *herofx.TestRunner
	Logger *zap.Logger
}

// Run animates the hero scene on screen until ctx is cancelled, the user
// presses Escape, q or Ctrl-C, or the script finishes. screen must already
// be initialized; Run finalizes it before returning.
func Run(ctx context.Context, screen tcell.Screen, cfg RunConfig, opts ...herofx.Option) error {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	fini := sync.OnceFunc(screen.Fini)
	defer fini()

	cols, rows := screen.Size()
	raster := NewRasterizer(screen, cols, rows*2)
	start := time.Now()
	opts = append([]herofx.Option{herofx.WithLogger(log), herofx.WithStartTime(start)}, opts...)
	anim, err := herofx.New(herofx.Rect{Width: float64(cols), Height: float64(rows * 2)}, raster, opts...)
	if err != nil {
		return err
	}
	defer anim.Close()
	if cfg.ShowCounter {
		raster.Overlay = counterOverlay(anim)
	}
	if cfg.Script != nil {
		anim.SetTestRunner(cfg.Script)
	}

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	// Event pump. PollEvent returns nil once the screen is finalized.
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		// Unblock the pump however the loop ends.
		defer fini()
		return frameLoop(ctx, anim, events, time.Second/time.Duration(fps), cfg.Script, log)
	})

	err = g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// frameLoop drains pending events, then runs one frame per tick.
func frameLoop(ctx context.Context, anim *herofx.Animator, events <-chan tcell.Event, interval time.Duration, script *herofx.TestRunner, log *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if err := handleEvent(anim, ev, log); err != nil {
				return err
			}
		case now := <-ticker.C:
			anim.Tick(now)
			if script != nil && script.Done() {
				return errQuit
			}
		}
	}
}

// handleEvent applies one terminal event to the animator.
func handleEvent(anim *herofx.Animator, ev tcell.Event, log *zap.Logger) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return errQuit
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		// Cell (x, y) covers pixels (x, 2y) and (x, 2y+1).
		anim.PointerMove(float64(x)+0.5, float64(y*2)+1)
	case *tcell.EventResize:
		w, h := ev.Size()
		if err := anim.Resize(w, h*2); err != nil {
			log.Debug("terminal resize", zap.Error(err))
		}
	}
	return nil
}
