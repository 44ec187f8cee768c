package herofx

import (
	"time"

	"go.uber.org/zap"
)

// FrameStats holds per-frame compile metrics. Populated by Scene.Compile.
type FrameStats struct {
	CompileTime time.Duration
	SortTime    time.Duration
	Commands    int
	Triangles   int
	Lines       int
	Points      int
	// Clipped counts primitives skipped for crossing the near plane.
	Clipped int
}

// debugLogInterval is how many frames pass between debug stat lines.
const debugLogInterval = 120

// debugLog writes compile stats every debugLogInterval frames when debug
// mode is on.
func (a *Animator) debugLog(stats FrameStats) {
	if !a.debug || a.frame%debugLogInterval != 0 {
		return
	}
	a.log.Debug("frame stats",
		zap.Uint64("frame", a.frame),
		zap.Duration("compile", stats.CompileTime),
		zap.Duration("sort", stats.SortTime),
		zap.Int("commands", stats.Commands),
		zap.Int("triangles", stats.Triangles),
		zap.Int("lines", stats.Lines),
		zap.Int("points", stats.Points),
		zap.Int("clipped", stats.Clipped),
	)
}

// debugCheckFinite warns once if any node transform has gone non-finite.
func (a *Animator) debugCheckFinite() {
	if !a.debug || a.warnedNonFinite {
		return
	}
	a.scene.root.Walk(func(n *Node) {
		if a.warnedNonFinite {
			return
		}
		if !n.Position.IsFinite() || !n.Rotation.IsFinite() {
			a.warnedNonFinite = true
			a.log.Warn("non-finite transform",
				zap.String("node", n.Name),
				zap.Stringer("position", n.Position),
				zap.Stringer("rotation", n.Rotation),
			)
		}
	})
}
