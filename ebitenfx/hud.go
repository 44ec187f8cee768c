package ebitenfx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/nanobrick/herofx"
)

// hudRefresh is how often, in seconds, the HUD text is rebuilt.
const hudRefresh = 0.5

// HUD draws the particle counter and, optionally, frame timing in the
// top-left corner.
type HUD struct {
	ShowFPS bool

	img        *ebiten.Image
	lastUpdate float64
	lastText   string
}

// NewHUD creates a HUD. The backing image is allocated on first Draw.
func NewHUD(showFPS bool) *HUD {
	return &HUD{ShowFPS: showFPS}
}

// hudText formats the HUD contents.
func hudText(counter *herofx.Counter, stats herofx.FrameStats, fps float64, showFPS bool) string {
	s := fmt.Sprintf("particles: %d", counter.Value())
	if showFPS {
		s += fmt.Sprintf("\nFPS: %.1f\ncmds: %d", fps, stats.Commands)
	}
	return s
}

// Draw renders the HUD onto screen. dt is the elapsed time since the last
// call, in seconds. The counter value is refreshed every frame while it is
// rolling and every hudRefresh seconds otherwise.
func (h *HUD) Draw(screen *ebiten.Image, a *herofx.Animator, dt float64) {
	if h.img == nil {
		h.img = ebiten.NewImage(120, 48)
	}
	h.lastUpdate += dt
	rolling := a.Counter().State() == herofx.CounterRunning
	if h.lastText == "" || rolling || h.lastUpdate >= hudRefresh {
		h.lastUpdate = 0
		text := hudText(a.Counter(), a.Scene().Stats(), ebiten.ActualFPS(), h.ShowFPS)
		if text != h.lastText {
			h.lastText = text
			h.img.Clear()
			// Semi-transparent background for readability
			h.img.Fill(color.RGBA{0, 0, 0, 128})
			ebitenutil.DebugPrint(h.img, text)
		}
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(h.img, &op)
}
