package herofx

// Pointer is the normalized pointer position. Both axes lie in [-1, 1]
// with X increasing to the right and Y increasing upward. The zero value
// is the viewport center.
type Pointer struct {
	X, Y float64
}

// NormalizePointer maps a pixel position inside viewport to a Pointer.
// Positions outside the viewport, infinities included, are clamped to its
// edges. A NaN coordinate or a degenerate viewport yields the center on
// that axis.
func NormalizePointer(px, py float64, viewport Rect) Pointer {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return Pointer{}
	}
	x := (px-viewport.X)/viewport.Width*2 - 1
	y := -((py-viewport.Y)/viewport.Height*2) + 1
	return Pointer{X: clamp(x, -1, 1), Y: clamp(y, -1, 1)}
}

// ToPixels maps p back to pixel coordinates inside viewport.
func (p Pointer) ToPixels(viewport Rect) (px, py float64) {
	px = viewport.X + (p.X+1)/2*viewport.Width
	py = viewport.Y + (1-p.Y)/2*viewport.Height
	return px, py
}

// --- Synthetic pointer input ---

// syntheticPointerEvent is a queued pointer move in pixel coordinates.
type syntheticPointerEvent struct {
	screenX, screenY float64
}

// InjectMove queues a pointer move at the given pixel coordinates. Queued
// moves are consumed one per frame and take priority over PointerMove.
func (a *Animator) InjectMove(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectSweep queues a linear pointer sweep from (fromX, fromY) to
// (toX, toY) that consumes frames frames. Minimum frames is 2.
func (a *Animator) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		a.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInput returns the number of queued synthetic pointer moves.
func (a *Animator) PendingInput() int {
	return len(a.injectQueue)
}

// processInjectedInput pops one queued move and applies it. Returns true if
// an event was consumed.
func (a *Animator) processInjectedInput() bool {
	if len(a.injectQueue) == 0 {
		return false
	}
	evt := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	a.pointer = NormalizePointer(evt.screenX, evt.screenY, a.viewport)
	return true
}
