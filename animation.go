package herofx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// channel drives one float64 field from a gween tween.
type channel struct {
	tween *gween.Tween
	dst   *float64
}

// TweenGroup eases one to three fields of a Node together. Build one with
// TweenPosition, TweenScale or TweenOpacity and call Update once per frame.
// A group whose node has been disposed stops without writing.
type TweenGroup struct {
	channels []channel
	node     *Node
	Done     bool
}

// Update advances the group by dt seconds and writes the eased values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.node != nil && g.node.IsDisposed() {
		g.Done = true
		return
	}

	done := true
	for _, c := range g.channels {
		v, finished := c.tween.Update(dt)
		*c.dst = float64(v)
		done = done && finished
	}
	g.Done = done
	if g.node != nil {
		g.node.MarkDirty()
	}
}

func tweenFields(node *Node, dsts []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{node: node, channels: make([]channel, len(dsts))}
	for i, dst := range dsts {
		g.channels[i] = channel{
			tween: gween.New(float32(*dst), float32(to[i]), duration, fn),
			dst:   dst,
		}
	}
	return g
}

// TweenPosition eases node.Position to the given target.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := &node.Position
	return tweenFields(node, []*float64{&p.X, &p.Y, &p.Z}, []float64{to.X, to.Y, to.Z}, duration, fn)
}

// TweenScale eases node.Scale to the given target. Easing functions that
// overshoot, such as ease.OutBack, briefly scale past it.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := &node.Scale
	return tweenFields(node, []*float64{&s.X, &s.Y, &s.Z}, []float64{to.X, to.Y, to.Z}, duration, fn)
}

// TweenOpacity eases the alpha of node.Material.Color.
func TweenOpacity(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenFields(node, []*float64{&node.Material.Color.A}, []float64{to}, duration, fn)
}
