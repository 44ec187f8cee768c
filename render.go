package herofx

import (
	"math"
	"slices"
	"time"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandTriangle CommandType = iota // filled triangle
	CommandLine                        // line segment
	CommandPoint                       // round point
)

// ScreenVertex is a projected vertex in viewport pixels. Depth is the view
// distance, for rasterizers that keep a depth buffer.
type ScreenVertex struct {
	X, Y  float32
	Depth float32
}

// RenderCommand is a single draw instruction emitted by Compile. Triangles
// use all three vertices, lines the first two, points the first one.
type RenderCommand struct {
	Type      CommandType
	Verts     [3]ScreenVertex
	Color     Color
	BlendMode BlendMode
	// Size is the point radius or line width in pixels.
	Size float32
	// Depth orders commands back to front.
	Depth     float64
	treeOrder int
}

// Compile traverses the scene from cam, emits shaded screen-space commands
// and sorts them back to front. The returned slice is reused by the next
// call and MUST NOT be retained.
func (s *Scene) Compile(cam *Camera) []RenderCommand {
	t0 := time.Now()
	s.commands = s.commands[:0]
	s.stats = FrameStats{}

	s.Update()
	cam.computeMatrices()

	treeOrder := 0
	s.traverse(s.root, cam, &treeOrder)
	s.stats.CompileTime = time.Since(t0)

	t0 = time.Now()
	s.sortCommands()
	s.stats.SortTime = time.Since(t0)
	s.stats.Commands = len(s.commands)
	return s.commands
}

// traverse walks the node tree depth-first and emits commands for visible
// nodes. Invisible nodes hide their whole subtree.
func (s *Scene) traverse(n *Node, cam *Camera, treeOrder *int) {
	if !n.Visible {
		return
	}
	switch n.Type {
	case NodeTypeMesh:
		if n.Mesh != nil {
			s.emitTriangles(n, cam, treeOrder)
		}
	case NodeTypeLines:
		if n.Mesh != nil {
			s.emitLines(n, cam, treeOrder)
		}
	case NodeTypePoints:
		if n.Cloud != nil {
			s.emitPoints(n, cam, treeOrder)
		}
	}
	for _, child := range n.children {
		s.traverse(child, cam, treeOrder)
	}
}

func (s *Scene) emitTriangles(n *Node, cam *Camera, treeOrder *int) {
	m := n.Mesh
	wt := n.worldTransform
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := wt.MulPoint(m.Positions[m.Indices[i]])
		b := wt.MulPoint(m.Positions[m.Indices[i+1]])
		c := wt.MulPoint(m.Positions[m.Indices[i+2]])

		var cmd RenderCommand
		if !projectAll(cam, &cmd, a, b, c) {
			s.stats.Clipped++
			continue
		}
		normal := b.Sub(a).Cross(c.Sub(a)).Norm()
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)

		*treeOrder++
		cmd.Type = CommandTriangle
		cmd.Color = s.fogged(s.shade(&n.Material, normal, centroid, cam.Position), cmd.Depth)
		cmd.BlendMode = n.Material.BlendMode
		cmd.treeOrder = *treeOrder
		s.commands = append(s.commands, cmd)
		s.stats.Triangles++
	}
}

func (s *Scene) emitLines(n *Node, cam *Camera, treeOrder *int) {
	m := n.Mesh
	wt := n.worldTransform
	for i := 0; i+1 < len(m.Indices); i += 2 {
		a := wt.MulPoint(m.Positions[m.Indices[i]])
		b := wt.MulPoint(m.Positions[m.Indices[i+1]])

		var cmd RenderCommand
		if !projectAll(cam, &cmd, a, b) {
			s.stats.Clipped++
			continue
		}
		*treeOrder++
		cmd.Type = CommandLine
		cmd.Color = s.fogged(n.Material.Color, cmd.Depth)
		cmd.BlendMode = n.Material.BlendMode
		cmd.Size = 1
		cmd.treeOrder = *treeOrder
		s.commands = append(s.commands, cmd)
		s.stats.Lines++
	}
}

func (s *Scene) emitPoints(n *Node, cam *Camera, treeOrder *int) {
	cloud := n.Cloud
	wt := n.worldTransform
	alpha := n.Material.Color.A
	for i := range cloud.particles {
		p := &cloud.particles[i]
		w := wt.MulPoint(p.pos)

		var cmd RenderCommand
		if !projectAll(cam, &cmd, w) {
			s.stats.Clipped++
			continue
		}
		radius := n.Material.PointSize * p.size * cam.PixelsPerUnit(cmd.Depth) / 2
		*treeOrder++
		cmd.Type = CommandPoint
		cmd.Color = s.fogged(p.color.WithAlpha(alpha), cmd.Depth)
		cmd.BlendMode = n.Material.BlendMode
		cmd.Size = float32(math.Max(radius, 0.5))
		cmd.treeOrder = *treeOrder
		s.commands = append(s.commands, cmd)
		s.stats.Points++
	}
}

// projectAll projects pts into cmd.Verts and sets cmd.Depth to their mean
// depth. It reports false if any point is behind the near plane.
func projectAll(cam *Camera, cmd *RenderCommand, pts ...Vec3) bool {
	var sum float64
	for i, p := range pts {
		x, y, d, ok := cam.Project(p)
		if !ok {
			return false
		}
		cmd.Verts[i] = ScreenVertex{float32(x), float32(y), float32(d)}
		sum += d
	}
	cmd.Depth = sum / float64(len(pts))
	return true
}

// fogged blends c toward the fog color for a primitive at depth.
func (s *Scene) fogged(c Color, depth float64) Color {
	if s.Fog == nil {
		return c
	}
	f := s.Fog.factor(depth)
	out := s.Fog.Color.Lerp(c, f)
	out.A = c.A
	return out
}

// sortRun is the length of the runs insertion-sorted before merging.
const sortRun = 16

// sortCommands orders s.commands back to front. Equal depths keep tree
// order. s.sortBuf is reused as merge scratch.
func (s *Scene) sortCommands() {
	cmds := s.commands
	n := len(cmds)
	for lo := 0; lo < n; lo += sortRun {
		insertionSort(cmds[lo:min(lo+sortRun, n)])
	}
	if n <= sortRun {
		return
	}

	s.sortBuf = slices.Grow(s.sortBuf[:0], n)[:n]
	src, dst := cmds, s.sortBuf
	for w := sortRun; w < n; w *= 2 {
		for lo := 0; lo < n; lo += 2 * w {
			mid, hi := min(lo+w, n), min(lo+2*w, n)
			merge(dst[lo:hi], src[lo:mid], src[mid:hi])
		}
		src, dst = dst, src
	}
	if &src[0] != &cmds[0] {
		copy(cmds, src)
	}
}

// drawsBefore reports whether a must be drawn strictly before b.
func drawsBefore(a, b *RenderCommand) bool {
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.treeOrder < b.treeOrder
}

func insertionSort(run []RenderCommand) {
	for i := 1; i < len(run); i++ {
		for j := i; j > 0 && drawsBefore(&run[j], &run[j-1]); j-- {
			run[j], run[j-1] = run[j-1], run[j]
		}
	}
}

// merge interleaves the sorted runs a and b into dst, taking from a on ties.
func merge(dst, a, b []RenderCommand) {
	i, j := 0, 0
	for k := range dst {
		if j == len(b) || (i < len(a) && !drawsBefore(&b[j], &a[i])) {
			dst[k] = a[i]
			i++
		} else {
			dst[k] = b[j]
			j++
		}
	}
}
