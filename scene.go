package herofx

const defaultCommandCap = 4096

// Scene is the top-level object that owns the node tree, the lights and the
// render command buffers.
type Scene struct {
	root *Node

	// Ambient is applied to every lit material.
	Ambient AmbientLight
	// Fog, when non-nil, fades primitives with distance.
	Fog *Fog
	// ClearColor is the background the rasterizer clears to.
	ClearColor Color

	lights []*PointLight

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand
	stats    FrameStats
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:     NewContainer("root"),
		Ambient:  AmbientLight{Color: ColorWhite, Intensity: 0},
		commands: make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:  make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add appends n under the root.
func (s *Scene) Add(n *Node) {
	s.root.AddChild(n)
}

// AddLight adds a point light to the scene.
func (s *Scene) AddLight(l *PointLight) {
	s.lights = append(s.lights, l)
}

// RemoveLight removes a point light from the scene.
func (s *Scene) RemoveLight(l *PointLight) {
	for i, x := range s.lights {
		if x == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

// Lights returns the scene's point lights. The returned slice MUST NOT be mutated.
func (s *Scene) Lights() []*PointLight {
	return s.lights
}

// Update refreshes world transforms for every dirty subtree.
func (s *Scene) Update() {
	updateWorldTransform(s.root, Identity4, false)
}

// Stats returns the metrics of the most recent Compile.
func (s *Scene) Stats() FrameStats {
	return s.stats
}

// Dispose releases the node tree. The scene must not be used afterwards.
func (s *Scene) Dispose() {
	s.root.Dispose()
	s.lights = nil
	s.commands = nil
	s.sortBuf = nil
}
