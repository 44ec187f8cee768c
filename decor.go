package herofx

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Palette used across the hero objects.
var (
	colorTeal   = Hex(0x00d4aa)
	colorIndigo = Hex(0x667eea)
	colorGold   = Hex(0xffd700)
	colorCoral  = Hex(0xff6b6b)
	colorGreen  = Hex(0x90ee90)
	colorClay   = Hex(0xcd853f)
	colorEmber  = Hex(0x442200)
	colorNight  = Hex(0x0a0a0f)
)

// Decor holds the five decorative groups of the hero scene.
type Decor struct {
	Brick    *Node
	Cloud    *Node
	Rings    *Node
	Helix    *Node
	Molecule *Node

	// Markers are the orbiting children of Rings.
	Markers []*Node
}

// Groups returns the top-level groups in scene order.
func (d *Decor) Groups() []*Node {
	return []*Node{d.Brick, d.Cloud, d.Rings, d.Helix, d.Molecule}
}

// buildDecor constructs every decorative group from cfg. rng drives the
// marker speeds; the particle cloud has its own seeded source.
func buildDecor(cfg *Config, rng *rand.Rand) (*Decor, error) {
	d := &Decor{
		Brick:    newBrick(),
		Cloud:    newCloud(cfg),
		Helix:    newHelix(),
		Molecule: newMolecule(),
	}
	rings, markers, err := newRings(&cfg.Rings, rng)
	if err != nil {
		return nil, fmt.Errorf("build rings: %w", err)
	}
	d.Rings = rings
	d.Markers = markers
	return d, nil
}

// newBrick builds the clay brick with its embedded fibers, outline and
// floating label.
func newBrick() *Node {
	g := NewContainer("brick")
	g.SetPosition(-2, 0.5, 0)

	body := PhongMaterial(colorClay, colorEmber, 0.2, 80)
	body.Specular = colorGold
	g.AddChild(NewMesh("brick-body", BoxGeometry(1.5, 0.8, 0.7), body))

	const fibers = 20
	fiberMesh := BoxGeometry(0.02, 0.82, 0.02)
	for i := range fibers {
		f := NewMesh(fmt.Sprintf("fiber-%d", i), fiberMesh, BasicMaterial(colorTeal, 0.6))
		f.SetPosition((float64(i)/fibers-0.5)*1.4, 0, 0.36)
		g.AddChild(f)
	}

	g.AddChild(NewLines("brick-edges", BoxEdgesGeometry(1.5, 0.8, 0.7), BasicMaterial(colorTeal, 0.8)))

	label := NewMesh("brick-label", SphereGeometry(0.15, 16, 16), BasicMaterial(colorGold, 0.8))
	label.SetPosition(0, 0.7, 0)
	g.AddChild(label)
	return g
}

// newCloud builds the additive particle cloud at the origin.
func newCloud(cfg *Config) *Node {
	mat := BasicMaterial(ColorWhite, 0.8)
	mat.BlendMode = BlendAdd
	mat.PointSize = cfg.Particles.PointSize
	return NewPoints("particles", NewParticleCloud(cfg.cloudConfig()), mat)
}

// newRings builds three tilted tori and the markers orbiting them.
func newRings(cfg *RingsConfig, rng *rand.Rand) (*Node, []*Node, error) {
	g := NewContainer("rings")
	g.SetPosition(2.5, 0.5, 0)

	colors := [3]Color{colorIndigo, colorTeal, colorGold}
	radii := [3]float64{1.2, 1.6, 2.0}
	for i, r := range radii {
		ring := NewMesh(fmt.Sprintf("ring-%d", i), TorusGeometry(r, 0.02, 16, 100), BasicMaterial(colors[i], 0.6))
		ring.SetRotation(math.Pi/3+float64(i)*0.3, float64(i)*0.5, 0)
		g.AddChild(ring)
	}

	speed := Range{cfg.SpeedMin, cfg.SpeedMax}
	markerMesh := SphereGeometry(0.06, 16, 16)
	markers := make([]*Node, 0, cfg.Markers)
	for i := range cfg.Markers {
		phase := float64(i) / float64(cfg.Markers) * 2 * math.Pi
		orbit, err := NewOrbit(phase, radii[0]+float64(i%3)*0.4, speed.Random(rng), cfg.Bob)
		if err != nil {
			return nil, nil, fmt.Errorf("marker %d: %w", i, err)
		}
		m := NewMesh(fmt.Sprintf("marker-%d", i), markerMesh, BasicMaterial(colorTeal, 0.9))
		m.Motion = OrbitMotion(orbit)
		m.Position = orbit.Position()
		g.AddChild(m)
		markers = append(markers, m)
	}
	return g, markers, nil
}

// Helix dimensions.
const (
	helixRadius        = 0.5
	helixHeight        = 4
	helixTurns         = 3
	helixPointsPerTurn = 20
	helixTubeSegments  = 100
	helixRungEvery     = 3
)

// newHelix builds the double strand with alternating rungs.
func newHelix() *Node {
	g := NewContainer("helix")
	g.SetPosition(0, 0, -3)
	g.SetRotation(math.Pi/6, 0, 0)

	rung := CylinderGeometry(0.02, 0.02, helixRadius*2, 8)
	for i := 0; i <= helixTurns*helixPointsPerTurn; i += helixRungEvery {
		c := colorGreen
		if i%(2*helixRungEvery) == 0 {
			c = colorCoral
		}
		p := helixPoint(helixRadius, helixHeight, helixTurns, helixPointsPerTurn, i, 0)
		angle := float64(i) / helixPointsPerTurn * 2 * math.Pi
		bar := NewMesh(fmt.Sprintf("rung-%d", i), rung, BasicMaterial(c, 0.7))
		bar.SetPosition(0, p.Y, 0)
		bar.SetRotation(0, angle, math.Pi/2)
		g.AddChild(bar)
	}

	for i, c := range [2]Color{colorIndigo, colorTeal} {
		pts := HelixPoints(helixRadius, helixHeight, helixTurns, helixPointsPerTurn, float64(i)*math.Pi)
		tube := TubeGeometry(CatmullRom(pts, helixTubeSegments), 0.03, 8)
		g.AddChild(NewMesh(fmt.Sprintf("strand-%d", i), tube, BasicMaterial(c, 0.8)))
	}
	return g
}

// newMolecule builds a central atom bonded to four satellites.
func newMolecule() *Node {
	g := NewContainer("molecule")
	g.SetPosition(-3.5, -1, 1)

	g.AddChild(NewMesh("atom-core", SphereGeometry(0.2, 32, 32), PhongMaterial(colorGold, colorGold, 0.3, 100)))

	satellites := []struct {
		pos   Vec3
		color Color
	}{
		{Vec3{0.6, 0.6, 0}, colorTeal},
		{Vec3{-0.6, 0.6, 0}, colorIndigo},
		{Vec3{0, -0.6, 0.6}, colorCoral},
		{Vec3{0, -0.6, -0.6}, colorGreen},
	}
	atom := SphereGeometry(0.12, 32, 32)
	for i, s := range satellites {
		a := NewMesh(fmt.Sprintf("atom-%d", i), atom, PhongMaterial(s.color, s.color, 0.2, 80))
		a.Position = s.pos
		g.AddChild(a)
		g.AddChild(NewLines(fmt.Sprintf("bond-%d", i), LineGeometry(Vec3{}, s.pos), BasicMaterial(ColorWhite, 0.5)))
	}
	return g
}

// setupLighting installs the ambient light, the three point lights and the
// fog of the hero scene.
func setupLighting(s *Scene) {
	s.Ambient = AmbientLight{Color: ColorWhite, Intensity: 0.4}
	s.AddLight(NewPointLight(Vec3{5, 5, 5}, colorTeal, 2, 50))
	s.AddLight(NewPointLight(Vec3{-5, -5, 5}, colorIndigo, 2, 50))
	s.AddLight(NewPointLight(Vec3{0, 5, -5}, colorGold, 1.5, 50))
	s.Fog = &Fog{Color: colorNight, Density: 0.002}
	s.ClearColor = colorNight
}
