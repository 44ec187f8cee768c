package herofx

import "math"

// MeshMode selects how Mesh indices are interpreted.
type MeshMode uint8

const (
	MeshTriangles MeshMode = iota // every 3 indices form a triangle
	MeshLines                     // every 2 indices form a segment
)

// Mesh is indexed geometry in the owning node's local space. Meshes are
// built once by the geometry constructors and never resized.
type Mesh struct {
	Positions []Vec3
	Indices   []uint32
	Mode      MeshMode
}

// PrimitiveCount returns the number of triangles or segments.
func (m *Mesh) PrimitiveCount() int {
	if m == nil {
		return 0
	}
	if m.Mode == MeshLines {
		return len(m.Indices) / 2
	}
	return len(m.Indices) / 3
}

// Bounds returns the local-space axis-aligned bounds of the mesh.
func (m *Mesh) Bounds() (lo, hi Vec3) {
	if m == nil || len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		lo = Vec3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
		hi = Vec3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
	}
	return
}

// Shading selects the lighting model of a Material.
type Shading uint8

const (
	ShadingBasic Shading = iota // unlit, color only
	ShadingPhong                // ambient + emissive + diffuse + specular
)

// Material controls how a node's primitives are colored.
type Material struct {
	Shading Shading
	// Color is the base color. Color.A is the opacity.
	Color Color
	// Emissive is added on top of lighting, scaled by EmissiveIntensity.
	Emissive          Color
	EmissiveIntensity float64
	Specular          Color
	Shininess         float64
	BlendMode         BlendMode
	// PointSize is the world-space size of a point for NodeTypePoints,
	// multiplied by each particle's own size.
	PointSize float64
}

// BasicMaterial returns an unlit material.
func BasicMaterial(c Color, opacity float64) Material {
	return Material{Shading: ShadingBasic, Color: c.WithAlpha(opacity)}
}

// PhongMaterial returns a lit material.
func PhongMaterial(c, emissive Color, emissiveIntensity, shininess float64) Material {
	return Material{
		Shading:           ShadingPhong,
		Color:             c,
		Emissive:          emissive,
		EmissiveIntensity: emissiveIntensity,
		Specular:          Color{0.07, 0.07, 0.07, 1},
		Shininess:         shininess,
	}
}

// --- Geometry constructors ---

// BoxGeometry returns a box centered on the origin.
func BoxGeometry(w, h, d float64) *Mesh {
	m := &Mesh{Positions: boxCorners(w, h, d)}
	m.Indices = []uint32{
		4, 5, 7, 4, 7, 6, // +Z
		1, 0, 2, 1, 2, 3, // -Z
		5, 1, 3, 5, 3, 7, // +X
		0, 4, 6, 0, 6, 2, // -X
		6, 7, 3, 6, 3, 2, // +Y
		0, 1, 5, 0, 5, 4, // -Y
	}
	return m
}

// BoxEdgesGeometry returns the 12 edges of a box as a line list.
func BoxEdgesGeometry(w, h, d float64) *Mesh {
	return &Mesh{
		Positions: boxCorners(w, h, d),
		Indices: []uint32{
			0, 1, 2, 3, 4, 5, 6, 7,
			0, 2, 1, 3, 4, 6, 5, 7,
			0, 4, 1, 5, 2, 6, 3, 7,
		},
		Mode: MeshLines,
	}
}

// boxCorners orders corners by bit: 1 = +X, 2 = +Y, 4 = +Z.
func boxCorners(w, h, d float64) []Vec3 {
	pts := make([]Vec3, 8)
	for i := range pts {
		p := Vec3{-w / 2, -h / 2, -d / 2}
		if i&1 != 0 {
			p.X = w / 2
		}
		if i&2 != 0 {
			p.Y = h / 2
		}
		if i&4 != 0 {
			p.Z = d / 2
		}
		pts[i] = p
	}
	return pts
}

// SphereGeometry returns a UV sphere.
func SphereGeometry(radius float64, widthSegments, heightSegments int) *Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	m := &Mesh{Positions: make([]Vec3, 0, (widthSegments+1)*(heightSegments+1))}
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			m.Positions = append(m.Positions, Vec3{
				X: -radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: radius * math.Cos(v*math.Pi),
				Z: radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			})
		}
	}

	row := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m
}

// TorusGeometry returns a torus lying in the XY plane.
func TorusGeometry(radius, tube float64, radialSegments, tubularSegments int) *Mesh {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	m := &Mesh{Positions: make([]Vec3, 0, (radialSegments+1)*(tubularSegments+1))}
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			r := radius + tube*math.Cos(v)
			m.Positions = append(m.Positions, Vec3{r * math.Cos(u), r * math.Sin(u), tube * math.Sin(v)})
		}
	}

	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m
}

// CylinderGeometry returns a capped cylinder along the Y axis.
func CylinderGeometry(radiusTop, radiusBottom, height float64, radialSegments int) *Mesh {
	radialSegments = max(radialSegments, 3)
	n := uint32(radialSegments)

	m := &Mesh{}
	for _, y := range [2]float64{height / 2, -height / 2} {
		r := radiusTop
		if y < 0 {
			r = radiusBottom
		}
		for i := 0; i < radialSegments; i++ {
			s, c := math.Sincos(float64(i) / float64(radialSegments) * 2 * math.Pi)
			m.Positions = append(m.Positions, Vec3{r * s, y, r * c})
		}
	}
	top := uint32(len(m.Positions))
	m.Positions = append(m.Positions, Vec3{Y: height / 2}, Vec3{Y: -height / 2})
	bottom := top + 1

	for i := uint32(0); i < n; i++ {
		next := (i + 1) % n
		// side
		m.Indices = append(m.Indices, i, n+i, n+next, i, n+next, next)
		// caps
		m.Indices = append(m.Indices, top, i, next)
		m.Indices = append(m.Indices, bottom, n+next, n+i)
	}
	return m
}

// LineGeometry returns a line list with one segment per pair of points.
// A trailing unpaired point is ignored.
func LineGeometry(points ...Vec3) *Mesh {
	m := &Mesh{Positions: append([]Vec3(nil), points...), Mode: MeshLines}
	for i := 0; i+1 < len(points); i += 2 {
		m.Indices = append(m.Indices, uint32(i), uint32(i+1))
	}
	return m
}
