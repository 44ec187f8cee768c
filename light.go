package herofx

import "math"

// AmbientLight illuminates every lit surface uniformly.
type AmbientLight struct {
	Color     Color
	Intensity float64
}

// PointLight emits from a world-space position with a finite range.
type PointLight struct {
	Position  Vec3
	Color     Color
	Intensity float64
	// Range is the distance at which the contribution reaches zero.
	// Zero means no falloff.
	Range float64
	// Enabled determines whether this light contributes during Compile.
	Enabled bool
}

// NewPointLight creates an enabled point light.
func NewPointLight(pos Vec3, c Color, intensity, rng float64) *PointLight {
	return &PointLight{Position: pos, Color: c, Intensity: intensity, Range: rng, Enabled: true}
}

// attenuation returns the distance falloff of l at distance d.
func (l *PointLight) attenuation(d float64) float64 {
	if l.Range <= 0 {
		return 1
	}
	if d >= l.Range {
		return 0
	}
	f := 1 - d/l.Range
	return f * f
}

// Fog fades distant primitives toward Color with exponential-squared density.
type Fog struct {
	Color   Color
	Density float64
}

// factor returns how much of the original color survives at distance d.
func (f *Fog) factor(d float64) float64 {
	if f == nil || f.Density <= 0 {
		return 1
	}
	x := f.Density * d
	return math.Exp(-x * x)
}

// shade computes the color of a surface with world-space normal and
// centroid, seen from eye, under the scene's lights.
func (s *Scene) shade(mat *Material, normal, centroid, eye Vec3) Color {
	base := mat.Color
	if mat.Shading == ShadingBasic {
		return base
	}

	view := eye.Sub(centroid).Norm()
	// Two-sided: face the normal toward the viewer.
	if normal.Dot(view) < 0 {
		normal = normal.Scale(-1)
	}

	r := s.Ambient.Color.R * s.Ambient.Intensity
	g := s.Ambient.Color.G * s.Ambient.Intensity
	b := s.Ambient.Color.B * s.Ambient.Intensity
	var sr, sg, sb float64

	for _, l := range s.lights {
		if !l.Enabled {
			continue
		}
		toLight := l.Position.Sub(centroid)
		dist := toLight.Len()
		if dist == 0 {
			continue
		}
		dir := toLight.Scale(1 / dist)
		lambert := normal.Dot(dir)
		if lambert <= 0 {
			continue
		}
		k := l.Intensity * l.attenuation(dist)
		r += l.Color.R * lambert * k
		g += l.Color.G * lambert * k
		b += l.Color.B * lambert * k

		if mat.Shininess > 0 {
			half := dir.Add(view).Norm()
			spec := math.Pow(math.Max(normal.Dot(half), 0), mat.Shininess) * k
			sr += l.Color.R * spec
			sg += l.Color.G * spec
			sb += l.Color.B * spec
		}
	}

	e := mat.EmissiveIntensity
	return Color{
		R: base.R*r + mat.Emissive.R*e + mat.Specular.R*sr,
		G: base.G*g + mat.Emissive.G*e + mat.Specular.G*sg,
		B: base.B*b + mat.Emissive.B*e + mat.Specular.B*sb,
		A: base.A,
	}
}
