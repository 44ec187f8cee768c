package herofx

import "math"

// --- Curves ---

// CatmullRom samples a uniform Catmull-Rom spline through points and returns
// segments+1 positions from the first to the last control point. The spline
// is extrapolated at both ends so it passes through every control point.
func CatmullRom(points []Vec3, segments int) []Vec3 {
	switch len(points) {
	case 0:
		return nil
	case 1:
		return []Vec3{points[0]}
	}
	segments = max(segments, 1)

	spans := len(points) - 1
	out := make([]Vec3, 0, segments+1)
	for s := 0; s <= segments; s++ {
		u := float64(s) / float64(segments) * float64(spans)
		i := int(u)
		if i >= spans {
			i = spans - 1
		}
		out = append(out, catmullRomSpan(points, i, u-float64(i)))
	}
	return out
}

// catmullRomSpan evaluates the span between points[i] and points[i+1] at t.
func catmullRomSpan(points []Vec3, i int, t float64) Vec3 {
	p1 := points[i]
	p2 := points[i+1]

	var p0, p3 Vec3
	if i > 0 {
		p0 = points[i-1]
	} else {
		p0 = p1.Scale(2).Sub(p2)
	}
	if i+2 < len(points) {
		p3 = points[i+2]
	} else {
		p3 = p2.Scale(2).Sub(p1)
	}

	t2 := t * t
	t3 := t2 * t
	a := p1.Scale(2)
	b := p2.Sub(p0).Scale(t)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)
	return a.Add(b).Add(c).Add(d).Scale(0.5)
}

// HelixPoints samples a helix around the Y axis, centered vertically on the
// origin. It returns turns*pointsPerTurn+1 points; phase offsets the angle.
func HelixPoints(radius, height float64, turns, pointsPerTurn int, phase float64) []Vec3 {
	n := turns * pointsPerTurn
	pts := make([]Vec3, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, helixPoint(radius, height, turns, pointsPerTurn, i, phase))
	}
	return pts
}

// helixPoint returns sample i of a helix; see HelixPoints.
func helixPoint(radius, height float64, turns, pointsPerTurn, i int, phase float64) Vec3 {
	t := float64(i) / float64(pointsPerTurn)
	angle := t*2*math.Pi + phase
	return Vec3{
		X: math.Cos(angle) * radius,
		Y: t/float64(turns)*height - height/2,
		Z: math.Sin(angle) * radius,
	}
}

// --- Tube ---

// TubeGeometry sweeps a circle of the given radius along path. Frames are
// propagated by parallel transport so the tube does not twist.
func TubeGeometry(path []Vec3, radius float64, radialSegments int) *Mesh {
	m := &Mesh{}
	if len(path) < 2 {
		return m
	}
	radialSegments = max(radialSegments, 3)

	tangents := pathTangents(path)
	normal := initialNormal(tangents[0])

	m.Positions = make([]Vec3, 0, len(path)*radialSegments)
	for i, p := range path {
		if i > 0 {
			normal = transportNormal(normal, tangents[i-1], tangents[i])
		}
		binormal := tangents[i].Cross(normal)
		for j := 0; j < radialSegments; j++ {
			s, c := math.Sincos(float64(j) / float64(radialSegments) * 2 * math.Pi)
			off := normal.Scale(c).Add(binormal.Scale(s)).Scale(radius)
			m.Positions = append(m.Positions, p.Add(off))
		}
	}

	r := uint32(radialSegments)
	for i := uint32(0); i+1 < uint32(len(path)); i++ {
		for j := uint32(0); j < r; j++ {
			next := (j + 1) % r
			a := i*r + j
			b := (i+1)*r + j
			c := (i+1)*r + next
			d := i*r + next
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m
}

// pathTangents returns unit tangents using central differences.
func pathTangents(path []Vec3) []Vec3 {
	t := make([]Vec3, len(path))
	last := len(path) - 1
	for i := range path {
		prev := path[max(i-1, 0)]
		next := path[min(i+1, last)]
		t[i] = next.Sub(prev).Norm()
	}
	return t
}

// initialNormal picks a normal perpendicular to tangent using the world
// axis least aligned with it.
func initialNormal(tangent Vec3) Vec3 {
	axis := Vec3{X: 1}
	ax, ay, az := math.Abs(tangent.X), math.Abs(tangent.Y), math.Abs(tangent.Z)
	if ay <= ax && ay <= az {
		axis = Vec3{Y: 1}
	} else if az <= ax && az <= ay {
		axis = Vec3{Z: 1}
	}
	return tangent.Cross(axis).Norm()
}

// transportNormal rotates normal by the rotation taking from onto to.
func transportNormal(normal, from, to Vec3) Vec3 {
	k := from.Cross(to)
	sin := k.Len()
	if sin < 1e-9 {
		return normal
	}
	k = k.Scale(1 / sin)
	cos := clamp(from.Dot(to), -1, 1)
	// Rodrigues' rotation formula.
	return normal.Scale(cos).
		Add(k.Cross(normal).Scale(sin)).
		Add(k.Scale(k.Dot(normal) * (1 - cos))).
		Norm()
}
