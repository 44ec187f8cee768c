package herofx

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector used for positions, Euler rotations, scales and
// directions throughout the API.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns v normalized. The zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates between v and o by t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t), lerp(v.Z, o.Z, t)}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vec3) String() string { return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z) }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Vec4 is a homogeneous 4-component vector.
type Vec4 struct {
	X, Y, Z, W float64
}

// Mat4 is a column-major 4x4 matrix: m[col][row].
type Mat4 [4][4]float64

// Identity4 is the 4x4 identity matrix.
var Identity4 = Mat4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}}

// Mul returns l ⋅ r.
func (l Mat4) Mul(r Mat4) (m Mat4) {
	for i := range m {
		for j := range m {
			for k := range m {
				m[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	return
}

// MulPoint transforms p as a point (w = 1) without the perspective divide.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		m[0][0]*p.X + m[1][0]*p.Y + m[2][0]*p.Z + m[3][0],
		m[0][1]*p.X + m[1][1]*p.Y + m[2][1]*p.Z + m[3][1],
		m[0][2]*p.X + m[1][2]*p.Y + m[2][2]*p.Z + m[3][2],
	}
}

// MulDir transforms d as a direction (w = 0).
func (m Mat4) MulDir(d Vec3) Vec3 {
	return Vec3{
		m[0][0]*d.X + m[1][0]*d.Y + m[2][0]*d.Z,
		m[0][1]*d.X + m[1][1]*d.Y + m[2][1]*d.Z,
		m[0][2]*d.X + m[1][2]*d.Y + m[2][2]*d.Z,
	}
}

// MulVec4 returns m ⋅ v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z + m[3][0]*v.W,
		m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z + m[3][1]*v.W,
		m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z + m[3][2]*v.W,
		m[0][3]*v.X + m[1][3]*v.Y + m[2][3]*v.Z + m[3][3]*v.W,
	}
}

// Translation returns the translation column of m.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3][0], m[3][1], m[3][2]}
}

// Translate4 returns a translation matrix.
func Translate4(t Vec3) Mat4 {
	m := Identity4
	m[3][0], m[3][1], m[3][2] = t.X, t.Y, t.Z
	return m
}

// Scale4 returns a scaling matrix.
func Scale4(s Vec3) Mat4 {
	return Mat4{{s.X}, {1: s.Y}, {2: s.Z}, {3: 1}}
}

// RotateX4 returns a rotation of a radians about the X axis.
func RotateX4(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{{1}, {0, c, s}, {0, -s, c}, {3: 1}}
}

// RotateY4 returns a rotation of a radians about the Y axis.
func RotateY4(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{{c, 0, -s}, {1: 1}, {s, 0, c}, {3: 1}}
}

// RotateZ4 returns a rotation of a radians about the Z axis.
func RotateZ4(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{{c, s}, {-s, c}, {2: 1}, {3: 1}}
}

// Euler4 returns the rotation for Euler angles applied in XYZ order,
// i.e. Rx ⋅ Ry ⋅ Rz.
func Euler4(r Vec3) Mat4 {
	return RotateX4(r.X).Mul(RotateY4(r.Y)).Mul(RotateZ4(r.Z))
}

// LookAt4 returns a view matrix placing the eye at eye, looking at
// center, with the given up direction.
func LookAt4(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Norm()
	s := f.Cross(up).Norm()
	u := s.Cross(f)
	return Mat4{
		{s.X, u.X, -f.X, 0},
		{s.Y, u.Y, -f.Y, 0},
		{s.Z, u.Z, -f.Z, 0},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}

// Perspective4 returns a right-handed perspective projection mapping
// depth to [-1, 1]. fovY is in radians.
func Perspective4(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		{f / aspect},
		{1: f},
		{2: (far + near) * nf, 3: -1},
		{2: 2 * far * near * nf},
	}
}
