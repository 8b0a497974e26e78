// math/vecmat.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"errors"
	"fmt"
	gomath "math"
)

// Geometry is done in float64 throughout: the geocentric and
// stereographic stages take differences of nearly equal values at earth
// radius scale, which float32 can't represent well. Mesh buffers are
// narrowed to float32 only when they're handed to the rasterizer.

var ErrMatrixDimension = errors.New("matrix is not 3x3")

///////////////////////////////////////////////////////////////////////////
// Vector2

// Vector2 is a point or direction in a plane: the stereographic plane
// (metres), or canvas pixels.
type Vector2 [2]float64

// a+b
func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2{a[0] + b[0], a[1] + b[1]}
}

// a-b
func (a Vector2) Sub(b Vector2) Vector2 {
	return Vector2{a[0] - b[0], a[1] - b[1]}
}

// a*s
func (a Vector2) Scale(s float64) Vector2 {
	return Vector2{s * a[0], s * a[1]}
}

func (a Vector2) Dot(b Vector2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Cross returns the z component of the 3D cross product of a and b
// extended with z=0.
func (a Vector2) Cross(b Vector2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func (a Vector2) Norm() float64 {
	return gomath.Hypot(a[0], a[1])
}

func (a Vector2) Negate() Vector2 {
	return Vector2{-a[0], -a[1]}
}

// Unit returns a scaled to unit length; the zero vector is returned
// unchanged.
func (a Vector2) Unit() Vector2 {
	l := a.Norm()
	if l == 0 {
		return Vector2{}
	}
	return a.Scale(1 / l)
}

// Perp returns a rotated 90 degrees counter-clockwise.
func (a Vector2) Perp() Vector2 {
	return Vector2{-a[1], a[0]}
}

func (a Vector2) Distance(b Vector2) float64 {
	return a.Sub(b).Norm()
}

func (a Vector2) Equal(b Vector2, eps float64) bool {
	return NearlyEqual(a[0], b[0], eps) && NearlyEqual(a[1], b[1], eps)
}

///////////////////////////////////////////////////////////////////////////
// Vector3

// Vector3 is a 3D direction or position. Normalized, it doubles as a
// geocentric n-vector: the point on the unit sphere whose surface normal
// it is.
type Vector3 [3]float64

func (a Vector3) Add(b Vector3) Vector3 {
	return Vector3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vector3) Sub(b Vector3) Vector3 {
	return Vector3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a Vector3) Scale(s float64) Vector3 {
	return Vector3{s * a[0], s * a[1], s * a[2]}
}

func (a Vector3) Dot(b Vector3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a Vector3) Norm() float64 {
	return gomath.Sqrt(a.Dot(a))
}

func (a Vector3) Negate() Vector3 {
	return Vector3{-a[0], -a[1], -a[2]}
}

func (a Vector3) Unit() Vector3 {
	l := a.Norm()
	if l == 0 {
		return Vector3{}
	}
	return a.Scale(1 / l)
}

func (a Vector3) IsZero() bool {
	return a[0] == 0 && a[1] == 0 && a[2] == 0
}

func (a Vector3) Equal(b Vector3, eps float64) bool {
	return NearlyEqual(a[0], b[0], eps) && NearlyEqual(a[1], b[1], eps) &&
		NearlyEqual(a[2], b[2], eps)
}

// XY drops the z component.
func (a Vector3) XY() Vector2 {
	return Vector2{a[0], a[1]}
}

// Float32 returns the components narrowed for upload to the GPU.
func (a Vector3) Float32() [3]float32 {
	return [3]float32{float32(a[0]), float32(a[1]), float32(a[2])}
}

///////////////////////////////////////////////////////////////////////////
// Triangle

// Triangle holds three vertices of the same vector type; it's shared by
// the planar and spherical code.
type Triangle[V any] [3]V

///////////////////////////////////////////////////////////////////////////
// 3x3 matrix

// Matrix3 is a row-major 3x3 matrix. Transform computes M*v with v as a
// column vector, which is also what a shader computes for `v * m` when m
// is uploaded with the rows as given here.
type Matrix3 [3][3]float64

func MakeMatrix3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) Matrix3 {
	return [3][3]float64{
		{m00, m01, m02},
		{m10, m11, m12},
		{m20, m21, m22}}
}

// Matrix3FromRows builds a matrix from a slice of rows, failing unless
// there are exactly three rows of three values each.
func Matrix3FromRows(rows [][]float64) (Matrix3, error) {
	if len(rows) != 3 {
		return Matrix3{}, fmt.Errorf("%d rows: %w", len(rows), ErrMatrixDimension)
	}
	var m Matrix3
	for i, r := range rows {
		if len(r) != 3 {
			return Matrix3{}, fmt.Errorf("row %d has %d columns: %w", i, len(r), ErrMatrixDimension)
		}
		copy(m[i][:], r)
	}
	return m, nil
}

func Identity3x3() Matrix3 {
	var m Matrix3
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	return m
}

// Mul returns m*m2.
func (m Matrix3) Mul(m2 Matrix3) Matrix3 {
	var result Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[i][0]*m2[0][j] + m[i][1]*m2[1][j] + m[i][2]*m2[2][j]
		}
	}
	return result
}

// Transform returns m*v.
func (m Matrix3) Transform(v Vector3) Vector3 {
	return Vector3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func (m Matrix3) Transpose() Matrix3 {
	return MakeMatrix3(
		m[0][0], m[1][0], m[2][0],
		m[0][1], m[1][1], m[2][1],
		m[0][2], m[1][2], m[2][2])
}

func (m Matrix3) Column(j int) Vector3 {
	return Vector3{m[0][j], m[1][j], m[2][j]}
}

func (m Matrix3) Row(i int) Vector3 {
	return Vector3(m[i])
}

func (m Matrix3) Determinant() float64 {
	minor12 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	minor02 := m[1][0]*m[2][2] - m[1][2]*m[2][0]
	minor01 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	return m[0][2]*minor01 + (m[0][0]*minor12 - m[0][1]*minor02)
}

// The following treat m as a 2D affine transform (third row [0 0 1])
// and post-multiply, so that the last operation applied is the first
// one applied to points.

func (m Matrix3) Scale(x, y float64) Matrix3 {
	return m.Mul(MakeMatrix3(x, 0, 0, 0, y, 0, 0, 0, 1))
}

func (m Matrix3) Translate(x, y float64) Matrix3 {
	return m.Mul(MakeMatrix3(1, 0, x, 0, 1, y, 0, 0, 1))
}

func (m Matrix3) Rotate(theta float64) Matrix3 {
	s, c := gomath.Sincos(theta)
	return m.Mul(MakeMatrix3(c, -s, 0, s, c, 0, 0, 0, 1))
}

func (m Matrix3) TransformPoint(p Vector2) Vector2 {
	return Vector2{
		m[0][0]*p[0] + m[0][1]*p[1] + m[0][2],
		m[1][0]*p[0] + m[1][1]*p[1] + m[1][2],
	}
}

func (m Matrix3) TransformVector(p Vector2) Vector2 {
	return Vector2{
		m[0][0]*p[0] + m[0][1]*p[1],
		m[1][0]*p[0] + m[1][1]*p[1],
	}
}

// Float32 returns the matrix narrowed for upload to the GPU, still row-major.
func (m Matrix3) Float32() [9]float32 {
	var r [9]float32
	for i := range 3 {
		for j := range 3 {
			r[3*i+j] = float32(m[i][j])
		}
	}
	return r
}

///////////////////////////////////////////////////////////////////////////
// Frame rotations

// RotationX, RotationY and RotationZ return the matrices that rotate the
// coordinate frame by theta radians about the given axis; applied to a
// fixed vector they turn it by -theta. This is the convention used for
// n-vector frame algebra, so that e.g. Rz(-lon)*Ry(lat) takes the
// local frame at (lat, lon) back to the earth frame.

func RotationX(theta float64) Matrix3 {
	s, c := gomath.Sincos(theta)
	return MakeMatrix3(
		1, 0, 0,
		0, c, s,
		0, -s, c)
}

func RotationY(theta float64) Matrix3 {
	s, c := gomath.Sincos(theta)
	return MakeMatrix3(
		c, 0, -s,
		0, 1, 0,
		s, 0, c)
}

func RotationZ(theta float64) Matrix3 {
	s, c := gomath.Sincos(theta)
	return MakeMatrix3(
		c, s, 0,
		-s, c, 0,
		0, 0, 1)
}
