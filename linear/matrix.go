// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Invert sets m to contain the inverse of n.
// n must not be singular.
func (m *M3) Invert(n *M3) {
	s0 := n[1][1]*n[2][2] - n[1][2]*n[2][1]
	s1 := n[1][0]*n[2][2] - n[1][2]*n[2][0]
	s2 := n[1][0]*n[2][1] - n[1][1]*n[2][0]
	idet := 1 / (n[0][0]*s0 - n[0][1]*s1 + n[0][2]*s2)
	var r M3
	r[0][0] = s0 * idet
	r[0][1] = -(n[0][1]*n[2][2] - n[0][2]*n[2][1]) * idet
	r[0][2] = (n[0][1]*n[1][2] - n[0][2]*n[1][1]) * idet
	r[1][0] = -s1 * idet
	r[1][1] = (n[0][0]*n[2][2] - n[0][2]*n[2][0]) * idet
	r[1][2] = -(n[0][0]*n[1][2] - n[0][2]*n[1][0]) * idet
	r[2][0] = s2 * idet
	r[2][1] = -(n[0][0]*n[2][1] - n[0][1]*n[2][0]) * idet
	r[2][2] = (n[0][0]*n[1][1] - n[0][1]*n[1][0]) * idet
	*m = r
}

// Det returns the determinant of m.
func (m *M3) Det() float32 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[1][0]*(m[0][1]*m[2][2]-m[0][2]*m[2][1]) +
		m[2][0]*(m[0][1]*m[1][2]-m[0][2]*m[1][1])
}

// FromM4 sets m to contain the upper-left 3x3 of n.
func (m *M3) FromM4(n *M4) {
	for i := range m {
		m[i] = V3{n[i][0], n[i][1], n[i][2]}
	}
}

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Invert sets m to contain the inverse of n.
// n must not be singular.
func (m *M4) Invert(n *M4) {
	s0 := n[0][0]*n[1][1] - n[0][1]*n[1][0]
	s1 := n[0][0]*n[1][2] - n[0][2]*n[1][0]
	s2 := n[0][0]*n[1][3] - n[0][3]*n[1][0]
	s3 := n[0][1]*n[1][2] - n[0][2]*n[1][1]
	s4 := n[0][1]*n[1][3] - n[0][3]*n[1][1]
	s5 := n[0][2]*n[1][3] - n[0][3]*n[1][2]
	c0 := n[2][0]*n[3][1] - n[2][1]*n[3][0]
	c1 := n[2][0]*n[3][2] - n[2][2]*n[3][0]
	c2 := n[2][0]*n[3][3] - n[2][3]*n[3][0]
	c3 := n[2][1]*n[3][2] - n[2][2]*n[3][1]
	c4 := n[2][1]*n[3][3] - n[2][3]*n[3][1]
	c5 := n[2][2]*n[3][3] - n[2][3]*n[3][2]
	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)
	var r M4
	r[0][0] = (c5*n[1][1] - c4*n[1][2] + c3*n[1][3]) * idet
	r[0][1] = (-c5*n[0][1] + c4*n[0][2] - c3*n[0][3]) * idet
	r[0][2] = (s5*n[3][1] - s4*n[3][2] + s3*n[3][3]) * idet
	r[0][3] = (-s5*n[2][1] + s4*n[2][2] - s3*n[2][3]) * idet
	r[1][0] = (-c5*n[1][0] + c2*n[1][2] - c1*n[1][3]) * idet
	r[1][1] = (c5*n[0][0] - c2*n[0][2] + c1*n[0][3]) * idet
	r[1][2] = (-s5*n[3][0] + s2*n[3][2] - s1*n[3][3]) * idet
	r[1][3] = (s5*n[2][0] - s2*n[2][2] + s1*n[2][3]) * idet
	r[2][0] = (c4*n[1][0] - c2*n[1][1] + c0*n[1][3]) * idet
	r[2][1] = (-c4*n[0][0] + c2*n[0][1] - c0*n[0][3]) * idet
	r[2][2] = (s4*n[3][0] - s2*n[3][1] + s0*n[3][3]) * idet
	r[2][3] = (-s4*n[2][0] + s2*n[2][1] - s0*n[2][3]) * idet
	r[3][0] = (-c3*n[1][0] + c1*n[1][1] - c0*n[1][2]) * idet
	r[3][1] = (c3*n[0][0] - c1*n[0][1] + c0*n[0][2]) * idet
	r[3][2] = (-s3*n[3][0] + s1*n[3][1] - s0*n[3][2]) * idet
	r[3][3] = (s3*n[2][0] - s1*n[2][1] + s0*n[2][2]) * idet
	*m = r
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// SetTranslation replaces the translation column of m,
// leaving the upper-left 3x3 untouched.
func (m *M4) SetTranslation(v *V3) { m[3] = V4{v[0], v[1], v[2], m[3][3]} }

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(x, y, z float32) { *m = M4{{x}, {1: y}, {2: z}, {3: 1}} }

// RotateQ sets m to contain the rotation described by q.
// q must have unit length.
func (m *M4) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// LookAt sets m to contain a right-handed view matrix
// for an eye at eye looking towards center.
func (m *M4) LookAt(eye, center, up *V3) {
	m.FromMGL(mgl32.LookAtV(mgl32.Vec3(*eye), mgl32.Vec3(*center), mgl32.Vec3(*up)))
}

// Perspective sets m to contain a perspective projection.
// fovy is in radians.
func (m *M4) Perspective(fovy, aspect, znear, zfar float32) {
	m.FromMGL(mgl32.Perspective(fovy, aspect, znear, zfar))
}

// Ortho sets m to contain an orthographic projection.
func (m *M4) Ortho(left, right, bottom, top, znear, zfar float32) {
	m.FromMGL(mgl32.Ortho(left, right, bottom, top, znear, zfar))
}

// FromMGL sets m to contain n.
// Both types are column-major.
func (m *M4) FromMGL(n mgl32.Mat4) {
	for i := range m {
		m[i] = V4(n[i*4 : i*4+4])
	}
}

// MGL returns m as a mgl32.Mat4.
func (m *M4) MGL() (n mgl32.Mat4) {
	for i := range m {
		copy(n[i*4:i*4+4], m[i][:])
	}
	return
}

// Floats returns the 16 column-major elements of m.
// The slice aliases m.
func (m *M4) Floats() []float32 { return unsafe.Slice((*float32)(unsafe.Pointer(m)), 16) }
