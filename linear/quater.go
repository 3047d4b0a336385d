// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// I makes q an identity quaternion.
func (q *Q) I() { *q = Q{R: 1} }

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	var v, w V3
	v.Scale(r.R, &l.V)
	w.Scale(l.R, &r.V)
	v.Add(&v, &w)
	w.Cross(&l.V, &r.V)
	d := l.V.Dot(&r.V)
	q.R = l.R*r.R - d
	q.V.Add(&v, &w)
}

// Conj sets q to contain the conjugate of p.
func (q *Q) Conj(p *Q) {
	q.V.Scale(-1, &p.V)
	q.R = p.R
}

// Inverse sets q to contain the inverse of p.
// For unit quaternions, this is equivalent to Conj.
func (q *Q) Inverse(p *Q) {
	d := p.Dot(p)
	if d == 0 {
		*q = Q{}
		return
	}
	q.Conj(p)
	q.V.Scale(1/d, &q.V)
	q.R /= d
}

// Dot returns the dot product of q and p.
func (q *Q) Dot(p *Q) float32 { return q.V.Dot(&p.V) + q.R*p.R }

// Len returns the length of q.
func (q *Q) Len() float32 { return math32.Sqrt(q.Dot(q)) }

// Norm sets q to contain p normalized.
// If p has zero length, q is set to the identity.
func (q *Q) Norm(p *Q) {
	l := p.Len()
	if l == 0 {
		q.I()
		return
	}
	q.V.Scale(1/l, &p.V)
	q.R = p.R / l
}

// Rotate sets q to contain a rotation of angle radians
// about axis.
// axis need not be normalized, but must not have zero
// length.
func (q *Q) Rotate(angle float32, axis *V3) {
	var a V3
	a.Norm(axis)
	s, c := math32.Sincos(angle * 0.5)
	q.V.Scale(s, &a)
	q.R = c
}

// FromTo sets q to contain the shortest rotation that
// carries the unit vector from onto the unit vector to.
// When the vectors are opposite, the rotation is a half
// turn about an arbitrary axis orthogonal to from.
func (q *Q) FromTo(from, to *V3) {
	var c V3
	c.Cross(from, to)
	d := from.Dot(to)
	if d < 0 && c.Len() < 1e-6 {
		axis := V3{1}
		if math32.Abs(from[0]) > 0.9 {
			axis = V3{0, 1}
		}
		axis.Cross(from, &axis)
		axis.Norm(&axis)
		*q = Q{V: axis}
		return
	}
	*q = Q{V: c, R: 1 + d}
	q.Norm(q)
}

// FromM3 sets q to contain the rotation described by the
// orthonormal matrix m.
func (q *Q) FromM3(m *M3) {
	tr := m[0][0] + m[1][1] + m[2][2]
	switch {
	case tr > 0:
		s := 0.5 / math32.Sqrt(tr+1)
		q.R = 0.25 / s
		q.V = V3{(m[1][2] - m[2][1]) * s, (m[2][0] - m[0][2]) * s, (m[0][1] - m[1][0]) * s}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := 2 * math32.Sqrt(1+m[0][0]-m[1][1]-m[2][2])
		q.R = (m[1][2] - m[2][1]) / s
		q.V = V3{0.25 * s, (m[1][0] + m[0][1]) / s, (m[2][0] + m[0][2]) / s}
	case m[1][1] > m[2][2]:
		s := 2 * math32.Sqrt(1+m[1][1]-m[0][0]-m[2][2])
		q.R = (m[2][0] - m[0][2]) / s
		q.V = V3{(m[1][0] + m[0][1]) / s, 0.25 * s, (m[2][1] + m[1][2]) / s}
	default:
		s := 2 * math32.Sqrt(1+m[2][2]-m[0][0]-m[1][1])
		q.R = (m[0][1] - m[1][0]) / s
		q.V = V3{(m[2][0] + m[0][2]) / s, (m[2][1] + m[1][2]) / s, 0.25 * s}
	}
	q.Norm(q)
}

// Slerp sets q to contain the spherical linear
// interpolation between a and b by t.
// It always takes the shortest path.
func (q *Q) Slerp(a, b *Q, t float32) {
	e := *b
	d := a.Dot(b)
	if d < 0 {
		e.V.Scale(-1, &e.V)
		e.R = -e.R
		d = -d
	}
	var s0, s1 float32
	if d > 0.9995 {
		s0, s1 = 1-t, t
	} else {
		th := math32.Acos(d)
		sth := math32.Sin(th)
		s0 = math32.Sin((1-t)*th) / sth
		s1 = math32.Sin(t*th) / sth
	}
	var v, w V3
	v.Scale(s0, &a.V)
	w.Scale(s1, &e.V)
	r := Q{R: s0*a.R + s1*e.R}
	r.V.Add(&v, &w)
	q.Norm(&r)
}

// FromMGL sets q to contain p.
func (q *Q) FromMGL(p mgl32.Quat) { *q = Q{V: V3(p.V), R: p.W} }

// MGL returns q as a mgl32.Quat.
func (q *Q) MGL() mgl32.Quat { return mgl32.Quat{W: q.R, V: mgl32.Vec3(q.V)} }

// Rad converts degrees to radians.
func Rad(deg float32) float32 { return deg * math32.Pi / 180 }

// Deg converts radians to degrees.
func Deg(rad float32) float32 { return rad * 180 / math32.Pi }
