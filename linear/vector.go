// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements math for 3D graphics.
package linear

import (
	"github.com/chewxy/math32"
)

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float32, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// MulC sets v to contain the component-wise product of l and r.
func (v *V3) MulC(l, r *V3) {
	for i := range v {
		v[i] = l[i] * r[i]
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Norm sets v to contain w normalized.
// If w has zero length, v is set to the zero vector.
func (v *V3) Norm(w *V3) {
	l := w.Len()
	if l == 0 {
		*v = V3{}
		return
	}
	v.Scale(1/l, w)
}

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	*v = V3{
		l[1]*r[2] - l[2]*r[1],
		l[2]*r[0] - l[0]*r[2],
		l[0]*r[1] - l[1]*r[0],
	}
}

// Mul sets v to contain m ⋅ w.
func (v *V3) Mul(m *M3, w *V3) {
	var u V3
	for i := range u {
		for j := range m {
			u[i] += m[j][i] * w[j]
		}
	}
	*v = u
}

// Lerp sets v to contain the linear interpolation
// between a and b by t.
func (v *V3) Lerp(a, b *V3, t float32) {
	for i := range v {
		v[i] = a[i] + (b[i]-a[i])*t
	}
}

// RotateQ sets v to contain w rotated by q.
// It computes the sandwich product q ⋅ w ⋅ q*, so q is
// expected to have unit length.
func (v *V3) RotateQ(q *Q, w *V3) {
	p := Q{V: *w}
	var c Q
	c.Conj(q)
	p.Mul(q, &p)
	p.Mul(&p, &c)
	*v = p.V
}

// Near reports whether every component of v is within
// tol of the corresponding component of w.
func (v *V3) Near(w *V3, tol float32) bool {
	for i := range v {
		if math32.Abs(v[i]-w[i]) > tol {
			return false
		}
	}
	return true
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// Add sets v to contain l + r.
func (v *V4) Add(l, r *V4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V4) Sub(l, r *V4) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V4) Scale(s float32, w *V4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *V4) Dot(w *V4) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V4) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Norm sets v to contain w normalized.
// If w has zero length, v is set to the zero vector.
func (v *V4) Norm(w *V4) {
	l := w.Len()
	if l == 0 {
		*v = V4{}
		return
	}
	v.Scale(1/l, w)
}

// Mul sets v to contain m ⋅ w.
func (v *V4) Mul(m *M4, w *V4) {
	var u V4
	for i := range u {
		for j := range m {
			u[i] += m[j][i] * w[j]
		}
	}
	*v = u
}
