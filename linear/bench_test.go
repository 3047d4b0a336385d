// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"testing"
)

func BenchmarkRotate(b *testing.B) {
	var q Q
	q.Rotate(Rad(40), &V3{1, 2, 3})
	v := V3{-2, 3, 9}
	var u, w V3
	b.Run("V3.RotateQ", func(b *testing.B) {
		for range b.N {
			u.RotateQ(&q, &v)
		}
	})
	b.Run("V3.Mul", func(b *testing.B) {
		var m M4
		var n M3
		m.RotateQ(&q)
		n.FromM4(&m)
		for range b.N {
			w.Mul(&n, &v)
		}
	})
	b.Log(u, w)
}

func BenchmarkSlerp(b *testing.B) {
	var p, q, r Q
	p.Rotate(Rad(10), &V3{0, 1})
	q.Rotate(Rad(170), &V3{1, 0, 1})
	b.Run("Q.Slerp", func(b *testing.B) {
		for i := range b.N {
			r.Slerp(&p, &q, float32(i%100)/100)
		}
	})
	b.Log(r)
}

func BenchmarkM4(b *testing.B) {
	var l, r, m M4
	l.Translate(1, 2, 3)
	r.Scale(2, 3, 4)
	b.Run("M4.Mul", func(b *testing.B) {
		for range b.N {
			m.Mul(&l, &r)
		}
	})
	b.Run("M4.Invert", func(b *testing.B) {
		for range b.N {
			m.Invert(&r)
		}
	})
	b.Log(m)
}
