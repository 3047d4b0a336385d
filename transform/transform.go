// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package transform implements rigid-body transforms.
//
// A Transform keeps its orientation twice: as an
// orthonormal basis (up, right and front vectors) and as
// the unit quaternion that carries the canonical basis
// onto it. Every mutator keeps both in sync and eagerly
// recomputes the local matrix
//
//	T(position) ⋅ R(rotation) ⋅ S(scale)
package transform

import (
	"weak"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/sim"
)

// Canonical basis.
var (
	CanonicalFront = linear.V3{0, 0, 1}
	CanonicalUp    = linear.V3{0, 1, 0}
	CanonicalRight = linear.V3{-1, 0, 0}
)

// WorldUp is the reference used by LookAt to derive the
// up and right vectors.
var WorldUp = linear.V3{0, 1, 0}

const (
	// Added to (subtracted from) half-turn angles in
	// Rotate.
	halfTurnNudge = 1e-4

	// Below this length, front × WorldUp is taken as
	// degenerate.
	parallelTol = 1e-6
)

var (
	// ErrSamePosition means that a target cannot be
	// tracked because it sits at the tracker's position.
	ErrSamePosition = errors.New("transform: target position equals tracker position")

	// ErrTrackSelf means that a transform was asked to
	// track itself.
	ErrTrackSelf = errors.New("transform: transform cannot track itself")
)

// Transform is a rigid-body pose with non-uniform scale.
// The zero value for Transform is not valid; use New or
// Init.
type Transform struct {
	pos   linear.V3
	scale linear.V3
	up    linear.V3
	right linear.V3
	front linear.V3
	rot   linear.Q
	local linear.M4

	// Point being looked at.
	target linear.V3

	tracking bool
	tracked  weak.Pointer[Transform]
	sched    *sim.Scheduler
	simID    sim.ID

	onChange func(*Transform)
}

// New creates an initialized transform.
func New() *Transform { return new(Transform).Init() }

// Init initializes t to the identity transform.
// It must not be called on a transform that is tracking
// a target.
func (t *Transform) Init() *Transform {
	*t = Transform{}
	t.reset()
	return t
}

func (t *Transform) reset() {
	t.pos = linear.V3{}
	t.scale = linear.V3{1, 1, 1}
	t.up = CanonicalUp
	t.right = CanonicalRight
	t.front = CanonicalFront
	t.rot.I()
	t.target.Add(&t.pos, &t.front)
	t.local.I()
}

// Position returns the position of t.
func (t *Transform) Position() linear.V3 { return t.pos }

// Scaling returns the scale factors of t.
func (t *Transform) Scaling() linear.V3 { return t.scale }

// Up returns the up vector of t.
func (t *Transform) Up() linear.V3 { return t.up }

// Right returns the right vector of t.
func (t *Transform) Right() linear.V3 { return t.right }

// Front returns the front vector of t.
func (t *Transform) Front() linear.V3 { return t.front }

// Rotation returns the orientation of t.
func (t *Transform) Rotation() linear.Q { return t.rot }

// TargetPoint returns the point that t is looking at.
func (t *Transform) TargetPoint() linear.V3 { return t.target }

// Matrix returns the local transform matrix of t.
// It must not be modified by the caller.
func (t *Transform) Matrix() *linear.M4 { return &t.local }

// Tracking reports whether t is tracking a target.
func (t *Transform) Tracking() bool { return t.tracking }

// OnChange sets a function to be called after every
// change to t. It replaces any previously set function.
// Passing nil removes the current one.
func (t *Transform) OnChange(f func(*Transform)) { t.onChange = f }

// Snapshot returns a copy of t that is neither tracking
// a target nor observed.
func (t *Transform) Snapshot() Transform {
	s := *t
	s.tracking = false
	s.tracked = weak.Pointer[Transform]{}
	s.sched = nil
	s.onChange = nil
	return s
}

// update recomputes the local matrix from scratch and
// notifies the observer.
func (t *Transform) update() {
	t.local.RotateQ(&t.rot)
	for i := range 3 {
		t.local[i][0] *= t.scale[i]
		t.local[i][1] *= t.scale[i]
		t.local[i][2] *= t.scale[i]
	}
	t.local.SetTranslation(&t.pos)
	t.changed()
}

func (t *Transform) changed() {
	if t.onChange != nil {
		t.onChange(t)
	}
}

// Translate moves t by d.
// Unless t is tracking a target, the target point moves
// along, so the look direction is preserved.
func (t *Transform) Translate(d linear.V3) *Transform {
	t.pos.Add(&t.pos, &d)
	t.local.SetTranslation(&t.pos)
	if !t.tracking {
		t.target.Add(&t.target, &d)
	}
	t.changed()
	return t
}

// SetPosition moves t to p.
func (t *Transform) SetPosition(p linear.V3) *Transform {
	var d linear.V3
	d.Sub(&p, &t.pos)
	return t.Translate(d)
}

// Scale multiplies the scale of t by s in every axis.
func (t *Transform) Scale(s float32) *Transform {
	return t.ScaleV(linear.V3{s, s, s})
}

// ScaleV multiplies the scale of t by v, component-wise.
func (t *Transform) ScaleV(v linear.V3) *Transform {
	t.scale.MulC(&t.scale, &v)
	t.update()
	return t
}

// SetScale replaces the scale of t.
func (t *Transform) SetScale(v linear.V3) *Transform {
	t.scale = v
	t.update()
	return t
}

// Rotate rotates t by deg degrees about axis.
// A zero-length axis leaves t unchanged.
//
// Half turns are nudged slightly off 180 degrees.
func (t *Transform) Rotate(deg float32, axis linear.V3) *Transform {
	if axis.Len() == 0 {
		return t
	}
	switch deg {
	case 180:
		deg -= halfTurnNudge
	case -180:
		deg += halfTurnNudge
	}
	var q linear.Q
	q.Rotate(linear.Rad(deg), &axis)
	t.up.RotateQ(&q, &t.up)
	t.right.RotateQ(&q, &t.right)
	t.front.RotateQ(&q, &t.front)
	var off linear.V3
	off.Sub(&t.target, &t.pos)
	off.RotateQ(&q, &off)
	t.target.Add(&t.pos, &off)
	t.rot.Mul(&q, &t.rot)
	t.orthonormalize()
	t.update()
	return t
}

// SetRotation replaces the orientation of t with q.
// The offset of the target point is reoriented along.
func (t *Transform) SetRotation(q linear.Q) *Transform {
	q.Norm(&q)
	var d, inv linear.Q
	inv.Conj(&t.rot)
	d.Mul(&q, &inv)
	var off linear.V3
	off.Sub(&t.target, &t.pos)
	off.RotateQ(&d, &off)
	t.target.Add(&t.pos, &off)
	t.rot = q
	t.up.RotateQ(&q, &CanonicalUp)
	t.right.RotateQ(&q, &CanonicalRight)
	t.front.RotateQ(&q, &CanonicalFront)
	t.orthonormalize()
	t.update()
	return t
}

// orthonormalize removes drift accumulated by repeated
// rotations.
func (t *Transform) orthonormalize() {
	t.rot.Norm(&t.rot)
	t.front.Norm(&t.front)
	var p linear.V3
	p.Scale(t.up.Dot(&t.front), &t.front)
	t.up.Sub(&t.up, &p)
	t.up.Norm(&t.up)
	t.right.Cross(&t.front, &t.up)
}

// LookAt orients t such that its front vector points
// towards the position of target.
func (t *Transform) LookAt(target *Transform) *Transform {
	return t.LookAtPoint(target.pos)
}

// LookAtPoint orients t such that its front vector points
// towards p.
// The up vector is derived from WorldUp. When the new
// front is parallel to WorldUp, the right vector is
// derived from the horizontal component of the previous
// front instead, so the result depends on the prior
// orientation of t.
// If p is at the position of t, nothing changes.
func (t *Transform) LookAtPoint(p linear.V3) *Transform {
	var f linear.V3
	f.Sub(&p, &t.pos)
	if f.Len() == 0 {
		return t
	}
	f.Norm(&f)

	var r linear.V3
	r.Cross(&f, &WorldUp)
	if r.Len() < parallelTol {
		r = t.fallbackRight()
	} else {
		r.Norm(&r)
	}
	var u linear.V3
	u.Cross(&r, &f)
	u.Norm(&u)

	// Swing the old front onto the new one, then roll
	// about the new front so the old up lands on u.
	var swing, roll linear.Q
	swing.FromTo(&t.front, &f)
	var u1 linear.V3
	u1.RotateQ(&swing, &t.up)
	var c linear.V3
	c.Cross(&u1, &u)
	roll.Rotate(math32.Atan2(c.Dot(&f), u1.Dot(&u)), &f)
	t.rot.Mul(&swing, &t.rot)
	t.rot.Mul(&roll, &t.rot)
	t.rot.Norm(&t.rot)

	t.front, t.right, t.up = f, r, u
	t.target = p
	t.update()
	return t
}

// fallbackRight returns the right vector to use when the
// new front is parallel to WorldUp.
func (t *Transform) fallbackRight() linear.V3 {
	h := linear.V3{t.front[0], 0, t.front[2]}
	var r linear.V3
	if h.Len() >= parallelTol {
		r.Cross(&h, &WorldUp)
	} else {
		// Front was already vertical, in which case
		// right is horizontal.
		r = linear.V3{t.right[0], 0, t.right[2]}
	}
	if r.Len() < parallelTol {
		return CanonicalRight
	}
	r.Norm(&r)
	return r
}

// LookAtFrom moves t to the position of source, then
// calls t.LookAt(target).
func (t *Transform) LookAtFrom(target, source *Transform) *Transform {
	t.SetPosition(source.pos)
	return t.LookAt(target)
}

// ResetTransform restores the canonical basis, the zero
// position and unit scale.
func (t *Transform) ResetTransform() *Transform {
	t.reset()
	t.changed()
	return t
}
