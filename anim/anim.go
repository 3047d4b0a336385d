// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package anim implements transform animation.
package anim

import (
	"log/slog"

	"github.com/chewxy/math32"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/sim"
	"github.com/gviegas/stage/transform"
)

// tol is the tolerance used to decide whether an
// attribute differs between origin and target.
const tol = 1e-6

// Attr is a set of animated attributes.
type Attr int

// Attributes.
const (
	Position Attr = 1 << iota
	Scale
	Rotation
)

// Animation interpolates a transform from its state at
// creation towards that of a target transform.
type Animation struct {
	current *transform.Transform
	target  *transform.Transform
	origin  transform.Transform
	speed   float32
	prog    float32
	active  Attr

	sched *sim.Scheduler
	id    sim.ID
}

// New creates a new animation that drives current towards
// target.
// The state of current is copied when New is called, and
// target is read on every step, so it can move while the
// animation runs.
// speed is the fraction of the animation covered per unit
// of step.
func New(current, target *transform.Transform, speed float32) *Animation {
	a := &Animation{
		current: current,
		target:  target,
		origin:  current.Snapshot(),
		speed:   speed,
	}
	op, tp := a.origin.Position(), target.Position()
	if !op.Near(&tp, tol) {
		a.active |= Position
	}
	os, ts := a.origin.Scaling(), target.Scaling()
	if !os.Near(&ts, tol) {
		a.active |= Scale
	}
	or, tr := a.origin.Rotation(), target.Rotation()
	if d := math32.Abs(or.Dot(&tr)); d < 1-tol {
		a.active |= Rotation
	}
	return a
}

// Active returns the set of attributes that a animates.
func (a *Animation) Active() Attr { return a.active }

// Origin returns a copy of the state of the animated
// transform when a was created.
func (a *Animation) Origin() transform.Transform { return a.origin }

// Speed returns the speed of a.
func (a *Animation) Speed() float32 { return a.speed }

// SetSpeed sets the speed of a.
// It does not change the progress made so far.
func (a *Animation) SetSpeed(s float32) { a.speed = s }

// Progress returns the progress of a, in the range [0, 1].
func (a *Animation) Progress() float32 { return a.prog }

// Done reports whether a has reached its target.
func (a *Animation) Done() bool { return a.prog >= 1 }

// Step advances a by delta times its speed and updates the
// animated transform.
func (a *Animation) Step(delta float32) {
	a.prog = min(max(a.prog+delta*a.speed, 0), 1)
	if a.active&Position != 0 {
		op, tp := a.origin.Position(), a.target.Position()
		var p linear.V3
		p.Lerp(&op, &tp, a.prog)
		a.current.SetPosition(p)
	}
	if a.active&Scale != 0 {
		os, ts := a.origin.Scaling(), a.target.Scaling()
		var s linear.V3
		s.Lerp(&os, &ts, a.prog)
		a.current.SetScale(s)
	}
	if a.active&Rotation != 0 {
		or, tr := a.origin.Rotation(), a.target.Rotation()
		var q linear.Q
		q.Slerp(&or, &tr, a.prog)
		a.current.SetRotation(q)
	}
}

// Play registers a with s.
// a unregisters itself once it is done.
func (a *Animation) Play(s *sim.Scheduler) {
	a.Stop()
	a.sched = s
	a.id = s.Register(a)
	slog.Debug("anim.Play", "id", a.id, "attr", a.active)
}

// Stop unregisters a from the scheduler it was given in
// Play. Progress is kept.
func (a *Animation) Stop() {
	if a.sched != nil {
		a.sched.Unregister(a.id)
		a.sched = nil
	}
}

// Playing reports whether a is registered with a
// scheduler.
func (a *Animation) Playing() bool { return a.sched != nil }

// Update implements sim.Updater.
func (a *Animation) Update(dt float32) {
	a.Step(dt)
	if a.Done() {
		a.Stop()
	}
}
