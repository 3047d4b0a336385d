// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package camera

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/stage/input"
	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/sim"
	"github.com/gviegas/stage/transform"
)

// maxPitch limits how far controllers tilt the camera
// up or down, in degrees.
const maxPitch = 89

// activation tracks the registration of a controller.
type activation struct {
	sched *sim.Scheduler
	disp  *input.Dispatcher
	id    sim.ID
}

func (a *activation) activate(c any, s *sim.Scheduler, d *input.Dispatcher) {
	a.deactivate(c)
	a.sched = s
	a.id = s.Register(c.(sim.Updater))
	if d != nil {
		d.Subscribe(c)
		a.disp = d
	}
}

func (a *activation) deactivate(c any) {
	if a.sched != nil {
		a.sched.Unregister(a.id)
		a.sched = nil
	}
	if a.disp != nil {
		a.disp.Unsubscribe(c)
		a.disp = nil
	}
}

func (a *activation) active() bool { return a.sched != nil }

// drag tracks pointer movement while a button is held.
type drag struct {
	held   bool
	x, y   int
	dx, dy int
}

func (d *drag) button(btn input.Button, pressed bool, x, y int) {
	if btn != input.BtnLeft {
		return
	}
	d.held = pressed
	d.x, d.y = x, y
}

func (d *drag) motion(x, y int) {
	if d.held {
		d.dx += x - d.x
		d.dy += y - d.y
	}
	d.x, d.y = x, y
}

// take returns and clears the accumulated movement.
func (d *drag) take() (dx, dy int) {
	dx, dy = d.dx, d.dy
	d.dx, d.dy = 0, 0
	return
}

// Fly is a free-flying camera controller.
// Movement keys are WASD plus Space (up) and LShift
// (down). Dragging with the left button turns the camera.
// Scrolling changes the speed.
type Fly struct {
	cam   *Camera
	Speed float32 // Units per second.
	// Turn rate, in degrees per pixel of pointer
	// movement.
	Sensitivity float32

	keys  input.KeyState
	drag  drag
	pitch float32
	act   activation
}

// NewFly creates a new Fly controller for c.
func NewFly(c *Camera, speed, sensitivity float32) *Fly {
	return &Fly{
		cam:         c,
		Speed:       speed,
		Sensitivity: sensitivity,
	}
}

// Activate registers f with s and subscribes f to
// events from d. d may be nil.
// It replaces any previous activation.
func (f *Fly) Activate(s *sim.Scheduler, d *input.Dispatcher) { f.act.activate(f, s, d) }

// Deactivate reverts Activate.
// It can be called from within f.Update.
func (f *Fly) Deactivate() { f.act.deactivate(f) }

// Active reports whether f is activated.
func (f *Fly) Active() bool { return f.act.active() }

// KeyboardKey implements input.KeyboardHandler.
func (f *Fly) KeyboardKey(key input.Key, pressed bool, _ input.Modifier) {
	f.keys.Set(key, pressed)
}

// PointerButton implements input.PointerHandler.
func (f *Fly) PointerButton(btn input.Button, pressed bool, x, y int) {
	f.drag.button(btn, pressed, x, y)
}

// PointerMotion implements input.PointerHandler.
func (f *Fly) PointerMotion(newX, newY int) { f.drag.motion(newX, newY) }

// Scroll implements input.ScrollHandler.
// Each unit of dy changes the speed by 10%.
func (f *Fly) Scroll(_, dy float32) {
	f.Speed *= max(1+dy*0.1, 0.1)
}

// Update implements sim.Updater.
func (f *Fly) Update(dt float32) {
	t := f.cam.Transform()
	if dx, dy := f.drag.take(); dx != 0 || dy != 0 {
		yaw := -float32(dx) * f.Sensitivity
		pitch := -float32(dy) * f.Sensitivity
		pitch = min(max(f.pitch+pitch, -maxPitch), maxPitch) - f.pitch
		f.pitch += pitch
		if yaw != 0 {
			t.Rotate(yaw, transform.WorldUp)
		}
		if pitch != 0 {
			t.Rotate(pitch, t.Right())
		}
	}

	var move linear.V3
	front := t.Front()
	right := t.Right()
	axes := [...]struct {
		key input.Key
		dir *linear.V3
		s   float32
	}{
		{input.KeyW, &front, 1},
		{input.KeyS, &front, -1},
		{input.KeyD, &right, 1},
		{input.KeyA, &right, -1},
		{input.KeySpace, &transform.WorldUp, 1},
		{input.KeyLShift, &transform.WorldUp, -1},
	}
	for _, a := range axes {
		if f.keys.Down(a.key) {
			var v linear.V3
			v.Scale(a.s, a.dir)
			move.Add(&move, &v)
		}
	}
	if move.Len() == 0 {
		return
	}
	move.Norm(&move)
	move.Scale(f.Speed*dt, &move)
	t.Translate(move)
}

// Orbit is a controller that keeps the camera looking at
// a target point from a given distance.
// Dragging with the left button orbits around the
// target. Scrolling zooms.
type Orbit struct {
	cam      *Camera
	Target   linear.V3
	Distance float32
	Pitch    float32 // Degrees, about the horizontal axis.
	Yaw      float32 // Degrees, about WorldUp.
	// Degrees per pixel of pointer movement.
	Sensitivity float32
	// Fraction of the distance covered by each unit
	// of scroll.
	ZoomFactor  float32
	MinDistance float32

	drag drag
	act  activation
}

// NewOrbit creates a new Orbit controller for c.
func NewOrbit(c *Camera, target linear.V3, dist, pitch, yaw float32) *Orbit {
	return &Orbit{
		cam:         c,
		Target:      target,
		Distance:    dist,
		Pitch:       pitch,
		Yaw:         yaw,
		Sensitivity: 0.25,
		ZoomFactor:  0.1,
		MinDistance: 0.1,
	}
}

// Activate registers o with s and subscribes o to
// events from d. d may be nil.
func (o *Orbit) Activate(s *sim.Scheduler, d *input.Dispatcher) { o.act.activate(o, s, d) }

// Deactivate reverts Activate.
func (o *Orbit) Deactivate() { o.act.deactivate(o) }

// Active reports whether o is activated.
func (o *Orbit) Active() bool { return o.act.active() }

// PointerButton implements input.PointerHandler.
func (o *Orbit) PointerButton(btn input.Button, pressed bool, x, y int) {
	o.drag.button(btn, pressed, x, y)
}

// PointerMotion implements input.PointerHandler.
func (o *Orbit) PointerMotion(newX, newY int) { o.drag.motion(newX, newY) }

// Scroll implements input.ScrollHandler.
func (o *Orbit) Scroll(_, dy float32) {
	o.Distance = max(o.Distance*(1-dy*o.ZoomFactor), o.MinDistance)
}

// Position returns the point from which o looks at its
// target.
func (o *Orbit) Position() linear.V3 {
	sp, cp := math32.Sincos(linear.Rad(o.Pitch))
	sy, cy := math32.Sincos(linear.Rad(o.Yaw))
	return linear.V3{
		o.Target[0] + o.Distance*cp*sy,
		o.Target[1] + o.Distance*sp,
		o.Target[2] + o.Distance*cp*cy,
	}
}

// Update implements sim.Updater.
func (o *Orbit) Update(float32) {
	dx, dy := o.drag.take()
	o.Yaw -= float32(dx) * o.Sensitivity
	o.Pitch = min(max(o.Pitch+float32(dy)*o.Sensitivity, -maxPitch), maxPitch)
	o.Distance = max(o.Distance, o.MinDistance)
	o.cam.Transform().SetPosition(o.Position()).LookAtPoint(o.Target)
}
