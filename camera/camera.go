// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package camera implements the scene's point of view.
package camera

import (
	"log/slog"
	"time"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/transform"
	"github.com/gviegas/stage/uniform"
)

// Projection is the interface that camera projections
// implement.
type Projection interface {
	// Matrix sets m to contain the projection for the
	// given aspect ratio (width / height).
	Matrix(m *linear.M4, aspect float32)
	// Depth returns the near and far clip distances.
	Depth() (znear, zfar float32)
}

// Perspective is a perspective projection.
type Perspective struct {
	FOV  float32 // Vertical field of view, in radians.
	Near float32
	Far  float32
}

// Matrix implements Projection.
func (p Perspective) Matrix(m *linear.M4, aspect float32) {
	m.Perspective(p.FOV, aspect, p.Near, p.Far)
}

// Depth implements Projection.
func (p Perspective) Depth() (float32, float32) { return p.Near, p.Far }

// Ortho is an orthographic projection.
// The aspect ratio is not taken into account.
type Ortho struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// Matrix implements Projection.
func (o Ortho) Matrix(m *linear.M4, _ float32) {
	m.Ortho(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
}

// Depth implements Projection.
func (o Ortho) Depth() (float32, float32) { return o.Near, o.Far }

// Camera is a view into the scene.
// Its pose is a Transform, and every change to it causes
// the view matrix to be recomputed and published.
type Camera struct {
	xform  *transform.Transform
	sink   uniform.Sink
	proj   Projection
	aspect float32

	view   linear.M4
	projM  linear.M4
	vp     linear.M4
	layout uniform.FrameLayout

	elapsed time.Duration
	dt      float32
}

// New creates a new camera that publishes to sink.
// If sink is nil, uniform.Discard is used.
// The camera is placed at the origin looking down the
// canonical front axis, with an aspect ratio of 1.
func New(sink uniform.Sink, proj Projection) *Camera {
	if sink == nil {
		sink = uniform.Discard
	}
	c := &Camera{
		xform:  transform.New(),
		sink:   sink,
		proj:   proj,
		aspect: 1,
	}
	c.proj.Matrix(&c.projM, c.aspect)
	c.xform.OnChange(func(*transform.Transform) { c.updateView() })
	c.updateView()
	return c
}

// Transform returns the camera's transform.
func (c *Camera) Transform() *transform.Transform { return c.xform }

// View returns the view matrix.
func (c *Camera) View() linear.M4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() linear.M4 { return c.projM }

// ViewProjection returns the product of the projection
// and view matrices.
func (c *Camera) ViewProjection() linear.M4 { return c.vp }

// Aspect returns the current aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// SetProjection replaces the camera's projection.
func (c *Camera) SetProjection(p Projection) {
	c.proj = p
	c.updateProjection()
}

// Resize sets the aspect ratio to width / height.
// A non-positive height is ignored.
func (c *Camera) Resize(width, height int) {
	if height <= 0 || width <= 0 {
		slog.Debug("camera.Resize: ignored", "width", width, "height", height)
		return
	}
	c.aspect = float32(width) / float32(height)
	c.updateProjection()
}

// WindowResize implements input.WindowHandler.
func (c *Camera) WindowResize(newWidth, newHeight int) { c.Resize(newWidth, newHeight) }

// SetActive binds the camera's uniform block at the given
// slot.
func (c *Camera) SetActive(slot int) { c.sink.Bind(slot) }

// SetClock sets the elapsed time and the time step that
// are published along with the camera's matrices.
func (c *Camera) SetClock(elapsed time.Duration, dt float32) {
	c.elapsed = elapsed
	c.dt = dt
	c.Publish()
}

// Publish writes the camera's frame layout to the sink.
func (c *Camera) Publish() {
	pos := c.xform.Position()
	znear, zfar := c.proj.Depth()
	c.layout.SetV(&c.view)
	c.layout.SetP(&c.projM)
	c.layout.SetVP(&c.vp)
	c.layout.SetEye(&pos)
	c.layout.SetDepth(znear, zfar)
	c.layout.SetTime(c.elapsed)
	c.layout.SetDelta(c.dt)
	c.sink.Frame(&c.layout)
}

func (c *Camera) updateView() {
	pos := c.xform.Position()
	target := c.xform.TargetPoint()
	up := c.xform.Up()
	c.view.LookAt(&pos, &target, &up)
	c.vp.Mul(&c.projM, &c.view)
	c.Publish()
}

func (c *Camera) updateProjection() {
	c.proj.Matrix(&c.projM, c.aspect)
	c.vp.Mul(&c.projM, &c.view)
	c.Publish()
}
