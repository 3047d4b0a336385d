// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package stage provides functionality for creating and
// driving scene graphs.
package stage

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/gviegas/stage/camera"
	"github.com/gviegas/stage/engine"
	"github.com/gviegas/stage/input"
	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/node"
	"github.com/gviegas/stage/sim"
	"github.com/gviegas/stage/uniform"
)

// ErrTooManyLights is returned by Scene.AddLight when the
// configured maximum number of lights is reached.
var ErrTooManyLights = errors.New("scene: too many lights")

// Scene defines a scene graph along with everything that
// drives it from one frame to the next.
// The zero value for Scene has no camera and publishes
// nothing; use New or Init to create a usable Scene.
type Scene struct {
	node.Graph

	sched  sim.Scheduler
	input  input.Dispatcher
	sink   uniform.Sink
	cam    *camera.Camera
	lights []*engine.Light
	ctrl   controller

	config  engine.Config
	elapsed time.Duration
}

// controller is implemented by camera controllers.
type controller interface {
	Activate(*sim.Scheduler, *input.Dispatcher)
	Deactivate()
}

// New creates an initialized scene that publishes to sink.
func New(sink uniform.Sink) *Scene { return new(Scene).Init(sink) }

// Init initializes a scene.
// It uses the current engine configuration.
// If sink is nil, uniform.Discard is used.
func (s *Scene) Init(sink uniform.Sink) *Scene {
	if sink == nil {
		sink = uniform.Discard
	}
	s.sink = sink
	s.config = engine.Current()
	s.cam = camera.New(sink, camera.Perspective{
		FOV:  linear.Rad(s.config.FOV),
		Near: s.config.Near,
		Far:  s.config.Far,
	})
	s.input.Subscribe(s.cam)
	return s
}

// Scheduler returns the scheduler that s updates on every
// frame.
func (s *Scene) Scheduler() *sim.Scheduler { return &s.sched }

// Input returns the dispatcher through which s receives
// input events.
func (s *Scene) Input() *input.Dispatcher { return &s.input }

// Camera returns the camera of s.
func (s *Scene) Camera() *camera.Camera { return s.cam }

// Elapsed returns the sum of all time steps taken by s.
func (s *Scene) Elapsed() time.Duration { return s.elapsed }

// AddLight adds l to s and returns its index.
func (s *Scene) AddLight(l *engine.Light) (int, error) {
	if len(s.lights) >= s.config.MaxLight {
		return -1, errors.Wrapf(ErrTooManyLights, "max %d", s.config.MaxLight)
	}
	s.lights = append(s.lights, l)
	return len(s.lights) - 1, nil
}

// Light returns the light at index i.
func (s *Scene) Light(i int) *engine.Light { return s.lights[i] }

// LightLen returns the number of lights in s.
func (s *Scene) LightLen() int { return len(s.lights) }

// UseFly replaces the camera's controller with a new
// camera.Fly configured as per engine.Config.
func (s *Scene) UseFly() *camera.Fly {
	f := camera.NewFly(s.cam, s.config.Fly.Speed, s.config.Fly.Sensitivity)
	s.setController(f)
	return f
}

// UseOrbit replaces the camera's controller with a new
// camera.Orbit around target, configured as per
// engine.Config.
func (s *Scene) UseOrbit(target linear.V3) *camera.Orbit {
	o := camera.NewOrbit(s.cam, target, s.config.Orbit.Distance, 0, 0)
	o.Sensitivity = s.config.Orbit.Sensitivity
	o.ZoomFactor = s.config.Orbit.ZoomFactor
	o.MinDistance = s.config.Orbit.MinDistance
	s.setController(o)
	return o
}

// ClearController deactivates the camera's controller.
func (s *Scene) ClearController() { s.setController(nil) }

func (s *Scene) setController(c controller) {
	if s.ctrl != nil {
		s.ctrl.Deactivate()
	}
	s.ctrl = c
	if c != nil {
		c.Activate(&s.sched, &s.input)
	}
}

// Frame advances s by dt seconds.
// dt is clamped to [0, engine.Config.MaxFrameDelta].
// Every updater registered with the scheduler runs
// first, then the graph is drawn starting from each of
// its roots, and lastly lights and the camera's frame
// data are published.
func (s *Scene) Frame(dt float32) {
	if dt > s.config.MaxFrameDelta {
		slog.Debug("stage.Frame: clamping dt", "dt", dt, "max", s.config.MaxFrameDelta)
		dt = s.config.MaxFrameDelta
	}
	dt = max(dt, 0)
	s.elapsed += time.Duration(float64(dt) * float64(time.Second))
	s.sched.Update(dt)
	for root := range s.Roots() {
		s.Draw(root)
	}
	for i, l := range s.lights {
		l.Publish(i, s.sink)
	}
	if s.cam != nil {
		s.cam.SetClock(s.elapsed, dt)
	}
}
