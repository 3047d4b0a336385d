// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package transform

import (
	"log/slog"
	"weak"

	"github.com/pkg/errors"

	"github.com/gviegas/stage/sim"
)

// TrackTarget makes t look at target on every call to
// s.Update, until DisableTargetTracking is called.
// t does not keep target alive: if target is collected,
// tracking disables itself.
// Calling TrackTarget while already tracking replaces
// the target (and the scheduler, if s differs).
//
// It fails if target is t itself or if target is at the
// exact position of t, since the look direction would be
// undefined.
func (t *Transform) TrackTarget(s *sim.Scheduler, target *Transform) error {
	switch {
	case s == nil:
		return errors.New("transform: nil scheduler in call to TrackTarget")
	case target == nil:
		return errors.New("transform: nil target in call to TrackTarget")
	case target == t:
		return errors.WithStack(ErrTrackSelf)
	case target.pos == t.pos:
		return errors.Wrapf(ErrSamePosition, "position %v", t.pos)
	}
	if t.tracking && t.sched != s {
		t.DisableTargetTracking()
	}
	t.tracked = weak.Make(target)
	if !t.tracking {
		t.sched = s
		t.simID = s.Register(t)
		t.tracking = true
	}
	return nil
}

// DisableTargetTracking stops tracking.
// It takes effect from the next scheduler update and
// does nothing if t is not tracking a target.
func (t *Transform) DisableTargetTracking() {
	if !t.tracking {
		return
	}
	t.sched.Unregister(t.simID)
	t.tracking = false
	t.tracked = weak.Pointer[Transform]{}
	t.sched = nil
}

// Update implements sim.Updater.
// It is called by the scheduler while t is tracking a
// target.
func (t *Transform) Update(float32) {
	if !t.tracking {
		return
	}
	target := t.tracked.Value()
	if target == nil {
		slog.Debug("transform: tracked target is gone", "id", t.simID)
		t.DisableTargetTracking()
		return
	}
	t.LookAt(target)
}

// Release must be called when t is no longer needed.
// It stops tracking, if enabled, and removes the change
// observer.
func (t *Transform) Release() {
	t.DisableTargetTracking()
	t.onChange = nil
}
