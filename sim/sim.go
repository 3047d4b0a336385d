// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package sim implements the per-frame driver of
// time-dependent entities.
package sim

import (
	"log/slog"

	"github.com/gviegas/stage/internal/arena"
)

// Updater is the interface that time-dependent entities
// implement.
type Updater interface {
	// Update advances the entity by dt seconds.
	Update(dt float32)
}

// UpdaterFunc adapts a function to the Updater interface.
type UpdaterFunc func(dt float32)

// Update calls f(dt).
func (f UpdaterFunc) Update(dt float32) { f(dt) }

// ID identifies an Updater in a Scheduler.
type ID int

// Scheduler dispatches one Update call per frame to each
// registered Updater.
// It never owns the registered entities.
// The zero value for Scheduler is ready for use.
type Scheduler struct {
	ups      arena.Map[ID, Updater]
	snap     []ID
	dead     []ID
	updating bool
	frame    uint64
}

// Register adds u to s.
// The returned ID is valid until passed to Unregister.
// Updaters registered during an Update call are first
// updated in the following frame.
func (s *Scheduler) Register(u Updater) ID {
	if u == nil {
		panic("sim: nil Updater")
	}
	id := s.ups.Insert(u)
	slog.Debug("sim.Register", "id", id, "frame", s.frame)
	return id
}

// Unregister removes the Updater identified by id.
// It reports whether id was registered.
// It is valid to call Unregister during an Update call,
// including from the Updater being removed.
func (s *Scheduler) Unregister(id ID) bool {
	if !s.Registered(id) {
		return false
	}
	if s.updating {
		// Keep the slot until the pass ends so that
		// the identifier is not handed out again
		// while the snapshot still refers to it.
		*s.ups.Get(id) = nil
		s.dead = append(s.dead, id)
	} else {
		s.ups.Remove(id)
	}
	slog.Debug("sim.Unregister", "id", id, "frame", s.frame)
	return true
}

// Registered reports whether id identifies a registered
// Updater.
func (s *Scheduler) Registered(id ID) bool {
	return s.ups.Valid(id) && *s.ups.Get(id) != nil
}

// Len returns the number of registered Updaters.
func (s *Scheduler) Len() int { return s.ups.Len() - len(s.dead) }

// Frame returns the number of completed Update calls.
func (s *Scheduler) Frame() uint64 { return s.frame }

// Update calls Update(dt) on every registered Updater.
// Negative values of dt are treated as zero.
//
// The set of Updaters to visit is fixed when Update is
// called: each of them is visited exactly once, unless
// it is unregistered before its turn. Updaters
// registered during the call are not visited.
func (s *Scheduler) Update(dt float32) {
	if s.updating {
		panic("sim: reentrant call to Scheduler.Update")
	}
	if dt < 0 {
		dt = 0
	}
	s.updating = true
	defer s.endUpdate()

	s.snap = s.ups.IDs(s.snap[:0])
	for _, id := range s.snap {
		if u := *s.ups.Get(id); u != nil {
			u.Update(dt)
		}
	}
	s.frame++
}

// endUpdate releases the slots of Updaters that were
// unregistered during the pass.
func (s *Scheduler) endUpdate() {
	s.updating = false
	for _, id := range s.dead {
		s.ups.Remove(id)
	}
	s.dead = s.dead[:0]
}
