// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package input

import (
	"slices"
)

// Dispatcher forwards events to subscribed handlers.
// A single value may subscribe to any subset of event
// kinds, depending on which handler interfaces it
// implements.
// Handlers are called in subscription order.
// The zero value for Dispatcher is ready for use.
type Dispatcher struct {
	win []WindowHandler
	key []KeyboardHandler
	ptr []PointerHandler
	scr []ScrollHandler
}

// Subscribe subscribes h to every event kind for which
// it implements a handler interface.
// It reports whether h implements at least one of them.
func (d *Dispatcher) Subscribe(h any) bool {
	var ok bool
	if x, is := h.(WindowHandler); is {
		d.win = append(d.win, x)
		ok = true
	}
	if x, is := h.(KeyboardHandler); is {
		d.key = append(d.key, x)
		ok = true
	}
	if x, is := h.(PointerHandler); is {
		d.ptr = append(d.ptr, x)
		ok = true
	}
	if x, is := h.(ScrollHandler); is {
		d.scr = append(d.scr, x)
		ok = true
	}
	return ok
}

// Unsubscribe removes h from every event kind.
// h must be comparable.
func (d *Dispatcher) Unsubscribe(h any) {
	d.win = slices.DeleteFunc(d.win, func(x WindowHandler) bool { return any(x) == h })
	d.key = slices.DeleteFunc(d.key, func(x KeyboardHandler) bool { return any(x) == h })
	d.ptr = slices.DeleteFunc(d.ptr, func(x PointerHandler) bool { return any(x) == h })
	d.scr = slices.DeleteFunc(d.scr, func(x ScrollHandler) bool { return any(x) == h })
}

// WindowResize delivers a resize event.
func (d *Dispatcher) WindowResize(newWidth, newHeight int) {
	for _, h := range slices.Clone(d.win) {
		h.WindowResize(newWidth, newHeight)
	}
}

// KeyboardKey delivers a key event.
func (d *Dispatcher) KeyboardKey(key Key, pressed bool, modMask Modifier) {
	for _, h := range slices.Clone(d.key) {
		h.KeyboardKey(key, pressed, modMask)
	}
}

// PointerMotion delivers a pointer motion event.
func (d *Dispatcher) PointerMotion(newX, newY int) {
	for _, h := range slices.Clone(d.ptr) {
		h.PointerMotion(newX, newY)
	}
}

// PointerButton delivers a pointer button event.
func (d *Dispatcher) PointerButton(btn Button, pressed bool, x, y int) {
	for _, h := range slices.Clone(d.ptr) {
		h.PointerButton(btn, pressed, x, y)
	}
}

// Scroll delivers a scroll event.
func (d *Dispatcher) Scroll(dx, dy float32) {
	for _, h := range slices.Clone(d.scr) {
		h.Scroll(dx, dy)
	}
}
