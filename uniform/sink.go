// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package uniform

// Sink is the interface through which uniform data is
// handed to a renderer.
// Implementations copy what they need; the layouts are
// reused by the caller after each call returns.
type Sink interface {
	// Frame publishes global, per-frame data.
	Frame(l *FrameLayout)

	// Light publishes the data of the light at index.
	Light(index int, l *LightLayout)

	// Drawable publishes per-drawable data.
	Drawable(l *DrawableLayout)

	// Bind binds the frame block to a rendering slot.
	Bind(slot int)
}

// Discard is a Sink that ignores everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Frame(*FrameLayout)       {}
func (discard) Light(int, *LightLayout)  {}
func (discard) Drawable(*DrawableLayout) {}
func (discard) Bind(int)                 {}

// Recorder is a Sink that keeps the most recent data
// published through it.
// It is meant for tests and headless tools.
// The zero value for Recorder is ready for use.
type Recorder struct {
	LastFrame FrameLayout
	Frames    int
	Lights    map[int]LightLayout
	Drawables map[uint32]DrawableLayout
	Slot      int
	Binds     int
}

// Frame implements Sink.
func (r *Recorder) Frame(l *FrameLayout) {
	r.LastFrame = *l
	r.Frames++
}

// Light implements Sink.
func (r *Recorder) Light(index int, l *LightLayout) {
	if r.Lights == nil {
		r.Lights = make(map[int]LightLayout)
	}
	r.Lights[index] = *l
}

// Drawable implements Sink.
func (r *Recorder) Drawable(l *DrawableLayout) {
	if r.Drawables == nil {
		r.Drawables = make(map[uint32]DrawableLayout)
	}
	r.Drawables[l.ID()] = *l
}

// Bind implements Sink.
func (r *Recorder) Bind(slot int) {
	r.Slot = slot
	r.Binds++
}
