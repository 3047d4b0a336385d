// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/node"
	"github.com/gviegas/stage/uniform"
)

// Drawable is a node.Drawer that publishes the world and
// normal matrices of its node.
type Drawable struct {
	id     uint32
	sink   uniform.Sink
	layout uniform.DrawableLayout
	draws  int
}

// NewDrawable creates a new drawable that publishes to
// sink using the given id.
// If sink is nil, uniform.Discard is used.
func NewDrawable(id uint32, sink uniform.Sink) *Drawable {
	if sink == nil {
		sink = uniform.Discard
	}
	d := &Drawable{id: id, sink: sink}
	d.layout.SetID(id)
	return d
}

// ID returns the identifier of d.
func (d *Drawable) ID() uint32 { return d.id }

// Draws returns how many times d was drawn.
func (d *Drawable) Draws() int { return d.draws }

// Layout returns the data last published by d.
func (d *Drawable) Layout() uniform.DrawableLayout { return d.layout }

// Draw implements node.Drawer.
// The normal matrix is the inverse transpose of the
// upper-left 3x3 of world. If that is singular, the
// identity is used instead.
func (d *Drawable) Draw(_ node.Node, world *linear.M4) {
	var n linear.M3
	n.FromM4(world)
	if n.Det() != 0 {
		n.Invert(&n)
		n.Transpose(&n)
	} else {
		n.I()
	}
	d.layout.SetWorld(world)
	d.layout.SetNormal(&n)
	d.sink.Drawable(&d.layout)
	d.draws++
}
