// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/sim"
)

// SetDrawer sets the Drawer of n.
// A nil d removes the Drawable capability, along with
// any pre-draw and post-draw callbacks.
func (g *Graph) SetDrawer(n Node, d Drawer) {
	x := g.mustGet(n)
	x.drawer = d
	if d == nil {
		x.caps &^= Drawable
		x.pre, x.post = nil, nil
		return
	}
	x.caps |= Drawable
}

// AddPreDraw adds a function to be called before the
// Drawer of n.
// Callbacks are called in the order they were added.
func (g *Graph) AddPreDraw(n Node, f DrawFunc) {
	x := g.mustGet(n)
	x.pre = append(x.pre, f)
}

// AddPostDraw adds a function to be called after the
// Drawer of n.
func (g *Graph) AddPostDraw(n Node, f DrawFunc) {
	x := g.mustGet(n)
	x.post = append(x.post, f)
}

// SetUpdater registers u with s on behalf of n.
// Any updater previously set for n is unregistered
// first. A nil u removes the Updateable capability.
func (g *Graph) SetUpdater(s *sim.Scheduler, n Node, u sim.Updater) {
	x := g.mustGet(n)
	if x.caps&Updateable != 0 {
		x.sched.Unregister(x.simID)
		x.caps &^= Updateable
		x.sched, x.simID = nil, 0
	}
	if u == nil {
		return
	}
	x.sched = s
	x.simID = s.Register(u)
	x.caps |= Updateable
}

// Draw performs a depth-first pre-order traversal of the
// subtree rooted at n, computing the world transform of
// every node and calling the Drawer of drawable ones.
// The world transform of n is derived from that of its
// parent (as of the last pass), or from the global world
// transform if n is a root.
// The graph must not be changed until Draw returns.
func (g *Graph) Draw(n Node) {
	if !g.Valid(n) {
		return
	}
	g.init()
	var parent linear.M4
	if p := g.get(n).parent; p != Nil {
		parent = g.get(p).world
	} else {
		parent = g.global
	}
	g.draw(n, &parent)
}

func (g *Graph) draw(n Node, parent *linear.M4) {
	x := g.get(n)
	x.world.Mul(parent, x.xform.Matrix())
	world := x.world
	if x.caps&Drawable != 0 {
		for _, f := range x.pre {
			f(n, &world)
		}
		x.drawer.Draw(n, &world)
		for _, f := range x.post {
			f(n, &world)
		}
		world = g.get(n).world
	}
	for c := g.get(n).sub; c != Nil; c = g.get(c).next {
		g.draw(c, &world)
	}
}
