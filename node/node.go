// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
//
// Nodes are stored in a pool owned by a Graph and are
// referred to by Node handles. Edges between nodes are
// handles too, so removing or reparenting a node never
// leaves dangling references behind.
package node

import (
	"iter"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/gviegas/stage/internal/arena"
	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/sim"
	"github.com/gviegas/stage/transform"
)

// Node identifies a node in a Graph.
type Node int

// Nil represents an invalid Node.
const Nil Node = 0

// Kind is the kind of a node.
type Kind int

// Kinds of node.
const (
	// Leaf nodes cannot have descendants.
	Leaf Kind = iota
	// Group nodes contain other nodes.
	Group
)

// Caps is a set of optional node capabilities.
type Caps int

// Capabilities.
const (
	// The node has a Drawer.
	Drawable Caps = 1 << iota
	// The node has an Updater registered with a
	// sim.Scheduler.
	Updateable
)

// Drawer is the interface that drawable nodes implement.
type Drawer interface {
	// Draw is called during Graph.Draw with the world
	// transform of n, which is valid for the call only.
	Draw(n Node, world *linear.M4)
}

// DrawFunc is a function called around Drawer.Draw.
type DrawFunc func(n Node, world *linear.M4)

var (
	ErrInvalid   = errors.New("node: invalid node")
	ErrNotGroup  = errors.New("node: not a group")
	ErrHasParent = errors.New("node: node already has a parent")
	ErrCycle     = errors.New("node: insertion would create a cycle")
)

type node struct {
	parent Node
	next   Node
	prev   Node
	sub    Node

	kind  Kind
	caps  Caps
	name  string
	xform *transform.Transform
	world linear.M4

	drawer    Drawer
	pre, post []DrawFunc

	sched *sim.Scheduler
	simID sim.ID
}

// Graph is a node graph.
// The zero value for Graph is an empty graph whose
// global world transform is the identity.
type Graph struct {
	nodes   arena.Map[Node, node]
	global  linear.M4
	initted bool
}

func (g *Graph) init() {
	if !g.initted {
		g.global.I()
		g.initted = true
	}
}

// get returns the node data of n.
// The pointer is invalidated by insertions and
// removals.
func (g *Graph) get(n Node) *node { return g.nodes.Get(n - 1) }

// Valid reports whether n identifies a node in g.
func (g *Graph) Valid(n Node) bool { return n != Nil && g.nodes.Valid(n-1) }

func (g *Graph) mustGet(n Node) *node {
	if !g.Valid(n) {
		panic(errors.Wrapf(ErrInvalid, "handle %d", n))
	}
	return g.get(n)
}

func (g *Graph) insert(kind Kind, t *transform.Transform) Node {
	if t == nil {
		t = transform.New()
	}
	n := g.nodes.Insert(node{kind: kind, xform: t}) + 1
	g.get(n).world.I()
	return n
}

// NewNode creates a leaf node whose local transform is t.
// If t is nil, a new identity transform is used.
// The node has no parent until added to a group.
func (g *Graph) NewNode(t *transform.Transform) Node { return g.insert(Leaf, t) }

// NewGroup creates a group node whose local transform
// is t.
// If t is nil, a new identity transform is used.
func (g *Graph) NewGroup(t *transform.Transform) Node { return g.insert(Group, t) }

// Len returns the number of nodes in g.
func (g *Graph) Len() int { return g.nodes.Len() }

// Kind returns the kind of n.
func (g *Graph) Kind(n Node) Kind { return g.mustGet(n).kind }

// Caps returns the capabilities of n.
func (g *Graph) Caps(n Node) Caps { return g.mustGet(n).caps }

// Name returns the name of n.
func (g *Graph) Name(n Node) string { return g.mustGet(n).name }

// SetName sets the name of n.
func (g *Graph) SetName(n Node, name string) { g.mustGet(n).name = name }

// Transform returns the local transform of n.
func (g *Graph) Transform(n Node) *transform.Transform { return g.mustGet(n).xform }

// Parent returns the parent of n, or Nil if n is a root.
func (g *Graph) Parent(n Node) Node { return g.mustGet(n).parent }

// World returns the world transform of n, as computed by
// the last call to Draw that reached n.
// World(Nil) returns the global world transform, which
// is applied to every root.
// It must not be modified by the caller.
func (g *Graph) World(n Node) *linear.M4 {
	if n == Nil {
		g.init()
		return &g.global
	}
	return &g.mustGet(n).world
}

// SetWorld sets the global world transform.
func (g *Graph) SetWorld(m *linear.M4) {
	g.init()
	g.global = *m
}

// Children returns an iterator over the immediate
// descendants of n.
// The graph must not be changed during iteration.
func (g *Graph) Children(n Node) iter.Seq[Node] {
	sub := g.mustGet(n).sub
	return func(yield func(Node) bool) {
		for c := sub; c != Nil; c = g.get(c).next {
			if !yield(c) {
				return
			}
		}
	}
}

// Roots returns an iterator over the nodes of g that
// have no parent. The order is unspecified.
// The graph must not be changed during iteration.
func (g *Graph) Roots() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for id, d := range g.nodes.All() {
			if d.parent == Nil && !yield(id+1) {
				return
			}
		}
	}
}

// Add makes child an immediate descendant of group.
// child must not have a parent, and it must not be
// group itself or one of its ancestors.
func (g *Graph) Add(group, child Node) error {
	switch {
	case !g.Valid(group):
		return errors.Wrapf(ErrInvalid, "group %d", group)
	case !g.Valid(child):
		return errors.Wrapf(ErrInvalid, "child %d", child)
	case g.get(group).kind != Group:
		return errors.Wrapf(ErrNotGroup, "node %d", group)
	case g.get(child).parent != Nil:
		return errors.Wrapf(ErrHasParent, "node %d (parent %d)", child, g.get(child).parent)
	}
	for a := group; a != Nil; a = g.get(a).parent {
		if a == child {
			return errors.Wrapf(ErrCycle, "node %d is an ancestor of %d", child, group)
		}
	}
	gp := g.get(group)
	c := g.get(child)
	c.parent = group
	c.prev = Nil
	c.next = gp.sub
	if gp.sub != Nil {
		g.get(gp.sub).prev = child
	}
	gp.sub = child
	slog.Debug("node.Add", "group", group, "child", child)
	return nil
}

// Remove detaches n from its parent.
// n remains in g as a root.
func (g *Graph) Remove(n Node) error {
	if !g.Valid(n) {
		return errors.Wrapf(ErrInvalid, "node %d", n)
	}
	d := g.get(n)
	if d.parent == Nil {
		return nil
	}
	if d.prev != Nil {
		g.get(d.prev).next = d.next
	} else {
		g.get(d.parent).sub = d.next
	}
	if d.next != Nil {
		g.get(d.next).prev = d.prev
	}
	slog.Debug("node.Remove", "parent", d.parent, "child", n)
	d.parent, d.next, d.prev = Nil, Nil, Nil
	return nil
}

// Delete removes n and all of its descendants from g.
// The transforms of deleted nodes are released and their
// updaters are unregistered.
func (g *Graph) Delete(n Node) {
	if !g.Valid(n) {
		return
	}
	g.Remove(n)
	var dead []Node
	g.Walk(n, func(x Node) bool {
		dead = append(dead, x)
		return true
	})
	for _, x := range dead {
		d := g.get(x)
		d.xform.Release()
		if d.caps&Updateable != 0 {
			d.sched.Unregister(d.simID)
		}
		g.nodes.Remove(x - 1)
	}
	slog.Debug("node.Delete", "node", n, "count", len(dead))
}

// Walk calls f for n and each of its descendants, in
// depth-first pre-order. If f returns false, Walk stops
// descending into that node's descendants.
// The graph must not be changed until Walk returns.
func (g *Graph) Walk(n Node, f func(Node) bool) {
	if !g.Valid(n) || !f(n) {
		return
	}
	for c := g.get(n).sub; c != Nil; c = g.get(c).next {
		g.Walk(c, f)
	}
}

// Find returns the first node named name in the subtree
// rooted at n, in pre-order.
func (g *Graph) Find(n Node, name string) (Node, bool) {
	found := Nil
	g.Walk(n, func(x Node) bool {
		if found != Nil {
			return false
		}
		if g.get(x).name == name {
			found = x
			return false
		}
		return true
	})
	return found, found != Nil
}

// MustFind is like Find but panics if there is no such
// node.
func (g *Graph) MustFind(n Node, name string) Node {
	x, ok := g.Find(n, name)
	if !ok {
		panic("node: no node named " + name)
	}
	return x
}
