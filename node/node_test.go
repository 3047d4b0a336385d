// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/sim"
	"github.com/gviegas/stage/transform"
)

func assertM4(t *testing.T, want, have *linear.M4) {
	t.Helper()
	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], have[i][j], 1e-4, "[%d][%d]", i, j)
		}
	}
}

type drawLog struct {
	calls []string
	g     *Graph
}

func (d *drawLog) Draw(n Node, _ *linear.M4) { d.calls = append(d.calls, d.g.Name(n)) }

func named(g *Graph, group bool, name string) Node {
	var n Node
	if group {
		n = g.NewGroup(nil)
	} else {
		n = g.NewNode(nil)
	}
	g.SetName(n, name)
	return n
}

func TestZero(t *testing.T) {
	var g Graph
	var id linear.M4
	id.I()
	assert.Equal(t, id, *g.World(Nil))
	assert.Zero(t, g.Len())
	assert.False(t, g.Valid(Nil))
	assert.False(t, g.Valid(1))
	g.Draw(Nil)
}

func TestAdd(t *testing.T) {
	var g Graph
	root := named(&g, true, "root")
	a := named(&g, true, "a")
	b := named(&g, false, "b")
	c := named(&g, false, "c")
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, Group, g.Kind(root))
	assert.Equal(t, Leaf, g.Kind(b))

	require.NoError(t, g.Add(root, a))
	require.NoError(t, g.Add(root, b))
	require.NoError(t, g.Add(a, c))
	assert.Equal(t, root, g.Parent(a))
	assert.Equal(t, root, g.Parent(b))
	assert.Equal(t, a, g.Parent(c))
	assert.Equal(t, Nil, g.Parent(root))
	assert.ElementsMatch(t, []Node{a, b}, slices.Collect(g.Children(root)))
	assert.Equal(t, []Node{c}, slices.Collect(g.Children(a)))
	assert.Empty(t, slices.Collect(g.Children(b)))

	assert.ErrorIs(t, g.Add(b, c), ErrNotGroup)
	assert.ErrorIs(t, g.Add(root, c), ErrHasParent)
	assert.ErrorIs(t, g.Add(root, root), ErrCycle)
	x := named(&g, true, "x")
	require.NoError(t, g.Add(a, x))
	assert.ErrorIs(t, g.Add(x, root), ErrCycle)
	assert.ErrorIs(t, g.Add(root, Nil), ErrInvalid)
	assert.ErrorIs(t, g.Add(Node(100), c), ErrInvalid)
}

func TestRemove(t *testing.T) {
	var g Graph
	root := named(&g, true, "root")
	ns := []Node{named(&g, false, "0"), named(&g, false, "1"), named(&g, false, "2")}
	for _, n := range ns {
		require.NoError(t, g.Add(root, n))
	}
	for _, n := range []Node{ns[1], ns[0], ns[2]} {
		require.NoError(t, g.Remove(n))
		assert.Equal(t, Nil, g.Parent(n))
		assert.NotContains(t, slices.Collect(g.Children(root)), n)
		assert.True(t, g.Valid(n))
	}
	assert.Empty(t, slices.Collect(g.Children(root)))
	require.NoError(t, g.Remove(ns[0]))
	require.NoError(t, g.Add(root, ns[0]))
	assert.Equal(t, root, g.Parent(ns[0]))
	assert.ErrorIs(t, g.Remove(Nil), ErrInvalid)
}

func TestDelete(t *testing.T) {
	var g Graph
	var s sim.Scheduler
	root := named(&g, true, "root")
	a := named(&g, true, "a")
	b := named(&g, false, "b")
	c := named(&g, false, "c")
	require.NoError(t, g.Add(root, a))
	require.NoError(t, g.Add(a, b))
	require.NoError(t, g.Add(root, c))

	tb := g.Transform(b)
	target := transform.New().Translate(linear.V3{0, 0, 5})
	require.NoError(t, tb.TrackTarget(&s, target))
	g.SetUpdater(&s, a, sim.UpdaterFunc(func(float32) {}))
	assert.Equal(t, 2, s.Len())

	g.Delete(a)
	assert.False(t, g.Valid(a))
	assert.False(t, g.Valid(b))
	assert.True(t, g.Valid(c))
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []Node{c}, slices.Collect(g.Children(root)))
	assert.False(t, tb.Tracking())
	assert.Zero(t, s.Len())

	d := g.NewNode(nil)
	assert.True(t, g.Valid(d))
	assert.Equal(t, 3, g.Len())
}

func TestDrawOrder(t *testing.T) {
	var g Graph
	log := &drawLog{g: &g}
	root := named(&g, true, "root")
	a := named(&g, true, "a")
	b := named(&g, false, "b")
	c := named(&g, false, "c")
	require.NoError(t, g.Add(root, c))
	require.NoError(t, g.Add(a, b))
	require.NoError(t, g.Add(root, a))
	for _, n := range []Node{root, a, b, c} {
		g.SetDrawer(n, log)
		assert.Equal(t, Drawable, g.Caps(n))
	}
	g.AddPreDraw(b, func(n Node, _ *linear.M4) { log.calls = append(log.calls, "pre "+g.Name(n)) })
	g.AddPostDraw(b, func(n Node, _ *linear.M4) { log.calls = append(log.calls, "post "+g.Name(n)) })

	g.Draw(root)
	// Children are visited most recently added first.
	assert.Equal(t, []string{"root", "a", "pre b", "b", "post b", "c"}, log.calls)

	log.calls = nil
	g.SetDrawer(b, nil)
	assert.Zero(t, g.Caps(b))
	g.Draw(a)
	assert.Equal(t, []string{"a"}, log.calls)
}

func TestDrawWorld(t *testing.T) {
	var g Graph
	gt := transform.New().
		Translate(linear.V3{1, -2, 3}).
		Rotate(35, linear.V3{0.3, 1, 0.2}).
		ScaleV(linear.V3{2, 1, 0.5})
	ct := transform.New().
		Translate(linear.V3{-4, 0.5, 2}).
		Rotate(-70, linear.V3{1, 0, 1}).
		Scale(3)
	grp := g.NewGroup(gt)
	child := g.NewNode(ct)
	require.NoError(t, g.Add(grp, child))
	g.Draw(grp)

	assertM4(t, gt.Matrix(), g.World(grp))
	var want linear.M4
	want.Mul(g.World(grp), ct.Matrix())
	assertM4(t, &want, g.World(child))

	var global linear.M4
	global.Translate(0, 10, 0)
	g.SetWorld(&global)
	g.Draw(grp)
	var wg linear.M4
	wg.Mul(&global, gt.Matrix())
	assertM4(t, &wg, g.World(grp))
	want.Mul(&wg, ct.Matrix())
	assertM4(t, &want, g.World(child))

	// Drawing a subtree reuses the parent's last world.
	ct.Translate(linear.V3{1, 1, 1})
	g.Draw(child)
	want.Mul(&wg, ct.Matrix())
	assertM4(t, &want, g.World(child))
}

func TestDrawerWorld(t *testing.T) {
	var g Graph
	n := g.NewNode(transform.New().Translate(linear.V3{0, 0, 7}))
	var have linear.M4
	g.SetDrawer(n, drawFunc(func(_ Node, w *linear.M4) { have = *w }))
	g.Draw(n)
	assert.Equal(t, *g.World(n), have)
	assert.Equal(t, float32(7), have[3][2])
}

type drawFunc func(Node, *linear.M4)

func (f drawFunc) Draw(n Node, w *linear.M4) { f(n, w) }

func TestSetUpdater(t *testing.T) {
	var g Graph
	var s sim.Scheduler
	n := g.NewNode(nil)
	var x, y int
	g.SetUpdater(&s, n, sim.UpdaterFunc(func(float32) { x++ }))
	assert.Equal(t, Updateable, g.Caps(n))
	s.Update(0.1)
	g.SetUpdater(&s, n, sim.UpdaterFunc(func(float32) { y++ }))
	s.Update(0.1)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, 1, s.Len())
	g.SetUpdater(&s, n, nil)
	assert.Zero(t, g.Caps(n))
	assert.Zero(t, s.Len())
}

func TestFind(t *testing.T) {
	var g Graph
	root := named(&g, true, "root")
	a := named(&g, true, "a")
	b := named(&g, false, "b")
	require.NoError(t, g.Add(root, a))
	require.NoError(t, g.Add(a, b))
	n, ok := g.Find(root, "b")
	assert.True(t, ok)
	assert.Equal(t, b, n)
	_, ok = g.Find(b, "a")
	assert.False(t, ok)
	assert.Equal(t, a, g.MustFind(root, "a"))
	assert.Panics(t, func() { g.MustFind(root, "z") })
	assert.Panics(t, func() { g.Name(Node(42)) })
}

func TestRoots(t *testing.T) {
	var g Graph
	assert.Empty(t, slices.Collect(g.Roots()))
	a := g.NewGroup(nil)
	b := g.NewNode(nil)
	c := g.NewNode(nil)
	assert.ElementsMatch(t, []Node{a, b, c}, slices.Collect(g.Roots()))
	require.NoError(t, g.Add(a, b))
	assert.ElementsMatch(t, []Node{a, c}, slices.Collect(g.Roots()))
	g.Delete(a)
	assert.Equal(t, []Node{c}, slices.Collect(g.Roots()))
}
