// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/sim"
	"github.com/gviegas/stage/transform"
)

func assertV3(t *testing.T, want, have linear.V3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], have[i], 1e-5, "[%d]", i)
	}
}

func assertQ(t *testing.T, want, have linear.Q) {
	t.Helper()
	// q and -q describe the same rotation.
	assert.InDelta(t, 1, abs(want.Dot(&have)), 1e-5)
}

func abs(x float32) float32 { return max(x, -x) }

func TestPosition(t *testing.T) {
	cur := transform.New()
	dst := transform.New().Translate(linear.V3{1, 0, 0})
	a := New(cur, dst, 1)
	assert.Equal(t, Position, a.Active())
	a.Step(0.5)
	assertV3(t, linear.V3{0.5, 0, 0}, cur.Position())
	assert.Equal(t, float32(0.5), a.Progress())
	assert.False(t, a.Done())
}

func TestScale(t *testing.T) {
	cur := transform.New()
	dst := transform.New().ScaleV(linear.V3{1, 2, 3})
	a := New(cur, dst, 1)
	assert.Equal(t, Scale, a.Active())
	a.Step(0.5)
	assertV3(t, linear.V3{1, 1.5, 2}, cur.Scaling())
}

func TestRotation(t *testing.T) {
	cur := transform.New()
	dst := transform.New().Rotate(90, linear.V3{0, 1, 0})
	a := New(cur, dst, 2)
	assert.Equal(t, Rotation, a.Active())
	a.Step(0.25)
	var want linear.Q
	want.Rotate(linear.Rad(45), &linear.V3{0, 1, 0})
	assertQ(t, want, cur.Rotation())
	assertV3(t, linear.V3{0.70710677, 0, 0.70710677}, cur.Front())
}

func TestEnds(t *testing.T) {
	cur := transform.New().Translate(linear.V3{-1, 2, 0.5}).Rotate(-30, linear.V3{1, 0, 0})
	dst := transform.New().
		Translate(linear.V3{4, 0, -2}).
		Rotate(120, linear.V3{0.2, 1, 0.4}).
		ScaleV(linear.V3{2, 0.5, 1})
	a := New(cur, dst, 0.25)
	assert.Equal(t, Position|Scale|Rotation, a.Active())
	org := a.Origin()

	a.Step(0)
	assertV3(t, org.Position(), cur.Position())
	assertV3(t, org.Scaling(), cur.Scaling())
	assertQ(t, org.Rotation(), cur.Rotation())

	for !a.Done() {
		a.Step(1)
	}
	assert.Equal(t, float32(1), a.Progress())
	assertV3(t, dst.Position(), cur.Position())
	assertV3(t, dst.Scaling(), cur.Scaling())
	assertQ(t, dst.Rotation(), cur.Rotation())
	assertV3(t, dst.Front(), cur.Front())

	// Progress is clamped.
	a.Step(100)
	assert.Equal(t, float32(1), a.Progress())
	a.Step(-100)
	assert.Equal(t, float32(0), a.Progress())
	assertV3(t, org.Position(), cur.Position())
}

func TestSetSpeed(t *testing.T) {
	cur := transform.New()
	dst := transform.New().Translate(linear.V3{0, 10, 0})
	a := New(cur, dst, 0.1)
	a.Step(2)
	assert.InDelta(t, 0.2, a.Progress(), 1e-6)
	a.SetSpeed(0.5)
	assert.Equal(t, float32(0.5), a.Speed())
	assert.InDelta(t, 0.2, a.Progress(), 1e-6)
	a.Step(1)
	assert.InDelta(t, 0.7, a.Progress(), 1e-6)
	assertV3(t, linear.V3{0, 7, 0}, cur.Position())
}

func TestNothingToDo(t *testing.T) {
	cur := transform.New().Translate(linear.V3{1, 1, 1})
	dst := transform.New().Translate(linear.V3{1, 1, 1})
	a := New(cur, dst, 1)
	assert.Zero(t, a.Active())
	a.Step(1)
	assert.True(t, a.Done())
	assertV3(t, linear.V3{1, 1, 1}, cur.Position())
}

func TestOriginIsCopy(t *testing.T) {
	cur := transform.New()
	dst := transform.New().Translate(linear.V3{2, 0, 0})
	a := New(cur, dst, 1)
	cur.Translate(linear.V3{0, 5, 0})
	org := a.Origin()
	assertV3(t, linear.V3{}, org.Position())
	a.Step(0.5)
	assertV3(t, linear.V3{1, 0, 0}, cur.Position())
}

func TestPlay(t *testing.T) {
	var s sim.Scheduler
	cur := transform.New()
	dst := transform.New().Translate(linear.V3{0, 0, 3})
	a := New(cur, dst, 0.5)
	a.Play(&s)
	assert.True(t, a.Playing())
	assert.Equal(t, 1, s.Len())
	s.Update(1)
	assertV3(t, linear.V3{0, 0, 1.5}, cur.Position())
	assert.True(t, a.Playing())
	s.Update(1)
	assert.True(t, a.Done())
	assert.False(t, a.Playing())
	assert.Zero(t, s.Len())
	s.Update(1)
	assertV3(t, linear.V3{0, 0, 3}, cur.Position())

	b := New(cur, transform.New(), 1)
	b.Play(&s)
	b.Stop()
	assert.False(t, b.Playing())
	assert.Zero(t, s.Len())
}
