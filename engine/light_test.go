// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/transform"
	"github.com/gviegas/stage/uniform"
)

func TestLight(t *testing.T) {
	dl := (&DistantLight{
		Direction: linear.V3{0, -1, 0},
		Intensity: 100,
		Color:     linear.V3{1, 0.5, 2},
	}).Light()
	assert.Equal(t, uniform.DistantLight, dl.Type())
	assert.Equal(t, linear.V3{0, -1, 0}, dl.Direction())
	assert.Equal(t, float32(100), dl.Intensity())
	assert.Equal(t, linear.V3{1, 0.5, 1}, dl.Color())
	assert.True(t, dl.Enabled())
	dl.SetIntensity(-1)
	assert.Zero(t, dl.Intensity())

	pl := (&PointLight{Position: linear.V3{1, 2, 3}, Range: 10, Intensity: 5}).Light()
	assert.Equal(t, uniform.PointLight, pl.Type())
	assert.Equal(t, linear.V3{1, 2, 3}, pl.Position())
	assert.Equal(t, float32(10), pl.Range())

	sl := (&SpotLight{
		Direction:  linear.V3{0, 0, 1},
		InnerAngle: math32.Pi / 8,
		OuterAngle: math32.Pi / 4,
		Intensity:  1,
	}).Light()
	assert.Equal(t, uniform.SpotLight, sl.Type())
	in, out := sl.ConeAngles()
	assert.InDelta(t, math32.Pi/8, in, 1e-3)
	assert.InDelta(t, math32.Pi/4, out, 1e-3)
	sl.SetConeAngles(2, -1)
	in, out = sl.ConeAngles()
	assert.Less(t, in, out)
	assert.InDelta(t, math32.Pi/2, out, 1e-4)
}

func TestLightFollow(t *testing.T) {
	var rec uniform.Recorder
	xf := transform.New()
	l := (&SpotLight{Intensity: 1, OuterAngle: 1}).Light()
	l.Follow(xf)
	assert.Same(t, xf, l.Following())

	xf.Translate(linear.V3{0, 5, 0}).LookAtPoint(linear.V3{0, 0, 0})
	l.Publish(2, &rec)
	have := rec.Lights[2]
	assert.Equal(t, linear.V3{0, 5, 0}, have.Position())
	dir := have.Direction()
	assert.True(t, dir.Near(&linear.V3{0, -1, 0}, 1e-5), dir)
	assert.Equal(t, uniform.SpotLight, have.Type())

	l.Follow(nil)
	xf.Translate(linear.V3{1, 0, 0})
	l.Publish(2, &rec)
	have = rec.Lights[2]
	assert.Equal(t, linear.V3{0, 5, 0}, have.Position())

	l.SetEnabled(false)
	l.Publish(0, &rec)
	have = rec.Lights[0]
	assert.True(t, have.Unused())
}
