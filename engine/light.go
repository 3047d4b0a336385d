// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/transform"
	"github.com/gviegas/stage/uniform"
)

// Light defines a light source.
// The zero value for Light is not valid; one must
// call DistantLight.Light, PointLight.Light or
// SpotLight.Light to create an initialized Light.
//
// A light can follow a transform, in which case its
// position and direction are taken from the transform's
// position and front vector whenever it is published.
type Light struct {
	layout uniform.LightLayout
	// Used to reconstruct the inner/outer
	// cone angles.
	// Ignored if not a spot light.
	cosOuter float32
	xform    *transform.Transform
}

// Type returns the type of l (uniform.DistantLight,
// uniform.PointLight or uniform.SpotLight).
func (l *Light) Type() int32 { return l.layout.Type() }

// SetDirection sets the direction of l.
// It does not normalize d.
// Only applies to distant and spot lights.
func (l *Light) SetDirection(d *linear.V3) { l.layout.SetDirection(d) }

// Direction returns the direction of l.
// Only applies to distant and spot lights.
func (l *Light) Direction() linear.V3 { return l.layout.Direction() }

// SetPosition sets the position of l.
// Only applies to point and spot lights.
func (l *Light) SetPosition(p *linear.V3) { l.layout.SetPosition(p) }

// Position returns the position of l.
// Only applies to point and spot lights.
func (l *Light) Position() linear.V3 { return l.layout.Position() }

// SetIntensity sets the intensity of l.
func (l *Light) SetIntensity(i float32) { l.layout.SetIntensity(max(0, i)) }

// Intensity returns the intensity of l.
func (l *Light) Intensity() float32 { return l.layout.Intensity() }

// SetRange sets the falloff range of l.
// Only applies to point and spot lights.
func (l *Light) SetRange(r float32) { l.layout.SetRange(r) }

// Range returns the falloff range of l.
func (l *Light) Range() float32 { return l.layout.Range() }

// SetColor sets the linear RGB color of l.
// Components are clamped to [0, 1].
func (l *Light) SetColor(c *linear.V3) {
	var rgb linear.V3
	for i := range rgb {
		rgb[i] = min(max(c[i], 0), 1)
	}
	l.layout.SetColor(&rgb)
}

// Color returns the linear RGB color of l.
func (l *Light) Color() linear.V3 { return l.layout.Color() }

// SetEnabled sets whether l contributes to the scene.
func (l *Light) SetEnabled(on bool) { l.layout.SetUnused(!on) }

// Enabled reports whether l contributes to the scene.
func (l *Light) Enabled() bool { return !l.layout.Unused() }

// SetConeAngles sets the inner/outer cone angles of l.
// Cone angles that exceed π/2, or that are less than
// zero, will be clamped. The inner angle will be
// adjusted such that it is less than the outer angle.
// Only applies to spot lights.
func (l *Light) SetConeAngles(inner, outer float32) {
	i := max(0, min(inner, math32.Pi/2-1e-3))
	o := max(i+1e-3, min(outer, math32.Pi/2))
	cosi := math32.Cos(i)
	coso := math32.Cos(o)
	scale := 1 / (cosi - coso)
	l.layout.SetAngScale(scale)
	l.layout.SetAngOffset(scale * -coso)
	l.cosOuter = coso
}

// ConeAngles returns the inner/outer cone angles of l.
// Note that it returns the clamped angles (see the doc
// for Light.SetConeAngles).
// Only applies to spot lights.
func (l *Light) ConeAngles() (inner, outer float32) {
	cosi := 1/l.layout.AngScale() + l.cosOuter
	return math32.Acos(min(cosi, 1)), math32.Acos(l.cosOuter)
}

// Follow makes l take its position and direction from t.
// A nil t makes l stop following.
func (l *Light) Follow(t *transform.Transform) { l.xform = t }

// Following returns the transform that l follows, if any.
func (l *Light) Following() *transform.Transform { return l.xform }

// Sync copies the position and front vector of the
// followed transform into l.
func (l *Light) Sync() {
	if l.xform == nil {
		return
	}
	p := l.xform.Position()
	d := l.xform.Front()
	l.layout.SetPosition(&p)
	l.layout.SetDirection(&d)
}

// Publish syncs l and writes it to s at the given index.
func (l *Light) Publish(index int, s uniform.Sink) {
	l.Sync()
	s.Light(index, &l.layout)
}

// DistantLight is a directional light.
// The light is emitted in the given Direction.
// It behaves as if located infinitely far way.
// Intensity is the illuminance in lux.
type DistantLight struct {
	Direction linear.V3
	Intensity float32
	Color     linear.V3
}

// Light creates the light source described by t.
// t.Direction must have length 1.
func (t *DistantLight) Light() (light Light) {
	light.layout.SetType(uniform.DistantLight)
	light.SetIntensity(t.Intensity)
	light.SetColor(&t.Color)
	light.SetDirection(&t.Direction)
	return
}

// PointLight is an omnidirectional, positional light.
// Range determines the area affected by the light.
// Intensity is the luminous intensity in candela.
type PointLight struct {
	Position  linear.V3
	Range     float32
	Intensity float32
	Color     linear.V3
}

// Light creates the light source described by t.
// t.Range may be set to 0 or less to indicate an
// infinite range.
func (t *PointLight) Light() (light Light) {
	light.layout.SetType(uniform.PointLight)
	light.SetIntensity(t.Intensity)
	light.SetRange(t.Range)
	light.SetColor(&t.Color)
	light.SetPosition(&t.Position)
	return
}

// SpotLight is a directional, positional light.
// The light is emitted in a cone in the given Direction
// from the given Position.
// InnerAngle and OuterAngle are in radians.
type SpotLight struct {
	Direction  linear.V3
	Position   linear.V3
	InnerAngle float32
	OuterAngle float32
	Range      float32
	Intensity  float32
	Color      linear.V3
}

// Light creates the light source described by t.
// The cone angles will be adjusted as per
// Light.SetConeAngles.
func (t *SpotLight) Light() (light Light) {
	light.layout.SetType(uniform.SpotLight)
	light.SetIntensity(t.Intensity)
	light.SetRange(t.Range)
	light.SetColor(&t.Color)
	light.SetConeAngles(t.InnerAngle, t.OuterAngle)
	light.SetPosition(&t.Position)
	light.SetDirection(&t.Direction)
	return
}
