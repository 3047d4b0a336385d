// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package uniform defines the layout of data that is
// handed to a renderer, and the Sink through which it
// is published.
package uniform

import (
	"time"
	"unsafe"

	"github.com/gviegas/stage/linear"
)

// FrameLayout is the layout of per-frame, global data.
// It is defined as follows:
//
//	[0:16]  | view-projection matrix
//	[16:32] | view matrix
//	[32:48] | projection matrix
//	[48]    | elapsed time in seconds
//	[49]    | frame delta in seconds
//	[50:53] | eye position
//	[53]    | (unused)
//	[54]    | near plane
//	[55]    | far plane
//	[56:64] | (unused)
type FrameLayout [64]float32

// SetVP sets the view-projection matrix.
func (l *FrameLayout) SetVP(m *linear.M4) { copyM4(l[:16], m) }

// SetV sets the view matrix.
func (l *FrameLayout) SetV(m *linear.M4) { copyM4(l[16:32], m) }

// SetP sets the projection matrix.
func (l *FrameLayout) SetP(m *linear.M4) { copyM4(l[32:48], m) }

// SetTime sets the elapsed time.
func (l *FrameLayout) SetTime(d time.Duration) { l[48] = float32(d.Seconds()) }

// SetDelta sets the frame delta.
func (l *FrameLayout) SetDelta(dt float32) { l[49] = dt }

// SetEye sets the eye position.
func (l *FrameLayout) SetEye(p *linear.V3) { l[50], l[51], l[52] = p[0], p[1], p[2] }

// SetDepth sets the near and far planes.
func (l *FrameLayout) SetDepth(znear, zfar float32) { l[54], l[55] = znear, zfar }

// VP returns the view-projection matrix.
func (l *FrameLayout) VP() (m linear.M4) { return toM4(l[:16]) }

// V returns the view matrix.
func (l *FrameLayout) V() (m linear.M4) { return toM4(l[16:32]) }

// P returns the projection matrix.
func (l *FrameLayout) P() (m linear.M4) { return toM4(l[32:48]) }

// LightLayout is the layout of light data.
// It is defined as follows:
//
//	[0]     | whether the light is unused
//	[1]     | light type
//	[2]     | intensity
//	[3]     | range
//	[4:7]   | color
//	[7]     | angular scale
//	[8:11]  | position
//	[11]    | angular offset
//	[12:15] | direction
//	[15]    | (unused)
type LightLayout [16]float32

// Types of light.
const (
	DistantLight int32 = iota
	PointLight
	SpotLight
)

// SetUnused sets whether the light is unused.
func (l *LightLayout) SetUnused(unused bool) {
	var bool32 int32
	if unused {
		bool32 = 1
	}
	l[0] = *(*float32)(unsafe.Pointer(&bool32))
}

// Unused returns whether the light is unused.
func (l *LightLayout) Unused() bool { return *(*int32)(unsafe.Pointer(&l[0])) != 0 }

// SetType sets the light type.
func (l *LightLayout) SetType(typ int32) { l[1] = *(*float32)(unsafe.Pointer(&typ)) }

// Type returns the light type.
func (l *LightLayout) Type() int32 { return *(*int32)(unsafe.Pointer(&l[1])) }

// SetIntensity sets the intensity.
func (l *LightLayout) SetIntensity(i float32) { l[2] = i }

// Intensity returns the intensity.
func (l *LightLayout) Intensity() float32 { return l[2] }

// SetRange sets the range.
// Used for PointLight and SpotLight.
func (l *LightLayout) SetRange(rng float32) { l[3] = rng }

// Range returns the range.
func (l *LightLayout) Range() float32 { return l[3] }

// SetColor sets the color.
func (l *LightLayout) SetColor(c *linear.V3) { l[4], l[5], l[6] = c[0], c[1], c[2] }

// Color returns the color.
func (l *LightLayout) Color() linear.V3 { return linear.V3{l[4], l[5], l[6]} }

// SetAngScale sets the angular scale.
// Used for SpotLight.
func (l *LightLayout) SetAngScale(s float32) { l[7] = s }

// AngScale returns the angular scale.
func (l *LightLayout) AngScale() float32 { return l[7] }

// SetPosition sets the position.
// Used for PointLight and SpotLight.
func (l *LightLayout) SetPosition(p *linear.V3) { l[8], l[9], l[10] = p[0], p[1], p[2] }

// Position returns the position.
func (l *LightLayout) Position() linear.V3 { return linear.V3{l[8], l[9], l[10]} }

// SetAngOffset sets the angular offset.
// Used for SpotLight.
func (l *LightLayout) SetAngOffset(off float32) { l[11] = off }

// AngOffset returns the angular offset.
func (l *LightLayout) AngOffset() float32 { return l[11] }

// SetDirection sets the direction.
// Used for DistantLight and SpotLight.
func (l *LightLayout) SetDirection(d *linear.V3) { l[12], l[13], l[14] = d[0], d[1], d[2] }

// Direction returns the direction.
func (l *LightLayout) Direction() linear.V3 { return linear.V3{l[12], l[13], l[14]} }

// DrawableLayout is the layout of drawable data.
// It is defined as follows:
//
//	[0:16]  | world matrix
//	[16:32] | normal matrix
//	[32]    | ID
//	[33:36] | (unused)
type DrawableLayout [36]float32

// SetWorld sets the world matrix.
func (l *DrawableLayout) SetWorld(m *linear.M4) { copyM4(l[:16], m) }

// World returns the world matrix.
func (l *DrawableLayout) World() linear.M4 { return toM4(l[:16]) }

// SetNormal sets the normal matrix.
// The 3x3 matrix is padded to 4x4.
func (l *DrawableLayout) SetNormal(m *linear.M3) {
	n := linear.M4{{3: 0}, {3: 0}, {3: 0}, {3: 1}}
	for i := range m {
		n[i][0], n[i][1], n[i][2] = m[i][0], m[i][1], m[i][2]
	}
	copyM4(l[16:32], &n)
}

// Normal returns the normal matrix.
func (l *DrawableLayout) Normal() (m linear.M3) {
	n := toM4(l[16:32])
	m.FromM4(&n)
	return
}

// SetID sets the drawable's ID.
func (l *DrawableLayout) SetID(id uint32) { l[32] = *(*float32)(unsafe.Pointer(&id)) }

// ID returns the drawable's ID.
func (l *DrawableLayout) ID() uint32 { return *(*uint32)(unsafe.Pointer(&l[32])) }

func copyM4(dst []float32, m *linear.M4) { copy(dst, m.Floats()) }

func toM4(src []float32) (m linear.M4) {
	copy(m.Floats(), src)
	return
}
