// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/stage/linear"
	"github.com/gviegas/stage/node"
	"github.com/gviegas/stage/transform"
	"github.com/gviegas/stage/uniform"
)

func TestDrawable(t *testing.T) {
	var rec uniform.Recorder
	var g node.Graph
	grp := g.NewGroup(transform.New().Scale(2))
	n := g.NewNode(transform.New().Translate(linear.V3{1, 0, 0}))
	require.NoError(t, g.Add(grp, n))
	d := NewDrawable(7, &rec)
	g.SetDrawer(n, d)
	g.Draw(grp)

	assert.Equal(t, 1, d.Draws())
	have, ok := rec.Drawables[7]
	require.True(t, ok)
	assert.Equal(t, uint32(7), have.ID())
	assert.Equal(t, *g.World(n), have.World())
	assert.Equal(t, float32(2), have.World()[3][0])

	want := linear.M3{{0.5}, {0, 0.5}, {0, 0, 0.5}}
	nm := have.Normal()
	for i := range want {
		assert.True(t, nm[i].Near(&want[i], 1e-6), nm)
	}
	assert.Equal(t, have, d.Layout())
}

func TestDrawableSingular(t *testing.T) {
	d := NewDrawable(1, nil)
	var w linear.M4
	w.Scale(1, 0, 1)
	d.Draw(node.Nil, &w)
	var id linear.M3
	id.I()
	l := d.Layout()
	assert.Equal(t, id, l.Normal())
}
