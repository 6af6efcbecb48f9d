package wl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wuliuqii/waywin/geom"
)

func TestComputeOuterSize(t *testing.T) {
	suggested := geom.SizeOf(300, 200)

	assert.Equal(t, suggested, computeOuterSize(12, false, suggested, geom.Edges{}))
	assert.Equal(t, geom.SizeOf(324, 224), computeOuterSize(12, true, suggested, geom.Edges{}))
	assert.Equal(t, geom.SizeOf(312, 212), computeOuterSize(12, true, suggested, geom.Edges{Top: true, Left: true}))
	assert.Equal(t, suggested, computeOuterSize(12, true, suggested, geom.AllEdges()))
}

func TestInsetWindowGeometry(t *testing.T) {
	bounds := geom.BoundsOf(0, 0, 320, 220)

	assert.Equal(t, bounds, insetWindowGeometry(bounds, 10, false, geom.Edges{}))
	assert.Equal(t, geom.BoundsOf(10, 10, 300, 200), insetWindowGeometry(bounds, 10, true, geom.Edges{}))

	// tiled edges keep their side flush
	assert.Equal(t, geom.BoundsOf(10, 0, 300, 210), insetWindowGeometry(bounds, 10, true, geom.Edges{Top: true}))
	assert.Equal(t, bounds, insetWindowGeometry(bounds, 10, true, geom.AllEdges()))

	// declared geometry never collapses below 1x1
	small := insetWindowGeometry(geom.BoundsOf(0, 0, 5, 5), 10, true, geom.Edges{})
	assert.Equal(t, geom.SizeOf(1, 1), small.Size)
}

func TestInsetAllEdges(t *testing.T) {
	assert.Equal(t, geom.BoundsOf(4, 4, 92, 42), insetAllEdges(geom.BoundsOf(0, 0, 100, 50), 4))

	shrunk := insetAllEdges(geom.BoundsOf(0, 0, 6, 6), 4)
	assert.Equal(t, geom.SizeOf(0, 0), shrunk.Size)
}
