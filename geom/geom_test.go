package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeScaleBy(t *testing.T) {
	s := SizeOf(300, 200)
	assert.Equal(t, DeviceSize{Width: 300, Height: 200}, s.ScaleBy(1.0))
	assert.Equal(t, DeviceSize{Width: 450, Height: 300}, s.ScaleBy(1.5))
	assert.Equal(t, DeviceSize{Width: 600, Height: 400}, s.ScaleBy(2.0))
}

func TestSizeScaleByRounds(t *testing.T) {
	// 101 * 1.25 = 126.25 -> 126, 101 * 1.75 = 176.75 -> 177
	s := SizeOf(101, 101)
	assert.Equal(t, DeviceSize{Width: 126, Height: 126}, s.ScaleBy(1.25))
	assert.Equal(t, DeviceSize{Width: 177, Height: 177}, s.ScaleBy(1.75))
}

func TestBoundsScaleByDropsOrigin(t *testing.T) {
	b := BoundsOf(40, 20, 300, 200)
	assert.Equal(t, b.Size.ScaleBy(2.0), b.ScaleBy(2.0))
}

func TestEdges(t *testing.T) {
	assert.True(t, AllEdges().All())
	assert.True(t, AllEdges().Any())
	assert.False(t, Edges{}.Any())
	assert.False(t, Edges{Top: true}.All())
	assert.True(t, Edges{Top: true}.Any())
}

func TestSizeIsEmpty(t *testing.T) {
	assert.True(t, Size{}.IsEmpty())
	assert.True(t, SizeOf(-1, 5).IsEmpty())
	assert.False(t, SizeOf(1, 1).IsEmpty())
}
