package wl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wuliuqii/waywin/wl/wlp"
)

func TestOutputSnapshot(t *testing.T) {
	out := &Output{}
	assert.Equal(t, int32(1), out.ScaleFactor())
	assert.Equal(t, int32(1), out.Info().Scale)

	out.Geometry(1920, 0, 600, 340, 0, "ACME", "HD-1", 0)
	out.Mode(3, 1920, 1080, 60000)
	// deprecated non-current modes are ignored
	out.Mode(wlp.OutputModePreferred, 800, 600, 30000)
	out.Scale(2)
	out.Name("DP-1")
	out.Description("ACME HD-1 on DP-1")
	out.Done()

	assert.Equal(t, int32(2), out.ScaleFactor())
	assert.Equal(t, OutputInfo{
		Name:        "DP-1",
		Description: "ACME HD-1 on DP-1",
		Make:        "ACME",
		Model:       "HD-1",
		X:           1920,
		Y:           0,
		Width:       1920,
		Height:      1080,
		Refresh:     60000,
		Scale:       2,
	}, out.Info())
}

func TestOutputBinding(t *testing.T) {
	c := newTestClient(t, baseGlobals("wl_output")...)
	outs := c.Outputs()
	assert.Len(t, outs, 1)
	assert.NotZero(t, outs[0].ID())
	assert.Same(t, outs[0], c.findOutput(outs[0].ID()))
	assert.Nil(t, c.findOutput(9999))
}
