package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wuliuqii/waywin/render"
	"github.com/wuliuqii/waywin/wl/wlp"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "height: 48\nlayer: overlay\naccent: \"#ff0000\"\n"
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, int32(48), cfg.Height)
	assert.Equal(t, "overlay", cfg.Layer)
	assert.Equal(t, "#ff0000", cfg.Accent)
	// Fields the file omits keep their defaults.
	assert.Equal(t, DefaultConfig().Interval, cfg.Interval)
	assert.Equal(t, DefaultConfig().Background, cfg.Background)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("height: [nonsense\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("layer: ceiling\n"), 0o644))
	_, err := Load(path)
	var verr *ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Equal(t, "layer", verr.Field)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"height too small", func(c *Config) { c.Height = 2 }, "height"},
		{"height too large", func(c *Config) { c.Height = 4096 }, "height"},
		{"unknown layer", func(c *Config) { c.Layer = "ceiling" }, "layer"},
		{"bad background", func(c *Config) { c.Background = "red" }, "background"},
		{"short accent", func(c *Config) { c.Accent = "#12" }, "accent"},
		{"interval too short", func(c *Config) { c.Interval = 1 }, "interval"},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }, "log_level"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mut(&cfg)
		err := cfg.Validate()
		var verr *ValidationError
		if assert.ErrorAs(t, err, &verr, tc.name) {
			assert.Equal(t, tc.field, verr.Field, tc.name)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#83a598")
	assert.NoError(t, err)
	assert.Equal(t, render.Color{R: 0x83, G: 0xa5, B: 0x98, A: 0xff}, c)

	c, err = parseColor("#1d2021e6")
	assert.NoError(t, err)
	assert.Equal(t, render.Color{R: 0x1d, G: 0x20, B: 0x21, A: 0xe6}, c)

	_, err = parseColor("1d2021")
	assert.Error(t, err)
	_, err = parseColor("#xyzxyz")
	assert.Error(t, err)
	_, err = parseColor("#12345")
	assert.Error(t, err)
}

func TestLayerValue(t *testing.T) {
	v, err := layerValue("top")
	assert.NoError(t, err)
	assert.Equal(t, uint32(wlp.ZwlrLayerShellV1LayerTop), v)

	v, err = layerValue("Overlay")
	assert.NoError(t, err)
	assert.Equal(t, uint32(wlp.ZwlrLayerShellV1LayerOverlay), v)

	_, err = layerValue("ceiling")
	assert.Error(t, err)
}
