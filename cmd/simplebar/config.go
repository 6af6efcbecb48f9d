package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/wuliuqii/waywin/render"
	"github.com/wuliuqii/waywin/wl/wlp"
)

// Config is the bar's YAML-mapped configuration.
type Config struct {
	// Socket names the compositor socket; empty defers to the environment.
	Socket string `yaml:"socket"`
	// Height is the bar thickness in logical pixels.
	Height int32 `yaml:"height"`
	// Layer places the bar: background, bottom, top, or overlay.
	Layer string `yaml:"layer"`
	// Background and Accent are #rrggbb or #rrggbbaa colors.
	Background string `yaml:"background"`
	Accent     string `yaml:"accent"`
	// Interval is the fallback repaint period in milliseconds, used when the
	// compositor is not driving frames.
	Interval int `yaml:"interval"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
}

// ValidationError reports one rejected configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config field %v: %v", e.Field, e.Message)
}

// DefaultConfig is the bar as it runs with no configuration file.
func DefaultConfig() Config {
	return Config{
		Height:     32,
		Layer:      "top",
		Background: "#1d2021e6",
		Accent:     "#83a598",
		Interval:   250,
		LogLevel:   "info",
	}
}

// Load reads path and overlays it on the defaults. A missing file is not an
// error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to read %v", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "unable to parse %v", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks every field and reports the first violation.
func (c Config) Validate() error {
	if c.Height < 4 || c.Height > 512 {
		return &ValidationError{Field: "height", Message: "must be between 4 and 512"}
	}
	if _, err := layerValue(c.Layer); err != nil {
		return &ValidationError{Field: "layer", Message: err.Error()}
	}
	if _, err := parseColor(c.Background); err != nil {
		return &ValidationError{Field: "background", Message: err.Error()}
	}
	if _, err := parseColor(c.Accent); err != nil {
		return &ValidationError{Field: "accent", Message: err.Error()}
	}
	if c.Interval < 16 {
		return &ValidationError{Field: "interval", Message: "must be at least 16"}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return &ValidationError{Field: "log_level", Message: err.Error()}
	}
	return nil
}

// layerValue maps a configured layer name to its protocol value.
func layerValue(name string) (uint32, error) {
	switch strings.ToLower(name) {
	case "background":
		return wlp.ZwlrLayerShellV1LayerBackground, nil
	case "bottom":
		return wlp.ZwlrLayerShellV1LayerBottom, nil
	case "top":
		return wlp.ZwlrLayerShellV1LayerTop, nil
	case "overlay":
		return wlp.ZwlrLayerShellV1LayerOverlay, nil
	}
	return 0, errors.Errorf("unknown layer %q", name)
}

// parseColor reads #rrggbb or #rrggbbaa.
func parseColor(s string) (render.Color, error) {
	if !strings.HasPrefix(s, "#") {
		return render.Color{}, errors.New("colors start with #")
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return render.Color{}, errors.New("colors are #rrggbb or #rrggbbaa")
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return render.Color{}, errors.New("invalid hex digits")
	}
	c := render.Color{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}
