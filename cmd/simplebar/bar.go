package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thejerf/suture/v4"

	"github.com/wuliuqii/waywin/geom"
	"github.com/wuliuqii/waywin/render"
	"github.com/wuliuqii/waywin/ticker"
	"github.com/wuliuqii/waywin/wl"
	"github.com/wuliuqii/waywin/wl/wlp"
)

// bar owns the layer-shell window and repaints it. It runs as a suture
// service: frames are painted when the compositor asks for one, with the
// configured interval as a fallback so the sweep keeps moving while the
// surface is occluded.
type bar struct {
	cfg        Config
	window     *wl.Window
	clock      *ticker.Clock
	background render.Color
	accent     render.Color

	frames chan struct{}
	closed chan struct{}
}

func newBar(client *wl.Client, cfg Config) (*bar, error) {
	layer, err := layerValue(cfg.Layer)
	if err != nil {
		return nil, err
	}
	background, err := parseColor(cfg.Background)
	if err != nil {
		return nil, err
	}
	accent, err := parseColor(cfg.Accent)
	if err != nil {
		return nil, err
	}

	b := &bar{
		cfg:        cfg,
		clock:      ticker.New(),
		background: background,
		accent:     accent,
		frames:     make(chan struct{}, 1),
		closed:     make(chan struct{}),
	}

	// Zero width stretches the surface between its anchors.
	w, err := client.CreateWindow(wl.WindowParams{
		Bounds: geom.BoundsOf(0, 0, 0, geom.Pixels(cfg.Height)),
		AppID:  "simplebar",
		LayerShell: &wl.LayerShellOptions{
			Namespace: "simplebar",
			Layer:     layer,
			Anchor: wlp.ZwlrLayerSurfaceV1AnchorTop |
				wlp.ZwlrLayerSurfaceV1AnchorLeft |
				wlp.ZwlrLayerSurfaceV1AnchorRight,
			ExclusiveZone:         cfg.Height,
			KeyboardInteractivity: wlp.ZwlrLayerSurfaceV1KeyboardInteractivityNone,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create bar window")
	}
	b.window = w

	if background.A < 0xff {
		w.SetBackgroundAppearance(wl.BackgroundTransparent)
	}
	w.OnRequestFrame(b.nudge)
	w.OnResize(func(geom.Size, float32) { b.nudge() })
	w.OnClose(func() { close(b.closed) })
	return b, nil
}

func (b *bar) String() string { return "painter" }

// nudge coalesces repaint requests; an already-pending frame absorbs the new
// one.
func (b *bar) nudge() {
	select {
	case b.frames <- struct{}{}:
	default:
	}
}

// Serve implements suture.Service.
func (b *bar) Serve(ctx context.Context) error {
	fallback := time.NewTicker(time.Duration(b.cfg.Interval) * time.Millisecond)
	defer fallback.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.closed:
			return errors.Wrap(suture.ErrTerminateSupervisorTree, "bar window closed")
		case <-b.frames:
		case <-fallback.C:
		}
		b.paint()
	}
}

// paint fills the bar and sweeps the accent across it once a minute,
// measured from launch.
func (b *bar) paint() {
	size := b.window.ContentSize()
	if size.IsEmpty() {
		// Not configured yet; the first configure nudges us again.
		return
	}
	device := size.ScaleBy(b.window.Scale())
	frac := float64(b.clock.Elapsed()%time.Minute) / float64(time.Minute)
	scene := &render.Scene{
		Background: b.background,
		Quads: []render.Quad{{
			Bounds: geom.DeviceBounds{Size: geom.DeviceSize{
				Width:  geom.DevicePixels(float64(device.Width) * frac),
				Height: device.Height,
			}},
			Color: b.accent,
		}},
	}
	if err := b.window.Draw(scene); err != nil {
		// Both buffers are busy; drop the frame and catch the next one.
		logrus.WithField("error", err).Debugln("simplebar: frame skipped")
		return
	}
	b.window.CompletedFrame()
}
