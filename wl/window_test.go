package wl

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/wuliuqii/waywin/geom"
	"github.com/wuliuqii/waywin/render"
	"github.com/wuliuqii/waywin/wl/wlp"
)

// stateBytes encodes protocol enum values the way xdg_toplevel arrays carry
// them: native-endian 32-bit words.
func stateBytes(values ...uint32) []byte {
	buf := make([]byte, 0, len(values)*4)
	for _, v := range values {
		var word [4]byte
		hostByteOrder.PutUint32(word[:], v)
		buf = append(buf, word[:]...)
	}
	return buf
}

// configure drives a full toplevel handshake: the suggestion, then the
// xdg_surface commit that makes it authoritative.
func configure(w *Window, serial uint32, width, height int32, states ...uint32) {
	w.handleToplevelConfigure(width, height, stateBytes(states...))
	w.handleSurfaceConfigure(serial)
}

func TestCreateWindowToplevel(t *testing.T) {
	c := newTestClient(t, baseGlobals("zxdg_decoration_manager_v1")...)
	w := testWindow(t, c)

	_, ok := w.variant.Toplevel()
	assert.True(t, ok)
	_, ok = w.variant.Decoration()
	assert.True(t, ok)
	_, ok = w.variant.BaseSurface()
	assert.True(t, ok)

	assert.Equal(t, geom.SizeOf(800, 600), w.ContentSize())
	assert.Equal(t, float32(1), w.Scale())
	assert.Equal(t, defaultWindowControls(), w.WindowControls())
	assert.Equal(t, DecorationsClient, w.Decorations())
	assert.False(t, w.IsActive())
	assert.False(t, w.IsFullscreen())
	assert.False(t, w.IsMaximized())
	assert.Len(t, c.Windows(), 1)
}

func TestConfigureAppliesAcknowledgedSize(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	var resizes []geom.Size
	var frames int
	w.OnResize(func(size geom.Size, scale float32) { resizes = append(resizes, size) })
	w.OnRequestFrame(func() { frames++ })

	w.handleToplevelConfigure(300, 200, nil)
	assert.Equal(t, geom.SizeOf(800, 600), w.ContentSize())
	assert.Empty(t, resizes)

	w.handleSurfaceConfigure(1)
	assert.Equal(t, geom.SizeOf(300, 200), w.ContentSize())
	assert.Equal(t, []geom.Size{geom.SizeOf(300, 200)}, resizes)
	assert.Equal(t, 1, frames)

	configure(w, 2, 400, 300)
	assert.Equal(t, geom.SizeOf(400, 300), w.ContentSize())
	assert.Equal(t, 1, frames)
}

func TestConfigureLastSuggestionWins(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	w.handleToplevelConfigure(640, 480, nil)
	w.handleToplevelConfigure(700, 500, nil)
	w.handleSurfaceConfigure(1)
	assert.Equal(t, geom.SizeOf(700, 500), w.ContentSize())
}

func TestConfigureRestoresBoundsAfterMaximize(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)
	configure(w, 1, 800, 600)

	configure(w, 2, 1920, 1080, wlp.XdgToplevelStateMaximized)
	assert.True(t, w.IsMaximized())
	assert.Equal(t, geom.SizeOf(1920, 1080), w.ContentSize())
	assert.Equal(t, geom.SizeOf(800, 600), w.windowBounds.Size)
	assert.True(t, w.Tiling().All())

	configure(w, 3, 0, 0)
	assert.False(t, w.IsMaximized())
	assert.Equal(t, geom.SizeOf(800, 600), w.ContentSize())
	assert.False(t, w.Tiling().Any())
}

func TestFullscreenImpliesTiling(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)
	configure(w, 1, 800, 600)

	configure(w, 2, 2560, 1440, wlp.XdgToplevelStateFullscreen)
	assert.True(t, w.IsFullscreen())
	assert.True(t, w.Tiling().All())
	assert.Equal(t, geom.SizeOf(2560, 1440), w.ContentSize())
	assert.Equal(t, geom.SizeOf(800, 600), w.windowBounds.Size)

	configure(w, 3, 800, 600)
	assert.False(t, w.IsFullscreen())
	assert.False(t, w.Tiling().Any())
	assert.Equal(t, geom.SizeOf(800, 600), w.ContentSize())
}

func TestTiledEdgesFromStates(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	configure(w, 1, 960, 1080, wlp.XdgToplevelStateTiledLeft, wlp.XdgToplevelStateTiledTop, wlp.XdgToplevelStateTiledBottom)
	tiling := w.Tiling()
	assert.True(t, tiling.Left)
	assert.True(t, tiling.Top)
	assert.True(t, tiling.Bottom)
	assert.False(t, tiling.Right)
}

func TestActivationLatchesBeforeAck(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	var actives []bool
	w.OnActiveStatusChange(func(a bool) { actives = append(actives, a) })

	w.handleToplevelConfigure(0, 0, stateBytes(wlp.XdgToplevelStateActivated))
	assert.True(t, w.IsActive())
	assert.Equal(t, []bool{true}, actives)

	w.handleToplevelConfigure(0, 0, nil)
	assert.False(t, w.IsActive())
	assert.Equal(t, []bool{true, false}, actives)

	// repeating the same state is not a change
	w.handleToplevelConfigure(0, 0, nil)
	assert.Equal(t, []bool{true, false}, actives)
}

func TestWindowControlsCommitWithConfigure(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	var appearances int
	w.OnAppearanceChanged(func() { appearances++ })

	w.handleWmCapabilities(stateBytes(wlp.XdgToplevelWmCapabilitiesMaximize, wlp.XdgToplevelWmCapabilitiesMinimize))
	assert.Equal(t, defaultWindowControls(), w.WindowControls())
	assert.Zero(t, appearances)

	// newer size suggestions must not disturb the staged controls
	w.handleToplevelConfigure(640, 480, nil)
	w.handleToplevelConfigure(700, 500, nil)
	w.handleSurfaceConfigure(1)

	assert.Equal(t, WindowControls{Maximize: true, Minimize: true}, w.WindowControls())
	assert.Equal(t, 1, appearances)
	assert.Equal(t, geom.SizeOf(700, 500), w.ContentSize())
}

func TestDecorationConfigure(t *testing.T) {
	c := newTestClient(t, baseGlobals("zxdg_decoration_manager_v1")...)
	w := testWindow(t, c)

	var appearances int
	w.OnAppearanceChanged(func() { appearances++ })

	w.handleDecorationConfigure(wlp.ZxdgToplevelDecorationV1ModeServerSide)
	assert.Equal(t, DecorationsServer, w.Decorations())
	assert.Equal(t, 1, appearances)

	w.handleDecorationConfigure(99)
	assert.Equal(t, DecorationsServer, w.Decorations())
	assert.Equal(t, 1, appearances)

	w.handleDecorationConfigure(wlp.ZxdgToplevelDecorationV1ModeClientSide)
	assert.Equal(t, DecorationsClient, w.Decorations())
	assert.Equal(t, 2, appearances)
}

func TestRequestDecorationsWithoutProtocol(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	var appearances int
	w.OnAppearanceChanged(func() { appearances++ })

	w.RequestDecorations(DecorationsServer)
	assert.Equal(t, DecorationsClient, w.Decorations())
	assert.Equal(t, 1, appearances)
}

func TestRequestDecorationsWithProtocol(t *testing.T) {
	c := newTestClient(t, baseGlobals("zxdg_decoration_manager_v1")...)
	w := testWindow(t, c)

	w.RequestDecorations(DecorationsServer)
	assert.Equal(t, DecorationsServer, w.Decorations())
}

func TestFractionalScale(t *testing.T) {
	c := newTestClient(t, baseGlobals("wp_fractional_scale_manager_v1", "wp_viewporter")...)
	w := testWindow(t, c)
	assert.NotNil(t, w.fractional)
	assert.NotNil(t, w.viewport)

	var scales []float32
	w.OnResize(func(size geom.Size, scale float32) { scales = append(scales, scale) })

	w.handlePreferredScale(180)
	assert.Equal(t, float32(1.5), w.Scale())
	assert.Equal(t, []float32{1.5}, scales)

	// the integer fallback stays quiet while fractional scaling is active
	w.PreferredBufferScale(2)
	assert.Equal(t, float32(1.5), w.Scale())
	assert.Len(t, scales, 1)
}

func TestBufferScaleFallback(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	w.PreferredBufferScale(2)
	assert.Equal(t, float32(2), w.Scale())
}

func TestPrimaryOutputScale(t *testing.T) {
	c := newTestClient(t, baseGlobals("wl_output", "wl_output")...)
	outs := c.Outputs()
	assert.Len(t, outs, 2)
	outs[1].Scale(2)

	w := testWindow(t, c)
	var moves int
	w.OnMoved(func() { moves++ })

	w.Enter(outs[0].ID())
	assert.Equal(t, float32(1), w.Scale())
	assert.Equal(t, 1, moves)
	assert.Same(t, outs[0], w.Primary())

	w.Enter(outs[1].ID())
	assert.Equal(t, float32(2), w.Scale())
	assert.Equal(t, 2, moves)
	assert.Same(t, outs[1], w.Primary())

	w.Leave(outs[1].ID())
	assert.Equal(t, float32(1), w.Scale())
	assert.Equal(t, 3, moves)
	assert.Same(t, outs[0], w.Primary())
}

func TestPrimaryOutputTieKeepsFirst(t *testing.T) {
	c := newTestClient(t, baseGlobals("wl_output", "wl_output")...)
	outs := c.Outputs()

	w := testWindow(t, c)
	w.Enter(outs[0].ID())
	w.Enter(outs[1].ID())
	assert.Same(t, outs[0], w.Primary())
}

func TestBlurLifecycle(t *testing.T) {
	c := newTestClient(t, baseGlobals("org_kde_kwin_blur_manager")...)
	w := testWindow(t, c)

	w.SetBackgroundAppearance(BackgroundBlurred)
	assert.Equal(t, BackgroundBlurred, w.Appearance())
	assert.NotNil(t, w.blur)

	// repeated requests reuse the blur object
	blur := w.blur
	w.SetBackgroundAppearance(BackgroundBlurred)
	assert.Same(t, blur, w.blur)

	w.SetBackgroundAppearance(BackgroundOpaque)
	assert.Equal(t, BackgroundOpaque, w.Appearance())
	assert.Nil(t, w.blur)
}

func TestTransparencyFollowsDecorationsAndBackground(t *testing.T) {
	c := newTestClient(t, baseGlobals("zxdg_decoration_manager_v1")...)
	w := testWindow(t, c)

	// client-drawn frames round their corners, so the surface is transparent
	assert.True(t, w.isTransparent())

	w.handleDecorationConfigure(wlp.ZxdgToplevelDecorationV1ModeServerSide)
	assert.False(t, w.isTransparent())

	w.SetBackgroundAppearance(BackgroundTransparent)
	assert.True(t, w.isTransparent())

	w.SetBackgroundAppearance(BackgroundOpaque)
	assert.False(t, w.isTransparent())
}

func TestSetClientInsetGrowsConfigureSizes(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	w.SetClientInset(5)
	configure(w, 1, 300, 200)
	assert.Equal(t, geom.SizeOf(310, 210), w.ContentSize())

	// tiled edges draw no decoration and add no inset
	configure(w, 2, 300, 200, wlp.XdgToplevelStateTiledLeft, wlp.XdgToplevelStateTiledRight)
	assert.Equal(t, geom.SizeOf(300, 210), w.ContentSize())

	// fullscreen suggestions are used as given
	configure(w, 3, 1920, 1080, wlp.XdgToplevelStateFullscreen)
	assert.Equal(t, geom.SizeOf(1920, 1080), w.ContentSize())
}

func TestTwoPhaseClose(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w, err := c.CreateWindow(WindowParams{Bounds: geom.BoundsOf(0, 0, 320, 240)})
	assert.NoError(t, err)

	var closes int
	w.OnClose(func() { closes++ })

	w.Close()
	assert.Zero(t, closes)
	assert.Len(t, c.Windows(), 1)

	c.runTasks()
	assert.Equal(t, 1, closes)
	assert.Empty(t, c.Windows())

	w.Close()
	c.runTasks()
	assert.Equal(t, 1, closes)
}

func TestShouldClosePredicate(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	w.OnShouldClose(func() bool { return false })
	w.handleCloseRequest()
	assert.False(t, w.closed)

	w.OnShouldClose(func() bool { return true })
	w.handleCloseRequest()
	assert.True(t, w.closed)
}

func TestCloseRequestWithoutPredicateCloses(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	w.handleCloseRequest()
	assert.True(t, w.closed)
}

func TestFacadeAfterCloseIsInert(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)
	w.Close()
	c.runTasks()

	w.SetTitle("late")
	w.SetAppID("late")
	w.Zoom()
	w.ToggleFullscreen()
	w.Minimize()
	w.StartMove()
	w.StartResize(geom.Edges{Right: true})
	w.ShowWindowMenu(geom.Point{X: 1, Y: 1})
	w.RequestActivation()
	w.RequestFrame()
	w.SetClientInset(3)
	w.SetBackgroundAppearance(BackgroundBlurred)
	w.RequestDecorations(DecorationsServer)
	w.CompletedFrame()
	assert.NoError(t, w.Draw(&render.Scene{}))

	w.handleToplevelConfigure(100, 100, nil)
	w.handleSurfaceConfigure(9)
	w.handlePreferredScale(240)
	w.Enter(1)
	w.Leave(1)
	assert.Equal(t, geom.SizeOf(800, 600), w.ContentSize())
}

func TestLayerSurfaceConfigure(t *testing.T) {
	c := newTestClient(t, baseGlobals("zwlr_layer_shell_v1")...)
	w, err := c.CreateWindow(WindowParams{
		Bounds: geom.BoundsOf(0, 0, 0, 32),
		LayerShell: &LayerShellOptions{
			Namespace:     "bar",
			Layer:         wlp.ZwlrLayerShellV1LayerTop,
			Anchor:        wlp.ZwlrLayerSurfaceV1AnchorTop | wlp.ZwlrLayerSurfaceV1AnchorLeft | wlp.ZwlrLayerSurfaceV1AnchorRight,
			ExclusiveZone: 32,
		},
	})
	assert.NoError(t, err)
	t.Cleanup(func() {
		w.Close()
		c.runTasks()
	})

	_, ok := w.variant.Layer()
	assert.True(t, ok)
	_, ok = w.variant.Toplevel()
	assert.False(t, ok)
	_, ok = w.variant.BaseSurface()
	assert.False(t, ok)

	var frames int
	var sizes []geom.Size
	w.OnRequestFrame(func() { frames++ })
	w.OnResize(func(s geom.Size, _ float32) { sizes = append(sizes, s) })

	w.handleLayerConfigure(9, 1920, 32)
	assert.Equal(t, geom.SizeOf(1920, 32), w.ContentSize())
	assert.Equal(t, []geom.Size{geom.SizeOf(1920, 32)}, sizes)
	assert.Equal(t, 1, frames)

	w.handleLayerConfigure(10, 1920, 32)
	assert.Equal(t, 1, frames)
}

func TestLayerSurfaceNeedsGlobal(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	_, err := c.CreateWindow(WindowParams{
		Bounds:     geom.BoundsOf(0, 0, 100, 32),
		LayerShell: &LayerShellOptions{Namespace: "bar"},
	})
	assert.Error(t, err)
	assert.Equal(t, ErrNotSupported, errors.Cause(err))
}

func TestLayerClosedTearsDown(t *testing.T) {
	c := newTestClient(t, baseGlobals("zwlr_layer_shell_v1")...)
	w, err := c.CreateWindow(WindowParams{
		Bounds:     geom.BoundsOf(0, 0, 100, 32),
		LayerShell: &LayerShellOptions{Namespace: "bar"},
	})
	assert.NoError(t, err)

	(&layerCb{w: w}).Closed()
	assert.True(t, w.closed)
	c.runTasks()
	assert.Empty(t, c.Windows())
}

func TestExtractStates(t *testing.T) {
	raw := stateBytes(wlp.XdgToplevelStateMaximized, 77, wlp.XdgToplevelStateTiledLeft)
	raw = append(raw, 0x01, 0x02) // trailing partial word is ignored
	st := extractStates(raw)
	assert.True(t, st.maximized)
	assert.True(t, st.tiling.Left)
	assert.False(t, st.fullscreen)
	assert.False(t, st.activated)
	assert.False(t, st.tiling.Right)

	st = extractStates(nil)
	assert.Equal(t, toplevelStates{}, st)
}

func TestResizeEdgeMapping(t *testing.T) {
	cases := []struct {
		name  string
		edges geom.Edges
		want  uint32
	}{
		{"none", geom.Edges{}, wlp.XdgToplevelResizeEdgeNone},
		{"top", geom.Edges{Top: true}, wlp.XdgToplevelResizeEdgeTop},
		{"bottom", geom.Edges{Bottom: true}, wlp.XdgToplevelResizeEdgeBottom},
		{"left", geom.Edges{Left: true}, wlp.XdgToplevelResizeEdgeLeft},
		{"right", geom.Edges{Right: true}, wlp.XdgToplevelResizeEdgeRight},
		{"top-left", geom.Edges{Top: true, Left: true}, wlp.XdgToplevelResizeEdgeTopLeft},
		{"top-right", geom.Edges{Top: true, Right: true}, wlp.XdgToplevelResizeEdgeTopRight},
		{"bottom-left", geom.Edges{Bottom: true, Left: true}, wlp.XdgToplevelResizeEdgeBottomLeft},
		{"bottom-right", geom.Edges{Bottom: true, Right: true}, wlp.XdgToplevelResizeEdgeBottomRight},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resizeEdge(tc.edges), tc.name)
	}
}

func TestFlushReentrancy(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	var order []string
	w.OnResize(func(size geom.Size, scale float32) {
		order = append(order, "resize")
		if len(order) == 1 {
			w.RequestFrame()
		}
	})
	w.OnRequestFrame(func() { order = append(order, "frame") })

	configure(w, 1, 300, 200)
	assert.Equal(t, []string{"resize", "frame", "frame"}, order)
}

func TestZoomTogglesMaximize(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	// requests only suggest; state still flips with the configure round
	w.Zoom()
	configure(w, 1, 1920, 1080, wlp.XdgToplevelStateMaximized)
	assert.True(t, w.IsMaximized())

	w.Zoom()
	configure(w, 2, 0, 0)
	assert.False(t, w.IsMaximized())
}

func TestActivationTokenFlow(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)
	// without xdg_activation_v1 the request is refused quietly
	w.RequestActivation()

	c = newTestClient(t, baseGlobals("xdg_activation_v1")...)
	w = testWindow(t, c)
	w.RequestActivation()

	// the compositor hands the token string back; the window activates
	// itself and releases the token object
	cb := &activationCb{w: w}
	token, err := c.activation.GetActivationToken(cb)
	assert.NoError(t, err)
	cb.token = token
	cb.Done("ready-1")
}
