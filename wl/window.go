package wl

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wuliuqii/waywin/event"
	"github.com/wuliuqii/waywin/geom"
	"github.com/wuliuqii/waywin/render"
	"github.com/wuliuqii/waywin/wl/wlp"
)

// Decorations says who draws the window frame.
type Decorations int

const (
	// DecorationsClient means the application draws its own frame.
	DecorationsClient Decorations = iota
	// DecorationsServer means the compositor draws the frame.
	DecorationsServer
)

// BackgroundAppearance is the application's intent for the area behind its
// content.
type BackgroundAppearance int

const (
	BackgroundOpaque BackgroundAppearance = iota
	BackgroundTransparent
	BackgroundBlurred
)

// WindowControls reports which interactive operations the compositor
// supports for a toplevel. All operations are assumed available until the
// compositor advertises otherwise.
type WindowControls struct {
	Fullscreen bool
	Maximize   bool
	Minimize   bool
	WindowMenu bool
}

func defaultWindowControls() WindowControls {
	return WindowControls{
		Fullscreen: true,
		Maximize:   true,
		Minimize:   true,
		WindowMenu: true,
	}
}

// pendingConfigure stages a toplevel configure payload between receipt and
// the xdg_surface acknowledgment that makes it authoritative. A newer
// payload overwrites an unacknowledged one.
type pendingConfigure struct {
	size       *geom.Size
	fullscreen bool
	maximized  bool
	tiling     geom.Edges
}

// Margin is the layer-surface gap from its anchored edges.
type Margin struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

// LayerShellOptions selects a layer-shell role instead of a normal toplevel.
type LayerShellOptions struct {
	// Namespace identifies the surface purpose to the compositor.
	Namespace string
	// Layer is one of the wlp.ZwlrLayerShellV1Layer values.
	Layer uint32
	// Anchor is a bitfield of wlp.ZwlrLayerSurfaceV1Anchor values.
	Anchor uint32
	// ExclusiveZone reserves space along the anchored edge. -1 means the
	// surface ignores other exclusive zones.
	ExclusiveZone int32
	Margin        Margin
	// KeyboardInteractivity is one of the
	// wlp.ZwlrLayerSurfaceV1KeyboardInteractivity values.
	KeyboardInteractivity uint32
}

// WindowParams configures window creation.
type WindowParams struct {
	// Bounds sets the initial logical size. The origin is only meaningful
	// to the caller; compositors do not place windows by position.
	Bounds geom.Bounds
	Title  string
	AppID  string
	// LayerShell, when non-nil, creates a layer-shell surface instead of
	// an xdg toplevel.
	LayerShell *LayerShellOptions
}

// Window binds one application window to a compositor surface. All protocol
// events funnel through the client's read goroutine; facade methods may be
// called from any goroutine. State is guarded by mu, and lifecycle handlers
// are never invoked while it is held.
type Window struct {
	c *Client

	mu sync.Mutex

	surface    *wlp.Surface
	variant    SurfaceVariant
	fractional *wlp.WpFractionalScaleV1
	viewport   *wlp.WpViewport
	blur       *wlp.OrgKdeKwinBlur

	renderer render.Renderer

	callbacks Callbacks
	pending   event.Queue[lifecycleMessage]
	flushing  bool

	acknowledgedFirstConfigure bool
	bounds                     geom.Bounds
	windowBounds               geom.Bounds
	scale                      float32
	fullscreen                 bool
	maximized                  bool
	tiling                     geom.Edges
	inProgressConfigure        *pendingConfigure
	inProgressWindowControls   *WindowControls
	decorations                Decorations
	background                 BackgroundAppearance
	inset                      geom.Pixels
	insetSet                   bool
	outputs                    map[uint32]*Output
	outputOrder                []uint32
	display                    *Output
	active                     bool
	hovered                    bool
	inputHandler               InputHandler
	windowControls             WindowControls
	appID                      string
	title                      string
	closed                     bool
}

// Listener shims. Several protocol roles name their events identically
// (configure, done), so each role gets its own receiver type forwarding into
// the window.

type xdgSurfaceCb struct{ w *Window }

func (cb *xdgSurfaceCb) Configure(serial uint32) {
	cb.w.handleSurfaceConfigure(serial)
}

type toplevelCb struct{ w *Window }

func (cb *toplevelCb) Configure(width int32, height int32, states []byte) {
	cb.w.handleToplevelConfigure(width, height, states)
}

func (cb *toplevelCb) Close() {
	cb.w.handleCloseRequest()
}

// ConfigureBounds advertises the recommended maximum size; sizing decisions
// stay with the configure flow.
func (cb *toplevelCb) ConfigureBounds(width int32, height int32) {}

func (cb *toplevelCb) WmCapabilities(capabilities []byte) {
	cb.w.handleWmCapabilities(capabilities)
}

type decorationCb struct{ w *Window }

func (cb *decorationCb) Configure(mode uint32) {
	cb.w.handleDecorationConfigure(mode)
}

type fractionalCb struct{ w *Window }

func (cb *fractionalCb) PreferredScale(scale uint32) {
	cb.w.handlePreferredScale(scale)
}

type layerCb struct{ w *Window }

func (cb *layerCb) Configure(serial uint32, width uint32, height uint32) {
	cb.w.handleLayerConfigure(serial, width, height)
}

func (cb *layerCb) Closed() {
	// The compositor will not show the surface again; skip the predicate.
	cb.w.Close()
}

type frameCb struct{ w *Window }

func (cb *frameCb) Done(callbackData uint32) {
	cb.w.handleFrameDone()
}

type activationCb struct {
	w     *Window
	token *wlp.XdgActivationTokenV1
}

func (cb *activationCb) Done(token string) {
	cb.w.handleActivationToken(cb.token, token)
}

// handleSurfaceConfigure finishes a configure transaction: commit staged
// capability changes, latch the staged size/state payload, acknowledge, and
// redeclare window geometry. The first acknowledgment, and only it, arms the
// initial frame callback.
func (w *Window) handleSurfaceConfigure(serial uint32) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	xdg, ok := w.variant.BaseSurface()
	if !ok {
		w.mu.Unlock()
		logrus.WithField("surface", w.surface.ID()).Errorln("wl: configure for a surface without an xdg role")
		return
	}

	if controls := w.inProgressWindowControls; controls != nil {
		w.windowControls = *controls
		w.inProgressWindowControls = nil
		w.enqueue(lifecycleMessage{kind: messageAppearanceChanged})
	}

	if cfg := w.inProgressConfigure; cfg != nil {
		w.inProgressConfigure = nil
		gotUnmaximized := w.maximized && !cfg.maximized
		w.fullscreen = cfg.fullscreen
		w.maximized = cfg.maximized
		if cfg.fullscreen || cfg.maximized {
			w.tiling = geom.AllEdges()
		} else {
			w.tiling = cfg.tiling
		}
		size := cfg.size
		if !cfg.fullscreen && !cfg.maximized {
			// Restore bounds track the window only while it floats free;
			// a suggestion that arrives with fullscreen or maximize set
			// must not leak into them.
			if gotUnmaximized {
				restored := w.windowBounds.Size
				size = &restored
			} else if size != nil {
				outer := computeOuterSize(w.inset, w.insetSet, *size, w.tiling)
				size = &outer
			}
			if size != nil {
				w.windowBounds = geom.Bounds{Size: *size}
			}
		}
		if size != nil {
			w.resize(*size)
		}
	}

	if err := xdg.AckConfigure(serial); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to acknowledge configure")
	}
	// Window geometry is surface-local, so it starts from a zero origin
	// regardless of where the caller thinks the window is.
	geo := insetWindowGeometry(geom.Bounds{Size: w.bounds.Size}, w.inset, w.insetSet, w.tiling)
	err := xdg.SetWindowGeometry(int32(geo.Origin.X), int32(geo.Origin.Y), int32(geo.Size.Width), int32(geo.Size.Height))
	if err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to set window geometry")
	}

	if !w.acknowledgedFirstConfigure {
		w.acknowledgedFirstConfigure = true
		w.requestFrame()
	}
	w.mu.Unlock()
	w.flush()
}

// toplevelStates is the decoded xdg_toplevel state array.
type toplevelStates struct {
	maximized  bool
	fullscreen bool
	activated  bool
	tiling     geom.Edges
}

// extractStates decodes the native-endian state words. Unknown values and a
// trailing partial word are ignored.
func extractStates(states []byte) toplevelStates {
	var st toplevelStates
	for i := 0; i+4 <= len(states); i += 4 {
		switch hostByteOrder.Uint32(states[i : i+4]) {
		case wlp.XdgToplevelStateMaximized:
			st.maximized = true
		case wlp.XdgToplevelStateFullscreen:
			st.fullscreen = true
		case wlp.XdgToplevelStateActivated:
			st.activated = true
		case wlp.XdgToplevelStateTiledTop:
			st.tiling.Top = true
		case wlp.XdgToplevelStateTiledBottom:
			st.tiling.Bottom = true
		case wlp.XdgToplevelStateTiledLeft:
			st.tiling.Left = true
		case wlp.XdgToplevelStateTiledRight:
			st.tiling.Right = true
		}
	}
	return st
}

// handleToplevelConfigure stages a size/state suggestion. Nothing becomes
// authoritative until the paired xdg_surface configure is acknowledged; only
// the focus flag, which needs no acknowledgment, is latched immediately.
func (w *Window) handleToplevelConfigure(width int32, height int32, states []byte) {
	st := extractStates(states)
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	cfg := &pendingConfigure{
		fullscreen: st.fullscreen,
		maximized:  st.maximized,
		tiling:     st.tiling,
	}
	if width > 0 && height > 0 {
		size := geom.SizeOf(geom.Pixels(width), geom.Pixels(height))
		cfg.size = &size
	}
	w.inProgressConfigure = cfg
	if w.active != st.activated {
		w.active = st.activated
		w.enqueue(lifecycleMessage{kind: messageActiveStatusChange, active: st.activated})
	}
	w.mu.Unlock()
	w.flush()
}

// handleCloseRequest consults the ShouldClose predicate, then closes.
func (w *Window) handleCloseRequest() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	should := w.callbacks.ShouldClose
	w.mu.Unlock()
	if should != nil && !should() {
		return
	}
	w.Close()
}

// handleWmCapabilities stages advertised window controls. They commit with
// the next acknowledged configure so visible controls never change in the
// middle of a handshake.
func (w *Window) handleWmCapabilities(capabilities []byte) {
	var controls WindowControls
	for i := 0; i+4 <= len(capabilities); i += 4 {
		switch hostByteOrder.Uint32(capabilities[i : i+4]) {
		case wlp.XdgToplevelWmCapabilitiesWindowMenu:
			controls.WindowMenu = true
		case wlp.XdgToplevelWmCapabilitiesMaximize:
			controls.Maximize = true
		case wlp.XdgToplevelWmCapabilitiesFullscreen:
			controls.Fullscreen = true
		case wlp.XdgToplevelWmCapabilitiesMinimize:
			controls.Minimize = true
		}
	}
	w.mu.Lock()
	if !w.closed {
		w.inProgressWindowControls = &controls
	}
	w.mu.Unlock()
}

func (w *Window) handleDecorationConfigure(mode uint32) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	switch mode {
	case wlp.ZxdgToplevelDecorationV1ModeClientSide:
		w.decorations = DecorationsClient
	case wlp.ZxdgToplevelDecorationV1ModeServerSide:
		w.decorations = DecorationsServer
	default:
		w.mu.Unlock()
		logrus.WithField("mode", mode).Warnln("wl: unknown decoration mode")
		return
	}
	w.updateWindow()
	w.enqueue(lifecycleMessage{kind: messageAppearanceChanged})
	w.mu.Unlock()
	w.flush()
}

// handlePreferredScale applies a fractional scale, reported as a numerator
// over 120.
func (w *Window) handlePreferredScale(scale uint32) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.rescale(float32(scale) / 120)
	w.mu.Unlock()
	w.flush()
}

// handleLayerConfigure runs the one-phase layer-shell flow: acknowledge
// immediately and apply the size directly.
func (w *Window) handleLayerConfigure(serial uint32, width uint32, height uint32) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	layer, ok := w.variant.Layer()
	if !ok {
		w.mu.Unlock()
		logrus.WithField("surface", w.surface.ID()).Errorln("wl: layer configure for a non-layer surface")
		return
	}
	if err := layer.AckConfigure(serial); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to acknowledge layer configure")
	}
	// Commit to the suggested size; there is no negotiation for layers.
	if err := layer.SetSize(width, height); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to set layer size")
	}
	if width > 0 && height > 0 {
		w.resize(geom.SizeOf(geom.Pixels(width), geom.Pixels(height)))
	}
	if !w.acknowledgedFirstConfigure {
		w.acknowledgedFirstConfigure = true
		w.requestFrame()
	}
	w.mu.Unlock()
	w.flush()
}

// handleFrameDone re-arms the frame callback and asks for the next frame,
// keeping redraws paced by the compositor.
func (w *Window) handleFrameDone() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.requestFrame()
	w.mu.Unlock()
	w.flush()
}

func (w *Window) handleActivationToken(obj *wlp.XdgActivationTokenV1, token string) {
	if activation := w.c.activation; activation != nil {
		if err := activation.Activate(token, w.surface.ID()); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to activate window")
		}
	}
	if obj != nil {
		logDestroy("activation token", obj.Destroy())
	}
}

// Enter implements wlp.SurfaceListener; the surface now overlaps an output.
func (w *Window) Enter(output uint32) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if out := w.c.findOutput(output); out != nil {
		if _, seen := w.outputs[output]; !seen {
			w.outputs[output] = out
			w.outputOrder = append(w.outputOrder, output)
		}
	}
	w.applyOutputScale()
	w.mu.Unlock()
	w.flush()
}

// Leave implements wlp.SurfaceListener.
func (w *Window) Leave(output uint32) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if _, seen := w.outputs[output]; seen {
		delete(w.outputs, output)
		for i, id := range w.outputOrder {
			if id == output {
				w.outputOrder = append(w.outputOrder[:i], w.outputOrder[i+1:]...)
				break
			}
		}
	}
	w.applyOutputScale()
	w.mu.Unlock()
	w.flush()
}

// PreferredBufferScale implements wlp.SurfaceListener. It is the integer
// fallback; when the fractional-scale protocol is active it stays silent so
// there is exactly one scaling authority.
func (w *Window) PreferredBufferScale(factor int32) {
	w.mu.Lock()
	if w.closed || w.fractional != nil {
		w.mu.Unlock()
		return
	}
	if err := w.surface.SetBufferScale(factor); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to set buffer scale")
	}
	w.rescale(float32(factor))
	w.mu.Unlock()
	w.flush()
}

// PreferredBufferTransform implements wlp.SurfaceListener. Buffers are
// always rendered upright.
func (w *Window) PreferredBufferTransform(transform uint32) {}

// primaryOutputScale recomputes the primary display as the highest-scale
// output the surface overlaps, first-seen winning ties, and returns its
// scale. Returns 1 when the surface overlaps no known output.
// Caller holds w.mu.
func (w *Window) primaryOutputScale() int32 {
	var best *Output
	scale := int32(1)
	for _, id := range w.outputOrder {
		out := w.outputs[id]
		if out == nil {
			continue
		}
		if best == nil || out.ScaleFactor() > scale {
			best = out
			scale = out.ScaleFactor()
		}
	}
	w.display = best
	return scale
}

// applyOutputScale reacts to output membership changes. Caller holds w.mu.
func (w *Window) applyOutputScale() {
	prev := w.display
	scale := w.primaryOutputScale()
	if w.display != prev {
		w.enqueue(lifecycleMessage{kind: messageMoved})
	}
	if w.fractional != nil {
		// The fractional-scale protocol is the sole scaling authority.
		return
	}
	if err := w.surface.SetBufferScale(scale); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to set buffer scale")
	}
	w.rescale(float32(scale))
}

// setSizeAndScale is the single funnel for geometry changes. It updates
// state, resizes the renderer's drawable, keeps the viewport destination in
// step, and queues the Resize notification. Caller holds w.mu.
func (w *Window) setSizeAndScale(size *geom.Size, scale *float32) {
	if (size == nil || *size == w.bounds.Size) && (scale == nil || *scale == w.scale) {
		return
	}
	if size != nil {
		w.bounds.Size = *size
	}
	if scale != nil {
		w.scale = *scale
	}
	if w.renderer != nil {
		w.renderer.UpdateDrawableSize(w.bounds.Size.ScaleBy(w.scale))
	}
	if w.viewport != nil {
		err := w.viewport.SetDestination(int32(w.bounds.Size.Width), int32(w.bounds.Size.Height))
		if err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to set viewport destination")
		}
	}
	w.enqueue(lifecycleMessage{kind: messageResize, size: w.bounds.Size, scale: w.scale})
}

// resize changes the logical size. Caller holds w.mu.
func (w *Window) resize(size geom.Size) {
	w.setSizeAndScale(&size, nil)
}

// rescale changes the scale factor. Caller holds w.mu.
func (w *Window) rescale(scale float32) {
	w.setSizeAndScale(nil, &scale)
}

// requestFrame arms a one-shot frame callback and queues the RequestFrame
// notification. Caller holds w.mu.
func (w *Window) requestFrame() {
	if _, err := w.surface.Frame(&frameCb{w: w}); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to request frame callback")
	}
	w.enqueue(lifecycleMessage{kind: messageRequestFrame})
}

// isTransparent reports whether any part of the surface can show what is
// behind it. Caller holds w.mu.
func (w *Window) isTransparent() bool {
	return w.decorations == DecorationsClient || w.background != BackgroundOpaque
}

// updateWindow reconciles renderer transparency, the opaque-region hint, and
// the blur object after a decoration, background, or inset change. The
// opaque region is only declared for server-decorated opaque windows;
// client-drawn frames usually round their corners, which makes any opaque
// promise unsound. Caller holds w.mu.
func (w *Window) updateWindow() {
	transparent := w.isTransparent()
	if w.renderer != nil {
		w.renderer.UpdateTransparency(transparent)
	}

	region, err := w.c.compositor.CreateRegion(struct{}{})
	if err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to create opaque region")
	} else {
		// The promise covers the restore bounds, surface-local. A stale,
		// smaller region after a maximize is safe; an oversized one is not.
		area := geom.Bounds{Size: w.windowBounds.Size}
		if w.insetSet {
			area = insetAllEdges(area, w.inset)
		}
		err = region.Add(int32(area.Origin.X), int32(area.Origin.Y), int32(area.Size.Width), int32(area.Size.Height))
		if err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to fill opaque region")
		}
		if transparent {
			err = w.surface.SetOpaqueRegion(0)
		} else {
			err = w.surface.SetOpaqueRegion(region.ID())
		}
		if err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to set opaque region")
		}
		logDestroy("opaque region", region.Destroy())
	}

	w.reconcileBlur()
}

// reconcileBlur keeps the compositor's blur state in step with the
// background appearance. Caller holds w.mu.
func (w *Window) reconcileBlur() {
	mgr := w.c.blurManager
	if mgr == nil {
		return
	}
	if w.background == BackgroundBlurred {
		if w.blur == nil {
			blur, err := mgr.Create(struct{}{}, w.surface.ID())
			if err != nil {
				logrus.WithField("error", err).Warnln("wl: unable to create blur")
				return
			}
			// A null region blurs the whole surface.
			if err := blur.SetRegion(0); err != nil {
				logrus.WithField("error", err).Warnln("wl: unable to set blur region")
			}
			w.blur = blur
		}
		if err := w.blur.Commit(); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to commit blur")
		}
	} else {
		if w.blur != nil {
			logDestroy("blur", w.blur.Release())
			w.blur = nil
		}
		if err := mgr.Unset(w.surface.ID()); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to unset blur")
		}
	}
}

// Bounds returns the current outer bounds in logical units. Authoritative
// only after a configure has been acknowledged.
func (w *Window) Bounds() geom.Bounds {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bounds
}

// ContentSize returns the logical size of the drawable area.
func (w *Window) ContentSize() geom.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bounds.Size
}

// Scale returns the current logical-to-physical scale factor.
func (w *Window) Scale() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

// Appearance returns the requested background appearance.
func (w *Window) Appearance() BackgroundAppearance {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.background
}

// IsActive reports whether the window has keyboard focus.
func (w *Window) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// IsHovered reports whether the pointer is over the window.
func (w *Window) IsHovered() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hovered
}

// IsFullscreen reports the last acknowledged fullscreen state.
func (w *Window) IsFullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

// IsMaximized reports the last acknowledged maximize state.
func (w *Window) IsMaximized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maximized
}

// Decorations returns who currently draws the window frame.
func (w *Window) Decorations() Decorations {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.decorations
}

// WindowControls returns the compositor's advertised capabilities.
func (w *Window) WindowControls() WindowControls {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.windowControls
}

// Tiling returns which edges are snapped against a workspace boundary.
// Client-side decorations skip shadows and rounding on tiled edges.
func (w *Window) Tiling() geom.Edges {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tiling
}

// Primary returns the output the window treats as its display.
func (w *Window) Primary() *Output {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.display
}

// toplevel fetches the xdg_toplevel for a facade operation, logging the
// usage mismatch when the window has a different role. Caller holds w.mu.
func (w *Window) toplevel(op string) (*wlp.XdgToplevel, bool) {
	toplevel, ok := w.variant.Toplevel()
	if !ok {
		logrus.WithField("surface", w.surface.ID()).Errorln("wl:", op, "needs a toplevel surface")
	}
	return toplevel, ok
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: SetTitle on closed window")
		return
	}
	w.title = title
	if toplevel, ok := w.toplevel("SetTitle"); ok {
		if err := toplevel.SetTitle(title); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to set title")
		}
	}
}

// SetAppID sets the application identifier used for desktop integration.
func (w *Window) SetAppID(appID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: SetAppID on closed window")
		return
	}
	w.appID = appID
	if toplevel, ok := w.toplevel("SetAppID"); ok {
		if err := toplevel.SetAppID(appID); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to set app id")
		}
	}
}

// SetBackgroundAppearance changes what the compositor composites behind the
// window content.
func (w *Window) SetBackgroundAppearance(bg BackgroundAppearance) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: SetBackgroundAppearance on closed window")
		return
	}
	w.background = bg
	w.updateWindow()
}

// SetClientInset reports the client-drawn decoration thickness. The inset
// joins geometry math from here on: configure suggestions grow by it on
// untiled edges and declared geometry shrinks by it.
func (w *Window) SetClientInset(inset geom.Pixels) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: SetClientInset on closed window")
		return
	}
	if w.insetSet && w.inset == inset {
		return
	}
	w.inset = inset
	w.insetSet = true
	w.updateWindow()
}

// RequestDecorations asks the compositor for a decoration mode. Without the
// decoration protocol the client side is all there is, so the request
// resolves locally.
func (w *Window) RequestDecorations(d Decorations) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		logrus.Debugln("wl: RequestDecorations on closed window")
		return
	}
	deco, ok := w.variant.Decoration()
	if !ok {
		if _, isToplevel := w.variant.Toplevel(); isToplevel {
			w.decorations = DecorationsClient
			w.updateWindow()
			w.enqueue(lifecycleMessage{kind: messageAppearanceChanged})
			w.mu.Unlock()
			w.flush()
			return
		}
		w.mu.Unlock()
		logrus.WithField("surface", w.surface.ID()).Errorln("wl: RequestDecorations needs a toplevel surface")
		return
	}
	w.decorations = d
	mode := uint32(wlp.ZxdgToplevelDecorationV1ModeClientSide)
	if d == DecorationsServer {
		mode = wlp.ZxdgToplevelDecorationV1ModeServerSide
	}
	if err := deco.SetMode(mode); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to request decoration mode")
	}
	w.updateWindow()
	w.mu.Unlock()
	w.flush()
}

// Minimize asks the compositor to minimize the window.
func (w *Window) Minimize() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: Minimize on closed window")
		return
	}
	if toplevel, ok := w.toplevel("Minimize"); ok {
		if err := toplevel.SetMinimized(); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to minimize")
		}
	}
}

// Zoom toggles the maximized state. The result lands with a later configure.
func (w *Window) Zoom() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: Zoom on closed window")
		return
	}
	toplevel, ok := w.toplevel("Zoom")
	if !ok {
		return
	}
	var err error
	if w.maximized {
		err = toplevel.UnsetMaximized()
	} else {
		err = toplevel.SetMaximized()
	}
	if err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to toggle maximize")
	}
}

// ToggleFullscreen flips fullscreen, leaving the output choice to the
// compositor. The result lands with a later configure.
func (w *Window) ToggleFullscreen() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: ToggleFullscreen on closed window")
		return
	}
	toplevel, ok := w.toplevel("ToggleFullscreen")
	if !ok {
		return
	}
	var err error
	if w.fullscreen {
		err = toplevel.UnsetFullscreen()
	} else {
		err = toplevel.SetFullscreen(0)
	}
	if err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to toggle fullscreen")
	}
}

// resizeEdge maps edge flags to the protocol's resize-edge value.
func resizeEdge(e geom.Edges) uint32 {
	switch {
	case e.Top && e.Left:
		return wlp.XdgToplevelResizeEdgeTopLeft
	case e.Top && e.Right:
		return wlp.XdgToplevelResizeEdgeTopRight
	case e.Bottom && e.Left:
		return wlp.XdgToplevelResizeEdgeBottomLeft
	case e.Bottom && e.Right:
		return wlp.XdgToplevelResizeEdgeBottomRight
	case e.Top:
		return wlp.XdgToplevelResizeEdgeTop
	case e.Bottom:
		return wlp.XdgToplevelResizeEdgeBottom
	case e.Left:
		return wlp.XdgToplevelResizeEdgeLeft
	case e.Right:
		return wlp.XdgToplevelResizeEdgeRight
	}
	return wlp.XdgToplevelResizeEdgeNone
}

// StartMove begins an interactive move driven by the compositor. It must be
// a response to the user's last press, whose serial proves it.
func (w *Window) StartMove() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: StartMove on closed window")
		return
	}
	toplevel, ok := w.toplevel("StartMove")
	if !ok {
		return
	}
	seat := w.c.seat
	if seat == nil {
		logrus.Errorln("wl: StartMove needs a seat")
		return
	}
	if err := toplevel.Move(seat.ID(), w.c.Serial(SerialMousePress)); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to start move")
	}
}

// StartResize begins an interactive resize from the given edge or corner.
func (w *Window) StartResize(edge geom.Edges) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: StartResize on closed window")
		return
	}
	toplevel, ok := w.toplevel("StartResize")
	if !ok {
		return
	}
	seat := w.c.seat
	if seat == nil {
		logrus.Errorln("wl: StartResize needs a seat")
		return
	}
	if err := toplevel.Resize(seat.ID(), w.c.Serial(SerialMousePress), resizeEdge(edge)); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to start resize")
	}
}

// ShowWindowMenu opens the compositor's window menu at a logical position.
func (w *Window) ShowWindowMenu(position geom.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: ShowWindowMenu on closed window")
		return
	}
	toplevel, ok := w.toplevel("ShowWindowMenu")
	if !ok {
		return
	}
	seat := w.c.seat
	if seat == nil {
		logrus.Errorln("wl: ShowWindowMenu needs a seat")
		return
	}
	err := toplevel.ShowWindowMenu(seat.ID(), w.c.Serial(SerialMousePress), int32(position.X), int32(position.Y))
	if err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to show window menu")
	}
}

// RequestActivation asks the compositor to focus this window, proving user
// intent with the last key-press serial. The activation completes when the
// token's done event arrives.
func (w *Window) RequestActivation() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: RequestActivation on closed window")
		return
	}
	activation := w.c.activation
	if activation == nil {
		logrus.Debugln("wl: compositor lacks xdg-activation")
		return
	}
	cb := &activationCb{w: w}
	token, err := activation.GetActivationToken(cb)
	if err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to request activation token")
		return
	}
	cb.token = token
	if seat := w.c.seat; seat != nil {
		if err := token.SetSerial(w.c.Serial(SerialKeyPress), seat.ID()); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to set activation serial")
		}
	}
	if w.appID != "" {
		if err := token.SetAppID(w.appID); err != nil {
			logrus.WithField("error", err).Warnln("wl: unable to set activation app id")
		}
	}
	if err := token.SetSurface(w.surface.ID()); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to set activation surface")
	}
	if err := token.Commit(); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to commit activation token")
	}
}

// UpdateIMEPosition reports the caret rectangle to the client's input-method
// hook so candidate windows can track the caret.
func (w *Window) UpdateIMEPosition() {
	area, ok := w.imeArea()
	if !ok {
		return
	}
	w.c.reportIMEPosition(area)
}

// Draw paints one scene through the window's renderer. The frame shows once
// CompletedFrame commits it.
func (w *Window) Draw(scene *render.Scene) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: Draw on closed window")
		return nil
	}
	return w.renderer.Draw(scene)
}

// CompletedFrame commits the surface, publishing the attached buffer along
// with any pending surface state.
func (w *Window) CompletedFrame() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		logrus.Debugln("wl: CompletedFrame on closed window")
		return
	}
	if err := w.surface.Commit(); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to commit frame")
	}
}

// RequestFrame arms a frame callback and queues a RequestFrame notification.
func (w *Window) RequestFrame() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		logrus.Debugln("wl: RequestFrame on closed window")
		return
	}
	w.requestFrame()
	w.mu.Unlock()
	w.flush()
}

// Close tears the window down. Protocol destroy requests go out immediately
// in dependency order; the Close notification and registry cleanup run later
// as a deferred task on the client's event loop, so closing from inside an
// event handler is safe. Closing twice is a no-op.
func (w *Window) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.blur != nil {
		logDestroy("blur", w.blur.Release())
		w.blur = nil
	}
	if w.viewport != nil {
		logDestroy("viewport", w.viewport.Destroy())
		w.viewport = nil
	}
	if w.fractional != nil {
		logDestroy("fractional scale", w.fractional.Destroy())
		w.fractional = nil
	}
	w.variant.teardown()
	logDestroy("surface", w.surface.Destroy())
	id := w.surface.ID()
	w.mu.Unlock()

	w.c.ScheduleTask(func() {
		w.mu.Lock()
		closeCb := w.callbacks.Close
		w.mu.Unlock()
		if closeCb != nil {
			closeCb()
		}
		w.c.dropWindow(id)
	})
}
