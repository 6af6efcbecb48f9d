package wl

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wuliuqii/waywin/event"
	"github.com/wuliuqii/waywin/geom"
	"github.com/wuliuqii/waywin/render"
	"github.com/wuliuqii/waywin/wl/wlp"
)

// SerialKind distinguishes the event classes whose serials prove user intent
// to the compositor.
type SerialKind int

const (
	SerialKeyPress SerialKind = iota
	SerialMousePress
	SerialMouseRelease
	SerialEnter

	serialKindCount
)

// Client owns one compositor connection: the bound globals, the outputs, and
// every window created on it. Protocol events are handled on the
// connection's read goroutine; the exported API may be called from any
// goroutine.
type Client struct {
	ctx *wlp.Context

	compositor *wlp.Compositor
	shm        *wlp.Shm
	wmBase     *wlp.XdgWmBase
	seat       *wlp.Seat

	decorationManager *wlp.ZxdgDecorationManagerV1
	fractionalManager *wlp.WpFractionalScaleManagerV1
	viewporter        *wlp.WpViewporter
	blurManager       *wlp.OrgKdeKwinBlurManager
	layerShell        *wlp.ZwlrLayerShellV1
	activation        *wlp.XdgActivationV1

	mu          sync.Mutex
	outputs     []*Output
	windows     map[uint32]*Window
	serials     [serialKindCount]uint32
	seatCaps    uint32
	seatName    string
	imePosition func(geom.Bounds)

	tasks event.Queue[func()]
}

// callbackListener wakes a Roundtrip. The done flag guards against the
// signal arriving before the waiter sleeps.
type callbackListener struct {
	mu   sync.Mutex
	cond *sync.Cond
	done bool
}

func newCallbackListener() *callbackListener {
	l := &callbackListener{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *callbackListener) Done(callbackData uint32) {
	l.mu.Lock()
	l.done = true
	l.mu.Unlock()
	l.cond.Signal()
}

func (l *callbackListener) wait() {
	l.mu.Lock()
	for !l.done {
		l.cond.Wait()
	}
	l.mu.Unlock()
}

// Connect dials the compositor socket and binds the globals this package
// drives. sockName may be empty (use $WAYLAND_DISPLAY, then wayland-0), a
// name relative to $XDG_RUNTIME_DIR, or an absolute path.
func Connect(sockName string) (*Client, error) {
	if sockName == "" {
		sockName = os.Getenv("WAYLAND_DISPLAY")
	}
	if sockName == "" {
		sockName = "wayland-0"
	}

	pathIsAbsolute := sockName[0] == '/'
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if !pathIsAbsolute && runtimeDir == "" {
		return nil, errors.New("XDG_RUNTIME_DIR is not set in environment")
	}
	absSockName := sockName
	if !pathIsAbsolute {
		absSockName = filepath.Join(runtimeDir, sockName)
	}
	addr, err := net.ResolveUnixAddr("unix", absSockName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to resolve unix socket address (%s)", absSockName)
	}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to wayland server at (%s)", absSockName)
	}

	c := newClient(wlp.NewContext(conn))
	c.ctx.Start()
	if err := c.Roundtrip(); err != nil {
		return nil, errors.Wrap(err, "initial registry sync failed")
	}
	if err := c.bindGlobals(); err != nil {
		return nil, err
	}
	return c, c.Roundtrip()
}

func newClient(ctx *wlp.Context) *Client {
	c := &Client{
		ctx:     ctx,
		windows: make(map[uint32]*Window),
	}
	ctx.AfterDispatch = c.runTasks
	return c
}

// bindGlobals binds everything the client needs from the registry. The
// compositor, shm, and xdg_wm_base globals are required; the rest degrade
// gracefully when absent.
func (c *Client) bindGlobals() error {
	cmp, err := c.ctx.BindGlobal("wl_compositor", c)
	if err != nil {
		return errors.Wrap(err, "unable to bind wl_compositor")
	}
	c.compositor = cmp.(*wlp.Compositor)

	shm, err := c.ctx.BindGlobal("wl_shm", c)
	if err != nil {
		return errors.Wrap(err, "unable to bind wl_shm")
	}
	c.shm = shm.(*wlp.Shm)

	wmBase, err := c.ctx.BindGlobal("xdg_wm_base", c)
	if err != nil {
		return errors.Wrap(err, "unable to bind xdg_wm_base")
	}
	c.wmBase = wmBase.(*wlp.XdgWmBase)

	for i := 0; i < c.ctx.NumGlobals("wl_output"); i++ {
		out := &Output{}
		obj, err := c.ctx.BindGlobalIndex("wl_output", out, i)
		if err != nil {
			return errors.Wrap(err, "unable to bind wl_output")
		}
		out.output = obj.(*wlp.Output)
		c.outputs = append(c.outputs, out)
	}

	if c.ctx.NumGlobals("wl_seat") > 0 {
		seat, err := c.ctx.BindGlobal("wl_seat", c)
		if err != nil {
			return errors.Wrap(err, "unable to bind wl_seat")
		}
		c.seat = seat.(*wlp.Seat)
	}

	if c.ctx.NumGlobals("zxdg_decoration_manager_v1") > 0 {
		mgr, err := c.ctx.BindGlobal("zxdg_decoration_manager_v1", c)
		if err != nil {
			return errors.Wrap(err, "unable to bind zxdg_decoration_manager_v1")
		}
		c.decorationManager = mgr.(*wlp.ZxdgDecorationManagerV1)
	}

	if c.ctx.NumGlobals("wp_fractional_scale_manager_v1") > 0 {
		mgr, err := c.ctx.BindGlobal("wp_fractional_scale_manager_v1", c)
		if err != nil {
			return errors.Wrap(err, "unable to bind wp_fractional_scale_manager_v1")
		}
		c.fractionalManager = mgr.(*wlp.WpFractionalScaleManagerV1)
	}

	if c.ctx.NumGlobals("wp_viewporter") > 0 {
		vp, err := c.ctx.BindGlobal("wp_viewporter", c)
		if err != nil {
			return errors.Wrap(err, "unable to bind wp_viewporter")
		}
		c.viewporter = vp.(*wlp.WpViewporter)
	}

	if c.ctx.NumGlobals("org_kde_kwin_blur_manager") > 0 {
		mgr, err := c.ctx.BindGlobal("org_kde_kwin_blur_manager", c)
		if err != nil {
			return errors.Wrap(err, "unable to bind org_kde_kwin_blur_manager")
		}
		c.blurManager = mgr.(*wlp.OrgKdeKwinBlurManager)
	}

	if c.ctx.NumGlobals("zwlr_layer_shell_v1") > 0 {
		shell, err := c.ctx.BindGlobal("zwlr_layer_shell_v1", c)
		if err != nil {
			return errors.Wrap(err, "unable to bind zwlr_layer_shell_v1")
		}
		c.layerShell = shell.(*wlp.ZwlrLayerShellV1)
	}

	if c.ctx.NumGlobals("xdg_activation_v1") > 0 {
		act, err := c.ctx.BindGlobal("xdg_activation_v1", c)
		if err != nil {
			return errors.Wrap(err, "unable to bind xdg_activation_v1")
		}
		c.activation = act.(*wlp.XdgActivationV1)
	}

	return nil
}

// Roundtrip blocks until the server has processed every request sent so far.
// The read loop wakes all pending callbacks when the connection fails, so
// this also returns promptly on a dead connection.
func (c *Client) Roundtrip() error {
	cbl := newCallbackListener()
	if _, err := c.ctx.Display.Sync(cbl); err != nil {
		return errors.Wrap(err, "unable to create display sync")
	}
	cbl.wait()
	return c.ctx.Err
}

// Dispatch blocks until the connection fails or ctx is canceled. Protocol
// events are handled on the connection's read goroutine as they arrive;
// Dispatch only supervises the connection.
func (c *Client) Dispatch(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return errors.Wrap(c.ctx.Err, "wayland connection closed")
	}
}

// ScheduleTask queues fn to run on the event goroutine after the current
// dispatch completes. Used for work that must not run inside a protocol
// handler.
func (c *Client) ScheduleTask(fn func()) {
	c.tasks.Push(fn)
}

func (c *Client) runTasks() {
	c.tasks.Drain(func(fn func()) { fn() })
}

// UpdateSerial records the serial of the latest event of the given kind.
// Input integrations call this so interactive requests can present a serial
// the compositor will honor.
func (c *Client) UpdateSerial(kind SerialKind, serial uint32) {
	c.mu.Lock()
	c.serials[kind] = serial
	c.mu.Unlock()
}

// Serial returns the latest serial of the given kind, falling back to the
// latest enter serial when none of that kind has been seen.
func (c *Client) Serial(kind SerialKind) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.serials[kind]; s != 0 {
		return s
	}
	return c.serials[SerialEnter]
}

// Outputs returns a snapshot of the bound outputs.
func (c *Client) Outputs() []*Output {
	c.mu.Lock()
	defer c.mu.Unlock()
	outs := make([]*Output, len(c.outputs))
	copy(outs, c.outputs)
	return outs
}

// Windows returns a snapshot of the open windows.
func (c *Client) Windows() []*Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	windows := make([]*Window, 0, len(c.windows))
	for _, w := range c.windows {
		windows = append(windows, w)
	}
	return windows
}

// findOutput resolves a wl_output object ID to its bound Output.
func (c *Client) findOutput(id uint32) *Output {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, out := range c.outputs {
		if out.ID() == id {
			return out
		}
	}
	return nil
}

func (c *Client) dropWindow(id uint32) {
	c.mu.Lock()
	delete(c.windows, id)
	c.mu.Unlock()
}

// SetIMEPositionHandler registers the hook that receives caret rectangles
// from Window.UpdateIMEPosition. Text-input integrations feed these to the
// compositor's input method.
func (c *Client) SetIMEPositionHandler(fn func(geom.Bounds)) {
	c.mu.Lock()
	c.imePosition = fn
	c.mu.Unlock()
}

func (c *Client) reportIMEPosition(area geom.Bounds) {
	c.mu.Lock()
	fn := c.imePosition
	c.mu.Unlock()
	if fn != nil {
		fn(area)
	}
}

// Ping implements wlp.XdgWmBaseListener. An unanswered ping gets the client
// killed, so it is answered here and never surfaced.
func (c *Client) Ping(serial uint32) {
	if err := c.wmBase.Pong(serial); err != nil {
		logrus.WithField("error", err).Warnln("wl: unable to answer ping")
	}
}

// Format implements wlp.ShmListener.
func (c *Client) Format(format uint32) {
	logrus.WithField("format", format).Debugln("wl: shm format advertised")
}

// Capabilities implements wlp.SeatListener.
func (c *Client) Capabilities(capabilities uint32) {
	c.mu.Lock()
	c.seatCaps = capabilities
	c.mu.Unlock()
}

// Name implements wlp.SeatListener.
func (c *Client) Name(name string) {
	c.mu.Lock()
	c.seatName = name
	c.mu.Unlock()
}

// CreateWindow creates a surface with either a toplevel or a layer-shell
// role, wires up its protocol listeners and renderer, and commits once so
// the compositor starts the configure handshake. The window is not shown
// until that first configure is acknowledged and a frame drawn.
func (c *Client) CreateWindow(params WindowParams) (*Window, error) {
	w := &Window{
		c:              c,
		bounds:         params.Bounds,
		windowBounds:   params.Bounds,
		scale:          1,
		windowControls: defaultWindowControls(),
		outputs:        make(map[uint32]*Output),
		title:          params.Title,
		appID:          params.AppID,
	}

	surface, err := c.compositor.CreateSurface(w)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create surface")
	}
	w.surface = surface

	fail := func(err error) (*Window, error) {
		if w.renderer != nil {
			w.renderer.Destroy()
		}
		if w.viewport != nil {
			logDestroy("viewport", w.viewport.Destroy())
		}
		if w.fractional != nil {
			logDestroy("fractional scale", w.fractional.Destroy())
		}
		w.variant.teardown()
		logDestroy("surface", surface.Destroy())
		return nil, err
	}

	if params.LayerShell != nil {
		if c.layerShell == nil {
			return fail(errors.Wrap(ErrNotSupported, "compositor lacks zwlr_layer_shell_v1"))
		}
		opts := params.LayerShell
		layer, err := c.layerShell.GetLayerSurface(&layerCb{w: w}, surface.ID(), 0, opts.Layer, opts.Namespace)
		if err != nil {
			return fail(errors.Wrap(err, "unable to create layer surface"))
		}
		w.variant = layerVariant(layer)
		err = layer.SetSize(uint32(params.Bounds.Size.Width), uint32(params.Bounds.Size.Height))
		if err != nil {
			return fail(errors.Wrap(err, "unable to size layer surface"))
		}
		if err := layer.SetAnchor(opts.Anchor); err != nil {
			return fail(errors.Wrap(err, "unable to anchor layer surface"))
		}
		if err := layer.SetExclusiveZone(opts.ExclusiveZone); err != nil {
			return fail(errors.Wrap(err, "unable to set exclusive zone"))
		}
		m := opts.Margin
		if err := layer.SetMargin(m.Top, m.Right, m.Bottom, m.Left); err != nil {
			return fail(errors.Wrap(err, "unable to set layer margin"))
		}
		if err := layer.SetKeyboardInteractivity(opts.KeyboardInteractivity); err != nil {
			return fail(errors.Wrap(err, "unable to set keyboard interactivity"))
		}
	} else {
		xdg, err := c.wmBase.GetXdgSurface(&xdgSurfaceCb{w: w}, surface.ID())
		if err != nil {
			return fail(errors.Wrap(err, "unable to create xdg surface"))
		}
		w.variant = normalVariant(xdg, nil, nil)
		toplevel, err := xdg.GetToplevel(&toplevelCb{w: w})
		if err != nil {
			return fail(errors.Wrap(err, "unable to create xdg toplevel"))
		}
		w.variant = normalVariant(xdg, toplevel, nil)
		if params.Title != "" {
			if err := toplevel.SetTitle(params.Title); err != nil {
				return fail(errors.Wrap(err, "unable to set title"))
			}
		}
		if params.AppID != "" {
			if err := toplevel.SetAppID(params.AppID); err != nil {
				return fail(errors.Wrap(err, "unable to set app id"))
			}
		}
		if c.decorationManager != nil {
			deco, err := c.decorationManager.GetToplevelDecoration(&decorationCb{w: w}, toplevel.ID())
			if err != nil {
				return fail(errors.Wrap(err, "unable to create toplevel decoration"))
			}
			w.variant = normalVariant(xdg, toplevel, deco)
			// Ask for a compositor frame; decorations stay client-side
			// until the compositor confirms the switch.
			if err := deco.SetMode(wlp.ZxdgToplevelDecorationV1ModeServerSide); err != nil {
				return fail(errors.Wrap(err, "unable to request decoration mode"))
			}
		}
	}

	if c.fractionalManager != nil {
		fractional, err := c.fractionalManager.GetFractionalScale(&fractionalCb{w: w}, surface.ID())
		if err != nil {
			return fail(errors.Wrap(err, "unable to create fractional scale"))
		}
		w.fractional = fractional
	}
	if c.viewporter != nil {
		viewport, err := c.viewporter.GetViewport(struct{}{}, surface.ID())
		if err != nil {
			return fail(errors.Wrap(err, "unable to create viewport"))
		}
		w.viewport = viewport
	}

	renderer, err := render.NewSoftware(c.shm, surface, params.Bounds.Size.ScaleBy(1), render.Config{
		Transparent: w.isTransparent(),
	})
	if err != nil {
		return fail(errors.Wrap(err, "unable to create renderer"))
	}
	w.renderer = renderer

	if err := surface.Commit(); err != nil {
		return fail(errors.Wrap(err, "unable to commit new surface"))
	}

	c.mu.Lock()
	c.windows[surface.ID()] = w
	c.mu.Unlock()
	return w, nil
}

// CreatePopup is not supported. Popups need a parent surface and an
// xdg_positioner policy, and nothing here drives those yet.
func (c *Client) CreatePopup() (*Window, error) {
	return nil, errors.Wrap(ErrNotSupported, "popup windows")
}

// Close tears down every window and then the connection. Pending deferred
// tasks run before the socket closes so Close notifications are delivered.
func (c *Client) Close() {
	for _, w := range c.Windows() {
		w.Close()
	}
	c.runTasks()
	if err := c.ctx.Close(); err != nil {
		logrus.WithField("error", err).Debugln("wl: unable to close connection")
	}
}
