package wl

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/wuliuqii/waywin/geom"
	"github.com/wuliuqii/waywin/wl/wlp"
)

// testVersions mirrors what a live compositor would advertise for the
// interfaces the tests bind.
var testVersions = map[string]uint32{
	"wl_compositor":                  6,
	"wl_shm":                         1,
	"wl_output":                      4,
	"wl_seat":                        5,
	"xdg_wm_base":                    6,
	"zxdg_decoration_manager_v1":     1,
	"wp_fractional_scale_manager_v1": 1,
	"wp_viewporter":                  1,
	"org_kde_kwin_blur_manager":      1,
	"zwlr_layer_shell_v1":            4,
	"xdg_activation_v1":              1,
}

// fdConn wraps a raw socket fd as a UnixConn and ties its lifetime to the
// test.
func fdConn(t *testing.T, fd int) *net.UnixConn {
	t.Helper()
	f := os.NewFile(uintptr(fd), "test-wayland")
	defer f.Close()
	conn, err := net.FileConn(f)
	if err != nil {
		t.Fatalf("unable to wrap socket: %v", err)
	}
	uc := conn.(*net.UnixConn)
	t.Cleanup(func() { uc.Close() })
	return uc
}

// newRawClient builds a client over a socketpair with no globals bound. The
// far end stays open but silent: requests are swallowed by the socket buffer
// and no events ever arrive, so tests drive protocol handlers directly.
func newRawClient(t *testing.T) (*Client, *net.UnixConn) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("socketpair failed: %v", err)
	}
	local := fdConn(t, fds[0])
	remote := fdConn(t, fds[1])

	c := newClient(wlp.NewContext(local))
	c.ctx.Start()
	return c, remote
}

// newTestClient advertises the given globals and binds them.
func newTestClient(t *testing.T, globals ...string) *Client {
	t.Helper()
	c, _ := newRawClient(t)
	for i, iface := range globals {
		version, known := testVersions[iface]
		if !known {
			t.Fatalf("no version listed for %s", iface)
		}
		c.ctx.Global(uint32(i+1), iface, version)
	}
	if err := c.bindGlobals(); err != nil {
		t.Fatalf("bindGlobals failed: %v", err)
	}
	return c
}

// baseGlobals is the minimum a toplevel window needs, plus any extras.
func baseGlobals(extras ...string) []string {
	return append([]string{"wl_compositor", "wl_shm", "xdg_wm_base", "wl_seat"}, extras...)
}

func testWindow(t *testing.T, c *Client) *Window {
	t.Helper()
	w, err := c.CreateWindow(WindowParams{
		Bounds: geom.BoundsOf(0, 0, 800, 600),
		Title:  "main",
		AppID:  "dev.waywin.test",
	})
	if err != nil {
		t.Fatalf("CreateWindow failed: %v", err)
	}
	t.Cleanup(func() {
		w.Close()
		c.runTasks()
	})
	return w
}

func TestConnectRequiresRuntimeDir(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("XDG_RUNTIME_DIR", "")
	_, err := Connect("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "XDG_RUNTIME_DIR")
}

func TestConnectBadSocket(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	_, err := Connect("nonexistent-0")
	assert.Error(t, err)
}

func TestBindGlobalsMissingRequired(t *testing.T) {
	c, _ := newRawClient(t)
	c.ctx.Global(1, "wl_compositor", 6)
	c.ctx.Global(2, "wl_shm", 1)
	err := c.bindGlobals()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "xdg_wm_base")
}

func TestBindGlobalsOptional(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	assert.NotNil(t, c.compositor)
	assert.NotNil(t, c.shm)
	assert.NotNil(t, c.wmBase)
	assert.NotNil(t, c.seat)
	assert.Nil(t, c.decorationManager)
	assert.Nil(t, c.fractionalManager)
	assert.Nil(t, c.viewporter)
	assert.Nil(t, c.blurManager)
	assert.Nil(t, c.layerShell)
	assert.Nil(t, c.activation)

	c = newTestClient(t, baseGlobals(
		"zxdg_decoration_manager_v1",
		"wp_fractional_scale_manager_v1",
		"wp_viewporter",
		"org_kde_kwin_blur_manager",
		"zwlr_layer_shell_v1",
		"xdg_activation_v1",
	)...)
	assert.NotNil(t, c.decorationManager)
	assert.NotNil(t, c.fractionalManager)
	assert.NotNil(t, c.viewporter)
	assert.NotNil(t, c.blurManager)
	assert.NotNil(t, c.layerShell)
	assert.NotNil(t, c.activation)
}

func TestSerialFallback(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	assert.Zero(t, c.Serial(SerialMousePress))

	c.UpdateSerial(SerialEnter, 41)
	assert.Equal(t, uint32(41), c.Serial(SerialMousePress))
	assert.Equal(t, uint32(41), c.Serial(SerialKeyPress))

	c.UpdateSerial(SerialMousePress, 99)
	assert.Equal(t, uint32(99), c.Serial(SerialMousePress))
	assert.Equal(t, uint32(41), c.Serial(SerialKeyPress))
}

func TestScheduleTaskOrder(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	var order []int
	c.ScheduleTask(func() { order = append(order, 1) })
	c.ScheduleTask(func() { order = append(order, 2) })
	c.runTasks()
	assert.Equal(t, []int{1, 2}, order)

	c.runTasks()
	assert.Equal(t, []int{1, 2}, order)
}

func TestRoundtripFailsOnDeadConnection(t *testing.T) {
	c, remote := newRawClient(t)
	remote.Close()
	<-c.ctx.Done()
	assert.Error(t, c.Roundtrip())
}

func TestDispatchEndsWithConnection(t *testing.T) {
	c, remote := newRawClient(t)
	errCh := make(chan error, 1)
	go func() { errCh <- c.Dispatch(context.Background()) }()

	remote.Close()
	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not return after the connection died")
	}
}

func TestDispatchHonorsContext(t *testing.T) {
	c, _ := newRawClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Dispatch(ctx), context.Canceled)
}

func TestCreatePopupUnsupported(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	_, err := c.CreatePopup()
	assert.Error(t, err)
	assert.Equal(t, ErrNotSupported, errors.Cause(err))
}

func TestClientClose(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)
	var closed bool
	w.OnClose(func() { closed = true })

	c.Close()
	assert.True(t, closed)
	assert.Empty(t, c.Windows())
	<-c.ctx.Done()
}
