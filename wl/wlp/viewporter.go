package wlp

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

const (
	WpViewporterErrorViewportExists = 0 // the surface already has a viewport object associated
)

const (
	opCodeWpViewporterDestroy     = 0
	opCodeWpViewporterGetViewport = 1
)

// WpViewporterListener is empty; wp_viewporter has no events.
type WpViewporterListener interface {
}

// The global interface exposing surface cropping and scaling capabilities is
// used to instantiate an interface extension for a wl_surface object. This
// extended interface will then allow cropping and scaling the surface
// contents, effectively disconnecting the direct relationship between the
// buffer and the surface size.
type WpViewporter struct {
	i uint32
	l WpViewporterListener
	c *Context
}

func newWpViewporter(c *Context) Object {
	o := &WpViewporter{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wp_viewporter", 1, newWpViewporter)
}

// ID returns the wayland object identifier
func (this *WpViewporter) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *WpViewporter) Type() string {
	return "wp_viewporter"
}

func (this *WpViewporter) setListener(listener interface{}) error {
	l, ok := listener.(WpViewporterListener)
	if !ok {
		return errors.Errorf("listener must implement WpViewporterListener")
	}
	this.l = l
	return nil
}

func (this *WpViewporter) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Informs the server that the client will not be using this protocol object
// anymore. This does not affect any other objects, wp_viewport objects
// included.
func (this *WpViewporter) Destroy() error {
	if this == nil {
		return errors.New("object is nil")
	}
	if this.c.Err != nil {
		return errors.Wrap(this.c.Err, "global wayland error")
	}
	this.c.mu.Lock()
	defer this.c.mu.Unlock()
	if _, exists := this.c.obj[this.i]; !exists {
		return errors.New("object has been deleted")
	}
	this.c.buf.Reset()
	binary.Write(this.c.buf, hostByteOrder, this.i)
	binary.Write(this.c.buf, hostByteOrder, uint32(0))
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpViewporterDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending WpViewporter.Destroy failed")
	}
	return nil
}

// Instantiate an interface extension for the given wl_surface to crop and
// scale its content. If the given wl_surface already has a wp_viewport
// object associated, the viewport_exists protocol error is raised.
func (this *WpViewporter) GetViewport(l WpViewportListener, surface uint32) (*WpViewport, error) {
	if this == nil {
		return nil, errors.New("object is nil")
	}
	if this.c.Err != nil {
		return nil, errors.Wrap(this.c.Err, "global wayland error")
	}
	this.c.mu.Lock()
	defer this.c.mu.Unlock()
	if _, exists := this.c.obj[this.i]; !exists {
		return nil, errors.New("object has been deleted")
	}
	this.c.buf.Reset()
	binary.Write(this.c.buf, hostByteOrder, this.i)
	binary.Write(this.c.buf, hostByteOrder, uint32(0))
	ret := newWpViewport(this.c).(*WpViewport)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, surface)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpViewporterGetViewport)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending WpViewporter.GetViewport failed")
	}
	return ret, nil
}

const (
	WpViewportErrorBadValue    = 0 // negative or zero values in width or height
	WpViewportErrorBadSize     = 1 // destination size is not integer
	WpViewportErrorOutOfBuffer = 2 // source rectangle extends outside of the content area
	WpViewportErrorNoSurface   = 3 // the wl_surface was destroyed
)

const (
	opCodeWpViewportDestroy        = 0
	opCodeWpViewportSetSource      = 1
	opCodeWpViewportSetDestination = 2
)

// WpViewportListener is empty; wp_viewport has no events.
type WpViewportListener interface {
}

// An additional interface to a wl_surface object, which allows the client to
// specify the cropping and scaling of the surface contents. The source
// rectangle is scaled to the destination size, and the surface size becomes
// the destination size.
type WpViewport struct {
	i uint32
	l WpViewportListener
	c *Context
}

func newWpViewport(c *Context) Object {
	o := &WpViewport{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wp_viewport", 1, newWpViewport)
}

// ID returns the wayland object identifier
func (this *WpViewport) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *WpViewport) Type() string {
	return "wp_viewport"
}

func (this *WpViewport) setListener(listener interface{}) error {
	l, ok := listener.(WpViewportListener)
	if !ok {
		return errors.Errorf("listener must implement WpViewportListener")
	}
	this.l = l
	return nil
}

func (this *WpViewport) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// The associated wl_surface's crop and scale state is removed. The change
// is applied on the next wl_surface.commit.
func (this *WpViewport) Destroy() error {
	if this == nil {
		return errors.New("object is nil")
	}
	if this.c.Err != nil {
		return errors.Wrap(this.c.Err, "global wayland error")
	}
	this.c.mu.Lock()
	defer this.c.mu.Unlock()
	if _, exists := this.c.obj[this.i]; !exists {
		return errors.New("object has been deleted")
	}
	this.c.buf.Reset()
	binary.Write(this.c.buf, hostByteOrder, this.i)
	binary.Write(this.c.buf, hostByteOrder, uint32(0))
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpViewportDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending WpViewport.Destroy failed")
	}
	return nil
}

// Set the source rectangle of the associated wl_surface. The rectangle is
// specified in buffer coordinates. Setting all values to -1.0 unsets the
// source rectangle. The crop and scale state is double-buffered, applied on
// the next wl_surface.commit.
func (this *WpViewport) SetSource(x float64, y float64, width float64, height float64) error {
	if this == nil {
		return errors.New("object is nil")
	}
	if this.c.Err != nil {
		return errors.Wrap(this.c.Err, "global wayland error")
	}
	this.c.mu.Lock()
	defer this.c.mu.Unlock()
	if _, exists := this.c.obj[this.i]; !exists {
		return errors.New("object has been deleted")
	}
	this.c.buf.Reset()
	binary.Write(this.c.buf, hostByteOrder, this.i)
	binary.Write(this.c.buf, hostByteOrder, uint32(0))
	binary.Write(this.c.buf, hostByteOrder, float64ToFixed(x))
	binary.Write(this.c.buf, hostByteOrder, float64ToFixed(y))
	binary.Write(this.c.buf, hostByteOrder, float64ToFixed(width))
	binary.Write(this.c.buf, hostByteOrder, float64ToFixed(height))
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpViewportSetSource)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending WpViewport.SetSource failed")
	}
	return nil
}

// Set the destination size of the associated wl_surface. The surface size
// becomes its size in surface-local coordinates. Setting values -1, -1
// unsets the destination size. The crop and scale state is double-buffered,
// applied on the next wl_surface.commit.
func (this *WpViewport) SetDestination(width int32, height int32) error {
	if this == nil {
		return errors.New("object is nil")
	}
	if this.c.Err != nil {
		return errors.Wrap(this.c.Err, "global wayland error")
	}
	this.c.mu.Lock()
	defer this.c.mu.Unlock()
	if _, exists := this.c.obj[this.i]; !exists {
		return errors.New("object has been deleted")
	}
	this.c.buf.Reset()
	binary.Write(this.c.buf, hostByteOrder, this.i)
	binary.Write(this.c.buf, hostByteOrder, uint32(0))
	binary.Write(this.c.buf, hostByteOrder, width)
	binary.Write(this.c.buf, hostByteOrder, height)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpViewportSetDestination)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending WpViewport.SetDestination failed")
	}
	return nil
}
