package wlp

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	ZwlrLayerShellV1LayerBackground = 0
	ZwlrLayerShellV1LayerBottom     = 1
	ZwlrLayerShellV1LayerTop        = 2
	ZwlrLayerShellV1LayerOverlay    = 3
)

const (
	ZwlrLayerShellV1ErrorRole               = 0 // wl_surface has another role
	ZwlrLayerShellV1ErrorInvalidLayer       = 1 // layer value is invalid
	ZwlrLayerShellV1ErrorAlreadyConstructed = 2 // wl_surface has a buffer attached or committed
)

const (
	opCodeZwlrLayerShellV1GetLayerSurface = 0
	opCodeZwlrLayerShellV1Destroy         = 1
)

// ZwlrLayerShellV1Listener is empty; zwlr_layer_shell_v1 has no events.
type ZwlrLayerShellV1Listener interface {
}

// Clients can use this interface to assign the surface_layer role to
// wl_surfaces. Such surfaces are assigned to a "layer" of the output and
// rendered with a defined z-depth respective to each other. They may also be
// anchored to the edges and corners of a screen and specify input handling
// semantics. This interface should be suitable for the implementation of
// many desktop shell components, and a broad number of other applications
// that interact with the desktop.
type ZwlrLayerShellV1 struct {
	i uint32
	l ZwlrLayerShellV1Listener
	c *Context
}

func newZwlrLayerShellV1(c *Context) Object {
	o := &ZwlrLayerShellV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("zwlr_layer_shell_v1", 4, newZwlrLayerShellV1)
}

// ID returns the wayland object identifier
func (this *ZwlrLayerShellV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *ZwlrLayerShellV1) Type() string {
	return "zwlr_layer_shell_v1"
}

func (this *ZwlrLayerShellV1) setListener(listener interface{}) error {
	l, ok := listener.(ZwlrLayerShellV1Listener)
	if !ok {
		return errors.Errorf("listener must implement ZwlrLayerShellV1Listener")
	}
	this.l = l
	return nil
}

func (this *ZwlrLayerShellV1) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Create a layer surface for an existing surface. This assigns the role of
// layer_surface, or raises a protocol error if another role is already
// assigned. An output value of 0 means the compositor will pick the output
// itself.
//
// Clients can specify a namespace that defines the purpose of the layer
// surface, such as "panel" or "lockscreen".
func (this *ZwlrLayerShellV1) GetLayerSurface(l ZwlrLayerSurfaceV1Listener, surface uint32, output uint32, layer uint32, namespace string) (*ZwlrLayerSurfaceV1, error) {
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
	ret := newZwlrLayerSurfaceV1(this.c).(*ZwlrLayerSurfaceV1)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, surface)
	binary.Write(this.c.buf, hostByteOrder, output)
	binary.Write(this.c.buf, hostByteOrder, layer)
	binary.Write(this.c.buf, hostByteOrder, uint32(len(namespace)+1))
	this.c.buf.WriteString(namespace)
	this.c.buf.WriteByte(0)
	if (len(namespace)+1)%4 != 0 {
		this.c.buf.Write(make([]byte, 4-(len(namespace)+1)%4))
	}
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerShellV1GetLayerSurface)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending ZwlrLayerShellV1.GetLayerSurface failed")
	}
	return ret, nil
}

// This request indicates that the client will not use the layer_shell
// object any more. Objects that have been created through this instance are
// not affected.
func (this *ZwlrLayerShellV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerShellV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerShellV1.Destroy failed")
	}
	return nil
}

const (
	ZwlrLayerSurfaceV1KeyboardInteractivityNone      = 0
	ZwlrLayerSurfaceV1KeyboardInteractivityExclusive = 1
	ZwlrLayerSurfaceV1KeyboardInteractivityOnDemand  = 2
)

const (
	ZwlrLayerSurfaceV1AnchorTop    = 1 // the top edge of the anchor rectangle
	ZwlrLayerSurfaceV1AnchorBottom = 2 // the bottom edge of the anchor rectangle
	ZwlrLayerSurfaceV1AnchorLeft   = 4 // the left edge of the anchor rectangle
	ZwlrLayerSurfaceV1AnchorRight  = 8 // the right edge of the anchor rectangle
)

const (
	ZwlrLayerSurfaceV1ErrorInvalidSurfaceState     = 0 // provided surface state is invalid
	ZwlrLayerSurfaceV1ErrorInvalidSize             = 1 // size is invalid
	ZwlrLayerSurfaceV1ErrorInvalidAnchor           = 2 // anchor bitfield is invalid
	ZwlrLayerSurfaceV1ErrorInvalidKeyboardInteract = 3 // keyboard interactivity is invalid
)

const (
	opCodeZwlrLayerSurfaceV1Configure = 0
	opCodeZwlrLayerSurfaceV1Closed    = 1
)

const (
	opCodeZwlrLayerSurfaceV1SetSize                  = 0
	opCodeZwlrLayerSurfaceV1SetAnchor                = 1
	opCodeZwlrLayerSurfaceV1SetExclusiveZone         = 2
	opCodeZwlrLayerSurfaceV1SetMargin                = 3
	opCodeZwlrLayerSurfaceV1SetKeyboardInteractivity = 4
	opCodeZwlrLayerSurfaceV1GetPopup                 = 5
	opCodeZwlrLayerSurfaceV1AckConfigure             = 6
	opCodeZwlrLayerSurfaceV1Destroy                  = 7
	opCodeZwlrLayerSurfaceV1SetLayer                 = 8
)

// ZwlrLayerSurfaceV1Listener is the event interface for zwlr_layer_surface_v1.
type ZwlrLayerSurfaceV1Listener interface {
	Configure(serial uint32, width uint32, height uint32)
	Closed()
}

// An interface that may be implemented by a wl_surface, for surfaces that
// are designed to be rendered as a layer of a stacked desktop-like
// environment.
//
// Layer surface state (layer, size, anchor, exclusive zone, margin,
// interactivity) is double-buffered, and will be applied at the time
// wl_surface.commit of the corresponding wl_surface is called.
type ZwlrLayerSurfaceV1 struct {
	i uint32
	l ZwlrLayerSurfaceV1Listener
	c *Context
}

func newZwlrLayerSurfaceV1(c *Context) Object {
	o := &ZwlrLayerSurfaceV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("zwlr_layer_surface_v1", 4, newZwlrLayerSurfaceV1)
}

// ID returns the wayland object identifier
func (this *ZwlrLayerSurfaceV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *ZwlrLayerSurfaceV1) Type() string {
	return "zwlr_layer_surface_v1"
}

func (this *ZwlrLayerSurfaceV1) setListener(listener interface{}) error {
	l, ok := listener.(ZwlrLayerSurfaceV1Listener)
	if !ok {
		return errors.Errorf("listener must implement ZwlrLayerSurfaceV1Listener")
	}
	this.l = l
	return nil
}

func (this *ZwlrLayerSurfaceV1) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeZwlrLayerSurfaceV1Configure:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Configure event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			serial := hostByteOrder.Uint32(buf.Next(4))
			width := hostByteOrder.Uint32(buf.Next(4))
			height := hostByteOrder.Uint32(buf.Next(4))
			this.l.Configure(serial, width, height)
		}
	case opCodeZwlrLayerSurfaceV1Closed:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Closed event, no listener")
		} else {
			this.l.Closed()
		}
	}
}

// Sets the size of the surface in surface-local coordinates. The compositor
// will display the surface centered with respect to its anchors. If you pass
// 0 for either value, the compositor will assign it and inform you of the
// assignment in the configure event.
func (this *ZwlrLayerSurfaceV1) SetSize(width uint32, height uint32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1SetSize)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.SetSize failed")
	}
	return nil
}

// Requests that the compositor anchor the surface to the specified edges
// and corners. If two orthogonal edges are specified (e.g. 'top' and
// 'left'), then the anchor point will be the intersection of the edges
// (e.g. the top left corner of the output); otherwise the anchor point will
// be centered on that edge, or in the center if none is specified.
func (this *ZwlrLayerSurfaceV1) SetAnchor(anchor uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, anchor)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1SetAnchor)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.SetAnchor failed")
	}
	return nil
}

// Requests that the compositor avoids occluding an area with other
// surfaces. A positive value is only meaningful if the surface is anchored
// to one edge or an edge and both perpendicular edges. A value of zero
// requests no exclusive zone; a value of -1 asks the surface to be placed
// ignoring other exclusive zones.
func (this *ZwlrLayerSurfaceV1) SetExclusiveZone(zone int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, zone)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1SetExclusiveZone)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.SetExclusiveZone failed")
	}
	return nil
}

// Requests that the surface be placed some distance away from the anchor
// point on the output, in surface-local coordinates. Setting this value for
// edges you are not anchored to has no effect.
func (this *ZwlrLayerSurfaceV1) SetMargin(top int32, right int32, bottom int32, left int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, top)
	binary.Write(this.c.buf, hostByteOrder, right)
	binary.Write(this.c.buf, hostByteOrder, bottom)
	binary.Write(this.c.buf, hostByteOrder, left)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1SetMargin)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.SetMargin failed")
	}
	return nil
}

// Set how keyboard events are delivered to this surface. Layer surfaces
// receive pointer, touch, and tablet events normally. If you do not want to
// receive them, set the input region on your surface to an empty region.
func (this *ZwlrLayerSurfaceV1) SetKeyboardInteractivity(keyboardInteractivity uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, keyboardInteractivity)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1SetKeyboardInteractivity)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.SetKeyboardInteractivity failed")
	}
	return nil
}

// This assigns an xdg_popup's parent to this layer_surface. This popup
// should have a 0 parent, and this request must be invoked before committing
// the popup's initial state.
func (this *ZwlrLayerSurfaceV1) GetPopup(popup uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, popup)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1GetPopup)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.GetPopup failed")
	}
	return nil
}

// When a configure event is received, if a client commits the surface in
// response to the configure event, then the client must make an
// ack_configure request sometime before the commit request, passing along
// the serial of the configure event.
func (this *ZwlrLayerSurfaceV1) AckConfigure(serial uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, serial)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1AckConfigure)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.AckConfigure failed")
	}
	return nil
}

// This request destroys the layer surface.
func (this *ZwlrLayerSurfaceV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.Destroy failed")
	}
	return nil
}

// Change the layer that the surface is rendered on. Layer is double-
// buffered, see wl_surface.commit.
func (this *ZwlrLayerSurfaceV1) SetLayer(layer uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, layer)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZwlrLayerSurfaceV1SetLayer)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZwlrLayerSurfaceV1.SetLayer failed")
	}
	return nil
}
