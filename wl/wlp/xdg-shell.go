package wlp

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	XdgWmBaseErrorRole                = 0 // given wl_surface has another role
	XdgWmBaseErrorDefunctSurfaces     = 1 // xdg_wm_base was destroyed before children
	XdgWmBaseErrorNotTheTopmostPopup  = 2 // the client tried to map or destroy a non-topmost popup
	XdgWmBaseErrorInvalidPopupParent  = 3 // the client specified an invalid popup parent surface
	XdgWmBaseErrorInvalidSurfaceState = 4 // the client provided an invalid surface state
	XdgWmBaseErrorInvalidPositioner   = 5 // the client provided an invalid positioner
	XdgWmBaseErrorUnresponsive        = 6 // the client didn't respond to a ping event in time
)

const (
	opCodeXdgWmBasePing = 0
)

const (
	opCodeXdgWmBaseDestroy          = 0
	opCodeXdgWmBaseCreatePositioner = 1
	opCodeXdgWmBaseGetXdgSurface    = 2
	opCodeXdgWmBasePong             = 3
)

// XdgWmBaseListener is the event interface for xdg_wm_base.
type XdgWmBaseListener interface {
	Ping(serial uint32)
}

// The xdg_wm_base interface is exposed as a global object enabling clients
// to turn their wl_surfaces into windows in a desktop environment. It
// defines the basic functionality needed for clients and the compositor to
// create windows that can be dragged, resized, maximized, etc, as well as
// creating transient windows such as popup menus.
type XdgWmBase struct {
	i uint32
	l XdgWmBaseListener
	c *Context
}

func newXdgWmBase(c *Context) Object {
	o := &XdgWmBase{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("xdg_wm_base", 6, newXdgWmBase)
}

// ID returns the wayland object identifier
func (this *XdgWmBase) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *XdgWmBase) Type() string {
	return "xdg_wm_base"
}

func (this *XdgWmBase) setListener(listener interface{}) error {
	l, ok := listener.(XdgWmBaseListener)
	if !ok {
		return errors.Errorf("listener must implement XdgWmBaseListener")
	}
	this.l = l
	return nil
}

func (this *XdgWmBase) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeXdgWmBasePing:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Ping event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			serial := hostByteOrder.Uint32(buf.Next(4))
			this.l.Ping(serial)
		}
	}
}

// Destroy this xdg_wm_base object. Destroying a bound xdg_wm_base object
// while there are surfaces still alive created by this xdg_wm_base object
// instance is illegal.
func (this *XdgWmBase) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgWmBaseDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgWmBase.Destroy failed")
	}
	return nil
}

// Create a positioner object. A positioner object is used to position
// surfaces relative to some parent surface.
func (this *XdgWmBase) CreatePositioner(l XdgPositionerListener) (*XdgPositioner, error) {
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
	ret := newXdgPositioner(this.c).(*XdgPositioner)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgWmBaseCreatePositioner)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending XdgWmBase.CreatePositioner failed")
	}
	return ret, nil
}

// This creates an xdg_surface for the given surface. While xdg_surface
// itself is not a role, the corresponding surface may only be assigned a
// role extending xdg_surface, such as xdg_toplevel or xdg_popup.
func (this *XdgWmBase) GetXdgSurface(l XdgSurfaceListener, surface uint32) (*XdgSurface, error) {
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
	ret := newXdgSurface(this.c).(*XdgSurface)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, surface)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgWmBaseGetXdgSurface)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending XdgWmBase.GetXdgSurface failed")
	}
	return ret, nil
}

// A client must respond to a ping event with a pong request or the client
// may be deemed unresponsive.
func (this *XdgWmBase) Pong(serial uint32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgWmBasePong)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgWmBase.Pong failed")
	}
	return nil
}

const (
	XdgPositionerErrorInvalidInput = 0 // invalid input provided
)

const (
	XdgPositionerAnchorNone        = 0
	XdgPositionerAnchorTop         = 1
	XdgPositionerAnchorBottom      = 2
	XdgPositionerAnchorLeft        = 3
	XdgPositionerAnchorRight       = 4
	XdgPositionerAnchorTopLeft     = 5
	XdgPositionerAnchorBottomLeft  = 6
	XdgPositionerAnchorTopRight    = 7
	XdgPositionerAnchorBottomRight = 8
)

const (
	XdgPositionerGravityNone        = 0
	XdgPositionerGravityTop         = 1
	XdgPositionerGravityBottom      = 2
	XdgPositionerGravityLeft        = 3
	XdgPositionerGravityRight       = 4
	XdgPositionerGravityTopLeft     = 5
	XdgPositionerGravityBottomLeft  = 6
	XdgPositionerGravityTopRight    = 7
	XdgPositionerGravityBottomRight = 8
)

const (
	XdgPositionerConstraintAdjustmentNone    = 0
	XdgPositionerConstraintAdjustmentSlideX  = 1
	XdgPositionerConstraintAdjustmentSlideY  = 2
	XdgPositionerConstraintAdjustmentFlipX   = 4
	XdgPositionerConstraintAdjustmentFlipY   = 8
	XdgPositionerConstraintAdjustmentResizeX = 16
	XdgPositionerConstraintAdjustmentResizeY = 32
)

const (
	opCodeXdgPositionerDestroy                 = 0
	opCodeXdgPositionerSetSize                 = 1
	opCodeXdgPositionerSetAnchorRect           = 2
	opCodeXdgPositionerSetAnchor               = 3
	opCodeXdgPositionerSetGravity              = 4
	opCodeXdgPositionerSetConstraintAdjustment = 5
	opCodeXdgPositionerSetOffset               = 6
)

// XdgPositionerListener is empty; xdg_positioner has no events.
type XdgPositionerListener interface {
}

// The xdg_positioner provides a collection of rules for the placement of a
// child surface relative to a parent surface. Rules can be defined to ensure
// the child surface remains within the visible area's borders, and to
// specify how the child surface changes its position, such as sliding along
// an axis, or flipping around a rectangle.
type XdgPositioner struct {
	i uint32
	l XdgPositionerListener
	c *Context
}

func newXdgPositioner(c *Context) Object {
	o := &XdgPositioner{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("xdg_positioner", 6, newXdgPositioner)
}

// ID returns the wayland object identifier
func (this *XdgPositioner) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *XdgPositioner) Type() string {
	return "xdg_positioner"
}

func (this *XdgPositioner) setListener(listener interface{}) error {
	l, ok := listener.(XdgPositionerListener)
	if !ok {
		return errors.Errorf("listener must implement XdgPositionerListener")
	}
	this.l = l
	return nil
}

func (this *XdgPositioner) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Notify the compositor that the xdg_positioner will no longer be used.
func (this *XdgPositioner) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPositionerDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPositioner.Destroy failed")
	}
	return nil
}

// Set the size of the surface that is to be positioned with the positioner
// object. The size is in surface-local coordinates and corresponds to the
// window geometry.
func (this *XdgPositioner) SetSize(width int32, height int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPositionerSetSize)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPositioner.SetSize failed")
	}
	return nil
}

// Specify the anchor rectangle within the parent surface that the child
// surface will be placed relative to.
func (this *XdgPositioner) SetAnchorRect(x int32, y int32, width int32, height int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, x)
	binary.Write(this.c.buf, hostByteOrder, y)
	binary.Write(this.c.buf, hostByteOrder, width)
	binary.Write(this.c.buf, hostByteOrder, height)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPositionerSetAnchorRect)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPositioner.SetAnchorRect failed")
	}
	return nil
}

// Defines the anchor point for the anchor rectangle. The specified anchor
// is used to derive an anchor point that the child surface will be
// positioned relative to.
func (this *XdgPositioner) SetAnchor(anchor uint32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPositionerSetAnchor)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPositioner.SetAnchor failed")
	}
	return nil
}

// Defines in what direction a surface should be positioned, relative to the
// anchor point of the parent surface. If a corner gravity is set, the child
// surface will be placed towards the specified gravity.
func (this *XdgPositioner) SetGravity(gravity uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, gravity)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPositionerSetGravity)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPositioner.SetGravity failed")
	}
	return nil
}

// Specify how the window should be positioned if the originally intended
// position caused the surface to be constrained, meaning at least partially
// outside positioning boundaries set by the compositor.
func (this *XdgPositioner) SetConstraintAdjustment(constraintAdjustment uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, constraintAdjustment)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPositionerSetConstraintAdjustment)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPositioner.SetConstraintAdjustment failed")
	}
	return nil
}

// Specify the surface position offset relative to the position of the anchor
// on the anchor rectangle and the anchor on the surface.
func (this *XdgPositioner) SetOffset(x int32, y int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, x)
	binary.Write(this.c.buf, hostByteOrder, y)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPositionerSetOffset)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPositioner.SetOffset failed")
	}
	return nil
}

const (
	opCodeXdgSurfaceConfigure = 0
)

const (
	opCodeXdgSurfaceDestroy           = 0
	opCodeXdgSurfaceGetToplevel       = 1
	opCodeXdgSurfaceGetPopup          = 2
	opCodeXdgSurfaceSetWindowGeometry = 3
	opCodeXdgSurfaceAckConfigure      = 4
)

// XdgSurfaceListener is the event interface for xdg_surface.
type XdgSurfaceListener interface {
	Configure(serial uint32)
}

// An interface that may be implemented by a wl_surface, for implementations
// that provide a desktop-style user interface. It provides a base set of
// functionality required to construct user interface elements requiring
// management by the compositor, such as toplevel windows, menus, etc. The
// types of functionality are split into xdg_surface roles.
//
// A configure event carries no state by itself: pending state is delivered
// through role-specific events and becomes effective when the configure is
// acknowledged.
type XdgSurface struct {
	i uint32
	l XdgSurfaceListener
	c *Context
}

func newXdgSurface(c *Context) Object {
	o := &XdgSurface{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("xdg_surface", 6, newXdgSurface)
}

// ID returns the wayland object identifier
func (this *XdgSurface) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *XdgSurface) Type() string {
	return "xdg_surface"
}

func (this *XdgSurface) setListener(listener interface{}) error {
	l, ok := listener.(XdgSurfaceListener)
	if !ok {
		return errors.Errorf("listener must implement XdgSurfaceListener")
	}
	this.l = l
	return nil
}

func (this *XdgSurface) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeXdgSurfaceConfigure:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Configure event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			serial := hostByteOrder.Uint32(buf.Next(4))
			this.l.Configure(serial)
		}
	}
}

// Destroy the xdg_surface object. An xdg_surface must only be destroyed
// after its role object has been destroyed.
func (this *XdgSurface) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgSurfaceDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgSurface.Destroy failed")
	}
	return nil
}

// This creates an xdg_toplevel object for the given xdg_surface and gives
// the associated wl_surface the xdg_toplevel role.
func (this *XdgSurface) GetToplevel(l XdgToplevelListener) (*XdgToplevel, error) {
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
	ret := newXdgToplevel(this.c).(*XdgToplevel)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgSurfaceGetToplevel)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending XdgSurface.GetToplevel failed")
	}
	return ret, nil
}

// This creates an xdg_popup object for the given xdg_surface and gives the
// associated wl_surface the xdg_popup role. If parent is 0, it must be
// specified via some other protocol, before committing the initial state.
func (this *XdgSurface) GetPopup(l XdgPopupListener, parent uint32, positioner uint32) (*XdgPopup, error) {
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
	ret := newXdgPopup(this.c).(*XdgPopup)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, parent)
	binary.Write(this.c.buf, hostByteOrder, positioner)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgSurfaceGetPopup)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending XdgSurface.GetPopup failed")
	}
	return ret, nil
}

// The window geometry of a surface is its "visible bounds" from the user's
// perspective; client-side decoration such as drop shadows are excluded from
// this rectangle. When maintained, the window geometry of the toplevel must
// be updated every time it changes.
func (this *XdgSurface) SetWindowGeometry(x int32, y int32, width int32, height int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, x)
	binary.Write(this.c.buf, hostByteOrder, y)
	binary.Write(this.c.buf, hostByteOrder, width)
	binary.Write(this.c.buf, hostByteOrder, height)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgSurfaceSetWindowGeometry)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgSurface.SetWindowGeometry failed")
	}
	return nil
}

// When a configure event is received, if a client commits the surface in
// response to the configure event, then the client must make an
// ack_configure request sometime before the commit request, passing along
// the serial of the configure event.
func (this *XdgSurface) AckConfigure(serial uint32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgSurfaceAckConfigure)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgSurface.AckConfigure failed")
	}
	return nil
}

const (
	XdgToplevelStateMaximized   = 1 // the surface is maximized
	XdgToplevelStateFullscreen  = 2 // the surface is fullscreen
	XdgToplevelStateResizing    = 3 // the surface is being resized
	XdgToplevelStateActivated   = 4 // the surface is now activated
	XdgToplevelStateTiledLeft   = 5 // the surface's left edge is tiled
	XdgToplevelStateTiledRight  = 6 // the surface's right edge is tiled
	XdgToplevelStateTiledTop    = 7 // the surface's top edge is tiled
	XdgToplevelStateTiledBottom = 8 // the surface's bottom edge is tiled
	XdgToplevelStateSuspended   = 9 // the surface is suspended
)

const (
	XdgToplevelResizeEdgeNone        = 0
	XdgToplevelResizeEdgeTop         = 1
	XdgToplevelResizeEdgeBottom      = 2
	XdgToplevelResizeEdgeLeft        = 4
	XdgToplevelResizeEdgeTopLeft     = 5
	XdgToplevelResizeEdgeBottomLeft  = 6
	XdgToplevelResizeEdgeRight       = 8
	XdgToplevelResizeEdgeTopRight    = 9
	XdgToplevelResizeEdgeBottomRight = 10
)

const (
	XdgToplevelWmCapabilitiesWindowMenu = 1 // show_window_menu is available
	XdgToplevelWmCapabilitiesMaximize   = 2 // set_maximized and unset_maximized are available
	XdgToplevelWmCapabilitiesFullscreen = 3 // set_fullscreen and unset_fullscreen are available
	XdgToplevelWmCapabilitiesMinimize   = 4 // set_minimized is available
)

const (
	opCodeXdgToplevelConfigure       = 0
	opCodeXdgToplevelClose           = 1
	opCodeXdgToplevelConfigureBounds = 2
	opCodeXdgToplevelWmCapabilities  = 3
)

const (
	opCodeXdgToplevelDestroy         = 0
	opCodeXdgToplevelSetParent       = 1
	opCodeXdgToplevelSetTitle        = 2
	opCodeXdgToplevelSetAppID        = 3
	opCodeXdgToplevelShowWindowMenu  = 4
	opCodeXdgToplevelMove            = 5
	opCodeXdgToplevelResize          = 6
	opCodeXdgToplevelSetMaxSize      = 7
	opCodeXdgToplevelSetMinSize      = 8
	opCodeXdgToplevelSetMaximized    = 9
	opCodeXdgToplevelUnsetMaximized  = 10
	opCodeXdgToplevelSetFullscreen   = 11
	opCodeXdgToplevelUnsetFullscreen = 12
	opCodeXdgToplevelSetMinimized    = 13
)

// XdgToplevelListener is the event interface for xdg_toplevel.
type XdgToplevelListener interface {
	Configure(width int32, height int32, states []byte)
	Close()
	ConfigureBounds(width int32, height int32)
	WmCapabilities(capabilities []byte)
}

// This interface defines an xdg_surface role which allows a surface to,
// among other things, set window-like properties such as maximize,
// fullscreen, and minimize, set application-specific metadata like title and
// id, and well as trigger user interactive operations such as interactive
// resize and move.
//
// A configure event carries suggestions; none of them take effect until the
// paired xdg_surface.configure is acknowledged.
type XdgToplevel struct {
	i uint32
	l XdgToplevelListener
	c *Context
}

func newXdgToplevel(c *Context) Object {
	o := &XdgToplevel{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("xdg_toplevel", 6, newXdgToplevel)
}

// ID returns the wayland object identifier
func (this *XdgToplevel) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *XdgToplevel) Type() string {
	return "xdg_toplevel"
}

func (this *XdgToplevel) setListener(listener interface{}) error {
	l, ok := listener.(XdgToplevelListener)
	if !ok {
		return errors.Errorf("listener must implement XdgToplevelListener")
	}
	this.l = l
	return nil
}

func (this *XdgToplevel) dispatch(opCode uint16, payload []byte, file *os.File) {
	var len int
	_ = len
	switch opCode {
	case opCodeXdgToplevelConfigure:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Configure event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			width := int32(hostByteOrder.Uint32(buf.Next(4)))
			height := int32(hostByteOrder.Uint32(buf.Next(4)))
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			states := make([]byte, len)
			buf.Read(states)
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			this.l.Configure(width, height, states)
		}
	case opCodeXdgToplevelClose:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Close event, no listener")
		} else {
			this.l.Close()
		}
	case opCodeXdgToplevelConfigureBounds:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring ConfigureBounds event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			width := int32(hostByteOrder.Uint32(buf.Next(4)))
			height := int32(hostByteOrder.Uint32(buf.Next(4)))
			this.l.ConfigureBounds(width, height)
		}
	case opCodeXdgToplevelWmCapabilities:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring WmCapabilities event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			capabilities := make([]byte, len)
			buf.Read(capabilities)
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			this.l.WmCapabilities(capabilities)
		}
	}
}

// This request destroys the role surface and unmaps the surface.
func (this *XdgToplevel) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.Destroy failed")
	}
	return nil
}

// Set the "parent" of this surface. This surface should be stacked above
// the parent surface and all other ancestor surfaces. The parent may be 0.
func (this *XdgToplevel) SetParent(parent uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, parent)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetParent)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetParent failed")
	}
	return nil
}

// Set a short title for the surface. The title should describe the window
// contents to the user: for example, it might be the document name with the
// application name appended.
func (this *XdgToplevel) SetTitle(title string) error {
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
	binary.Write(this.c.buf, hostByteOrder, uint32(len(title)+1))
	this.c.buf.WriteString(title)
	this.c.buf.WriteByte(0)
	if (len(title)+1)%4 != 0 {
		this.c.buf.Write(make([]byte, 4-(len(title)+1)%4))
	}
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetTitle)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetTitle failed")
	}
	return nil
}

// Set an application identifier for the surface. The app ID identifies the
// general class of applications to which the surface belongs, for example
// the file name of the application's .desktop file.
func (this *XdgToplevel) SetAppID(appID string) error {
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
	binary.Write(this.c.buf, hostByteOrder, uint32(len(appID)+1))
	this.c.buf.WriteString(appID)
	this.c.buf.WriteByte(0)
	if (len(appID)+1)%4 != 0 {
		this.c.buf.Write(make([]byte, 4-(len(appID)+1)%4))
	}
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetAppID)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetAppID failed")
	}
	return nil
}

// Clients implementing client-side decorations might want to show a context
// menu when right-clicking on the decorations, giving the user a menu that
// they can use to maximize or minimize the window. This request asks the
// compositor to pop up such a window menu at the given position.
func (this *XdgToplevel) ShowWindowMenu(seat uint32, serial uint32, x int32, y int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, seat)
	binary.Write(this.c.buf, hostByteOrder, serial)
	binary.Write(this.c.buf, hostByteOrder, x)
	binary.Write(this.c.buf, hostByteOrder, y)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelShowWindowMenu)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.ShowWindowMenu failed")
	}
	return nil
}

// Start an interactive, user-driven move of the surface. This request must
// be used in response to some sort of user action like a button press, key
// press, or touch down event, passing the serial of that event.
func (this *XdgToplevel) Move(seat uint32, serial uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, seat)
	binary.Write(this.c.buf, hostByteOrder, serial)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelMove)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.Move failed")
	}
	return nil
}

// Start a user-driven, interactive resize of the surface. This request must
// be used in response to some sort of user action like a button press,
// passing the serial of that event. The edges parameter specifies which part
// of the surface the resize was started from.
func (this *XdgToplevel) Resize(seat uint32, serial uint32, edges uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, seat)
	binary.Write(this.c.buf, hostByteOrder, serial)
	binary.Write(this.c.buf, hostByteOrder, edges)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelResize)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.Resize failed")
	}
	return nil
}

// Set a maximum size for the window. The client can specify a maximum size
// so that the compositor does not try to configure the window beyond this
// size.
func (this *XdgToplevel) SetMaxSize(width int32, height int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetMaxSize)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetMaxSize failed")
	}
	return nil
}

// Set a minimum size for the window. The client can specify a minimum size
// so that the compositor does not try to configure the window below this
// size.
func (this *XdgToplevel) SetMinSize(width int32, height int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetMinSize)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetMinSize failed")
	}
	return nil
}

// Maximize the surface. After requesting that the surface should be
// maximized, the compositor will respond by emitting a configure event.
func (this *XdgToplevel) SetMaximized() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetMaximized)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetMaximized failed")
	}
	return nil
}

// Unmaximize the surface. If the surface was previously maximized, the
// compositor will still emit a configure event with the "suggested" size of
// the window before the maximize request.
func (this *XdgToplevel) UnsetMaximized() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelUnsetMaximized)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.UnsetMaximized failed")
	}
	return nil
}

// Make the surface fullscreen. After requesting that the surface should be
// fullscreened, the compositor will respond by emitting a configure event.
// If the surface doesn't cover the whole output, the compositor will
// position the surface in the center of the output. An output value of 0
// lets the compositor choose the output.
func (this *XdgToplevel) SetFullscreen(output uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, output)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetFullscreen)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetFullscreen failed")
	}
	return nil
}

// Make the surface no longer fullscreen. Making a surface unfullscreen sets
// states for the surface based on the following: the state(s) it may have
// had before becoming fullscreen, and any state(s) decided by the
// compositor.
func (this *XdgToplevel) UnsetFullscreen() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelUnsetFullscreen)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.UnsetFullscreen failed")
	}
	return nil
}

// Request that the compositor minimize (iconify) the surface. There is no
// way to know if the surface is currently minimized, nor is there any way to
// unset minimization on this surface.
func (this *XdgToplevel) SetMinimized() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgToplevelSetMinimized)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgToplevel.SetMinimized failed")
	}
	return nil
}

const (
	opCodeXdgPopupConfigure = 0
	opCodeXdgPopupDone      = 1
)

const (
	opCodeXdgPopupDestroy = 0
	opCodeXdgPopupGrab    = 1
)

// XdgPopupListener is the event interface for xdg_popup.
type XdgPopupListener interface {
	Configure(x int32, y int32, width int32, height int32)
	PopupDone()
}

// A popup surface is a short-lived, temporary surface. It can be used to
// implement for example menus, popovers, tooltips and other similar user
// interface concepts.
type XdgPopup struct {
	i uint32
	l XdgPopupListener
	c *Context
}

func newXdgPopup(c *Context) Object {
	o := &XdgPopup{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("xdg_popup", 6, newXdgPopup)
}

// ID returns the wayland object identifier
func (this *XdgPopup) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *XdgPopup) Type() string {
	return "xdg_popup"
}

func (this *XdgPopup) setListener(listener interface{}) error {
	l, ok := listener.(XdgPopupListener)
	if !ok {
		return errors.Errorf("listener must implement XdgPopupListener")
	}
	this.l = l
	return nil
}

func (this *XdgPopup) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeXdgPopupConfigure:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Configure event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			x := int32(hostByteOrder.Uint32(buf.Next(4)))
			y := int32(hostByteOrder.Uint32(buf.Next(4)))
			width := int32(hostByteOrder.Uint32(buf.Next(4)))
			height := int32(hostByteOrder.Uint32(buf.Next(4)))
			this.l.Configure(x, y, width, height)
		}
	case opCodeXdgPopupDone:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring PopupDone event, no listener")
		} else {
			this.l.PopupDone()
		}
	}
}

// This destroys the popup. Explicitly destroying the xdg_popup object will
// also dismiss the popup, and unmap the surface.
func (this *XdgPopup) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPopupDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPopup.Destroy failed")
	}
	return nil
}

// This request makes the created popup take an explicit grab. An explicit
// grab will be dismissed when the user dismisses the popup, or when the
// client destroys the xdg_popup.
func (this *XdgPopup) Grab(seat uint32, serial uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, seat)
	binary.Write(this.c.buf, hostByteOrder, serial)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgPopupGrab)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgPopup.Grab failed")
	}
	return nil
}
