package wlp

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	opCodeZxdgDecorationManagerV1Destroy               = 0
	opCodeZxdgDecorationManagerV1GetToplevelDecoration = 1
)

// ZxdgDecorationManagerV1Listener is empty; zxdg_decoration_manager_v1 has no events.
type ZxdgDecorationManagerV1Listener interface {
}

// This interface allows a compositor to announce support for server-side
// decorations. A window decoration is a set of window controls as deemed
// appropriate by the party managing them, such as user interface components
// used to move, resize and change a window's state.
type ZxdgDecorationManagerV1 struct {
	i uint32
	l ZxdgDecorationManagerV1Listener
	c *Context
}

func newZxdgDecorationManagerV1(c *Context) Object {
	o := &ZxdgDecorationManagerV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("zxdg_decoration_manager_v1", 1, newZxdgDecorationManagerV1)
}

// ID returns the wayland object identifier
func (this *ZxdgDecorationManagerV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *ZxdgDecorationManagerV1) Type() string {
	return "zxdg_decoration_manager_v1"
}

func (this *ZxdgDecorationManagerV1) setListener(listener interface{}) error {
	l, ok := listener.(ZxdgDecorationManagerV1Listener)
	if !ok {
		return errors.Errorf("listener must implement ZxdgDecorationManagerV1Listener")
	}
	this.l = l
	return nil
}

func (this *ZxdgDecorationManagerV1) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Destroy the decoration manager. This doesn't destroy objects created with
// the manager.
func (this *ZxdgDecorationManagerV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZxdgDecorationManagerV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZxdgDecorationManagerV1.Destroy failed")
	}
	return nil
}

// Create a new decoration object associated with the given toplevel.
// Creating an xdg_toplevel_decoration from an xdg_toplevel which has a
// buffer attached or committed is a client error.
func (this *ZxdgDecorationManagerV1) GetToplevelDecoration(l ZxdgToplevelDecorationV1Listener, toplevel uint32) (*ZxdgToplevelDecorationV1, error) {
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
	ret := newZxdgToplevelDecorationV1(this.c).(*ZxdgToplevelDecorationV1)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, toplevel)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZxdgDecorationManagerV1GetToplevelDecoration)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending ZxdgDecorationManagerV1.GetToplevelDecoration failed")
	}
	return ret, nil
}

const (
	ZxdgToplevelDecorationV1ModeClientSide = 1 // no server-side window decoration
	ZxdgToplevelDecorationV1ModeServerSide = 2 // server-side window decoration
)

const (
	opCodeZxdgToplevelDecorationV1Configure = 0
)

const (
	opCodeZxdgToplevelDecorationV1Destroy   = 0
	opCodeZxdgToplevelDecorationV1SetMode   = 1
	opCodeZxdgToplevelDecorationV1UnsetMode = 2
)

// ZxdgToplevelDecorationV1Listener is the event interface for zxdg_toplevel_decoration_v1.
type ZxdgToplevelDecorationV1Listener interface {
	Configure(mode uint32)
}

// The decoration object allows the compositor to toggle server-side window
// decorations for a toplevel surface. The client can request to switch to
// another mode.
//
// A configure event carries the mode the surface should use after the next
// commit that acks the paired xdg_surface.configure.
type ZxdgToplevelDecorationV1 struct {
	i uint32
	l ZxdgToplevelDecorationV1Listener
	c *Context
}

func newZxdgToplevelDecorationV1(c *Context) Object {
	o := &ZxdgToplevelDecorationV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("zxdg_toplevel_decoration_v1", 1, newZxdgToplevelDecorationV1)
}

// ID returns the wayland object identifier
func (this *ZxdgToplevelDecorationV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *ZxdgToplevelDecorationV1) Type() string {
	return "zxdg_toplevel_decoration_v1"
}

func (this *ZxdgToplevelDecorationV1) setListener(listener interface{}) error {
	l, ok := listener.(ZxdgToplevelDecorationV1Listener)
	if !ok {
		return errors.Errorf("listener must implement ZxdgToplevelDecorationV1Listener")
	}
	this.l = l
	return nil
}

func (this *ZxdgToplevelDecorationV1) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeZxdgToplevelDecorationV1Configure:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Configure event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			mode := hostByteOrder.Uint32(buf.Next(4))
			this.l.Configure(mode)
		}
	}
}

// Switch back to a mode without any server-side decorations at the next
// commit.
func (this *ZxdgToplevelDecorationV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZxdgToplevelDecorationV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZxdgToplevelDecorationV1.Destroy failed")
	}
	return nil
}

// Set the toplevel surface decoration mode. This informs the compositor
// that the client prefers the provided decoration mode.
func (this *ZxdgToplevelDecorationV1) SetMode(mode uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, mode)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZxdgToplevelDecorationV1SetMode)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZxdgToplevelDecorationV1.SetMode failed")
	}
	return nil
}

// Unset the toplevel surface decoration mode. This informs the compositor
// that the client doesn't prefer a particular decoration mode.
func (this *ZxdgToplevelDecorationV1) UnsetMode() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeZxdgToplevelDecorationV1UnsetMode)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ZxdgToplevelDecorationV1.UnsetMode failed")
	}
	return nil
}
