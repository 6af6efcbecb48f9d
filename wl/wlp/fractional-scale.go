package wlp

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	WpFractionalScaleManagerV1ErrorFractionalScaleExists = 0 // the surface already has a fractional_scale object associated
)

const (
	opCodeWpFractionalScaleManagerV1Destroy            = 0
	opCodeWpFractionalScaleManagerV1GetFractionalScale = 1
)

// WpFractionalScaleManagerV1Listener is empty; wp_fractional_scale_manager_v1 has no events.
type WpFractionalScaleManagerV1Listener interface {
}

// A global interface for requesting surfaces to use fractional scales.
type WpFractionalScaleManagerV1 struct {
	i uint32
	l WpFractionalScaleManagerV1Listener
	c *Context
}

func newWpFractionalScaleManagerV1(c *Context) Object {
	o := &WpFractionalScaleManagerV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wp_fractional_scale_manager_v1", 1, newWpFractionalScaleManagerV1)
}

// ID returns the wayland object identifier
func (this *WpFractionalScaleManagerV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *WpFractionalScaleManagerV1) Type() string {
	return "wp_fractional_scale_manager_v1"
}

func (this *WpFractionalScaleManagerV1) setListener(listener interface{}) error {
	l, ok := listener.(WpFractionalScaleManagerV1Listener)
	if !ok {
		return errors.Errorf("listener must implement WpFractionalScaleManagerV1Listener")
	}
	this.l = l
	return nil
}

func (this *WpFractionalScaleManagerV1) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Informs the server that the client will not be using this protocol
// object anymore. This does not affect any other objects,
// wp_fractional_scale_v1 objects included.
func (this *WpFractionalScaleManagerV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpFractionalScaleManagerV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending WpFractionalScaleManagerV1.Destroy failed")
	}
	return nil
}

// Create an add-on object for the the wl_surface to let the compositor
// request fractional scales. If the given wl_surface already has a
// wp_fractional_scale_v1 object associated, the fractional_scale_exists
// protocol error is raised.
func (this *WpFractionalScaleManagerV1) GetFractionalScale(l WpFractionalScaleV1Listener, surface uint32) (*WpFractionalScaleV1, error) {
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
	ret := newWpFractionalScaleV1(this.c).(*WpFractionalScaleV1)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, surface)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpFractionalScaleManagerV1GetFractionalScale)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending WpFractionalScaleManagerV1.GetFractionalScale failed")
	}
	return ret, nil
}

const (
	opCodeWpFractionalScaleV1PreferredScale = 0
)

const (
	opCodeWpFractionalScaleV1Destroy = 0
)

// WpFractionalScaleV1Listener is the event interface for wp_fractional_scale_v1.
type WpFractionalScaleV1Listener interface {
	PreferredScale(scale uint32)
}

// An additional interface to a wl_surface object which allows the compositor
// to inform the client of the preferred scale.
type WpFractionalScaleV1 struct {
	i uint32
	l WpFractionalScaleV1Listener
	c *Context
}

func newWpFractionalScaleV1(c *Context) Object {
	o := &WpFractionalScaleV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wp_fractional_scale_v1", 1, newWpFractionalScaleV1)
}

// ID returns the wayland object identifier
func (this *WpFractionalScaleV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *WpFractionalScaleV1) Type() string {
	return "wp_fractional_scale_v1"
}

func (this *WpFractionalScaleV1) setListener(listener interface{}) error {
	l, ok := listener.(WpFractionalScaleV1Listener)
	if !ok {
		return errors.Errorf("listener must implement WpFractionalScaleV1Listener")
	}
	this.l = l
	return nil
}

func (this *WpFractionalScaleV1) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeWpFractionalScaleV1PreferredScale:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring PreferredScale event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			scale := hostByteOrder.Uint32(buf.Next(4))
			this.l.PreferredScale(scale)
		}
	}
}

// Destroy the fractional scale object. When this object is destroyed,
// preferred_scale events will no longer be sent.
func (this *WpFractionalScaleV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeWpFractionalScaleV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending WpFractionalScaleV1.Destroy failed")
	}
	return nil
}
