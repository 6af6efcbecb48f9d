package wlp

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	opCodeXdgActivationV1Destroy            = 0
	opCodeXdgActivationV1GetActivationToken = 1
	opCodeXdgActivationV1Activate           = 2
)

// XdgActivationV1Listener is empty; xdg_activation_v1 has no events.
type XdgActivationV1Listener interface {
}

// A global interface used for informing the compositor about applications
// being activated or started, or for applications to request to be
// activated.
type XdgActivationV1 struct {
	i uint32
	l XdgActivationV1Listener
	c *Context
}

func newXdgActivationV1(c *Context) Object {
	o := &XdgActivationV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("xdg_activation_v1", 1, newXdgActivationV1)
}

// ID returns the wayland object identifier
func (this *XdgActivationV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *XdgActivationV1) Type() string {
	return "xdg_activation_v1"
}

func (this *XdgActivationV1) setListener(listener interface{}) error {
	l, ok := listener.(XdgActivationV1Listener)
	if !ok {
		return errors.Errorf("listener must implement XdgActivationV1Listener")
	}
	this.l = l
	return nil
}

func (this *XdgActivationV1) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Notify the compositor that the xdg_activation object will no longer be
// used. The child objects created via this interface are unaffected.
func (this *XdgActivationV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgActivationV1.Destroy failed")
	}
	return nil
}

// Creates an xdg_activation_token_v1 object that will provide the
// initiating client with a unique token for this activation. This token
// should be offered to the clients to be activated.
func (this *XdgActivationV1) GetActivationToken(l XdgActivationTokenV1Listener) (*XdgActivationTokenV1, error) {
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
	ret := newXdgActivationTokenV1(this.c).(*XdgActivationTokenV1)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationV1GetActivationToken)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending XdgActivationV1.GetActivationToken failed")
	}
	return ret, nil
}

// Requests surface activation. It's up to the compositor to display this
// information as desired, for instance by placing the surface above the
// rest. The compositor may know who requested this by checking the
// activation token and might decide not to follow through with the
// activation if it's considered unwanted.
func (this *XdgActivationV1) Activate(token string, surface uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, uint32(len(token)+1))
	this.c.buf.WriteString(token)
	this.c.buf.WriteByte(0)
	if (len(token)+1)%4 != 0 {
		this.c.buf.Write(make([]byte, 4-(len(token)+1)%4))
	}
	binary.Write(this.c.buf, hostByteOrder, surface)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationV1Activate)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgActivationV1.Activate failed")
	}
	return nil
}

const (
	opCodeXdgActivationTokenV1Done = 0
)

const (
	opCodeXdgActivationTokenV1SetSerial  = 0
	opCodeXdgActivationTokenV1SetAppID   = 1
	opCodeXdgActivationTokenV1SetSurface = 2
	opCodeXdgActivationTokenV1Commit     = 3
	opCodeXdgActivationTokenV1Destroy    = 4
)

// XdgActivationTokenV1Listener is the event interface for xdg_activation_token_v1.
type XdgActivationTokenV1Listener interface {
	Done(token string)
}

// An object for setting up a token and receiving a token handle that can be
// passed as an activation token to another client.
//
// The object is meant to be used by the client that intends to activate
// another surface or its own. All the information needed (serial, app id,
// surface) must be provided before the commit request.
type XdgActivationTokenV1 struct {
	i uint32
	l XdgActivationTokenV1Listener
	c *Context
}

func newXdgActivationTokenV1(c *Context) Object {
	o := &XdgActivationTokenV1{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("xdg_activation_token_v1", 1, newXdgActivationTokenV1)
}

// ID returns the wayland object identifier
func (this *XdgActivationTokenV1) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *XdgActivationTokenV1) Type() string {
	return "xdg_activation_token_v1"
}

func (this *XdgActivationTokenV1) setListener(listener interface{}) error {
	l, ok := listener.(XdgActivationTokenV1Listener)
	if !ok {
		return errors.Errorf("listener must implement XdgActivationTokenV1Listener")
	}
	this.l = l
	return nil
}

func (this *XdgActivationTokenV1) dispatch(opCode uint16, payload []byte, file *os.File) {
	var len int
	_ = len
	switch opCode {
	case opCodeXdgActivationTokenV1Done:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Done event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			token := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			this.l.Done(token)
		}
	}
}

// Provides information about the seat and serial event that requested the
// token. The serial can come from an input or focus event.
func (this *XdgActivationTokenV1) SetSerial(serial uint32, seat uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, seat)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationTokenV1SetSerial)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgActivationTokenV1.SetSerial failed")
	}
	return nil
}

// The requesting client can specify an app_id to associate the token being
// created with it.
func (this *XdgActivationTokenV1) SetAppID(appID string) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationTokenV1SetAppID)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgActivationTokenV1.SetAppID failed")
	}
	return nil
}

// This request sets the surface requesting the activation. Note, this is
// different from the surface that will be activated.
func (this *XdgActivationTokenV1) SetSurface(surface uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, surface)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationTokenV1SetSurface)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgActivationTokenV1.SetSurface failed")
	}
	return nil
}

// Requests an activation token based on the different parameters that have
// been offered through set_serial, set_surface and set_app_id.
func (this *XdgActivationTokenV1) Commit() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationTokenV1Commit)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgActivationTokenV1.Commit failed")
	}
	return nil
}

// Notify the compositor that the xdg_activation_token_v1 object will no
// longer be used. The received token stays valid.
func (this *XdgActivationTokenV1) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeXdgActivationTokenV1Destroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending XdgActivationTokenV1.Destroy failed")
	}
	return nil
}
