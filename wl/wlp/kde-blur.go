package wlp

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

const (
	opCodeOrgKdeKwinBlurManagerCreate = 0
	opCodeOrgKdeKwinBlurManagerUnset  = 1
)

// OrgKdeKwinBlurManagerListener is empty; org_kde_kwin_blur_manager has no events.
type OrgKdeKwinBlurManagerListener interface {
}

// OrgKdeKwinBlurManager lets clients mark surfaces whose background should
// be blurred by the compositor. KWin and several wlroots compositors expose
// this global.
type OrgKdeKwinBlurManager struct {
	i uint32
	l OrgKdeKwinBlurManagerListener
	c *Context
}

func newOrgKdeKwinBlurManager(c *Context) Object {
	o := &OrgKdeKwinBlurManager{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("org_kde_kwin_blur_manager", 1, newOrgKdeKwinBlurManager)
}

// ID returns the wayland object identifier
func (this *OrgKdeKwinBlurManager) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *OrgKdeKwinBlurManager) Type() string {
	return "org_kde_kwin_blur_manager"
}

func (this *OrgKdeKwinBlurManager) setListener(listener interface{}) error {
	l, ok := listener.(OrgKdeKwinBlurManagerListener)
	if !ok {
		return errors.Errorf("listener must implement OrgKdeKwinBlurManagerListener")
	}
	this.l = l
	return nil
}

func (this *OrgKdeKwinBlurManager) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Create a blur object for the given surface. The blur region takes effect
// once the blur object is committed and the surface itself commits.
func (this *OrgKdeKwinBlurManager) Create(l OrgKdeKwinBlurListener, surface uint32) (*OrgKdeKwinBlur, error) {
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
	ret := newOrgKdeKwinBlur(this.c).(*OrgKdeKwinBlur)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, surface)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeOrgKdeKwinBlurManagerCreate)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending OrgKdeKwinBlurManager.Create failed")
	}
	return ret, nil
}

// Remove the blur effect from the given surface.
func (this *OrgKdeKwinBlurManager) Unset(surface uint32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeOrgKdeKwinBlurManagerUnset)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending OrgKdeKwinBlurManager.Unset failed")
	}
	return nil
}

const (
	opCodeOrgKdeKwinBlurCommit    = 0
	opCodeOrgKdeKwinBlurSetRegion = 1
	opCodeOrgKdeKwinBlurRelease   = 2
)

// OrgKdeKwinBlurListener is empty; org_kde_kwin_blur has no events.
type OrgKdeKwinBlurListener interface {
}

// OrgKdeKwinBlur carries the blur region for one surface. Without a region
// set, the whole surface is blurred.
type OrgKdeKwinBlur struct {
	i uint32
	l OrgKdeKwinBlurListener
	c *Context
}

func newOrgKdeKwinBlur(c *Context) Object {
	o := &OrgKdeKwinBlur{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("org_kde_kwin_blur", 1, newOrgKdeKwinBlur)
}

// ID returns the wayland object identifier
func (this *OrgKdeKwinBlur) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *OrgKdeKwinBlur) Type() string {
	return "org_kde_kwin_blur"
}

func (this *OrgKdeKwinBlur) setListener(listener interface{}) error {
	l, ok := listener.(OrgKdeKwinBlurListener)
	if !ok {
		return errors.Errorf("listener must implement OrgKdeKwinBlurListener")
	}
	this.l = l
	return nil
}

func (this *OrgKdeKwinBlur) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Apply the pending blur region. The region only becomes visible after the
// surface itself commits.
func (this *OrgKdeKwinBlur) Commit() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeOrgKdeKwinBlurCommit)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending OrgKdeKwinBlur.Commit failed")
	}
	return nil
}

// Set the pending blur region. A region of 0 blurs the entire surface.
func (this *OrgKdeKwinBlur) SetRegion(region uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, region)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeOrgKdeKwinBlurSetRegion)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending OrgKdeKwinBlur.SetRegion failed")
	}
	return nil
}

// Destroy the blur object. The surface keeps its current blur state until
// the manager unsets it.
func (this *OrgKdeKwinBlur) Release() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeOrgKdeKwinBlurRelease)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending OrgKdeKwinBlur.Release failed")
	}
	return nil
}
