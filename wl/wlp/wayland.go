package wlp

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DisplayErrorInvalidObject  = 0 // server couldn't find object
	DisplayErrorInvalidMethod  = 1 // method doesn't exist on the specified interface or malformed request
	DisplayErrorNoMemory       = 2 // server is out of memory
	DisplayErrorImplementation = 3 // implementation error in compositor
)

const (
	opCodeDisplayError    = 0
	opCodeDisplayDeleteID = 1
)

const (
	opCodeDisplaySync        = 0
	opCodeDisplayGetRegistry = 1
)

// DisplayListener is the event interface for wl_display.
type DisplayListener interface {
	Error(objectID uint32, code uint32, message string)
	DeleteID(id uint32)
}

// The core global object. This is a special singleton object. It is used for
// internal Wayland protocol features.
type Display struct {
	i uint32
	l DisplayListener
	c *Context
}

func newDisplay(c *Context) Object {
	o := &Display{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_display", 1, newDisplay)
}

// ID returns the wayland object identifier
func (this *Display) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Display) Type() string {
	return "wl_display"
}

func (this *Display) setListener(listener interface{}) error {
	l, ok := listener.(DisplayListener)
	if !ok {
		return errors.Errorf("listener must implement DisplayListener")
	}
	this.l = l
	return nil
}

func (this *Display) dispatch(opCode uint16, payload []byte, file *os.File) {
	var len int
	_ = len
	switch opCode {
	case opCodeDisplayError:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Error event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			objectID := hostByteOrder.Uint32(buf.Next(4))
			code := hostByteOrder.Uint32(buf.Next(4))
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			message := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			this.l.Error(objectID, code, message)
		}
	case opCodeDisplayDeleteID:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring DeleteID event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			id := hostByteOrder.Uint32(buf.Next(4))
			this.l.DeleteID(id)
		}
	}
}

// The sync request asks the server to emit the 'done' event on the returned
// wl_callback object. Since requests are handled in-order and events are
// delivered in-order, this can be used as a barrier.
func (this *Display) Sync(l CallbackListener) (*Callback, error) {
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
	ret := newCallback(this.c).(*Callback)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeDisplaySync)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending Display.Sync failed")
	}
	return ret, nil
}

// This request creates a registry object that allows the client to list and
// bind the global objects available from the compositor.
func (this *Display) GetRegistry(l RegistryListener) (*Registry, error) {
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
	ret := newRegistry(this.c).(*Registry)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeDisplayGetRegistry)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending Display.GetRegistry failed")
	}
	return ret, nil
}

const (
	opCodeRegistryGlobal       = 0
	opCodeRegistryGlobalRemove = 1
)

const (
	opCodeRegistryBind = 0
)

// RegistryListener is the event interface for wl_registry.
type RegistryListener interface {
	Global(name uint32, iface string, version uint32)
	GlobalRemove(name uint32)
}

// The singleton global registry object. The server has a number of global
// objects that are available to all clients. These objects typically
// represent an actual object in the server (for example, an input device) or
// a singleton providing extension functionality.
type Registry struct {
	i uint32
	l RegistryListener
	c *Context
}

func newRegistry(c *Context) Object {
	o := &Registry{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_registry", 1, newRegistry)
}

// ID returns the wayland object identifier
func (this *Registry) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Registry) Type() string {
	return "wl_registry"
}

func (this *Registry) setListener(listener interface{}) error {
	l, ok := listener.(RegistryListener)
	if !ok {
		return errors.Errorf("listener must implement RegistryListener")
	}
	this.l = l
	return nil
}

func (this *Registry) dispatch(opCode uint16, payload []byte, file *os.File) {
	var len int
	_ = len
	switch opCode {
	case opCodeRegistryGlobal:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Global event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			name := hostByteOrder.Uint32(buf.Next(4))
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			iface := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			version := hostByteOrder.Uint32(buf.Next(4))
			this.l.Global(name, iface, version)
		}
	case opCodeRegistryGlobalRemove:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring GlobalRemove event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			name := hostByteOrder.Uint32(buf.Next(4))
			this.l.GlobalRemove(name)
		}
	}
}

// Binds a new, client-created object to the server using the specified name
// as the identifier. The id is allocated by the caller, which also fixes the
// interface and version the object speaks.
func (this *Registry) Bind(name uint32, iface string, version uint32, id uint32) error {
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
	binary.Write(this.c.buf, hostByteOrder, name)
	binary.Write(this.c.buf, hostByteOrder, uint32(len(iface)+1))
	this.c.buf.WriteString(iface)
	this.c.buf.WriteByte(0)
	if (len(iface)+1)%4 != 0 {
		this.c.buf.Write(make([]byte, 4-(len(iface)+1)%4))
	}
	binary.Write(this.c.buf, hostByteOrder, version)
	binary.Write(this.c.buf, hostByteOrder, id)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeRegistryBind)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Registry.Bind failed")
	}
	return nil
}

const (
	opCodeCallbackDone = 0
)

// CallbackListener is the event interface for wl_callback.
type CallbackListener interface {
	Done(callbackData uint32)
}

// Clients can handle the 'done' event to get notified when the related
// request is done.
type Callback struct {
	i uint32
	l CallbackListener
	c *Context
}

func newCallback(c *Context) Object {
	o := &Callback{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_callback", 1, newCallback)
}

// ID returns the wayland object identifier
func (this *Callback) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Callback) Type() string {
	return "wl_callback"
}

func (this *Callback) setListener(listener interface{}) error {
	l, ok := listener.(CallbackListener)
	if !ok {
		return errors.Errorf("listener must implement CallbackListener")
	}
	this.l = l
	return nil
}

func (this *Callback) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeCallbackDone:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Done event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			callbackData := hostByteOrder.Uint32(buf.Next(4))
			this.l.Done(callbackData)
		}
	}
}

const (
	opCodeCompositorCreateSurface = 0
	opCodeCompositorCreateRegion  = 1
)

// CompositorListener is empty; wl_compositor has no events.
type CompositorListener interface {
}

// A compositor. This object is a singleton global. The compositor is in
// charge of combining the contents of multiple surfaces into one displayable
// output.
type Compositor struct {
	i uint32
	l CompositorListener
	c *Context
}

func newCompositor(c *Context) Object {
	o := &Compositor{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_compositor", 6, newCompositor)
}

// ID returns the wayland object identifier
func (this *Compositor) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Compositor) Type() string {
	return "wl_compositor"
}

func (this *Compositor) setListener(listener interface{}) error {
	l, ok := listener.(CompositorListener)
	if !ok {
		return errors.Errorf("listener must implement CompositorListener")
	}
	this.l = l
	return nil
}

func (this *Compositor) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Ask the compositor to create a new surface.
func (this *Compositor) CreateSurface(l SurfaceListener) (*Surface, error) {
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
	ret := newSurface(this.c).(*Surface)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeCompositorCreateSurface)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending Compositor.CreateSurface failed")
	}
	return ret, nil
}

// Ask the compositor to create a new region.
func (this *Compositor) CreateRegion(l RegionListener) (*Region, error) {
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
	ret := newRegion(this.c).(*Region)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeCompositorCreateRegion)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending Compositor.CreateRegion failed")
	}
	return ret, nil
}

const (
	ShmErrorInvalidFormat = 0 // buffer format is not known
	ShmErrorInvalidStride = 1 // invalid size or stride during pool or buffer creation
	ShmErrorInvalidFd     = 2 // mmapping the file descriptor failed
)

const (
	ShmFormatArgb8888 = 0 // 32-bit ARGB format, [31:0] A:R:G:B 8:8:8:8 little endian
	ShmFormatXrgb8888 = 1 // 32-bit RGB format, [31:0] x:R:G:B 8:8:8:8 little endian
)

const (
	opCodeShmFormat = 0
)

const (
	opCodeShmCreatePool = 0
)

// ShmListener is the event interface for wl_shm.
type ShmListener interface {
	Format(format uint32)
}

// A singleton global object that provides support for shared memory.
// Clients can create wl_shm_pool objects using the create_pool request.
type Shm struct {
	i uint32
	l ShmListener
	c *Context
}

func newShm(c *Context) Object {
	o := &Shm{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_shm", 1, newShm)
}

// ID returns the wayland object identifier
func (this *Shm) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Shm) Type() string {
	return "wl_shm"
}

func (this *Shm) setListener(listener interface{}) error {
	l, ok := listener.(ShmListener)
	if !ok {
		return errors.Errorf("listener must implement ShmListener")
	}
	this.l = l
	return nil
}

func (this *Shm) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeShmFormat:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Format event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			format := hostByteOrder.Uint32(buf.Next(4))
			this.l.Format(format)
		}
	}
}

// Create a new wl_shm_pool object. The pool can be used to create shared
// memory based buffer objects. The server will mmap size bytes of the passed
// file descriptor, to use as backing memory for the pool.
func (this *Shm) CreatePool(l ShmPoolListener, fd *os.File, size int32) (*ShmPool, error) {
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
	oob := this.c.encodeFD(fd)
	binary.Write(this.c.buf, hostByteOrder, this.i)
	binary.Write(this.c.buf, hostByteOrder, uint32(0))
	ret := newShmPool(this.c).(*ShmPool)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, size)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeShmCreatePool)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), oob, nil); err != nil {
		return nil, errors.Wrap(err, "sending Shm.CreatePool failed")
	}
	return ret, nil
}

const (
	opCodeShmPoolCreateBuffer = 0
	opCodeShmPoolDestroy      = 1
	opCodeShmPoolResize       = 2
)

// ShmPoolListener is empty; wl_shm_pool has no events.
type ShmPoolListener interface {
}

// The wl_shm_pool object encapsulates a piece of memory shared between the
// compositor and client. Through the wl_shm_pool object, the client can
// allocate shared memory wl_buffer objects.
type ShmPool struct {
	i uint32
	l ShmPoolListener
	c *Context
}

func newShmPool(c *Context) Object {
	o := &ShmPool{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_shm_pool", 1, newShmPool)
}

// ID returns the wayland object identifier
func (this *ShmPool) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *ShmPool) Type() string {
	return "wl_shm_pool"
}

func (this *ShmPool) setListener(listener interface{}) error {
	l, ok := listener.(ShmPoolListener)
	if !ok {
		return errors.Errorf("listener must implement ShmPoolListener")
	}
	this.l = l
	return nil
}

func (this *ShmPool) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Create a wl_buffer object from the pool. The buffer is created offset
// bytes into the pool and has width and height as specified. The stride
// argument specifies the number of bytes from the beginning of one row to
// the beginning of the next.
func (this *ShmPool) CreateBuffer(l BufferListener, offset int32, width int32, height int32, stride int32, format uint32) (*Buffer, error) {
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
	ret := newBuffer(this.c).(*Buffer)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	binary.Write(this.c.buf, hostByteOrder, offset)
	binary.Write(this.c.buf, hostByteOrder, width)
	binary.Write(this.c.buf, hostByteOrder, height)
	binary.Write(this.c.buf, hostByteOrder, stride)
	binary.Write(this.c.buf, hostByteOrder, format)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeShmPoolCreateBuffer)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending ShmPool.CreateBuffer failed")
	}
	return ret, nil
}

// Destroy the shared memory pool. The mmapped memory will be released when
// all buffers that have been created from this pool are gone.
func (this *ShmPool) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeShmPoolDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ShmPool.Destroy failed")
	}
	return nil
}

// Change the size of the pool mapping. This request can only be used to make
// the pool bigger.
func (this *ShmPool) Resize(size int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, size)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeShmPoolResize)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending ShmPool.Resize failed")
	}
	return nil
}

const (
	opCodeBufferRelease = 0
)

const (
	opCodeBufferDestroy = 0
)

// BufferListener is the event interface for wl_buffer.
type BufferListener interface {
	Release()
}

// A buffer provides the content for a wl_surface. Buffers are created
// through factory interfaces such as wl_shm_pool.
type Buffer struct {
	i uint32
	l BufferListener
	c *Context
}

func newBuffer(c *Context) Object {
	o := &Buffer{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_buffer", 1, newBuffer)
}

// ID returns the wayland object identifier
func (this *Buffer) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Buffer) Type() string {
	return "wl_buffer"
}

func (this *Buffer) setListener(listener interface{}) error {
	l, ok := listener.(BufferListener)
	if !ok {
		return errors.Errorf("listener must implement BufferListener")
	}
	this.l = l
	return nil
}

func (this *Buffer) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeBufferRelease:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Release event, no listener")
		} else {
			this.l.Release()
		}
	}
}

// Destroy a buffer. If and how you need to release the backing storage is
// defined by the buffer factory interface.
func (this *Buffer) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeBufferDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Buffer.Destroy failed")
	}
	return nil
}

const (
	opCodeSurfaceEnter                    = 0
	opCodeSurfaceLeave                    = 1
	opCodeSurfacePreferredBufferScale     = 2
	opCodeSurfacePreferredBufferTransform = 3
)

const (
	opCodeSurfaceDestroy            = 0
	opCodeSurfaceAttach             = 1
	opCodeSurfaceDamage             = 2
	opCodeSurfaceFrame              = 3
	opCodeSurfaceSetOpaqueRegion    = 4
	opCodeSurfaceSetInputRegion     = 5
	opCodeSurfaceCommit             = 6
	opCodeSurfaceSetBufferTransform = 7
	opCodeSurfaceSetBufferScale     = 8
	opCodeSurfaceDamageBuffer       = 9
	opCodeSurfaceOffset             = 10
)

// SurfaceListener is the event interface for wl_surface.
type SurfaceListener interface {
	Enter(output uint32)
	Leave(output uint32)
	PreferredBufferScale(factor int32)
	PreferredBufferTransform(transform uint32)
}

// A surface is a rectangular area that may be displayed on zero or more
// outputs, and shown any number of times at the compositor's discretion.
// It has a location, size and pixel contents. A surface without a "role" is
// fairly useless: a compositor does not know where, when or how to present
// it. A role is assigned through requests in other interfaces, for example
// xdg_surface.get_toplevel.
type Surface struct {
	i uint32
	l SurfaceListener
	c *Context
}

func newSurface(c *Context) Object {
	o := &Surface{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_surface", 6, newSurface)
}

// ID returns the wayland object identifier
func (this *Surface) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Surface) Type() string {
	return "wl_surface"
}

func (this *Surface) setListener(listener interface{}) error {
	l, ok := listener.(SurfaceListener)
	if !ok {
		return errors.Errorf("listener must implement SurfaceListener")
	}
	this.l = l
	return nil
}

func (this *Surface) dispatch(opCode uint16, payload []byte, file *os.File) {
	switch opCode {
	case opCodeSurfaceEnter:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Enter event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			output := hostByteOrder.Uint32(buf.Next(4))
			this.l.Enter(output)
		}
	case opCodeSurfaceLeave:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Leave event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			output := hostByteOrder.Uint32(buf.Next(4))
			this.l.Leave(output)
		}
	case opCodeSurfacePreferredBufferScale:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring PreferredBufferScale event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			factor := int32(hostByteOrder.Uint32(buf.Next(4)))
			this.l.PreferredBufferScale(factor)
		}
	case opCodeSurfacePreferredBufferTransform:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring PreferredBufferTransform event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			transform := hostByteOrder.Uint32(buf.Next(4))
			this.l.PreferredBufferTransform(transform)
		}
	}
}

// Deletes the surface and invalidates its object ID.
func (this *Surface) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.Destroy failed")
	}
	return nil
}

// Set a buffer as the content of this surface. The x and y arguments
// specify the location of the new pending buffer's upper left corner,
// relative to the current buffer's upper left corner, in surface-local
// coordinates. Surface contents are double-buffered state, see
// wl_surface.commit.
func (this *Surface) Attach(buffer uint32, x int32, y int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, buffer)
	binary.Write(this.c.buf, hostByteOrder, x)
	binary.Write(this.c.buf, hostByteOrder, y)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceAttach)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.Attach failed")
	}
	return nil
}

// This request is used to describe the regions where the pending buffer is
// different from the current surface contents. The damage region is
// specified in surface-local coordinates.
func (this *Surface) Damage(x int32, y int32, width int32, height int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceDamage)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.Damage failed")
	}
	return nil
}

// Request a notification when it is a good time to start drawing a new
// frame, by creating a frame callback. This is useful for throttling
// redrawing operations, and driving animations.
func (this *Surface) Frame(l CallbackListener) (*Callback, error) {
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
	ret := newCallback(this.c).(*Callback)
	binary.Write(this.c.buf, hostByteOrder, ret.i)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceFrame)
	ret.l = l
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return nil, errors.Wrap(err, "sending Surface.Frame failed")
	}
	return ret, nil
}

// This request sets the region of the surface that contains opaque content.
// The opaque region is an optimization hint for the compositor that lets it
// optimize the redrawing of content behind opaque regions. Setting a region
// of 0 means the whole surface may be translucent.
func (this *Surface) SetOpaqueRegion(region uint32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceSetOpaqueRegion)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.SetOpaqueRegion failed")
	}
	return nil
}

// This request sets the region of the surface that can receive pointer and
// touch events. The default input region covers the whole surface.
func (this *Surface) SetInputRegion(region uint32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceSetInputRegion)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.SetInputRegion failed")
	}
	return nil
}

// Surface state (input, opaque, and damage regions, attached buffers, etc.)
// is double-buffered. Protocol requests modify the pending state, as opposed
// to the active state in use by the compositor. A commit request atomically
// creates a content update from the pending state.
func (this *Surface) Commit() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceCommit)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.Commit failed")
	}
	return nil
}

// This request sets the transformation that the client has already applied
// to the content of the buffer.
func (this *Surface) SetBufferTransform(transform int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, transform)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceSetBufferTransform)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.SetBufferTransform failed")
	}
	return nil
}

// This request sets an optional scaling factor on how the compositor
// interprets the contents of the buffer attached to the window.
func (this *Surface) SetBufferScale(scale int32) error {
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
	binary.Write(this.c.buf, hostByteOrder, scale)
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceSetBufferScale)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.SetBufferScale failed")
	}
	return nil
}

// This request is used to describe the regions where the pending buffer is
// different from the current surface contents, in buffer coordinates.
func (this *Surface) DamageBuffer(x int32, y int32, width int32, height int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceDamageBuffer)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.DamageBuffer failed")
	}
	return nil
}

// The x and y arguments specify the location of the new pending buffer's
// upper left corner, relative to the current buffer's upper left corner, in
// surface-local coordinates.
func (this *Surface) Offset(x int32, y int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSurfaceOffset)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Surface.Offset failed")
	}
	return nil
}

const (
	opCodeRegionDestroy  = 0
	opCodeRegionAdd      = 1
	opCodeRegionSubtract = 2
)

// RegionListener is empty; wl_region has no events.
type RegionListener interface {
}

// A region object describes an area. Region objects are used to describe
// the opaque and input regions of a surface.
type Region struct {
	i uint32
	l RegionListener
	c *Context
}

func newRegion(c *Context) Object {
	o := &Region{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_region", 1, newRegion)
}

// ID returns the wayland object identifier
func (this *Region) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Region) Type() string {
	return "wl_region"
}

func (this *Region) setListener(listener interface{}) error {
	l, ok := listener.(RegionListener)
	if !ok {
		return errors.Errorf("listener must implement RegionListener")
	}
	this.l = l
	return nil
}

func (this *Region) dispatch(opCode uint16, payload []byte, file *os.File) {
}

// Destroy the region. This will invalidate the object ID.
func (this *Region) Destroy() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeRegionDestroy)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Region.Destroy failed")
	}
	return nil
}

// Add the specified rectangle to the region.
func (this *Region) Add(x int32, y int32, width int32, height int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeRegionAdd)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Region.Add failed")
	}
	return nil
}

// Subtract the specified rectangle from the region.
func (this *Region) Subtract(x int32, y int32, width int32, height int32) error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeRegionSubtract)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Region.Subtract failed")
	}
	return nil
}

const (
	OutputSubpixelUnknown       = 0 // unknown geometry
	OutputSubpixelNone          = 1 // no geometry
	OutputSubpixelHorizontalRgb = 2 // horizontal RGB
	OutputSubpixelHorizontalBgr = 3 // horizontal BGR
	OutputSubpixelVerticalRgb   = 4 // vertical RGB
	OutputSubpixelVerticalBgr   = 5 // vertical BGR
)

const (
	OutputModeCurrent   = 0x1 // indicates this is the current mode
	OutputModePreferred = 0x2 // indicates this is the preferred mode
)

const (
	opCodeOutputGeometry    = 0
	opCodeOutputMode        = 1
	opCodeOutputDone        = 2
	opCodeOutputScale       = 3
	opCodeOutputName        = 4
	opCodeOutputDescription = 5
)

const (
	opCodeOutputRelease = 0
)

// OutputListener is the event interface for wl_output.
type OutputListener interface {
	Geometry(x int32, y int32, physicalWidth int32, physicalHeight int32, subpixel int32, make string, model string, transform int32)
	Mode(flags uint32, width int32, height int32, refresh int32)
	Done()
	Scale(factor int32)
	Name(name string)
	Description(description string)
}

// An output describes part of the compositor geometry. The compositor works
// in the 'compositor coordinate system' and an output corresponds to a
// rectangular area in that space that is actually visible. This typically
// corresponds to a monitor that displays part of the compositor space.
type Output struct {
	i uint32
	l OutputListener
	c *Context
}

func newOutput(c *Context) Object {
	o := &Output{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_output", 4, newOutput)
}

// ID returns the wayland object identifier
func (this *Output) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Output) Type() string {
	return "wl_output"
}

func (this *Output) setListener(listener interface{}) error {
	l, ok := listener.(OutputListener)
	if !ok {
		return errors.Errorf("listener must implement OutputListener")
	}
	this.l = l
	return nil
}

func (this *Output) dispatch(opCode uint16, payload []byte, file *os.File) {
	var len int
	_ = len
	switch opCode {
	case opCodeOutputGeometry:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Geometry event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			x := int32(hostByteOrder.Uint32(buf.Next(4)))
			y := int32(hostByteOrder.Uint32(buf.Next(4)))
			physicalWidth := int32(hostByteOrder.Uint32(buf.Next(4)))
			physicalHeight := int32(hostByteOrder.Uint32(buf.Next(4)))
			subpixel := int32(hostByteOrder.Uint32(buf.Next(4)))
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			make := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			model := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			transform := int32(hostByteOrder.Uint32(buf.Next(4)))
			this.l.Geometry(x, y, physicalWidth, physicalHeight, subpixel, make, model, transform)
		}
	case opCodeOutputMode:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Mode event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			flags := hostByteOrder.Uint32(buf.Next(4))
			width := int32(hostByteOrder.Uint32(buf.Next(4)))
			height := int32(hostByteOrder.Uint32(buf.Next(4)))
			refresh := int32(hostByteOrder.Uint32(buf.Next(4)))
			this.l.Mode(flags, width, height, refresh)
		}
	case opCodeOutputDone:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Done event, no listener")
		} else {
			this.l.Done()
		}
	case opCodeOutputScale:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Scale event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			factor := int32(hostByteOrder.Uint32(buf.Next(4)))
			this.l.Scale(factor)
		}
	case opCodeOutputName:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Name event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			name := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			this.l.Name(name)
		}
	case opCodeOutputDescription:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Description event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			description := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			this.l.Description(description)
		}
	}
}

// Using this request a client can tell the server that it is not going to
// use the output object anymore.
func (this *Output) Release() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeOutputRelease)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Output.Release failed")
	}
	return nil
}

const (
	SeatCapabilityPointer  = 1 // the seat has pointer devices
	SeatCapabilityKeyboard = 2 // the seat has one or more keyboards
	SeatCapabilityTouch    = 4 // the seat has touch devices
)

const (
	opCodeSeatCapabilities = 0
	opCodeSeatName         = 1
)

const (
	opCodeSeatRelease = 3
)

// SeatListener is the event interface for wl_seat.
type SeatListener interface {
	Capabilities(capabilities uint32)
	Name(name string)
}

// A seat is a group of keyboards, pointer and touch devices. This object is
// published as a global during start up, or when such a device is hot
// plugged.
type Seat struct {
	i uint32
	l SeatListener
	c *Context
}

func newSeat(c *Context) Object {
	o := &Seat{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("wl_seat", 5, newSeat)
}

// ID returns the wayland object identifier
func (this *Seat) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *Seat) Type() string {
	return "wl_seat"
}

func (this *Seat) setListener(listener interface{}) error {
	l, ok := listener.(SeatListener)
	if !ok {
		return errors.Errorf("listener must implement SeatListener")
	}
	this.l = l
	return nil
}

func (this *Seat) dispatch(opCode uint16, payload []byte, file *os.File) {
	var len int
	_ = len
	switch opCode {
	case opCodeSeatCapabilities:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Capabilities event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			capabilities := hostByteOrder.Uint32(buf.Next(4))
			this.l.Capabilities(capabilities)
		}
	case opCodeSeatName:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring Name event, no listener")
		} else {
			buf := bytes.NewBuffer(payload)
			len = int(hostByteOrder.Uint32(buf.Next(4)))
			name := string(buf.Next(len)[:len-1])
			if len%4 != 0 {
				buf.Next(4 - (len % 4))
			}
			this.l.Name(name)
		}
	}
}

// Using this request a client can tell the server that it is not going to
// use the seat object anymore.
func (this *Seat) Release() error {
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
	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCodeSeatRelease)
	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
		return errors.Wrap(err, "sending Seat.Release failed")
	}
	return nil
}
