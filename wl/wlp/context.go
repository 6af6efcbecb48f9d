package wlp

import (
	"bytes"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type constructor func(*Context) Object

var constructors map[string]constructor

// interfaceVersions records the highest protocol version each generated
// binding understands. Binds are capped to this so the server never sends
// events the dispatch tables cannot decode.
var interfaceVersions map[string]uint32

func registerConstructor(iface string, version uint32, fn constructor) {
	if constructors == nil {
		constructors = make(map[string]constructor)
		interfaceVersions = make(map[string]uint32)
	}
	constructors[iface] = fn
	interfaceVersions[iface] = version
}

// Object is the interface implemented by every generated protocol proxy.
type Object interface {
	ID() uint32
	Type() string
	dispatch(opCode uint16, payload []byte, file *os.File)
	setListener(listener interface{}) error
}

type global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// NewContext creates the connection-wide object and global registries for a
// single compositor connection.
func NewContext(conn *net.UnixConn) *Context {
	return &Context{
		mu:          &sync.Mutex{},
		c:           conn,
		buf:         &bytes.Buffer{},
		obj:         make(map[uint32]Object),
		glb:         make(map[uint32]global),
		glbByString: make(map[string][]global),
		done:        make(chan struct{}),
	}
}

// Context owns one compositor connection: the socket, the id → proxy map,
// and the advertised globals. All request marshaling serializes through its
// mutex; all events are decoded on the single readLoop goroutine.
type Context struct {
	*Display
	*Registry

	// AfterDispatch, when set, runs on the read goroutine after every
	// dispatched event. The client layer uses it to drain deferred work
	// between event-handling steps.
	AfterDispatch func()

	mu          *sync.Mutex
	c           *net.UnixConn
	buf         *bytes.Buffer
	obj         map[uint32]Object
	glb         map[uint32]global
	glbByString map[string][]global
	last        uint32
	done        chan struct{}
	Err         error
}

// Done is closed when the read loop exits, either on connection failure or
// after Close. Context.Err holds the cause.
func (c *Context) Done() <-chan struct{} {
	return c.done
}

func (c *Context) decodeFD(n int, oob []byte) (*os.File, error) {
	if n == 0 {
		return nil, nil
	}
	scms, err := syscall.ParseSocketControlMessage(oob[:n])
	if err != nil {
		return nil, errors.Wrap(err, "ParseSocketControlMessage failed")
	}
	if len(scms) != 1 {
		return nil, errors.Errorf("SocketControlMessage count not 1: %v", len(scms))
	}
	scm := scms[0]
	fds, err := syscall.ParseUnixRights(&scm)
	if err != nil {
		return nil, errors.Wrap(err, "ParseUnixRights failed")
	}
	if len(fds) != 1 {
		return nil, errors.Errorf("recvfd: fd count not 1: %v", len(fds))
	}
	return os.NewFile(uintptr(fds[0]), "wayland-fd"), nil
}

func (c *Context) encodeFD(f *os.File) []byte {
	if f == nil {
		return nil
	}
	return syscall.UnixRights(int(f.Fd()))
}

func (c *Context) readLoop() {
	defer close(c.done)
	buf := make([]byte, 65535)
	oobBuf := make([]byte, os.Getpagesize())
	j := 0
outer:
	for {
		n, oobn, _, _, err := c.c.ReadMsgUnix(buf[j:], oobBuf)
		n += j
		j = 0
		if err != nil {
			c.fail(errors.Wrap(err, "connection read failed"))
			return
		}
		file, err := c.decodeFD(oobn, oobBuf)
		if err != nil {
			c.fail(errors.Wrap(err, "control message decode failed"))
			return
		}

		i := 0
		for i < n {
			if n-i < 8 {
				j = copy(buf, buf[i:n])
				continue outer
			}
			id, opcode, size := DecodeHeader(buf[i:])
			if size < 8 {
				c.fail(errors.Errorf("malformed header on object %d: size %d", id, size))
				return
			}
			if n-i < size {
				j = copy(buf, buf[i:n])
				continue outer
			}
			payload := make([]byte, size-8)
			copy(payload, buf[i+8:i+size])
			i += size
			obj, exists := c.obj[id]
			if !exists {
				// Events may still arrive for objects destroyed on our
				// side before the server processed the destructor.
				logrus.WithField("object", id).Debugln("wlp: event for unknown object")
				continue
			}
			obj.dispatch(opcode, payload, file)
			if c.AfterDispatch != nil {
				c.AfterDispatch()
			}
			if c.Err != nil {
				c.wakeCallbacks()
				return
			}
		}
	}
}

// fail records a fatal connection error and releases anyone blocked on a
// sync callback.
func (c *Context) fail(err error) {
	if c.Err == nil {
		c.Err = err
	}
	logrus.WithError(err).Warnln("wlp: connection failed")
	c.wakeCallbacks()
}

func (c *Context) wakeCallbacks() {
	for _, obj := range c.obj {
		cb, ok := obj.(*Callback)
		if !ok {
			continue
		}
		cb.dispatch(opCodeCallbackDone, []byte{0, 0, 0, 0}, nil)
	}
}

// Start allocates the display and registry proxies and begins reading
// events. The registry population is asynchronous; callers that need the
// full global list must roundtrip afterwards.
func (c *Context) Start() {
	c.Display = newDisplay(c).(*Display)
	c.Display.setListener(c)
	go c.readLoop()
	c.Registry, _ = c.Display.GetRegistry(c)
}

// Close shuts the connection down. The read loop exits on the next read.
func (c *Context) Close() error {
	return c.c.Close()
}

func (c *Context) next() uint32 {
	return atomic.AddUint32(&c.last, 1)
}

// Error implements DisplayListener. A display error is fatal to the whole
// connection.
func (c *Context) Error(objectID uint32, code uint32, message string) {
	c.Err = errors.Errorf("display error on object %d (code %d): %s", objectID, code, message)
	logrus.WithFields(logrus.Fields{
		"object": objectID,
		"code":   code,
	}).Errorln("wlp:", message)
}

// DeleteID implements DisplayListener, retiring ids the server has released.
func (c *Context) DeleteID(id uint32) {
	delete(c.obj, id)
}

// Global implements RegistryListener and records an advertised global.
func (c *Context) Global(name uint32, iface string, version uint32) {
	glb := global{
		Name:      name,
		Interface: iface,
		Version:   version,
	}
	c.glb[name] = glb
	c.glbByString[iface] = append(c.glbByString[iface], glb)
}

// GlobalRemove implements RegistryListener, dropping a global that
// disappeared (e.g. an unplugged output).
func (c *Context) GlobalRemove(name uint32) {
	glb, exists := c.glb[name]
	if !exists {
		return
	}
	delete(c.glb, name)
	b := c.glbByString[glb.Interface][:0]
	for _, g := range c.glbByString[glb.Interface] {
		if g.Name != name {
			b = append(b, g)
		}
	}
	c.glbByString[glb.Interface] = b
}

// BindGlobalIndex binds the i-th advertised instance of an interface,
// creating its proxy and attaching the listener. The bound version is the
// lower of what the server advertises and what the binding understands.
func (c *Context) BindGlobalIndex(ifname string, listener interface{}, i int) (Object, error) {
	if i >= len(c.glbByString[ifname]) {
		return nil, errors.Errorf("index %d out of range for interface %s", i, ifname)
	}
	fn, known := constructors[ifname]
	if !known {
		return nil, errors.Errorf("no binding for interface %s", ifname)
	}
	glb := c.glbByString[ifname][i]
	version := glb.Version
	if max := interfaceVersions[ifname]; version > max {
		version = max
	}
	o := fn(c)
	err := o.setListener(listener)
	if err != nil {
		return nil, errors.Wrap(err, "invalid listener")
	}
	err = c.Bind(glb.Name, glb.Interface, version, o.ID())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to bind object %s", glb.Interface)
	}
	return o, nil
}

// NumGlobals reports how many instances of an interface the server
// advertised. Zero means the compositor does not support it.
func (c *Context) NumGlobals(ifname string) int {
	return len(c.glbByString[ifname])
}

// BindGlobal binds an interface the server advertises exactly once.
func (c *Context) BindGlobal(ifname string, listener interface{}) (Object, error) {
	if len(c.glbByString[ifname]) != 1 {
		return nil, errors.Errorf("BindGlobal requires exactly one %s instance, have %d",
			ifname, len(c.glbByString[ifname]))
	}
	return c.BindGlobalIndex(ifname, listener, 0)
}
