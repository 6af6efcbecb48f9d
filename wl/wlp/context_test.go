package wlp

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func socketPair(t *testing.T) (*net.UnixConn, *net.UnixConn) {
	t.Helper()
	fds, err := syscall.Socketpair(syscall.AF_UNIX, syscall.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal(err)
	}
	f0 := os.NewFile(uintptr(fds[0]), "client")
	f1 := os.NewFile(uintptr(fds[1]), "server")
	defer f0.Close()
	defer f1.Close()
	c0, err := net.FileConn(f0)
	if err != nil {
		t.Fatal(err)
	}
	c1, err := net.FileConn(f1)
	if err != nil {
		t.Fatal(err)
	}
	return c0.(*net.UnixConn), c1.(*net.UnixConn)
}

func readMsg(t *testing.T, conn *net.UnixConn) (uint32, uint16, []byte) {
	t.Helper()
	hdr := make([]byte, 8)
	if _, err := io.ReadFull(conn, hdr); err != nil {
		t.Fatal(err)
	}
	id, opcode, size := DecodeHeader(hdr)
	payload := make([]byte, size-8)
	if _, err := io.ReadFull(conn, payload); err != nil {
		t.Fatal(err)
	}
	return id, opcode, payload
}

func TestDecodeHeader(t *testing.T) {
	buf := make([]byte, 8)
	hostByteOrder.PutUint32(buf[0:4], 7)
	hostByteOrder.PutUint32(buf[4:8], uint32(16)<<16|0x0102)
	id, opcode, size := DecodeHeader(buf)
	assert.Equal(t, uint32(7), id)
	assert.Equal(t, uint16(0x0102), opcode)
	assert.Equal(t, 16, size)
}

func TestRequestWireFormat(t *testing.T) {
	client, server := socketPair(t)
	defer client.Close()
	defer server.Close()

	ctx := NewContext(client)
	ctx.Display = newDisplay(ctx).(*Display)
	reg, err := ctx.Display.GetRegistry(ctx)
	assert.NoError(t, err)

	id, opcode, payload := readMsg(t, server)
	assert.Equal(t, ctx.Display.ID(), id)
	assert.Equal(t, uint16(opCodeDisplayGetRegistry), opcode)
	assert.Equal(t, reg.ID(), hostByteOrder.Uint32(payload))
}

func TestStringArgumentPadding(t *testing.T) {
	client, server := socketPair(t)
	defer client.Close()
	defer server.Close()

	ctx := NewContext(client)
	tl := newXdgToplevel(ctx).(*XdgToplevel)
	assert.NoError(t, tl.SetTitle("panel"))

	_, opcode, payload := readMsg(t, server)
	assert.Equal(t, uint16(opCodeXdgToplevelSetTitle), opcode)
	assert.Equal(t, uint32(6), hostByteOrder.Uint32(payload[0:4]))
	assert.Equal(t, "panel\x00", string(payload[4:10]))
	assert.Equal(t, []byte{0, 0}, payload[10:12])
	assert.Len(t, payload, 12)
}

type configureRecorder struct {
	width  int32
	height int32
	states []byte
	closed bool
}

func (r *configureRecorder) Configure(width int32, height int32, states []byte) {
	r.width, r.height, r.states = width, height, states
}

func (r *configureRecorder) Close() {
	r.closed = true
}

func (r *configureRecorder) ConfigureBounds(width int32, height int32) {}

func (r *configureRecorder) WmCapabilities(capabilities []byte) {}

func TestToplevelConfigureDecode(t *testing.T) {
	ctx := NewContext(nil)
	rec := &configureRecorder{}
	tl := newXdgToplevel(ctx).(*XdgToplevel)
	tl.l = rec

	payload := &bytes.Buffer{}
	binary.Write(payload, hostByteOrder, int32(800))
	binary.Write(payload, hostByteOrder, int32(600))
	binary.Write(payload, hostByteOrder, uint32(8))
	binary.Write(payload, hostByteOrder, uint32(XdgToplevelStateMaximized))
	binary.Write(payload, hostByteOrder, uint32(XdgToplevelStateActivated))
	tl.dispatch(opCodeXdgToplevelConfigure, payload.Bytes(), nil)

	assert.Equal(t, int32(800), rec.width)
	assert.Equal(t, int32(600), rec.height)
	assert.Len(t, rec.states, 8)
	assert.Equal(t, uint32(XdgToplevelStateMaximized), hostByteOrder.Uint32(rec.states[0:4]))
	assert.Equal(t, uint32(XdgToplevelStateActivated), hostByteOrder.Uint32(rec.states[4:8]))
	assert.False(t, rec.closed)

	tl.dispatch(opCodeXdgToplevelClose, nil, nil)
	assert.True(t, rec.closed)
}

type doneRecorder struct {
	ch chan uint32
}

func (r *doneRecorder) Done(callbackData uint32) {
	r.ch <- callbackData
}

func TestReadLoopReassemblesSplitMessages(t *testing.T) {
	client, server := socketPair(t)
	defer client.Close()
	defer server.Close()

	ctx := NewContext(client)
	rec := &doneRecorder{ch: make(chan uint32, 2)}
	cb := newCallback(ctx).(*Callback)
	cb.l = rec
	go ctx.readLoop()

	msg := make([]byte, 12)
	hostByteOrder.PutUint32(msg[0:4], cb.ID())
	hostByteOrder.PutUint32(msg[4:8], uint32(12)<<16|opCodeCallbackDone)
	hostByteOrder.PutUint32(msg[8:12], 42)

	if _, err := server.Write(msg[:5]); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := server.Write(msg[5:]); err != nil {
		t.Fatal(err)
	}

	select {
	case serial := <-rec.ch:
		assert.Equal(t, uint32(42), serial)
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
}

type seatRecorder struct{}

func (seatRecorder) Capabilities(capabilities uint32) {}

func (seatRecorder) Name(name string) {}

func TestGlobalRegistry(t *testing.T) {
	client, server := socketPair(t)
	defer client.Close()
	defer server.Close()

	ctx := NewContext(client)
	ctx.Display = newDisplay(ctx).(*Display)
	ctx.Registry, _ = ctx.Display.GetRegistry(ctx)
	readMsg(t, server)

	ctx.Global(1, "wl_compositor", 6)
	ctx.Global(2, "wl_output", 4)
	ctx.Global(3, "wl_output", 4)
	assert.Equal(t, 1, ctx.NumGlobals("wl_compositor"))
	assert.Equal(t, 2, ctx.NumGlobals("wl_output"))
	assert.Equal(t, 0, ctx.NumGlobals("wp_viewporter"))

	_, err := ctx.BindGlobal("wl_output", nil)
	assert.Error(t, err)

	obj, err := ctx.BindGlobal("wl_compositor", struct{}{})
	assert.NoError(t, err)
	assert.Equal(t, "wl_compositor", obj.Type())
	readMsg(t, server)

	ctx.GlobalRemove(3)
	assert.Equal(t, 1, ctx.NumGlobals("wl_output"))
}

func TestBindCapsVersionAtBinding(t *testing.T) {
	client, server := socketPair(t)
	defer client.Close()
	defer server.Close()

	ctx := NewContext(client)
	ctx.Display = newDisplay(ctx).(*Display)
	ctx.Registry, _ = ctx.Display.GetRegistry(ctx)
	readMsg(t, server)

	// The server claims a seat version newer than the binding knows.
	ctx.Global(9, "wl_seat", 9)
	obj, err := ctx.BindGlobal("wl_seat", seatRecorder{})
	assert.NoError(t, err)

	_, opcode, payload := readMsg(t, server)
	assert.Equal(t, uint16(opCodeRegistryBind), opcode)
	buf := bytes.NewBuffer(payload)
	assert.Equal(t, uint32(9), hostByteOrder.Uint32(buf.Next(4)))
	slen := int(hostByteOrder.Uint32(buf.Next(4)))
	assert.Equal(t, "wl_seat", string(buf.Next(slen)[:slen-1]))
	if slen%4 != 0 {
		buf.Next(4 - slen%4)
	}
	assert.Equal(t, uint32(5), hostByteOrder.Uint32(buf.Next(4)))
	assert.Equal(t, obj.ID(), hostByteOrder.Uint32(buf.Next(4)))
}
