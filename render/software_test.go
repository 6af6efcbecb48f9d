package render

import (
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/wuliuqii/waywin/geom"
	"github.com/wuliuqii/waywin/wl/wlp"
)

type nullShm struct{}

func (nullShm) Format(format uint32) {}

type nullSurface struct{}

func (nullSurface) Enter(output uint32)                       {}
func (nullSurface) Leave(output uint32)                       {}
func (nullSurface) PreferredBufferScale(factor int32)         {}
func (nullSurface) PreferredBufferTransform(transform uint32) {}

func fdConn(t *testing.T, fd int) *net.UnixConn {
	t.Helper()
	f := os.NewFile(uintptr(fd), "socket")
	defer f.Close()
	conn, err := net.FileConn(f)
	assert.NoError(t, err)
	return conn.(*net.UnixConn)
}

// renderTargets binds wl_shm and a wl_surface over one end of a socketpair.
// Nothing services the far end; requests just queue in the socket buffer.
func renderTargets(t *testing.T) (*wlp.Shm, *wlp.Surface) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	assert.NoError(t, err)
	client := fdConn(t, fds[0])
	server := fdConn(t, fds[1])
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})

	ctx := wlp.NewContext(client)
	ctx.Start()
	ctx.Global(1, "wl_compositor", 6)
	ctx.Global(2, "wl_shm", 1)

	obj, err := ctx.BindGlobal("wl_shm", nullShm{})
	assert.NoError(t, err)
	shm := obj.(*wlp.Shm)

	obj, err = ctx.BindGlobal("wl_compositor", struct{}{})
	assert.NoError(t, err)
	surface, err := obj.(*wlp.Compositor).CreateSurface(nullSurface{})
	assert.NoError(t, err)
	return shm, surface
}

func TestNewSoftwareRequiresShm(t *testing.T) {
	_, err := NewSoftware(nil, nil, geom.DeviceSize{Width: 1, Height: 1}, Config{})
	assert.Error(t, err)
}

func TestSoftwareDraw(t *testing.T) {
	shm, surface := renderTargets(t)
	r, err := NewSoftware(shm, surface, geom.DeviceSize{Width: 8, Height: 4}, Config{Transparent: true})
	assert.NoError(t, err)
	defer r.Destroy()

	scene := &Scene{
		Background: Color{R: 10, G: 20, B: 30, A: 200},
		Quads: []Quad{{
			Bounds: geom.DeviceBounds{
				Origin: geom.DevicePoint{X: 2, Y: 1},
				Size:   geom.DeviceSize{Width: 3, Height: 2},
			},
			Color: Color{R: 255, G: 0, B: 0, A: 255},
		}},
	}
	assert.NoError(t, r.Draw(scene))

	stride := 8 * 4
	pix := r.data[r.buffers[0].offset:]
	// Little endian ARGB: bytes run B, G, R, A.
	assert.Equal(t, []byte{30, 20, 10, 200}, pix[0:4])
	i := 1*stride + 2*4
	assert.Equal(t, []byte{0, 0, 255, 255}, pix[i:i+4])
	i = 1*stride + 5*4
	assert.Equal(t, []byte{30, 20, 10, 200}, pix[i:i+4])
}

func TestSoftwareOpaqueForcesAlpha(t *testing.T) {
	shm, surface := renderTargets(t)
	r, err := NewSoftware(shm, surface, geom.DeviceSize{Width: 2, Height: 2}, Config{})
	assert.NoError(t, err)
	defer r.Destroy()

	assert.NoError(t, r.Draw(&Scene{Background: Color{R: 1, G: 2, B: 3, A: 10}}))
	pix := r.data[r.buffers[0].offset:]
	assert.Equal(t, []byte{3, 2, 1, 0xFF}, pix[0:4])
}

func TestSoftwareClipsQuads(t *testing.T) {
	shm, surface := renderTargets(t)
	r, err := NewSoftware(shm, surface, geom.DeviceSize{Width: 4, Height: 4}, Config{})
	assert.NoError(t, err)
	defer r.Destroy()

	scene := &Scene{
		Quads: []Quad{{
			Bounds: geom.DeviceBounds{
				Origin: geom.DevicePoint{X: -2, Y: 3},
				Size:   geom.DeviceSize{Width: 10, Height: 10},
			},
			Color: Color{R: 9, G: 9, B: 9, A: 255},
		}},
	}
	assert.NoError(t, r.Draw(scene))

	stride := 4 * 4
	pix := r.data[r.buffers[0].offset:]
	assert.Equal(t, byte(9), pix[3*stride])
	assert.Equal(t, byte(0), pix[2*stride])
}

func TestSoftwareBufferRotation(t *testing.T) {
	shm, surface := renderTargets(t)
	r, err := NewSoftware(shm, surface, geom.DeviceSize{Width: 2, Height: 2}, Config{})
	assert.NoError(t, err)
	defer r.Destroy()

	scene := &Scene{}
	assert.NoError(t, r.Draw(scene))
	assert.True(t, r.buffers[0].busy)
	assert.NoError(t, r.Draw(scene))
	assert.True(t, r.buffers[1].busy)

	// Both buffers are with the compositor now.
	assert.Error(t, r.Draw(scene))

	r.buffers[0].Release()
	assert.NoError(t, r.Draw(scene))
	assert.True(t, r.buffers[0].busy)
}

func TestSoftwareResize(t *testing.T) {
	shm, surface := renderTargets(t)
	r, err := NewSoftware(shm, surface, geom.DeviceSize{}, Config{})
	assert.NoError(t, err)
	defer r.Destroy()

	// No drawable size yet.
	assert.Error(t, r.Draw(&Scene{}))

	size := geom.DeviceSize{Width: 8, Height: 8}
	r.UpdateDrawableSize(size)
	assert.Equal(t, 8*4*8*bufferCount, len(r.data))
	assert.NoError(t, r.Draw(&Scene{}))

	// Same size is a no-op; in-flight buffers stay attached.
	r.UpdateDrawableSize(size)
	assert.True(t, r.buffers[0].busy)

	r.UpdateDrawableSize(geom.DeviceSize{Width: 4, Height: 4})
	assert.Equal(t, 4*4*4*bufferCount, len(r.data))
	assert.False(t, r.buffers[0].busy)
}

func TestSoftwareTransparencySwitch(t *testing.T) {
	shm, surface := renderTargets(t)
	r, err := NewSoftware(shm, surface, geom.DeviceSize{Width: 2, Height: 2}, Config{})
	assert.NoError(t, err)
	defer r.Destroy()

	assert.NoError(t, r.Draw(&Scene{}))
	r.UpdateTransparency(true)
	assert.True(t, r.transparent)
	assert.False(t, r.buffers[0].busy)

	assert.NoError(t, r.Draw(&Scene{Background: Color{A: 7}}))
	pix := r.data[r.buffers[0].offset:]
	assert.Equal(t, byte(7), pix[3])
}

func TestSoftwareDestroy(t *testing.T) {
	shm, surface := renderTargets(t)
	r, err := NewSoftware(shm, surface, geom.DeviceSize{Width: 2, Height: 2}, Config{})
	assert.NoError(t, err)

	specs := r.GPUSpecs()
	assert.True(t, specs.IsSoftwareEmulated)
	assert.NotNil(t, r.SpriteAtlas())

	r.Destroy()
	assert.Nil(t, r.data)
	assert.Nil(t, r.pool)
	assert.Error(t, r.Draw(&Scene{}))
}
