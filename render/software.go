package render

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/wuliuqii/waywin/geom"
	"github.com/wuliuqii/waywin/wl/wlp"
)

// bufferCount is how many wl_buffers share the pool. Two is enough to paint
// one frame while the compositor still scans out the previous one.
const bufferCount = 2

// Software is a CPU renderer backed by wl_shm. All buffers live side by side
// in a single memfd-backed pool that is mapped once and reallocated whenever
// the drawable size or pixel format changes.
type Software struct {
	shm     *wlp.Shm
	surface *wlp.Surface

	size        geom.DeviceSize
	transparent bool

	file    *os.File
	data    []byte
	pool    *wlp.ShmPool
	buffers [bufferCount]*swBuffer

	atlas *swAtlas
}

// swBuffer pairs a wl_buffer with its byte offset into the mapped pool. busy
// is set on attach and cleared by the compositor's release event.
type swBuffer struct {
	buf    *wlp.Buffer
	offset int
	busy   bool
}

// Release implements wlp.BufferListener.
func (b *swBuffer) Release() {
	b.busy = false
}

var _ Renderer = (*Software)(nil)

// NewSoftware builds a CPU renderer drawing into the given surface. size may
// be zero; buffers are then allocated by the first UpdateDrawableSize.
func NewSoftware(shm *wlp.Shm, surface *wlp.Surface, size geom.DeviceSize, config Config) (*Software, error) {
	if shm == nil {
		return nil, errors.New("software rendering requires the wl_shm global")
	}
	r := &Software{
		shm:         shm,
		surface:     surface,
		transparent: config.Transparent,
		atlas:       &swAtlas{},
	}
	if err := r.allocate(size); err != nil {
		r.release()
		return nil, err
	}
	return r, nil
}

// allocate tears down the current pool and builds one for the new size.
func (r *Software) allocate(size geom.DeviceSize) error {
	r.release()
	r.size = size
	if size.Width <= 0 || size.Height <= 0 {
		return nil
	}
	stride := int(size.Width) * 4
	bufLen := stride * int(size.Height)
	total := bufLen * bufferCount

	fd, err := unix.MemfdCreate("waywin-shm", unix.MFD_CLOEXEC)
	if err != nil {
		return errors.Wrap(err, "memfd_create failed")
	}
	if err := unix.Ftruncate(fd, int64(total)); err != nil {
		unix.Close(fd)
		return errors.Wrap(err, "unable to size shm file")
	}
	data, err := unix.Mmap(fd, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return errors.Wrap(err, "unable to map shm file")
	}
	file := os.NewFile(uintptr(fd), "waywin-shm")
	pool, err := r.shm.CreatePool(r, file, int32(total))
	if err != nil {
		unix.Munmap(data)
		file.Close()
		return errors.Wrap(err, "unable to create shm pool")
	}
	r.file = file
	r.data = data
	r.pool = pool

	format := uint32(wlp.ShmFormatXrgb8888)
	if r.transparent {
		format = wlp.ShmFormatArgb8888
	}
	for i := range r.buffers {
		b := &swBuffer{offset: i * bufLen}
		wb, err := pool.CreateBuffer(b, int32(b.offset), int32(size.Width), int32(size.Height), int32(stride), format)
		if err != nil {
			return errors.Wrap(err, "unable to create shm buffer")
		}
		b.buf = wb
		r.buffers[i] = b
	}
	return nil
}

// release destroys buffers and pool and unmaps the file. Safe to call with
// nothing allocated.
func (r *Software) release() {
	for i, b := range r.buffers {
		if b == nil {
			continue
		}
		if err := b.buf.Destroy(); err != nil {
			logrus.WithField("error", err).Debugln("unable to destroy shm buffer")
		}
		r.buffers[i] = nil
	}
	if r.pool != nil {
		if err := r.pool.Destroy(); err != nil {
			logrus.WithField("error", err).Debugln("unable to destroy shm pool")
		}
		r.pool = nil
	}
	if r.data != nil {
		if err := unix.Munmap(r.data); err != nil {
			logrus.WithField("error", err).Debugln("unable to unmap shm file")
		}
		r.data = nil
	}
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
}

// UpdateDrawableSize implements Renderer.
func (r *Software) UpdateDrawableSize(size geom.DeviceSize) {
	if size == r.size {
		return
	}
	if err := r.allocate(size); err != nil {
		logrus.WithField("error", err).Errorln("unable to resize drawable")
	}
}

// UpdateTransparency implements Renderer. Changing transparency changes the
// buffer format, so the pool is rebuilt.
func (r *Software) UpdateTransparency(transparent bool) {
	if transparent == r.transparent {
		return
	}
	r.transparent = transparent
	if err := r.allocate(r.size); err != nil {
		logrus.WithField("error", err).Errorln("unable to switch buffer format")
	}
}

// Draw implements Renderer.
func (r *Software) Draw(scene *Scene) error {
	if r.size.Width <= 0 || r.size.Height <= 0 {
		return errors.New("drawable size is not set")
	}
	b := r.freeBuffer()
	if b == nil {
		return errors.New("compositor holds all buffers")
	}
	stride := int(r.size.Width) * 4
	pix := r.data[b.offset : b.offset+stride*int(r.size.Height)]
	r.fill(pix, scene.Background)
	for _, q := range scene.Quads {
		r.paintQuad(pix, stride, q)
	}
	if err := r.surface.Attach(b.buf.ID(), 0, 0); err != nil {
		return errors.Wrap(err, "unable to attach buffer")
	}
	if err := r.surface.DamageBuffer(0, 0, int32(r.size.Width), int32(r.size.Height)); err != nil {
		return errors.Wrap(err, "unable to damage buffer")
	}
	b.busy = true
	return nil
}

func (r *Software) freeBuffer() *swBuffer {
	for _, b := range r.buffers {
		if b != nil && !b.busy {
			return b
		}
	}
	return nil
}

// fill writes the background color into every pixel. Buffers are little
// endian ARGB, so bytes run B, G, R, A in memory.
func (r *Software) fill(pix []byte, c Color) {
	a := c.A
	if !r.transparent {
		a = 0xFF
	}
	for i := 0; i < len(pix); i += 4 {
		pix[i] = c.B
		pix[i+1] = c.G
		pix[i+2] = c.R
		pix[i+3] = a
	}
}

// paintQuad fills the quad's bounds, clipped to the buffer.
func (r *Software) paintQuad(pix []byte, stride int, q Quad) {
	x0 := clamp(int(q.Bounds.Origin.X), 0, int(r.size.Width))
	y0 := clamp(int(q.Bounds.Origin.Y), 0, int(r.size.Height))
	x1 := clamp(int(q.Bounds.Origin.X)+int(q.Bounds.Size.Width), 0, int(r.size.Width))
	y1 := clamp(int(q.Bounds.Origin.Y)+int(q.Bounds.Size.Height), 0, int(r.size.Height))
	for y := y0; y < y1; y++ {
		row := pix[y*stride : y*stride+stride]
		for x := x0; x < x1; x++ {
			i := x * 4
			row[i] = q.Color.B
			row[i+1] = q.Color.G
			row[i+2] = q.Color.R
			row[i+3] = q.Color.A
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SpriteAtlas implements Renderer.
func (r *Software) SpriteAtlas() Atlas {
	return r.atlas
}

// GPUSpecs implements Renderer.
func (r *Software) GPUSpecs() GPUSpecs {
	return GPUSpecs{
		IsSoftwareEmulated: true,
		DeviceName:         "wl_shm",
		DriverName:         "software",
		DriverInfo:         "memfd double buffer",
	}
}

// Destroy implements Renderer.
func (r *Software) Destroy() {
	r.release()
	r.size = geom.DeviceSize{}
}

// swAtlas fulfills the atlas contract for the software path, which repaints
// every frame and caches nothing between them.
type swAtlas struct{}

func (a *swAtlas) Clear() {}
