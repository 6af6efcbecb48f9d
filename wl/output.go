package wl

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wuliuqii/waywin/wl/wlp"
)

// OutputInfo is a point-in-time snapshot of one output's metadata.
type OutputInfo struct {
	Name        string
	Description string
	Make        string
	Model       string
	X           int32
	Y           int32
	Width       int32
	Height      int32
	Refresh     int32
	Scale       int32
}

// Output mirrors one wl_output global. The compositor streams metadata as
// individual events and marks the atomic end of a batch with Done, so
// snapshots are only settled between Done events.
type Output struct {
	output *wlp.Output

	mu             sync.RWMutex
	x              int32
	y              int32
	physicalWidth  int32
	physicalHeight int32
	subpixel       int32
	maker          string
	model          string
	transform      int32
	modeFlags      uint32
	width          int32
	height         int32
	refresh        int32
	factor         int32
	name           string
	description    string
}

// ID returns the protocol object id, which is what wl_surface enter/leave
// events carry.
func (o *Output) ID() uint32 {
	if o.output == nil {
		return 0
	}
	return o.output.ID()
}

// ScaleFactor returns the output's integer scale. Defaults to 1 until the
// compositor reports otherwise.
func (o *Output) ScaleFactor() int32 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.factor < 1 {
		return 1
	}
	return o.factor
}

// Info returns a snapshot of the output's metadata.
func (o *Output) Info() OutputInfo {
	o.mu.RLock()
	defer o.mu.RUnlock()
	scale := o.factor
	if scale < 1 {
		scale = 1
	}
	return OutputInfo{
		Name:        o.name,
		Description: o.description,
		Make:        o.maker,
		Model:       o.model,
		X:           o.x,
		Y:           o.y,
		Width:       o.width,
		Height:      o.height,
		Refresh:     o.refresh,
		Scale:       scale,
	}
}

// Geometry implements wlp.OutputListener.
func (o *Output) Geometry(x int32, y int32, physicalWidth int32, physicalHeight int32, subpixel int32, maker string, model string, transform int32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.x = x
	o.y = y
	o.physicalWidth = physicalWidth
	o.physicalHeight = physicalHeight
	o.subpixel = subpixel
	o.maker = maker
	o.model = model
	o.transform = transform
}

// Mode implements wlp.OutputListener. Only the current mode is retained;
// compositors may still advertise deprecated non-current modes.
func (o *Output) Mode(flags uint32, width int32, height int32, refresh int32) {
	if flags&wlp.OutputModeCurrent == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.modeFlags = flags
	o.width = width
	o.height = height
	o.refresh = refresh
}

// Done implements wlp.OutputListener.
func (o *Output) Done() {
	o.mu.RLock()
	defer o.mu.RUnlock()
	logrus.WithFields(logrus.Fields{
		"name":  o.name,
		"mode":  [2]int32{o.width, o.height},
		"scale": o.factor,
	}).Debugln("wl: output updated")
}

// Scale implements wlp.OutputListener.
func (o *Output) Scale(factor int32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.factor = factor
}

// Name implements wlp.OutputListener.
func (o *Output) Name(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.name = name
}

// Description implements wlp.OutputListener.
func (o *Output) Description(description string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.description = description
}
