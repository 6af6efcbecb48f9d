// Package geom provides the logical and device pixel units shared by the
// window state machine, the protocol layer, and the renderer.
//
// Logical units (Pixels) are what the toolkit reasons in; device units
// (DevicePixels) are what buffers are allocated in. The two are related by a
// window's scale factor, which may be fractional.
package geom

import "math"

// Pixels is a logical display unit. One logical pixel maps to `scale`
// physical pixels on the output the window is shown on.
type Pixels float32

// DevicePixels is a physical pixel count on some output.
type DevicePixels int32

// Size is a width/height pair in logical units.
type Size struct {
	Width  Pixels
	Height Pixels
}

// Point is a position in logical units.
type Point struct {
	X Pixels
	Y Pixels
}

// Bounds is an origin plus a size in logical units.
type Bounds struct {
	Origin Point
	Size   Size
}

// DeviceSize is a width/height pair in physical pixels.
type DeviceSize struct {
	Width  DevicePixels
	Height DevicePixels
}

// DevicePoint is a position in physical pixels, relative to a buffer origin.
type DevicePoint struct {
	X DevicePixels
	Y DevicePixels
}

// DeviceBounds is an origin plus a size in physical pixels.
type DeviceBounds struct {
	Origin DevicePoint
	Size   DeviceSize
}

// SizeOf is shorthand for constructing a Size.
func SizeOf(w, h Pixels) Size {
	return Size{Width: w, Height: h}
}

// BoundsOf is shorthand for constructing a Bounds at an origin.
func BoundsOf(x, y, w, h Pixels) Bounds {
	return Bounds{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// ScaleBy converts a logical size to physical pixels, rounding to nearest.
func (s Size) ScaleBy(scale float32) DeviceSize {
	return DeviceSize{
		Width:  DevicePixels(math.Round(float64(s.Width) * float64(scale))),
		Height: DevicePixels(math.Round(float64(s.Height) * float64(scale))),
	}
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ScaleBy converts logical bounds to a physical size, dropping the origin.
// Compositor surfaces have no global position, so only the extent survives
// the conversion.
func (b Bounds) ScaleBy(scale float32) DeviceSize {
	return b.Size.ScaleBy(scale)
}

// Edges marks the four sides of a window. It is used both for tiling state
// (which sides are snapped against a workspace boundary) and for resize-edge
// selection.
type Edges struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// AllEdges returns an Edges value with every side set.
func AllEdges() Edges {
	return Edges{Top: true, Bottom: true, Left: true, Right: true}
}

// All reports whether every side is set.
func (e Edges) All() bool {
	return e.Top && e.Bottom && e.Left && e.Right
}

// Any reports whether at least one side is set.
func (e Edges) Any() bool {
	return e.Top || e.Bottom || e.Left || e.Right
}
