// Package render provides the drawing backends a window presents through.
//
// A window owns exactly one Renderer for its lifetime. The window tells the
// renderer when the drawable size or transparency changes and hands it one
// Scene per frame; the renderer attaches and damages the surface but never
// commits it, because the window batches the commit with the rest of the
// frame's surface state.
package render

import (
	"github.com/wuliuqii/waywin/geom"
)

// Renderer rasterizes scenes into compositor-visible buffers.
type Renderer interface {
	// UpdateDrawableSize reallocates the backing buffers for a new size in
	// physical pixels. A zero size releases the buffers.
	UpdateDrawableSize(size geom.DeviceSize)

	// UpdateTransparency switches between pixel formats with and without
	// an alpha channel.
	UpdateTransparency(transparent bool)

	// Draw paints one scene into a free buffer and attaches it to the
	// surface. It fails when no buffer is free or the drawable size is
	// unset.
	Draw(scene *Scene) error

	// SpriteAtlas exposes the backend's sprite cache.
	SpriteAtlas() Atlas

	// GPUSpecs describes the device the backend landed on.
	GPUSpecs() GPUSpecs

	// Destroy releases buffers, pools, and mappings. The surface itself
	// stays alive; it belongs to the window.
	Destroy()
}

// Config selects backend behavior at construction.
type Config struct {
	// Transparent requests a pixel format with an alpha channel so the
	// compositor can blend the window against what is behind it.
	Transparent bool
}

// GPUSpecs identifies the device and driver behind a renderer.
type GPUSpecs struct {
	IsSoftwareEmulated bool
	DeviceName         string
	DriverName         string
	DriverInfo         string
}

// Atlas caches rasterized sprites between frames. Clear drops every cached
// entry, typically after a scale change invalidates the rasterizations.
type Atlas interface {
	Clear()
}

// Color is an 8-bit straight-alpha RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Quad is a solid axis-aligned rectangle in physical pixels.
type Quad struct {
	Bounds geom.DeviceBounds
	Color  Color
}

// Scene is one frame's draw list: a background fill and a quad stack painted
// in order on top of it.
type Scene struct {
	Background Color
	Quads      []Quad
}
