package wl

import (
	"github.com/wuliuqii/waywin/geom"
)

// computeOuterSize turns a compositor-suggested size into the outer
// (decorated) window size. The suggestion describes the area left for the
// window content, so the client-side decoration inset is added back on every
// edge that is not tiled; tiled edges sit flush against a workspace boundary
// and draw no decoration. With no inset reported yet this is the identity.
func computeOuterSize(inset geom.Pixels, insetSet bool, suggested geom.Size, tiling geom.Edges) geom.Size {
	if !insetSet {
		return suggested
	}
	out := suggested
	if !tiling.Top {
		out.Height += inset
	}
	if !tiling.Bottom {
		out.Height += inset
	}
	if !tiling.Left {
		out.Width += inset
	}
	if !tiling.Right {
		out.Width += inset
	}
	return out
}

// insetWindowGeometry shrinks the outer bounds inward by the decoration
// inset on every non-tiled edge, yielding the geometry declared to the
// compositor. Declared dimensions clamp to 1 because zero or negative window
// geometry is a protocol violation.
func insetWindowGeometry(bounds geom.Bounds, inset geom.Pixels, insetSet bool, tiling geom.Edges) geom.Bounds {
	out := bounds
	if insetSet {
		if !tiling.Top {
			out.Origin.Y += inset
			out.Size.Height -= inset
		}
		if !tiling.Bottom {
			out.Size.Height -= inset
		}
		if !tiling.Left {
			out.Origin.X += inset
			out.Size.Width -= inset
		}
		if !tiling.Right {
			out.Size.Width -= inset
		}
	}
	if out.Size.Width < 1 {
		out.Size.Width = 1
	}
	if out.Size.Height < 1 {
		out.Size.Height = 1
	}
	return out
}

// insetAllEdges shrinks bounds inward by the same amount on all four sides.
// Used for the opaque-region hint, which must stay inside the content area.
func insetAllEdges(bounds geom.Bounds, inset geom.Pixels) geom.Bounds {
	out := bounds
	out.Origin.X += inset
	out.Origin.Y += inset
	out.Size.Width -= 2 * inset
	out.Size.Height -= 2 * inset
	if out.Size.Width < 0 {
		out.Size.Width = 0
	}
	if out.Size.Height < 0 {
		out.Size.Height = 0
	}
	return out
}
