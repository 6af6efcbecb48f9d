package wl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wuliuqii/waywin/wl/wlp"
)

// ErrNotSupported marks operations this client recognizes but does not
// implement. Callers can test for it with errors.Cause.
var ErrNotSupported = errors.New("not supported")

type surfaceKind int

const (
	surfaceNormal surfaceKind = iota
	surfaceLayer
	surfacePopup
)

// SurfaceVariant is the closed set of shell roles a window's wl_surface can
// take. Exactly one variant's fields are populated; the accessors report
// whether the reference is valid for the active kind.
type SurfaceVariant struct {
	kind       surfaceKind
	xdg        *wlp.XdgSurface
	toplevel   *wlp.XdgToplevel
	decoration *wlp.ZxdgToplevelDecorationV1
	layer      *wlp.ZwlrLayerSurfaceV1
	popup      *wlp.XdgPopup
}

func normalVariant(xdg *wlp.XdgSurface, toplevel *wlp.XdgToplevel, decoration *wlp.ZxdgToplevelDecorationV1) SurfaceVariant {
	return SurfaceVariant{
		kind:       surfaceNormal,
		xdg:        xdg,
		toplevel:   toplevel,
		decoration: decoration,
	}
}

func layerVariant(layer *wlp.ZwlrLayerSurfaceV1) SurfaceVariant {
	return SurfaceVariant{
		kind:  surfaceLayer,
		layer: layer,
	}
}

// BaseSurface returns the xdg_surface for roles that negotiate through one.
func (v *SurfaceVariant) BaseSurface() (*wlp.XdgSurface, bool) {
	switch v.kind {
	case surfaceNormal, surfacePopup:
		return v.xdg, v.xdg != nil
	case surfaceLayer:
		return nil, false
	}
	return nil, false
}

// Toplevel returns the xdg_toplevel for normal windows.
func (v *SurfaceVariant) Toplevel() (*wlp.XdgToplevel, bool) {
	if v.kind != surfaceNormal {
		return nil, false
	}
	return v.toplevel, v.toplevel != nil
}

// Decoration returns the decoration object, present only on normal windows
// created while the compositor advertised zxdg_decoration_manager_v1.
func (v *SurfaceVariant) Decoration() (*wlp.ZxdgToplevelDecorationV1, bool) {
	if v.kind != surfaceNormal {
		return nil, false
	}
	return v.decoration, v.decoration != nil
}

// Layer returns the zwlr_layer_surface for layer-shell windows.
func (v *SurfaceVariant) Layer() (*wlp.ZwlrLayerSurfaceV1, bool) {
	if v.kind != surfaceLayer {
		return nil, false
	}
	return v.layer, v.layer != nil
}

// teardown destroys the variant's protocol objects. Role objects go before
// the xdg_surface that carries them. Nil-ing makes a second call a no-op.
func (v *SurfaceVariant) teardown() {
	switch v.kind {
	case surfaceNormal:
		if v.decoration != nil {
			logDestroy("decoration", v.decoration.Destroy())
			v.decoration = nil
		}
		if v.toplevel != nil {
			logDestroy("toplevel", v.toplevel.Destroy())
			v.toplevel = nil
		}
		if v.xdg != nil {
			logDestroy("xdg surface", v.xdg.Destroy())
			v.xdg = nil
		}
	case surfaceLayer:
		if v.layer != nil {
			logDestroy("layer surface", v.layer.Destroy())
			v.layer = nil
		}
	case surfacePopup:
		if v.popup != nil {
			logDestroy("popup", v.popup.Destroy())
			v.popup = nil
		}
		if v.xdg != nil {
			logDestroy("xdg surface", v.xdg.Destroy())
			v.xdg = nil
		}
	}
}

func logDestroy(what string, err error) {
	if err != nil {
		logrus.WithField("error", err).Debugln("wl: unable to destroy", what)
	}
}
