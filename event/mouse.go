package event

import "github.com/wuliuqii/waywin/geom"

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
)

// MouseDown is a button press at a surface-local position.
type MouseDown struct {
	Button     MouseButton
	Position   geom.Point
	Modifiers  Modifiers
	ClickCount int
}

// MouseUp is a button release.
type MouseUp struct {
	Button     MouseButton
	Position   geom.Point
	Modifiers  Modifiers
	ClickCount int
}

// MouseMove is a pointer motion. Pressed is nil when no button is held.
type MouseMove struct {
	Position  geom.Point
	Pressed   *MouseButton
	Modifiers Modifiers
}

// MouseExited reports the pointer leaving the surface.
type MouseExited struct {
	Position  geom.Point
	Modifiers Modifiers
}

// ScrollWheel is a scroll step; Delta is in logical pixels.
type ScrollWheel struct {
	Position  geom.Point
	Delta     geom.Point
	Modifiers Modifiers
}

func (MouseDown) inputEvent()   {}
func (MouseUp) inputEvent()     {}
func (MouseMove) inputEvent()   {}
func (MouseExited) inputEvent() {}
func (ScrollWheel) inputEvent() {}
