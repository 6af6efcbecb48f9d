// Package event carries the input events a window delivers to its owner and
// the queues the windowing layer defers work through.
package event

// Input is a platform input event. A window's input callback receives these
// and reports whether it consumed the event.
type Input interface {
	inputEvent()
}

// Modifiers is the chord of modifier keys held during an input event.
// Platform is the super/logo key.
type Modifiers struct {
	Control  bool
	Alt      bool
	Shift    bool
	Platform bool
	Function bool
}

// Any reports whether any modifier is held.
func (m Modifiers) Any() bool {
	return m.Control || m.Alt || m.Shift || m.Platform || m.Function
}
