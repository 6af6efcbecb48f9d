package wl

import (
	"github.com/wuliuqii/waywin/event"
	"github.com/wuliuqii/waywin/geom"
)

// Callbacks holds the window's registered lifecycle handlers, at most one
// per kind. Registering replaces; a nil handler means the event is dropped.
// Input and ShouldClose return decisions so they are invoked synchronously
// (with the window lock released); everything else is delivered through the
// outbound message queue after the protocol handler that produced it.
type Callbacks struct {
	RequestFrame       func()
	Input              func(ev event.Input) bool
	ActiveStatusChange func(active bool)
	HoverStatusChange  func(hovered bool)
	Resize             func(size geom.Size, scale float32)
	Moved              func()
	ShouldClose        func() bool
	Close              func()
	AppearanceChanged  func()
}

type lifecycleKind int

const (
	messageRequestFrame lifecycleKind = iota
	messageActiveStatusChange
	messageHoverStatusChange
	messageResize
	messageMoved
	messageAppearanceChanged
)

// lifecycleMessage is one queued outbound notification. Only the fields the
// kind needs are set.
type lifecycleMessage struct {
	kind    lifecycleKind
	active  bool
	hovered bool
	size    geom.Size
	scale   float32
}

// enqueue stages an outbound message. Callers hold the window lock; delivery
// happens in flush once the lock is released.
func (w *Window) enqueue(msg lifecycleMessage) {
	w.pending.Push(msg)
}

// flush delivers queued lifecycle messages. It must be called without the
// window lock held. Handlers may call back into the facade; messages they
// enqueue are delivered in the same drain, and the flushing flag keeps a
// nested facade call from starting a second drain.
func (w *Window) flush() {
	w.mu.Lock()
	if w.flushing {
		w.mu.Unlock()
		return
	}
	w.flushing = true
	w.mu.Unlock()

	w.pending.Drain(func(msg lifecycleMessage) {
		w.deliver(msg)
	})

	w.mu.Lock()
	w.flushing = false
	w.mu.Unlock()
}

func (w *Window) deliver(msg lifecycleMessage) {
	w.mu.Lock()
	cbs := w.callbacks
	w.mu.Unlock()

	switch msg.kind {
	case messageRequestFrame:
		if cbs.RequestFrame != nil {
			cbs.RequestFrame()
		}
	case messageActiveStatusChange:
		if cbs.ActiveStatusChange != nil {
			cbs.ActiveStatusChange(msg.active)
		}
	case messageHoverStatusChange:
		if cbs.HoverStatusChange != nil {
			cbs.HoverStatusChange(msg.hovered)
		}
	case messageResize:
		if cbs.Resize != nil {
			cbs.Resize(msg.size, msg.scale)
		}
	case messageMoved:
		if cbs.Moved != nil {
			cbs.Moved()
		}
	case messageAppearanceChanged:
		if cbs.AppearanceChanged != nil {
			cbs.AppearanceChanged()
		}
	}
}

// OnRequestFrame registers the handler asked to produce a frame.
func (w *Window) OnRequestFrame(fn func()) {
	w.mu.Lock()
	w.callbacks.RequestFrame = fn
	w.mu.Unlock()
}

// OnInput registers the input handler. Returning true stops propagation to
// the IME text-insertion fallback.
func (w *Window) OnInput(fn func(ev event.Input) bool) {
	w.mu.Lock()
	w.callbacks.Input = fn
	w.mu.Unlock()
}

// OnActiveStatusChange registers the focus-change handler.
func (w *Window) OnActiveStatusChange(fn func(active bool)) {
	w.mu.Lock()
	w.callbacks.ActiveStatusChange = fn
	w.mu.Unlock()
}

// OnHoverStatusChange registers the pointer-hover handler.
func (w *Window) OnHoverStatusChange(fn func(hovered bool)) {
	w.mu.Lock()
	w.callbacks.HoverStatusChange = fn
	w.mu.Unlock()
}

// OnResize registers the handler for size or scale changes.
func (w *Window) OnResize(fn func(size geom.Size, scale float32)) {
	w.mu.Lock()
	w.callbacks.Resize = fn
	w.mu.Unlock()
}

// OnMoved registers the handler for display changes. Wayland never reports
// a global position, so this fires when the primary output changes.
func (w *Window) OnMoved(fn func()) {
	w.mu.Lock()
	w.callbacks.Moved = fn
	w.mu.Unlock()
}

// OnShouldClose registers the predicate consulted when the compositor asks
// the window to close. Absent a predicate the window closes.
func (w *Window) OnShouldClose(fn func() bool) {
	w.mu.Lock()
	w.callbacks.ShouldClose = fn
	w.mu.Unlock()
}

// OnClose registers the handler that runs after teardown, from the client's
// deferred-task queue.
func (w *Window) OnClose(fn func()) {
	w.mu.Lock()
	w.callbacks.Close = fn
	w.mu.Unlock()
}

// OnAppearanceChanged registers the handler for decoration-mode and
// window-control changes.
func (w *Window) OnAppearanceChanged(fn func()) {
	w.mu.Lock()
	w.callbacks.AppearanceChanged = fn
	w.mu.Unlock()
}
