package wl

import (
	"github.com/sirupsen/logrus"

	"github.com/wuliuqii/waywin/event"
	"github.com/wuliuqii/waywin/geom"
)

// Range is a half-open character range in the text a handler edits.
type Range struct {
	Start int
	End   int
}

// Selection is the handler's current selection. Reversed means the caret
// sits at Start rather than End.
type Selection struct {
	Range    Range
	Reversed bool
}

// InputHandler is the text-editing consumer a window forwards IME operations
// to. A nil range targets the current selection. At most one handler is
// attached at a time.
type InputHandler interface {
	ReplaceTextInRange(rng *Range, text string)
	ReplaceAndMarkTextInRange(rng *Range, text string)
	UnmarkText()
	MarkedRange() (Range, bool)
	SelectedRange() (Selection, bool)
	BoundsForRange(rng Range) (geom.Bounds, bool)
}

// ImeOp is the closed set of edit operations the input-method layer can
// apply to a window's handler.
type ImeOp interface {
	imeOp()
}

// ImeInsertText commits text, replacing rng or the current selection.
type ImeInsertText struct {
	Text  string
	Range *Range
}

// ImeSetMarkedText stages pre-edit text, replacing rng or the selection.
type ImeSetMarkedText struct {
	Text  string
	Range *Range
}

// ImeUnmarkText commits whatever pre-edit text is staged.
type ImeUnmarkText struct{}

// ImeDeleteText removes the staged pre-edit text, if any.
type ImeDeleteText struct{}

func (ImeInsertText) imeOp()    {}
func (ImeSetMarkedText) imeOp() {}
func (ImeUnmarkText) imeOp()    {}
func (ImeDeleteText) imeOp()    {}

// SetInputHandler attaches the text-editing consumer.
func (w *Window) SetInputHandler(handler InputHandler) {
	w.mu.Lock()
	w.inputHandler = handler
	w.mu.Unlock()
}

// TakeInputHandler detaches and returns the current consumer.
func (w *Window) TakeInputHandler() InputHandler {
	w.mu.Lock()
	handler := w.inputHandler
	w.inputHandler = nil
	w.mu.Unlock()
	return handler
}

// withInputHandler runs fn with the handler detached from window state, so
// fn may re-enter the facade without observing a half-applied edit. The
// handler is restored afterwards unless something attached a replacement in
// the meantime. Reports whether a handler was attached.
func (w *Window) withInputHandler(fn func(handler InputHandler)) bool {
	w.mu.Lock()
	handler := w.inputHandler
	w.inputHandler = nil
	w.mu.Unlock()
	if handler == nil {
		return false
	}
	fn(handler)
	w.mu.Lock()
	if w.inputHandler == nil {
		w.inputHandler = handler
	}
	w.mu.Unlock()
	return true
}

// HandleInput routes one input event: hover latching, then the registered
// input callback, then, for unhandled key-downs that resolved to a
// character, text insertion through the attached handler.
func (w *Window) HandleInput(ev event.Input) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.latchHoverLocked(ev)
	input := w.callbacks.Input
	w.mu.Unlock()

	handled := false
	if input != nil {
		handled = input(ev)
	}
	w.flush()
	if handled {
		return
	}

	down, ok := ev.(event.KeyDown)
	if !ok || down.Keystroke.KeyChar == "" {
		return
	}
	w.withInputHandler(func(handler InputHandler) {
		handler.ReplaceTextInRange(nil, down.Keystroke.KeyChar)
	})
}

// latchHoverLocked derives the hovered flag from pointer traffic.
func (w *Window) latchHoverLocked(ev event.Input) {
	hovered := w.hovered
	switch ev.(type) {
	case event.MouseMove, event.MouseDown, event.MouseUp, event.ScrollWheel:
		hovered = true
	case event.MouseExited:
		hovered = false
	default:
		return
	}
	if hovered == w.hovered {
		return
	}
	w.hovered = hovered
	w.enqueue(lifecycleMessage{kind: messageHoverStatusChange, hovered: hovered})
}

// HandleIME applies one input-method edit operation to the attached handler.
func (w *Window) HandleIME(op ImeOp) {
	switch op := op.(type) {
	case ImeInsertText:
		w.withInputHandler(func(handler InputHandler) {
			handler.ReplaceTextInRange(op.Range, op.Text)
		})
	case ImeSetMarkedText:
		w.withInputHandler(func(handler InputHandler) {
			handler.ReplaceAndMarkTextInRange(op.Range, op.Text)
		})
	case ImeUnmarkText:
		w.withInputHandler(func(handler InputHandler) {
			handler.UnmarkText()
		})
	case ImeDeleteText:
		w.withInputHandler(func(handler InputHandler) {
			if marked, ok := handler.MarkedRange(); ok {
				handler.ReplaceTextInRange(&marked, "")
			}
		})
	default:
		logrus.WithField("op", op).Warnln("wl: unknown ime operation")
	}
}

// imeArea reports the caret edge of the current selection, which is where a
// candidate window should anchor. Reversed selections carry the caret at
// their start.
func (w *Window) imeArea() (geom.Bounds, bool) {
	var bounds geom.Bounds
	found := false
	w.withInputHandler(func(handler InputHandler) {
		sel, ok := handler.SelectedRange()
		if !ok {
			return
		}
		caret := sel.Range.End
		if sel.Reversed {
			caret = sel.Range.Start
		}
		bounds, found = handler.BoundsForRange(Range{Start: caret, End: caret})
	})
	return bounds, found
}
