package wl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wuliuqii/waywin/event"
	"github.com/wuliuqii/waywin/geom"
)

// recordingHandler captures every edit the window forwards. BoundsForRange
// reports a caret-sized rectangle whose X encodes the range start, so tests
// can tell which caret was measured.
type recordingHandler struct {
	inserted  []string
	marked    []string
	unmarked  int
	markedRng *Range
	selection *Selection
}

func (h *recordingHandler) ReplaceTextInRange(rng *Range, text string) {
	h.inserted = append(h.inserted, text)
}

func (h *recordingHandler) ReplaceAndMarkTextInRange(rng *Range, text string) {
	h.marked = append(h.marked, text)
	h.markedRng = &Range{Start: 0, End: len(text)}
}

func (h *recordingHandler) UnmarkText() {
	h.unmarked++
	h.markedRng = nil
}

func (h *recordingHandler) MarkedRange() (Range, bool) {
	if h.markedRng == nil {
		return Range{}, false
	}
	return *h.markedRng, true
}

func (h *recordingHandler) SelectedRange() (Selection, bool) {
	if h.selection == nil {
		return Selection{}, false
	}
	return *h.selection, true
}

func (h *recordingHandler) BoundsForRange(rng Range) (geom.Bounds, bool) {
	return geom.BoundsOf(geom.Pixels(rng.Start), 40, 1, 16), true
}

func keyDown(ch string) event.KeyDown {
	return event.KeyDown{Keystroke: event.Keystroke{Key: ch, KeyChar: ch}}
}

func TestHoverLatch(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	var hovers []bool
	w.OnHoverStatusChange(func(h bool) { hovers = append(hovers, h) })

	w.HandleInput(event.MouseMove{Position: geom.Point{X: 10, Y: 10}})
	assert.True(t, w.IsHovered())

	w.HandleInput(event.MouseMove{Position: geom.Point{X: 12, Y: 10}})
	w.HandleInput(event.MouseDown{Button: event.MouseLeft, Position: geom.Point{X: 12, Y: 10}})
	assert.Equal(t, []bool{true}, hovers)

	w.HandleInput(event.MouseExited{})
	assert.False(t, w.IsHovered())
	assert.Equal(t, []bool{true, false}, hovers)

	// key events do not disturb the latch
	w.HandleInput(keyDown("a"))
	assert.False(t, w.IsHovered())
	assert.Equal(t, []bool{true, false}, hovers)
}

func TestScrollCountsAsHover(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	w.HandleInput(event.ScrollWheel{Delta: geom.Point{Y: -3}})
	assert.True(t, w.IsHovered())
}

func TestInputCallbackConsumesEvents(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	h := &recordingHandler{}
	w.SetInputHandler(h)

	w.HandleInput(keyDown("a"))
	assert.Equal(t, []string{"a"}, h.inserted)

	w.OnInput(func(ev event.Input) bool { return true })
	w.HandleInput(keyDown("b"))
	assert.Equal(t, []string{"a"}, h.inserted)

	w.OnInput(func(ev event.Input) bool { return false })
	w.HandleInput(keyDown("c"))
	assert.Equal(t, []string{"a", "c"}, h.inserted)

	// keys that resolve to no character insert nothing
	w.HandleInput(event.KeyDown{Keystroke: event.Keystroke{Key: "escape"}})
	assert.Equal(t, []string{"a", "c"}, h.inserted)
}

func TestHandleIME(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	h := &recordingHandler{}
	w.SetInputHandler(h)

	w.HandleIME(ImeSetMarkedText{Text: "ni"})
	assert.Equal(t, []string{"ni"}, h.marked)

	w.HandleIME(ImeDeleteText{})
	assert.Equal(t, []string{""}, h.inserted)

	w.HandleIME(ImeUnmarkText{})
	assert.Equal(t, 1, h.unmarked)

	// without marked text there is nothing to delete
	w.HandleIME(ImeDeleteText{})
	assert.Equal(t, []string{""}, h.inserted)

	w.HandleIME(ImeInsertText{Text: "你好"})
	assert.Equal(t, []string{"", "你好"}, h.inserted)
}

func TestHandleIMEWithoutHandler(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	w.HandleIME(ImeInsertText{Text: "dropped"})
	w.HandleIME(ImeUnmarkText{})
}

func TestTakeInputHandler(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	h := &recordingHandler{}
	w.SetInputHandler(h)
	assert.Equal(t, InputHandler(h), w.TakeInputHandler())
	assert.Nil(t, w.TakeInputHandler())

	// detached handlers receive nothing
	w.HandleInput(keyDown("x"))
	assert.Empty(t, h.inserted)
}

func TestUpdateIMEPositionReportsCaret(t *testing.T) {
	c := newTestClient(t, baseGlobals()...)
	w := testWindow(t, c)

	var got []geom.Bounds
	c.SetIMEPositionHandler(func(b geom.Bounds) { got = append(got, b) })

	// no handler attached: nothing reported
	w.UpdateIMEPosition()
	assert.Empty(t, got)

	h := &recordingHandler{selection: &Selection{Range: Range{Start: 3, End: 7}}}
	w.SetInputHandler(h)
	w.UpdateIMEPosition()
	assert.Equal(t, []geom.Bounds{geom.BoundsOf(7, 40, 1, 16)}, got)

	// a reversed selection carries the caret at its start
	h.selection = &Selection{Range: Range{Start: 3, End: 7}, Reversed: true}
	w.UpdateIMEPosition()
	assert.Equal(t, geom.BoundsOf(3, 40, 1, 16), got[1])
}
