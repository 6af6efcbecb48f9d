package event

// Keystroke is a resolved key chord: the layout-mapped key name plus the
// text it would insert, when it inserts any.
type Keystroke struct {
	Modifiers Modifiers
	Key       string
	KeyChar   string
}

// KeyDown is a key press. IsHeld marks key-repeat deliveries.
type KeyDown struct {
	Keystroke Keystroke
	IsHeld    bool
}

// KeyUp is a key release.
type KeyUp struct {
	Keystroke Keystroke
}

// ModifiersChanged reports a modifier chord change with no accompanying key.
type ModifiersChanged struct {
	Modifiers Modifiers
}

func (KeyDown) inputEvent()          {}
func (KeyUp) inputEvent()            {}
func (ModifiersChanged) inputEvent() {}
