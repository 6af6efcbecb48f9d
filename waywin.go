// Package waywin connects Go applications to a Wayland compositor and hands
// back windows driven by compositor events.
//
// The wl package carries the protocol state machine; this package is the
// front door most programs want: open a connection, create windows from it,
// and run its dispatch loop until the application exits.
package waywin

import (
	"github.com/wuliuqii/waywin/wl"
)

// Connect opens the compositor socket named by sockName. An empty name
// defers to $WAYLAND_DISPLAY and then to "wayland-0". The returned client
// owns the connection; run Dispatch on it to pump events and Close it when
// the application is done.
func Connect(sockName string) (*wl.Client, error) {
	return wl.Connect(sockName)
}
