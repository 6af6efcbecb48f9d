// Package ticker provides the monotonic time base used to pace frames.
package ticker

import "time"

// Clock measures elapsed time against a movable epoch. The zero value is not
// usable; construct clocks with New.
type Clock struct {
	epoch time.Time
}

// New returns a clock whose epoch is now.
func New() *Clock {
	return &Clock{epoch: time.Now()}
}

// Reset moves the epoch to now.
func (c *Clock) Reset() {
	c.epoch = time.Now()
}

// Elapsed returns the time since the epoch.
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.epoch)
}

// Millis returns the elapsed time in whole milliseconds, the unit Wayland
// timestamps are expressed in.
func (c *Clock) Millis() uint32 {
	return uint32(c.Elapsed() / time.Millisecond)
}
