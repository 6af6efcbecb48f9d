package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockAdvances(t *testing.T) {
	c := New()
	first := c.Elapsed()
	time.Sleep(2 * time.Millisecond)
	assert.Greater(t, c.Elapsed(), first)
}

func TestMillisTruncatesToWholeMilliseconds(t *testing.T) {
	c := New()
	assert.Zero(t, New().Millis())
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Millis(), uint32(1))
}

func TestResetRestartsEpoch(t *testing.T) {
	c := New()
	time.Sleep(10 * time.Millisecond)
	before := c.Elapsed()
	c.Reset()
	assert.Less(t, c.Elapsed(), before)
}
