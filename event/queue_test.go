package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueOrder(t *testing.T) {
	q := &Queue[int]{}
	assert.Equal(t, 0, q.Len())

	_, ok := q.Pop()
	assert.False(t, ok)

	q.Push(1)
	q.Push(2)
	q.Push(3)
	assert.Equal(t, 3, q.Len())

	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, q.Len())
}

func TestQueueDrainReentrant(t *testing.T) {
	q := &Queue[string]{}
	q.Push("a")
	q.Push("b")

	var got []string
	n := q.Drain(func(s string) {
		got = append(got, s)
		if s == "a" {
			// Work pushed mid-drain is delivered in the same drain.
			q.Push("c")
		}
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, q.Len())
}

func TestQueueReusesEntries(t *testing.T) {
	q := &Queue[int]{}
	q.Push(1)
	q.Pop()
	q.Push(2)
	assert.Nil(t, q.free)
	assert.Equal(t, 1, q.count)
}

func TestQueueClear(t *testing.T) {
	q := &Queue[int]{}
	for i := 0; i < 4; i++ {
		q.Push(i)
	}
	q.Clear()
	assert.Equal(t, 0, q.Len())
	_, ok := q.Pop()
	assert.False(t, ok)

	// Cleared entries end up on the free list.
	q.Push(9)
	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}
