package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPubSub(t *testing.T) {
	p := NewPubSub[string, int](1)

	a := p.Subscribe("x")
	b := p.Subscribe("x")
	c := p.Subscribe("y")
	assert.Equal(t, 2, p.Subscribers("x"))

	assert.Zero(t, p.Publish("x", 1))
	assert.Equal(t, 1, <-a)
	assert.Empty(t, c)

	// b still holds the first value and is evicted
	assert.Equal(t, 1, p.Publish("x", 2))
	assert.Equal(t, 2, <-a)
	assert.Equal(t, 1, <-b)
	_, open := <-b
	assert.False(t, open)
	assert.Equal(t, 1, p.Subscribers("x"))
	assert.NotPanics(t, func() { p.Unsubscribe("x", b) })

	p.Unsubscribe("x", a)
	_, open = <-a
	assert.False(t, open)
	assert.Zero(t, p.Subscribers("x"))

	// second unsubscribe is a no-op
	assert.NotPanics(t, func() { p.Unsubscribe("x", a) })
	assert.Zero(t, p.Publish("x", 3))
}

func TestPubSub_Close(t *testing.T) {
	p := NewPubSub[string, int](4)
	a := p.Subscribe("x")
	b := p.Subscribe("y")

	p.Close()
	for _, ch := range []chan int{a, b} {
		_, open := <-ch
		assert.False(t, open)
	}
	assert.Zero(t, p.Subscribers("x"))
	assert.NotPanics(t, func() { p.Unsubscribe("x", a) })

	late := p.Subscribe("x")
	_, open := <-late
	assert.False(t, open)
	assert.Zero(t, p.Publish("x", 1))
}
