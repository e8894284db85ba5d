package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	h := NewHub[int](4)
	a := h.Subscribe()
	b := h.Subscribe()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, h.Len())

	h.Publish(1)
	h.Publish(2)

	assert.Equal(t, 1, <-a.C())
	assert.Equal(t, 2, <-a.C())
	assert.Equal(t, 1, <-b.C())
	assert.Equal(t, 2, <-b.C())
}

func TestPublishDropsOldestWhenFull(t *testing.T) {
	h := NewHub[int](2)
	sub := h.Subscribe()

	h.Publish(1)
	h.Publish(2)
	h.Publish(3)

	assert.Equal(t, 2, <-sub.C())
	assert.Equal(t, 3, <-sub.C())
}

func TestSubscriptionClose(t *testing.T) {
	h := NewHub[string](0)
	sub := h.Subscribe()

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, h.Len())

	_, ok := <-sub.C()
	assert.False(t, ok)

	// Publishing after a subscriber left must not panic.
	h.Publish("ignored")
}

func TestHubClose(t *testing.T) {
	h := NewHub[int](1)
	sub := h.Subscribe()

	h.Close()
	h.Close()
	h.Publish(7)

	_, ok := <-sub.C()
	assert.False(t, ok)

	late := h.Subscribe()
	_, ok = <-late.C()
	assert.False(t, ok)
}

func TestWaitFor(t *testing.T) {
	h := NewHub[int](1)
	sub := h.Subscribe()
	h.Publish(42)

	msg := WaitFor(sub)()
	require.NotNil(t, msg)
	assert.Equal(t, 42, msg)

	sub.Close()
	assert.Nil(t, WaitFor(sub)())
}
