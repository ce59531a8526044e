package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type clickEvent struct {
	X, Y int
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := New[clickEvent]()

	var received []clickEvent
	bus.Subscribe(func(e clickEvent) { received = append(received, e) })

	bus.Publish(clickEvent{X: 1, Y: 2})
	bus.Publish(clickEvent{X: 1, Y: 2})

	require.Len(t, received, 2, "identical payloads must both be delivered, unlike a signal's deduped Set")
}

func TestSubscribeDisposerStopsDelivery(t *testing.T) {
	bus := New[int]()

	count := 0
	dispose := bus.Subscribe(func(int) { count++ })
	bus.Publish(1)
	dispose()
	bus.Publish(2)

	require.Equal(t, 1, count)
}

func TestDisposerIsIdempotent(t *testing.T) {
	bus := New[int]()
	dispose := bus.Subscribe(func(int) {})
	dispose()
	require.NotPanics(t, func() { dispose() })
}

func TestMultipleSubscribersAllReceive(t *testing.T) {
	bus := New[string]()

	var a, b []string
	bus.Subscribe(func(s string) { a = append(a, s) })
	bus.Subscribe(func(s string) { b = append(b, s) })

	bus.Publish("hello")

	require.Equal(t, []string{"hello"}, a)
	require.Equal(t, []string{"hello"}, b)
}

func TestPublishWithNoSubscribersDoesNotPanic(t *testing.T) {
	bus := New[int]()
	require.NotPanics(t, func() { bus.Publish(42) })
}
