package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_SubscribePublish(t *testing.T) {
	hub := NewHub()

	var got []Event
	unsub := hub.Subscribe("orders", func(ev Event) { got = append(got, ev) })

	hub.Publish(Event{Table: "orders", ID: "1"})
	hub.Publish(Event{Table: "products", ID: "2"})
	assert.Equal(t, []Event{{Table: "orders", ID: "1"}}, got)

	unsub()
	unsub()
	hub.Publish(Event{Table: "orders", ID: "3"})
	assert.Len(t, got, 1)
	assert.Equal(t, 0, hub.Subscribers("orders"))
}

func TestHub_UnsubscribeOnlyRemovesOwnCallback(t *testing.T) {
	hub := NewHub()
	a, b := 0, 0

	unsubA := hub.Subscribe("reviews", func(Event) { a++ })
	hub.Subscribe("reviews", func(Event) { b++ })
	unsubA()

	hub.Publish(Event{Table: "reviews"})
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, hub.Subscribers("reviews"))
}

func TestHub_PanickingSubscriberDoesNotStopOthers(t *testing.T) {
	hub := NewHub()
	called := false

	hub.Subscribe("products", func(Event) { panic("boom") })
	hub.Subscribe("products", func(Event) { called = true })

	assert.NotPanics(t, func() { hub.Publish(Event{Table: "products"}) })
	assert.True(t, called)
}

func TestHub_Concurrent(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unsub := hub.Subscribe("orders", func(Event) {})
			unsub()
		}()
		go func() {
			defer wg.Done()
			hub.Publish(Event{Table: "orders"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.Subscribers("orders"))
}
