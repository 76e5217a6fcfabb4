package realtime

import (
	"sync"

	"bakery-be/internal/logger"

	"go.uber.org/zap"
)

// Hub fans change events out to per-resource subscribers.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]func(Event)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]func(Event))}
}

// Subscribe registers onChange for resource and returns the function that removes it.
// Calling the returned function more than once is harmless.
func (h *Hub) Subscribe(resource string, onChange func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.subs[resource] == nil {
		h.subs[resource] = make(map[uint64]func(Event))
	}
	h.subs[resource][id] = onChange

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[resource], id)
			if len(h.subs[resource]) == 0 {
				delete(h.subs, resource)
			}
		})
	}
}

// Publish calls every subscriber of ev.Table. Callbacks run on the caller's goroutine
// and must not block.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	callbacks := make([]func(Event), 0, len(h.subs[ev.Table]))
	for _, cb := range h.subs[ev.Table] {
		callbacks = append(callbacks, cb)
	}
	h.mu.RUnlock()

	for _, cb := range callbacks {
		h.deliver(cb, ev)
	}
}

func (h *Hub) deliver(cb func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("realtime subscriber panicked",
				zap.String("table", ev.Table),
				zap.Any("panic", r),
			)
		}
	}()
	cb(ev)
}

// Subscribers returns the number of live subscriptions for resource.
func (h *Hub) Subscribers(resource string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[resource])
}
