package cart

import (
	"fmt"
	"regexp"
	"sync"
	"weak"

	lru "github.com/hashicorp/golang-lru/v2"
)

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// StorageOpener returns the device-local storage for one device.
type StorageOpener func(deviceID string) (Storage, error)

// Registry hands out exactly one live Store per device. Stores are cached in an LRU.
// An evicted store that a caller still holds is tracked weakly and handed back on the
// next Get, so two stores never write the same device storage. Only a store nobody
// references anymore is reloaded from storage.
type Registry struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *Store]
	evicted map[string]weak.Pointer[Store]
	size    int
	open    StorageOpener
}

func NewRegistry(size int, open StorageOpener) (*Registry, error) {
	r := &Registry{
		evicted: make(map[string]weak.Pointer[Store]),
		size:    size,
		open:    open,
	}
	cache, err := lru.NewWithEvict[string, *Store](size, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("cart registry: %w", err)
	}
	r.cache = cache
	return r, nil
}

// ValidDeviceID reports whether id is safe to use as a storage namespace.
func ValidDeviceID(id string) bool {
	return deviceIDPattern.MatchString(id)
}

// Get returns the device's cart, restoring it from storage on first use.
func (r *Registry) Get(deviceID string) (*Store, error) {
	if !ValidDeviceID(deviceID) {
		return nil, ErrInvalidDeviceID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.cache.Get(deviceID); ok {
		return s, nil
	}

	if wp, ok := r.evicted[deviceID]; ok {
		delete(r.evicted, deviceID)
		if s := wp.Value(); s != nil {
			r.cache.Add(deviceID, s)
			return s, nil
		}
	}

	storage, err := r.open(deviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCart, err)
	}

	s, err := NewStore(storage)
	if err != nil {
		return nil, err
	}

	r.cache.Add(deviceID, s)
	return s, nil
}

// onEvict runs from cache.Add, with r.mu held.
func (r *Registry) onEvict(deviceID string, s *Store) {
	r.evicted[deviceID] = weak.Make(s)
	if len(r.evicted) > r.size {
		r.pruneEvicted()
	}
}

// pruneEvicted forgets evicted stores that have been garbage collected.
func (r *Registry) pruneEvicted() {
	for id, wp := range r.evicted {
		if wp.Value() == nil {
			delete(r.evicted, id)
		}
	}
}

// Len is the number of carts currently cached.
func (r *Registry) Len() int {
	return r.cache.Len()
}
