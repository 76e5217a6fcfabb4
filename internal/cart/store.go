package cart

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"bakery-be/internal/logger"

	"go.uber.org/zap"
)

// StorageKey is the fixed key the cart lines are saved under in device storage.
const StorageKey = "bakery-cart"

// Storage is device-local persistence. Load returns (nil, nil) when nothing was saved yet.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// Store is an ordered collection of cart lines keyed by composite identity.
// Every mutation is persisted before it becomes visible; if saving fails the previous
// lines stay in place. Aggregates are computed from the lines on every read.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	items   []Item
}

// NewStore restores the cart saved in storage, or starts empty.
func NewStore(storage Storage) (*Store, error) {
	s := &Store{storage: storage, items: []Item{}}

	raw, err := storage.Load(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCart, err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	var saved []Item
	if err := json.Unmarshal(raw, &saved); err != nil {
		// Unreadable data is dropped and the cart starts empty.
		logger.L().Warn("discarding unreadable cart data", zap.Error(err))
		return s, nil
	}

	s.items = sanitize(saved)
	return s, nil
}

// AddItem appends a line, or increments the quantity of the line with the same id.
// A zero quantity means one.
func (s *Store) AddItem(candidate Item) (Item, error) {
	candidate.ID = strings.TrimSpace(candidate.ID)
	if candidate.ID == "" {
		return Item{}, ErrMissingItemID
	}
	if candidate.Quantity < 0 {
		return Item{}, ErrInvalidQuantity
	}
	if candidate.Price < 0 {
		return Item{}, ErrInvalidPrice
	}
	if candidate.Quantity == 0 {
		candidate.Quantity = 1
	}

	var result Item
	err := s.mutate(func(items []Item) ([]Item, bool) {
		if i := indexOf(items, candidate.ID); i >= 0 {
			items[i].Quantity += candidate.Quantity
			result = items[i]
			return items, true
		}
		result = candidate
		return append(items, candidate), true
	})
	if err != nil {
		return Item{}, err
	}
	return result, nil
}

// UpdateQuantity sets a line's quantity exactly; zero or less removes the line.
// Unknown ids are ignored.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	return s.mutate(func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		if quantity <= 0 {
			return append(items[:i], items[i+1:]...), true
		}
		items[i].Quantity = quantity
		return items, true
	})
}

// RemoveItem deletes a line if present.
func (s *Store) RemoveItem(id string) error {
	return s.mutate(func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		return append(items[:i], items[i+1:]...), true
	})
}

// RemoveLines takes the given lines out of the cart: each matching line loses the given
// quantity and disappears when nothing is left. Lines added or increased since the
// caller read them keep the difference.
func (s *Store) RemoveLines(lines []Item) error {
	return s.mutate(func(items []Item) ([]Item, bool) {
		changed := false
		for _, l := range lines {
			i := indexOf(items, l.ID)
			if i < 0 {
				continue
			}
			changed = true
			if items[i].Quantity <= l.Quantity {
				items = append(items[:i], items[i+1:]...)
				continue
			}
			items[i].Quantity -= l.Quantity
		}
		return items, changed
	})
}

// Clear empties the cart.
func (s *Store) Clear() error {
	return s.mutate(func(items []Item) ([]Item, bool) {
		return []Item{}, true
	})
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TotalItems(s.items)
}

func (s *Store) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TotalPrice(s.items)
}

// Snapshot reads lines and aggregates under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Items:      cloneItems(s.items),
		TotalItems: TotalItems(s.items),
		TotalPrice: TotalPrice(s.items),
	}
}

// mutate runs fn on a private copy of the lines. fn reports whether anything changed;
// unchanged carts are not re-saved.
func (s *Store) mutate(fn func(items []Item) ([]Item, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(cloneItems(s.items))
	if !changed {
		return nil
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistCart, err)
	}
	if err := s.storage.Save(StorageKey, data); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistCart, err)
	}

	s.items = next
	return nil
}

func indexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// sanitize drops invalid rows and folds duplicate ids so a restored cart keeps the
// one-line-per-identity invariant.
func sanitize(saved []Item) []Item {
	out := make([]Item, 0, len(saved))
	for _, it := range saved {
		if strings.TrimSpace(it.ID) == "" || it.Quantity <= 0 || it.Price < 0 {
			continue
		}
		if i := indexOf(out, it.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}
