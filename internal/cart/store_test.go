package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	loadErr error
	saveErr error
	saved   int
}

func (f *failingStorage) Load(key string) ([]byte, error) { return nil, f.loadErr }
func (f *failingStorage) Save(key string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	return nil
}

func newTestStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	s, err := NewStore(storage)
	require.NoError(t, err)
	return s, storage
}

func assertConsistent(t *testing.T, s *Store) {
	t.Helper()
	snap := s.Snapshot()

	wantItems, wantPrice := 0, 0
	seen := map[string]bool{}
	for _, it := range snap.Items {
		assert.False(t, seen[it.ID], "duplicate line %s", it.ID)
		seen[it.ID] = true
		assert.Positive(t, it.Quantity)
		wantItems += it.Quantity
		wantPrice += it.Price * it.Quantity
	}

	assert.Equal(t, wantItems, snap.TotalItems)
	assert.Equal(t, wantPrice, snap.TotalPrice)
	assert.Equal(t, wantItems, s.TotalItems())
	assert.Equal(t, wantPrice, s.TotalPrice())
}

func TestStore_AddItem(t *testing.T) {
	t.Run("Defaults quantity to one", func(t *testing.T) {
		s, _ := newTestStore(t)

		line, err := s.AddItem(Item{ID: "p1", Title: "Sourdough", Price: 800})
		require.NoError(t, err)

		assert.Equal(t, 1, line.Quantity)
		assert.Equal(t, 1, s.TotalItems())
		assert.Equal(t, 800, s.TotalPrice())
	})

	t.Run("Same identity increments instead of duplicating", func(t *testing.T) {
		s, _ := newTestStore(t)

		_, err := s.AddItem(Item{ID: "p1-chocolate-large", Price: 2600, Quantity: 2})
		require.NoError(t, err)
		line, err := s.AddItem(Item{ID: "p1-chocolate-large", Price: 2600, Quantity: 3})
		require.NoError(t, err)

		assert.Equal(t, 5, line.Quantity)
		assert.Len(t, s.Items(), 1)
		assert.Equal(t, 13000, s.TotalPrice())
	})

	t.Run("Different variants become separate lines in insertion order", func(t *testing.T) {
		s, _ := newTestStore(t)

		_, _ = s.AddItem(Item{ID: "p1-vanilla", Price: 100})
		_, _ = s.AddItem(Item{ID: "p1-chocolate", Price: 100})
		_, _ = s.AddItem(Item{ID: "p1-vanilla", Price: 100})

		items := s.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "p1-vanilla", items[0].ID)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, "p1-chocolate", items[1].ID)
	})

	t.Run("Rejects invalid candidates", func(t *testing.T) {
		s, storage := newTestStore(t)

		_, err := s.AddItem(Item{ID: "  "})
		assert.ErrorIs(t, err, ErrMissingItemID)

		_, err = s.AddItem(Item{ID: "p1", Quantity: -1})
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = s.AddItem(Item{ID: "p1", Price: -5})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		raw, _ := storage.Load(StorageKey)
		assert.Nil(t, raw)
	})
}

func TestStore_UpdateQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.AddItem(Item{ID: "a", Price: 100, Quantity: 2})
	_, _ = s.AddItem(Item{ID: "b", Price: 50})

	t.Run("Sets exactly", func(t *testing.T) {
		require.NoError(t, s.UpdateQuantity("a", 5))
		assert.Equal(t, 5, s.Items()[0].Quantity)
		assertConsistent(t, s)
	})

	t.Run("Unknown id is a no-op", func(t *testing.T) {
		require.NoError(t, s.UpdateQuantity("missing", 5))
		assert.Len(t, s.Items(), 2)
	})

	t.Run("Zero removes", func(t *testing.T) {
		require.NoError(t, s.UpdateQuantity("a", 0))
		assert.Len(t, s.Items(), 1)
	})

	t.Run("Negative removes", func(t *testing.T) {
		require.NoError(t, s.UpdateQuantity("b", -1))
		assert.Empty(t, s.Items())
		assertConsistent(t, s)
	})
}

func TestStore_RemoveAndClear(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.AddItem(Item{ID: "a", Price: 100})
	_, _ = s.AddItem(Item{ID: "b", Price: 200})

	require.NoError(t, s.RemoveItem("missing"))
	assert.Len(t, s.Items(), 2)

	require.NoError(t, s.RemoveItem("a"))
	assert.Equal(t, []string{"b"}, []string{s.Items()[0].ID})

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalPrice())
}

func TestStore_Persistence(t *testing.T) {
	t.Run("Survives reload", func(t *testing.T) {
		s, storage := newTestStore(t)
		_, _ = s.AddItem(Item{ID: "a", Title: "Cupcakes - Vanilla", Price: 2000, Quantity: 2, Variant: "Flavor: Vanilla", ProductID: "p-a"})
		_, _ = s.AddItem(Item{ID: "b", Price: 500})

		reloaded, err := NewStore(storage)
		require.NoError(t, err)

		assert.Equal(t, s.Items(), reloaded.Items())
		assert.Equal(t, 4500, reloaded.TotalPrice())
	})

	t.Run("Saved under the fixed key as plain JSON", func(t *testing.T) {
		s, storage := newTestStore(t)
		_, _ = s.AddItem(Item{ID: "a", Price: 100})

		raw, err := storage.Load(StorageKey)
		require.NoError(t, err)

		var saved []Item
		require.NoError(t, json.Unmarshal(raw, &saved))
		assert.Equal(t, "a", saved[0].ID)
	})

	t.Run("Save failure leaves lines untouched", func(t *testing.T) {
		storage := &failingStorage{}
		s, err := NewStore(storage)
		require.NoError(t, err)
		_, err = s.AddItem(Item{ID: "a", Price: 100})
		require.NoError(t, err)

		storage.saveErr = errors.New("disk full")

		_, err = s.AddItem(Item{ID: "a", Price: 100})
		assert.ErrorIs(t, err, ErrPersistCart)
		assert.ErrorIs(t, s.Clear(), ErrPersistCart)
		assert.Equal(t, 1, s.TotalItems())
	})

	t.Run("No-op mutations do not save", func(t *testing.T) {
		storage := &failingStorage{}
		s, err := NewStore(storage)
		require.NoError(t, err)

		require.NoError(t, s.RemoveItem("nothing"))
		require.NoError(t, s.UpdateQuantity("nothing", 3))
		assert.Equal(t, 0, storage.saved)
	})

	t.Run("Load failure", func(t *testing.T) {
		_, err := NewStore(&failingStorage{loadErr: errors.New("io")})
		assert.ErrorIs(t, err, ErrLoadCart)
	})

	t.Run("Corrupt data starts empty", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save(StorageKey, []byte("{not json")))

		s, err := NewStore(storage)
		require.NoError(t, err)
		assert.Empty(t, s.Items())
	})

	t.Run("Restored duplicates are folded", func(t *testing.T) {
		storage := NewMemoryStorage()
		raw, _ := json.Marshal([]Item{
			{ID: "a", Price: 100, Quantity: 1},
			{ID: "", Price: 100, Quantity: 1},
			{ID: "a", Price: 100, Quantity: 2},
			{ID: "b", Price: 100, Quantity: 0},
		})
		require.NoError(t, storage.Save(StorageKey, raw))

		s, err := NewStore(storage)
		require.NoError(t, err)

		require.Len(t, s.Items(), 1)
		assert.Equal(t, 3, s.Items()[0].Quantity)
	})
}

func TestStore_RemoveLines(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.AddItem(Item{ID: "a", Price: 100, Quantity: 2})
	_, _ = s.AddItem(Item{ID: "b", Price: 200, Quantity: 1})
	snap := s.Snapshot()

	_, _ = s.AddItem(Item{ID: "a", Price: 100, Quantity: 1})
	_, _ = s.AddItem(Item{ID: "c", Price: 50})

	require.NoError(t, s.RemoveLines(snap.Items))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "c", items[1].ID)
	assertConsistent(t, s)

	t.Run("Lines already gone are ignored", func(t *testing.T) {
		storage := &failingStorage{}
		st, err := NewStore(storage)
		require.NoError(t, err)

		require.NoError(t, st.RemoveLines([]Item{{ID: "zz", Quantity: 1}}))
		assert.Equal(t, 0, storage.saved)
	})
}

func TestStore_Items_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.AddItem(Item{ID: "a", Price: 100})

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestStore_RandomSequencesStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, _ := newTestStore(t)

	flavors := []string{"vanilla", "chocolate", "lemon"}
	sizes := []string{"small", "large"}

	for step := 0; step < 500; step++ {
		id := fmt.Sprintf("p%d-%s-%s", rng.Intn(3), flavors[rng.Intn(len(flavors))], sizes[rng.Intn(len(sizes))])

		switch rng.Intn(5) {
		case 0, 1:
			_, err := s.AddItem(Item{ID: id, Price: 100 + rng.Intn(900), Quantity: rng.Intn(3)})
			require.NoError(t, err)
		case 2:
			require.NoError(t, s.UpdateQuantity(id, rng.Intn(6)-1))
		case 3:
			require.NoError(t, s.RemoveItem(id))
		case 4:
			if rng.Intn(20) == 0 {
				require.NoError(t, s.Clear())
			}
		}

		assertConsistent(t, s)
	}
}
