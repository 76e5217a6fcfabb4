package cart

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidDeviceID(t *testing.T) {
	assert.True(t, ValidDeviceID("3f2b8c1e-6a1d-4a55-9a43-0d6f3c2e9b11"))
	assert.True(t, ValidDeviceID("device_12345"))
	assert.False(t, ValidDeviceID(""))
	assert.False(t, ValidDeviceID("short"))
	assert.False(t, ValidDeviceID("../../etc/passwd"))
}

func TestRegistry_Get(t *testing.T) {
	backing := map[string]*MemoryStorage{}
	var mu sync.Mutex
	opened := 0

	open := func(deviceID string) (Storage, error) {
		mu.Lock()
		defer mu.Unlock()
		opened++
		if s, ok := backing[deviceID]; ok {
			return s, nil
		}
		s := NewMemoryStorage()
		backing[deviceID] = s
		return s, nil
	}

	reg, err := NewRegistry(1, open)
	require.NoError(t, err)

	t.Run("Same device gets the same store", func(t *testing.T) {
		a, err := reg.Get("device-aaaa")
		require.NoError(t, err)
		b, err := reg.Get("device-aaaa")
		require.NoError(t, err)

		assert.Same(t, a, b)
		assert.Equal(t, 1, opened)
	})

	t.Run("Evicted store still in use is handed back", func(t *testing.T) {
		a, _ := reg.Get("device-aaaa")
		_, err := a.AddItem(Item{ID: "p1", Price: 100, Quantity: 2})
		require.NoError(t, err)

		_, err = reg.Get("device-bbbb")
		require.NoError(t, err)
		assert.Equal(t, 1, reg.Len())

		again, err := reg.Get("device-aaaa")
		require.NoError(t, err)
		assert.Same(t, a, again)
		assert.Equal(t, 2, again.TotalItems())
	})

	t.Run("Holders of an evicted store never overwrite each other", func(t *testing.T) {
		first, err := reg.Get("device-cccc")
		require.NoError(t, err)
		_, err = reg.Get("device-dddd")
		require.NoError(t, err)
		second, err := reg.Get("device-cccc")
		require.NoError(t, err)

		_, err = first.AddItem(Item{ID: "bread-1", Price: 800})
		require.NoError(t, err)
		_, err = second.AddItem(Item{ID: "bun-1", Price: 300})
		require.NoError(t, err)

		reloaded, err := NewStore(backing["device-cccc"])
		require.NoError(t, err)
		ids := []string{}
		for _, it := range reloaded.Items() {
			ids = append(ids, it.ID)
		}
		assert.Equal(t, []string{"bread-1", "bun-1"}, ids)
	})

	t.Run("Unreferenced evicted store reloads its lines", func(t *testing.T) {
		func() {
			s, err := reg.Get("device-eeee")
			require.NoError(t, err)
			_, err = s.AddItem(Item{ID: "tart-1", Price: 450, Quantity: 3})
			require.NoError(t, err)
		}()
		_, err := reg.Get("device-ffff")
		require.NoError(t, err)
		runtime.GC()

		again, err := reg.Get("device-eeee")
		require.NoError(t, err)
		assert.Equal(t, 3, again.TotalItems())
	})

	t.Run("Invalid device id", func(t *testing.T) {
		_, err := reg.Get("bad/id")
		assert.ErrorIs(t, err, ErrInvalidDeviceID)
	})
}

func TestRegistry_OpenFailure(t *testing.T) {
	reg, err := NewRegistry(4, func(string) (Storage, error) {
		return nil, errors.New("permission denied")
	})
	require.NoError(t, err)

	_, err = reg.Get("device-aaaa")
	assert.ErrorIs(t, err, ErrLoadCart)
}

func TestNewRegistry_InvalidSize(t *testing.T) {
	_, err := NewRegistry(0, nil)
	assert.Error(t, err)
}
