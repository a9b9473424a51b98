package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyhub/pkg/cache"
)

func TestLRU_PutGet(t *testing.T) {
	c := cache.NewLRU[string, int](3)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.Put("a", 10)
	v, ok = c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := cache.NewLRU[string, int](2)
	c.OnEvict(func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Put("a", 1)
	c.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, _ = c.Get("a")

	c.Put("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRU_RemoveSkipsCallback(t *testing.T) {
	var evictions int
	c := cache.NewLRU[string, int](2)
	c.OnEvict(func(string, int) { evictions++ })

	c.Put("a", 1)
	v, ok := c.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Zero(t, evictions)

	_, ok = c.Remove("a")
	assert.False(t, ok)
}

func TestLRU_ClearInvokesCallbackForAll(t *testing.T) {
	var evicted []string
	c := cache.NewLRU[string, int](5)
	c.OnEvict(func(key string, _ int) { evicted = append(evicted, key) })

	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	assert.ElementsMatch(t, []string{"a", "b"}, evicted)
	assert.Zero(t, c.Len())
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := cache.NewLRU[int, int](100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put(n*100+j, j)
				_, _ = c.Get(n * 100)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.Len())
}

func TestNewLRU_PanicsOnInvalidCapacity(t *testing.T) {
	assert.Panics(t, func() { cache.NewLRU[string, int](0) })
}
