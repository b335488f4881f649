package flight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetMemoizes(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(k string) (int, error) {
		calls.Add(1)
		return len(k), nil
	})

	for range 3 {
		v, err := c.Get("dune")
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_CoalescesConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCache(func(k string) (string, error) {
		calls.Add(1)
		<-release
		return k + "!", nil
	})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get("key")
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	// Give the goroutines a moment to pile up behind the first call.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "key!", r)
	}
}

func TestCache_ErrorsAreNotStored(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	c := NewCache(func(k int) (int, error) {
		if calls.Add(1) == 1 {
			return 0, boom
		}
		return k * 2, nil
	})

	_, err := c.Get(21)
	assert.ErrorIs(t, err, boom)

	v, err := c.Get(21)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(2), calls.Load())
}
