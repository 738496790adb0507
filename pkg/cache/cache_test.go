package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestCache(t *testing.T) (*TTLCache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string](time.Hour)
	c.now = clock.Now
	t.Cleanup(c.Stop)
	return c, clock
}

func TestTTLCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)

	c.Set("stats:all", "v1", time.Minute)
	v, ok := c.Get("stats:all")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestTTLCache_Expiration(t *testing.T) {
	c, clock := newTestCache(t)

	c.Set("k", "v", 30*time.Second)
	clock.Advance(29 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry expires exactly at its ttl")

	assert.Equal(t, 1, c.Len())
	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_DeleteAndClear(t *testing.T) {
	c, _ := newTestCache(t)

	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_GetOrLoad(t *testing.T) {
	c, clock := newTestCache(t)
	var calls int32
	load := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		return "computed", nil
	}

	v, err := c.GetOrLoad("k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	v, err = c.GetOrLoad("k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	clock.Advance(2 * time.Minute)
	_, err = c.GetOrLoad("k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTTLCache_GetOrLoadErrorNotCached(t *testing.T) {
	c, _ := newTestCache(t)
	loadErr := errors.New("database unavailable")

	_, err := c.GetOrLoad("k", time.Minute, func() (string, error) { return "", loadErr })
	assert.ErrorIs(t, err, loadErr)

	v, err := c.GetOrLoad("k", time.Minute, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestTTLCache_GetOrLoadConcurrent(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrLoad("k", time.Minute, func() (string, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return "shared", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestTTLCache_StopTwice(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Stop()
	c.Stop()
}
