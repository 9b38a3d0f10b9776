package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/cache"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", 42, time.Minute))

		v, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, 42, v)
	})

	t.Run("overwrites existing value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "a", 0))
		require.NoError(t, c.Set(ctx, "key", "b", 0))

		v, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, "b", v)
		require.Equal(t, 1, c.Len())
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "key", "value", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)

		ok, err := c.Has(ctx, "key")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("negative TTL never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond), cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "forever", "v", -1))
		time.Sleep(5 * time.Millisecond)

		ok, err := c.Has(ctx, "forever")
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestMemory_MaxEntries(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithMaxEntries(2))
	defer c.Close()

	var evicted []string
	c.SetEvictCallback(func(key string, _ int) { evicted = append(evicted, key) })

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))

	_, err := c.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "c", 3, 0))

	require.Equal(t, []string{"b"}, evicted)
	ok, _ := c.Has(ctx, "a")
	require.True(t, ok)
	ok, _ = c.Has(ctx, "b")
	require.False(t, ok)
}

func TestMemory_DeleteClearClose(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string]()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))
	require.NoError(t, c.Delete(ctx, "a"))
	require.NoError(t, c.Delete(ctx, "missing"))
	require.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear(ctx))
	require.Equal(t, 0, c.Len())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.ErrorIs(t, c.Set(ctx, "a", "1", 0), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "a"), cache.ErrClosed)
	require.ErrorIs(t, c.Clear(ctx), cache.ErrClosed)
}

func TestMemory_Sweeper(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithCleanupInterval(5 * time.Millisecond))
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "key", "v", time.Millisecond))
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("computes once and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		var calls atomic.Int32
		fn := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "value", time.Minute, nil
		}

		ctx := context.Background()
		for range 3 {
			v, err := cache.GetOrSet(ctx, c, "key", fn)
			require.NoError(t, err)
			require.Equal(t, "value", v)
		}
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("concurrent misses share one call", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		var calls atomic.Int32
		start := make(chan struct{})
		fn := func(context.Context) (int, time.Duration, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return 7, 0, nil
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				<-start
				v, err := cache.GetOrSet(context.Background(), c, "shared", fn)
				require.NoError(t, err)
				require.Equal(t, 7, v)
			})
		}
		close(start)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		boom := errors.New("boom")
		_, err := cache.GetOrSet(context.Background(), c, "key", func(context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		ok, _ := c.Has(context.Background(), "key")
		require.False(t, ok)
	})
}
