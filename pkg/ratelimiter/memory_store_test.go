package ratelimiter_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/pkg/clock"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
)

func TestMemoryStore_Take(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	clk := clock.NewManual(epoch)
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk), ratelimiter.WithSweepInterval(0))
	defer store.Close()

	w, ok, err := store.Take(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ratelimiter.Window{Count: 1, ResetAt: epoch.Add(time.Minute)}, w)

	w, ok, err = store.Take(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, w.Count)

	w, ok, err = store.Take(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, w.Count)

	peeked, live, err := store.Peek(ctx, "k")
	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, w, peeked)

	clk.Advance(time.Minute)
	_, live, err = store.Peek(ctx, "k")
	require.NoError(t, err)
	assert.False(t, live)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(0))
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := store.Take(ctx, "k", 1, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	clk := clock.NewManual(epoch)
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk), ratelimiter.WithSweepInterval(0))
	defer store.Close()

	for i := range 10 {
		_, _, err := store.Take(ctx, fmt.Sprintf("short-%d", i), 1, time.Second)
		require.NoError(t, err)
	}
	for i := range 5 {
		_, _, err := store.Take(ctx, fmt.Sprintf("long-%d", i), 1, time.Hour)
		require.NoError(t, err)
	}
	assert.Equal(t, 15, store.Len())

	assert.Equal(t, 0, store.Sweep())

	clk.Advance(time.Second)
	assert.Equal(t, 10, store.Sweep())
	assert.Equal(t, 5, store.Len())
}

func TestMemoryStore_BackgroundSweep(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(10 * time.Millisecond))
	defer store.Close()

	_, _, err := store.Take(context.Background(), "k", 1, 5*time.Millisecond)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_Capacity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	clk := clock.NewManual(epoch)
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithClock(clk),
		ratelimiter.WithShards(1),
		ratelimiter.WithMaxKeys(3),
		ratelimiter.WithSweepInterval(0),
	)
	defer store.Close()

	for _, k := range []string{"a", "b", "c"} {
		_, _, err := store.Take(ctx, k, 5, time.Minute)
		require.NoError(t, err)
	}

	// Touch "a" so "b" becomes least recently used.
	_, _, err := store.Take(ctx, "a", 5, time.Minute)
	require.NoError(t, err)

	_, _, err = store.Take(ctx, "d", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())

	_, live, err := store.Peek(ctx, "b")
	require.NoError(t, err)
	assert.False(t, live)

	w, live, err := store.Peek(ctx, "a")
	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, 2, w.Count)
}

func TestMemoryStore_Close(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithSweepInterval(time.Millisecond))
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
