package ratelimiter

import (
	"container/list"
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dmitrymomot/landing/pkg/clock"
)

const (
	defaultShards        = 32
	defaultMaxKeys       = 100_000
	defaultSweepInterval = time.Minute
)

// entry is a live window tracked by a shard's LRU list.
type entry struct {
	key     string
	count   int
	resetAt time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List // front = most recently used
}

// MemoryStore implements Store using a sharded in-memory map.
type MemoryStore struct {
	shards        []*shard
	maxPerShard   int
	sweepInterval time.Duration
	clock         clock.Clock

	stopSweep chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithClock sets the time source. Defaults to clock.System().
func WithClock(c clock.Clock) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if c != nil {
			ms.clock = c
		}
	}
}

// WithShards sets the number of independently locked shards.
func WithShards(n int) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if n > 0 {
			ms.shards = make([]*shard, n)
		}
	}
}

// WithMaxKeys bounds the total number of tracked identifiers.
// The bound is split evenly across shards.
func WithMaxKeys(n int) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if n > 0 {
			ms.maxPerShard = n
		}
	}
}

// WithSweepInterval sets how often expired windows are removed.
// Set to 0 to disable the background sweeper.
func WithSweepInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.sweepInterval = interval
	}
}

// NewMemoryStore creates a new in-memory store and starts its sweeper.
// Call Close to stop the sweeper.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		shards:        make([]*shard, defaultShards),
		maxPerShard:   defaultMaxKeys,
		sweepInterval: defaultSweepInterval,
		clock:         clock.System(),
		stopSweep:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	// maxPerShard holds the total until shards are known.
	ms.maxPerShard = max(1, ms.maxPerShard/len(ms.shards))
	for i := range ms.shards {
		ms.shards[i] = &shard{
			entries: make(map[string]*list.Element),
			lru:     list.New(),
		}
	}

	if ms.sweepInterval > 0 {
		ms.wg.Add(1)
		go ms.sweepLoop()
	}

	return ms
}

func (ms *MemoryStore) shardFor(key string) *shard {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return ms.shards[h.Sum64()%uint64(len(ms.shards))]
}

// Take implements Store.
func (ms *MemoryStore) Take(ctx context.Context, key string, limit int, window time.Duration) (Window, bool, error) {
	if err := ctx.Err(); err != nil {
		return Window{}, false, err
	}

	s := ms.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := ms.clock.Now()

	if el, ok := s.entries[key]; ok {
		e := el.Value.(*entry)
		if now.Before(e.resetAt) {
			s.lru.MoveToFront(el)
			if e.count >= limit {
				return Window{Count: e.count, ResetAt: e.resetAt}, false, nil
			}
			e.count++
			return Window{Count: e.count, ResetAt: e.resetAt}, true, nil
		}
		if limit <= 0 {
			s.remove(el)
			return Window{}, false, nil
		}
		e.count = 1
		e.resetAt = now.Add(window)
		s.lru.MoveToFront(el)
		return Window{Count: e.count, ResetAt: e.resetAt}, true, nil
	}

	if limit <= 0 {
		return Window{}, false, nil
	}

	e := &entry{key: key, count: 1, resetAt: now.Add(window)}
	s.entries[key] = s.lru.PushFront(e)
	for s.lru.Len() > ms.maxPerShard {
		s.remove(s.lru.Back())
	}

	return Window{Count: e.count, ResetAt: e.resetAt}, true, nil
}

// Peek implements Store.
func (ms *MemoryStore) Peek(ctx context.Context, key string) (Window, bool, error) {
	if err := ctx.Err(); err != nil {
		return Window{}, false, err
	}

	s := ms.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return Window{}, false, nil
	}
	e := el.Value.(*entry)
	if !ms.clock.Now().Before(e.resetAt) {
		return Window{}, false, nil
	}
	return Window{Count: e.count, ResetAt: e.resetAt}, true, nil
}

// Reset implements Store.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := ms.shardFor(key)
	s.mu.Lock()
	if el, ok := s.entries[key]; ok {
		s.remove(el)
	}
	s.mu.Unlock()
	return nil
}

// Len returns the number of tracked windows, expired ones included.
func (ms *MemoryStore) Len() int {
	n := 0
	for _, s := range ms.shards {
		s.mu.Lock()
		n += s.lru.Len()
		s.mu.Unlock()
	}
	return n
}

// Sweep removes every expired window and returns how many were dropped.
func (ms *MemoryStore) Sweep() int {
	now := ms.clock.Now()
	removed := 0
	for _, s := range ms.shards {
		s.mu.Lock()
		for el := s.lru.Back(); el != nil; {
			prev := el.Prev()
			if !now.Before(el.Value.(*entry).resetAt) {
				s.remove(el)
				removed++
			}
			el = prev
		}
		s.mu.Unlock()
	}
	return removed
}

// Close stops the background sweeper. Safe to call more than once.
func (ms *MemoryStore) Close() error {
	ms.closeOnce.Do(func() {
		close(ms.stopSweep)
	})
	ms.wg.Wait()
	return nil
}

func (ms *MemoryStore) sweepLoop() {
	defer ms.wg.Done()

	ticker := time.NewTicker(ms.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.Sweep()
		case <-ms.stopSweep:
			return
		}
	}
}

// remove must be called with s.mu held.
func (s *shard) remove(el *list.Element) {
	s.lru.Remove(el)
	delete(s.entries, el.Value.(*entry).key)
}
