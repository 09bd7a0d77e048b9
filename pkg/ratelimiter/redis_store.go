package ratelimiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/landing/pkg/clock"
)

// takeScript mirrors MemoryStore.Take. A key exists exactly while its window
// is live, so expiry doubles as window reset.
var takeScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= limit then
	return {current, redis.call('PTTL', KEYS[1]), 0}
end
current = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], window)
	ttl = window
end
return {current, ttl, 1}
`)

const defaultRedisPrefix = "ratelimit:"

// RedisStore implements Store on top of Redis so that several processes
// share one quota per identifier.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	clock  clock.Clock
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to every Redis key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.prefix = prefix
	}
}

// WithRedisClock sets the clock used to turn Redis TTLs into reset times.
func WithRedisClock(c clock.Clock) RedisStoreOption {
	return func(rs *RedisStore) {
		if c != nil {
			rs.clock = c
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		clock:  clock.System(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Take implements Store.
func (rs *RedisStore) Take(ctx context.Context, key string, limit int, window time.Duration) (Window, bool, error) {
	res, err := takeScript.Run(ctx, rs.client, []string{rs.prefix + key}, limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Window{}, false, err
	}

	count, ttl, admitted := res[0], res[1], res[2] == 1
	return Window{
		Count:   int(count),
		ResetAt: rs.resetAt(ttl),
	}, admitted, nil
}

// Peek implements Store.
func (rs *RedisStore) Peek(ctx context.Context, key string) (Window, bool, error) {
	k := rs.prefix + key

	pipe := rs.client.Pipeline()
	getCmd := pipe.Get(ctx, k)
	ttlCmd := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return Window{}, false, err
	}

	count, err := getCmd.Int()
	if err == redis.Nil {
		return Window{}, false, nil
	}
	if err != nil {
		return Window{}, false, err
	}

	ttl := ttlCmd.Val()
	if ttl <= 0 {
		return Window{}, false, nil
	}

	return Window{Count: count, ResetAt: rs.clock.Now().Add(ttl)}, true, nil
}

// Reset implements Store.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	return rs.client.Del(ctx, rs.prefix+key).Err()
}

func (rs *RedisStore) resetAt(ttlMillis int64) time.Time {
	now := rs.clock.Now()
	if ttlMillis <= 0 {
		return now
	}
	return now.Add(time.Duration(ttlMillis) * time.Millisecond)
}
