// Package redis connects to the Redis server that backs the shared
// admission store when several landing instances run side by side.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := ratelimiter.NewRedisStore(client)
//	ready := httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)}
//
// Errors wrap the go-redis cause with errors.Join so callers can match the
// sentinels with errors.Is.
package redis
