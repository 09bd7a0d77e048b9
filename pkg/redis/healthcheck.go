package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness probe for the shared admission store.
// Anything other than PONG counts as a failure.
func Healthcheck(client redis.Cmdable) func(context.Context) error {
	return func(ctx context.Context) error {
		reply, err := client.Ping(ctx).Result()
		if err == nil && reply != "PONG" {
			err = fmt.Errorf("unexpected ping reply %q", reply)
		}
		if err != nil {
			return errors.Join(ErrUnhealthy, err)
		}
		return nil
	}
}
