package pg

import (
	"context"
	"errors"
)

// Pinger is the part of *pgxpool.Pool a readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthcheck returns a readiness probe for the subscriber database.
func Healthcheck(db Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		err := db.Ping(ctx)
		if err == nil {
			return nil
		}
		return errors.Join(ErrHealthcheckFailed, err)
	}
}
