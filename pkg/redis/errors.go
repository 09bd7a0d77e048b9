package redis

import "errors"

// Sentinels returned by Connect and Healthcheck. The go-redis cause is
// attached with errors.Join.
var (
	ErrEmptyURL   = errors.New("redis: connection URL is empty")
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	ErrNotReady   = errors.New("redis: server did not answer in time")
	ErrUnhealthy  = errors.New("redis: ping failed")
)
