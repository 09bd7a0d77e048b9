package newsletter

import (
	"context"
	"time"
)

// Store persists subscribers. Implementations must enforce email uniqueness.
type Store interface {
	// FindByEmail returns ErrSubscriberNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (Subscriber, error)

	// Insert writes sub unless a record with the same email exists, in which
	// case it returns AlreadyExists and a nil error.
	Insert(ctx context.Context, sub Subscriber) (InsertOutcome, error)

	// Reactivate marks the record for email active and clears DeactivatedAt.
	// Returns ErrSubscriberNotFound when no record exists.
	Reactivate(ctx context.Context, email string, now time.Time) error
}
