package newsletter

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store keyed by email.
type MemoryStore struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subscribers: make(map[string]Subscriber),
	}
}

// FindByEmail returns the record for email or ErrSubscriberNotFound.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	if err := ctx.Err(); err != nil {
		return Subscriber{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscribers[email]
	if !ok {
		return Subscriber{}, ErrSubscriberNotFound
	}
	return sub, nil
}

// Insert stores sub unless its email is already present, in which case it
// reports AlreadyExists. The check and the write share one lock.
func (s *MemoryStore) Insert(ctx context.Context, sub Subscriber) (InsertOutcome, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[sub.Email]; ok {
		return AlreadyExists, nil
	}
	s.subscribers[sub.Email] = sub
	return Inserted, nil
}

// Reactivate marks the record for email active and clears DeactivatedAt.
// It returns ErrSubscriberNotFound when no record matches.
func (s *MemoryStore) Reactivate(ctx context.Context, email string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscribers[email]
	if !ok {
		return ErrSubscriberNotFound
	}
	sub.Active = true
	sub.DeactivatedAt = nil
	sub.UpdatedAt = now
	s.subscribers[email] = sub
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
