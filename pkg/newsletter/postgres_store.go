package newsletter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/landing/pkg/pg"
)

// DBTX is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by PostgresStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	findSubscriberQuery = `SELECT id, email, active, deactivated_at, created_at, updated_at
FROM newsletter_subscribers
WHERE email = $1`

	insertSubscriberQuery = `INSERT INTO newsletter_subscribers (id, email, active, deactivated_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO NOTHING`

	reactivateSubscriberQuery = `UPDATE newsletter_subscribers
SET active = TRUE, deactivated_at = NULL, updated_at = $2
WHERE email = $1`
)

// PostgresStore implements Store on the newsletter_subscribers table.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a store over db.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindByEmail returns the row for email or ErrSubscriberNotFound.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	var sub Subscriber
	err := s.db.QueryRow(ctx, findSubscriberQuery, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.Active,
		&sub.DeactivatedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if pg.IsNotFoundError(err) {
		return Subscriber{}, ErrSubscriberNotFound
	}
	if err != nil {
		return Subscriber{}, err
	}
	return sub, nil
}

// Insert relies on ON CONFLICT DO NOTHING: zero affected rows means another
// writer holds the email. A 23505 from a different unique path maps the same.
func (s *PostgresStore) Insert(ctx context.Context, sub Subscriber) (InsertOutcome, error) {
	tag, err := s.db.Exec(ctx, insertSubscriberQuery,
		sub.ID,
		sub.Email,
		sub.Active,
		sub.DeactivatedAt,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if pg.IsDuplicateKeyError(err) {
		return AlreadyExists, nil
	}
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return AlreadyExists, nil
	}
	return Inserted, nil
}

// Reactivate sets active and clears deactivated_at for email.
// It returns ErrSubscriberNotFound when no row matches.
func (s *PostgresStore) Reactivate(ctx context.Context, email string, now time.Time) error {
	tag, err := s.db.Exec(ctx, reactivateSubscriberQuery, email, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}
