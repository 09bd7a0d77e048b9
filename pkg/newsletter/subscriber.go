package newsletter

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter subscription record. Email is unique.
// Active implies DeactivatedAt is nil.
type Subscriber struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Active        bool       `json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewSubscriber returns an active subscriber for email created at now.
func NewSubscriber(email string, now time.Time) Subscriber {
	return Subscriber{
		ID:        uuid.New(),
		Email:     email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InsertOutcome is the result of a conditional insert.
type InsertOutcome int

const (
	// Inserted means the record was written.
	Inserted InsertOutcome = iota + 1
	// AlreadyExists means a record with the same email was already present.
	AlreadyExists
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// Outcome describes which path Resolve took. Every outcome means the identity
// is subscribed.
type Outcome string

const (
	OutcomeCreated          Outcome = "created"
	OutcomeAlreadyActive    Outcome = "already_active"
	OutcomeReactivated      Outcome = "reactivated"
	OutcomeConcurrentInsert Outcome = "concurrent_insert"
)

// Result is returned by a successful Resolve.
type Result struct {
	Email   string
	Outcome Outcome
}
