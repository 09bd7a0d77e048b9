package newsletter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the collection MongoStore uses unless told otherwise.
const DefaultCollection = "newsletter_subscribers"

// MongoStore implements Store on a MongoDB collection with a unique index on email.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over coll. Call EnsureIndexes before use.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureIndexes creates the unique email index. Idempotent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}

// mongoSubscriber stores the UUID as its string form.
type mongoSubscriber struct {
	ID            string     `bson:"_id"`
	Email         string     `bson:"email"`
	Active        bool       `bson:"active"`
	DeactivatedAt *time.Time `bson:"deactivated_at"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

// FindByEmail returns the document for email or ErrSubscriberNotFound.
func (s *MongoStore) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	var doc mongoSubscriber
	err := s.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Subscriber{}, ErrSubscriberNotFound
	}
	if err != nil {
		return Subscriber{}, err
	}
	return doc.toSubscriber()
}

// Insert writes sub. The unique email index arbitrates concurrent inserts,
// and the loser gets AlreadyExists.
func (s *MongoStore) Insert(ctx context.Context, sub Subscriber) (InsertOutcome, error) {
	_, err := s.coll.InsertOne(ctx, mongoSubscriber{
		ID:            sub.ID.String(),
		Email:         sub.Email,
		Active:        sub.Active,
		DeactivatedAt: sub.DeactivatedAt,
		CreatedAt:     sub.CreatedAt,
		UpdatedAt:     sub.UpdatedAt,
	})
	return insertOutcome(err)
}

// insertOutcome maps the result of InsertOne onto the store contract.
// A unique-index violation means a concurrent writer won the race.
func insertOutcome(err error) (InsertOutcome, error) {
	switch {
	case err == nil:
		return Inserted, nil
	case mongo.IsDuplicateKeyError(err):
		return AlreadyExists, nil
	default:
		return 0, err
	}
}

// Reactivate sets active and clears deactivated_at for email.
// It returns ErrSubscriberNotFound when no document matches.
func (s *MongoStore) Reactivate(ctx context.Context, email string, now time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "active", Value: true},
			{Key: "deactivated_at", Value: nil},
			{Key: "updated_at", Value: now},
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

func (d mongoSubscriber) toSubscriber() (Subscriber, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return Subscriber{}, err
	}
	return Subscriber{
		ID:            id,
		Email:         d.Email,
		Active:        d.Active,
		DeactivatedAt: d.DeactivatedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}
