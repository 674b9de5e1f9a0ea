package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// managerLockID is the _id of the single advisory-lock document. One record
// per deployment backs the one-active-manager invariant.
const managerLockID = "manager"

type managerLockDoc struct {
	ID        string    `bson:"_id"`
	StaffID   string    `bson:"staff_id"`
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
}

type ManagerLockRepository struct {
	collection *mongo.Collection
}

func NewManagerLockRepository(db *mongo.Database) *ManagerLockRepository {
	return &ManagerLockRepository{
		collection: db.Collection(CollectionManagerLock),
	}
}

// Acquire atomically takes the lock when it is free, expired, or already
// held by the same staff id (renewal rebinds it to the new token). When a
// different staff id holds an unexpired lock the filter matches nothing
// and the upsert collides with the existing _id, which surfaces as a
// duplicate-key error.
func (r *ManagerLockRepository) Acquire(ctx context.Context, staffID, token string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"_id": managerLockID,
		"$or": []bson.M{
			{"staff_id": staffID},
			{"expires_at": bson.M{"$lt": now}},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"staff_id":   staffID,
			"token":      token,
			"expires_at": now.Add(ttl),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true)

	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Err()
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrManagerActive
		}
		return fmt.Errorf("failed to acquire manager lock: %w", err)
	}

	return nil
}

// Release deletes the lock only when the caller's session token is the
// one the lock currently backs; a logout of an older token of the same
// staff id matches nothing and leaves the lock in place.
func (r *ManagerLockRepository) Release(ctx context.Context, staffID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":      managerLockID,
		"staff_id": staffID,
		"token":    token,
	}

	_, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to release manager lock: %w", err)
	}

	return nil
}

func (r *ManagerLockRepository) Holder(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc managerLockDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": managerLockID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read manager lock: %w", err)
	}

	if time.Now().After(doc.ExpiresAt) {
		return "", nil
	}

	return doc.StaffID, nil
}
