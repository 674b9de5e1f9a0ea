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

type StaffRepository struct {
	collection *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{
		collection: db.Collection(CollectionProfiles),
	}
}

func (r *StaffRepository) Create(ctx context.Context, profile *domain.StaffProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	profile.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to create staff profile: %w", err)
	}

	return nil
}

func (r *StaffRepository) GetByRoleAndID(ctx context.Context, role domain.StaffRole, staffID string) (*domain.StaffProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile domain.StaffProfile
	err := r.collection.FindOne(ctx, bson.M{"role": role, "staff_id": staffID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff profile: %w", err)
	}

	return &profile, nil
}

func (r *StaffRepository) List(ctx context.Context) ([]domain.StaffProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := make([]domain.StaffProfile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode staff profiles: %w", err)
	}

	return profiles, nil
}

func (r *StaffRepository) CountByRole(ctx context.Context, role domain.StaffRole) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count staff profiles: %w", err)
	}

	return count, nil
}

func (r *StaffRepository) Delete(ctx context.Context, staffID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"staff_id": staffID})
	if err != nil {
		return fmt.Errorf("failed to delete staff profile: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
