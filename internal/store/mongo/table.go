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

type TableRepository struct {
	collection *mongo.Collection
}

func NewTableRepository(db *mongo.Database) *TableRepository {
	return &TableRepository{
		collection: db.Collection(CollectionTables),
	}
}

func (r *TableRepository) Create(ctx context.Context, table *domain.Table) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	table.CreatedAt = time.Now()
	table.UpdatedAt = table.CreatedAt

	_, err := r.collection.InsertOne(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

func (r *TableRepository) GetByNumber(ctx context.Context, number string) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var table domain.Table
	err := r.collection.FindOne(ctx, bson.M{"table_number": number}).Decode(&table)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return &table, nil
}

func (r *TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "table_number", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer cursor.Close(ctx)

	tables := make([]domain.Table, 0)
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}

	return tables, nil
}

func (r *TableRepository) UpdateStatus(ctx context.Context, number string, status domain.TableStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"table_number": number}, update)
	if err != nil {
		return fmt.Errorf("failed to update table status: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *TableRepository) Delete(ctx context.Context, number string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"table_number": number})
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
