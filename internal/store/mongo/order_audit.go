package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderAuditRepository struct {
	collection *mongo.Collection
}

func NewOrderAuditRepository(db *mongo.Database) *OrderAuditRepository {
	return &OrderAuditRepository{
		collection: db.Collection(CollectionOrderAudit),
	}
}

func (r *OrderAuditRepository) Create(ctx context.Context, audit *domain.OrderStatusAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create order audit record: %w", err)
	}

	return nil
}

func (r *OrderAuditRepository) GetByOrderID(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get order audit records: %w", err)
	}
	defer cursor.Close(ctx)

	audits := make([]domain.OrderStatusAudit, 0)
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode order audit records: %w", err)
	}

	return audits, nil
}
