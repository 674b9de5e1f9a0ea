package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection(CollectionOrders),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter repo.OrderFilter) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.TableNumber != "" {
		query["table_number"] = filter.TableNumber
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]domain.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

// UpdateStatusFrom writes the new status only if the stored status still
// equals from. A MatchedCount of zero means either the order vanished or a
// concurrent writer moved it first; the re-read tells the two apart.
func (r *OrderRepository) UpdateStatusFrom(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"order_id": orderID,
		"status":   from,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.MatchedCount == 0 {
		var current domain.Order
		err := r.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&current)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to re-read order after status conflict: %w", err)
		}
		if current.Status == to {
			// the concurrent writer made the same transition
			return nil
		}
		return &domain.InvalidTransitionError{From: current.Status, To: to}
	}

	return nil
}

func (r *OrderRepository) AssignWaiter(ctx context.Context, orderID, staffID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"assigned_waiter": staffID,
			"updated_at":      time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to assign waiter: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
