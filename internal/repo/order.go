package repo

import (
	"context"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

type OrderFilter struct {
	TableNumber string
	Status      domain.OrderStatus
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	// UpdateStatusFrom commits the transition as a single conditional write:
	// the stored status must still equal from, so two racing writers cannot
	// both pass validation against a stale current status.
	UpdateStatusFrom(ctx context.Context, orderID string, from, to domain.OrderStatus) error
	AssignWaiter(ctx context.Context, orderID, staffID string) error
	Delete(ctx context.Context, orderID string) error
}
