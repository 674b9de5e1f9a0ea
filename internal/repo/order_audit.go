package repo

import (
	"context"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

type OrderAuditRepository interface {
	Create(ctx context.Context, audit *domain.OrderStatusAudit) error
	GetByOrderID(ctx context.Context, orderID string, limit int) ([]domain.OrderStatusAudit, error)
}
