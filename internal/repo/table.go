package repo

import (
	"context"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	GetByNumber(ctx context.Context, number string) (*domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	UpdateStatus(ctx context.Context, number string, status domain.TableStatus) error
	Delete(ctx context.Context, number string) error
}
