package repo

import (
	"context"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
