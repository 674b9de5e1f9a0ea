package service

import (
	"context"
	"fmt"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MenuService struct {
	menuRepo repo.MenuRepository
	logger   *zap.SugaredLogger
}

func NewMenuService(menuRepo repo.MenuRepository, logger *zap.SugaredLogger) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		logger:   logger,
	}
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidOrder)
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidOrder)
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Infow("menu item created", "item_id", item.ID.Hex(), "name", item.Name)

	return item, nil
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if item.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidOrder)
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return err
	}

	s.logger.Infow("menu item updated", "item_id", item.ID.Hex(), "name", item.Name)

	return nil
}

// SetAvailability toggles visibility without deleting the item.
func (s *MenuService) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	if err := s.menuRepo.SetAvailability(ctx, id, available); err != nil {
		return err
	}

	s.logger.Infow("menu item availability changed", "item_id", id.Hex(), "available", available)

	return nil
}

func (s *MenuService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("menu item deleted", "item_id", id.Hex())

	return nil
}

func (s *MenuService) Get(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	return s.menuRepo.GetByID(ctx, id)
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menuRepo.List(ctx)
}

// EnsureDefaultCatalogue seeds the fixed default menu when the collection
// is empty on first start.
func (s *MenuService) EnsureDefaultCatalogue(ctx context.Context) error {
	count, err := s.menuRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count menu items: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, item := range domain.DefaultCatalogue() {
		item := item
		if err := s.menuRepo.Create(ctx, &item); err != nil {
			return fmt.Errorf("failed to seed menu item %s: %w", item.Name, err)
		}
	}

	s.logger.Info("default menu catalogue seeded")

	return nil
}
