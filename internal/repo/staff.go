package repo

import (
	"context"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
)

type StaffRepository interface {
	Create(ctx context.Context, profile *domain.StaffProfile) error
	// GetByRoleAndID looks up by the (role, staff_id) pair, case-normalized
	// to uppercase by the caller.
	GetByRoleAndID(ctx context.Context, role domain.StaffRole, staffID string) (*domain.StaffProfile, error)
	List(ctx context.Context) ([]domain.StaffProfile, error)
	CountByRole(ctx context.Context, role domain.StaffRole) (int64, error)
	Delete(ctx context.Context, staffID string) error
}
