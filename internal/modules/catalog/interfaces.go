package catalog

import (
	"context"

	"gymbooking/internal/domain"
	"gymbooking/internal/repository"

	"github.com/google/uuid"
)

type StoreRepository interface {
	Create(ctx context.Context, s *domain.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f repository.StaffFilters) ([]domain.Staff, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	List(ctx context.Context) ([]domain.Service, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	SetActive(ctx context.Context, id uuid.UUID, role domain.UserRole, active bool) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.Profile, error)
}
