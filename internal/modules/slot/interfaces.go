package slot

import (
	"context"

	"gymbooking/internal/domain"

	"github.com/google/uuid"
)

type SlotRepository interface {
	Create(ctx context.Context, s *domain.AvailabilitySlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.AvailabilitySlot, error)
	DeleteUnbooked(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error)
}

type StaffReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
}

type ServiceReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}
