package booking

import (
	"context"
	"time"

	"gymbooking/internal/domain"

	"github.com/google/uuid"
)

// BookingRepository owns the reserve and cancel transactions.
type BookingRepository interface {
	Reserve(ctx context.Context, b *domain.Booking, now time.Time) error
	Cancel(ctx context.Context, id uuid.UUID, authorize func(*domain.Booking) error, at time.Time) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type SlotReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error)
}
