package query

import (
	"context"
	"time"

	"gymbooking/internal/domain"
	"gymbooking/internal/repository"

	"github.com/google/uuid"
)

type Repository interface {
	AvailableSlots(ctx context.Context, storeID, serviceID uuid.UUID, from, to, now time.Time) ([]repository.AvailableSlotRow, error)
	SlotBoard(ctx context.Context, storeID *uuid.UUID, from, to time.Time) ([]repository.SlotBoardRow, error)
	BookingsForGuest(ctx context.Context, guestID uuid.UUID) ([]repository.BookingRow, error)
	Bookings(ctx context.Context, status *domain.BookingStatus, limit, offset int) ([]repository.BookingRow, error)
	UpcomingBookings(ctx context.Context, now time.Time, limit int) ([]repository.BookingRow, error)
	BookingsStartingBetween(ctx context.Context, from, to time.Time) ([]repository.BookingRow, error)
	CountPublishedSlots(ctx context.Context) (int64, error)
	CountConfirmedBookings(ctx context.Context) (int64, error)
	CountActiveGuests(ctx context.Context) (int64, error)
	CountActiveStaff(ctx context.Context) (int64, error)
}
