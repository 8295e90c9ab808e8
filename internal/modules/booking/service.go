package booking

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"gymbooking/internal/domain"
	"gymbooking/internal/events"
	"gymbooking/internal/pkg/obs"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Service struct {
	bookings BookingRepository
	slots    SlotReader
	sink     events.Sink
	log      *zap.Logger
	now      func() time.Time
}

func NewService(bookings BookingRepository, slots SlotReader, sink events.Sink, log *zap.Logger) *Service {
	if sink == nil {
		sink = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		slots:    slots,
		sink:     sink,
		log:      log,
		now:      time.Now,
	}
}

// Reserve books a slot for the caller, or for req.GuestID when the caller is
// an admin. Losing a race for the slot returns domain.ErrSlotAlreadyBooked;
// the call is never retried.
func (s *Service) Reserve(ctx context.Context, p domain.Principal, req ReserveRequest) (*domain.Booking, error) {
	ctx, span := obs.Tracer().Start(ctx, "booking.Reserve")
	defer span.End()

	if req.SlotID == uuid.Nil {
		return nil, fmt.Errorf("%w: slot_id is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(req.Notes) > maxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", domain.ErrValidation, maxNotesLength)
	}

	guestID := p.ID
	if req.GuestID != nil && *req.GuestID != p.ID {
		if !p.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		guestID = *req.GuestID
	}
	span.SetAttributes(attribute.String("slot_id", req.SlotID.String()))

	b := &domain.Booking{
		SlotID:  req.SlotID,
		GuestID: guestID,
		Notes:   req.Notes,
	}
	if err := s.bookings.Reserve(ctx, b, s.now()); err != nil {
		if domain.IsConflict(err) {
			s.log.Info("reserve lost", zap.String("slot_id", req.SlotID.String()), zap.Error(err))
		}
		return nil, err
	}

	s.log.Info("booking reserved",
		zap.String("booking_id", b.ID.String()),
		zap.String("slot_id", b.SlotID.String()),
		zap.String("guest_id", b.GuestID.String()),
	)
	events.Emit(ctx, s.sink, s.log, events.BookingReserved, s.bookingEvent(ctx, b, p))
	return b, nil
}

// Cancel is allowed for the booking's guest and for admins. Cancelled is
// terminal.
func (s *Service) Cancel(ctx context.Context, p domain.Principal, bookingID uuid.UUID) (*domain.Booking, error) {
	ctx, span := obs.Tracer().Start(ctx, "booking.Cancel")
	defer span.End()

	b, err := s.bookings.Cancel(ctx, bookingID, func(b *domain.Booking) error {
		return authorize(p, b)
	}, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Info("booking cancelled",
		zap.String("booking_id", b.ID.String()),
		zap.String("actor_id", p.ID.String()),
	)
	events.Emit(ctx, s.sink, s.log, events.BookingCancelled, s.bookingEvent(ctx, b, p))
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, p domain.Principal, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, b); err != nil {
		return nil, err
	}
	return b, nil
}

func authorize(p domain.Principal, b *domain.Booking) error {
	if p.IsAdmin() || b.OwnedBy(p.ID) {
		return nil
	}
	return domain.ErrForbidden
}

func (s *Service) bookingEvent(ctx context.Context, b *domain.Booking, actor domain.Principal) events.BookingEvent {
	ev := events.BookingEvent{
		BookingID: b.ID,
		SlotID:    b.SlotID,
		GuestID:   b.GuestID,
		Status:    string(b.Status),
		ActorID:   actor.ID,
		At:        s.now().UTC(),
	}
	if slot, err := s.slots.GetByID(ctx, b.SlotID); err == nil {
		ev.StoreID = slot.StoreID
	} else {
		s.log.Debug("slot lookup for event failed", zap.String("slot_id", b.SlotID.String()), zap.Error(err))
	}
	return ev
}
