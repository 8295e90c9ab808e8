package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymbooking/internal/domain"
	"gymbooking/internal/events"
	"gymbooking/internal/pkg/obs"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Service struct {
	slots    SlotRepository
	staff    StaffReader
	services ServiceReader
	sink     events.Sink
	log      *zap.Logger
	now      func() time.Time
}

func NewService(slots SlotRepository, staff StaffReader, services ServiceReader, sink events.Sink, log *zap.Logger) *Service {
	if sink == nil {
		sink = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		slots:    slots,
		staff:    staff,
		services: services,
		sink:     sink,
		log:      log,
		now:      time.Now,
	}
}

// CreateSlot adds an unpublished slot. Overlap with another slot of the same
// staff member comes back as domain.ErrSlotConflict.
func (s *Service) CreateSlot(ctx context.Context, p domain.Principal, req CreateSlotRequest) (*domain.AvailabilitySlot, error) {
	ctx, span := obs.Tracer().Start(ctx, "slot.Create")
	defer span.End()

	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if req.StoreID == uuid.Nil || req.StaffID == uuid.Nil || req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: store_id, staff_id and service_id are required", domain.ErrValidation)
	}
	if req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: start_time is required", domain.ErrValidation)
	}

	start := req.StartTime.UTC().Truncate(time.Minute)
	if start.Before(s.now()) {
		return nil, fmt.Errorf("%w: start_time is in the past", domain.ErrValidation)
	}

	staff, err := s.staff.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown staff", domain.ErrValidation)
		}
		return nil, err
	}
	if !staff.IsActive {
		return nil, fmt.Errorf("%w: staff is inactive", domain.ErrValidation)
	}
	if staff.StoreID != req.StoreID {
		return nil, fmt.Errorf("%w: staff does not belong to store", domain.ErrValidation)
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown service", domain.ErrValidation)
		}
		return nil, err
	}

	slot := &domain.AvailabilitySlot{
		StoreID:   req.StoreID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		StartTime: start,
		EndTime:   start.Add(svc.Duration()),
	}
	span.SetAttributes(
		attribute.String("staff_id", slot.StaffID.String()),
		attribute.String("start_time", slot.StartTime.Format(time.RFC3339)),
	)

	if err := s.slots.Create(ctx, slot); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown store", domain.ErrValidation)
		}
		return nil, err
	}

	s.log.Info("slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("staff_id", slot.StaffID.String()),
		zap.Time("start_time", slot.StartTime),
	)
	events.Emit(ctx, s.sink, s.log, events.SlotCreated, slotEvent(slot))
	return slot, nil
}

// SetPublished flips guest visibility. Overlap is not re-checked.
func (s *Service) SetPublished(ctx context.Context, p domain.Principal, slotID uuid.UUID, published bool) (*domain.AvailabilitySlot, error) {
	ctx, span := obs.Tracer().Start(ctx, "slot.SetPublished")
	defer span.End()

	if !p.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	slot, err := s.slots.SetPublished(ctx, slotID, published)
	if err != nil {
		return nil, err
	}

	key := events.SlotUnpublished
	if published {
		key = events.SlotPublished
	}
	events.Emit(ctx, s.sink, s.log, key, slotEvent(slot))
	return slot, nil
}

// DeleteSlot removes a slot without a confirmed booking. Cancelled bookings
// on the slot are deleted with it, so they also drop out of the guest's
// cancelled history.
func (s *Service) DeleteSlot(ctx context.Context, p domain.Principal, slotID uuid.UUID) error {
	ctx, span := obs.Tracer().Start(ctx, "slot.Delete")
	defer span.End()

	if !p.IsAdmin() {
		return domain.ErrForbidden
	}
	slot, err := s.slots.DeleteUnbooked(ctx, slotID)
	if err != nil {
		return err
	}

	s.log.Info("slot deleted", zap.String("slot_id", slotID.String()))
	events.Emit(ctx, s.sink, s.log, events.SlotDeleted, slotEvent(slot))
	return nil
}

func (s *Service) GetSlot(ctx context.Context, slotID uuid.UUID) (*domain.AvailabilitySlot, error) {
	return s.slots.GetByID(ctx, slotID)
}

func slotEvent(s *domain.AvailabilitySlot) events.SlotEvent {
	return events.SlotEvent{
		SlotID:      s.ID,
		StoreID:     s.StoreID,
		StaffID:     s.StaffID,
		ServiceID:   s.ServiceID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		IsPublished: s.IsPublished,
	}
}
