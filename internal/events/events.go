// Package events carries post-commit notifications about slots and bookings
// to whoever listens: the broker, websocket clients, or nobody.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SlotCreated      = "slot.created"
	SlotPublished    = "slot.published"
	SlotUnpublished  = "slot.unpublished"
	SlotDeleted      = "slot.deleted"
	BookingReserved  = "booking.reserved"
	BookingCancelled = "booking.cancelled"
	BookingReminder  = "booking.reminder"
)

type Sink interface {
	Publish(ctx context.Context, key string, payload any) error
}

type SlotEvent struct {
	SlotID      uuid.UUID `json:"slot_id"`
	StoreID     uuid.UUID `json:"store_id"`
	StaffID     uuid.UUID `json:"staff_id"`
	ServiceID   uuid.UUID `json:"service_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsPublished bool      `json:"is_published"`
}

func (e SlotEvent) StoreKey() uuid.UUID { return e.StoreID }

type BookingEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	SlotID    uuid.UUID `json:"slot_id"`
	StoreID   uuid.UUID `json:"store_id"`
	GuestID   uuid.UUID `json:"guest_id"`
	Status    string    `json:"status"`
	ActorID   uuid.UUID `json:"actor_id"`
	At        time.Time `json:"at"`
}

func (e BookingEvent) StoreKey() uuid.UUID { return e.StoreID }

// Nop drops everything.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// Multi publishes to every sink and joins their errors.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, key string, payload any) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, key, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emit publishes and logs a failure. The command that produced the event has
// already committed, so the failure is not returned.
func Emit(ctx context.Context, sink Sink, log *zap.Logger, key string, payload any) {
	if sink == nil {
		return
	}
	if err := sink.Publish(context.WithoutCancel(ctx), key, payload); err != nil && log != nil {
		log.Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}
