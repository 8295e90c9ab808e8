package reminder

import (
	"context"
	"time"

	"gymbooking/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reminder is the message handed to the mail collaborator. StartTime is in
// the store's local zone.
type Reminder struct {
	BookingID   uuid.UUID `json:"booking_id"`
	GuestID     uuid.UUID `json:"guest_id"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	StartTime   time.Time `json:"start_time"`
	StoreName   string    `json:"store_name"`
	StaffName   string    `json:"staff_name"`
	ServiceName string    `json:"service_name"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, r Reminder) error
}

// JSONPublisher is satisfied by mq.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type brokerDispatcher struct {
	pub JSONPublisher
}

// NewBrokerDispatcher publishes each reminder under events.BookingReminder.
func NewBrokerDispatcher(pub JSONPublisher) Dispatcher {
	return &brokerDispatcher{pub: pub}
}

func (d *brokerDispatcher) Dispatch(ctx context.Context, r Reminder) error {
	return d.pub.PublishJSON(ctx, events.BookingReminder, r)
}

type logDispatcher struct {
	log *zap.Logger
}

// NewLogDispatcher is used when no broker is configured.
func NewLogDispatcher(log *zap.Logger) Dispatcher {
	return &logDispatcher{log: log}
}

func (d *logDispatcher) Dispatch(_ context.Context, r Reminder) error {
	d.log.Info("reminder",
		zap.String("booking_id", r.BookingID.String()),
		zap.String("guest_email", r.GuestEmail),
		zap.Time("start_time", r.StartTime),
		zap.String("store", r.StoreName),
		zap.String("service", r.ServiceName),
	)
	return nil
}
