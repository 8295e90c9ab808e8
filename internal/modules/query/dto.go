package query

import (
	"time"

	"gymbooking/internal/domain"

	"github.com/google/uuid"
)

type AvailabilityQuery struct {
	StoreID   uuid.UUID
	ServiceID uuid.UUID
	// Date is a calendar day; only its local year, month and day are used.
	Date time.Time
}

type AvailableSlot struct {
	SlotID       uuid.UUID `json:"slot_id"`
	StoreID      uuid.UUID `json:"store_id"`
	StaffID      uuid.UUID `json:"staff_id"`
	StaffName    string    `json:"staff_name"`
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServiceColor string    `json:"service_color"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

type SlotBoardQuery struct {
	StoreID *uuid.UUID
	From    *time.Time
	Days    int
}

type BoardBooking struct {
	ID        uuid.UUID            `json:"id"`
	Status    domain.BookingStatus `json:"status"`
	GuestName string               `json:"guest_name"`
}

type SlotBoardRow struct {
	SlotID       uuid.UUID     `json:"slot_id"`
	StoreID      uuid.UUID     `json:"store_id"`
	StoreName    string        `json:"store_name"`
	StaffID      uuid.UUID     `json:"staff_id"`
	StaffName    string        `json:"staff_name"`
	ServiceID    uuid.UUID     `json:"service_id"`
	ServiceName  string        `json:"service_name"`
	ServiceColor string        `json:"service_color"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	IsPublished  bool          `json:"is_published"`
	Booking      *BoardBooking `json:"booking,omitempty"`
}

type BookingView struct {
	ID              uuid.UUID              `json:"id"`
	Status          domain.BookingStatus   `json:"status"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	CancelledAt     *time.Time             `json:"cancelled_at,omitempty"`
	SlotID          uuid.UUID              `json:"slot_id"`
	StartTime       time.Time              `json:"start_time"`
	EndTime         time.Time              `json:"end_time"`
	StoreID         uuid.UUID              `json:"store_id"`
	StoreName       string                 `json:"store_name"`
	StaffName       string                 `json:"staff_name"`
	ServiceName     string                 `json:"service_name"`
	ServiceCategory domain.ServiceCategory `json:"service_category"`
	GuestID         uuid.UUID              `json:"guest_id"`
	GuestName       string                 `json:"guest_name"`
	GuestEmail      string                 `json:"guest_email"`
}

type GuestBookings struct {
	Upcoming  []BookingView `json:"upcoming"`
	Past      []BookingView `json:"past"`
	Cancelled []BookingView `json:"cancelled"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type AdminBookingQuery struct {
	Status *domain.BookingStatus
	Limit  int
	Offset int
}

// normalized caps Limit at MaxPageLimit and fills in defaults. Handlers
// echo the normalized values so clients see the page they actually got.
func (q AdminBookingQuery) normalized() AdminBookingQuery {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultPageLimit
	case q.Limit > MaxPageLimit:
		q.Limit = MaxPageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

type DashboardStats struct {
	PublishedSlots    int64         `json:"published_slots"`
	ConfirmedBookings int64         `json:"confirmed_bookings"`
	ActiveGuests      int64         `json:"active_guests"`
	ActiveStaff       int64         `json:"active_staff"`
	Upcoming          []BookingView `json:"upcoming"`
}

type ReminderView struct {
	BookingID   uuid.UUID `json:"booking_id"`
	GuestID     uuid.UUID `json:"guest_id"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	StoreName   string    `json:"store_name"`
	StaffName   string    `json:"staff_name"`
	ServiceName string    `json:"service_name"`
}
