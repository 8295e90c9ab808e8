package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          uuid.UUID     `json:"id"`
	SlotID      uuid.UUID     `json:"slot_id"`
	GuestID     uuid.UUID     `json:"guest_id"`
	Status      BookingStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingConfirmed
}

// OwnedBy reports whether the booking was made for the given profile.
func (b *Booking) OwnedBy(profileID uuid.UUID) bool {
	return b.GuestID == profileID
}
