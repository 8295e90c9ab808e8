package domain

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrSlotNotPublished  = errors.New("slot is not published")
	ErrSlotInPast        = errors.New("slot has already started")
	ErrSlotConflict      = errors.New("slot overlaps an existing slot for this staff member")
	ErrSlotAlreadyBooked = errors.New("slot is already booked")
	ErrSlotHasBooking    = errors.New("slot has a confirmed booking")
	ErrStaffHasSlots     = errors.New("staff member still has slots")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not_found")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrDuplicate         = errors.New("already exists")
)

// IsConflict reports errors caused by concurrent use of the same slot or
// staff calendar. They are returned to the caller as-is and never retried.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrSlotAlreadyBooked)
}
