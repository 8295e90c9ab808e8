package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a fixed interval during which one staff member delivers
// one service at one store. EndTime is always StartTime plus the service
// duration; the interval is half-open.
type AvailabilitySlot struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	StaffID     uuid.UUID `json:"staff_id"`
	ServiceID   uuid.UUID `json:"service_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Overlaps uses the half-open rule: touching intervals do not overlap.
func (s *AvailabilitySlot) Overlaps(start, end time.Time) bool {
	return start.Before(s.EndTime) && end.After(s.StartTime)
}

func (s *AvailabilitySlot) StartsBefore(t time.Time) bool {
	return s.StartTime.Before(t)
}
