package slot

import (
	"time"

	"github.com/google/uuid"
)

// CreateSlotRequest has no end time; it always follows from the service.
type CreateSlotRequest struct {
	StoreID   uuid.UUID `json:"store_id"`
	StaffID   uuid.UUID `json:"staff_id"`
	ServiceID uuid.UUID `json:"service_id"`
	StartTime time.Time `json:"start_time"`
}

type SetPublishedRequest struct {
	Published *bool `json:"published" binding:"required"`
}
