package booking

import "github.com/google/uuid"

const maxNotesLength = 500

type ReserveRequest struct {
	SlotID uuid.UUID `json:"slot_id"`
	// GuestID lets an admin book on behalf of a guest. Guests leave it empty.
	GuestID *uuid.UUID `json:"guest_id,omitempty"`
	Notes   string     `json:"notes"`
}
