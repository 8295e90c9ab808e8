package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleGuest UserRole = "guest"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleGuest
}

// Profile is the identity behind a principal. Authentication happens
// elsewhere; the hash is kept for the external sign-in flow.
type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Role         UserRole   `json:"role"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	StoreID      *uuid.UUID `json:"store_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Principal is the authenticated caller handed to every command.
type Principal struct {
	ID   uuid.UUID
	Role UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsGuest() bool {
	return p.Role == RoleGuest
}
