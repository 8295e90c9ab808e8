package catalog

import (
	"github.com/google/uuid"
)

type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Slug    string `json:"slug" validate:"required,max=64"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=32"`
}

type CreateStaffRequest struct {
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name" validate:"required,max=100"`
	Bio       string    `json:"bio" validate:"max=2000"`
	AvatarURL string    `json:"avatar_url" validate:"omitempty,url"`
}

type UpdateStaffRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Bio       string `json:"bio" validate:"max=2000"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Category        string `json:"category" validate:"required,oneof=training seitai"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0,lte=480"`
	Color           string `json:"color" validate:"omitempty,hexcolor"`
}

type CreateGuestRequest struct {
	Name     string     `json:"name" validate:"required,max=100"`
	Email    string     `json:"email" validate:"required,email"`
	Phone    string     `json:"phone" validate:"max=32"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	StoreID  *uuid.UUID `json:"store_id,omitempty"`
}
