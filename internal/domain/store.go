package domain

import (
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Slug      string    `json:"slug" validate:"required"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Staff struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name" validate:"required"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type ServiceCategory string

const (
	CategoryTraining ServiceCategory = "training"
	CategorySeitai   ServiceCategory = "seitai"
)

type Service struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name" validate:"required"`
	Category        ServiceCategory `json:"category" validate:"required,oneof=training seitai"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gt=0"`
	Color           string          `json:"color"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
