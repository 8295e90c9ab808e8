package repository

import (
	"context"
	"strings"
	"time"

	"gymbooking/internal/database"
	"gymbooking/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffFilters struct {
	StoreID    *uuid.UUID
	ActiveOnly bool
}

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

type staffModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Bio       *string   `gorm:"column:bio"`
	AvatarURL *string   `gorm:"column:avatar_url"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Store *storeModel `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (staffModel) TableName() string { return "staff" }

func (m *staffModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func toDomainStaff(m staffModel) *domain.Staff {
	return &domain.Staff{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Name:      m.Name,
		Bio:       deref(m.Bio),
		AvatarURL: deref(m.AvatarURL),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	m := staffModel{
		ID:        s.ID,
		StoreID:   s.StoreID,
		Name:      strings.TrimSpace(s.Name),
		Bio:       optional(s.Bio),
		AvatarURL: optional(s.AvatarURL),
		IsActive:  s.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	*s = *toDomainStaff(m)
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	var m staffModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	tx := r.db.WithContext(ctx).
		Model(&staffModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":       strings.TrimSpace(s.Name),
			"bio":        optional(s.Bio),
			"avatar_url": optional(s.AvatarURL),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive only affects future slot creation; existing slots stay as they are.
func (r *StaffRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&staffModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&staffModel{}, "id = ?", id)
	if tx.Error != nil {
		if database.IsForeignKeyViolation(tx.Error) {
			return domain.ErrStaffHasSlots
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StaffRepository) List(ctx context.Context, f StaffFilters) ([]domain.Staff, error) {
	q := r.db.WithContext(ctx).Model(&staffModel{})
	if f.StoreID != nil {
		q = q.Where("store_id = ?", *f.StoreID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []staffModel
	if err := q.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Staff, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStaff(m))
	}
	return out, nil
}
