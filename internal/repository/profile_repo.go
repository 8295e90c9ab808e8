package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gymbooking/internal/database"
	"gymbooking/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Role         string     `gorm:"column:role;type:varchar(16);not null;index;check:role IN ('admin','guest')"`
	Name         string     `gorm:"column:name;not null"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	Phone        *string    `gorm:"column:phone"`
	StoreID      *uuid.UUID `gorm:"column:store_id;type:uuid"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`

	Store *storeModel `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (profileModel) TableName() string { return "profiles" }

func (m *profileModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func toDomainProfile(m profileModel) *domain.Profile {
	return &domain.Profile{
		ID:           m.ID,
		Role:         domain.UserRole(m.Role),
		Name:         m.Name,
		Email:        m.Email,
		Phone:        deref(m.Phone),
		StoreID:      m.StoreID,
		IsActive:     m.IsActive,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func toProfileModel(p *domain.Profile) profileModel {
	return profileModel{
		ID:           p.ID,
		Role:         string(p.Role),
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.TrimSpace(strings.ToLower(p.Email)),
		Phone:        optional(p.Phone),
		StoreID:      p.StoreID,
		IsActive:     p.IsActive,
		PasswordHash: p.PasswordHash,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: email %q", domain.ErrDuplicate, m.Email)
		}
		return err
	}
	*p = *toDomainProfile(m)
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var m profileModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		if database.IsNotFound(tx.Error) {
			return nil, domain.ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) SetActive(ctx context.Context, id uuid.UUID, role domain.UserRole, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("id = ? AND role = ?", id, string(role)).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.Profile, error) {
	var rows []profileModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Profile, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProfile(m))
	}
	return out, nil
}
