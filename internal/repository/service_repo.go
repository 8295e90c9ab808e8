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

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	Category        string    `gorm:"column:category;type:varchar(16);not null;index;check:category IN ('training','seitai')"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null;check:duration_minutes > 0"`
	Color           string    `gorm:"column:color;type:varchar(16);not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (serviceModel) TableName() string { return "services" }

func (m *serviceModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:              m.ID,
		Name:            m.Name,
		Category:        domain.ServiceCategory(m.Category),
		DurationMinutes: m.DurationMinutes,
		Color:           m.Color,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := serviceModel{
		ID:              s.ID,
		Name:            strings.TrimSpace(s.Name),
		Category:        string(s.Category),
		DurationMinutes: s.DurationMinutes,
		Color:           s.Color,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var m serviceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	var rows []serviceModel
	if err := r.db.WithContext(ctx).Order("category").Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}
