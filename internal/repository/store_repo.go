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

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

type storeModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	Address   *string   `gorm:"column:address"`
	Phone     *string   `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (storeModel) TableName() string { return "stores" }

func (m *storeModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func toDomainStore(m storeModel) *domain.Store {
	return &domain.Store{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		Address:   deref(m.Address),
		Phone:     deref(m.Phone),
		CreatedAt: m.CreatedAt,
	}
}

func (r *StoreRepository) Create(ctx context.Context, s *domain.Store) error {
	m := storeModel{
		ID:      s.ID,
		Name:    strings.TrimSpace(s.Name),
		Slug:    strings.ToLower(strings.TrimSpace(s.Slug)),
		Address: optional(s.Address),
		Phone:   optional(s.Phone),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: store slug %q", domain.ErrDuplicate, m.Slug)
		}
		return err
	}
	*s = *toDomainStore(m)
	return nil
}

func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	var m storeModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainStore(m), nil
}

func (r *StoreRepository) List(ctx context.Context) ([]domain.Store, error) {
	var rows []storeModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Store, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStore(m))
	}
	return out, nil
}
