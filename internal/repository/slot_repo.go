package repository

import (
	"context"
	"time"

	"gymbooking/internal/database"
	"gymbooking/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

type slotModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StoreID     uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	StaffID     uuid.UUID `gorm:"column:staff_id;type:uuid;not null;index:idx_availability_slots_staff_start,priority:1"`
	ServiceID   uuid.UUID `gorm:"column:service_id;type:uuid;not null;index"`
	StartTime   time.Time `gorm:"column:start_time;not null;index:idx_availability_slots_staff_start,priority:2;index"`
	EndTime     time.Time `gorm:"column:end_time;not null"`
	IsPublished bool      `gorm:"column:is_published;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Store   *storeModel   `gorm:"foreignKey:StoreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Staff   *staffModel   `gorm:"foreignKey:StaffID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Service *serviceModel `gorm:"foreignKey:ServiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (slotModel) TableName() string { return "availability_slots" }

func (m *slotModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func toDomainSlot(m slotModel) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:          m.ID,
		StoreID:     m.StoreID,
		StaffID:     m.StaffID,
		ServiceID:   m.ServiceID,
		StartTime:   m.StartTime.UTC(),
		EndTime:     m.EndTime.UTC(),
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
	}
}

// Create inserts an unpublished slot. Overlap detection is left entirely to
// the store's exclusion constraint, so two concurrent creators for the same
// staff member cannot both succeed.
func (r *SlotRepository) Create(ctx context.Context, s *domain.AvailabilitySlot) error {
	m := slotModel{
		ID:          s.ID,
		StoreID:     s.StoreID,
		StaffID:     s.StaffID,
		ServiceID:   s.ServiceID,
		StartTime:   utc(s.StartTime),
		EndTime:     utc(s.EndTime),
		IsPublished: s.IsPublished,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		switch {
		case database.IsExclusionViolation(err):
			return domain.ErrSlotConflict
		case database.IsForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return err
	}
	*s = *toDomainSlot(m)
	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error) {
	var m slotModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainSlot(m), nil
}

func (r *SlotRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.AvailabilitySlot, error) {
	var out *domain.AvailabilitySlot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&slotModel{}).Where("id = ?", id).Update("is_published", published)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		var m slotModel
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return err
		}
		out = toDomainSlot(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUnbooked removes a slot that has no confirmed booking. Cancelled
// bookings go with it. A reserve that commits between the check and the
// delete makes the foreign key reject the delete.
func (r *SlotRepository) DeleteUnbooked(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error) {
	var out *domain.AvailabilitySlot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m slotModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}

		var confirmed int64
		if err := tx.Model(&bookingModel{}).
			Where("slot_id = ? AND status = ?", id, string(domain.BookingConfirmed)).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed > 0 {
			return domain.ErrSlotHasBooking
		}

		if err := tx.Where("slot_id = ? AND status = ?", id, string(domain.BookingCancelled)).
			Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&slotModel{}, "id = ?", id).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return domain.ErrSlotHasBooking
			}
			return err
		}
		out = toDomainSlot(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
