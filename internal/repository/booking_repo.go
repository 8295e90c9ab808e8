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

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	SlotID      uuid.UUID  `gorm:"column:slot_id;type:uuid;not null;uniqueIndex:idx_bookings_slot_id"`
	GuestID     uuid.UUID  `gorm:"column:guest_id;type:uuid;not null;index"`
	Status      string     `gorm:"column:status;type:varchar(16);not null;index;check:status IN ('confirmed','cancelled')"`
	Notes       *string    `gorm:"column:notes"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`

	Slot  *slotModel    `gorm:"foreignKey:SlotID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Guest *profileModel `gorm:"foreignKey:GuestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (bookingModel) TableName() string { return "bookings" }

func (m *bookingModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		SlotID:      m.SlotID,
		GuestID:     m.GuestID,
		Status:      domain.BookingStatus(m.Status),
		Notes:       deref(m.Notes),
		CreatedAt:   m.CreatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		SlotID:      b.SlotID,
		GuestID:     b.GuestID,
		Status:      string(b.Status),
		Notes:       optional(b.Notes),
		CancelledAt: b.CancelledAt,
	}
}

// Reserve creates a confirmed booking for b.SlotID and b.GuestID. The slot
// row is read under a shared lock so that a concurrent delete waits; the
// unique index on slot_id decides between concurrent reservers.
func (r *BookingRepository) Reserve(ctx context.Context, b *domain.Booking, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot slotModel
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).First(&slot, "id = ?", b.SlotID).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}
		if !slot.IsPublished {
			return domain.ErrSlotNotPublished
		}
		if slot.StartTime.Before(now) {
			return domain.ErrSlotInPast
		}

		var existing int64
		if err := tx.Model(&bookingModel{}).Where("slot_id = ?", b.SlotID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrSlotAlreadyBooked
		}

		b.Status = domain.BookingConfirmed
		b.CancelledAt = nil
		m := toBookingModel(b)
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			switch {
			case database.IsUniqueViolation(err):
				return domain.ErrSlotAlreadyBooked
			case database.IsForeignKeyViolation(err):
				return domain.ErrNotFound
			}
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

// Cancel moves a confirmed booking to cancelled. authorize runs against the
// locked row before anything is written.
func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID, authorize func(*domain.Booking) error, at time.Time) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error; err != nil {
			if database.IsNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}
		current := toDomainBooking(m)
		if authorize != nil {
			if err := authorize(current); err != nil {
				return err
			}
		}
		if !current.IsConfirmed() {
			return domain.ErrAlreadyCancelled
		}

		cancelledAt := utc(at)
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", id, string(domain.BookingConfirmed)).
			Updates(map[string]any{
				"status":       string(domain.BookingCancelled),
				"cancelled_at": cancelledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyCancelled
		}

		current.Status = domain.BookingCancelled
		current.CancelledAt = &cancelledAt
		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainBooking(m), nil
}
