package repository

import (
	"context"
	"time"

	"gymbooking/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueryRepository serves the read side. Every method is a single statement
// with explicit row types; nothing here writes.
type QueryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

type AvailableSlotRow struct {
	SlotID       uuid.UUID `gorm:"column:slot_id"`
	StoreID      uuid.UUID `gorm:"column:store_id"`
	StaffID      uuid.UUID `gorm:"column:staff_id"`
	StaffName    string    `gorm:"column:staff_name"`
	ServiceID    uuid.UUID `gorm:"column:service_id"`
	ServiceName  string    `gorm:"column:service_name"`
	ServiceColor string    `gorm:"column:service_color"`
	StartTime    time.Time `gorm:"column:start_time"`
	EndTime      time.Time `gorm:"column:end_time"`
}

type SlotBoardRow struct {
	SlotID        uuid.UUID  `gorm:"column:slot_id"`
	StoreID       uuid.UUID  `gorm:"column:store_id"`
	StoreName     string     `gorm:"column:store_name"`
	StaffID       uuid.UUID  `gorm:"column:staff_id"`
	StaffName     string     `gorm:"column:staff_name"`
	ServiceID     uuid.UUID  `gorm:"column:service_id"`
	ServiceName   string     `gorm:"column:service_name"`
	ServiceColor  string     `gorm:"column:service_color"`
	StartTime     time.Time  `gorm:"column:start_time"`
	EndTime       time.Time  `gorm:"column:end_time"`
	IsPublished   bool       `gorm:"column:is_published"`
	BookingID     *uuid.UUID `gorm:"column:booking_id"`
	BookingStatus *string    `gorm:"column:booking_status"`
	GuestName     *string    `gorm:"column:guest_name"`
}

type BookingRow struct {
	BookingID       uuid.UUID  `gorm:"column:booking_id"`
	Status          string     `gorm:"column:status"`
	Notes           *string    `gorm:"column:notes"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
	SlotID          uuid.UUID  `gorm:"column:slot_id"`
	StartTime       time.Time  `gorm:"column:start_time"`
	EndTime         time.Time  `gorm:"column:end_time"`
	StoreID         uuid.UUID  `gorm:"column:store_id"`
	StoreName       string     `gorm:"column:store_name"`
	StaffName       string     `gorm:"column:staff_name"`
	ServiceName     string     `gorm:"column:service_name"`
	ServiceCategory string     `gorm:"column:service_category"`
	GuestID         uuid.UUID  `gorm:"column:guest_id"`
	GuestName       string     `gorm:"column:guest_name"`
	GuestEmail      string     `gorm:"column:guest_email"`
}

const bookingRowSelect = `
SELECT b.id AS booking_id, b.status, b.notes, b.created_at, b.cancelled_at,
       s.id AS slot_id, s.start_time, s.end_time,
       st.id AS store_id, st.name AS store_name,
       sf.name AS staff_name,
       sv.name AS service_name, sv.category AS service_category,
       p.id AS guest_id, p.name AS guest_name, p.email AS guest_email
FROM bookings b
JOIN availability_slots s ON s.id = b.slot_id
JOIN stores st ON st.id = s.store_id
JOIN staff sf ON sf.id = s.staff_id
JOIN services sv ON sv.id = s.service_id
JOIN profiles p ON p.id = b.guest_id
`

// AvailableSlots returns published, never-booked slots of one service at one
// store whose start lies in [from, to) and is not before now.
func (r *QueryRepository) AvailableSlots(ctx context.Context, storeID, serviceID uuid.UUID, from, to, now time.Time) ([]AvailableSlotRow, error) {
	q := `
SELECT s.id AS slot_id, s.store_id, s.staff_id, sf.name AS staff_name,
       s.service_id, sv.name AS service_name, sv.color AS service_color,
       s.start_time, s.end_time
FROM availability_slots s
JOIN staff sf ON sf.id = s.staff_id
JOIN services sv ON sv.id = s.service_id
WHERE s.store_id = ?
  AND s.service_id = ?
  AND s.is_published = ?
  AND s.start_time >= ?
  AND s.start_time < ?
  AND s.start_time >= ?
  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.slot_id = s.id)
ORDER BY s.start_time, sf.name
`
	var rows []AvailableSlotRow
	tx := r.db.WithContext(ctx).Raw(q, storeID, serviceID, true, utc(from), utc(to), utc(now)).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *QueryRepository) SlotBoard(ctx context.Context, storeID *uuid.UUID, from, to time.Time) ([]SlotBoardRow, error) {
	q := r.db.WithContext(ctx).
		Table("availability_slots AS s").
		Select(`s.id AS slot_id, s.store_id, st.name AS store_name,
       s.staff_id, sf.name AS staff_name,
       s.service_id, sv.name AS service_name, sv.color AS service_color,
       s.start_time, s.end_time, s.is_published,
       b.id AS booking_id, b.status AS booking_status, p.name AS guest_name`).
		Joins("JOIN stores st ON st.id = s.store_id").
		Joins("JOIN staff sf ON sf.id = s.staff_id").
		Joins("JOIN services sv ON sv.id = s.service_id").
		Joins("LEFT JOIN bookings b ON b.slot_id = s.id").
		Joins("LEFT JOIN profiles p ON p.id = b.guest_id").
		Where("s.start_time >= ? AND s.start_time < ?", utc(from), utc(to))
	if storeID != nil {
		q = q.Where("s.store_id = ?", *storeID)
	}

	var rows []SlotBoardRow
	if err := q.Order("s.start_time").Order("sf.name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *QueryRepository) BookingsForGuest(ctx context.Context, guestID uuid.UUID) ([]BookingRow, error) {
	var rows []BookingRow
	tx := r.db.WithContext(ctx).
		Raw(bookingRowSelect+"WHERE b.guest_id = ?\nORDER BY s.start_time", guestID).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// Bookings lists bookings newest first, optionally filtered by status.
func (r *QueryRepository) Bookings(ctx context.Context, status *domain.BookingStatus, limit, offset int) ([]BookingRow, error) {
	limit, offset = clampPage(limit, offset)

	q := bookingRowSelect
	args := []any{}
	if status != nil {
		q += "WHERE b.status = ?\n"
		args = append(args, string(*status))
	}
	q += "ORDER BY b.created_at DESC, b.id\nLIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var rows []BookingRow
	if err := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpcomingBookings returns the most recently created confirmed bookings whose
// slot has not started yet.
func (r *QueryRepository) UpcomingBookings(ctx context.Context, now time.Time, limit int) ([]BookingRow, error) {
	q := bookingRowSelect + `WHERE b.status = ? AND s.start_time >= ?
ORDER BY b.created_at DESC, b.id
LIMIT ?`
	var rows []BookingRow
	tx := r.db.WithContext(ctx).Raw(q, string(domain.BookingConfirmed), utc(now), limit).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// BookingsStartingBetween returns confirmed bookings whose slot starts in
// [from, to).
func (r *QueryRepository) BookingsStartingBetween(ctx context.Context, from, to time.Time) ([]BookingRow, error) {
	q := bookingRowSelect + `WHERE b.status = ? AND s.start_time >= ? AND s.start_time < ?
ORDER BY s.start_time`
	var rows []BookingRow
	tx := r.db.WithContext(ctx).Raw(q, string(domain.BookingConfirmed), utc(from), utc(to)).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *QueryRepository) CountPublishedSlots(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&slotModel{}).Where("is_published = ?", true).Count(&n).Error
	return n, err
}

func (r *QueryRepository) CountConfirmedBookings(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("status = ?", string(domain.BookingConfirmed)).Count(&n).Error
	return n, err
}

func (r *QueryRepository) CountActiveGuests(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&profileModel{}).
		Where("role = ? AND is_active = ?", string(domain.RoleGuest), true).
		Count(&n).Error
	return n, err
}

func (r *QueryRepository) CountActiveStaff(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&staffModel{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
