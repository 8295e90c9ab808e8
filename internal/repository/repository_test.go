package repository_test

import (
	"context"
	"testing"
	"time"

	"gymbooking/internal/domain"
	"gymbooking/internal/repository"
	"gymbooking/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(f *repotest.Fixture, start time.Time) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		StoreID:   f.Store.ID,
		StaffID:   f.Staff.ID,
		ServiceID: f.Service.ID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

func TestSlotRepository_OverlapRejectedByStore(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	repo := repository.NewSlotRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)

	require.NoError(t, repo.Create(ctx, slotAt(f, base)))

	err := repo.Create(ctx, slotAt(f, base.Add(30*time.Minute)))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	// touching intervals are fine
	assert.NoError(t, repo.Create(ctx, slotAt(f, base.Add(time.Hour))))
	assert.NoError(t, repo.Create(ctx, slotAt(f, base.Add(-time.Hour))))
}

func TestSlotRepository_OtherStaffMayOverlap(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	ctx := context.Background()
	base := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)

	other := &domain.Staff{StoreID: f.Store.ID, Name: "Ren", IsActive: true}
	require.NoError(t, repository.NewStaffRepository(db).Create(ctx, other))

	repo := repository.NewSlotRepository(db)
	require.NoError(t, repo.Create(ctx, slotAt(f, base)))

	s := slotAt(f, base)
	s.StaffID = other.ID
	assert.NoError(t, repo.Create(ctx, s))
}

func TestBookingRepository_OneBookingPerSlot(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	ctx := context.Background()
	now := time.Now().UTC()
	slot := f.AddSlot(t, now.Add(24*time.Hour).Truncate(time.Minute), true)

	bookings := repository.NewBookingRepository(db)
	first := &domain.Booking{SlotID: slot.ID, GuestID: f.Guest.ID}
	require.NoError(t, bookings.Reserve(ctx, first, now))
	assert.Equal(t, domain.BookingConfirmed, first.Status)
	assert.NotEqual(t, uuid.Nil, first.ID)

	other := repotest.AddGuest(t, db, "Other")
	err := bookings.Reserve(ctx, &domain.Booking{SlotID: slot.ID, GuestID: other.ID}, now)
	assert.ErrorIs(t, err, domain.ErrSlotAlreadyBooked)

	_, err = bookings.Cancel(ctx, first.ID, nil, now)
	require.NoError(t, err)

	// a cancelled booking still holds the slot
	err = bookings.Reserve(ctx, &domain.Booking{SlotID: slot.ID, GuestID: other.ID}, now)
	assert.ErrorIs(t, err, domain.ErrSlotAlreadyBooked)
}

func TestBookingRepository_ReserveGuards(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	ctx := context.Background()
	now := time.Now().UTC()
	bookings := repository.NewBookingRepository(db)

	hidden := f.AddSlot(t, now.Add(24*time.Hour).Truncate(time.Minute), false)
	err := bookings.Reserve(ctx, &domain.Booking{SlotID: hidden.ID, GuestID: f.Guest.ID}, now)
	assert.ErrorIs(t, err, domain.ErrSlotNotPublished)

	past := f.AddSlot(t, now.Add(-3*time.Hour).Truncate(time.Minute), true)
	err = bookings.Reserve(ctx, &domain.Booking{SlotID: past.ID, GuestID: f.Guest.ID}, now)
	assert.ErrorIs(t, err, domain.ErrSlotInPast)

	err = bookings.Reserve(ctx, &domain.Booking{SlotID: uuid.New(), GuestID: f.Guest.ID}, now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlotRepository_DeleteUnbooked(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	ctx := context.Background()
	now := time.Now().UTC()
	slots := repository.NewSlotRepository(db)
	bookings := repository.NewBookingRepository(db)

	slot := f.AddSlot(t, now.Add(24*time.Hour).Truncate(time.Minute), true)
	b := &domain.Booking{SlotID: slot.ID, GuestID: f.Guest.ID}
	require.NoError(t, bookings.Reserve(ctx, b, now))

	_, err := slots.DeleteUnbooked(ctx, slot.ID)
	assert.ErrorIs(t, err, domain.ErrSlotHasBooking)

	_, err = bookings.Cancel(ctx, b.ID, nil, now)
	require.NoError(t, err)

	deleted, err := slots.DeleteUnbooked(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, slot.ID, deleted.ID)

	_, err = slots.GetByID(ctx, slot.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = bookings.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = slots.DeleteUnbooked(ctx, slot.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_CancelTerminal(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	ctx := context.Background()
	now := time.Now().UTC()
	bookings := repository.NewBookingRepository(db)

	slot := f.AddSlot(t, now.Add(24*time.Hour).Truncate(time.Minute), true)
	b := &domain.Booking{SlotID: slot.ID, GuestID: f.Guest.ID}
	require.NoError(t, bookings.Reserve(ctx, b, now))

	denied := func(*domain.Booking) error { return domain.ErrForbidden }
	_, err := bookings.Cancel(ctx, b.ID, denied, now)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := bookings.Cancel(ctx, b.ID, nil, now)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)

	_, err = bookings.Cancel(ctx, b.ID, nil, now)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)

	stored, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, stored.Status)
}

func TestStaffRepository_DeleteWithSlots(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	ctx := context.Background()
	f.AddSlot(t, time.Now().UTC().Add(24*time.Hour).Truncate(time.Minute), false)

	err := repository.NewStaffRepository(db).Delete(ctx, f.Staff.ID)
	assert.ErrorIs(t, err, domain.ErrStaffHasSlots)
}

func TestProfileRepository_DuplicateEmail(t *testing.T) {
	db := repotest.Open(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	p := &domain.Profile{Role: domain.RoleGuest, Name: "A", Email: "dup@example.com", IsActive: true, PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, p))

	err := repo.Create(ctx, &domain.Profile{Role: domain.RoleGuest, Name: "B", Email: "DUP@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "Dup@Example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}
