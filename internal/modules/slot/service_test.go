package slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gymbooking/internal/domain"
	"gymbooking/internal/events"
	"gymbooking/internal/repository"
	"gymbooking/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

type recordingSink struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingSink) Publish(_ context.Context, key string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	return nil
}

func newTestService(t *testing.T) (*Service, *repotest.Fixture, *recordingSink) {
	t.Helper()
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	sink := &recordingSink{}

	svc := NewService(
		repository.NewSlotRepository(db),
		repository.NewStaffRepository(db),
		repository.NewServiceRepository(db),
		sink,
		zap.NewNop(),
	)
	svc.now = func() time.Time { return fixedNow }
	return svc, f, sink
}

func newSlotRequest(f *repotest.Fixture, start time.Time) CreateSlotRequest {
	return CreateSlotRequest{
		StoreID:   f.Store.ID,
		StaffID:   f.Staff.ID,
		ServiceID: f.Service.ID,
		StartTime: start,
	}
}

func TestService_CreateSlot_DerivesEndTime(t *testing.T) {
	svc, f, sink := newTestService(t)
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	slot, err := svc.CreateSlot(context.Background(), f.AdminPrincipal(), newSlotRequest(f, start))
	require.NoError(t, err)

	assert.True(t, slot.StartTime.Equal(start))
	assert.True(t, slot.EndTime.Equal(time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)))
	assert.False(t, slot.IsPublished)
	assert.Equal(t, []string{events.SlotCreated}, sink.keys)
}

func TestService_CreateSlot_TruncatesToMinute(t *testing.T) {
	svc, f, _ := newTestService(t)
	start := time.Date(2024, 6, 1, 10, 0, 42, 500, time.UTC)

	slot, err := svc.CreateSlot(context.Background(), f.AdminPrincipal(), newSlotRequest(f, start))
	require.NoError(t, err)
	assert.True(t, slot.StartTime.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))
}

func TestService_CreateSlot_OverlapScenario(t *testing.T) {
	svc, f, _ := newTestService(t)
	ctx := context.Background()
	admin := f.AdminPrincipal()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateSlot(ctx, admin, newSlotRequest(f, day.Add(10*time.Hour)))
	require.NoError(t, err)

	_, err = svc.CreateSlot(ctx, admin, newSlotRequest(f, day.Add(10*time.Hour+30*time.Minute)))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	_, err = svc.CreateSlot(ctx, admin, newSlotRequest(f, day.Add(11*time.Hour)))
	assert.NoError(t, err)
}

func TestService_CreateSlot_ConcurrentOverlap(t *testing.T) {
	svc, f, _ := newTestService(t)
	admin := f.AdminPrincipal()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every start lies inside the first slot's hour
			_, errs[i] = svc.CreateSlot(context.Background(), admin, newSlotRequest(f, base.Add(time.Duration(i)*5*time.Minute)))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestService_CreateSlot_Validation(t *testing.T) {
	svc, f, _ := newTestService(t)
	ctx := context.Background()
	admin := f.AdminPrincipal()
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateSlot(ctx, f.GuestPrincipal(), newSlotRequest(f, start))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.CreateSlot(ctx, admin, newSlotRequest(f, fixedNow.Add(-time.Hour)))
	assert.ErrorIs(t, err, domain.ErrValidation)

	req := newSlotRequest(f, start)
	req.ServiceID = uuid.Nil
	_, err = svc.CreateSlot(ctx, admin, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = newSlotRequest(f, start)
	req.ServiceID = uuid.New()
	_, err = svc.CreateSlot(ctx, admin, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = newSlotRequest(f, start)
	req.StoreID = uuid.New()
	_, err = svc.CreateSlot(ctx, admin, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, repository.NewStaffRepository(f.DB).SetActive(ctx, f.Staff.ID, false))
	_, err = svc.CreateSlot(ctx, admin, newSlotRequest(f, start))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "inactive")
}

func TestService_PublishAndDelete(t *testing.T) {
	svc, f, sink := newTestService(t)
	ctx := context.Background()
	admin := f.AdminPrincipal()

	slot, err := svc.CreateSlot(ctx, admin, newSlotRequest(f, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	published, err := svc.SetPublished(ctx, admin, slot.ID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	hidden, err := svc.SetPublished(ctx, admin, slot.ID, false)
	require.NoError(t, err)
	assert.False(t, hidden.IsPublished)

	_, err = svc.SetPublished(ctx, f.GuestPrincipal(), slot.ID, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.SetPublished(ctx, admin, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteSlot(ctx, admin, slot.ID))
	_, err = svc.GetSlot(ctx, slot.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{
		events.SlotCreated,
		events.SlotPublished,
		events.SlotUnpublished,
		events.SlotDeleted,
	}, sink.keys)
}

func TestService_DeleteSlot_WithConfirmedBooking(t *testing.T) {
	svc, f, _ := newTestService(t)
	ctx := context.Background()
	admin := f.AdminPrincipal()

	slot, err := svc.CreateSlot(ctx, admin, newSlotRequest(f, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = svc.SetPublished(ctx, admin, slot.ID, true)
	require.NoError(t, err)

	bookings := repository.NewBookingRepository(f.DB)
	b := &domain.Booking{SlotID: slot.ID, GuestID: f.Guest.ID}
	require.NoError(t, bookings.Reserve(ctx, b, fixedNow))

	err = svc.DeleteSlot(ctx, admin, slot.ID)
	assert.ErrorIs(t, err, domain.ErrSlotHasBooking)

	_, err = svc.GetSlot(ctx, slot.ID)
	assert.NoError(t, err)
}

func TestService_DeleteSlot_RemovesCancelledBookings(t *testing.T) {
	svc, f, _ := newTestService(t)
	ctx := context.Background()
	admin := f.AdminPrincipal()

	slot, err := svc.CreateSlot(ctx, admin, newSlotRequest(f, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = svc.SetPublished(ctx, admin, slot.ID, true)
	require.NoError(t, err)

	bookings := repository.NewBookingRepository(f.DB)
	b := &domain.Booking{SlotID: slot.ID, GuestID: f.Guest.ID}
	require.NoError(t, bookings.Reserve(ctx, b, fixedNow))
	_, err = bookings.Cancel(ctx, b.ID, nil, fixedNow)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSlot(ctx, admin, slot.ID))

	var remaining int64
	require.NoError(t, f.DB.Model(&domain.Booking{}).Where("id = ?", b.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Create(ctx context.Context, s *domain.AvailabilitySlot) error {
	args := m.Called(ctx, s)
	if s != nil && args.Error(0) == nil {
		s.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilitySlot), args.Error(1)
}

func (m *MockSlotRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.AvailabilitySlot, error) {
	args := m.Called(ctx, id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilitySlot), args.Error(1)
}

func (m *MockSlotRepository) DeleteUnbooked(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilitySlot), args.Error(1)
}

type stubStaff struct{ staff *domain.Staff }

func (s stubStaff) GetByID(context.Context, uuid.UUID) (*domain.Staff, error) { return s.staff, nil }

type stubServices struct{ service *domain.Service }

func (s stubServices) GetByID(context.Context, uuid.UUID) (*domain.Service, error) {
	return s.service, nil
}

func TestService_CreateSlot_ConflictIsNotRetried(t *testing.T) {
	storeID := uuid.New()
	staff := &domain.Staff{ID: uuid.New(), StoreID: storeID, IsActive: true}
	service := &domain.Service{ID: uuid.New(), DurationMinutes: 45}

	repo := new(MockSlotRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AvailabilitySlot")).Return(domain.ErrSlotConflict).Once()

	sink := &recordingSink{}
	svc := NewService(repo, stubStaff{staff}, stubServices{service}, sink, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }

	_, err := svc.CreateSlot(context.Background(), domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin}, CreateSlotRequest{
		StoreID:   storeID,
		StaffID:   staff.ID,
		ServiceID: service.ID,
		StartTime: fixedNow.Add(24 * time.Hour),
	})

	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Empty(t, sink.keys)
	repo.AssertNumberOfCalls(t, "Create", 1)

	created := repo.Calls[0].Arguments.Get(1).(*domain.AvailabilitySlot)
	assert.Equal(t, 45*time.Minute, created.EndTime.Sub(created.StartTime))
}
