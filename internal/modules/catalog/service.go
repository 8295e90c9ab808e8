package catalog

import (
	"context"
	"errors"
	"fmt"

	"gymbooking/internal/domain"
	"gymbooking/internal/pkg/validator"
	"gymbooking/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultServiceColor = "#6b7280"

type Service struct {
	stores   StoreRepository
	staff    StaffRepository
	services ServiceRepository
	profiles ProfileRepository
	log      *zap.Logger
}

func NewService(stores StoreRepository, staff StaffRepository, services ServiceRepository, profiles ProfileRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		stores:   stores,
		staff:    staff,
		services: services,
		profiles: profiles,
		log:      log,
	}
}

func requireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) CreateStore(ctx context.Context, p domain.Principal, req CreateStoreRequest) (*domain.Store, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	store := &domain.Store{Name: req.Name, Slug: req.Slug, Address: req.Address, Phone: req.Phone}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}
	s.log.Info("store created", zap.String("store_id", store.ID.String()), zap.String("slug", store.Slug))
	return store, nil
}

func (s *Service) ListStores(ctx context.Context) ([]domain.Store, error) {
	return s.stores.List(ctx)
}

func (s *Service) CreateStaff(ctx context.Context, p domain.Principal, req CreateStaffRequest) (*domain.Staff, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if err := s.requireStore(ctx, req.StoreID); err != nil {
		return nil, err
	}

	staff := &domain.Staff{
		StoreID:   req.StoreID,
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		IsActive:  true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) UpdateStaff(ctx context.Context, p domain.Principal, id uuid.UUID, req UpdateStaffRequest) (*domain.Staff, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if err := s.staff.Update(ctx, &domain.Staff{ID: id, Name: req.Name, Bio: req.Bio, AvatarURL: req.AvatarURL}); err != nil {
		return nil, err
	}
	return s.staff.GetByID(ctx, id)
}

// SetStaffActive hides or restores a staff member for new slots. Existing
// slots and bookings are untouched.
func (s *Service) SetStaffActive(ctx context.Context, p domain.Principal, id uuid.UUID, active bool) (*domain.Staff, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := s.staff.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	s.log.Info("staff active changed", zap.String("staff_id", id.String()), zap.Bool("active", active))
	return s.staff.GetByID(ctx, id)
}

// DeleteStaff fails with domain.ErrStaffHasSlots while any slot references
// the staff member; deactivate instead.
func (s *Service) DeleteStaff(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	return s.staff.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, storeID *uuid.UUID, activeOnly bool) ([]domain.Staff, error) {
	return s.staff.List(ctx, repository.StaffFilters{StoreID: storeID, ActiveOnly: activeOnly})
}

func (s *Service) CreateService(ctx context.Context, p domain.Principal, req CreateServiceRequest) (*domain.Service, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		Name:            req.Name,
		Category:        domain.ServiceCategory(req.Category),
		DurationMinutes: req.DurationMinutes,
		Color:           req.Color,
	}
	if svc.Color == "" {
		svc.Color = defaultServiceColor
	}
	if err := validator.Check(svc); err != nil {
		return nil, err
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

// CreateGuest provisions a guest profile with an initial password. Sign-in
// itself happens outside this service.
func (s *Service) CreateGuest(ctx context.Context, p domain.Principal, req CreateGuestRequest) (*domain.Profile, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if req.StoreID != nil {
		if err := s.requireStore(ctx, *req.StoreID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	guest := &domain.Profile{
		Role:         domain.RoleGuest,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		StoreID:      req.StoreID,
		IsActive:     true,
		PasswordHash: string(hash),
	}
	if err := s.profiles.Create(ctx, guest); err != nil {
		return nil, err
	}
	s.log.Info("guest created", zap.String("guest_id", guest.ID.String()))
	return guest, nil
}

func (s *Service) SetGuestActive(ctx context.Context, p domain.Principal, id uuid.UUID, active bool) (*domain.Profile, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := s.profiles.SetActive(ctx, id, domain.RoleGuest, active); err != nil {
		return nil, err
	}
	return s.profiles.GetByID(ctx, id)
}

func (s *Service) ListGuests(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.ListByRole(ctx, domain.RoleGuest)
}

func (s *Service) requireStore(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: store_id is required", domain.ErrValidation)
	}
	if _, err := s.stores.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown store", domain.ErrValidation)
		}
		return err
	}
	return nil
}
