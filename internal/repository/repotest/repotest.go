// Package repotest opens migrated in-memory databases and seeds the catalog
// rows most tests need.
package repotest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gymbooking/internal/database"
	"gymbooking/internal/domain"
	"gymbooking/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seq atomic.Int64

func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:", nil, gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixture is one store with one active staff member, a 60 minute training
// service, an admin and a guest.
type Fixture struct {
	DB      *gorm.DB
	Store   *domain.Store
	Staff   *domain.Staff
	Service *domain.Service
	Admin   *domain.Profile
	Guest   *domain.Profile
}

func (f *Fixture) AdminPrincipal() domain.Principal {
	return domain.Principal{ID: f.Admin.ID, Role: domain.RoleAdmin}
}

func (f *Fixture) GuestPrincipal() domain.Principal {
	return domain.Principal{ID: f.Guest.ID, Role: domain.RoleGuest}
}

func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()
	ctx := context.Background()
	n := seq.Add(1)

	store := &domain.Store{Name: "Shibuya", Slug: fmt.Sprintf("shibuya-%d", n)}
	require.NoError(t, repository.NewStoreRepository(db).Create(ctx, store))

	staff := &domain.Staff{StoreID: store.ID, Name: "Aoi", IsActive: true}
	require.NoError(t, repository.NewStaffRepository(db).Create(ctx, staff))

	service := &domain.Service{Name: "Personal training", Category: domain.CategoryTraining, DurationMinutes: 60, Color: "#ff7a00"}
	require.NoError(t, repository.NewServiceRepository(db).Create(ctx, service))

	profiles := repository.NewProfileRepository(db)
	admin := &domain.Profile{Role: domain.RoleAdmin, Name: "Admin", Email: fmt.Sprintf("admin%d@example.com", n), IsActive: true, PasswordHash: "x"}
	require.NoError(t, profiles.Create(ctx, admin))

	return &Fixture{
		DB:      db,
		Store:   store,
		Staff:   staff,
		Service: service,
		Admin:   admin,
		Guest:   AddGuest(t, db, "Guest"),
	}
}

func AddGuest(t *testing.T, db *gorm.DB, name string) *domain.Profile {
	t.Helper()
	g := &domain.Profile{
		Role:         domain.RoleGuest,
		Name:         name,
		Email:        fmt.Sprintf("guest%d@example.com", seq.Add(1)),
		IsActive:     true,
		PasswordHash: "x",
	}
	require.NoError(t, repository.NewProfileRepository(db).Create(context.Background(), g))
	return g
}

// AddSlot inserts a slot for the fixture's staff and service directly.
func (f *Fixture) AddSlot(t *testing.T, start time.Time, published bool) *domain.AvailabilitySlot {
	t.Helper()
	s := &domain.AvailabilitySlot{
		StoreID:     f.Store.ID,
		StaffID:     f.Staff.ID,
		ServiceID:   f.Service.ID,
		StartTime:   start.UTC(),
		EndTime:     start.UTC().Add(f.Service.Duration()),
		IsPublished: published,
	}
	require.NoError(t, repository.NewSlotRepository(f.DB).Create(context.Background(), s))
	return s
}
