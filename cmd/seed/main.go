package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gymbooking/internal/config"
	"gymbooking/internal/database"
	"gymbooking/internal/domain"
	"gymbooking/internal/events"
	"gymbooking/internal/modules/booking"
	"gymbooking/internal/modules/slot"
	"gymbooking/internal/pkg/jwt"
	"gymbooking/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.IsProdLike() {
		log.Fatal("seed refuses to run in a prod-like environment")
	}
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, nil, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{"bookings", "availability_slots", "staff", "profiles", "services", "stores"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s: %v", table, err)
		}
	}

	storeRepo := repository.NewStoreRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	slotRepo := repository.NewSlotRepository(db)

	// ================== CATALOG ==================
	log.Println("Creating stores, staff and services...")
	stores := []*domain.Store{
		{Name: "Shibuya", Slug: "shibuya", Address: "1-2-3 Dogenzaka, Shibuya", Phone: "03-0000-0001"},
		{Name: "Ebisu", Slug: "ebisu", Address: "4-5-6 Ebisu, Shibuya", Phone: "03-0000-0002"},
	}
	for _, s := range stores {
		must(storeRepo.Create(ctx, s))
	}

	var staff []*domain.Staff
	for i, name := range []string{"Aoi", "Ren", "Haruka", "Sota"} {
		st := &domain.Staff{StoreID: stores[i%len(stores)].ID, Name: name, Bio: "Certified trainer", IsActive: true}
		must(staffRepo.Create(ctx, st))
		staff = append(staff, st)
	}

	services := []*domain.Service{
		{Name: "Personal training", Category: domain.CategoryTraining, DurationMinutes: 60, Color: "#ff7a00"},
		{Name: "Seitai 45", Category: domain.CategorySeitai, DurationMinutes: 45, Color: "#2f855a"},
	}
	for _, s := range services {
		must(serviceRepo.Create(ctx, s))
	}

	// ================== PROFILES ==================
	log.Println("Creating profiles...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	admin := &domain.Profile{Role: domain.RoleAdmin, Name: "Front desk", Email: "admin@gym.example", IsActive: true, PasswordHash: string(hash)}
	must(profileRepo.Create(ctx, admin))

	var guests []*domain.Profile
	for i := 1; i <= 3; i++ {
		g := &domain.Profile{
			Role:         domain.RoleGuest,
			Name:         fmt.Sprintf("Guest %d", i),
			Email:        fmt.Sprintf("guest%d@gym.example", i),
			StoreID:      &stores[0].ID,
			IsActive:     true,
			PasswordHash: string(hash),
		}
		must(profileRepo.Create(ctx, g))
		guests = append(guests, g)
	}

	// ================== SLOTS ==================
	log.Println("Creating slots for the next 7 days...")
	adminP := domain.Principal{ID: admin.ID, Role: domain.RoleAdmin}
	slots := slot.NewService(slotRepo, staffRepo, serviceRepo, events.Nop{}, zap.NewNop())
	today := time.Now().In(cfg.Location)
	var created []*domain.AvailabilitySlot
	for day := 1; day <= 7; day++ {
		date := today.AddDate(0, 0, day)
		for _, st := range staff {
			for hour := 10; hour < 18; hour += 2 {
				start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, cfg.Location)
				svc := services[rand.Intn(len(services))]
				s, err := slots.CreateSlot(ctx, adminP, slot.CreateSlotRequest{StoreID: st.StoreID, StaffID: st.ID, ServiceID: svc.ID, StartTime: start})
				if err != nil {
					log.Fatalf("create slot: %v", err)
				}
				if rand.Intn(4) > 0 {
					if s, err = slots.SetPublished(ctx, adminP, s.ID, true); err != nil {
						log.Fatalf("publish slot: %v", err)
					}
				}
				created = append(created, s)
			}
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")
	bookings := booking.NewService(repository.NewBookingRepository(db), slotRepo, events.Nop{}, zap.NewNop())
	booked := 0
	for i, s := range created {
		if !s.IsPublished || i%5 != 0 {
			continue
		}
		g := guests[booked%len(guests)]
		_, err := bookings.Reserve(ctx, domain.Principal{ID: g.ID, Role: domain.RoleGuest}, booking.ReserveRequest{SlotID: s.ID})
		if err != nil {
			log.Fatalf("reserve: %v", err)
		}
		booked++
	}

	// ================== TOKENS ==================
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	adminToken, err := tokens.GenerateToken(admin.ID, string(domain.RoleAdmin))
	must(err)
	guestToken, err := tokens.GenerateToken(guests[0].ID, string(domain.RoleGuest))
	must(err)

	log.Printf("Seeded %d stores, %d staff, %d services, %d slots, %d bookings", len(stores), len(staff), len(services), len(created), booked)
	log.Println("Admin token:", adminToken)
	log.Printf("Guest token (%s): %s", guests[0].Email, guestToken)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
