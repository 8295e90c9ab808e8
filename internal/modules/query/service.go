package query

import (
	"context"
	"fmt"
	"time"

	"gymbooking/internal/domain"
	"gymbooking/internal/repository"

	"github.com/google/uuid"
)

const (
	boardDaysBack    = 7
	boardDaysDefault = 14
	boardDaysMax     = 62
	dashboardLimit   = 5
)

// Service answers read-only questions. Day filters use the configured
// location; instants come back converted to it.
type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// DayBounds returns [local midnight, next local midnight) for the calendar
// day that t falls on in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// SearchAvailability lists bookable slots for one store, service and local
// day: published, never booked and not yet started.
func (s *Service) SearchAvailability(ctx context.Context, q AvailabilityQuery) ([]AvailableSlot, error) {
	if q.StoreID == uuid.Nil || q.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: store_id and service_id are required", domain.ErrValidation)
	}
	if q.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	from, to := DayBounds(q.Date, s.loc)
	rows, err := s.repo.AvailableSlots(ctx, q.StoreID, q.ServiceID, from, to, s.now())
	if err != nil {
		return nil, err
	}

	out := make([]AvailableSlot, 0, len(rows))
	for _, r := range rows {
		out = append(out, AvailableSlot{
			SlotID:       r.SlotID,
			StoreID:      r.StoreID,
			StaffID:      r.StaffID,
			StaffName:    r.StaffName,
			ServiceID:    r.ServiceID,
			ServiceName:  r.ServiceName,
			ServiceColor: r.ServiceColor,
			StartTime:    r.StartTime.In(s.loc),
			EndTime:      r.EndTime.In(s.loc),
		})
	}
	return out, nil
}

// AdminSlotBoard shows every slot in a window with its booking, if any.
// Without From the window runs from seven local days ago for two weeks.
func (s *Service) AdminSlotBoard(ctx context.Context, q SlotBoardQuery) ([]SlotBoardRow, error) {
	days := q.Days
	var from time.Time
	if q.From != nil {
		from, _ = DayBounds(*q.From, s.loc)
		if days <= 0 {
			days = boardDaysBack
		}
	} else {
		today, _ := DayBounds(s.now(), s.loc)
		from = today.AddDate(0, 0, -boardDaysBack)
		if days <= 0 {
			days = boardDaysDefault
		}
	}
	if days > boardDaysMax {
		return nil, fmt.Errorf("%w: days must be at most %d", domain.ErrValidation, boardDaysMax)
	}
	to := from.AddDate(0, 0, days)

	rows, err := s.repo.SlotBoard(ctx, q.StoreID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]SlotBoardRow, 0, len(rows))
	for _, r := range rows {
		row := SlotBoardRow{
			SlotID:       r.SlotID,
			StoreID:      r.StoreID,
			StoreName:    r.StoreName,
			StaffID:      r.StaffID,
			StaffName:    r.StaffName,
			ServiceID:    r.ServiceID,
			ServiceName:  r.ServiceName,
			ServiceColor: r.ServiceColor,
			StartTime:    r.StartTime.In(s.loc),
			EndTime:      r.EndTime.In(s.loc),
			IsPublished:  r.IsPublished,
		}
		if r.BookingID != nil {
			row.Booking = &BoardBooking{
				ID:        *r.BookingID,
				Status:    domain.BookingStatus(deref(r.BookingStatus)),
				GuestName: deref(r.GuestName),
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// GuestHistory splits a guest's bookings by slot time relative to now.
// Upcoming is soonest first, past is most recent first.
func (s *Service) GuestHistory(ctx context.Context, guestID uuid.UUID) (*GuestBookings, error) {
	rows, err := s.repo.BookingsForGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := &GuestBookings{
		Upcoming:  []BookingView{},
		Past:      []BookingView{},
		Cancelled: []BookingView{},
	}
	for _, r := range rows {
		v := s.bookingView(r)
		switch {
		case v.Status == domain.BookingCancelled:
			out.Cancelled = append(out.Cancelled, v)
		case !r.StartTime.Before(now):
			out.Upcoming = append(out.Upcoming, v)
		default:
			out.Past = append(out.Past, v)
		}
	}
	for i, j := 0, len(out.Past)-1; i < j; i, j = i+1, j-1 {
		out.Past[i], out.Past[j] = out.Past[j], out.Past[i]
	}
	return out, nil
}

func (s *Service) AdminBookings(ctx context.Context, q AdminBookingQuery) ([]BookingView, error) {
	if q.Status != nil && *q.Status != domain.BookingConfirmed && *q.Status != domain.BookingCancelled {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *q.Status)
	}
	q = q.normalized()
	rows, err := s.repo.Bookings(ctx, q.Status, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	return s.bookingViews(rows), nil
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)
	if stats.PublishedSlots, err = s.repo.CountPublishedSlots(ctx); err != nil {
		return nil, err
	}
	if stats.ConfirmedBookings, err = s.repo.CountConfirmedBookings(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveGuests, err = s.repo.CountActiveGuests(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveStaff, err = s.repo.CountActiveStaff(ctx); err != nil {
		return nil, err
	}

	rows, err := s.repo.UpcomingBookings(ctx, s.now(), dashboardLimit)
	if err != nil {
		return nil, err
	}
	stats.Upcoming = s.bookingViews(rows)
	return &stats, nil
}

// DueReminders returns confirmed bookings whose slot starts on the local day
// of day.
func (s *Service) DueReminders(ctx context.Context, day time.Time) ([]ReminderView, error) {
	from, to := DayBounds(day, s.loc)
	rows, err := s.repo.BookingsStartingBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]ReminderView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ReminderView{
			BookingID:   r.BookingID,
			GuestID:     r.GuestID,
			GuestName:   r.GuestName,
			GuestEmail:  r.GuestEmail,
			StartTime:   r.StartTime.In(s.loc),
			EndTime:     r.EndTime.In(s.loc),
			StoreName:   r.StoreName,
			StaffName:   r.StaffName,
			ServiceName: r.ServiceName,
		})
	}
	return out, nil
}

func (s *Service) bookingViews(rows []repository.BookingRow) []BookingView {
	out := make([]BookingView, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.bookingView(r))
	}
	return out
}

func (s *Service) bookingView(r repository.BookingRow) BookingView {
	return BookingView{
		ID:              r.BookingID,
		Status:          domain.BookingStatus(r.Status),
		Notes:           deref(r.Notes),
		CreatedAt:       r.CreatedAt,
		CancelledAt:     r.CancelledAt,
		SlotID:          r.SlotID,
		StartTime:       r.StartTime.In(s.loc),
		EndTime:         r.EndTime.In(s.loc),
		StoreID:         r.StoreID,
		StoreName:       r.StoreName,
		StaffName:       r.StaffName,
		ServiceName:     r.ServiceName,
		ServiceCategory: domain.ServiceCategory(r.ServiceCategory),
		GuestID:         r.GuestID,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
