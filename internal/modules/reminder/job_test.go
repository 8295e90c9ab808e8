package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymbooking/internal/domain"
	"gymbooking/internal/events"
	"gymbooking/internal/modules/query"
	"gymbooking/internal/repository"
	"gymbooking/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingDispatcher struct {
	sent   []Reminder
	failOn map[string]bool
}

func (d *recordingDispatcher) Dispatch(_ context.Context, r Reminder) error {
	if d.failOn[r.GuestName] {
		return errors.New("smtp down")
	}
	d.sent = append(d.sent, r)
	return nil
}

func reserve(t *testing.T, f *repotest.Fixture, slot *domain.AvailabilitySlot, guest *domain.Profile, at time.Time) *domain.Booking {
	t.Helper()
	b := &domain.Booking{SlotID: slot.ID, GuestID: guest.ID}
	require.NoError(t, repository.NewBookingRepository(f.DB).Reserve(context.Background(), b, at))
	return b
}

func TestJob_Run_TomorrowInLocalZone(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2024-06-01 20:00 JST; tomorrow is 2024-06-02 JST, i.e. 06-01 15:00Z to 06-02 15:00Z.
	now := time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)
	booked := func(start time.Time, guest *domain.Profile) *domain.Booking {
		return reserve(t, f, f.AddSlot(t, start, true), guest, now)
	}

	other := repotest.AddGuest(t, db, "Kenji")
	early := booked(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), f.Guest)
	late := booked(time.Date(2024, 6, 2, 13, 0, 0, 0, time.UTC), other)
	booked(time.Date(2024, 6, 2, 15, 0, 0, 0, time.UTC), f.Guest)
	booked(time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC), f.Guest)

	cancelled := booked(time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC), other)
	_, err = repository.NewBookingRepository(db).Cancel(context.Background(), cancelled.ID, nil, now)
	require.NoError(t, err)

	dispatcher := &recordingDispatcher{}
	job := NewJob(query.NewService(repository.NewQueryRepository(db), tokyo), dispatcher, zap.NewNop())
	job.now = func() time.Time { return now }

	res, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Result{Day: "2024-06-02", Sent: 2}, res)
	require.Len(t, dispatcher.sent, 2)
	assert.Equal(t, early.ID, dispatcher.sent[0].BookingID)
	assert.Equal(t, late.ID, dispatcher.sent[1].BookingID)
	assert.Equal(t, "Kenji", dispatcher.sent[1].GuestName)
	assert.Equal(t, 0, dispatcher.sent[0].StartTime.Hour())
	assert.Equal(t, "Asia/Tokyo", dispatcher.sent[0].StartTime.Location().String())
}

func TestJob_Run_CountsFailures(t *testing.T) {
	db := repotest.Open(t)
	f := repotest.Seed(t, db)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	other := repotest.AddGuest(t, db, "Broken")
	reserve(t, f, f.AddSlot(t, time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), true), f.Guest, now)
	reserve(t, f, f.AddSlot(t, time.Date(2024, 6, 2, 11, 0, 0, 0, time.UTC), true), other, now)

	core, logs := observer.New(zap.WarnLevel)
	dispatcher := &recordingDispatcher{failOn: map[string]bool{"Broken": true}}
	job := NewJob(query.NewService(repository.NewQueryRepository(db), time.UTC), dispatcher, zap.New(core))
	job.now = func() time.Time { return now }

	res, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, logs.FilterMessage("reminder dispatch failed").Len())
}

type recordingPublisher struct {
	key string
	v   any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.key, p.v = key, v
	return nil
}

func TestBrokerDispatcher_UsesReminderKey(t *testing.T) {
	pub := &recordingPublisher{}
	r := Reminder{GuestName: "Mika"}

	require.NoError(t, NewBrokerDispatcher(pub).Dispatch(context.Background(), r))
	assert.Equal(t, events.BookingReminder, pub.key)
	assert.Equal(t, r, pub.v)
}

func TestLogDispatcher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, NewLogDispatcher(zap.New(core)).Dispatch(context.Background(), Reminder{GuestEmail: "a@example.com"}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "a@example.com", logs.All()[0].ContextMap()["guest_email"])
}
