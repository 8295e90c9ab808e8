package reminder

import (
	"context"
	"fmt"
	"time"

	"gymbooking/internal/modules/query"

	"go.uber.org/zap"
)

type Source interface {
	DueReminders(ctx context.Context, day time.Time) ([]query.ReminderView, error)
	Location() *time.Location
}

type Result struct {
	Day    string `json:"day"`
	Sent   int    `json:"sent"`
	Failed int    `json:"failed"`
}

// Job sends day-ahead reminders. It keeps no record of what was sent, so
// running it twice for the same day sends everything twice.
type Job struct {
	source     Source
	dispatcher Dispatcher
	log        *zap.Logger
	now        func() time.Time
}

func NewJob(source Source, dispatcher Dispatcher, log *zap.Logger) *Job {
	if log == nil {
		log = zap.NewNop()
	}
	return &Job{source: source, dispatcher: dispatcher, log: log, now: time.Now}
}

// Run dispatches a reminder for every confirmed booking that starts on the
// local day after today. A failed dispatch is logged and counted.
func (j *Job) Run(ctx context.Context) (Result, error) {
	loc := j.source.Location()
	tomorrow := j.now().In(loc).AddDate(0, 0, 1)
	res := Result{Day: tomorrow.Format("2006-01-02")}

	due, err := j.source.DueReminders(ctx, tomorrow)
	if err != nil {
		return res, fmt.Errorf("load reminders for %s: %w", res.Day, err)
	}

	for _, v := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		r := Reminder{
			BookingID:   v.BookingID,
			GuestID:     v.GuestID,
			GuestName:   v.GuestName,
			GuestEmail:  v.GuestEmail,
			StartTime:   v.StartTime,
			StoreName:   v.StoreName,
			StaffName:   v.StaffName,
			ServiceName: v.ServiceName,
		}
		if err := j.dispatcher.Dispatch(ctx, r); err != nil {
			res.Failed++
			j.log.Warn("reminder dispatch failed",
				zap.String("booking_id", v.BookingID.String()),
				zap.Error(err),
			)
			continue
		}
		res.Sent++
	}

	j.log.Info("reminders dispatched",
		zap.String("day", res.Day),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}
