package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"gymbooking/internal/config"
	"gymbooking/internal/database"
	"gymbooking/internal/modules/query"
	"gymbooking/internal/modules/reminder"
	"gymbooking/internal/pkg/logger"
	"gymbooking/internal/pkg/mq"
	"gymbooking/internal/repository"

	"go.uber.org/zap"
)

// Sends reminders for tomorrow's confirmed bookings. Meant to run once a day
// from cron; running it twice re-sends.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, zlog, nil)
	if err != nil {
		zlog.Fatal("db connect failed", zap.Error(err))
	}

	dispatcher := reminder.NewLogDispatcher(zlog.Named("reminder"))
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			zlog.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer func() { _ = pub.Close() }()
		dispatcher = reminder.NewBrokerDispatcher(pub)
	}

	source := query.NewService(repository.NewQueryRepository(db), cfg.Location)
	res, err := reminder.NewJob(source, dispatcher, zlog).Run(ctx)
	if err != nil {
		zlog.Fatal("reminder run failed", zap.Error(err))
	}
	if res.Failed > 0 {
		zlog.Warn("some reminders were not sent", zap.Int("failed", res.Failed))
	}
}
