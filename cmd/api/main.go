package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gymbooking/internal/config"
	"gymbooking/internal/database"
	"gymbooking/internal/events"
	"gymbooking/internal/pkg/jwt"
	"gymbooking/internal/pkg/logger"
	"gymbooking/internal/pkg/mq"
	"gymbooking/internal/pkg/obs"
	"gymbooking/internal/realtime"
	"gymbooking/internal/repository"
	"gymbooking/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

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

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, "gymbooking-api", cfg.AppEnv, cfg.OTLPEndpoint)
	if err != nil {
		zlog.Fatal("tracer init failed", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL, zlog, nil)
	if err != nil {
		zlog.Fatal("db connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zlog.Fatal("migrate failed", zap.Error(err))
	}

	var sink events.Sink = events.Nop{}
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			zlog.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer func() { _ = pub.Close() }()
		sink = pub
		zlog.Info("publishing events", zap.String("exchange", cfg.EventsExchange))
	}

	hub := realtime.NewHub(zlog.Named("realtime"))
	defer hub.Close()

	router := server.NewRouter(server.Deps{
		DB:          db,
		Tokens:      jwt.New(cfg.JWTSecret, cfg.JWTTTL),
		Location:    cfg.Location,
		Log:         zlog,
		CORSOrigins: cfg.CORSOrigins,
		Sink:        sink,
		Hub:         hub,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv), zap.String("tz", cfg.Timezone))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http shutdown", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		zlog.Error("tracer shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
