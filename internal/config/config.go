package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret       string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL          time.Duration `envconfig:"JWT_TTL" default:"24h"`
	Timezone        string        `envconfig:"APP_TIMEZONE" default:"Asia/Tokyo"`
	RabbitURL       string        `envconfig:"RABBIT_URL"`
	EventsExchange  string        `envconfig:"EVENTS_EXCHANGE" default:"gymbooking.events"`
	CORSOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	OTLPEndpoint    string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Location is Timezone resolved by Load.
	Location *time.Location `ignored:"true"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if cfg.AppEnv == "" {
		// exported but empty APP_ENV skips envconfig's default
		cfg.AppEnv = "dev"
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(cfg.EventsExchange) == "" {
		return errors.New("EVENTS_EXCHANGE must not be empty")
	}

	if cfg.IsProdLike() {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return errors.New("in prod-like envs JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			return errors.New("in prod-like envs DATABASE_URL must point to PostgreSQL")
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return IsProdLike(c.AppEnv)
}

// IsProdLike is the single list of environments that get production
// validation and production logging.
func IsProdLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production", "release", "staging":
		return true
	}
	return false
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
