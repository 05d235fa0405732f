package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	SeatPolicyAll   = "all"
	SeatPolicyFirst = "first"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	LogLevel    slog.Level

	StoreDriver         string
	MongoURI            string
	MongoDatabase       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	AccessTokenSecret string
	AccessTokenTTL    time.Duration

	PaymentSecretKey       string
	PaymentCurrency        string
	PaymentProviderTimeout time.Duration

	EnrollmentSeatPolicy  string
	EnrollmentTaskTimeout time.Duration

	EnforceRoleGuards bool
	AdminEmail        string

	ShutdownTimeout time.Duration
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "fluent-academy"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "5000"
	}

	var level slog.Level
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	if driver == "" {
		driver = StoreDriverMongo
	}
	switch driver {
	case StoreDriverMongo, StoreDriverPostgres, StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}

	seatPolicy := strings.ToLower(strings.TrimSpace(os.Getenv("ENROLLMENT_SEAT_POLICY")))
	if seatPolicy == "" {
		seatPolicy = SeatPolicyAll
	}
	if seatPolicy != SeatPolicyAll && seatPolicy != SeatPolicyFirst {
		return Config{}, fmt.Errorf("unsupported ENROLLMENT_SEAT_POLICY %q", seatPolicy)
	}

	secret := os.Getenv("ACCESS_TOKEN_SECRET")
	if strings.TrimSpace(secret) == "" {
		return Config{}, errors.New("ACCESS_TOKEN_SECRET is required")
	}

	cfg := Config{
		ServiceName: service,
		HTTPPort:    port,
		LogLevel:    level,

		StoreDriver:         driver,
		MongoURI:            mongoURI(),
		MongoDatabase:       envString("MONGODB_DATABASE", "summerCamp"),
		PostgresDSN:         os.Getenv("POSTGRES_DSN"),
		PostgresAutoMigrate: envBool("POSTGRES_AUTO_MIGRATE", true),

		AccessTokenSecret: secret,
		PaymentSecretKey:  os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentCurrency:   strings.ToLower(envString("PAYMENT_CURRENCY", "usd")),

		EnrollmentSeatPolicy: seatPolicy,

		EnforceRoleGuards: envBool("ENFORCE_ROLE_GUARDS", true),
		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
	}

	durations := []struct {
		name     string
		target   *time.Duration
		fallback time.Duration
	}{
		{"ACCESS_TOKEN_TTL", &cfg.AccessTokenTTL, time.Hour},
		{"PAYMENT_PROVIDER_TIMEOUT", &cfg.PaymentProviderTimeout, 10 * time.Second},
		{"ENROLLMENT_TASK_TIMEOUT", &cfg.EnrollmentTaskTimeout, 30 * time.Second},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout, 15 * time.Second},
	}
	for _, item := range durations {
		value, err := envDuration(item.name, item.fallback)
		if err != nil {
			return Config{}, err
		}
		*item.target = value
	}

	if driver == StoreDriverPostgres && strings.TrimSpace(cfg.PostgresDSN) == "" {
		return Config{}, errors.New("POSTGRES_DSN is required for the postgres store driver")
	}
	return cfg, nil
}

// mongoURI prefers MONGODB_URI, then an Atlas SRV uri from DB_USER/DB_PASS/DB_HOST.
func mongoURI() string {
	if uri := strings.TrimSpace(os.Getenv("MONGODB_URI")); uri != "" {
		return uri
	}
	user := os.Getenv("DB_USER")
	host := strings.TrimSpace(os.Getenv("DB_HOST"))
	if user != "" && host != "" {
		return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
			url.QueryEscape(user),
			url.QueryEscape(os.Getenv("DB_PASS")),
			host,
		)
	}
	return "mongodb://localhost:27017"
}

func envString(name string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return value, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
