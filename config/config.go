package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Admin    AdminConfig
	Payments PaymentsConfig
	Locks    LockConfig
	Logging  LoggingConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type HTTPConfig struct {
	Port               string
	CORSOrigins        []string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

type DatabaseConfig struct {
	Driver       string // mysql, postgres or sqlite
	URL          string
	User         string
	Password     string
	Host         string
	Port         string
	Name         string
	SQLitePath   string
	MaxOpenConns int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AdminConfig struct {
	Email    string
	Password string
}

type PaymentsConfig struct {
	StripeSecretKey  string
	ProcessorTimeout time.Duration
}

type LockConfig struct {
	TTL         time.Duration
	WaitTimeout time.Duration
}

type LoggingConfig struct {
	Level    string
	Format   string
	Output   string
	FilePath string
}

// Load reads .env (optional) and the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        envOrDefault("APP_NAME", "hotel-booking"),
			Environment: envOrDefault("APP_ENV", "development"),
			Version:     envOrDefault("APP_VERSION", "dev"),
		},
		HTTP: HTTPConfig{
			Port:               envOrDefault("PORT", "8080"),
			CORSOrigins:        parseList(os.Getenv("CORS_ORIGINS")),
			AuthRateLimitRPS:   envFloat("AUTH_RATE_LIMIT_RPS", 5),
			AuthRateLimitBurst: envInt("AUTH_RATE_LIMIT_BURST", 10),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
			URL:          firstNonEmpty(os.Getenv("MYSQL_URL"), os.Getenv("DATABASE_URL")),
			User:         envOrDefault("DB_USER", "root"),
			Password:     strings.TrimSpace(os.Getenv("DB_PASS")),
			Host:         envOrDefault("DB_HOST", "127.0.0.1"),
			Port:         envOrDefault("DB_PORT", "3306"),
			Name:         envOrDefault("DB_NAME", "hotel_booking"),
			SQLitePath:   envOrDefault("SQLITE_PATH", "hotel_booking.db"),
			MaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 20),
		},
		Redis: RedisConfig{
			Address:  strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
			TokenTTL:  envDuration("JWT_TTL", 48*time.Hour),
		},
		Admin: AdminConfig{
			Email:    strings.ToLower(envOrDefault("ADMIN_EMAIL", "admin@hotel.local")),
			Password: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		},
		Payments: PaymentsConfig{
			StripeSecretKey:  strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
			ProcessorTimeout: envDuration("PAYMENT_PROCESSOR_TIMEOUT", 15*time.Second),
		},
		Locks: LockConfig{
			TTL:         envDuration("LOCK_TTL", 30*time.Second),
			WaitTimeout: envDuration("LOCK_WAIT_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:    envOrDefault("LOG_LEVEL", "info"),
			Format:   envOrDefault("LOG_FORMAT", "json"),
			Output:   envOrDefault("LOG_OUTPUT", "stdout"),
			FilePath: strings.TrimSpace(os.Getenv("LOG_FILE_PATH")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Payments.StripeSecretKey == "" {
		return errors.New("STRIPE_SECRET_KEY is required")
	}
	if c.Payments.ProcessorTimeout <= 0 {
		return errors.New("PAYMENT_PROCESSOR_TIMEOUT must be positive")
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.Driver == DriverPostgres && c.Database.URL == "" {
		return errors.New("DATABASE_URL is required for postgres")
	}
	return nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
