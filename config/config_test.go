package config

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"hotel-booking/models"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "JWT_TTL", "REDIS_ADDR", "CORS_ORIGINS", "PAYMENT_PROCESSOR_TIMEOUT", "ADMIN_EMAIL"} {
		t.Setenv(key, "")
	}
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 48*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.Payments.ProcessorTimeout)
	assert.Equal(t, "admin@hotel.local", cfg.Admin.Email)
	assert.Empty(t, cfg.Redis.Address)
	assert.Empty(t, cfg.HTTP.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("LOCK_WAIT_TIMEOUT", "250ms")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "2.5")
	t.Setenv("ADMIN_EMAIL", "Boss@Hotel.Example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Locks.WaitTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 2.5, cfg.HTTP.AuthRateLimitRPS)
	assert.Equal(t, "boss@hotel.example", cfg.Admin.Email)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Driver: DriverSQLite},
			Auth:     AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
			Payments: PaymentsConfig{StripeSecretKey: "sk", ProcessorTimeout: time.Second},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"MissingJWTSecret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"ZeroTTL", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"MissingStripeKey", func(c *Config) { c.Payments.StripeSecretKey = "" }},
		{"ZeroProcessorTimeout", func(c *Config) { c.Payments.ProcessorTimeout = 0 }},
		{"UnknownDriver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"PostgresWithoutURL", func(c *Config) { c.Database.Driver = DriverPostgres }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Run("FromURL", func(t *testing.T) {
		dsn, err := MySQLDSN(DatabaseConfig{URL: "mysql://app:pw@db.internal:3307/hotels?charset=latin1&loc=Local"})
		require.NoError(t, err)

		parsed, err := mysqldriver.ParseDSN(dsn)
		require.NoError(t, err)
		assert.Equal(t, "app", parsed.User)
		assert.Equal(t, "pw", parsed.Passwd)
		assert.Equal(t, "db.internal:3307", parsed.Addr)
		assert.Equal(t, "hotels", parsed.DBName)
		assert.True(t, parsed.ParseTime)
		assert.Equal(t, time.UTC, parsed.Loc)
		assert.Contains(t, dsn, "charset=latin1")
		assert.NotContains(t, dsn, "utf8mb4")
	})

	t.Run("FromParts", func(t *testing.T) {
		dsn, err := MySQLDSN(DatabaseConfig{User: "root", Host: "127.0.0.1", Port: "3306", Name: "hotel_booking"})
		require.NoError(t, err)

		parsed, err := mysqldriver.ParseDSN(dsn)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:3306", parsed.Addr)
		assert.Equal(t, "hotel_booking", parsed.DBName)
		assert.Contains(t, dsn, "charset=utf8mb4")
		assert.True(t, parsed.ParseTime)
	})

	t.Run("URLWithoutDatabase", func(t *testing.T) {
		_, err := MySQLDSN(DatabaseConfig{URL: "mysql://app:pw@db.internal"})
		assert.Error(t, err)
	})
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	db, err := ConnectDatabase(DatabaseConfig{
		Driver:     DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "seed.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, AdminConfig{Email: "admin@hotel.local"}, zerolog.Nop()))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "no password, no admin")

	cfg := AdminConfig{Email: "admin@hotel.local", Password: "first"}
	require.NoError(t, SeedAdmin(ctx, db, cfg, zerolog.Nop()))
	cfg.Password = "second"
	require.NoError(t, SeedAdmin(ctx, db, cfg, zerolog.Nop()))

	var admins []models.User
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, models.RoleAdmin, admins[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("first")))
}

func TestSeedAdminWarnsWhenEmailTakenByGuest(t *testing.T) {
	db, err := ConnectDatabase(DatabaseConfig{
		Driver:     DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "seed.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	guest := models.User{Email: "admin@hotel.local", PasswordHash: "x", Role: models.RoleGuest}
	require.NoError(t, db.Create(&guest).Error)

	var buf bytes.Buffer
	err = SeedAdmin(context.Background(), db, AdminConfig{Email: "admin@hotel.local", Password: "pw"}, zerolog.New(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "non-admin")

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleGuest, users[0].Role, "existing account is not promoted")
}
