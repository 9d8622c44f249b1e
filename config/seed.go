package config

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin makes sure the bootstrap admin exists. It never touches an
// existing account, so a changed password survives restarts.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg AdminConfig, log zerolog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin seed")
		return nil
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", cfg.Email).First(&existing).Error
	if err == nil {
		if existing.Role != models.RoleAdmin {
			log.Warn().Str("email", cfg.Email).Str("role", existing.Role).Uint("user_id", existing.ID).
				Msg("ADMIN_EMAIL belongs to a non-admin account; no admin seeded")
			return nil
		}
		log.Info().Str("email", cfg.Email).Msg("admin already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info().Str("email", admin.Email).Uint("user_id", admin.ID).Msg("default admin seeded")
	return nil
}
