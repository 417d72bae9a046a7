package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/db/models"
)

func seed(cfg *config.Config, db *gorm.DB) {
	// Seed the admin account if the user table is empty

	var count int64
	db.Model(&models.User{}).Count(&count)

	if count != 0 {
		return
	}

	password := cfg.Auth.AdminPassword
	if password == "" {
		password = "changeme"

		log.Warn().Msg("no admin password configured, seeding with default password")
	}

	db.Create(
		&models.User{
			Username: cfg.Auth.AdminUsername,
			Password: models.HashPassword(password),
		},
	)

	log.Info().Str("username", cfg.Auth.AdminUsername).Msg("seeded admin user")
}
