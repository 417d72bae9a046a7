package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/db/models"
)

// Authenticate verifies a username/password pair against the local database.
// Callers must not surface whether the user existed: both ErrUserNotFound
// and ErrInvalidPassword have to collapse into one generic credentials
// error on the wire.
func Authenticate(db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User

	err := db.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}
