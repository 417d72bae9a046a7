// Package login implements the credential exchange and token verification
// endpoints of the admin API.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/auth"
	"github.com/vikascatering/catering-admin/internal/config"
	middleware "github.com/vikascatering/catering-admin/internal/web/middleware/auth"
)

const (
	// Path is the login endpoint path.
	Path = "/api/login"
	// VerifyPath is the token verification endpoint path.
	VerifyPath = "/api/verify"
)

// Service is the login handler service.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	tokens *auth.TokenManager
}

// Handler is the login handler.
var Handler = Service{}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Init initializes the login handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, tokens *auth.TokenManager) error {
	if app == nil || cfg == nil || db == nil || tokens == nil {
		return errors.New("app, cfg, db or tokens is nil")
	}

	s.cfg = cfg
	s.db = db
	s.tokens = tokens

	app.Post(Path, s.Login)
	app.Get(VerifyPath, middleware.New(tokens), s.Verify)

	return nil
}

// Login verifies the administrator's credentials and issues a bearer token.
// The response never distinguishes an unknown user from a wrong password.
func (s *Service) Login(c *fiber.Ctx) error {
	var creds credentials

	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password required",
		})
	}

	if creds.Username == "" || creds.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password required",
		})
	}

	user, err := auth.Authenticate(s.db, creds.Username, creds.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) && !errors.Is(err, auth.ErrInvalidPassword) {
			log.Error().Err(err).Msg("login failed")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"username": user.Username,
	})
}

// Verify echoes the decoded claims of a valid token.
func (s *Service) Verify(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	return c.JSON(fiber.Map{
		"valid": true,
		"user": fiber.Map{
			"userId":   claims.UserID,
			"username": claims.Username,
		},
	})
}
