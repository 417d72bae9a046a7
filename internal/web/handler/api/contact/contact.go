// Package contact implements the contact submission API: public create,
// authenticated list, status update and delete.
package contact

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/auth"
	"github.com/vikascatering/catering-admin/internal/config"
	contactctl "github.com/vikascatering/catering-admin/internal/db/controller/contact"
	"github.com/vikascatering/catering-admin/internal/db/models"
	middleware "github.com/vikascatering/catering-admin/internal/web/middleware/auth"
)

const (
	// SubmitPath is the public contact form endpoint path.
	SubmitPath = "/api/contact"
	// ListPath is the authenticated submissions collection path.
	ListPath = "/api/contacts"
)

// Service is the contact handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

// Handler is the contact handler.
var Handler = Service{}

type submitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	People  string `json:"people"`
	Message string `json:"message" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// Init initializes the contact handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, tokens *auth.TokenManager) error {
	if app == nil || cfg == nil || db == nil || tokens == nil {
		return errors.New("app, cfg, db or tokens is nil")
	}

	s.cfg = cfg
	s.db = db
	s.validate = validator.New()

	bearer := middleware.New(tokens)

	app.Post(SubmitPath, s.Submit)
	app.Get(ListPath, bearer, s.List)
	app.Patch(ListPath+"/:id", bearer, s.UpdateStatus)
	app.Delete(ListPath+"/:id", bearer, s.Delete)

	return nil
}

// Submit creates a submission from the public contact form. No rate
// limiting and no spam filtering, matching the site's actual exposure.
func (s *Service) Submit(c *fiber.Ctx) error {
	var req submitRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Name, email, phone, and message are required",
		})
	}

	if err := s.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Name, email, phone, and message are required",
		})
	}

	sub := models.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		People:  req.People,
		Message: req.Message,
	}

	if err := contactctl.Create(s.db, &sub); err != nil {
		log.Error().Err(err).Msg("failed to store contact submission")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to submit contact form",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact form submitted successfully",
		"id":      sub.ID,
	})
}

// List returns all submissions, newest first. The admin UI polls this to
// surface a new-submissions badge count.
func (s *Service) List(c *fiber.Ctx) error {
	subs, err := contactctl.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list contact submissions")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to get contacts",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"contacts": subs,
	})
}

// UpdateStatus moves a submission to one of the three status values.
func (s *Service) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Contact not found",
		})
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	sub, err := contactctl.UpdateStatus(s.db, id, models.ContactStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, contactctl.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid status",
			})
		case errors.Is(err, contactctl.ErrSubmissionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Contact not found",
			})
		default:
			log.Error().Err(err).Msg("failed to update contact status")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update contact status",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"contact": sub,
	})
}

// Delete hard-deletes a submission.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Contact not found",
		})
	}

	if err := contactctl.Delete(s.db, id); err != nil {
		if errors.Is(err, contactctl.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Contact not found",
			})
		}

		log.Error().Err(err).Msg("failed to delete contact submission")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete contact",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact deleted successfully",
	})
}
