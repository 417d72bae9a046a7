// Package sitedata implements the content API over the single site
// document: public read, authenticated upsert and reset.
package sitedata

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/auth"
	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/db/controller/sitedoc"
	middleware "github.com/vikascatering/catering-admin/internal/web/middleware/auth"
)

const (
	// Path is the site data endpoint path.
	Path = "/api/sitedata"
	// DebugPath exposes document presence and freshness for diagnosis.
	DebugPath = "/api/sitedata/debug"
	// ResetPath deletes the document so clients fall back to defaults.
	ResetPath = "/api/sitedata/reset"
)

// Service is the site data handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the site data handler.
var Handler = Service{}

type updateRequest struct {
	Data json.RawMessage `json:"data"`
}

// Init initializes the site data handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, tokens *auth.TokenManager) error {
	if app == nil || cfg == nil || db == nil || tokens == nil {
		return errors.New("app, cfg, db or tokens is nil")
	}

	s.cfg = cfg
	s.db = db

	bearer := middleware.New(tokens)

	app.Get(Path, s.Get)
	app.Get(DebugPath, s.Debug)
	app.Post(Path, bearer, s.Update)
	app.Delete(ResetPath, bearer, s.Reset)

	return nil
}

// Get returns the current document, or a null data field if none exists
// yet. The client is expected to fall back to its embedded defaults.
func (s *Service) Get(c *fiber.Ctx) error {
	doc, err := sitedoc.Get(s.db)
	if err != nil {
		if errors.Is(err, sitedoc.ErrDocumentNotFound) {
			return c.JSON(fiber.Map{
				"success": true,
				"data":    nil,
			})
		}

		log.Error().Err(err).Msg("failed to get site data")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to get site data",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    json.RawMessage(doc.Data),
	})
}

// Debug reports whether the document exists and when it was last written.
func (s *Service) Debug(c *fiber.Ctx) error {
	doc, err := sitedoc.Get(s.db)
	if err != nil {
		if errors.Is(err, sitedoc.ErrDocumentNotFound) {
			return c.JSON(fiber.Map{
				"success": true,
				"hasData": false,
				"data":    nil,
			})
		}

		log.Error().Err(err).Msg("site data debug failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Debug failed",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"hasData":   true,
		"data":      json.RawMessage(doc.Data),
		"updatedAt": doc.UpdatedAt,
	})
}

// Update upserts the document verbatim. No schema validation, no conflict
// detection: concurrent writers silently clobber each other.
func (s *Service) Update(c *fiber.Ctx) error {
	var req updateRequest

	if err := c.BodyParser(&req); err != nil || len(req.Data) == 0 || string(req.Data) == "null" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No data provided",
		})
	}

	doc, err := sitedoc.Upsert(s.db, datatypes.JSON(req.Data))
	if err != nil {
		log.Error().Err(err).Msg("failed to update site data")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update site data",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    json.RawMessage(doc.Data),
	})
}

// Reset deletes the document entirely so that subsequent reads return null
// and clients substitute defaults.
func (s *Service) Reset(c *fiber.Ctx) error {
	if err := sitedoc.Delete(s.db); err != nil {
		log.Error().Err(err).Msg("failed to reset site data")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to reset site data",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Site data reset to defaults",
	})
}
