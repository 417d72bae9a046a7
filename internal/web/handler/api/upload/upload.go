// Package upload implements the authenticated media upload endpoint.
package upload

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/auth"
	"github.com/vikascatering/catering-admin/internal/config"
	uploadsvc "github.com/vikascatering/catering-admin/internal/upload"
	middleware "github.com/vikascatering/catering-admin/internal/web/middleware/auth"
)

// Path is the upload endpoint path.
const Path = "/api/upload"

// Service is the upload handler service.
type Service struct {
	cfg   *config.Config
	store *uploadsvc.Service
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler and registers its route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *gorm.DB, tokens *auth.TokenManager, store *uploadsvc.Service) error {
	if app == nil || cfg == nil || tokens == nil || store == nil {
		return errors.New("app, cfg, tokens or store is nil")
	}

	s.cfg = cfg
	s.store = store

	app.Post(Path, middleware.New(tokens), s.Upload)

	return nil
}

// Upload accepts a single multipart file, persists it under a generated
// unique name and returns the publicly reachable URL. The endpoint has no
// awareness of where its output will be referenced; the editor stores the
// URL into the document via the normal update path.
func (s *Service) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded",
		})
	}

	result, err := s.store.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, uploadsvc.ErrDisallowedType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Only images and videos are allowed",
			})
		case errors.Is(err, uploadsvc.ErrFileTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "File exceeds the maximum upload size",
			})
		default:
			log.Error().Err(err).Msg("upload failed")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Upload failed",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"url":      result.URL,
		"filename": result.Filename,
		"size":     result.Size,
		"mimetype": result.Mimetype,
	})
}
