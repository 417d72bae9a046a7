// Package site renders the public marketing pages over the merged site
// document. There is no write path here beyond the contact form.
package site

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/content"
	contactctl "github.com/vikascatering/catering-admin/internal/db/controller/contact"
	"github.com/vikascatering/catering-admin/internal/db/controller/sitedoc"
	"github.com/vikascatering/catering-admin/internal/db/models"
	"github.com/vikascatering/catering-admin/internal/web/handler"
)

// Service is the public site handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the public site handler.
var Handler = Service{}

// Init initializes the public site handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Get(handler.RouterRootPath, s.Home)
	app.Get("/menu", s.Menu)
	app.Get("/our-work", s.OurWork)
	app.Get("/contact", s.Contact)
	app.Post("/contact", s.SubmitContact)

	return nil
}

// document loads the stored site document and merges it with the embedded
// defaults so the pages always have every field defined, even when the
// stored document predates newer sections.
func (s *Service) document() content.Document {
	doc, err := sitedoc.Get(s.db)
	if err != nil {
		if !errors.Is(err, sitedoc.ErrDocumentNotFound) {
			log.Error().Err(err).Msg("failed to load site document, rendering defaults")
		}

		return content.Defaults()
	}

	var stored content.Document
	if err := json.Unmarshal(doc.Data, &stored); err != nil {
		log.Error().Err(err).Msg("stored site document is not an object, rendering defaults")

		return content.Defaults()
	}

	return content.MergeWithDefaults(stored)
}

// Home renders the landing page with all its sections.
func (s *Service) Home(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Site":  s.document(),
		"Title": s.cfg.Title,
	}, handler.BaseLayout)
}

// Menu renders the detailed menu page.
func (s *Service) Menu(c *fiber.Ctx) error {
	return c.Render("menu", fiber.Map{
		"Site":  s.document(),
		"Title": s.cfg.Title,
	}, handler.BaseLayout)
}

// OurWork renders the gallery page.
func (s *Service) OurWork(c *fiber.Ctx) error {
	return c.Render("ourwork", fiber.Map{
		"Site":  s.document(),
		"Title": s.cfg.Title,
	}, handler.BaseLayout)
}

// Contact renders the contact page with the enquiry form.
func (s *Service) Contact(c *fiber.Ctx) error {
	return c.Render("contact", fiber.Map{
		"Site":  s.document(),
		"Title": s.cfg.Title,
		"Sent":  c.Query("sent") == "1",
		"Error": c.Query("error") == "1",
	}, handler.BaseLayout)
}

// SubmitContact handles the server-rendered contact form post and redirects
// back to the contact page.
func (s *Service) SubmitContact(c *fiber.Ctx) error {
	sub := models.ContactSubmission{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		People:  c.FormValue("people"),
		Message: c.FormValue("message"),
	}

	if sub.Name == "" || sub.Email == "" || sub.Phone == "" || sub.Message == "" {
		return c.Redirect("/contact?error=1")
	}

	if err := contactctl.Create(s.db, &sub); err != nil {
		log.Error().Err(err).Msg("failed to store contact submission")

		return c.Redirect("/contact?error=1")
	}

	return c.Redirect("/contact?sent=1")
}
