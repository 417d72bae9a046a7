package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/db/controller/sitedoc"
	"github.com/vikascatering/catering-admin/internal/db/models"
)

// recordingViews is a minimal Fiber Views engine used for tests. It writes
// the template name plus the rendered site name so tests can assert which
// template and document a page was rendered from.
type recordingViews struct{}

func (recordingViews) Load() error { return nil }

func (recordingViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	if m, ok := data.(fiber.Map); ok {
		if site, ok := m["Site"].(map[string]any); ok {
			if siteName, ok := site["siteName"].(string); ok {
				_, _ = io.WriteString(w, " "+siteName)
			}
		}
	}

	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.SiteDocument{}, &models.ContactSubmission{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return db
}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	app := fiber.New(fiber.Config{Views: recordingViews{}})
	db := newTestDB(t)

	cfg := &config.Config{
		Title:     "Vikas Caterings",
		Webserver: config.Webserver{URL: "http://localhost", Port: 3000},
	}

	var svc Service
	if err := svc.Init(app, cfg, db); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	return app, db
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return resp.StatusCode, string(body)
}

func TestPagesRender(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		path         string
		wantTemplate string
	}{
		{"/", "index"},
		{"/menu", "menu"},
		{"/our-work", "ourwork"},
		{"/contact", "contact"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, app, tt.path)

			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200", status)
			}

			if !strings.HasPrefix(body, tt.wantTemplate) {
				t.Errorf("body = %q, want template %q", body, tt.wantTemplate)
			}

			// with no stored document the defaults are rendered
			if !strings.Contains(body, "Vikas Caterings") {
				t.Errorf("body = %q, want default site name", body)
			}
		})
	}
}

func TestPagesRenderStoredDocument(t *testing.T) {
	app, db := setup(t)

	if _, err := sitedoc.Upsert(db, datatypes.JSON(`{"siteName":"Renamed Caterers"}`)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	_, body := get(t, app, "/")

	if !strings.Contains(body, "Renamed Caterers") {
		t.Errorf("body = %q, want stored site name", body)
	}
}

func TestSubmitContactForm(t *testing.T) {
	app, db := setup(t)

	form := url.Values{}
	form.Set("name", "Alice")
	form.Set("email", "alice@example.com")
	form.Set("phone", "+91 9876543210")
	form.Set("message", "Birthday party enquiry")

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != "/contact?sent=1" {
		t.Errorf("Location = %q, want /contact?sent=1", loc)
	}

	var count int64
	db.Model(&models.ContactSubmission{}).Count(&count)

	if count != 1 {
		t.Errorf("submission count = %d, want 1", count)
	}
}

func TestSubmitContactFormMissingFields(t *testing.T) {
	app, db := setup(t)

	form := url.Values{}
	form.Set("name", "Alice")

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	defer resp.Body.Close()

	if loc := resp.Header.Get("Location"); loc != "/contact?error=1" {
		t.Errorf("Location = %q, want /contact?error=1", loc)
	}

	var count int64
	db.Model(&models.ContactSubmission{}).Count(&count)

	if count != 0 {
		t.Errorf("submission count = %d, want 0", count)
	}
}
