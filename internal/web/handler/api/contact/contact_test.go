package contact

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/auth"
	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/db/models"
)

func setup(t *testing.T) (*fiber.App, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ContactSubmission{}))

	cfg := &config.Config{
		Webserver: config.Webserver{URL: "http://localhost", Port: 3000},
		Auth:      config.Auth{JWTSecret: "test-secret", TokenExpiry: time.Hour},
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	app := fiber.New()

	var svc Service
	require.NoError(t, svc.Init(app, cfg, db, tokens))

	token, err := tokens.Issue(1, "admin")
	require.NoError(t, err)

	return app, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

const validSubmission = `{
	"name": "Alice",
	"email": "alice@example.com",
	"phone": "+91 9876543210",
	"people": "120",
	"message": "Corporate lunch for 120 people"
}`

func submitOne(t *testing.T, app *fiber.App) uint64 {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, SubmitPath, "", validSubmission)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	id, ok := body["id"].(float64)
	require.True(t, ok, "response should carry the new id")

	return uint64(id)
}

func TestSubmit(t *testing.T) {
	app, _ := setup(t)

	// the form endpoint is public, no token needed
	id := submitOne(t, app)
	assert.NotZero(t, id)
}

func TestSubmitValidation(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@example.com","phone":"1","message":"hi"}`},
		{"missing email", `{"name":"A","phone":"1","message":"hi"}`},
		{"bad email", `{"name":"A","email":"not-an-email","phone":"1","message":"hi"}`},
		{"missing phone", `{"name":"A","email":"a@example.com","message":"hi"}`},
		{"missing message", `{"name":"A","email":"a@example.com","phone":"1"}`},
		{"malformed body", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, SubmitPath, "", tt.body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestListRequiresToken(t *testing.T) {
	app, _ := setup(t)

	resp := doJSON(t, app, http.MethodGet, ListPath, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestList(t *testing.T) {
	app, token := setup(t)

	submitOne(t, app)
	submitOne(t, app)

	resp := doJSON(t, app, http.MethodGet, ListPath, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	contacts, ok := body["contacts"].([]any)
	require.True(t, ok)
	assert.Len(t, contacts, 2)

	first, ok := contacts[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "new", first["status"])
}

func TestUpdateStatus(t *testing.T) {
	app, token := setup(t)
	id := submitOne(t, app)

	path := fmt.Sprintf("%s/%d", ListPath, id)

	resp := doJSON(t, app, http.MethodPatch, path, token, `{"status":"read"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	contact, ok := body["contact"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "read", contact["status"])
}

func TestUpdateStatusErrors(t *testing.T) {
	app, token := setup(t)
	id := submitOne(t, app)

	t.Run("invalid status", func(t *testing.T) {
		path := fmt.Sprintf("%s/%d", ListPath, id)

		resp := doJSON(t, app, http.MethodPatch, path, token, `{"status":"archived"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPatch, ListPath+"/99999", token, `{"status":"read"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPatch, ListPath+"/abc", token, `{"status":"read"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("without token", func(t *testing.T) {
		path := fmt.Sprintf("%s/%d", ListPath, id)

		resp := doJSON(t, app, http.MethodPatch, path, "", `{"status":"read"}`)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSubmissionLifecycle(t *testing.T) {
	app, token := setup(t)

	// anonymous submission lands with status new
	id := submitOne(t, app)

	resp := doJSON(t, app, http.MethodGet, ListPath, token, "")
	body := decodeBody(t, resp)
	contacts := body["contacts"].([]any)
	require.Len(t, contacts, 1)
	assert.Equal(t, "new", contacts[0].(map[string]any)["status"])

	// mark it read
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("%s/%d", ListPath, id), token, `{"status":"read"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// the new status shows up on subsequent lists
	resp = doJSON(t, app, http.MethodGet, ListPath, token, "")
	body = decodeBody(t, resp)
	contacts = body["contacts"].([]any)
	require.Len(t, contacts, 1)
	assert.Equal(t, "read", contacts[0].(map[string]any)["status"])
}

func TestDelete(t *testing.T) {
	app, token := setup(t)
	id := submitOne(t, app)

	path := fmt.Sprintf("%s/%d", ListPath, id)

	resp := doJSON(t, app, http.MethodDelete, path, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// deleting again reports not found
	resp = doJSON(t, app, http.MethodDelete, path, token, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
