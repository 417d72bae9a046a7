package sitedata

import (
	"encoding/json"
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
	require.NoError(t, db.AutoMigrate(&models.SiteDocument{}))

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

func TestGetEmpty(t *testing.T) {
	app, _ := setup(t)

	resp := doJSON(t, app, http.MethodGet, Path, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["data"])
}

func TestUpdateRequiresToken(t *testing.T) {
	app, _ := setup(t)

	resp := doJSON(t, app, http.MethodPost, Path, "", `{"data":{"siteName":"X"}}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateThenGet(t *testing.T) {
	app, token := setup(t)

	resp := doJSON(t, app, http.MethodPost, Path, token, `{"data":{"siteName":"Custom"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	// the document is readable publicly, verbatim
	resp = doJSON(t, app, http.MethodGet, Path, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body = decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "data should be an object")
	assert.Equal(t, "Custom", data["siteName"])
}

func TestUpdateLastWriteWins(t *testing.T) {
	app, token := setup(t)

	resp := doJSON(t, app, http.MethodPost, Path, token, `{"data":{"v":1}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, Path, token, `{"data":{"v":2}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, Path, "", "")
	body := decodeBody(t, resp)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["v"])
	assert.NotContains(t, data, "siteName")
}

func TestUpdateRejectsEmptyData(t *testing.T) {
	app, token := setup(t)

	for _, body := range []string{`{}`, `{"data":null}`, `{not json`} {
		resp := doJSON(t, app, http.MethodPost, Path, token, body)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)

		decoded := decodeBody(t, resp)
		assert.Equal(t, "No data provided", decoded["message"])
	}
}

func TestDebug(t *testing.T) {
	app, token := setup(t)

	resp := doJSON(t, app, http.MethodGet, DebugPath, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["hasData"])

	resp = doJSON(t, app, http.MethodPost, Path, token, `{"data":{"siteName":"X"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, DebugPath, "", "")
	body = decodeBody(t, resp)

	assert.Equal(t, true, body["hasData"])
	assert.NotEmpty(t, body["updatedAt"])
}

func TestReset(t *testing.T) {
	app, token := setup(t)

	resp := doJSON(t, app, http.MethodPost, Path, token, `{"data":{"siteName":"X"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, ResetPath, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// content is gone, reads fall back to null
	resp = doJSON(t, app, http.MethodGet, Path, "", "")
	body := decodeBody(t, resp)
	assert.Nil(t, body["data"])
}

func TestResetRequiresToken(t *testing.T) {
	app, _ := setup(t)

	resp := doJSON(t, app, http.MethodDelete, ResetPath, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
