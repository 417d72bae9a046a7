package config

import (
	"time"

	"github.com/vikascatering/catering-admin/internal/logger"
)

// Auth settings for the administrator account and token issuing.
type Auth struct {
	// JWTSecret signs bearer tokens. Must not be empty.
	JWTSecret string
	// TokenExpiry is the lifetime of issued tokens.
	TokenExpiry time.Duration
	// AdminUsername and AdminPassword seed the single administrator
	// account on first start if the user table is empty.
	AdminUsername string
	AdminPassword string
}

// Upload settings for the media upload endpoint.
type Upload struct {
	// Dir is the local directory uploaded files are written to.
	Dir string
	// MaxSize is the maximum accepted file size in bytes.
	MaxSize int64
}

// Sync settings for the editor-side document syncer.
type Sync struct {
	// Debounce is the inactivity window before a mutation is persisted.
	Debounce time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Upload    Upload
	Sync      Sync
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   // enable static file browsing (for development purposes only)
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	// URL is the externally visible base URL. It is baked into upload
	// URLs at upload time, so it has to stay stable across the
	// deployment's lifetime or stored media URLs go stale (the
	// rewrite-urls command exists to fix them up afterwards).
	URL string
	// Origin is the allowed origin for CORS.
	Origin string
}
