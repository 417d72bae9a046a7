// Package web wires the fiber application: middleware, routes, templates
// and lifecycle.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/auth"
	"github.com/vikascatering/catering-admin/internal/config"
	fiberlogger "github.com/vikascatering/catering-admin/internal/logger/adapter/fiber"
	uploadsvc "github.com/vikascatering/catering-admin/internal/upload"
	contactapi "github.com/vikascatering/catering-admin/internal/web/handler/api/contact"
	loginapi "github.com/vikascatering/catering-admin/internal/web/handler/api/login"
	sitedataapi "github.com/vikascatering/catering-admin/internal/web/handler/api/sitedata"
	uploadapi "github.com/vikascatering/catering-admin/internal/web/handler/api/upload"
	"github.com/vikascatering/catering-admin/internal/web/handler/site"
)

// CheckAlivePath is the liveness probe path.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	tokens       *auth.TokenManager
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "catering-admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			// uploads up to the configured limit plus form overhead
			BodyLimit: int(cfg.Upload.MaxSize) + 1<<20,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	if cfg.Webserver.Origin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Webserver.Origin,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET, POST, PATCH, DELETE",
		}))
	}

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// uploaded media is served straight from the upload directory
	app.Static("/uploads", cfg.Upload.Dir)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	store, err := uploadsvc.NewService(cfg.Upload.Dir, cfg.Upload.MaxSize, cfg.Webserver.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init upload storage")
	}

	service := &Service{
		cfg:    cfg,
		App:    app,
		db:     db,
		tokens: tokens,
	}
	service.alive.Store(true)

	// init handlers (they register their own routes)
	if err := loginapi.Handler.Init(app, cfg, db, tokens); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	if err := sitedataapi.Handler.Init(app, cfg, db, tokens); err != nil {
		log.Fatal().Err(err).Msg("failed to init sitedata handler")
	}

	if err := contactapi.Handler.Init(app, cfg, db, tokens); err != nil {
		log.Fatal().Err(err).Msg("failed to init contact handler")
	}

	if err := uploadapi.Handler.Init(app, cfg, db, tokens, store); err != nil {
		log.Fatal().Err(err).Msg("failed to init upload handler")
	}

	if err := site.Handler.Init(app, cfg, db); err != nil {
		log.Fatal().Err(err).Msg("failed to init site handler")
	}

	// liveness probe, flips to 503 while draining
	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendStatus(fiber.StatusOK)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return service
}
