package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/db/dsn"
	"github.com/vikascatering/catering-admin/internal/db/models"
	"github.com/vikascatering/catering-admin/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	return d.webService.Start(addr)
}

// OpenDB opens the configured database engine and runs migrations. It is
// shared between the daemon and the maintenance commands.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case "mysql":
		dialector = gormmysql.Open(dsn.Create(cfg))
	case "postgres":
		dialector = gormpostgres.Open(dsn.Create(cfg))
	default:
		dialector = sqlite.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.SiteDocument{},
		&models.ContactSubmission{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
		return nil
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
