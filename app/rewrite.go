package app

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/content"
	"github.com/vikascatering/catering-admin/internal/daemon"
	"github.com/vikascatering/catering-admin/internal/db/controller/sitedoc"
	"github.com/vikascatering/catering-admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	rewriteCmd.Flags().StringVar(&rewriteOld, "old", "", "Base URL to replace (required)")
	rewriteCmd.Flags().StringVar(&rewriteNew, "new", "", "Base URL to substitute (required)")
	rewriteCmd.Flags().BoolVar(&rewriteDryRun, "dry-run", false, "Report changes without writing them")

	_ = rewriteCmd.MarkFlagRequired("old")
	_ = rewriteCmd.MarkFlagRequired("new")

	rootCmd.AddCommand(rewriteCmd)
}

var (
	rewriteOld    string
	rewriteNew    string
	rewriteDryRun bool

	rewriteCmd = &cobra.Command{
		Use:   "rewrite-urls",
		Short: "Rewrite stale upload URLs in the stored site content",
		Long: `rewrite-urls replaces one base URL with another in every string of
the stored site document. Use it after moving the service to a new
domain so media URLs written by the old deployment keep resolving.`,
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}

			if err = logger.Init(cfg.Log); err != nil {
				panic(err)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := daemon.OpenDB(&cfg)
			if err != nil {
				return err
			}

			doc, err := sitedoc.Get(db)
			if err != nil {
				if errors.Is(err, sitedoc.ErrDocumentNotFound) {
					log.Info().Msg("no stored site content, nothing to rewrite")
					return nil
				}

				return err
			}

			var data any
			if err := json.Unmarshal(doc.Data, &data); err != nil {
				return err
			}

			rewritten, touched := content.RewriteBaseURL(data, rewriteOld, rewriteNew)

			log.Info().
				Int("strings", touched).
				Str("old", rewriteOld).
				Str("new", rewriteNew).
				Bool("dry_run", rewriteDryRun).
				Msg("url rewrite scan complete")

			if rewriteDryRun || touched == 0 {
				return nil
			}

			payload, err := json.Marshal(rewritten)
			if err != nil {
				return err
			}

			if _, err := sitedoc.Upsert(db, datatypes.JSON(payload)); err != nil {
				return err
			}

			log.Info().Msg("rewritten site content saved")

			return nil
		},
	}
)
