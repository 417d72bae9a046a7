package app

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vikascatering/catering-admin/internal/config"
	"github.com/vikascatering/catering-admin/internal/logger"
	"github.com/vikascatering/catering-admin/internal/syncer"
)

func init() { //nolint: gochecknoinits
	setSectionCmd.Flags().StringVar(&setSectionURL, "url", "", "Base URL of the running service (defaults to Webserver.URL)")
	setSectionCmd.Flags().StringVar(&setSectionToken, "token", "", "Bearer token (defaults to logging in with the configured admin credentials)")
	setSectionCmd.Flags().StringVar(&setSectionName, "section", "", "Top-level section to replace (required)")
	setSectionCmd.Flags().StringVar(&setSectionData, "data", "", "JSON value for the section (required)")

	_ = setSectionCmd.MarkFlagRequired("section")
	_ = setSectionCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(setSectionCmd)
}

var (
	setSectionURL   string
	setSectionToken string
	setSectionName  string
	setSectionData  string

	setSectionCmd = &cobra.Command{
		Use:   "set-section",
		Short: "Replace one top-level section of the site content over the API",
		Long: `set-section edits the live site content the same way the admin editor
does: it fetches the current document, replaces one top-level section and
writes the merged result back through the authenticated API.`,
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}

			if err = logger.Init(cfg.Log); err != nil {
				panic(err)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var value any
			if err := json.Unmarshal([]byte(setSectionData), &value); err != nil {
				return err
			}

			baseURL := setSectionURL
			if baseURL == "" {
				baseURL = cfg.Webserver.URL
			}

			client := syncer.NewClient(baseURL, setSectionToken)

			if setSectionToken == "" {
				if err := client.Login(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
					return err
				}
			}

			s := syncer.New(client, cfg.Sync.Debounce)
			defer s.Close()

			if err := s.Open(ctx); err != nil {
				return err
			}

			if err := s.Verify(ctx); err != nil {
				return err
			}

			s.UpdateSection(setSectionName, value)

			if err := s.Flush(ctx); err != nil {
				return err
			}

			log.Info().Str("section", setSectionName).Msg("section saved")

			return nil
		},
	}
)
