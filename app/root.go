// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/vikascatering/catering-admin/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "catering-admin",
	Short: "catering-admin serves the Vikas Caterings website and its admin API",
	Long: `catering-admin serves the Vikas Caterings marketing site together
with the REST API used by the admin panel to manage site content,
media uploads and contact form submissions.`,
	Args: cobra.OnlyValidArgs,
}

var (
	cfg config.Config
	err error

	configPath string
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"etc/",
		"Path to the directory containing main.toml",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
