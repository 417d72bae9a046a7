package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vikascatering/catering-admin/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(dumpConfigCmd)
}

var dumpConfigCmd = &cobra.Command{
	Use:   "dump-config",
	Short: "Print the effective configuration as TOML",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		dump, err := config.DumpConfig(cfg)
		if err != nil {
			return err
		}

		fmt.Println(dump)

		return nil
	},
}
