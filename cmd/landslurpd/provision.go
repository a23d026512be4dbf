package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landslurp/landslurp/cmd/landslurpd/config"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Ensure the search index, data source, and indexer exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		return newProvisioner(cfg, logger.Named("provision")).Ensure(cmdContext())
	},
}
