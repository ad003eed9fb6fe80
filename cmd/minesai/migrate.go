package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the run database schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg, err := config.NewDatabase()
			if err != nil {
				return err
			}
			url, err := dbCfg.DbURL()
			if err != nil {
				return err
			}
			version, dirty, err := database.Migrate(url, migrations)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"version": version, "dirty": dirty,
			}).Info("migration successful")
			return nil
		},
	}
}
