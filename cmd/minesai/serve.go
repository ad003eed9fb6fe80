package main

import (
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-ai/internal/app"
	"github.com/vancomm/minesweeper-ai/internal/config"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the hint service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewApp()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			dbCfg, err := config.NewDatabase()
			if err != nil {
				return err
			}

			log.Info("starting up, development = ", cfg.Development)
			err = app.New(log, cfg, dbCfg, migrations).Start(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("shut down")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides APP_ADDR)")
	return cmd
}
