package main

import (
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-ai/internal/agent"
	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/knowledge"
	"github.com/vancomm/minesweeper-ai/internal/mines"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "minesai",
		Short:         "Deduce safe cells of a minesweeper board from local counts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewApp()
			if err != nil {
				return err
			}
			return setupLogging(cfg)
		},
	}
	root.AddCommand(newSimulateCmd(), newServeCmd(), newMigrateCmd())
	return root
}

func setupLogging(cfg *config.App) error {
	level := cfg.Level()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if cfg.LogFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return err
		}
		log.AddHook(hook)
	}

	/*
	 * The engine packages log through their own loggers; make them follow
	 * the same settings.
	 */
	for _, l := range []*logrus.Logger{knowledge.Log, mines.Log, agent.Log} {
		l.SetLevel(level)
		l.SetFormatter(log.Formatter)
		l.ReplaceHooks(log.Hooks)
	}

	log.WithFields(cfg.Fields()).Debug("config")
	return nil
}
