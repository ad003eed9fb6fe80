package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-ai/internal/agent"
	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/database"
	"github.com/vancomm/minesweeper-ai/internal/mines"
	"github.com/vancomm/minesweeper-ai/internal/repository"
)

func newSimulateCmd() *cobra.Command {
	var (
		board  string
		label  string
		asJSON bool
	)
	sim, err := config.NewSimulation()
	if err != nil {
		sim = &config.Simulation{}
		log.WithError(err).Warn("ignoring SIM_* environment")
	}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a batch of games and report how the solver did",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			batch := sim.Batch()
			if board != "" {
				params, err := mines.ParseParams(board)
				if err != nil {
					return err
				}
				batch.Params = *params
			}

			sum, err := agent.RunBatch(ctx, batch)
			if err != nil {
				return err
			}
			if err := printSummary(cmd.OutOrStdout(), sum, asJSON); err != nil {
				return err
			}

			if label == "" {
				return nil
			}
			dbCfg, err := config.NewDatabase()
			if err != nil {
				return err
			}
			db, err := database.ConnectAndMigrate(ctx, dbCfg, migrations)
			if err != nil {
				return fmt.Errorf("unable to connect to db: %w", err)
			}
			defer db.Close()

			run, err := repository.New(db).CreateRun(ctx, repository.RunRecord{
				Label:     label,
				Summary:   sum,
				Saturate:  batch.Saturate,
				SafeStart: batch.SafeStart,
			})
			if err != nil {
				return err
			}
			log.WithField("run_id", run.RunId).Info("recorded run")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&sim.Height, "height", sim.Height, "board height")
	flags.IntVar(&sim.Width, "width", sim.Width, "board width")
	flags.IntVar(&sim.Hazards, "hazards", sim.Hazards, "number of hazards")
	flags.StringVarP(&board, "board", "b", "", "board as height:width:hazards, overrides the three flags above")
	flags.IntVarP(&sim.Games, "games", "n", sim.Games, "number of games")
	flags.IntVarP(&sim.Workers, "workers", "w", sim.Workers, "games played at once")
	flags.Uint64Var(&sim.Seed, "seed", sim.Seed, "batch seed")
	flags.BoolVar(&sim.Saturate, "saturate", sim.Saturate, "compare every pair of statements after each observation")
	flags.BoolVar(&sim.SafeStart, "safe-start", sim.SafeStart, "open a cell with no hazard around it first")
	flags.StringVar(&label, "record", "", "store the summary under this label")
	flags.BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

func printSummary(w io.Writer, sum agent.Summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	_, err := fmt.Fprintf(w,
		"board    %s\ngames    %d\nwon      %d (%.1f%%)\nlost     %d\nguesses  %d\nmoves    %d\ntook     %s\n",
		sum.Params, sum.Games, sum.Wins, 100*sum.WinRate(), sum.Losses,
		sum.Guesses, sum.Moves, sum.Duration.Round(time.Millisecond),
	)
	return err
}
