package agent

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-ai/internal/knowledge"
	"github.com/vancomm/minesweeper-ai/internal/mines"
	"golang.org/x/sync/errgroup"
)

type BatchConfig struct {
	Params  mines.Params
	Games   int
	Workers int
	Seed    uint64
	// Saturate enables full pairwise subsumption in every game.
	Saturate bool
	// SafeStart opens a random cell first and keeps its neighbourhood free
	// of hazards.
	SafeStart bool
}

type Summary struct {
	Params   mines.Params  `json:"params"`
	Games    int           `json:"games"`
	Wins     int           `json:"wins"`
	Losses   int           `json:"losses"`
	Moves    int           `json:"moves"`
	Guesses  int           `json:"guesses"`
	Seed     uint64        `json:"seed"`
	Duration time.Duration `json:"duration"`
}

func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

func (s Summary) Fields() logrus.Fields {
	return logrus.Fields{
		"params":   s.Params.String(),
		"games":    s.Games,
		"wins":     s.Wins,
		"losses":   s.Losses,
		"win_rate": fmt.Sprintf("%.3f", s.WinRate()),
		"guesses":  s.Guesses,
		"duration": s.Duration,
	}
}

// RunBatch plays cfg.Games independent games on at most cfg.Workers
// goroutines. Game i draws from its own PCG stream (cfg.Seed, i), so the
// summary depends only on cfg.
func RunBatch(ctx context.Context, cfg BatchConfig) (Summary, error) {
	if err := cfg.Params.Validate(); err != nil {
		return Summary{}, err
	}
	workers := max(cfg.Workers, 1)
	started := time.Now()

	results := make([]Result, cfg.Games)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Games {
		g.Go(func() error {
			res, err := playSeeded(gCtx, cfg, uint64(i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Params: cfg.Params, Games: cfg.Games, Seed: cfg.Seed}
	for _, res := range results {
		if res.Won {
			sum.Wins++
		} else {
			sum.Losses++
		}
		sum.Moves += res.Moves
		sum.Guesses += res.Guesses
	}
	sum.Duration = time.Since(started)
	batchDuration.Observe(sum.Duration.Seconds())

	Log.WithFields(sum.Fields()).Info("batch finished")

	return sum, nil
}

// GameRand is the random source of game number game in a batch seeded
// with seed.
func GameRand(seed, game uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, game))
}

func playSeeded(ctx context.Context, cfg BatchConfig, game uint64) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r := GameRand(cfg.Seed, game)

	var start *knowledge.Cell
	if cfg.SafeStart {
		start = &knowledge.Cell{
			Row: r.IntN(cfg.Params.Height),
			Col: r.IntN(cfg.Params.Width),
		}
	}
	b, err := mines.Generate(cfg.Params, start, r)
	if err != nil {
		return Result{}, err
	}
	return Play(ctx, b, Options{Start: start, Saturate: cfg.Saturate, Rand: r})
}
