// Package agent plays games against a [mines.Board] using a
// [knowledge.KnowledgeBase] to choose moves.
package agent

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-ai/internal/knowledge"
	"github.com/vancomm/minesweeper-ai/internal/mines"
)

var Log = logrus.New()

type Options struct {
	// Start is opened first. When nil the first move is a random pick.
	Start    *knowledge.Cell
	Saturate bool
	// Rand drives fallback picks. Required.
	Rand   *rand.Rand
	OnStep func(Step)
}

type Step struct {
	Number       int            `json:"number"`
	Move         knowledge.Cell `json:"move"`
	Guess        bool           `json:"guess"`
	Hazard       bool           `json:"hazard"`
	Count        int            `json:"count"` /* -1 when Hazard */
	KnownSafe    int            `json:"known_safe"`
	KnownHazards int            `json:"known_hazards"`
	Statements   int            `json:"statements"`
}

type Result struct {
	Params       mines.Params     `json:"params"`
	Won          bool             `json:"won"`
	Moves        int              `json:"moves"`
	Guesses      int              `json:"guesses"`
	LastMove     *knowledge.Cell  `json:"last_move,omitempty"`
	KnownSafe    []knowledge.Cell `json:"known_safe"`
	KnownHazards []knowledge.Cell `json:"known_hazards"`
	// AllFlagged is set when the deduced hazards are exactly the board's.
	AllFlagged bool `json:"all_flagged"`
}

var ErrNoRand = errors.New("agent: no random source")

// Play opens cells of b until every safe cell is open or a hazard is hit.
// Every fact the knowledge base derives is checked against b, so a returned
// error wrapping [knowledge.ErrUnsound] means the inference is broken.
func Play(ctx context.Context, b *mines.Board, opts Options) (Result, error) {
	if opts.Rand == nil {
		return Result{}, ErrNoRand
	}

	kbOpts := []knowledge.Option{knowledge.WithOracle(b)}
	if opts.Saturate {
		kbOpts = append(kbOpts, knowledge.WithSaturation())
	}
	kb := knowledge.New(b.Height(), b.Width(), kbOpts...)

	res := Result{Params: b.Params()}
	safeCells := b.Height()*b.Width() - b.Hazards()
	limit := b.Height() * b.Width()

	for res.Moves < safeCells && res.Moves < limit {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var (
			move  knowledge.Cell
			guess bool
		)
		if res.Moves == 0 && opts.Start != nil {
			move = *opts.Start
		} else if c, ok := kb.PickKnownSafeMove(); ok {
			move = c
		} else {
			c, err := kb.PickFallbackMove(opts.Rand)
			if errors.Is(err, knowledge.ErrNoMovesAvailable) {
				break
			} else if err != nil {
				return res, err
			}
			move, guess = c, true
		}
		if guess {
			res.Guesses++
		}
		res.LastMove = &move

		step := Step{Number: res.Moves + 1, Move: move, Guess: guess, Count: -1}

		if b.IsHazard(move) {
			step.Hazard = true
			fill(&step, kb)
			emit(opts.OnStep, step)
			Log.WithFields(logrus.Fields{
				"params": res.Params.String(), "move": move, "moves": res.Moves,
			}).Debug("hit a hazard")
			break
		}

		step.Count = b.AdjacentHazards(move)
		if err := kb.Ingest(move, step.Count); err != nil {
			return res, fmt.Errorf("move %d at %s: %w", step.Number, move, err)
		}
		res.Moves++
		fill(&step, kb)
		emit(opts.OnStep, step)
	}

	res.Won = res.Moves == safeCells
	res.KnownSafe = kb.KnownSafe()
	res.KnownHazards = kb.KnownHazards()
	res.AllFlagged = b.Won(res.KnownHazards)

	outcome := "lost"
	if res.Won {
		outcome = "won"
	}
	gamesTotal.WithLabelValues(outcome).Inc()
	guessesTotal.Add(float64(res.Guesses))

	Log.WithFields(logrus.Fields{
		"params":  res.Params.String(),
		"outcome": outcome,
		"moves":   res.Moves,
		"guesses": res.Guesses,
	}).Debug("game over")

	return res, nil
}

func fill(step *Step, kb *knowledge.KnowledgeBase) {
	step.KnownSafe, step.KnownHazards, step.Statements = kb.Counts()
}

func emit(fn func(Step), step Step) {
	if fn != nil {
		fn(step)
	}
}
