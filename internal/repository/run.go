package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-ai/internal/agent"
	"github.com/vancomm/minesweeper-ai/internal/mines"
)

var ErrRunExists = errors.New("run with this label already exists")

type Run struct {
	RunId      uuid.UUID          `json:"run_id"`
	Label      string             `json:"label"`
	Height     int                `json:"height"`
	Width      int                `json:"width"`
	Hazards    int                `json:"hazards"`
	Games      int                `json:"games"`
	Wins       int                `json:"wins"`
	Guesses    int                `json:"guesses"`
	Moves      int                `json:"moves"`
	Seed       int64              `json:"seed"`
	Saturate   bool               `json:"saturate"`
	SafeStart  bool               `json:"safe_start"`
	DurationMs int64              `json:"duration_ms"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (r Run) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

type RunRecord struct {
	Label     string
	Summary   agent.Summary
	Saturate  bool
	SafeStart bool
}

func (q *Queries) CreateRun(ctx context.Context, rec RunRecord) (*Run, error) {
	h, w, n := rec.Summary.Params.Unpack()
	args := pgx.NamedArgs{
		"run_id":      uuid.New(),
		"label":       rec.Label,
		"height":      h,
		"width":       w,
		"hazards":     n,
		"games":       rec.Summary.Games,
		"wins":        rec.Summary.Wins,
		"guesses":     rec.Summary.Guesses,
		"moves":       rec.Summary.Moves,
		"seed":        int64(rec.Summary.Seed),
		"saturate":    rec.Saturate,
		"safe_start":  rec.SafeStart,
		"duration_ms": rec.Summary.Duration.Milliseconds(),
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO run (
			run_id, label, height, width, hazards, games, wins, guesses, moves,
			seed, saturate, safe_start, duration_ms
		)
		VALUES (
			@run_id, @label, @height, @width, @hazards, @games, @wins, @guesses,
			@moves, @seed, @saturate, @safe_start, @duration_ms
		)
		RETURNING *;`,
		args,
	)
	run, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%w: %q", ErrRunExists, rec.Label)
		}
		return nil, err
	}
	return run, nil
}

func (q *Queries) FetchRun(ctx context.Context, label string) (*Run, error) {
	rows, _ := q.db.Query(ctx, "SELECT * FROM run WHERE label = $1", label)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
}

type RunFilter struct {
	Params   *mines.Params
	Saturate *bool
	Limit    int
}

func (f RunFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Params != nil {
		clauses = append(
			clauses,
			"height = @height",
			"width = @width",
			"hazards = @hazards",
		)
		args["height"] = f.Params.Height
		args["width"] = f.Params.Width
		args["hazards"] = f.Params.Hazards
	}
	if f.Saturate != nil {
		clauses = append(clauses, "saturate = @saturate")
		args["saturate"] = *f.Saturate
	}
	return strings.Join(clauses, " AND "), args
}

// ListRuns returns runs matching filter, best win rate first.
func (q *Queries) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := "SELECT * FROM run"

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY wins::float / games DESC, created_at"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Run])
}
