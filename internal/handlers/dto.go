package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-ai/internal/knowledge"
	"github.com/vancomm/minesweeper-ai/internal/mines"
)

const (
	maxSide  = 100
	maxDelay  = 1000
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func decode[T any](src map[string][]string) (T, error) {
	var dto T
	err := decoder.Decode(&dto, src)
	return dto, err
}

type CreateSessionDTO struct {
	Height   int  `schema:"height,required"`
	Width    int  `schema:"width,required"`
	Saturate bool `schema:"saturate"`
}

func (d CreateSessionDTO) Validate() error {
	if d.Height <= 0 || d.Width <= 0 || d.Height > maxSide || d.Width > maxSide {
		return fmt.Errorf("grid must be between 1x1 and %dx%d", maxSide, maxSide)
	}
	return nil
}

type ObservationDTO struct {
	Row   int `schema:"row,required"`
	Col   int `schema:"col,required"`
	Count int `schema:"count,required"`
}

func (d ObservationDTO) Cell() knowledge.Cell {
	return knowledge.Cell{Row: d.Row, Col: d.Col}
}

type WatchDTO struct {
	Height    int     `schema:"height,required"`
	Width     int     `schema:"width,required"`
	Hazards   int     `schema:"hazards,required"`
	Seed      *uint64 `schema:"seed"`
	Saturate  bool    `schema:"saturate"`
	SafeStart bool    `schema:"safe_start"`
	DelayMs   int     `schema:"delay_ms"`
}

func (d WatchDTO) Params() mines.Params {
	return mines.Params{Height: d.Height, Width: d.Width, Hazards: d.Hazards}
}

func (d WatchDTO) Validate() error {
	if err := d.Params().Validate(); err != nil {
		return err
	}
	if d.Height > maxSide || d.Width > maxSide {
		return fmt.Errorf("grid must be at most %dx%d", maxSide, maxSide)
	}
	if d.DelayMs < 0 || d.DelayMs > maxDelay {
		return fmt.Errorf("delay_ms must be between 0 and %d", maxDelay)
	}
	return nil
}

type SessionDTO struct {
	SessionId    uuid.UUID        `json:"session_id"`
	Height       int              `json:"height"`
	Width        int              `json:"width"`
	Saturate     bool             `json:"saturate"`
	Moves        []knowledge.Cell `json:"moves"`
	KnownSafe    []knowledge.Cell `json:"known_safe"`
	KnownHazards []knowledge.Cell `json:"known_hazards"`
	Statements   []string         `json:"statements"`
}

type MoveDTO struct {
	Cell      knowledge.Cell `json:"cell"`
	KnownSafe bool           `json:"known_safe"`
}

type RunFilterDTO struct {
	Height   int   `schema:"height"`
	Width    int   `schema:"width"`
	Hazards  int   `schema:"hazards"`
	Saturate *bool `schema:"saturate"`
	Limit    int   `schema:"limit"`
}
