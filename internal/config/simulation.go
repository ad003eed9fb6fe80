package config

import (
	"github.com/vancomm/minesweeper-ai/internal/agent"
	"github.com/vancomm/minesweeper-ai/internal/mines"
)

type Simulation struct {
	Height    int    `env:"SIM_HEIGHT" envDefault:"9"`
	Width     int    `env:"SIM_WIDTH" envDefault:"9"`
	Hazards   int    `env:"SIM_HAZARDS" envDefault:"10"`
	Games     int    `env:"SIM_GAMES" envDefault:"1000"`
	Workers   int    `env:"SIM_WORKERS" envDefault:"4"`
	Seed      uint64 `env:"SIM_SEED" envDefault:"1"`
	Saturate  bool   `env:"SIM_SATURATE"`
	SafeStart bool   `env:"SIM_SAFE_START"`
}

func NewSimulation() (*Simulation, error) {
	cfg := &Simulation{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Simulation) Batch() agent.BatchConfig {
	return agent.BatchConfig{
		Params: mines.Params{
			Height:  c.Height,
			Width:   c.Width,
			Hazards: c.Hazards,
		},
		Games:     c.Games,
		Workers:   c.Workers,
		Seed:      c.Seed,
		Saturate:  c.Saturate,
		SafeStart: c.SafeStart,
	}
}
