package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-ai/internal/agent"
	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/knowledge"
	"github.com/vancomm/minesweeper-ai/internal/mines"
)

type WatchMessage struct {
	Type   string        `json:"type"` /* "step", "result" or "error" */
	Step   *agent.Step   `json:"step,omitempty"`
	Result *agent.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// WatchHandler streams a game played by the agent over a websocket.
type WatchHandler struct {
	log    *logrus.Logger
	ws     *config.WebSocket
	seeder *Seeder
}

func NewWatchHandler(log *logrus.Logger, ws *config.WebSocket, seeder *Seeder) *WatchHandler {
	return &WatchHandler{log: log, ws: ws, seeder: seeder}
}

func (h *WatchHandler) Watch(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[WatchDTO](r.URL.Query())
	if err == nil {
		err = dto.Validate()
	}
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	seed := h.seeder.Uint64()
	if dto.Seed != nil {
		seed = *dto.Seed
	}
	rnd := agent.GameRand(seed, 0)

	var start *knowledge.Cell
	if dto.SafeStart {
		start = &knowledge.Cell{Row: rnd.IntN(dto.Height), Col: rnd.IntN(dto.Width)}
	}
	board, err := mines.Generate(dto.Params(), start, rnd)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client only ever closes; reading surfaces that.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(m WatchMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(h.ws.WriteTimeout))
		return conn.WriteJSON(m)
	}

	delay := time.Duration(dto.DelayMs) * time.Millisecond
	var writeErr error
	res, err := agent.Play(ctx, board, agent.Options{
		Start:    start,
		Saturate: dto.Saturate,
		Rand:     rnd,
		OnStep: func(step agent.Step) {
			if writeErr != nil {
				return
			}
			if writeErr = send(WatchMessage{Type: "step", Step: &step}); writeErr != nil {
				cancel()
				return
			}
			if delay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(delay):
				}
			}
		},
	})

	switch {
	case writeErr != nil || errors.Is(err, context.Canceled):
		watchesTotal.WithLabelValues("disconnected").Inc()
		h.log.WithFields(logrus.Fields{
			"seed": seed, "write_error": writeErr,
		}).Debug("watcher went away")
		return
	case err != nil:
		watchesTotal.WithLabelValues("error").Inc()
		h.log.WithFields(logrus.Fields{
			"seed": seed, "error": err,
		}).Error("game failed")
		_ = send(WatchMessage{Type: "error", Error: err.Error()})
	default:
		watchesTotal.WithLabelValues("finished").Inc()
		if err := send(WatchMessage{Type: "result", Result: &res}); err != nil {
			h.log.WithError(err).Warn("unable to send result")
			return
		}
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(h.ws.WriteTimeout),
	)
}
