package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-ai/internal/mines"
	"github.com/vancomm/minesweeper-ai/internal/repository"
)

type RunLister interface {
	ListRuns(ctx context.Context, filter repository.RunFilter) ([]repository.Run, error)
}

type RunsHandler struct {
	log  *logrus.Logger
	repo RunLister
}

func NewRunsHandler(log *logrus.Logger, repo RunLister) *RunsHandler {
	return &RunsHandler{log: log, repo: repo}
}

func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[RunFilterDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	filter := repository.RunFilter{Saturate: dto.Saturate, Limit: dto.Limit}
	if dto.Height != 0 || dto.Width != 0 || dto.Hazards != 0 {
		params := mines.Params{Height: dto.Height, Width: dto.Width, Hazards: dto.Hazards}
		if err := params.Validate(); err != nil {
			sendError(w, h.log, http.StatusBadRequest, err)
			return
		}
		filter.Params = &params
	}

	runs, err := h.repo.ListRuns(r.Context(), filter)
	if err != nil {
		h.log.WithError(err).Error("unable to list runs")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []repository.Run{}
	}
	sendJSONOrLog(w, h.log, runs)
}
