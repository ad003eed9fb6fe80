package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"path"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vancomm/minesweeper-ai/internal/handlers"
	"github.com/vancomm/minesweeper-ai/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) route(method, p string, h http.HandlerFunc) {
	a.router.HandleFunc(method+" "+path.Join("/", a.cfg.BasePath, p), h)
}

func (a *App) loadRoutes() *handlers.SessionHandler {
	seeder := handlers.NewSeeder(createRand())

	sessions := handlers.NewSessionHandler(a.log, seeder)
	a.route(http.MethodPost, "/sessions", sessions.Create)
	a.route(http.MethodGet, "/sessions/{id}", sessions.Fetch)
	a.route(http.MethodDelete, "/sessions/{id}", sessions.Delete)
	a.route(http.MethodPost, "/sessions/{id}/observations", sessions.Observe)
	a.route(http.MethodGet, "/sessions/{id}/move", sessions.Move)

	watch := handlers.NewWatchHandler(a.log, a.ws, seeder)
	a.route(http.MethodGet, "/watch", watch.Watch)

	if a.db != nil {
		runs := handlers.NewRunsHandler(a.log, repository.New(a.db))
		a.route(http.MethodGet, "/runs", runs.List)
	}

	a.router.Handle("GET "+path.Join("/", a.cfg.BasePath, "metrics"), promhttp.Handler())

	return sessions
}
