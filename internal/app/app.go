package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-ai/internal/config"
	"github.com/vancomm/minesweeper-ai/internal/database"
	"github.com/vancomm/minesweeper-ai/internal/middleware"
)

const (
	sessionTTL    = 30 * time.Minute
	sweepInterval = time.Minute
)

type App struct {
	log        *logrus.Logger
	cfg        *config.App
	dbCfg      *config.Database
	router     *http.ServeMux
	db         *pgxpool.Pool
	ws         *config.WebSocket
	migrations fs.FS
}

func New(log *logrus.Logger, cfg *config.App, dbCfg *config.Database, migrations fs.FS) *App {
	return &App{
		log:        log,
		cfg:        cfg,
		dbCfg:      dbCfg,
		router:     http.NewServeMux(),
		ws:         config.NewWebSocket(),
		migrations: migrations,
	}
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is cancelled. Runs are only served when a
// database is configured.
func (a *App) Start(ctx context.Context) error {
	if a.dbCfg != nil && a.dbCfg.Configured() {
		db, err := database.ConnectAndMigrate(ctx, a.dbCfg, a.migrations)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		defer db.Close()
		a.db = db
	} else {
		a.log.Warn("no database configured, /runs is disabled")
	}

	sessions := a.loadRoutes()

	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.cfg.Addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				sessions.Expire(sessionTTL)
			}
		}
	})

	return g.Wait()
}
