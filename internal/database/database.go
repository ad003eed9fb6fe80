package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-ai/internal/config"
)

func Connect(ctx context.Context, cfg *config.Database) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.PgxpoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies every migration under migrations/ in fsys and reports
// the resulting schema version.
func Migrate(url string, fsys fs.FS) (version uint, dirty bool, err error) {
	source, err := iofs.New(fsys, "migrations")
	if err != nil {
		return 0, false, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return 0, false, fmt.Errorf("unable to create migrator: %w", err)
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, fmt.Errorf("failed to migrate database: %w", err)
	}
	version, dirty, err = migrator.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check migration version: %w", err)
	}
	return version, dirty, nil
}

func ConnectAndMigrate(
	ctx context.Context, cfg *config.Database, fsys fs.FS,
) (*pgxpool.Pool, error) {
	url, err := cfg.DbURL()
	if err != nil {
		return nil, err
	}
	if _, _, err := Migrate(url, fsys); err != nil {
		return nil, err
	}
	return Connect(ctx, cfg)
}
