package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoDatabase = errors.New("no database configured")

type Database struct {
	URL          string `env:"DATABASE_URL"`
	Username     string `env:"POSTGRES_USER"`
	Password     string `env:"POSTGRES_PASSWORD"`
	PasswordFile string `env:"POSTGRES_PASSWORD_FILE"`
	Host         string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         uint16 `env:"POSTGRES_PORT" envDefault:"5432"`
	DBName       string `env:"POSTGRES_DB"`
	SSLMode      string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

func NewDatabase() (*Database, error) {
	cfg := &Database{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Password == "" && cfg.PasswordFile != "" {
		data, err := os.ReadFile(cfg.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read from password file: %w", err)
		}
		cfg.Password = strings.TrimSpace(string(data))
	}
	return cfg, nil
}

// Configured reports whether either DATABASE_URL or the POSTGRES_* set
// names a database.
func (c Database) Configured() bool {
	return c.URL != "" || (c.Username != "" && c.DBName != "")
}

// DbURL is the URL form used by migrations.
func (c Database) DbURL() (string, error) {
	switch {
	case c.URL != "":
		return c.URL, nil
	case c.Configured():
		return fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Username,
			url.QueryEscape(c.Password),
			c.Host,
			c.Port,
			c.DBName,
			c.SSLMode,
		), nil
	default:
		return "", fmt.Errorf("%w: set DATABASE_URL or POSTGRES_USER and POSTGRES_DB", ErrNoDatabase)
	}
}

func (c Database) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%d dbname=%s sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func (c Database) PgxpoolConfig() (*pgxpool.Config, error) {
	switch {
	case c.URL != "":
		return pgxpool.ParseConfig(c.URL)
	case c.Configured():
		return pgxpool.ParseConfig(c.DSN())
	default:
		return nil, fmt.Errorf("%w: set DATABASE_URL or POSTGRES_USER and POSTGRES_DB", ErrNoDatabase)
	}
}
