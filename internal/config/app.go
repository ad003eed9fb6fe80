package config

import (
	"github.com/sirupsen/logrus"
)

type App struct {
	Development bool   `env:"DEVELOPMENT"`
	Addr        string `env:"APP_ADDR" envDefault:":8000"`
	BasePath    string `env:"APP_BASE_PATH"`
	LogFile     string `env:"LOG_FILE"`
	LogLevel    string `env:"LOG_LEVEL"`
}

func NewApp() (*App, error) {
	cfg := &App{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level is LOG_LEVEL when it names a logrus level, otherwise debug in
// development and info elsewhere.
func (c App) Level() logrus.Level {
	if lvl, err := logrus.ParseLevel(c.LogLevel); c.LogLevel != "" && err == nil {
		return lvl
	}
	if c.Development {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

func (c App) Fields() logrus.Fields {
	return logrus.Fields{
		"development": c.Development,
		"addr":        c.Addr,
		"base_path":   c.BasePath,
		"log_file":    c.LogFile,
		"log_level":   c.Level().String(),
	}
}
