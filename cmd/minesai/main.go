package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

var log = logrus.New()

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
