package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/studiobook/internal/client/cli"
	"github.com/dmitrijs2005/studiobook/internal/client/config"
	"github.com/dmitrijs2005/studiobook/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
