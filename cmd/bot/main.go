package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"tzbot/config"
	"tzbot/di"
	"tzbot/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.InitializeApp(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize app")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("App stopped with error")

		stop()
		os.Exit(1) //nolint:gocritic
	}

	log.Info().Msg("Shut down cleanly")
}
