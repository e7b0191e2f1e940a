package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"lsrc-api/internal/bootstrap"
	"lsrc-api/internal/config"
	"lsrc-api/internal/logger"
)

func main() {
	ctx := context.Background()

	rt, err := config.ParseRuntime()
	if err != nil {
		logger.NewLogger("config", "info").Error().Err(err).Msg("failed to read runtime config")
		os.Exit(1)
	}
	log := logger.NewLogger("config", rt.LogLevel)

	provider, err := bootstrap.Provider(ctx, rt)
	if err != nil {
		log.Error().Err(err).Msg("failed to create config provider")
		os.Exit(1)
	}

	h, err := bootstrap.ConfigHandler(provider, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create config handler")
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
