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

	// ---- Configuration (read only here) ----
	rt, err := config.ParseRuntime()
	if err != nil {
		logger.NewLogger("chat", "info").Error().Err(err).Msg("failed to read runtime config")
		os.Exit(1)
	}
	log := logger.NewLogger("chat", rt.LogLevel)

	// ---- Providers ----
	provider, err := bootstrap.Provider(ctx, rt)
	if err != nil {
		log.Error().Err(err).Msg("failed to create config provider")
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := bootstrap.ChatHandler(provider, rt, nil, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create chat handler")
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
