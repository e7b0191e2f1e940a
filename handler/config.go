package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"lsrc-api/internal/logger"
)

const configMethods = "GET, OPTIONS"

type ConfigUseCase interface {
	Reflect(ctx context.Context) (map[string]string, error)
}

// ConfigHandler is the API Gateway entry point reflecting public settings.
type ConfigHandler struct {
	uc  ConfigUseCase
	log *logger.Logger
}

func NewConfigHandler(uc ConfigUseCase, log *logger.Logger) (*ConfigHandler, error) {
	if uc == nil {
		return nil, errors.New("handler: config use case must not be nil")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ConfigHandler{uc: uc, log: log}, nil
}

func (h *ConfigHandler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)
	headers := corsHeaders(configMethods, corrID)
	ctx, log := requestLogger(ctx, h.log, event, corrID)

	switch event.HTTPMethod {
	case http.MethodOptions:
		return emptyResponse(headers), nil
	case http.MethodGet:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, headers, errorResponse{Error: msgMethodNotAllowed}), nil
	}

	settings, err := h.uc.Reflect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("config request failed")
		return jsonResponse(http.StatusInternalServerError, headers, errorResponse{Error: msgInternal}), nil
	}

	log.Debug().Int("keys", len(settings)).Msg("config reflected")
	return jsonResponse(http.StatusOK, headers, settings), nil
}
