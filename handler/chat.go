package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"lsrc-api/internal/logger"
	"lsrc-api/internal/usecase"
)

const (
	chatMethods        = "POST, OPTIONS"
	msgMessageRequired = "Message is required"
)

type ChatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

type chatRequest struct {
	Message any `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// ChatHandler is the API Gateway entry point of the chat proxy.
type ChatHandler struct {
	uc  ChatUseCase
	log *logger.Logger
}

func NewChatHandler(uc ChatUseCase, log *logger.Logger) (*ChatHandler, error) {
	if uc == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ChatHandler{uc: uc, log: log}, nil
}

func (h *ChatHandler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)
	headers := corsHeaders(chatMethods, corrID)
	ctx, log := requestLogger(ctx, h.log, event, corrID)

	switch event.HTTPMethod {
	case http.MethodOptions:
		return emptyResponse(headers), nil
	case http.MethodPost:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, headers, errorResponse{Error: msgMethodNotAllowed}), nil
	}

	message, ok := parseMessage(event)
	if !ok {
		return jsonResponse(http.StatusBadRequest, headers, errorResponse{Error: msgMessageRequired}), nil
	}

	out, err := h.uc.Chat(ctx, usecase.ChatInput{Message: message})
	if err != nil {
		status, msg := mapChatError(err)
		log.Error().Err(err).Int("status", status).Msg("chat request failed")
		return jsonResponse(status, headers, errorResponse{Error: msg}), nil
	}

	log.Info().Int("response_len", len(out.Response)).Msg("chat request completed")
	return jsonResponse(http.StatusOK, headers, chatResponse{Response: out.Response}), nil
}

// parseMessage accepts only a JSON object whose message is a non-empty string.
func parseMessage(event events.APIGatewayProxyRequest) (string, bool) {
	body, err := requestBody(event)
	if err != nil {
		return "", false
	}
	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", false
	}
	message, ok := req.Message.(string)
	if !ok || message == "" {
		return "", false
	}
	return message, true
}

func mapChatError(err error) (int, string) {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError, msgInternal
	}
	msg := ue.Message
	if msg == "" {
		msg = msgInternal
	}
	if ue.Code == usecase.ErrorInvalidInput {
		return http.StatusBadRequest, msg
	}
	return http.StatusInternalServerError, msg
}
