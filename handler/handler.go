package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"lsrc-api/internal/logger"
)

const (
	correlationHeader = "X-Correlation-Id"

	msgMethodNotAllowed = "Method not allowed"
	msgInternal         = "Internal server error"
)

type errorResponse struct {
	Error string `json:"error"`
}

// corsHeaders are sent on every response, pre-flight included.
func corsHeaders(methods, correlationID string) map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": methods,
		"Access-Control-Allow-Headers": "Content-Type",
		"Content-Type":                 "application/json",
		correlationHeader:              correlationID,
	}
}

func jsonResponse(status int, headers map[string]string, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"` + msgInternal + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}

func emptyResponse(headers map[string]string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: headers}
}

// correlationID reuses the caller's id (header lookup is case-insensitive)
// or mints a new one.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return newUUID()
}

// requestLogger attaches a logger carrying the request identity to ctx.
func requestLogger(ctx context.Context, base *logger.Logger, event events.APIGatewayProxyRequest, corrID string) (context.Context, *logger.Logger) {
	l := &logger.Logger{Logger: base.With().
		Str("correlation_id", corrID).
		Str("method", event.HTTPMethod).
		Str("path", event.Path).
		Logger()}
	return l.WithContext(ctx), l
}

func requestBody(event events.APIGatewayProxyRequest) ([]byte, error) {
	if !event.IsBase64Encoded {
		return []byte(event.Body), nil
	}
	return base64.StdEncoding.DecodeString(event.Body)
}

var newUUID = func() string {
	return uuid.NewString()
}
