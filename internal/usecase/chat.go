package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lsrc-api/internal/config"
	"lsrc-api/internal/domain"
	"lsrc-api/internal/logger"
)

const (
	pollInterval   = time.Second
	maxPollSeconds = 60
)

// Outcome labels reported to MetricsRecorder.
const (
	OutcomeOK            = "ok"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeNotConfigured = "not_configured"
	OutcomeUpstream      = "upstream_error"
	OutcomeTimeout       = "timeout"
	OutcomeInternal      = "internal_error"
)

// AssistantAPI is the subset of the Assistants API the chat flow drives.
type AssistantAPI interface {
	CreateThread(ctx context.Context) (domain.Thread, error)
	AddMessage(ctx context.Context, threadID, role, content string) error
	CreateRun(ctx context.Context, threadID, assistantID string) (domain.Run, error)
	GetRun(ctx context.Context, threadID, runID string) (domain.Run, error)
	ListMessages(ctx context.Context, threadID string) ([]domain.Message, error)
}

// ClientFactory builds an AssistantAPI bound to the deployment's API key.
type ClientFactory func(apiKey string) (AssistantAPI, error)

type MetricsRecorder interface {
	ObserveChat(outcome string, polls int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveChat(string, int) {}

type statusTexter interface {
	StatusText() string
}

type ChatService struct {
	provider config.Provider
	clients  ClientFactory
	sleeper  Sleeper
	metrics  MetricsRecorder
}

type ChatInput struct {
	Message string
}

type ChatOutput struct {
	Response string
}

// NewChatService wires the chat flow. A nil sleeper waits on the wall clock;
// a nil recorder discards metrics.
func NewChatService(p config.Provider, clients ClientFactory, sleeper Sleeper, m MetricsRecorder) (*ChatService, error) {
	if p == nil {
		return nil, errors.New("usecase: config provider must not be nil")
	}
	if clients == nil {
		return nil, errors.New("usecase: client factory must not be nil")
	}
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	if m == nil {
		m = nopMetrics{}
	}
	return &ChatService{provider: p, clients: clients, sleeper: sleeper, metrics: m}, nil
}

// Chat runs one message through a brand-new thread and returns the
// assistant's reply. The call is all-or-nothing.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	polls := 0
	out, err := s.chat(ctx, in, &polls)
	s.metrics.ObserveChat(outcomeOf(err), polls)
	return out, err
}

func (s *ChatService) chat(ctx context.Context, in ChatInput, polls *int) (ChatOutput, error) {
	if in.Message == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "Message is required", nil)
	}

	apiKey, assistantID, err := s.credentials(ctx)
	if err != nil {
		return ChatOutput{}, err
	}

	api, err := s.clients(apiKey)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "", fmt.Errorf("usecase: build assistant client: %w", err))
	}

	thread, err := api.CreateThread(ctx)
	if err != nil {
		return ChatOutput{}, stepError("create thread", err)
	}
	log := logger.FromContext(ctx).With().Str("thread_id", thread.ID).Logger()

	if err := api.AddMessage(ctx, thread.ID, domain.RoleUser, in.Message); err != nil {
		return ChatOutput{}, stepError("add message", err)
	}

	run, err := api.CreateRun(ctx, thread.ID, assistantID)
	if err != nil {
		return ChatOutput{}, stepError("start run", err)
	}

	status := run.Status
	elapsed := 0
	for status.Pending() {
		if err := s.sleeper.Sleep(ctx, pollInterval); err != nil {
			return ChatOutput{}, newError(ErrorTimeout, "Request timeout", err)
		}
		elapsed++
		*polls++

		current, err := api.GetRun(ctx, thread.ID, run.ID)
		if err != nil {
			return ChatOutput{}, stepError("check run status", err)
		}
		status = current.Status
		log.Debug().Str("run_id", run.ID).Str("status", string(status)).Int("elapsed", elapsed).Msg("run status")

		// Checked after the fetch: the 60th iteration times out whatever it saw.
		if elapsed >= maxPollSeconds {
			return ChatOutput{}, newError(ErrorTimeout, "Request timeout", nil)
		}
	}

	if status != domain.RunCompleted {
		return ChatOutput{}, newError(ErrorUpstream, "Run failed with status: "+string(status), nil)
	}

	msgs, err := api.ListMessages(ctx, thread.ID)
	if err != nil {
		return ChatOutput{}, stepError("get messages", err)
	}

	reply, err := extractReply(msgs)
	if err != nil {
		return ChatOutput{}, err
	}
	return ChatOutput{Response: reply}, nil
}

func (s *ChatService) credentials(ctx context.Context) (apiKey, assistantID string, err error) {
	vals, err := s.provider.Environ(ctx)
	if err != nil {
		return "", "", newError(ErrorInternal, "", fmt.Errorf("usecase: load credentials: %w", err))
	}
	apiKey = strings.TrimSpace(vals[config.OpenAIAPIKey])
	assistantID = strings.TrimSpace(vals[config.OpenAIAssistantID])
	if apiKey == "" || assistantID == "" {
		return "", "", newError(ErrorNotConfigured, "OpenAI credentials not configured", nil)
	}
	return apiKey, assistantID, nil
}

// extractReply returns the text of the last assistant message. The list is
// taken in the order the API returned it.
func extractReply(msgs []domain.Message) (string, error) {
	var last *domain.Message
	for i := range msgs {
		if msgs[i].Role == domain.RoleAssistant {
			last = &msgs[i]
		}
	}
	if last == nil {
		return "", newError(ErrorUpstream, "No assistant response", nil)
	}
	if len(last.Content) == 0 {
		return "", newError(ErrorUpstream, "Invalid response format", nil)
	}
	block := last.Content[0]
	if block.Type != domain.ContentTypeText || block.Text == nil {
		return "", newError(ErrorUpstream, "Invalid response format", nil)
	}
	return block.Text.Value, nil
}

// stepError names the failed upstream step. HTTP failures carry the reason
// phrase; transport failures carry the error text.
func stepError(step string, err error) *Error {
	reason := err.Error()
	var st statusTexter
	if errors.As(err, &st) {
		reason = st.StatusText()
	}
	return newError(ErrorUpstream, "Failed to "+step+": "+reason, err)
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var ue *Error
	if !errors.As(err, &ue) {
		return OutcomeInternal
	}
	switch ue.Code {
	case ErrorInvalidInput:
		return OutcomeInvalidInput
	case ErrorNotConfigured:
		return OutcomeNotConfigured
	case ErrorUpstream:
		return OutcomeUpstream
	case ErrorTimeout:
		return OutcomeTimeout
	default:
		return OutcomeInternal
	}
}
