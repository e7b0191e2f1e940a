package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"lsrc-api/internal/domain"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	betaHeader     = "OpenAI-Beta"
	betaVersion    = "assistants=v2"
	defaultTimeout = 15 * time.Second
)

// addMessageRequest is the request shape for POST /threads/{id}/messages.
type addMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// createRunRequest is the request shape for POST /threads/{id}/runs.
type createRunRequest struct {
	AssistantID string `json:"assistant_id"`
}

// listMessagesResponse is the minimal response shape for GET /threads/{id}/messages.
type listMessagesResponse struct {
	Data []domain.Message `json:"data"`
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("openai: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// StatusText is the reason phrase of the upstream status, e.g. "Bad Request".
func (e *HTTPStatusError) StatusText() string {
	return http.StatusText(e.StatusCode)
}

// Client is a focused client for the OpenAI Assistants API (v2 beta).
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	rc         *resty.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client authenticated with apiKey. Every request carries
// the bearer token and the assistants beta header.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai: api key must not be empty")
	}
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	var rc *resty.Client
	if c.httpClient != nil {
		rc = resty.NewWithClient(c.httpClient)
	} else {
		rc = resty.New().SetTimeout(c.timeout)
	}
	c.rc = rc.
		SetBaseURL(apiBase(c.baseURL)).
		SetAuthToken(apiKey).
		SetHeader(betaHeader, betaVersion).
		SetHeader("Content-Type", "application/json")
	return c, nil
}

// apiBase normalizes the configured base URL so it always ends in /v1.
func apiBase(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		return DefaultBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base
	}
	return base + "/v1"
}

// CreateThread opens a new, empty conversation thread.
func (c *Client) CreateThread(ctx context.Context) (domain.Thread, error) {
	var thread domain.Thread
	if err := c.do(ctx, http.MethodPost, "/threads", struct{}{}, &thread); err != nil {
		return domain.Thread{}, fmt.Errorf("openai: create thread: %w", err)
	}
	if thread.ID == "" {
		return domain.Thread{}, errors.New("openai: create thread: empty thread id")
	}
	return thread, nil
}

// AddMessage posts content into the thread with the given role.
func (c *Client) AddMessage(ctx context.Context, threadID, role, content string) error {
	path := "/threads/" + threadID + "/messages"
	if err := c.do(ctx, http.MethodPost, path, addMessageRequest{Role: role, Content: content}, nil); err != nil {
		return fmt.Errorf("openai: add message: %w", err)
	}
	return nil
}

// CreateRun starts the assistant against the thread.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (domain.Run, error) {
	var run domain.Run
	path := "/threads/" + threadID + "/runs"
	if err := c.do(ctx, http.MethodPost, path, createRunRequest{AssistantID: assistantID}, &run); err != nil {
		return domain.Run{}, fmt.Errorf("openai: create run: %w", err)
	}
	return run, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (domain.Run, error) {
	var run domain.Run
	path := "/threads/" + threadID + "/runs/" + runID
	if err := c.do(ctx, http.MethodGet, path, nil, &run); err != nil {
		return domain.Run{}, fmt.Errorf("openai: get run: %w", err)
	}
	return run, nil
}

// ListMessages returns the thread's messages in the order the API returns them.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]domain.Message, error) {
	var payload listMessagesResponse
	path := "/threads/" + threadID + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("openai: list messages: %w", err)
	}
	return payload.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if res.IsError() || res.StatusCode() < 200 || res.StatusCode() >= 300 {
		raw := res.Body()
		if len(raw) > 4096 {
			raw = raw[:4096]
		}
		return &HTTPStatusError{
			StatusCode: res.StatusCode(),
			URL:        res.Request.URL,
			Body:       string(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
