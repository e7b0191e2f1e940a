package devserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lsrc-api/handler"
	"lsrc-api/internal/config"
	"lsrc-api/internal/metrics"
	"lsrc-api/internal/usecase"
)

type stubChat struct{}

func (stubChat) Chat(_ context.Context, in usecase.ChatInput) (usecase.ChatOutput, error) {
	return usecase.ChatOutput{Response: "echo: " + in.Message}, nil
}

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	chat, err := handler.NewChatHandler(stubChat{}, nil)
	require.NoError(t, err)
	cfgSvc, err := usecase.NewConfigService(config.MapProvider{"SUPABASE_URL": "https://abc.supabase.co"})
	require.NoError(t, err)
	cfg, err := handler.NewConfigHandler(cfgSvc, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>lsrc</h1>"), 0o600))

	return NewRouter(Handlers{
		Chat:      chat.Handle,
		Config:    cfg.Handle,
		Metrics:   metrics.NewRecorder().Handler(),
		StaticDir: dir,
	}), dir
}

func do(t *testing.T, h http.Handler, method, path, body string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	res := rec.Result()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(raw)
}

func TestRouter_Chat(t *testing.T) {
	r, _ := newTestRouter(t)

	res, body := do(t, r, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"response":"echo: hi"}`, body)

	res, _ = do(t, r, http.MethodGet, "/api/chat", "")
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res, body = do(t, r, http.MethodOptions, "/api/chat", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Empty(t, body)
	require.Equal(t, "POST, OPTIONS", res.Header.Get("Access-Control-Allow-Methods"))
}

func TestRouter_Config(t *testing.T) {
	r, _ := newTestRouter(t)

	res, body := do(t, r, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"SUPABASE_URL":"https://abc.supabase.co"`)
	require.NotContains(t, body, "SUPABASE_ANON_KEY")
}

func TestRouter_MetricsAndStatic(t *testing.T) {
	r, _ := newTestRouter(t)

	res, _ := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := do(t, r, http.MethodGet, "/index.html", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "lsrc")
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}
