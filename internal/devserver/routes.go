package devserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lsrc-api/handler"
)

// Handlers groups what the dev server mounts. Nil fields are skipped.
type Handlers struct {
	Chat      handler.LambdaFunc
	Config    handler.LambdaFunc
	Metrics   http.Handler
	StaticDir string
}

// NewRouter serves the Lambda handlers under /api and, optionally, static
// files from StaticDir with permissive CORS.
func NewRouter(h Handlers) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	// The Lambda handlers answer every verb themselves (405, OPTIONS).
	if h.Chat != nil {
		router.Handle("/api/chat", handler.HTTPAdapter(h.Chat))
	}
	if h.Config != nil {
		router.Handle("/api/config", handler.HTTPAdapter(h.Config))
	}
	if h.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	if strings.TrimSpace(h.StaticDir) != "" {
		router.With(allowAnyOrigin).Handle("/*", http.FileServer(http.Dir(h.StaticDir)))
	}

	return router
}

func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}
