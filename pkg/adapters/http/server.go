package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/typo3docs"
	"github.com/aretw0/typo3docs/internal/presentation/graph"
	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize caps invocation request bodies.
const maxBodySize = 1 << 20

// SourceHeader reports where a document came from (remote, curated, static).
const SourceHeader = "X-Typo3docs-Source"

// Gateway defines what the HTTP server needs from the lookup gateway.
type Gateway interface {
	Invoke(ctx context.Context, name string, args map[string]any) domain.Result
	Catalog() []domain.Operation
}

// Server exposes the gateway over REST.
type Server struct {
	Gateway Gateway
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates a new HTTP handler for the gateway.
func NewHandler(gw Gateway, opts ...Option) http.Handler {
	server := &Server{Gateway: gw, Logger: slog.Default()}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/operations", server.ListOperations)
	r.Post("/operations/{name}", server.InvokeOperation)
	r.Get("/openapi.json", server.GetOpenAPI)
	r.Get("/graph", server.GetGraph)
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>typo3docs API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// ListOperations handles GET /operations.
func (s *Server) ListOperations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Gateway.Catalog(), s.Logger)
}

// InvokeOperation handles POST /operations/{name}.
// The JSON body is the argument map; an empty body means no arguments.
// Documents are returned as markdown with 200; error results keep their
// single-line text and map to 404 (unknown operation) or 422.
func (s *Server) InvokeOperation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	args := map[string]any{}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body: expected a JSON object", http.StatusBadRequest)
		s.Logger.Warn("InvokeOperation: Invalid request body", "operation", name, "error", err)
		return
	}

	res := s.Gateway.Invoke(r.Context(), name, args)

	status := http.StatusOK
	if res.IsError() {
		status = http.StatusUnprocessableEntity
		if !s.known(name) {
			status = http.StatusNotFound
		}
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if res.Source != "" {
		w.Header().Set(SourceHeader, string(res.Source))
	}
	w.WriteHeader(status)
	if _, err := io.WriteString(w, res.Text); err != nil {
		s.Logger.Error("InvokeOperation response write failed", "error", err)
	}
}

func (s *Server) known(name string) bool {
	for _, op := range s.Gateway.Catalog() {
		if op.Name == name {
			return true
		}
	}
	return false
}

// GetOpenAPI handles GET /openapi.json.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BuildOpenAPI(s.Gateway.Catalog()), s.Logger)
}

// GetGraph handles GET /graph. The optional focus query highlights one operation.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.Overlay
	if focus := r.URL.Query().Get("focus"); focus != "" {
		overlay = &graph.Overlay{Focus: focus}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, graph.GenerateMermaid(s.Gateway.Catalog(), overlay)); err != nil {
		s.Logger.Error("GetGraph response write failed", "error", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":        "typo3docs-http",
		"version":    strings.TrimSpace(typo3docs.Version),
		"operations": len(s.Gateway.Catalog()),
	}, s.Logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}
