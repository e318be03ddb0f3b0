package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/m-mizutani/courier/pkg/domain/interfaces"
	"github.com/m-mizutani/courier/pkg/utils/async"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
	pool *async.Pool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithAsyncPool makes the webhook endpoint queue push events on pool and
// respond before they are processed
func WithAsyncPool(pool *async.Pool) Option {
	return func(c *config) {
		c.pool = pool
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	webhookUC interfaces.WebhookUseCase,
	diagnosticsUC interfaces.DiagnosticsUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(RecoverMiddleware)

	router.Get("/", handleRoot)
	router.Get("/health", handleHealth)
	router.Get("/test", NewDiagnosticsHandler(diagnosticsUC).Handle)

	webhookHandler := NewWebhookHandler(webhookUC, cfg.pool)
	router.Post("/webhook", webhookHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
