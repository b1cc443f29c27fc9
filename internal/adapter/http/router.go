package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/handler"
	"github.com/rioplata-erp/tesoreria/internal/adapter/http/middleware"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/metrics"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ClientHandler      *handler.ClientHandler
	MovementHandler    *handler.MovementHandler
	CertificateHandler *handler.CertificateHandler
	TaxHandler         *handler.TaxHandler
	ReceiptHandler     *handler.ReceiptHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	Metrics            *metrics.Metrics
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Clients and their current accounts
		r.Route("/clients", func(r chi.Router) {
			r.Post("/", cfg.ClientHandler.Create)
			r.Get("/", cfg.ClientHandler.List)
			r.Get("/{id}", cfg.ClientHandler.Get)
			r.Put("/{id}", cfg.ClientHandler.Update)
			r.Delete("/{id}", cfg.ClientHandler.Delete)
			r.Post("/{id}/restore", cfg.ClientHandler.Restore)
			r.Get("/{id}/balance", cfg.MovementHandler.Balance)

			r.Route("/{id}/movements", func(r chi.Router) {
				r.Post("/", cfg.MovementHandler.Create)
				r.Get("/", cfg.MovementHandler.List)
				r.Get("/{movementID}", cfg.MovementHandler.Get)
				r.Delete("/{movementID}", cfg.MovementHandler.Delete)
			})

			r.Route("/{id}/certificates", func(r chi.Router) {
				r.Post("/", cfg.CertificateHandler.Create)
				r.Get("/", cfg.CertificateHandler.List)
				r.Put("/{certificateID}", cfg.CertificateHandler.Update)
				r.Delete("/{certificateID}", cfg.CertificateHandler.Delete)
			})

			r.Route("/{id}/taxes", func(r chi.Router) {
				r.Post("/", cfg.TaxHandler.Create)
				r.Get("/", cfg.TaxHandler.List)
				r.Put("/{taxID}", cfg.TaxHandler.Update)
				r.Delete("/{taxID}", cfg.TaxHandler.Delete)
			})
		})

		// Expiring certificates across all clients
		r.Get("/certificates/expiring", cfg.CertificateHandler.ListExpiring)

		// Receipts
		r.Route("/receipts", func(r chi.Router) {
			r.Post("/", cfg.ReceiptHandler.Create)
			r.Get("/", cfg.ReceiptHandler.List)
			r.Get("/{id}", cfg.ReceiptHandler.Get)
			r.Delete("/{id}", cfg.ReceiptHandler.Delete)
		})
	})

	return r
}
