// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"cryptofolio/internal/api/handler"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Crypto *handler.CryptoHandler
	Health *handler.HealthHandler
	Auth   *handler.AuthMiddleware
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, allowedOrigins []string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Bound every request
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check endpoint
	r.Get("/health", h.Health.Health)

	r.Route("/crypto", func(r chi.Router) {
		// Public market data
		r.Get("/assets", h.Crypto.Assets)
		r.Get("/market-movers", h.Crypto.MarketMovers)

		// Session-protected wallet routes
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireSession)
			r.Get("/dashboard", h.Crypto.Dashboard)
			r.Get("/portfolio", h.Crypto.Portfolio)
			r.Post("/deposit", h.Crypto.Deposit)
			r.Post("/buy", h.Crypto.Buy)
			r.Get("/transactions", h.Crypto.Transactions)
		})
	})

	logger.Debug("HTTP routes registered")
	return r
}
