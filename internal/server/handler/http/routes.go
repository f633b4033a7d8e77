package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/flaggate/internal/middleware"
)

// NewRouter constructs the HTTP API.
//
// Routes:
//
//	POST /api/challenges/{name}/attempts → attemptHandler.Attempt
//	GET  /api/challenges/{name}/stats    → attemptHandler.Stats
//
// Middleware chain (applied in order):
//  1. RequestID
//  2. WithRequestLogging(logger)
//  3. Recoverer
//  4. AllowContentType("application/json"), attempts only
func NewRouter(attemptHandler *AttemptHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api/challenges/{name}", func(r chi.Router) {
		r.With(chiMiddleware.AllowContentType("application/json")).
			Post("/attempts", attemptHandler.Attempt)
		r.Get("/stats", attemptHandler.Stats)
	})

	return r
}
