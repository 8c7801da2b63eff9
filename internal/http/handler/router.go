package handler

import (
	"net/http"

	"authapi/internal/http/handler/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter mounts the auth and health routes behind the request-id, logging
// and, when origins are configured, CORS middleware.
func NewRouter(logger *zap.SugaredLogger, auth *AuthHandler, health *HealthHandler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware().RequestID)
	r.Use(middleware.NewLoggingMiddleware(logger).Logging)

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond(logger, w, Response{Message: "Not found"}, http.StatusNotFound,
			middleware.RequestIDFromContext(r.Context()))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond(logger, w, Response{Message: "Method not allowed"}, http.StatusMethodNotAllowed,
			middleware.RequestIDFromContext(r.Context()))
	})

	r.Post(RegisterPath, auth.HandleRegister)
	r.Post(AuthRegisterPath, auth.HandleRegister)
	r.Post(LoginPath, auth.HandleLogin)
	r.Post(RefreshPath, auth.HandleRefresh)
	r.Get(HealthPath, health.HandleHealth)

	return r
}
