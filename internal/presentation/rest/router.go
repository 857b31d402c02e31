package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
)

// unauthenticatedPaths are served without a bearer token.
var unauthenticatedPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/api/v1/auth/register",
	"/api/v1/auth/login",
}

// NewRouter assembles the HTTP surface: probe and metrics endpoints, the
// auth endpoints, and the JWT-protected assessment API.
func NewRouter(
	authHandler *AuthHandler,
	assessmentHandler *AssessmentHandler,
	healthHandler *HealthHandler,
	metricsHandler http.Handler,
	jwtService *auth.JWTService,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(RequestMetrics())
	r.Use(auth.HTTPAuthMiddleware(jwtService, unauthenticatedPaths))

	healthHandler.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	authHandler.RegisterRoutes(r)
	assessmentHandler.RegisterRoutes(r)

	return r
}
