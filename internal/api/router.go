package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/appshell/session-gateway/internal/api/handler"
	"github.com/appshell/session-gateway/internal/api/middleware"
	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
	"github.com/appshell/session-gateway/internal/core/service"
	"github.com/appshell/session-gateway/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The request collectors register on reg, so each router instance needs its
// own registry (or the process default) rather than sharing one.
func NewRouter(cfg *config.Config, session ports.SessionStore, profile ports.ProfileStore, guard *service.NavigationGuard, storage ports.Storage, reg prometheus.Registerer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "session_gateway",
		Registerer: reg,
	}))

	login, landing := cfg.Routes.LoginPath, cfg.Routes.LandingPath
	requireAuth := middleware.Guard(guard, domain.AccessAuth, login, landing)
	requireGuest := middleware.Guard(guard, domain.AccessGuest, login, landing)

	// --- Navigable shell views ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, landing)
	})
	e.GET("/login", handler.Page("login"), requireGuest)
	e.GET("/register", handler.Page("register"), requireGuest)
	e.GET("/dashboard", handler.Page("dashboard"), requireAuth)
	e.GET("/profile", handler.Page("profile"), requireAuth)
	e.GET("/profile/edit", handler.Page("profile-edit"), requireAuth)
	e.GET("/profile/password", handler.Page("change-password"), requireAuth)

	// --- Session API ---
	authHandler := handler.NewAuthHandler(session, profile)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/session", authHandler.Session)

	// --- Profile API (authenticated only) ---
	profileHandler := handler.NewProfileHandler(profile)
	user := e.Group("/api/user", requireAuth)
	user.GET("/profile", profileHandler.GetProfile)
	user.PUT("/profile", profileHandler.UpdateProfile)
	user.POST("/change-password", profileHandler.ChangePassword)

	// --- Health probes and metrics (no guard) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(storage)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	gatherer, ok := reg.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	return e
}
