package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appshell/session-gateway/internal/api/metrics"
	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/service"
)

// Guard evaluates the navigation guard before every request to the wrapped
// routes and cancels navigation that violates the route's declared access:
// auth-only targets redirect anonymous visitors to loginPath, guest-only
// targets redirect authenticated visitors to landingPath.
func Guard(guard *service.NavigationGuard, access domain.RouteAccess, loginPath, landingPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := guard.Decide(c.Request().Context(), access)
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision)).Inc()

			switch decision {
			case domain.DecisionRedirectLogin:
				return c.Redirect(http.StatusFound, loginPath)
			case domain.DecisionRedirectLanding:
				return c.Redirect(http.StatusFound, landingPath)
			default:
				return next(c)
			}
		}
	}
}
