package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

// NavigationGuard decides, before every navigation transition, whether the
// target may be rendered given the current session state. The decision is
// total over {public, auth, guest} × {anonymous, authenticated}.
type NavigationGuard struct {
	session ports.SessionStore
	logger  zerolog.Logger
}

func NewNavigationGuard(session ports.SessionStore, logger zerolog.Logger) *NavigationGuard {
	return &NavigationGuard{session: session, logger: logger}
}

// Decide evaluates a navigation attempt, first match wins:
//
//  1. A held token without an in-memory user triggers a synchronous
//     rehydration from durable storage (the one read with a side effect).
//  2. Auth-only target while not authenticated redirects to login.
//  3. Guest-only target while authenticated redirects to the landing page.
//  4. Otherwise the navigation proceeds unchanged.
func (g *NavigationGuard) Decide(ctx context.Context, access domain.RouteAccess) domain.GuardDecision {
	g.session.EnsureHydrated(ctx)

	switch {
	case access == domain.AccessAuth && !g.session.IsLoggedIn():
		g.logger.Debug().Str("access", string(access)).Msg("navigation cancelled, login required")
		return domain.DecisionRedirectLogin
	case access == domain.AccessGuest && g.session.IsLoggedIn():
		g.logger.Debug().Str("access", string(access)).Msg("navigation cancelled, already authenticated")
		return domain.DecisionRedirectLanding
	default:
		return domain.DecisionAllow
	}
}
