package domain

import "errors"

// RouteAccess declares which session state a navigable target admits.
type RouteAccess string

const (
	// AccessPublic admits any visitor.
	AccessPublic RouteAccess = "public"
	// AccessAuth requires an authenticated session.
	AccessAuth RouteAccess = "auth"
	// AccessGuest requires an anonymous session (login/register pages).
	AccessGuest RouteAccess = "guest"
)

// GuardDecision is the outcome of evaluating a navigation attempt.
type GuardDecision string

const (
	DecisionAllow           GuardDecision = "allow"
	DecisionRedirectLogin   GuardDecision = "redirect_login"
	DecisionRedirectLanding GuardDecision = "redirect_landing"
)

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrProfileUnavailable = errors.New("profile unavailable")
var ErrBackendUnavailable = errors.New("backend unavailable")
