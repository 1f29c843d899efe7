package ports

import (
	"context"

	"github.com/appshell/session-gateway/internal/core/domain"
)

// SessionStore owns the authentication token and the current user snapshot.
// It is the single source of truth for "is a user authenticated": for every
// reachable state IsLoggedIn holds iff both token and user are present.
//
// Login, Register and Logout are the only operations that cross the
// anonymous/authenticated boundary, and each does so atomically. Callers
// must invoke EnsureHydrated before reading state so durable token and
// user can be brought into memory after a cold start.
type SessionStore interface {
	EnsureInitialized(ctx context.Context)
	EnsureHydrated(ctx context.Context)
	Login(ctx context.Context, in domain.LoginInput) bool
	Register(ctx context.Context, in domain.RegisterInput) bool
	Logout(ctx context.Context)
	InitUser(ctx context.Context)
	RestoreFromStorage(ctx context.Context)
	UpdateUserInfo(ctx context.Context, u *domain.User)

	Token() string
	User() *domain.User
	IsLoggedIn() bool
	Loading() bool
}

// ProfileStore is the secondary user cache scoped to profile viewing and
// editing. It is a shared-derived copy, not a second source of truth: every
// confirmed mutation is pushed back into the SessionStore.
type ProfileStore interface {
	LoadUserProfile(ctx context.Context)
	UpdateProfile(ctx context.Context, in domain.ProfileUpdate) bool
	ChangePassword(ctx context.Context, currentPassword, newPassword string) bool
	Reset()

	User() *domain.User
	Loading() bool
}
