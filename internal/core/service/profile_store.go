package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

const (
	msgProfileLoadFailed    = "failed to load profile"
	msgProfileUpdated       = "profile updated"
	msgProfileUpdateFailed  = "profile update failed"
	msgPasswordChanged      = "password changed"
	msgPasswordChangeFailed = "password change failed"
)

// ProfileStore caches the user record for profile viewing and editing,
// decoupled from the login state machine. Every confirmed mutation is
// pushed into the session store with an explicit UpdateUserInfo call; the
// session stays authoritative for "is logged in".
type ProfileStore struct {
	client   ports.ProfileClient
	session  ports.SessionStore
	notifier ports.Notifier
	logger   zerolog.Logger

	mu      sync.RWMutex
	user    *domain.User
	loading bool
}

func NewProfileStore(client ports.ProfileClient, session ports.SessionStore, notifier ports.Notifier, logger zerolog.Logger) *ProfileStore {
	return &ProfileStore{
		client:   client,
		session:  session,
		notifier: notifier,
		logger:   logger,
	}
}

// LoadUserProfile fetches the current profile. On success it stores the
// record locally and mirrors it into the session; on failure the prior
// cached value stays untouched and an error notification is surfaced.
func (p *ProfileStore) LoadUserProfile(ctx context.Context) {
	p.setLoading(true)
	defer p.setLoading(false)

	res, err := p.client.FetchProfile(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("profile load failed")
		p.notifier.Error(msgProfileLoadFailed)
		return
	}
	if !res.Success || res.User == nil {
		p.notifier.Error(messageOr(res.Message, msgProfileLoadFailed))
		return
	}

	p.setUser(res.User)
	p.session.UpdateUserInfo(ctx, res.User)
}

// UpdateProfile submits a partial edit. On success both this cache and the
// session's copy are replaced with the canonical record the backend
// returned. On failure neither cache changes and the server-provided
// message (or a generic fallback) is surfaced.
func (p *ProfileStore) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) bool {
	p.setLoading(true)
	defer p.setLoading(false)

	res, err := p.client.SubmitProfileUpdate(ctx, in)
	if err != nil {
		p.logger.Error().Err(err).Msg("profile update failed")
		p.notifier.Error(msgProfileUpdateFailed)
		return false
	}
	if !res.Success || res.User == nil {
		p.notifier.Error(messageOr(res.Message, msgProfileUpdateFailed))
		return false
	}

	p.setUser(res.User)
	p.session.UpdateUserInfo(ctx, res.User)
	p.notifier.Success(msgProfileUpdated)
	return true
}

// ChangePassword submits the current and new password. The service returns
// no payload, only a success signal; no cached user data changes either way.
func (p *ProfileStore) ChangePassword(ctx context.Context, currentPassword, newPassword string) bool {
	p.setLoading(true)
	defer p.setLoading(false)

	res, err := p.client.SubmitPasswordChange(ctx, currentPassword, newPassword)
	if err != nil {
		p.logger.Error().Err(err).Msg("password change failed")
		p.notifier.Error(msgPasswordChangeFailed)
		return false
	}
	if !res.Success {
		p.notifier.Error(messageOr(res.Message, msgPasswordChangeFailed))
		return false
	}

	p.notifier.Success(msgPasswordChanged)
	return true
}

// Reset clears the local cache and loading flag. Used when leaving the
// profile-editing context so later reads do not see stale data. Silent.
func (p *ProfileStore) Reset() {
	p.mu.Lock()
	p.user = nil
	p.loading = false
	p.mu.Unlock()
}

func (p *ProfileStore) User() *domain.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

func (p *ProfileStore) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *ProfileStore) setUser(u *domain.User) {
	p.mu.Lock()
	p.user = u
	p.mu.Unlock()
}

func (p *ProfileStore) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}
