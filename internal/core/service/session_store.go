package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

// Durable keys. Each operation writes its own small closed set of keys;
// no cross-key atomicity is assumed.
const (
	StorageTokenKey = "session:token"
	StorageUserKey  = "session:user"
)

const (
	msgLoginSuccess    = "login successful"
	msgLoginFailed     = "login failed"
	msgRegisterSuccess = "registration successful"
	msgRegisterFailed  = "registration failed"
	msgLoggedOut       = "logged out"
)

// SessionStore holds the canonical token/user pair in memory and writes
// through to durable storage. One instance per process; consumers receive
// it by injection rather than through a global.
type SessionStore struct {
	auth     ports.AuthClient
	profile  ports.ProfileClient
	storage  ports.Storage
	notifier ports.Notifier
	logger   zerolog.Logger

	initOnce sync.Once

	mu      sync.RWMutex
	token   string
	user    *domain.User
	loading bool
}

func NewSessionStore(auth ports.AuthClient, profile ports.ProfileClient, storage ports.Storage, notifier ports.Notifier, logger zerolog.Logger) *SessionStore {
	return &SessionStore{
		auth:     auth,
		profile:  profile,
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
}

// EnsureInitialized loads the durable token into memory exactly once.
// Callers read session state only after this has run; the suspension point
// stays visible instead of hiding inside a getter.
func (s *SessionStore) EnsureInitialized(ctx context.Context) {
	s.initOnce.Do(func() {
		token, ok, err := s.storage.Get(ctx, StorageTokenKey)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to read durable token")
			return
		}
		if !ok {
			return
		}
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()
	})
}

// Login authenticates against the backend. On a complete success it
// atomically installs token and user, persists both keys and reports
// success. On any other outcome the store keeps its prior state, surfaces
// an error notification and returns false. Durable writes happen only
// after the backend confirmed the credentials.
func (s *SessionStore) Login(ctx context.Context, in domain.LoginInput) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.auth.SubmitLogin(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("login request failed")
		s.notifier.Error(msgLoginFailed)
		return false
	}
	if !res.Successful() {
		s.notifier.Error(messageOr(res.Message, msgLoginFailed))
		return false
	}

	s.installSession(ctx, res.Token.AccessToken, res.User)
	s.notifier.Success(msgLoginSuccess)
	return true
}

// Register creates an account. The contract mirrors Login, including the
// structural completeness check: a success code without both the credential
// pair and the user snapshot is treated as failure, not partial success.
func (s *SessionStore) Register(ctx context.Context, in domain.RegisterInput) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := s.auth.SubmitRegistration(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Msg("registration request failed")
		s.notifier.Error(msgRegisterFailed)
		return false
	}
	if !res.Successful() {
		s.notifier.Error(messageOr(res.Message, msgRegisterFailed))
		return false
	}

	s.installSession(ctx, res.Token.AccessToken, res.User)
	s.notifier.Success(msgRegisterSuccess)
	return true
}

// Logout unconditionally clears the in-memory session and removes both
// durable keys. It cannot fail and always terminates in the anonymous
// state; calling it twice is a no-op the second time around.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Remove(ctx, StorageTokenKey); err != nil {
		s.logger.Error().Err(err).Msg("failed to remove durable token")
	}
	if err := s.storage.Remove(ctx, StorageUserKey); err != nil {
		s.logger.Error().Err(err).Msg("failed to remove durable user")
	}

	s.notifier.Success(msgLoggedOut)
}

// InitUser refreshes the user snapshot from the profile service. A no-op
// without a token. Any failure means the held token no longer authorizes
// profile access, so the whole session is discarded rather than surfacing
// a plain error.
func (s *SessionStore) InitUser(ctx context.Context) {
	if s.Token() == "" {
		return
	}

	res, err := s.profile.FetchProfile(ctx)
	if err != nil || !res.Success || res.User == nil {
		s.logger.Warn().Err(err).Msg("profile fetch failed, discarding session")
		s.Logout(ctx)
		return
	}

	s.setUser(ctx, res.User)
}

// EnsureHydrated brings durable state into memory: it runs the one-time
// token load and, when a token is held without an in-memory user, restores
// the user snapshot from storage. This is the single read with a side
// effect; every state inspection point goes through it.
func (s *SessionStore) EnsureHydrated(ctx context.Context) {
	s.EnsureInitialized(ctx)
	if s.User() == nil && s.Token() != "" {
		s.RestoreFromStorage(ctx)
	}
}

// RestoreFromStorage populates the in-memory user from the durable record
// without contacting the network. A no-op unless a token is held and a
// durable user exists; a corrupt record escalates to a full logout.
func (s *SessionStore) RestoreFromStorage(ctx context.Context) {
	if s.Token() == "" {
		return
	}

	raw, ok, err := s.storage.Get(ctx, StorageUserKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read durable user")
		return
	}
	if !ok {
		return
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Error().Err(err).Msg("durable user record corrupt, discarding session")
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

// UpdateUserInfo replaces the cached user wholesale and persists it. Used
// by the profile store to push confirmed server-side updates back into the
// session. Cannot fail; storage errors are logged only.
func (s *SessionStore) UpdateUserInfo(ctx context.Context, u *domain.User) {
	s.setUser(ctx, u)
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsLoggedIn reports whether both token and user are present.
func (s *SessionStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Loading reports whether an auth operation is in flight. Advisory only:
// it is a hint for duplicate-trigger suppression, not a lock.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// installSession sets token and user together and writes both through to
// durable storage. The pair never changes independently.
func (s *SessionStore) installSession(ctx context.Context, token string, u *domain.User) {
	s.mu.Lock()
	s.token = token
	s.user = u
	s.mu.Unlock()

	if err := s.storage.Set(ctx, StorageTokenKey, token); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist token")
	}
	s.persistUser(ctx, u)
}

func (s *SessionStore) setUser(ctx context.Context, u *domain.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	s.persistUser(ctx, u)
}

func (s *SessionStore) persistUser(ctx context.Context, u *domain.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode user")
		return
	}
	if err := s.storage.Set(ctx, StorageUserKey, string(raw)); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist user")
	}
}

func (s *SessionStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// messageOr returns the backend-provided message verbatim, falling back to
// a generic one when absent.
func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
