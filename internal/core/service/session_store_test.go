package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

type stubAuthClient struct {
	loginResult    *ports.AuthResult
	loginErr       error
	registerResult *ports.AuthResult
	registerErr    error
	loginCalls     int
	registerCalls  int
}

func (c *stubAuthClient) SubmitLogin(_ context.Context, _ domain.LoginInput) (*ports.AuthResult, error) {
	c.loginCalls++
	return c.loginResult, c.loginErr
}

func (c *stubAuthClient) SubmitRegistration(_ context.Context, _ domain.RegisterInput) (*ports.AuthResult, error) {
	c.registerCalls++
	return c.registerResult, c.registerErr
}

type stubProfileClient struct {
	fetchResult    *ports.ProfileResult
	fetchErr       error
	updateResult   *ports.ProfileResult
	updateErr      error
	passwordResult *ports.StatusResult
	passwordErr    error
	fetchCalls     int
}

func (c *stubProfileClient) FetchProfile(_ context.Context) (*ports.ProfileResult, error) {
	c.fetchCalls++
	return c.fetchResult, c.fetchErr
}

func (c *stubProfileClient) SubmitProfileUpdate(_ context.Context, _ domain.ProfileUpdate) (*ports.ProfileResult, error) {
	return c.updateResult, c.updateErr
}

func (c *stubProfileClient) SubmitPasswordChange(_ context.Context, _, _ string) (*ports.StatusResult, error) {
	return c.passwordResult, c.passwordErr
}

type memStorage struct {
	values map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{values: make(map[string]string)}
}

func (s *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStorage) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memStorage) Remove(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func testUser(id int64, nickname string) *domain.User {
	return &domain.User{
		ID:       id,
		Username: "alice",
		Email:    "a@b.com",
		Nickname: nickname,
		IsActive: true,
	}
}

func successResult(token string, u *domain.User) *ports.AuthResult {
	return &ports.AuthResult{
		Code:  0,
		Token: &domain.TokenPair{AccessToken: token, RefreshToken: "R", TokenType: "bearer", ExpiresIn: 3600},
		User:  u,
	}
}

func TestSessionStore_Login_Success(t *testing.T) {
	auth := &stubAuthClient{loginResult: successResult("T1", testUser(7, "al"))}
	storage := newMemStorage()
	notifier := &recordingNotifier{}
	store := NewSessionStore(auth, &stubProfileClient{}, storage, notifier, zerolog.Nop())

	ok := store.Login(context.Background(), domain.LoginInput{Email: "a@b.com", Password: "x"})
	if !ok {
		t.Fatalf("expected login to succeed")
	}
	if store.Token() != "T1" {
		t.Fatalf("expected token T1, got %q", store.Token())
	}
	if store.User() == nil || store.User().ID != 7 {
		t.Fatalf("unexpected user: %+v", store.User())
	}
	if !store.IsLoggedIn() {
		t.Fatalf("expected logged-in state")
	}
	if _, ok, _ := storage.Get(context.Background(), StorageTokenKey); !ok {
		t.Fatalf("durable token not written")
	}
	if _, ok, _ := storage.Get(context.Background(), StorageUserKey); !ok {
		t.Fatalf("durable user not written")
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected exactly one success notification, got %v", notifier.successes)
	}
	if store.Loading() {
		t.Fatalf("loading flag not cleared")
	}
}

func TestSessionStore_Login_ApplicationFailure(t *testing.T) {
	auth := &stubAuthClient{loginResult: &ports.AuthResult{Code: 1, Message: "bad credentials"}}
	storage := newMemStorage()
	notifier := &recordingNotifier{}
	store := NewSessionStore(auth, &stubProfileClient{}, storage, notifier, zerolog.Nop())

	if store.Login(context.Background(), domain.LoginInput{Email: "a@b.com", Password: "x"}) {
		t.Fatalf("expected login to fail")
	}
	if store.IsLoggedIn() || store.Token() != "" || store.User() != nil {
		t.Fatalf("store should remain anonymous")
	}
	if len(storage.values) != 0 {
		t.Fatalf("no durable writes expected, got %v", storage.values)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "bad credentials" {
		t.Fatalf("expected verbatim backend message, got %v", notifier.errors)
	}
}

func TestSessionStore_Login_TransportFailure(t *testing.T) {
	auth := &stubAuthClient{loginErr: errors.New("connection refused")}
	notifier := &recordingNotifier{}
	store := NewSessionStore(auth, &stubProfileClient{}, newMemStorage(), notifier, zerolog.Nop())

	if store.Login(context.Background(), domain.LoginInput{Email: "a@b.com", Password: "x"}) {
		t.Fatalf("expected login to fail")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != msgLoginFailed {
		t.Fatalf("expected generic error message, got %v", notifier.errors)
	}
	if store.Loading() {
		t.Fatalf("loading flag not cleared after failure")
	}
}

func TestSessionStore_Login_MalformedSuccess(t *testing.T) {
	// Success code, but the user snapshot is missing.
	auth := &stubAuthClient{loginResult: &ports.AuthResult{
		Code:  0,
		Token: &domain.TokenPair{AccessToken: "T1"},
	}}
	storage := newMemStorage()
	notifier := &recordingNotifier{}
	store := NewSessionStore(auth, &stubProfileClient{}, storage, notifier, zerolog.Nop())

	if store.Login(context.Background(), domain.LoginInput{}) {
		t.Fatalf("malformed success must be treated as failure")
	}
	if store.Token() != "" || len(storage.values) != 0 {
		t.Fatalf("no partial writes expected")
	}
}

func TestSessionStore_Register_Success(t *testing.T) {
	auth := &stubAuthClient{registerResult: successResult("T2", testUser(8, "bob"))}
	storage := newMemStorage()
	store := NewSessionStore(auth, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())

	in := domain.RegisterInput{Username: "bob", Email: "b@c.com", Password: "x", Nickname: "bob"}
	if !store.Register(context.Background(), in) {
		t.Fatalf("expected registration to succeed")
	}
	if !store.IsLoggedIn() || store.Token() != "T2" {
		t.Fatalf("expected authenticated state after register")
	}
}

func TestSessionStore_Register_MissingToken(t *testing.T) {
	auth := &stubAuthClient{registerResult: &ports.AuthResult{Code: 0, User: testUser(8, "bob")}}
	store := NewSessionStore(auth, &stubProfileClient{}, newMemStorage(), &recordingNotifier{}, zerolog.Nop())

	if store.Register(context.Background(), domain.RegisterInput{}) {
		t.Fatalf("registration without a credential pair must fail")
	}
	if store.IsLoggedIn() {
		t.Fatalf("store should remain anonymous")
	}
}

func TestSessionStore_Logout_Idempotent(t *testing.T) {
	auth := &stubAuthClient{loginResult: successResult("T1", testUser(7, "al"))}
	storage := newMemStorage()
	store := NewSessionStore(auth, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())

	store.Login(context.Background(), domain.LoginInput{})
	store.Logout(context.Background())
	store.Logout(context.Background())

	if store.IsLoggedIn() || store.Token() != "" || store.User() != nil {
		t.Fatalf("expected anonymous state")
	}
	if len(storage.values) != 0 {
		t.Fatalf("durable keys not removed: %v", storage.values)
	}
}

func TestSessionStore_InitUser_NoToken(t *testing.T) {
	profile := &stubProfileClient{}
	store := NewSessionStore(&stubAuthClient{}, profile, newMemStorage(), &recordingNotifier{}, zerolog.Nop())

	store.InitUser(context.Background())
	if profile.fetchCalls != 0 {
		t.Fatalf("no fetch expected without a token")
	}
}

func TestSessionStore_InitUser_Success(t *testing.T) {
	auth := &stubAuthClient{loginResult: successResult("T1", testUser(7, "old"))}
	profile := &stubProfileClient{fetchResult: &ports.ProfileResult{Success: true, User: testUser(7, "fresh")}}
	storage := newMemStorage()
	store := NewSessionStore(auth, profile, storage, &recordingNotifier{}, zerolog.Nop())

	store.Login(context.Background(), domain.LoginInput{})
	store.InitUser(context.Background())

	if store.User().Nickname != "fresh" {
		t.Fatalf("expected refreshed snapshot, got %+v", store.User())
	}
}

func TestSessionStore_InitUser_StaleTokenPurged(t *testing.T) {
	auth := &stubAuthClient{loginResult: successResult("T1", testUser(7, "al"))}
	profile := &stubProfileClient{fetchErr: errors.New("network down")}
	storage := newMemStorage()
	store := NewSessionStore(auth, profile, storage, &recordingNotifier{}, zerolog.Nop())

	store.Login(context.Background(), domain.LoginInput{})
	store.InitUser(context.Background())

	if store.IsLoggedIn() || store.Token() != "" {
		t.Fatalf("expected full logout after failed profile fetch")
	}
	if len(storage.values) != 0 {
		t.Fatalf("durable keys should be removed, got %v", storage.values)
	}
}

func TestSessionStore_RestoreFromStorage_RoundTrip(t *testing.T) {
	auth := &stubAuthClient{loginResult: successResult("T1", testUser(7, "al"))}
	storage := newMemStorage()
	first := NewSessionStore(auth, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())
	first.Login(context.Background(), domain.LoginInput{})

	// Simulated process restart: a fresh store over the same durable storage.
	profile := &stubProfileClient{}
	second := NewSessionStore(&stubAuthClient{}, profile, storage, &recordingNotifier{}, zerolog.Nop())
	second.EnsureInitialized(context.Background())
	second.RestoreFromStorage(context.Background())

	if !second.IsLoggedIn() {
		t.Fatalf("expected restored authenticated state")
	}
	if second.User().ID != 7 || second.User().Nickname != "al" {
		t.Fatalf("restored snapshot differs: %+v", second.User())
	}
	if profile.fetchCalls != 0 {
		t.Fatalf("restore must not contact the network")
	}
}

func TestSessionStore_RestoreFromStorage_NoDurableUser(t *testing.T) {
	storage := newMemStorage()
	storage.values[StorageTokenKey] = "T1"
	store := NewSessionStore(&stubAuthClient{}, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())

	store.EnsureInitialized(context.Background())
	store.RestoreFromStorage(context.Background())

	if store.User() != nil {
		t.Fatalf("no user should be restored")
	}
	if store.Token() != "T1" {
		t.Fatalf("token should be untouched")
	}
}

func TestSessionStore_RestoreFromStorage_CorruptRecord(t *testing.T) {
	storage := newMemStorage()
	storage.values[StorageTokenKey] = "T1"
	storage.values[StorageUserKey] = "{not json"
	store := NewSessionStore(&stubAuthClient{}, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())

	store.EnsureInitialized(context.Background())
	store.RestoreFromStorage(context.Background())

	if store.IsLoggedIn() || store.Token() != "" {
		t.Fatalf("corrupt record must escalate to full logout")
	}
	if len(storage.values) != 0 {
		t.Fatalf("durable keys should be removed, got %v", storage.values)
	}
}

func TestSessionStore_EnsureInitialized_LoadsTokenOnce(t *testing.T) {
	storage := newMemStorage()
	storage.values[StorageTokenKey] = "T1"
	store := NewSessionStore(&stubAuthClient{}, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())

	store.EnsureInitialized(context.Background())
	if store.Token() != "T1" {
		t.Fatalf("expected durable token loaded, got %q", store.Token())
	}

	// A later change to the durable value must not leak in: init is one-shot.
	storage.values[StorageTokenKey] = "T2"
	store.EnsureInitialized(context.Background())
	if store.Token() != "T1" {
		t.Fatalf("EnsureInitialized ran twice")
	}
}

func TestSessionStore_EnsureHydrated_RestoresUserWhenTokenHeld(t *testing.T) {
	storage := newMemStorage()
	storage.values[StorageTokenKey] = "T1"
	raw, _ := json.Marshal(testUser(7, "al"))
	storage.values[StorageUserKey] = string(raw)
	profile := &stubProfileClient{}
	store := NewSessionStore(&stubAuthClient{}, profile, storage, &recordingNotifier{}, zerolog.Nop())

	store.EnsureHydrated(context.Background())

	if !store.IsLoggedIn() || store.User().ID != 7 {
		t.Fatalf("expected hydrated session, got token=%q user=%+v", store.Token(), store.User())
	}
	if profile.fetchCalls != 0 {
		t.Fatalf("hydration must not contact the network")
	}

	// A second call must not disturb the in-memory state.
	storage.values[StorageUserKey] = "{not json"
	store.EnsureHydrated(context.Background())
	if !store.IsLoggedIn() {
		t.Fatalf("repeated hydration must be a no-op once state is in memory")
	}
}

func TestSessionStore_EnsureHydrated_AnonymousIsNoOp(t *testing.T) {
	storage := newMemStorage()
	store := NewSessionStore(&stubAuthClient{}, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())

	store.EnsureHydrated(context.Background())

	if store.Token() != "" || store.User() != nil {
		t.Fatalf("expected anonymous state to stay empty")
	}
}

func TestSessionStore_UpdateUserInfo_Persists(t *testing.T) {
	auth := &stubAuthClient{loginResult: successResult("T1", testUser(7, "old"))}
	storage := newMemStorage()
	store := NewSessionStore(auth, &stubProfileClient{}, storage, &recordingNotifier{}, zerolog.Nop())
	store.Login(context.Background(), domain.LoginInput{})

	store.UpdateUserInfo(context.Background(), testUser(7, "new"))

	if store.User().Nickname != "new" {
		t.Fatalf("expected replaced snapshot")
	}
	raw, ok, _ := storage.Get(context.Background(), StorageUserKey)
	if !ok {
		t.Fatalf("durable user missing")
	}
	if want := `"nickname":"new"`; !strings.Contains(raw, want) {
		t.Fatalf("durable user not updated: %s", raw)
	}
}
