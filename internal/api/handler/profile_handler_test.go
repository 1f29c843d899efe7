package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/appshell/session-gateway/internal/core/domain"
)

type stubProfileStore struct {
	loadUser   *domain.User
	updateOK   bool
	passwordOK bool
	user       *domain.User
	resetCalls int
}

func (s *stubProfileStore) LoadUserProfile(context.Context) {
	if s.loadUser != nil {
		s.user = s.loadUser
	}
}

func (s *stubProfileStore) UpdateProfile(_ context.Context, in domain.ProfileUpdate) bool {
	if s.updateOK {
		s.user = &domain.User{ID: 7, Nickname: in.Nickname}
	}
	return s.updateOK
}

func (s *stubProfileStore) ChangePassword(context.Context, string, string) bool {
	return s.passwordOK
}

func (s *stubProfileStore) Reset() { s.resetCalls++ }

func (s *stubProfileStore) User() *domain.User { return s.user }
func (s *stubProfileStore) Loading() bool      { return false }

func TestProfileHandler_GetProfile_Success(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileStore{loadUser: &domain.User{ID: 7, Nickname: "al"}})

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"nickname":"al"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProfileHandler_GetProfile_Unavailable(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GetProfile(c)
	if !errors.Is(err, domain.ErrProfileUnavailable) {
		t.Fatalf("expected ErrProfileUnavailable, got %v", err)
	}
}

func TestProfileHandler_UpdateProfile_Success(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileStore{updateOK: true})
	c, rec := postJSON(e, "/api/user/profile", `{"nickname":"new"}`)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"nickname":"new"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProfileHandler_UpdateProfile_MissingNickname(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileStore{updateOK: true})
	c, rec := postJSON(e, "/api/user/profile", `{"avatar":"/a.png"}`)

	err := h.UpdateProfile(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	e.HTTPErrorHandler(err, c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProfileHandler_UpdateProfile_Failure(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileStore{updateOK: false})
	c, rec := postJSON(e, "/api/user/profile", `{"nickname":"new"}`)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestProfileHandler_ChangePassword(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileStore{passwordOK: true})
	c, rec := postJSON(e, "/api/user/change-password",
		`{"current_password":"old","new_password":"longenough"}`)

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	h = NewProfileHandler(&stubProfileStore{passwordOK: false})
	c, rec = postJSON(e, "/api/user/change-password",
		`{"current_password":"old","new_password":"longenough"}`)
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
