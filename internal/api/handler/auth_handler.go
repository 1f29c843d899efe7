package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appshell/session-gateway/internal/api/metrics"
	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

type AuthHandler struct {
	session ports.SessionStore
	profile ports.ProfileStore
}

func NewAuthHandler(session ports.SessionStore, profile ports.ProfileStore) *AuthHandler {
	return &AuthHandler{session: session, profile: profile}
}

// Login authenticates the shell's user and installs the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok := h.session.Login(c.Request().Context(), domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.LoginsTotal.WithLabelValues(metrics.Result(ok)).Inc()
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "login failed"})
	}

	return c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, User: h.session.User()})
}

// Register creates an account and, like Login, installs the session.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok := h.session.Register(c.Request().Context(), domain.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	metrics.RegistrationsTotal.WithLabelValues(metrics.Result(ok)).Inc()
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "registration failed"})
	}

	return c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, User: h.session.User()})
}

// Logout tears the session down and clears the profile cache so a later
// login cannot observe the previous account's record. It cannot fail.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	h.profile.Reset()
	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, sessionResponse{LoggedIn: false})
}

// Session reports the current session state, rehydrating from durable
// storage first so a fresh process answers correctly.
//
// @Summary      Current session state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	h.session.EnsureHydrated(c.Request().Context())

	return c.JSON(http.StatusOK, sessionResponse{
		LoggedIn: h.session.IsLoggedIn(),
		User:     h.session.User(),
	})
}
