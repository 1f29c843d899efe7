package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/appshell/session-gateway/internal/api/metrics"
	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

type ProfileHandler struct {
	profile ports.ProfileStore
}

func NewProfileHandler(profile ports.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// GetProfile loads the profile through the profile store and returns the
// cached record.
//
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      502  {object}  errorResponse
// @Router       /api/user/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	h.profile.LoadUserProfile(c.Request().Context())

	u := h.profile.User()
	if u == nil {
		return domain.ErrProfileUnavailable
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateProfile submits a profile edit.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/user/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok := h.profile.UpdateProfile(c.Request().Context(), domain.ProfileUpdate{
		Nickname: req.Nickname,
		Avatar:   req.Avatar,
		Timezone: req.Timezone,
		Language: req.Language,
	})
	metrics.ProfileUpdatesTotal.WithLabelValues(metrics.Result(ok)).Inc()
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "profile update failed"})
	}

	return c.JSON(http.StatusOK, h.profile.User())
}

// ChangePassword submits a password change. No cached data changes either way.
//
// @Summary      Change password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/user/change-password [post]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok := h.profile.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "password change failed"})
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}
