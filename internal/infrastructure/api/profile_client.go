package api

import (
	"context"
	"net/http"

	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

// profileEnvelope is the profile service's response shape. Unlike the auth
// service it reports outcomes through a boolean; both forms are accepted
// here since older backend builds still send the numeric code.
type profileEnvelope struct {
	Success *bool        `json:"success"`
	Code    *int         `json:"code"`
	Message string       `json:"message"`
	Data    *domain.User `json:"data"`
}

func (e *profileEnvelope) ok() bool {
	if e.Success != nil {
		return *e.Success
	}
	return e.Code != nil && *e.Code == 0
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (c *Client) FetchProfile(ctx context.Context) (*ports.ProfileResult, error) {
	var env profileEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, &env); err != nil {
		return nil, err
	}
	return &ports.ProfileResult{Success: env.ok(), Message: env.Message, User: env.Data}, nil
}

func (c *Client) SubmitProfileUpdate(ctx context.Context, in domain.ProfileUpdate) (*ports.ProfileResult, error) {
	var env profileEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/api/user/profile", in, &env); err != nil {
		return nil, err
	}
	return &ports.ProfileResult{Success: env.ok(), Message: env.Message, User: env.Data}, nil
}

func (c *Client) SubmitPasswordChange(ctx context.Context, currentPassword, newPassword string) (*ports.StatusResult, error) {
	req := passwordChangeRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	var env profileEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/change-password", req, &env); err != nil {
		return nil, err
	}
	return &ports.StatusResult{Success: env.ok(), Message: env.Message}, nil
}
