package api

import (
	"context"
	"net/http"

	"github.com/appshell/session-gateway/internal/core/domain"
	"github.com/appshell/session-gateway/internal/core/ports"
)

// authEnvelope is the authentication service's response shape. The service
// reports outcomes through a numeric code where zero means success.
type authEnvelope struct {
	Code    *int         `json:"code"`
	Message string       `json:"message"`
	Data    *authPayload `json:"data"`
}

type authPayload struct {
	Token *domain.TokenPair `json:"token"`
	User  *domain.User      `json:"user"`
}

func (e *authEnvelope) result() *ports.AuthResult {
	res := &ports.AuthResult{Code: -1, Message: e.Message}
	if e.Code != nil {
		res.Code = *e.Code
	}
	if e.Data != nil {
		res.Token = e.Data.Token
		res.User = e.Data.User
	}
	return res
}

func (c *Client) SubmitLogin(ctx context.Context, in domain.LoginInput) (*ports.AuthResult, error) {
	var env authEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", in, &env); err != nil {
		return nil, err
	}
	return env.result(), nil
}

func (c *Client) SubmitRegistration(ctx context.Context, in domain.RegisterInput) (*ports.AuthResult, error) {
	var env authEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", in, &env); err != nil {
		return nil, err
	}
	return env.result(), nil
}
